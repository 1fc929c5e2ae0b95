package cmd

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/abhisek/thoughtchain/internal/selfupdate"
)

// version is set via -ldflags at build time.
var version = "(devel)"

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the current version",
	RunE: func(cmd *cobra.Command, args []string) error {
		out := cmd.OutOrStdout()
		fmt.Fprintln(out, "thoughtchain", version)

		if check, _ := cmd.Flags().GetBool("check"); !check {
			return nil
		}

		checker := selfupdate.NewChecker(selfupdate.WithTimeout(15 * time.Second))
		ctx, cancel := context.WithTimeout(cmd.Context(), 15*time.Second)
		defer cancel()

		res, err := checker.Check(ctx, &selfupdate.CheckInput{Version: version})
		switch {
		case errors.Is(err, selfupdate.ErrDevBuild):
			fmt.Fprintln(out, "Development build; skipping the release check.")
			return nil
		case errors.Is(err, selfupdate.ErrNoRelease):
			fmt.Fprintln(out, "No published release found.")
			return nil
		case err != nil:
			return fmt.Errorf("check for updates: %w", err)
		}

		if res.UpdateAvailable {
			fmt.Fprintf(out, "A newer version is available: %s\n%s\n", res.LatestVersion, res.ReleaseURL)
		} else {
			fmt.Fprintln(out, "Already running the latest version.")
		}
		return nil
	},
}

func init() {
	versionCmd.Flags().Bool("check", false, "Check GitHub for a newer release")
}
