package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/abhisek/thoughtchain/internal/cot"
	"github.com/abhisek/thoughtchain/internal/export"
	"github.com/abhisek/thoughtchain/internal/store"
)

var exportCmd = &cobra.Command{
	Use:   "export <id>",
	Short: "Export a saved run as JSON, Markdown or PDF",
	Long: "Export writes a saved run to --output, inferring the format from its\n" +
		"extension, or to stdout in the --format given.",
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")
		format, err := exportFormat(cmd, output)
		if err != nil {
			return err
		}

		s, err := openStore(cmd)
		if err != nil {
			return err
		}
		defer s.Close()

		rec, err := s.RunRepo().GetRun(cmd.Context(), args[0])
		if errors.Is(err, store.ErrNotFound) {
			return fmt.Errorf("run %s not found", args[0])
		}
		if err != nil {
			return fmt.Errorf("get run: %w", err)
		}
		run := cot.RunFromRecord(rec)

		if output == "" || output == "-" {
			return writeExport(cmd.OutOrStdout(), run, format)
		}

		f, err := os.Create(output)
		if err != nil {
			return fmt.Errorf("create %s: %w", output, err)
		}
		if err := writeExport(f, run, format); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return fmt.Errorf("close %s: %w", output, err)
		}

		fmt.Fprintf(cmd.ErrOrStderr(), "Wrote %s (%s)\n", output, format)
		return nil
	},
}

// exportFormat prefers --format, then the output extension, then JSON.
func exportFormat(cmd *cobra.Command, output string) (export.Format, error) {
	if cmd.Flags().Changed("format") {
		name, _ := cmd.Flags().GetString("format")
		return export.ParseFormat(name)
	}
	if output != "" && output != "-" {
		return export.FormatFromPath(output)
	}
	return export.FormatJSON, nil
}

func writeExport(w io.Writer, run *cot.Run, format export.Format) error {
	if format == export.FormatPDF {
		return export.PDF(w, run, cfg.PDF)
	}
	return export.Write(w, run, format)
}

func init() {
	exportCmd.Flags().StringP("format", "f", string(export.FormatJSON), "Output format: json, markdown or pdf")
	exportCmd.Flags().StringP("output", "o", "", "Output file (default stdout)")
}
