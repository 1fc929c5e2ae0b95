// Package selfupdate checks GitHub releases for a newer thoughtchain build.
package selfupdate

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"golang.org/x/mod/semver"
)

const (
	defaultBaseURL = "https://api.github.com"
	defaultOwner   = "abhisek"
	defaultRepo    = "thoughtchain"
)

var (
	ErrDevBuild  = errors.New("cannot check a development build")
	ErrNoRelease = errors.New("no published release found")
)

// Checker queries the latest published release of a repository.
type Checker struct {
	client  *http.Client
	baseURL string
	owner   string
	repo    string
}

type Option func(*Checker)

// WithBaseURL overrides the GitHub API root.
func WithBaseURL(u string) Option {
	return func(c *Checker) { c.baseURL = u }
}

func WithTimeout(d time.Duration) Option {
	return func(c *Checker) { c.client.Timeout = d }
}

func WithRepository(owner, repo string) Option {
	return func(c *Checker) {
		c.owner = owner
		c.repo = repo
	}
}

func NewChecker(opts ...Option) *Checker {
	c := &Checker{
		client:  &http.Client{Timeout: 10 * time.Second},
		baseURL: defaultBaseURL,
		owner:   defaultOwner,
		repo:    defaultRepo,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

type CheckInput struct {
	Version string
}

type CheckResult struct {
	CurrentVersion  string
	LatestVersion   string
	ReleaseURL      string
	PublishedAt     time.Time
	UpdateAvailable bool
}

type release struct {
	TagName     string    `json:"tag_name"`
	HTMLURL     string    `json:"html_url"`
	PublishedAt time.Time `json:"published_at"`
	Draft       bool      `json:"draft"`
	Prerelease  bool      `json:"prerelease"`
}

// Check compares input.Version against the latest release. Versions
// without a leading "v" are accepted.
func (c *Checker) Check(ctx context.Context, input *CheckInput) (*CheckResult, error) {
	current := canonical(input.Version)
	if current == "" {
		return nil, fmt.Errorf("%w: %q", ErrDevBuild, input.Version)
	}

	rel, err := c.latestRelease(ctx)
	if err != nil {
		return nil, err
	}

	latest := canonical(rel.TagName)
	if latest == "" {
		return nil, fmt.Errorf("latest release has invalid tag %q", rel.TagName)
	}

	return &CheckResult{
		CurrentVersion:  current,
		LatestVersion:   latest,
		ReleaseURL:      rel.HTMLURL,
		PublishedAt:     rel.PublishedAt,
		UpdateAvailable: semver.Compare(latest, current) > 0,
	}, nil
}

func (c *Checker) latestRelease(ctx context.Context) (*release, error) {
	url := fmt.Sprintf("%s/repos/%s/%s/releases/latest", strings.TrimRight(c.baseURL, "/"), c.owner, c.repo)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/vnd.github+json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch latest release: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	switch {
	case resp.StatusCode == http.StatusNotFound:
		return nil, ErrNoRelease
	case resp.StatusCode != http.StatusOK:
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, fmt.Errorf("HTTP %d for %s: %s", resp.StatusCode, url, strings.TrimSpace(string(body)))
	}

	var rel release
	if err := json.NewDecoder(resp.Body).Decode(&rel); err != nil {
		return nil, fmt.Errorf("decode release: %w", err)
	}
	if rel.Draft || rel.TagName == "" {
		return nil, ErrNoRelease
	}
	return &rel, nil
}

// canonical returns v as a canonical semver string with a "v" prefix, or
// "" when v is not a release version.
func canonical(v string) string {
	v = strings.TrimSpace(v)
	if v == "" || v == "(devel)" {
		return ""
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	return semver.Canonical(v)
}
