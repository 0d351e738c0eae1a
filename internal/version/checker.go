package version

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
)

// Version is set at build time with -ldflags "-X .../internal/version.Version=..."
var Version = "0.1.0"

const (
	releasesAPIURL = "https://api.github.com/repos/studiowebux/textlens/releases/latest"
	checkTimeout   = 5 * time.Second
)

// UserAgent identifies textlens to the API and release host
func UserAgent() string {
	return "textlens/" + Version
}

type GitHubRelease struct {
	TagName string `json:"tag_name"`
	Name    string `json:"name"`
	HTMLURL string `json:"html_url"`
}

// Update describes the outcome of a release check
type Update struct {
	Available bool
	Latest    string
	URL       string
}

// Checker queries the latest published release
type Checker struct {
	http *resty.Client
	url  string
}

// NewChecker creates a checker for the textlens release feed
func NewChecker() *Checker {
	return newChecker(releasesAPIURL)
}

func newChecker(url string) *Checker {
	return &Checker{
		http: resty.New().
			SetTimeout(checkTimeout).
			SetHeader("User-Agent", UserAgent()).
			SetHeader("Accept", "application/vnd.github+json"),
		url: url,
	}
}

// CheckForUpdate checks if a release newer than currentVersion is available
func (c *Checker) CheckForUpdate(ctx context.Context, currentVersion string) (Update, error) {
	var release GitHubRelease
	resp, err := c.http.R().
		SetContext(ctx).
		SetResult(&release).
		Get(c.url)
	if err != nil {
		return Update{}, fmt.Errorf("failed to fetch latest release: %w", err)
	}
	if !resp.IsSuccess() {
		return Update{}, fmt.Errorf("unexpected status code: %d", resp.StatusCode())
	}

	latest := strings.TrimPrefix(release.TagName, "v")
	current := strings.TrimPrefix(currentVersion, "v")

	return Update{
		Available: latest != "" && isNewerVersion(latest, current),
		Latest:    latest,
		URL:       release.HTMLURL,
	}, nil
}

// isNewerVersion compares two semantic versions and returns true if latest > current
// Supports versions like "0.0.28", "1.2.3", "0.0.29-dev", etc.
func isNewerVersion(latest, current string) bool {
	latestParts := parseVersion(latest)
	currentParts := parseVersion(current)

	// Pad shorter version with zeros
	maxLen := len(latestParts)
	if len(currentParts) > maxLen {
		maxLen = len(currentParts)
	}

	for len(latestParts) < maxLen {
		latestParts = append(latestParts, 0)
	}
	for len(currentParts) < maxLen {
		currentParts = append(currentParts, 0)
	}

	for i := 0; i < maxLen; i++ {
		if latestParts[i] > currentParts[i] {
			return true
		}
		if latestParts[i] < currentParts[i] {
			return false
		}
	}

	return false
}

// parseVersion parses a version string into integer parts
// Handles pre-release versions by stripping everything after "-" or "+"
func parseVersion(version string) []int {
	if idx := strings.IndexAny(version, "-+"); idx != -1 {
		version = version[:idx]
	}

	parts := strings.Split(version, ".")
	result := make([]int, 0, len(parts))

	for _, part := range parts {
		num, err := strconv.Atoi(part)
		if err != nil {
			// If we can't parse a number, skip it
			continue
		}
		result = append(result, num)
	}

	return result
}
