// Package maven resolves artifact versions against Maven-layout package
// indexes: ordered repositories with per-repository group filters for
// libraries, and the Gradle Plugin Portal convention for plugins.
package maven

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/url"
	"regexp"
	"strings"

	"github.com/gradlecat/gvc/internal/common/logger"
	"github.com/gradlecat/gvc/internal/repository"
	"github.com/gradlecat/gvc/internal/version"
)

// Well-known repository URLs.
const (
	MavenCentralURL = "https://repo1.maven.org/maven2"
	GoogleMavenURL  = "https://dl.google.com/dl/android/maven2"
)

var (
	// ErrInvalidRepositoryURL is returned when a configured base URL uses a
	// non-HTTP(S) scheme or targets a private or loopback host.
	ErrInvalidRepositoryURL = errors.New("invalid repository URL")
	// ErrInvalidGroupFilter is returned when a repository's group filter is
	// not a valid regular expression.
	ErrInvalidGroupFilter = errors.New("invalid group filter")
)

// DefaultRepositories returns the fallback source list used when a project
// declares no repositories: Maven Central for everything, Google's Maven
// repository for Google/Android groups.
func DefaultRepositories() []repository.Repository {
	return []repository.Repository{
		{Name: "Maven Central", URL: MavenCentralURL},
		{
			Name:         "Google Maven",
			URL:          GoogleMavenURL,
			GroupFilters: []string{".*google.*", ".*android.*", ".*androidx.*"},
		},
	}
}

// Client resolves library versions against an ordered repository list.
// Repositories are consulted in order; a repository whose filters do not
// match the coordinate's group is skipped, and the first repository that
// yields any versions wins. Per-source failures are swallowed so one flaky
// mirror never fails a whole run.
type Client struct {
	http    *HTTPClient
	sources []source
}

// source is a configured repository with its filters precompiled.
type source struct {
	repo    repository.Repository
	filters []*regexp.Regexp
}

// ClientOption configures a Client.
type ClientOption func(*Client)

// WithHTTPClient replaces the retrying HTTP client (useful for tests and
// custom timeout tuning).
func WithHTTPClient(hc *HTTPClient) ClientOption {
	return func(c *Client) {
		c.http = hc
	}
}

// NewClient builds a resolver over the given repositories, falling back to
// DefaultRepositories when the list is empty. Each base URL is validated
// here, once: only http(s) schemes pointing at public hosts are accepted.
func NewClient(repos []repository.Repository, opts ...ClientOption) (*Client, error) {
	if len(repos) == 0 {
		repos = DefaultRepositories()
	}

	client := &Client{
		http:    NewHTTPClient(),
		sources: make([]source, 0, len(repos)),
	}
	for _, opt := range opts {
		opt(client)
	}

	for _, repo := range repos {
		if err := ValidateBaseURL(repo.URL); err != nil {
			return nil, fmt.Errorf("repository %q: %w", repo.Name, err)
		}

		src := source{repo: repo}
		for _, pattern := range repo.GroupFilters {
			re, err := regexp.Compile(pattern)
			if err != nil {
				return nil, fmt.Errorf("repository %q: %w: %q: %v", repo.Name, ErrInvalidGroupFilter, pattern, err)
			}
			src.filters = append(src.filters, re)
		}
		client.sources = append(client.sources, src)
	}

	return client, nil
}

// Repositories returns the configured repository list in resolution order.
func (c *Client) Repositories() []repository.Repository {
	repos := make([]repository.Repository, len(c.sources))
	for i, src := range c.sources {
		repos[i] = src.repo
	}
	return repos
}

// AvailableVersions implements repository.Client. The result is in
// descending version order with duplicate literals removed; an empty slice
// means no configured source knows the coordinate.
func (c *Client) AvailableVersions(coord repository.Coordinate) ([]string, error) {
	versions := c.firstSourceVersions(coord)
	if len(versions) == 0 {
		return nil, nil
	}
	return version.SortDescending(versions), nil
}

// LatestVersion implements repository.Client.
func (c *Client) LatestVersion(coord repository.Coordinate, stableOnly bool) (string, bool, error) {
	versions := c.firstSourceVersions(coord)
	if len(versions) == 0 {
		return "", false, nil
	}
	latest, ok := version.Latest(versions, stableOnly)
	return latest, ok, nil
}

// firstSourceVersions walks the repository list in order and returns the
// version list from the first applicable source that has one. Results from
// different sources are never merged.
func (c *Client) firstSourceVersions(coord repository.Coordinate) []string {
	for _, src := range c.sources {
		if !src.applies(coord) {
			continue
		}

		meta, err := fetchMetadata(context.Background(), c.http, src.repo.URL, coord)
		if err != nil {
			// Treated as "no versions from this source"; try the next one.
			logger.Debug("source %s: %v", src.repo.Name, err)
			continue
		}
		if len(meta.Versions) > 0 {
			return meta.Versions
		}
	}
	return nil
}

// applies reports whether this source should be asked about the coordinate.
// A source with no filters matches everything.
func (s source) applies(coord repository.Coordinate) bool {
	if len(s.filters) == 0 {
		return true
	}
	for _, re := range s.filters {
		if re.MatchString(coord.Group) {
			return true
		}
	}
	return false
}

// ValidateBaseURL rejects repository URLs this tool must never fetch from:
// non-HTTP(S) schemes and private, loopback, link-local, or unspecified
// hosts.
func ValidateBaseURL(raw string) error {
	parsed, err := url.Parse(raw)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidRepositoryURL, err)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return fmt.Errorf("%w: scheme %q is not http or https", ErrInvalidRepositoryURL, parsed.Scheme)
	}

	host := parsed.Hostname()
	if host == "" {
		return fmt.Errorf("%w: missing host", ErrInvalidRepositoryURL)
	}
	lower := strings.ToLower(host)
	if lower == "localhost" || strings.HasSuffix(lower, ".localhost") {
		return fmt.Errorf("%w: loopback host %q", ErrInvalidRepositoryURL, host)
	}

	if ip := net.ParseIP(host); ip != nil {
		if ip.IsLoopback() || ip.IsPrivate() || ip.IsLinkLocalUnicast() || ip.IsLinkLocalMulticast() || ip.IsUnspecified() {
			return fmt.Errorf("%w: non-public address %q", ErrInvalidRepositoryURL, host)
		}
	}

	return nil
}
