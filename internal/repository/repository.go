// Package repository defines the contract between update orchestration and
// the remote package indexes that answer "which versions exist for this
// coordinate".
package repository

import (
	"fmt"
	"strings"

	"github.com/gradlecat/gvc/internal/version"
)

// Coordinate identifies a library in a package index by group and artifact.
// Plugin identifiers use the plugin id for both halves; the plugin resolver
// appends its index suffix before building a request.
type Coordinate struct {
	Group    string
	Artifact string
}

// NewCoordinate builds a library coordinate.
func NewCoordinate(group, artifact string) Coordinate {
	return Coordinate{Group: group, Artifact: artifact}
}

// PluginCoordinate builds the coordinate stand-in for a plugin identifier.
func PluginCoordinate(pluginID string) Coordinate {
	return Coordinate{Group: pluginID, Artifact: pluginID}
}

// String renders the coordinate as "group:artifact".
func (c Coordinate) String() string {
	return c.Group + ":" + c.Artifact
}

// ParseCoordinate parses "group:artifact" or "group:artifact:version" text.
// The version part is empty when absent.
func ParseCoordinate(text string) (Coordinate, string, error) {
	parts := strings.Split(text, ":")
	if len(parts) < 2 || len(parts) > 3 || parts[0] == "" || parts[1] == "" {
		return Coordinate{}, "", fmt.Errorf("invalid coordinate %q: expected group:artifact[:version]", text)
	}
	coord := Coordinate{Group: parts[0], Artifact: parts[1]}
	if len(parts) == 3 {
		return coord, parts[2], nil
	}
	return coord, "", nil
}

// Repository describes one configured package index: a display name, a base
// URL, and optional regular-expression filters matched against a
// coordinate's group. An empty filter list matches every group.
type Repository struct {
	Name         string
	URL          string
	GroupFilters []string
}

// Client answers version queries for coordinates.
type Client interface {
	// AvailableVersions returns every known version for the coordinate in
	// descending order, deduplicated by literal text. A coordinate no
	// configured source knows yields an empty slice, not an error.
	AvailableVersions(coord Coordinate) ([]string, error)

	// LatestVersion returns the single best version for the coordinate,
	// or ok=false when no source has it (or stable-only filtering removes
	// every candidate).
	LatestVersion(coord Coordinate, stableOnly bool) (string, bool, error)
}

// VersionStrategy decides which candidate versions count as upgrades.
// Orchestration code consults the strategy instead of hard-coding
// comparison rules.
type VersionStrategy interface {
	// SelectLatest picks the best version from a candidate list.
	SelectLatest(versions []string, stableOnly bool) (string, bool)

	// IsUpgrade reports whether candidate is strictly newer than current.
	IsUpgrade(current, candidate string) bool
}

// DefaultStrategy orders candidates with the version package's total order.
type DefaultStrategy struct{}

// SelectLatest implements VersionStrategy.
func (DefaultStrategy) SelectLatest(versions []string, stableOnly bool) (string, bool) {
	return version.Latest(versions, stableOnly)
}

// IsUpgrade implements VersionStrategy.
func (DefaultStrategy) IsUpgrade(current, candidate string) bool {
	return version.IsNewer(candidate, current)
}
