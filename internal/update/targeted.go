package update

import (
	"errors"
	"fmt"
	"sort"

	"github.com/gradlecat/gvc/internal/catalog"
	"github.com/gradlecat/gvc/internal/common/logger"
	"github.com/gradlecat/gvc/internal/repository"
	"github.com/gradlecat/gvc/internal/version"
)

var (
	// ErrNoMatch indicates no catalog entry name satisfied the pattern.
	ErrNoMatch = errors.New("no catalog entry matches pattern")
	// ErrAmbiguousPattern indicates a non-interactive targeted run matched
	// more than one entry and cannot choose among them.
	ErrAmbiguousPattern = errors.New("pattern matches multiple entries")
)

// Candidate is one catalog entry eligible for a targeted update.
type Candidate struct {
	Section    string
	Alias      string
	Coordinate repository.Coordinate
	Current    string
}

// FindCandidates collects the entries across all three sections whose
// alias matches the glob pattern. A version alias is only a candidate when
// some library references it, since the lookup needs that library's
// coordinate. Results are sorted by alias, then section, so presentation
// is deterministic.
func (u *Updater) FindCandidates(doc *catalog.Document, pattern string) ([]Candidate, error) {
	matcher, err := NewMatcher(pattern)
	if err != nil {
		return nil, err
	}

	var candidates []Candidate
	for _, alias := range doc.Aliases() {
		if !matcher.Match(alias.Name) {
			continue
		}
		lib, ok := doc.FirstLibraryReferencing(alias.Name)
		if !ok {
			continue
		}
		candidates = append(candidates, Candidate{
			Section:    catalog.SectionVersions,
			Alias:      alias.Name,
			Coordinate: lib.Coordinate,
			Current:    alias.Value,
		})
	}
	for _, lib := range doc.Libraries() {
		if !lib.Version.IsLiteral() || !matcher.Match(lib.Alias) {
			continue
		}
		candidates = append(candidates, Candidate{
			Section:    catalog.SectionLibraries,
			Alias:      lib.Alias,
			Coordinate: lib.Coordinate,
			Current:    lib.Version.Literal,
		})
	}
	for _, plugin := range doc.Plugins() {
		if !plugin.Version.IsLiteral() || !matcher.Match(plugin.Alias) {
			continue
		}
		candidates = append(candidates, Candidate{
			Section:    catalog.SectionPlugins,
			Alias:      plugin.Alias,
			Coordinate: repository.PluginCoordinate(plugin.ID),
			Current:    plugin.Version.Literal,
		})
	}

	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Alias != candidates[j].Alias {
			return candidates[i].Alias < candidates[j].Alias
		}
		return candidates[i].Section < candidates[j].Section
	})
	return candidates, nil
}

// UpdateTargeted updates a single entry chosen by pattern. With exactly
// one match the candidate is picked automatically; multiple matches are
// offered for selection interactively and rejected otherwise. The chosen
// entry's full version list is fetched and either presented for explicit
// selection or auto-picked as the newest acceptable upgrade. Skipping, or
// choosing the version already in place, yields an empty report.
func (u *Updater) UpdateTargeted(doc *catalog.Document, pattern string) (*Report, error) {
	candidates, err := u.FindCandidates(doc, pattern)
	if err != nil {
		return nil, err
	}
	if len(candidates) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrNoMatch, pattern)
	}

	chosen := candidates[0]
	if len(candidates) > 1 {
		if !u.interact.enabled {
			return nil, fmt.Errorf("%w: %s", ErrAmbiguousPattern, pattern)
		}
		chosen, err = u.interact.SelectCandidate(candidates)
		if err != nil {
			return nil, err
		}
	}

	client := u.libraries
	if chosen.Section == catalog.SectionPlugins {
		client = u.plugins
	}
	versions, err := client.AvailableVersions(chosen.Coordinate)
	if err != nil {
		logger.Debug("%s %s: lookup failed: %v", chosen.Section, chosen.Alias, err)
	}
	if len(versions) == 0 {
		logger.Debug("%s %s: no versions available", chosen.Section, chosen.Alias)
		return NewReport(), nil
	}

	var selected string
	if u.interact.enabled {
		selected, err = u.interact.SelectVersion(chosen.Alias, chosen.Current, versions)
		if err != nil {
			return nil, err
		}
	} else {
		selected = u.pickUpgrade(versions, chosen.Current)
	}
	if selected == "" || selected == chosen.Current {
		return NewReport(), nil
	}

	if err := doc.SetVersion(chosen.Section, chosen.Alias, selected); err != nil {
		return nil, err
	}
	report := NewReport()
	report.add(chosen.Section, chosen.Alias, Change{Old: chosen.Current, New: selected})
	return report, nil
}

// pickUpgrade chooses the default version for a non-interactive targeted
// run: the first entry of the descending list that is a real upgrade over
// current, honoring stable-only mode. Empty means nothing qualified.
func (u *Updater) pickUpgrade(versions []string, current string) string {
	for _, v := range versions {
		if v == current {
			continue
		}
		if u.stableOnly && !version.Parse(v).IsStable() {
			continue
		}
		if !u.strategy.IsUpgrade(current, v) {
			continue
		}
		return v
	}
	return ""
}
