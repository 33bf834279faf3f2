package update

import (
	"github.com/gradlecat/gvc/internal/catalog"
	"github.com/gradlecat/gvc/internal/common/logger"
	"github.com/gradlecat/gvc/internal/repository"
)

// Updater walks a catalog document, resolves latest versions for its
// entries, and rewrites the ones the upgrade policy (and, interactively,
// the user) accepts. All mutation happens on the in-memory document; the
// caller decides whether to write it out.
type Updater struct {
	libraries  repository.Client
	plugins    repository.Client
	strategy   repository.VersionStrategy
	interact   *Interaction
	stableOnly bool
}

// Option configures an Updater.
type Option func(*Updater)

// WithStrategy replaces the upgrade policy.
func WithStrategy(s repository.VersionStrategy) Option {
	return func(u *Updater) { u.strategy = s }
}

// WithInteraction enables per-change confirmation prompts.
func WithInteraction(i *Interaction) Option {
	return func(u *Updater) { u.interact = i }
}

// WithStableOnly restricts candidate versions to stable releases.
func WithStableOnly(stableOnly bool) Option {
	return func(u *Updater) { u.stableOnly = stableOnly }
}

// New builds an Updater. Library entries and version aliases resolve
// through libraryClient; plugin entries through pluginClient.
func New(libraryClient, pluginClient repository.Client, opts ...Option) *Updater {
	u := &Updater{
		libraries: libraryClient,
		plugins:   pluginClient,
		strategy:  repository.DefaultStrategy{},
		interact:  NewInteraction(false, nil, nil),
	}
	for _, opt := range opts {
		opt(u)
	}
	return u
}

// UpdateAll checks every entry across the versions, libraries, and plugins
// sections and applies accepted upgrades to the document.
func (u *Updater) UpdateAll(doc *catalog.Document) (*Report, error) {
	return u.run(doc, true)
}

// Check resolves latest versions for every entry without touching the
// document, reporting the upgrades an UpdateAll run would apply.
func (u *Updater) Check(doc *catalog.Document) (*Report, error) {
	return u.run(doc, false)
}

func (u *Updater) run(doc *catalog.Document, apply bool) (*Report, error) {
	report := NewReport()
	sections := []string{catalog.SectionVersions, catalog.SectionLibraries, catalog.SectionPlugins}
	for _, section := range sections {
		if err := u.runSection(doc, section, apply, report); err != nil {
			return nil, err
		}
	}
	return report, nil
}

// sectionEntry is the uniform view the section loop needs of one upgrade
// candidate, whatever section it came from.
type sectionEntry struct {
	alias   string
	coord   repository.Coordinate
	current string
}

// runSection is the one generic per-section loop: enumerate entries,
// resolve, decide, confirm, mutate. Per-entry lookup failures leave the
// entry unchanged and the loop continues; only cancellation and unsafe
// document shapes abort.
func (u *Updater) runSection(doc *catalog.Document, section string, apply bool, report *Report) error {
	client := u.libraries
	if section == catalog.SectionPlugins {
		client = u.plugins
	}

	for _, entry := range u.sectionEntries(doc, section) {
		latest, ok, err := client.LatestVersion(entry.coord, u.stableOnly)
		if err != nil || !ok {
			if err != nil {
				logger.Debug("%s %s: lookup failed: %v", section, entry.alias, err)
			}
			continue
		}
		if !u.strategy.IsUpgrade(entry.current, latest) {
			continue
		}

		if apply {
			accepted, err := u.interact.Confirm(sectionLabel(section), entry.alias, entry.current, latest)
			if err != nil {
				return err
			}
			if !accepted {
				continue
			}
			if err := doc.SetVersion(section, entry.alias, latest); err != nil {
				return err
			}
		}
		report.add(section, entry.alias, Change{Old: entry.current, New: latest})
	}
	return nil
}

// sectionEntries flattens one catalog section into upgrade candidates, in
// declaration order. Library and plugin entries whose version is an alias
// reference are skipped here; the alias itself is the candidate, resolved
// through the first library that references it. Aliases nothing references
// are never checked.
func (u *Updater) sectionEntries(doc *catalog.Document, section string) []sectionEntry {
	var entries []sectionEntry
	switch section {
	case catalog.SectionVersions:
		for _, alias := range doc.Aliases() {
			lib, ok := doc.FirstLibraryReferencing(alias.Name)
			if !ok {
				logger.Debug("version alias %s: no referencing library, skipping", alias.Name)
				continue
			}
			entries = append(entries, sectionEntry{
				alias:   alias.Name,
				coord:   lib.Coordinate,
				current: alias.Value,
			})
		}
	case catalog.SectionLibraries:
		for _, lib := range doc.Libraries() {
			if !lib.Version.IsLiteral() {
				continue
			}
			entries = append(entries, sectionEntry{
				alias:   lib.Alias,
				coord:   lib.Coordinate,
				current: lib.Version.Literal,
			})
		}
	case catalog.SectionPlugins:
		for _, plugin := range doc.Plugins() {
			if !plugin.Version.IsLiteral() {
				continue
			}
			entries = append(entries, sectionEntry{
				alias:   plugin.Alias,
				coord:   repository.PluginCoordinate(plugin.ID),
				current: plugin.Version.Literal,
			})
		}
	}
	return entries
}

func sectionLabel(section string) string {
	switch section {
	case catalog.SectionVersions:
		return "version"
	case catalog.SectionLibraries:
		return "library"
	case catalog.SectionPlugins:
		return "plugin"
	}
	return section
}

func (r *Report) add(section, alias string, change Change) {
	switch section {
	case catalog.SectionVersions:
		r.Aliases[alias] = change
	case catalog.SectionLibraries:
		r.Libraries[alias] = change
	case catalog.SectionPlugins:
		r.Plugins[alias] = change
	}
}
