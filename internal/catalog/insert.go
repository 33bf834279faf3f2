package catalog

import (
	"fmt"
	"strings"

	"github.com/gradlecat/gvc/internal/repository"
)

// UpsertAlias sets a version alias to the given value, creating it in the
// [versions] section when it does not exist. It reports whether the
// document changed; an alias already holding the value is left alone.
func (d *Document) UpsertAlias(name, version string) (bool, error) {
	for _, a := range d.aliases {
		if a.Name == name {
			if a.Value == version {
				return false, nil
			}
			if err := d.SetVersion(SectionVersions, name, version); err != nil {
				return false, err
			}
			return true, nil
		}
	}
	if err := d.AddEntry(SectionVersions, name, version); err != nil {
		return false, err
	}
	return true, nil
}

// AddLibrary appends a library entry referencing a version alias:
//
//	alias = { module = "group:artifact", version = { ref = "versionAlias" } }
//
// The coordinate must not already be declared under any shape.
func (d *Document) AddLibrary(alias string, coord repository.Coordinate, versionAlias string) error {
	for _, lib := range d.libraries {
		if lib.Coordinate == coord {
			return fmt.Errorf("library %s already declared as %s: %w", coord, lib.Alias, ErrDuplicateEntry)
		}
	}
	raw := fmt.Sprintf(`{ module = "%s", version = { ref = "%s" } }`, coord, versionAlias)
	return d.addRaw(SectionLibraries, alias, raw)
}

// AddPlugin appends a plugin entry referencing a version alias. The plugin
// id must not already be declared.
func (d *Document) AddPlugin(alias, id, versionAlias string) error {
	for _, p := range d.plugins {
		if p.ID == id {
			return fmt.Errorf("plugin %s already declared as %s: %w", id, p.Alias, ErrDuplicateEntry)
		}
	}
	raw := fmt.Sprintf(`{ id = "%s", version = { ref = "%s" } }`, id, versionAlias)
	return d.addRaw(SectionPlugins, alias, raw)
}

// commonTLDs are group-id prefixes that carry no identity and are dropped
// when deriving aliases.
var commonTLDs = map[string]bool{
	"org": true,
	"com": true,
	"net": true,
	"io":  true,
	"dev": true,
}

// LibraryAlias derives a catalog alias from a coordinate, e.g.
// "org.jetbrains.compose.components:components-resources" becomes
// "jetbrains-compose-components-resources".
func LibraryAlias(coord repository.Coordinate) string {
	tokens := groupTokens(coord.Group)
	tokens = append(tokens, strings.FieldsFunc(coord.Artifact, func(r rune) bool {
		return r == '-' || r == '.'
	})...)
	return normalizeTokens(tokens)
}

// PluginAlias derives a catalog alias from a plugin id, e.g.
// "com.android.application" becomes "android-application".
func PluginAlias(id string) string {
	return normalizeTokens(groupTokens(id))
}

// VersionAlias derives a version alias from a group or plugin id. Long
// groups are truncated to their first two meaningful tokens plus a
// "-version" suffix so related artifacts share one alias.
func VersionAlias(group string) string {
	tokens := groupTokens(group)
	if len(tokens) == 0 {
		return "version"
	}
	if len(tokens) >= 3 {
		return normalizeTokens(tokens[:2]) + "-version"
	}
	return normalizeTokens(tokens)
}

// SanitizeAlias normalizes a user-supplied alias override.
func SanitizeAlias(raw string) string {
	return normalizeTokens([]string{raw})
}

func groupTokens(group string) []string {
	var tokens []string
	for _, part := range strings.Split(group, ".") {
		if part == "" || commonTLDs[part] {
			continue
		}
		cleaned := strings.Map(func(r rune) rune {
			if (r >= 'a' && r <= 'z') || (r >= 'A' && r <= 'Z') || (r >= '0' && r <= '9') {
				return r
			}
			return -1
		}, part)
		if cleaned != "" {
			tokens = append(tokens, cleaned)
		}
	}
	return tokens
}

// normalizeTokens lowercases the tokens, drops empties and collapses
// consecutive duplicates, then joins with dashes.
func normalizeTokens(tokens []string) string {
	var normalized []string
	for _, token := range tokens {
		lowered := strings.ToLower(token)
		if lowered == "" {
			continue
		}
		if len(normalized) > 0 && normalized[len(normalized)-1] == lowered {
			continue
		}
		normalized = append(normalized, lowered)
	}
	return strings.Join(normalized, "-")
}
