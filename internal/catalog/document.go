// Package catalog reads and edits Gradle version catalog files
// (libs.versions.toml). Parsing goes through a TOML decoder so malformed
// documents are rejected up front; edits are applied line by line so
// comments, key order, and formatting of untouched entries survive a write.
package catalog

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/gradlecat/gvc/internal/common/logger"
	"github.com/gradlecat/gvc/internal/repository"
)

// Section names recognized in a version catalog.
const (
	SectionVersions  = "versions"
	SectionLibraries = "libraries"
	SectionPlugins   = "plugins"
)

var (
	// ErrMalformedDocument indicates the file is not valid TOML.
	ErrMalformedDocument = errors.New("malformed catalog document")
	// ErrEntryNotFound indicates no entry with the requested alias exists
	// in the requested section.
	ErrEntryNotFound = errors.New("catalog entry not found")
	// ErrUnsupportedShape indicates an entry uses a textual form this
	// package does not know how to rewrite safely.
	ErrUnsupportedShape = errors.New("unsupported catalog entry shape")
	// ErrDuplicateEntry indicates the alias is already declared in the
	// targeted section.
	ErrDuplicateEntry = errors.New("catalog entry already exists")
)

// VersionSlot is the version field of a library or plugin entry: either a
// literal version string or a reference to a named alias in [versions].
// Both fields empty means the entry declares no version at all.
type VersionSlot struct {
	Literal string
	Ref     string
}

// IsRef reports whether the slot points at a version alias.
func (s VersionSlot) IsRef() bool { return s.Ref != "" }

// IsLiteral reports whether the slot carries an inline version string.
func (s VersionSlot) IsLiteral() bool { return s.Literal != "" }

// IsEmpty reports whether the entry declares no version.
func (s VersionSlot) IsEmpty() bool { return s.Literal == "" && s.Ref == "" }

// Alias is an entry of the [versions] section: a named version string shared
// by any number of library and plugin entries.
type Alias struct {
	Name  string
	Value string
}

// Library is an entry of the [libraries] section.
type Library struct {
	Alias      string
	Coordinate repository.Coordinate
	Version    VersionSlot
}

// Plugin is an entry of the [plugins] section.
type Plugin struct {
	Alias   string
	ID      string
	Version VersionSlot
}

// Document is a version catalog held in memory. The read model (aliases,
// libraries, plugins, in declaration order) is built once at parse time;
// mutations address the underlying text directly.
type Document struct {
	lines           []string
	trailingNewline bool

	aliases   []Alias
	libraries []Library
	plugins   []Plugin
}

// Load reads and parses the catalog at path.
func Load(path string) (*Document, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog: %w", err)
	}
	doc, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return doc, nil
}

// Parse builds a Document from raw catalog bytes. Unknown or absent
// sections are treated as empty. Entries whose shape cannot be understood
// are dropped from the read model with a debug note; they are still
// preserved verbatim in the output text.
func Parse(data []byte) (*Document, error) {
	var raw struct {
		Versions  map[string]toml.Primitive `toml:"versions"`
		Libraries map[string]toml.Primitive `toml:"libraries"`
		Plugins   map[string]toml.Primitive `toml:"plugins"`
	}
	md, err := toml.Decode(string(data), &raw)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrMalformedDocument, err)
	}

	text := string(data)
	doc := &Document{
		lines:           strings.Split(strings.TrimSuffix(text, "\n"), "\n"),
		trailingNewline: strings.HasSuffix(text, "\n"),
	}
	if text == "" {
		doc.lines = nil
	}

	// MetaData.Keys preserves the order keys appear in the file, which is
	// the iteration order everything downstream relies on.
	for _, key := range md.Keys() {
		if len(key) != 2 {
			continue
		}
		section, alias := key[0], key[1]
		switch section {
		case SectionVersions:
			prim, ok := raw.Versions[alias]
			if !ok {
				continue
			}
			var value string
			if err := md.PrimitiveDecode(prim, &value); err != nil {
				logger.Debug("skipping version alias %s: not a plain string", alias)
				continue
			}
			doc.aliases = append(doc.aliases, Alias{Name: alias, Value: value})
		case SectionLibraries:
			prim, ok := raw.Libraries[alias]
			if !ok {
				continue
			}
			lib, err := decodeLibrary(md, alias, prim)
			if err != nil {
				logger.Debug("skipping library %s: %v", alias, err)
				continue
			}
			doc.libraries = append(doc.libraries, lib)
		case SectionPlugins:
			prim, ok := raw.Plugins[alias]
			if !ok {
				continue
			}
			plugin, err := decodePlugin(md, alias, prim)
			if err != nil {
				logger.Debug("skipping plugin %s: %v", alias, err)
				continue
			}
			doc.plugins = append(doc.plugins, plugin)
		}
	}

	return doc, nil
}

// decodeLibrary understands the three equivalent library shapes: a
// "group:artifact:version" string, a table with a module field, and a table
// with separate group/name fields.
func decodeLibrary(md toml.MetaData, alias string, prim toml.Primitive) (Library, error) {
	var text string
	if err := md.PrimitiveDecode(prim, &text); err == nil {
		coord, ver, err := repository.ParseCoordinate(text)
		if err != nil {
			return Library{}, err
		}
		return Library{
			Alias:      alias,
			Coordinate: coord,
			Version:    VersionSlot{Literal: ver},
		}, nil
	}

	var table map[string]interface{}
	if err := md.PrimitiveDecode(prim, &table); err != nil {
		return Library{}, fmt.Errorf("unrecognized value: %w", err)
	}

	lib := Library{Alias: alias}
	if module, ok := table["module"].(string); ok {
		coord, _, err := repository.ParseCoordinate(module)
		if err != nil {
			return Library{}, err
		}
		lib.Coordinate = coord
	} else {
		group, _ := table["group"].(string)
		name, _ := table["name"].(string)
		if group == "" || name == "" {
			return Library{}, errors.New("no module or group/name keys")
		}
		lib.Coordinate = repository.NewCoordinate(group, name)
	}

	slot, err := decodeVersionSlot(table["version"])
	if err != nil {
		return Library{}, err
	}
	lib.Version = slot
	return lib, nil
}

// decodePlugin understands the "id:version" string shape and the table
// shape with id and version keys.
func decodePlugin(md toml.MetaData, alias string, prim toml.Primitive) (Plugin, error) {
	var text string
	if err := md.PrimitiveDecode(prim, &text); err == nil {
		parts := strings.Split(text, ":")
		if len(parts) != 2 || parts[0] == "" || parts[1] == "" {
			return Plugin{}, fmt.Errorf("invalid plugin notation %q", text)
		}
		return Plugin{
			Alias:   alias,
			ID:      parts[0],
			Version: VersionSlot{Literal: parts[1]},
		}, nil
	}

	var table map[string]interface{}
	if err := md.PrimitiveDecode(prim, &table); err != nil {
		return Plugin{}, fmt.Errorf("unrecognized value: %w", err)
	}

	id, _ := table["id"].(string)
	if id == "" {
		return Plugin{}, errors.New("no id key")
	}
	slot, err := decodeVersionSlot(table["version"])
	if err != nil {
		return Plugin{}, err
	}
	return Plugin{Alias: alias, ID: id, Version: slot}, nil
}

// decodeVersionSlot interprets a version field: a literal string, a
// { ref = "..." } table (equivalently version.ref = "..."), or absent.
// Rich version constraints (strictly/require/prefer) are not editable.
func decodeVersionSlot(value interface{}) (VersionSlot, error) {
	switch v := value.(type) {
	case nil:
		return VersionSlot{}, nil
	case string:
		return VersionSlot{Literal: v}, nil
	case map[string]interface{}:
		if ref, ok := v["ref"].(string); ok {
			return VersionSlot{Ref: ref}, nil
		}
		return VersionSlot{}, errors.New("rich version constraint")
	default:
		return VersionSlot{}, fmt.Errorf("unexpected version value %T", value)
	}
}

// Aliases returns the [versions] entries in declaration order.
func (d *Document) Aliases() []Alias { return d.aliases }

// Libraries returns the [libraries] entries in declaration order.
func (d *Document) Libraries() []Library { return d.libraries }

// Plugins returns the [plugins] entries in declaration order.
func (d *Document) Plugins() []Plugin { return d.plugins }

// FirstLibraryReferencing returns the first library, in declaration order,
// whose version points at the given alias name.
func (d *Document) FirstLibraryReferencing(aliasName string) (Library, bool) {
	for _, lib := range d.libraries {
		if lib.Version.Ref == aliasName {
			return lib, true
		}
	}
	return Library{}, false
}

// Bytes serializes the document, reproducing the original text except for
// fields changed through SetVersion.
func (d *Document) Bytes() []byte {
	out := strings.Join(d.lines, "\n")
	if d.trailingNewline {
		out += "\n"
	}
	return []byte(out)
}

// WriteFile writes the document through a temporary file in the target
// directory so readers never observe a partially written catalog.
func (d *Document) WriteFile(path string) error {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, ".libs.versions-*.toml")
	if err != nil {
		return fmt.Errorf("failed to create temporary catalog: %w", err)
	}
	tmpPath := tmp.Name()
	if _, err := tmp.Write(d.Bytes()); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := os.Chmod(tmpPath, 0644); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to write catalog: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("failed to replace catalog: %w", err)
	}
	return nil
}
