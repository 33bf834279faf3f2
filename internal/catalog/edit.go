package catalog

import (
	"fmt"
	"regexp"
	"strings"
)

// Inline-table version keys are always preceded by "{" or "," so the
// patterns cannot accidentally match "version.ref" or a longer key name.
var (
	inlineVersionDq = regexp.MustCompile(`([{,]\s*version\s*=\s*)"[^"]*"`)
	inlineVersionSq = regexp.MustCompile(`([{,]\s*version\s*=\s*)'[^']*'`)
	tableVersionDq  = regexp.MustCompile(`^(\s*version\s*=\s*)"[^"]*"`)
	tableVersionSq  = regexp.MustCompile(`^(\s*version\s*=\s*)'[^']*'`)
)

// SetVersion rewrites the version carried by the entry at section/alias,
// preserving the entry's existing textual shape and everything else in the
// document. It understands the compact string shapes ("group:artifact:ver",
// "plugin.id:ver"), inline tables with a literal version key, and standard
// sub-tables like [libraries.foo]. Entries using any other shape yield
// ErrUnsupportedShape rather than a silent no-op.
func (d *Document) SetVersion(section, alias, newVersion string) error {
	if idx, ok := d.findInlineEntry(section, alias); ok {
		updated, err := rewriteInlineEntry(d.lines[idx], section, newVersion)
		if err != nil {
			return fmt.Errorf("%s.%s: %w", section, alias, err)
		}
		d.lines[idx] = updated
		d.refreshEntry(section, alias, newVersion)
		return nil
	}

	if start, end, ok := d.findTableSpan(section, alias); ok {
		for i := start; i < end; i++ {
			line, ok := replaceFirst(d.lines[i], newVersion, tableVersionDq, tableVersionSq)
			if !ok {
				continue
			}
			d.lines[i] = line
			d.refreshEntry(section, alias, newVersion)
			return nil
		}
		return fmt.Errorf("%s.%s: %w", section, alias, ErrUnsupportedShape)
	}

	return fmt.Errorf("%s.%s: %w", section, alias, ErrEntryNotFound)
}

// findInlineEntry locates the line declaring alias directly under the
// [section] header, stopping at the next header of any kind.
func (d *Document) findInlineEntry(section, alias string) (int, bool) {
	inSection := false
	for i, line := range d.lines {
		if name, isHeader := headerName(line); isHeader {
			inSection = name == section
			continue
		}
		if !inSection {
			continue
		}
		if key, _, ok := splitKeyValue(line); ok && key == alias {
			return i, true
		}
	}
	return 0, false
}

// findTableSpan locates a [section.alias] sub-table and returns the line
// range of its body.
func (d *Document) findTableSpan(section, alias string) (int, int, bool) {
	wanted := map[string]bool{
		section + "." + alias:        true,
		section + `."` + alias + `"`: true,
		section + `.'` + alias + `'`: true,
	}
	start := -1
	for i, line := range d.lines {
		name, isHeader := headerName(line)
		if !isHeader {
			continue
		}
		if start >= 0 {
			return start, i, true
		}
		if wanted[name] {
			start = i + 1
		}
	}
	if start >= 0 {
		return start, len(d.lines), true
	}
	return 0, 0, false
}

// rewriteInlineEntry rewrites the version inside a single-line entry,
// whichever of the compact shapes it uses.
func rewriteInlineEntry(line, section, newVersion string) (string, error) {
	_, valueStart, ok := splitKeyValue(line)
	if !ok {
		return "", ErrUnsupportedShape
	}

	switch line[valueStart] {
	case '"', '\'':
		quote := line[valueStart]
		closing := strings.IndexByte(line[valueStart+1:], quote)
		if closing < 0 {
			return "", ErrUnsupportedShape
		}
		content := line[valueStart+1 : valueStart+1+closing]
		rewritten, err := rewriteStringValue(section, content, newVersion)
		if err != nil {
			return "", err
		}
		return line[:valueStart+1] + rewritten + line[valueStart+1+closing:], nil
	case '{':
		updated, ok := replaceFirst(line, newVersion, inlineVersionDq, inlineVersionSq)
		if !ok {
			return "", ErrUnsupportedShape
		}
		return updated, nil
	default:
		return "", ErrUnsupportedShape
	}
}

// rewriteStringValue rewrites the version component of a compact string
// value. Version aliases are plain strings; libraries carry the version as
// the third colon-separated component, plugins as the second.
func rewriteStringValue(section, content, newVersion string) (string, error) {
	switch section {
	case SectionVersions:
		return newVersion, nil
	case SectionLibraries:
		parts := strings.Split(content, ":")
		if len(parts) != 3 {
			return "", ErrUnsupportedShape
		}
		parts[2] = newVersion
		return strings.Join(parts, ":"), nil
	case SectionPlugins:
		parts := strings.Split(content, ":")
		if len(parts) != 2 {
			return "", ErrUnsupportedShape
		}
		parts[1] = newVersion
		return strings.Join(parts, ":"), nil
	}
	return "", ErrUnsupportedShape
}

// replaceFirst swaps the quoted version token matched by one of the given
// patterns for newVersion, keeping the original quote style and anything
// after the token (trailing keys, comments) intact.
func replaceFirst(line, newVersion string, dq, sq *regexp.Regexp) (string, bool) {
	if m := dq.FindStringSubmatchIndex(line); m != nil {
		return line[:m[3]] + `"` + newVersion + `"` + line[m[1]:], true
	}
	if m := sq.FindStringSubmatchIndex(line); m != nil {
		return line[:m[3]] + `'` + newVersion + `'` + line[m[1]:], true
	}
	return line, false
}

// headerName reports whether the line is a [table] header and returns the
// name between the brackets.
func headerName(line string) (string, bool) {
	trimmed := strings.TrimSpace(line)
	if !strings.HasPrefix(trimmed, "[") || strings.HasPrefix(trimmed, "[[") {
		return "", false
	}
	end := strings.IndexByte(trimmed, ']')
	if end < 0 {
		return "", false
	}
	return strings.TrimSpace(trimmed[1:end]), true
}

// splitKeyValue splits an assignment line into its key and the index where
// the value begins. The key is returned with surrounding quotes stripped.
func splitKeyValue(line string) (string, int, bool) {
	eq := strings.IndexByte(line, '=')
	if eq < 0 {
		return "", 0, false
	}
	key := strings.TrimSpace(line[:eq])
	if key == "" {
		return "", 0, false
	}
	valueStart := eq + 1
	for valueStart < len(line) && (line[valueStart] == ' ' || line[valueStart] == '\t') {
		valueStart++
	}
	if valueStart == len(line) {
		return "", 0, false
	}
	if len(key) >= 2 && (key[0] == '"' || key[0] == '\'') && key[len(key)-1] == key[0] {
		key = key[1 : len(key)-1]
	}
	return key, valueStart, true
}

// AddEntry appends `alias = "value"` to a section, creating the section at
// the end of the document when it does not exist yet. The alias must not
// already be declared in that section.
func (d *Document) AddEntry(section, alias, value string) error {
	return d.addRaw(section, alias, `"`+value+`"`)
}

// addRaw appends `alias = <raw>` where raw is already valid TOML.
func (d *Document) addRaw(section, alias, raw string) error {
	if _, ok := d.findInlineEntry(section, alias); ok {
		return fmt.Errorf("%s.%s: %w", section, alias, ErrDuplicateEntry)
	}
	if _, _, ok := d.findTableSpan(section, alias); ok {
		return fmt.Errorf("%s.%s: %w", section, alias, ErrDuplicateEntry)
	}

	line := alias + " = " + raw
	insertAt, found := d.sectionInsertPoint(section)
	if !found {
		if len(d.lines) > 0 && strings.TrimSpace(d.lines[len(d.lines)-1]) != "" {
			d.lines = append(d.lines, "")
		}
		d.lines = append(d.lines, "["+section+"]", line)
		d.trailingNewline = true
		return d.reparse()
	}

	d.lines = append(d.lines[:insertAt], append([]string{line}, d.lines[insertAt:]...)...)
	return d.reparse()
}

// sectionInsertPoint finds the line index where a new entry of the section
// should be inserted: after the section's last non-blank line, before the
// next header.
func (d *Document) sectionInsertPoint(section string) (int, bool) {
	inSection := false
	insertAt := -1
	for i, line := range d.lines {
		if name, isHeader := headerName(line); isHeader {
			if inSection {
				break
			}
			if name == section {
				inSection = true
				insertAt = i + 1
			}
			continue
		}
		if inSection && strings.TrimSpace(line) != "" {
			insertAt = i + 1
		}
	}
	if insertAt < 0 {
		return 0, false
	}
	return insertAt, true
}

// reparse rebuilds the read model after a structural edit.
func (d *Document) reparse() error {
	doc, err := Parse(d.Bytes())
	if err != nil {
		return err
	}
	d.aliases = doc.aliases
	d.libraries = doc.libraries
	d.plugins = doc.plugins
	return nil
}

// refreshEntry keeps the parsed read model in step with a text edit so
// callers that inspect entries after mutating see the new value.
func (d *Document) refreshEntry(section, alias, newVersion string) {
	switch section {
	case SectionVersions:
		for i := range d.aliases {
			if d.aliases[i].Name == alias {
				d.aliases[i].Value = newVersion
			}
		}
	case SectionLibraries:
		for i := range d.libraries {
			if d.libraries[i].Alias == alias {
				d.libraries[i].Version.Literal = newVersion
			}
		}
	case SectionPlugins:
		for i := range d.plugins {
			if d.plugins[i].Alias == alias {
				d.plugins[i].Version.Literal = newVersion
			}
		}
	}
}
