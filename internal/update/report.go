// Package update drives version catalog upgrades: it enumerates catalog
// entries, resolves latest versions through repository clients, applies a
// replaceable upgrade policy, and folds accepted changes into a report.
package update

import "sort"

// Change is one old→new version transition.
type Change struct {
	Old string
	New string
}

// Report summarizes the changes applied (or, in check mode, proposed) for
// one run, keyed by entry alias within each catalog section.
type Report struct {
	Aliases   map[string]Change
	Libraries map[string]Change
	Plugins   map[string]Change
}

// NewReport returns an empty report.
func NewReport() *Report {
	return &Report{
		Aliases:   make(map[string]Change),
		Libraries: make(map[string]Change),
		Plugins:   make(map[string]Change),
	}
}

// IsEmpty reports whether the run produced no changes.
func (r *Report) IsEmpty() bool {
	return len(r.Aliases) == 0 && len(r.Libraries) == 0 && len(r.Plugins) == 0
}

// Total returns the number of changed entries across all sections.
func (r *Report) Total() int {
	return len(r.Aliases) + len(r.Libraries) + len(r.Plugins)
}

// SortedKeys returns the keys of one change map in alphabetical order, for
// deterministic presentation.
func SortedKeys(changes map[string]Change) []string {
	keys := make([]string, 0, len(changes))
	for k := range changes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
