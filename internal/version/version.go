// Package version parses and orders the heterogeneous version strings found
// in Gradle version catalogs: semantic versions, purely numeric versions
// (date-based schemes like 2024.1.1), Maven SNAPSHOT versions, and anything
// else a build file may declare.
package version

import (
	"sort"
	"strconv"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// Kind classifies how a version string was recognized.
type Kind int

const (
	// KindSemantic is a strict semantic version (major.minor.patch).
	KindSemantic Kind = iota
	// KindNumeric is a dot-separated list of non-negative integers.
	KindNumeric
	// KindSnapshot is a Maven-style -SNAPSHOT version that is not valid semver.
	KindSnapshot
	// KindUnknown is anything the other classifications reject.
	KindUnknown
)

// unstableMarkers flag pre-release and development versions.
// A plain substring check against the lower-cased text, matching how
// Gradle tooling conventionally detects unstable versions.
var unstableMarkers = []string{
	"alpha", "beta", "rc", "snapshot",
	"dev", "-dev", "+dev", ".dev",
	"m1", "m2", "m3",
	"eap", "preview", "canary",
}

// Version is an immutable parsed version. The zero value is not meaningful;
// use Parse.
type Version struct {
	// Original is the exact text the version was parsed from.
	Original string

	kind Kind
	sem  *semver.Version
	nums []int
}

// Parse classifies a version string. It is total: text that fits no known
// scheme is classified KindUnknown rather than rejected.
func Parse(text string) Version {
	if sv, err := semver.StrictNewVersion(text); err == nil {
		return Version{Original: text, kind: KindSemantic, sem: sv}
	}
	if strings.HasSuffix(text, "-SNAPSHOT") {
		return Version{Original: text, kind: KindSnapshot}
	}
	if nums, ok := parseNumeric(text); ok {
		return Version{Original: text, kind: KindNumeric, nums: nums}
	}
	return Version{Original: text, kind: KindUnknown}
}

// parseNumeric parses dot-separated non-negative integers (e.g. "2024.1.1").
func parseNumeric(text string) ([]int, bool) {
	parts := strings.Split(text, ".")
	nums := make([]int, 0, len(parts))
	for _, part := range parts {
		n, err := strconv.Atoi(part)
		if err != nil || n < 0 {
			return nil, false
		}
		nums = append(nums, n)
	}
	if len(nums) == 0 {
		return nil, false
	}
	return nums, true
}

// Kind returns the classification of the version.
func (v Version) Kind() Kind {
	return v.kind
}

// IsStable reports whether the version carries no pre-release or development
// marker. Semantic versions with a pre-release component and SNAPSHOT
// versions are never stable.
func (v Version) IsStable() bool {
	lower := strings.ToLower(v.Original)
	for _, marker := range unstableMarkers {
		if strings.Contains(lower, marker) {
			return false
		}
	}

	switch v.kind {
	case KindSemantic:
		return v.sem.Prerelease() == ""
	case KindSnapshot:
		return false
	default:
		return true
	}
}

// Compare orders two versions. It returns -1 when v sorts before other,
// 0 when the original texts are equal, and 1 otherwise.
//
// Semantic pairs use semver precedence, numeric pairs compare element-wise
// then by length ("1.0.0" > "1.0"), a snapshot sorts below any non-snapshot,
// and every remaining pairing falls back to lexicographic text comparison.
// Ties are broken on the original text so the order is strict and total.
func (v Version) Compare(other Version) int {
	if v.Original == other.Original {
		return 0
	}

	switch {
	case v.kind == KindSemantic && other.kind == KindSemantic:
		if c := v.sem.Compare(other.sem); c != 0 {
			return c
		}
		return strings.Compare(v.Original, other.Original)

	case v.kind == KindNumeric && other.kind == KindNumeric:
		if c := compareNums(v.nums, other.nums); c != 0 {
			return c
		}
		return strings.Compare(v.Original, other.Original)

	case v.kind == KindSnapshot && other.kind == KindSnapshot:
		return strings.Compare(v.Original, other.Original)

	case v.kind == KindSnapshot:
		return -1

	case other.kind == KindSnapshot:
		return 1

	default:
		return strings.Compare(v.Original, other.Original)
	}
}

// compareNums compares element-wise over the shared prefix, then by length,
// so a longer version with an equal prefix sorts higher.
func compareNums(a, b []int) int {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	for i := 0; i < n; i++ {
		if a[i] != b[i] {
			if a[i] < b[i] {
				return -1
			}
			return 1
		}
	}
	switch {
	case len(a) < len(b):
		return -1
	case len(a) > len(b):
		return 1
	default:
		return 0
	}
}

// Latest returns the greatest version in the list, optionally considering
// stable versions only. The second return is false when the list is empty
// or filtering removes every candidate.
func Latest(versions []string, stableOnly bool) (string, bool) {
	var best Version
	found := false

	for _, raw := range versions {
		v := Parse(raw)
		if stableOnly && !v.IsStable() {
			continue
		}
		if !found || v.Compare(best) > 0 {
			best = v
			found = true
		}
	}

	if !found {
		return "", false
	}
	return best.Original, true
}

// IsNewer reports whether candidate sorts strictly above current.
func IsNewer(candidate, current string) bool {
	return Parse(candidate).Compare(Parse(current)) > 0
}

// SortDescending orders version strings newest-first, removing duplicate
// literals. The input slice is not modified.
func SortDescending(versions []string) []string {
	seen := make(map[string]struct{}, len(versions))
	unique := make([]string, 0, len(versions))
	for _, raw := range versions {
		if _, dup := seen[raw]; dup {
			continue
		}
		seen[raw] = struct{}{}
		unique = append(unique, raw)
	}

	parsed := make([]Version, len(unique))
	for i, raw := range unique {
		parsed[i] = Parse(raw)
	}
	sort.SliceStable(parsed, func(i, j int) bool {
		return parsed[i].Compare(parsed[j]) > 0
	})

	out := make([]string, len(parsed))
	for i, v := range parsed {
		out[i] = v.Original
	}
	return out
}
