package version

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
)

func TestParseKind(t *testing.T) {
	tests := []struct {
		text string
		want Kind
	}{
		{"1.0.0", KindSemantic},
		{"1.0.1-alpha", KindSemantic},
		{"1.0.0-SNAPSHOT", KindSemantic}, // valid semver pre-release
		{"2.0.0+build.1", KindSemantic},
		{"1.0", KindNumeric},
		{"2024.1.1", KindNumeric},
		{"1.0.0.0", KindNumeric},
		{"7", KindNumeric},
		{"1.0-SNAPSHOT", KindSnapshot},
		{"2.x-SNAPSHOT", KindSnapshot},
		{"latest.release", KindUnknown},
		{"1.0.0.Final", KindUnknown},
		{"", KindUnknown},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Parse(tt.text).Kind(); got != tt.want {
				t.Errorf("Parse(%q).Kind() = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestIsStable(t *testing.T) {
	tests := []struct {
		text string
		want bool
	}{
		{"1.0.0", true},
		{"2024.1.1", true},
		{"1.0.0-alpha", false},
		{"1.0.0-beta.2", false},
		{"1.0.0-rc.1", false},
		{"1.0.0-SNAPSHOT", false},
		{"1.0-SNAPSHOT", false},
		{"1.9.0-RC", false},
		{"0.5.0-dev17", false},
		{"8.0.0-alpha05", false},
		{"2023.1.1-eap03", false},
		{"1.0.0-M2", false},
		{"7.0.0-preview1", false},
		{"1.2.3-canary.8", false},
		{"33.0.0-jre", true},
		{"1.0.0.Final", true},
	}

	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			if got := Parse(tt.text).IsStable(); got != tt.want {
				t.Errorf("Parse(%q).IsStable() = %v, want %v", tt.text, got, tt.want)
			}
		})
	}
}

func TestCompare(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"1.0.1", "1.0.0", 1},
		{"1.0.0", "1.0.0", 0},
		{"1.0.0", "1.0.0-SNAPSHOT", 1}, // semver: release above pre-release
		{"1.0.0", "1.0-SNAPSHOT", 1},   // snapshot below any non-snapshot
		{"1.0.0.0", "1.0.0", 1},        // longer numeric with equal prefix wins
		{"1.0", "1.0.0", -1},
		{"2024.2.1", "2024.10.0", -1}, // numeric, not lexicographic
		{"2.0.0-alpha", "1.9.0", 1},   // precedence ignores stability
		{"1.0-SNAPSHOT", "2.0-SNAPSHOT", -1},
		{"abc", "abd", -1}, // unknown pairs fall back to text
	}

	for _, tt := range tests {
		t.Run(tt.a+" vs "+tt.b, func(t *testing.T) {
			if got := Parse(tt.a).Compare(Parse(tt.b)); got != tt.want {
				t.Errorf("Compare(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
			}
		})
	}
}

func TestLatest(t *testing.T) {
	versions := []string{"1.0.0", "1.1.0-alpha", "1.0.1"}

	got, ok := Latest(versions, false)
	if !ok || got != "1.1.0-alpha" {
		t.Errorf("Latest(all) = %q, %v, want 1.1.0-alpha", got, ok)
	}

	got, ok = Latest(versions, true)
	if !ok || got != "1.0.1" {
		t.Errorf("Latest(stable) = %q, %v, want 1.0.1", got, ok)
	}

	if _, ok := Latest(nil, false); ok {
		t.Error("Latest(empty) reported a result")
	}
	if _, ok := Latest([]string{"1.0-SNAPSHOT"}, true); ok {
		t.Error("Latest(stable) over snapshots reported a result")
	}
}

func TestIsNewer(t *testing.T) {
	tests := []struct {
		current   string
		candidate string
		want      bool
	}{
		{"1.0.0", "1.0.1", true},
		{"1.0.1", "1.0.0", false},
		{"1.0.0", "1.0.0", false},
		{"1.0.0", "1.0-SNAPSHOT", false},
		{"1.0", "1.0.0", true},
	}

	for _, tt := range tests {
		if got := IsNewer(tt.candidate, tt.current); got != tt.want {
			t.Errorf("IsNewer(%q, %q) = %v, want %v", tt.candidate, tt.current, got, tt.want)
		}
	}
}

func TestSortDescending(t *testing.T) {
	got := SortDescending([]string{"1.0.0", "2.0.0", "1.5.0", "2.0.0", "1.0-SNAPSHOT"})
	want := []string{"2.0.0", "1.5.0", "1.0.0", "1.0-SNAPSHOT"}
	if len(got) != len(want) {
		t.Fatalf("SortDescending() = %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("SortDescending() = %v, want %v", got, want)
		}
	}
}

// genVersionString produces a mix of the version schemes seen in catalogs.
func genVersionString() gopter.Gen {
	numeric := gopter.CombineGens(
		gen.IntRange(0, 30), gen.IntRange(0, 30), gen.IntRange(0, 30),
	).Map(func(vals []interface{}) string {
		a, b, c := vals[0].(int), vals[1].(int), vals[2].(int)
		return itoa(a) + "." + itoa(b) + "." + itoa(c)
	})
	return gen.OneGenOf(
		numeric,
		numeric.Map(func(s string) string { return s + "-SNAPSHOT" }),
		numeric.Map(func(s string) string { return s + "-alpha" }),
		gopter.CombineGens(gen.IntRange(0, 30), gen.IntRange(0, 30)).Map(func(vals []interface{}) string {
			return itoa(vals[0].(int)) + "." + itoa(vals[1].(int))
		}),
		gen.AlphaString(),
	)
}

func itoa(n int) string {
	if n == 0 {
		return "0"
	}
	var digits []byte
	for n > 0 {
		digits = append([]byte{byte('0' + n%10)}, digits...)
		n /= 10
	}
	return string(digits)
}

func TestOrderingProperties(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 500

	properties := gopter.NewProperties(parameters)

	properties.Property("comparison is antisymmetric", prop.ForAll(
		func(a, b string) bool {
			return Parse(a).Compare(Parse(b)) == -Parse(b).Compare(Parse(a))
		},
		genVersionString(),
		genVersionString(),
	))

	properties.Property("equal text compares equal", prop.ForAll(
		func(a string) bool {
			return Parse(a).Compare(Parse(a)) == 0
		},
		genVersionString(),
	))

	properties.Property("distinct text never compares equal", prop.ForAll(
		func(a, b string) bool {
			if a == b {
				return true
			}
			return Parse(a).Compare(Parse(b)) != 0
		},
		genVersionString(),
		genVersionString(),
	))

	properties.Property("IsNewer is asymmetric", prop.ForAll(
		func(a, b string) bool {
			if a == b {
				return true
			}
			return !(IsNewer(a, b) && IsNewer(b, a))
		},
		genVersionString(),
		genVersionString(),
	))

	properties.Property("Latest returns a member of its input", prop.ForAll(
		func(versions []string, stableOnly bool) bool {
			latest, ok := Latest(versions, stableOnly)
			if !ok {
				return true
			}
			for _, v := range versions {
				if v == latest {
					return true
				}
			}
			return false
		},
		gen.SliceOf(genVersionString()),
		gen.Bool(),
	))

	properties.TestingRun(t)
}
