package update

import (
	"bytes"
	"errors"
	"strings"
	"testing"

	"github.com/gradlecat/gvc/internal/catalog"
)

func targetedDoc(t *testing.T) *catalog.Document {
	t.Helper()
	doc, err := catalog.Parse([]byte(testCatalog))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	return doc
}

func TestFindCandidates(t *testing.T) {
	doc := targetedDoc(t)
	libs, plugins := testClients()
	u := New(libs, plugins)

	candidates, err := u.FindCandidates(doc, "kotlin")
	if err != nil {
		t.Fatalf("FindCandidates() error = %v", err)
	}
	// The alias (via its representative library) matches; the stdlib
	// library itself is excluded because its version is a reference.
	if len(candidates) != 1 {
		t.Fatalf("candidates = %+v, want exactly the kotlin alias", candidates)
	}
	c := candidates[0]
	if c.Section != catalog.SectionVersions || c.Alias != "kotlin" {
		t.Errorf("candidate = %+v", c)
	}
	if c.Coordinate.String() != "org.jetbrains.kotlin:kotlin-stdlib" {
		t.Errorf("representative coordinate = %s", c.Coordinate)
	}

	// An alias with no referencing library is never a candidate.
	candidates, err = u.FindCandidates(doc, "unused")
	if err != nil {
		t.Fatalf("FindCandidates() error = %v", err)
	}
	if len(candidates) != 0 {
		t.Errorf("candidates = %+v, want none", candidates)
	}
}

func TestFindCandidatesSorted(t *testing.T) {
	doc := targetedDoc(t)
	libs, plugins := testClients()

	candidates, err := New(libs, plugins).FindCandidates(doc, "*e*")
	if err != nil {
		t.Fatalf("FindCandidates() error = %v", err)
	}
	for i := 1; i < len(candidates); i++ {
		if candidates[i-1].Alias > candidates[i].Alias {
			t.Fatalf("candidates not sorted by alias: %+v", candidates)
		}
	}
}

func TestUpdateTargetedAutoPick(t *testing.T) {
	doc := targetedDoc(t)
	libs, plugins := testClients()

	report, err := New(libs, plugins, WithStableOnly(true)).UpdateTargeted(doc, "retrofit")
	if err != nil {
		t.Fatalf("UpdateTargeted() error = %v", err)
	}
	if got := report.Libraries["retrofit"]; got != (Change{Old: "2.9.0", New: "2.11.0"}) {
		t.Errorf("retrofit change = %+v", got)
	}
	if !strings.Contains(string(doc.Bytes()), `version = "2.11.0"`) {
		t.Error("document not updated")
	}
}

func TestUpdateTargetedStableOnlySkipsPrerelease(t *testing.T) {
	doc, err := catalog.Parse([]byte("[libraries]\nokhttp = \"com.squareup.okhttp3:okhttp:4.13.0\"\n"))
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	libs, plugins := testClients()

	report, err := New(libs, plugins, WithStableOnly(true)).UpdateTargeted(doc, "okhttp")
	if err != nil {
		t.Fatalf("UpdateTargeted() error = %v", err)
	}
	if !report.IsEmpty() {
		t.Errorf("report = %+v, want empty (only pre-release is newer)", report)
	}
}

func TestUpdateTargetedNoMatch(t *testing.T) {
	doc := targetedDoc(t)
	libs, plugins := testClients()

	_, err := New(libs, plugins).UpdateTargeted(doc, "does-not-exist")
	if !errors.Is(err, ErrNoMatch) {
		t.Errorf("UpdateTargeted() error = %v, want ErrNoMatch", err)
	}
}

func TestUpdateTargetedAmbiguousNonInteractive(t *testing.T) {
	doc := targetedDoc(t)
	libs, plugins := testClients()

	_, err := New(libs, plugins).UpdateTargeted(doc, "*t*")
	if !errors.Is(err, ErrAmbiguousPattern) {
		t.Errorf("UpdateTargeted() error = %v, want ErrAmbiguousPattern", err)
	}
}

func TestUpdateTargetedInteractiveSelection(t *testing.T) {
	doc := targetedDoc(t)
	libs, plugins := testClients()

	// Versions for okhttp, descending: 5.0.0-alpha.14, 4.13.0, 4.12.0.
	// Pick entry 1 of 1 is automatic; choose version 2.
	interact := NewInteraction(true, strings.NewReader("2\n"), &bytes.Buffer{})
	u := New(libs, plugins, WithInteraction(interact))

	report, err := u.UpdateTargeted(doc, "okhttp")
	if err != nil {
		t.Fatalf("UpdateTargeted() error = %v", err)
	}
	if got := report.Libraries["okhttp"]; got != (Change{Old: "4.12.0", New: "4.13.0"}) {
		t.Errorf("okhttp change = %+v", got)
	}
}

func TestUpdateTargetedInteractiveSkip(t *testing.T) {
	doc := targetedDoc(t)
	before := doc.Bytes()
	libs, plugins := testClients()

	interact := NewInteraction(true, strings.NewReader("s\n"), &bytes.Buffer{})
	u := New(libs, plugins, WithInteraction(interact))

	report, err := u.UpdateTargeted(doc, "okhttp")
	if err != nil {
		t.Fatalf("UpdateTargeted() error = %v", err)
	}
	if !report.IsEmpty() {
		t.Errorf("report = %+v, want empty", report)
	}
	if !bytes.Equal(doc.Bytes(), before) {
		t.Error("document mutated on skip")
	}
}

func TestUpdateTargetedSelectingCurrentIsNoop(t *testing.T) {
	doc := targetedDoc(t)
	before := doc.Bytes()
	libs, plugins := testClients()

	// Version 3 in the descending okhttp list is the current 4.12.0.
	interact := NewInteraction(true, strings.NewReader("3\n"), &bytes.Buffer{})
	u := New(libs, plugins, WithInteraction(interact))

	report, err := u.UpdateTargeted(doc, "okhttp")
	if err != nil {
		t.Fatalf("UpdateTargeted() error = %v", err)
	}
	if !report.IsEmpty() {
		t.Errorf("report = %+v, want empty", report)
	}
	if !bytes.Equal(doc.Bytes(), before) {
		t.Error("document mutated when current version selected")
	}
}

func TestUpdateTargetedQuit(t *testing.T) {
	doc := targetedDoc(t)
	before := doc.Bytes()
	libs, plugins := testClients()

	interact := NewInteraction(true, strings.NewReader("q\n"), &bytes.Buffer{})
	u := New(libs, plugins, WithInteraction(interact))

	_, err := u.UpdateTargeted(doc, "okhttp")
	if !errors.Is(err, ErrCancelled) {
		t.Fatalf("UpdateTargeted() error = %v, want ErrCancelled", err)
	}
	if !bytes.Equal(doc.Bytes(), before) {
		t.Error("document mutated despite quit")
	}
}
