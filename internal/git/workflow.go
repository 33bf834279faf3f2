package git

import (
	"fmt"
	"time"
)

// BranchPrefix is the namespace for update branches.
const BranchPrefix = "deps/update-"

// BranchName returns the branch name for an update run on the given date,
// e.g. deps/update-2026-08-29.
func BranchName(t time.Time) string {
	return BranchPrefix + t.Format("2006-01-02")
}

// CommitUpdate creates an update branch, stages the catalog file, and
// commits it with a message naming the change count.
func CommitUpdate(g Executor, catalogPath string, changes int) error {
	branch := BranchName(time.Now())
	if err := g.CheckoutNewBranch(branch); err != nil {
		return fmt.Errorf("failed to create branch %s: %w", branch, err)
	}
	if err := g.Add(catalogPath); err != nil {
		return fmt.Errorf("failed to stage catalog: %w", err)
	}

	noun := "dependencies"
	if changes == 1 {
		noun = "dependency"
	}
	message := fmt.Sprintf("chore(deps): update %d %s in version catalog", changes, noun)
	if err := g.Commit(message); err != nil {
		return fmt.Errorf("failed to commit update: %w", err)
	}
	return nil
}

// EnsureClean fails when the work tree has uncommitted changes, so an
// update never mixes with unrelated edits.
func EnsureClean(g Executor) error {
	clean, err := g.IsClean()
	if err != nil {
		return fmt.Errorf("failed to check work tree: %w", err)
	}
	if !clean {
		return fmt.Errorf("work tree has uncommitted changes, commit or stash them first")
	}
	return nil
}
