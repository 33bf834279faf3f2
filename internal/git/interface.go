// Package git wraps the handful of git operations the update workflow
// needs: verifying a clean work tree, branching, and committing the
// rewritten catalog.
package git

// Executor defines the git operations used by the update workflow.
// This interface allows for mocking git operations in tests.
type Executor interface {
	// IsClean reports whether the work tree has no uncommitted changes
	IsClean() (bool, error)

	// CurrentBranch returns the name of the checked-out branch
	CurrentBranch() (string, error)

	// CheckoutNewBranch creates and switches to a new branch
	CheckoutNewBranch(name string) error

	// Add stages files for commit
	Add(paths ...string) error

	// Commit creates a git commit with the specified message
	Commit(message string) error

	// WorkDir returns the working directory of the git repository
	WorkDir() string
}
