package git

import (
	"bytes"
	"errors"
	"os/exec"
	"strings"
)

var (
	ErrGitCommand    = errors.New("git command failed")
	ErrInvalidBranch = errors.New("invalid branch name")
)

// Runner executes git commands in a specific working directory.
type Runner struct {
	workDir string
}

// NewRunner creates a Runner for the specified working directory.
func NewRunner(workDir string) *Runner {
	return &Runner{workDir: workDir}
}

// WorkDir returns the working directory of the Runner.
func (g *Runner) WorkDir() string {
	return g.workDir
}

// runCommand executes a git command and returns stdout and any error,
// folding stderr into the error for context.
func (g *Runner) runCommand(args ...string) (string, error) {
	cmd := exec.Command("git", args...)
	cmd.Dir = g.workDir

	var stdoutBuf, stderrBuf bytes.Buffer
	cmd.Stdout = &stdoutBuf
	cmd.Stderr = &stderrBuf

	err := cmd.Run()
	if err != nil {
		if stderr := strings.TrimSpace(stderrBuf.String()); stderr != "" {
			err = errors.Join(ErrGitCommand, errors.New(stderr))
		}
		return "", err
	}
	return stdoutBuf.String(), nil
}

// IsClean reports whether the work tree has no uncommitted changes.
func (g *Runner) IsClean() (bool, error) {
	stdout, err := g.runCommand("status", "--porcelain")
	if err != nil {
		return false, err
	}
	return strings.TrimSpace(stdout) == "", nil
}

// CurrentBranch returns the name of the checked-out branch.
func (g *Runner) CurrentBranch() (string, error) {
	stdout, err := g.runCommand("rev-parse", "--abbrev-ref", "HEAD")
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(stdout), nil
}

// CheckoutNewBranch creates and switches to a new branch. The name is
// validated so a malformed or hostile branch name never reaches the
// command line as anything but a positional argument.
func (g *Runner) CheckoutNewBranch(name string) error {
	if err := validateBranchName(name); err != nil {
		return err
	}
	_, err := g.runCommand("checkout", "-b", name)
	return err
}

// Add stages the given paths, or all changes when none are given.
func (g *Runner) Add(paths ...string) error {
	if len(paths) == 0 {
		_, err := g.runCommand("add", ".")
		return err
	}
	args := append([]string{"add", "--"}, paths...)
	_, err := g.runCommand(args...)
	return err
}

// Commit creates a git commit with the specified message.
func (g *Runner) Commit(message string) error {
	_, err := g.runCommand("commit", "-m", message)
	return err
}

// validateBranchName rejects names git itself would refuse, plus anything
// starting with "-" that could read as an option.
func validateBranchName(name string) error {
	if name == "" || strings.HasPrefix(name, "-") {
		return ErrInvalidBranch
	}
	for _, forbidden := range []string{" ", "..", "~", "^", ":", "?", "*", "[", "\\"} {
		if strings.Contains(name, forbidden) {
			return ErrInvalidBranch
		}
	}
	return nil
}
