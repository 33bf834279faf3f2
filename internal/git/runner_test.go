package git

import (
	"os"
	"path/filepath"
	"testing"
)

// setupRepo initializes a real git repository in a temp dir.
func setupRepo(t *testing.T) *Runner {
	t.Helper()

	dir := t.TempDir()
	runner := NewRunner(dir)
	if _, err := runner.runCommand("init"); err != nil {
		t.Skipf("git not available: %v", err)
	}
	_, _ = runner.runCommand("config", "user.email", "test@example.com")
	_, _ = runner.runCommand("config", "user.name", "Test User")
	return runner
}

func writeRepoFile(t *testing.T, runner *Runner, name, content string) {
	t.Helper()

	path := filepath.Join(runner.WorkDir(), name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
}

func TestNewRunner(t *testing.T) {
	workDir := "/tmp/test-repo"
	runner := NewRunner(workDir)

	if runner.WorkDir() != workDir {
		t.Errorf("expected workDir %q, got %q", workDir, runner.WorkDir())
	}
}

func TestIsClean(t *testing.T) {
	runner := setupRepo(t)

	t.Run("empty repo is clean", func(t *testing.T) {
		clean, err := runner.IsClean()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if !clean {
			t.Error("expected empty repo to be clean")
		}
	})

	t.Run("untracked file makes repo dirty", func(t *testing.T) {
		writeRepoFile(t, runner, "untracked.txt", "content")

		clean, err := runner.IsClean()
		if err != nil {
			t.Fatalf("expected no error, got %v", err)
		}
		if clean {
			t.Error("expected repo with untracked file to be dirty")
		}
	})
}

func TestAddAndCommit(t *testing.T) {
	runner := setupRepo(t)
	writeRepoFile(t, runner, "file.txt", "content")

	if err := runner.Add("file.txt"); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := runner.Commit("initial commit"); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	clean, err := runner.IsClean()
	if err != nil {
		t.Fatalf("IsClean failed: %v", err)
	}
	if !clean {
		t.Error("expected repo to be clean after commit")
	}
}

func TestAddAll(t *testing.T) {
	runner := setupRepo(t)
	writeRepoFile(t, runner, "one.txt", "one")
	writeRepoFile(t, runner, "two.txt", "two")

	if err := runner.Add(); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := runner.Commit("add everything"); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}
}

func TestCheckoutNewBranch(t *testing.T) {
	runner := setupRepo(t)
	writeRepoFile(t, runner, "file.txt", "content")
	if err := runner.Add(); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := runner.Commit("initial commit"); err != nil {
		t.Fatalf("Commit failed: %v", err)
	}

	if err := runner.CheckoutNewBranch("deps/update-2025-01-15"); err != nil {
		t.Fatalf("CheckoutNewBranch failed: %v", err)
	}

	branch, err := runner.CurrentBranch()
	if err != nil {
		t.Fatalf("CurrentBranch failed: %v", err)
	}
	if branch != "deps/update-2025-01-15" {
		t.Errorf("expected branch deps/update-2025-01-15, got %q", branch)
	}
}

func TestCheckoutNewBranchRejectsInvalidNames(t *testing.T) {
	runner := NewRunner(t.TempDir())

	for _, name := range []string{"", "-flag", "has space", "a..b", "a:b"} {
		if err := runner.CheckoutNewBranch(name); err != ErrInvalidBranch {
			t.Errorf("branch %q: expected ErrInvalidBranch, got %v", name, err)
		}
	}
}

func TestCommandFailureIncludesStderr(t *testing.T) {
	runner := setupRepo(t)

	// Committing with nothing staged fails.
	err := runner.Commit("empty")
	if err == nil {
		t.Fatal("expected error committing with nothing staged")
	}
}
