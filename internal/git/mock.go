package git

// MockRunner implements Executor for testing.
// Each method can be configured with a custom function to control behavior.
type MockRunner struct {
	IsCleanFunc           func() (bool, error)
	CurrentBranchFunc     func() (string, error)
	CheckoutNewBranchFunc func(name string) error
	AddFunc               func(paths ...string) error
	CommitFunc            func(message string) error
	workDir               string
}

// NewMockRunner creates a MockRunner with the specified working directory.
func NewMockRunner(workDir string) *MockRunner {
	return &MockRunner{workDir: workDir}
}

// IsClean reports whether the work tree has no uncommitted changes.
func (m *MockRunner) IsClean() (bool, error) {
	if m.IsCleanFunc != nil {
		return m.IsCleanFunc()
	}
	return true, nil
}

// CurrentBranch returns the name of the checked-out branch.
func (m *MockRunner) CurrentBranch() (string, error) {
	if m.CurrentBranchFunc != nil {
		return m.CurrentBranchFunc()
	}
	return "main", nil
}

// CheckoutNewBranch creates and switches to a new branch.
func (m *MockRunner) CheckoutNewBranch(name string) error {
	if m.CheckoutNewBranchFunc != nil {
		return m.CheckoutNewBranchFunc(name)
	}
	return nil
}

// Add stages files for commit.
func (m *MockRunner) Add(paths ...string) error {
	if m.AddFunc != nil {
		return m.AddFunc(paths...)
	}
	return nil
}

// Commit creates a git commit with the specified message.
func (m *MockRunner) Commit(message string) error {
	if m.CommitFunc != nil {
		return m.CommitFunc(message)
	}
	return nil
}

// WorkDir returns the working directory of the git repository.
func (m *MockRunner) WorkDir() string {
	return m.workDir
}

// Ensure MockRunner implements the Executor interface
var _ Executor = (*MockRunner)(nil)
