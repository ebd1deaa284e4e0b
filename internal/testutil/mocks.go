// Package testutil provides mock implementations of the interfaces defined
// by the chunker core and its CLI collaborators, plus small fixture helpers.
package testutil

import (
	"github.com/stretchr/testify/mock"
)

// MockGitClient mocks the internal git.Client interface. Configure with
// testify/mock expectations, e.g.
// .On("UntrackedFiles", repo).Return(paths, root, nil).
type MockGitClient struct {
	mock.Mock
}

// UntrackedFiles mocks the Client method.
func (m *MockGitClient) UntrackedFiles(repoPath string) ([]string, string, error) {
	args := m.Called(repoPath)
	paths, _ := args.Get(0).([]string)
	root, _ := args.Get(1).(string)
	return paths, root, args.Error(2)
}

// MockSizeProber mocks chunker.SizeProber.
type MockSizeProber struct {
	mock.Mock
}

// Measure mocks the SizeProber method.
func (m *MockSizeProber) Measure(absPath string) (uint64, bool) {
	args := m.Called(absPath)
	size, _ := args.Get(0).(uint64)
	ok, _ := args.Get(1).(bool)
	return size, ok
}
