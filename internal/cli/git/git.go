// Package git enumerates the untracked files of a working tree. It is the
// version-control collaborator of the chunker core: failures here are the
// structural, fatal kind that abort a run before any packing starts.
package git

import (
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sort"

	gogit "github.com/go-git/go-git/v5"

	"github.com/urumarrazzaq/chunky/pkg/chunker"
)

// Client lists untracked files for a repository path.
type Client interface {
	// UntrackedFiles returns the untracked file paths of the working tree
	// containing repoPath, relative to the worktree root, in sorted order,
	// together with the absolute worktree root itself.
	UntrackedFiles(repoPath string) (paths []string, rootDir string, err error)
}

// GoGitClient implements Client using the go-git library; it requires no git
// binary on the host.
type GoGitClient struct {
	logger *slog.Logger
}

// NewClient creates a go-git backed Client.
func NewClient(loggerHandler slog.Handler) *GoGitClient {
	logger := slog.New(loggerHandler).With(slog.String("component", "gitClient"))
	return &GoGitClient{logger: logger}
}

// UntrackedFiles implements Client. Entries ignored by .gitignore are not
// reported; go-git's worktree status already excludes them from the
// untracked set it exposes here.
func (c *GoGitClient) UntrackedFiles(repoPath string) ([]string, string, error) {
	absPath, err := filepath.Abs(repoPath)
	if err != nil {
		return nil, "", fmt.Errorf("%w: resolving %q: %w", chunker.ErrGitOperation, repoPath, err)
	}

	repo, err := gogit.PlainOpenWithOptions(absPath, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		if errors.Is(err, gogit.ErrRepositoryNotExists) {
			return nil, "", fmt.Errorf("%w: %s", chunker.ErrNotARepository, absPath)
		}
		return nil, "", fmt.Errorf("%w: opening repository at %q: %w", chunker.ErrGitOperation, absPath, err)
	}

	worktree, err := repo.Worktree()
	if err != nil {
		return nil, "", fmt.Errorf("%w: reading worktree: %w", chunker.ErrGitOperation, err)
	}
	rootDir := worktree.Filesystem.Root()

	status, err := worktree.Status()
	if err != nil {
		return nil, "", fmt.Errorf("%w: reading worktree status: %w", chunker.ErrGitOperation, err)
	}

	var paths []string
	for path, fileStatus := range status {
		if fileStatus.Staging == gogit.Untracked && fileStatus.Worktree == gogit.Untracked {
			paths = append(paths, filepath.ToSlash(path))
		}
	}
	// Worktree status is a map; sort for a deterministic packing order.
	sort.Strings(paths)

	c.logger.Debug("Enumerated untracked files",
		slog.String("root", rootDir),
		slog.Int("count", len(paths)))
	return paths, rootDir, nil
}
