package git_test

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"

	gogit "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/urumarrazzaq/chunky/internal/cli/git"
	"github.com/urumarrazzaq/chunky/pkg/chunker"
)

func discardHandler() slog.Handler {
	return slog.NewTextHandler(io.Discard, nil)
}

// initRepo creates a repository with one committed file so the worktree has
// a HEAD to diff against.
func initRepo(t *testing.T) (string, *gogit.Repository) {
	t.Helper()
	dir := t.TempDir()
	repo, err := gogit.PlainInit(dir, false)
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(filepath.Join(dir, "tracked.txt"), []byte("tracked"), 0o644))
	worktree, err := repo.Worktree()
	require.NoError(t, err)
	_, err = worktree.Add("tracked.txt")
	require.NoError(t, err)
	_, err = worktree.Commit("initial commit", &gogit.CommitOptions{
		Author: &object.Signature{Name: "test", Email: "test@example.com", When: time.Now()},
	})
	require.NoError(t, err)
	return dir, repo
}

func TestUntrackedFiles(t *testing.T) {
	dir, _ := initRepo(t)
	require.NoError(t, os.WriteFile(filepath.Join(dir, "zeta.log"), []byte("z"), 0o644))
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "sub"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "sub", "alpha.txt"), []byte("a"), 0o644))

	client := git.NewClient(discardHandler())
	paths, rootDir, err := client.UntrackedFiles(dir)

	require.NoError(t, err)
	assert.Equal(t, []string{"sub/alpha.txt", "zeta.log"}, paths, "relative slash paths in sorted order")
	resolvedDir, symErr := filepath.EvalSymlinks(dir)
	require.NoError(t, symErr)
	resolvedRoot, symErr := filepath.EvalSymlinks(rootDir)
	require.NoError(t, symErr)
	assert.Equal(t, resolvedDir, resolvedRoot)
}

func TestUntrackedFilesExcludesTracked(t *testing.T) {
	dir, _ := initRepo(t)

	client := git.NewClient(discardHandler())
	paths, _, err := client.UntrackedFiles(dir)

	require.NoError(t, err)
	assert.Empty(t, paths)
}

func TestUntrackedFilesFromSubdirectory(t *testing.T) {
	dir, _ := initRepo(t)
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "nested", "deep"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "nested", "deep", "new.txt"), []byte("n"), 0o644))

	client := git.NewClient(discardHandler())
	paths, _, err := client.UntrackedFiles(filepath.Join(dir, "nested"))

	require.NoError(t, err)
	assert.Equal(t, []string{"nested/deep/new.txt"}, paths,
		"dot-git detection walks up and paths stay relative to the worktree root")
}

func TestUntrackedFilesNotARepository(t *testing.T) {
	client := git.NewClient(discardHandler())

	_, _, err := client.UntrackedFiles(t.TempDir())

	require.Error(t, err)
	assert.ErrorIs(t, err, chunker.ErrNotARepository)
}
