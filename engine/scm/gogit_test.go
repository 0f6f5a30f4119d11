package scm

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// initRepo creates a repository with two commits: the first adds
// services/api/src/main.go and Dockerfile, the second modifies only
// services/api/src/main.go.
func initRepo(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)
	worktree, err := repo.Worktree()
	require.NoError(t, err)

	writeFile(t, dir, "services/api/src/main.go", "package main\n")
	writeFile(t, dir, "Dockerfile", "FROM scratch\n")
	_, err = worktree.Add(".")
	require.NoError(t, err)
	_, err = worktree.Commit("initial", commitOptions())
	require.NoError(t, err)

	writeFile(t, dir, "services/api/src/main.go", "package main\n\nfunc main() {}\n")
	_, err = worktree.Add(".")
	require.NoError(t, err)
	_, err = worktree.Commit("change api", commitOptions())
	require.NoError(t, err)

	return dir
}

func writeFile(t *testing.T, dir, rel, content string) {
	t.Helper()
	path := filepath.Join(dir, rel)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func commitOptions() *git.CommitOptions {
	return &git.CommitOptions{
		Author: &object.Signature{
			Name:  "test",
			Email: "test@example.com",
			When:  time.Now(),
		},
	}
}

func TestGoGit_DiffQuiet(t *testing.T) {
	t.Run("Should report a change for a matching pathspec", func(t *testing.T) {
		dir := initRepo(t)
		querier := NewGoGit(dir)

		code, err := querier.DiffQuiet(context.Background(), "HEAD~1", []string{"services/api/src/**"})

		require.NoError(t, err)
		assert.Equal(t, 1, code)
	})

	t.Run("Should report no change for a non-matching pathspec", func(t *testing.T) {
		dir := initRepo(t)
		querier := NewGoGit(dir)

		code, err := querier.DiffQuiet(context.Background(), "HEAD~1", []string{"Dockerfile"})

		require.NoError(t, err)
		assert.Equal(t, 0, code)
	})

	t.Run("Should count uncommitted working tree changes", func(t *testing.T) {
		dir := initRepo(t)
		writeFile(t, dir, "Dockerfile", "FROM alpine\n")
		querier := NewGoGit(dir)

		code, err := querier.DiffQuiet(context.Background(), "HEAD", []string{"Dockerfile"})

		require.NoError(t, err)
		assert.Equal(t, 1, code)
	})

	t.Run("Should fail on an unresolvable revision", func(t *testing.T) {
		dir := initRepo(t)
		querier := NewGoGit(dir)

		_, err := querier.DiffQuiet(context.Background(), "no-such-ref", []string{"Dockerfile"})

		require.Error(t, err)
		assert.Contains(t, err.Error(), "no-such-ref")
	})

	t.Run("Should fail when the directory is not a repository", func(t *testing.T) {
		querier := NewGoGit(t.TempDir())

		_, err := querier.DiffQuiet(context.Background(), "HEAD", []string{"Dockerfile"})

		require.Error(t, err)
	})
}

func TestMatchesAny(t *testing.T) {
	t.Parallel()

	t.Run("Should match doublestar globs", func(t *testing.T) {
		t.Parallel()
		assert.True(t, matchesAny("services/api/src/main.go", []string{"services/api/src/**"}))
		assert.False(t, matchesAny("services/web/src/main.go", []string{"services/api/src/**"}))
	})

	t.Run("Should match exact file pathspecs", func(t *testing.T) {
		t.Parallel()
		assert.True(t, matchesAny("Dockerfile", []string{"Dockerfile"}))
	})

	t.Run("Should match directory prefixes like a git pathspec", func(t *testing.T) {
		t.Parallel()
		assert.True(t, matchesAny("services/api/go.mod", []string{"services/api"}))
		assert.False(t, matchesAny("services/api-gateway/go.mod", []string{"services/api"}))
	})
}
