package scm

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
)

// GoGit answers change queries in-process with go-git, for environments
// without a git binary. Changed paths relative to baseRef are the union of
// the committed diff between baseRef and HEAD and the working tree status,
// matched against the pathspecs as doublestar globs.
type GoGit struct {
	dir string

	openOnce sync.Once
	repo     *git.Repository
	openErr  error
}

// NewGoGit creates a querier for the repository at or above dir. The
// repository is opened lazily on the first query so that an unusable
// checkout surfaces as a per-query fault, which the filter handles
// fail-open, rather than as a constructor error.
func NewGoGit(dir string) *GoGit {
	return &GoGit{dir: dir}
}

func (g *GoGit) DiffQuiet(ctx context.Context, baseRef string, pathspecs []string) (int, error) {
	g.openOnce.Do(func() {
		g.repo, g.openErr = git.PlainOpenWithOptions(g.dir, &git.PlainOpenOptions{DetectDotGit: true})
	})
	if g.openErr != nil {
		return 0, fmt.Errorf("failed to open repository at %s: %w", g.dir, g.openErr)
	}
	changed, err := g.changedPaths(ctx, baseRef)
	if err != nil {
		return 0, err
	}
	for path := range changed {
		if matchesAny(path, pathspecs) {
			return 1, nil
		}
	}
	return 0, nil
}

// changedPaths collects every path that differs between baseRef and the
// current working tree state.
func (g *GoGit) changedPaths(ctx context.Context, baseRef string) (map[string]struct{}, error) {
	changed := make(map[string]struct{})

	baseHash, err := g.repo.ResolveRevision(plumbing.Revision(baseRef))
	if err != nil {
		return nil, fmt.Errorf("failed to resolve revision %q: %w", baseRef, err)
	}
	baseTree, err := g.commitTree(*baseHash)
	if err != nil {
		return nil, err
	}
	headRef, err := g.repo.Head()
	if err != nil {
		return nil, fmt.Errorf("failed to read HEAD: %w", err)
	}
	headTree, err := g.commitTree(headRef.Hash())
	if err != nil {
		return nil, err
	}

	changes, err := object.DiffTreeWithOptions(ctx, baseTree, headTree, object.DefaultDiffTreeOptions)
	if err != nil {
		return nil, fmt.Errorf("failed to diff %q against HEAD: %w", baseRef, err)
	}
	for _, change := range changes {
		if change.From.Name != "" {
			changed[change.From.Name] = struct{}{}
		}
		if change.To.Name != "" {
			changed[change.To.Name] = struct{}{}
		}
	}

	// Uncommitted work counts too: the comparison is against the working
	// tree state, not the HEAD commit.
	worktree, err := g.repo.Worktree()
	if err != nil {
		return nil, fmt.Errorf("failed to open worktree: %w", err)
	}
	status, err := worktree.Status()
	if err != nil {
		return nil, fmt.Errorf("failed to read worktree status: %w", err)
	}
	for path, fileStatus := range status {
		if fileStatus.Worktree == git.Unmodified && fileStatus.Staging == git.Unmodified {
			continue
		}
		changed[path] = struct{}{}
	}
	return changed, nil
}

func (g *GoGit) commitTree(hash plumbing.Hash) (*object.Tree, error) {
	commit, err := g.repo.CommitObject(hash)
	if err != nil {
		return nil, fmt.Errorf("failed to load commit %s: %w", hash, err)
	}
	tree, err := commit.Tree()
	if err != nil {
		return nil, fmt.Errorf("failed to load tree of %s: %w", hash, err)
	}
	return tree, nil
}

// matchesAny reports whether the path matches at least one pathspec,
// either as a doublestar glob or as a directory prefix ("services/api"
// matches everything under that directory, like a git pathspec does).
func matchesAny(path string, pathspecs []string) bool {
	for _, spec := range pathspecs {
		if ok, err := doublestar.Match(spec, path); err == nil && ok {
			return true
		}
		if strings.HasPrefix(path, strings.TrimSuffix(spec, "/")+"/") {
			return true
		}
	}
	return false
}
