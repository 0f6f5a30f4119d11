// Package scm provides the change detection backends the discovery
// pipeline queries: the git CLI and an in-process go-git engine.
package scm

import (
	"context"
	"errors"
	"fmt"
	"os/exec"
)

// GitCLI answers change queries by shelling out to `git diff --quiet`.
// The exit code is passed through verbatim: 0 means no matching change, 1
// means changed, anything else is git reporting a problem, which the
// caller treats as changed per the fail-open policy.
type GitCLI struct {
	dir string
}

// NewGitCLI creates a querier running git in the given directory.
func NewGitCLI(dir string) *GitCLI {
	return &GitCLI{dir: dir}
}

func (g *GitCLI) DiffQuiet(ctx context.Context, baseRef string, pathspecs []string) (int, error) {
	args := make([]string, 0, len(pathspecs)+3)
	args = append(args, "diff", "--quiet", baseRef, "--")
	args = append(args, pathspecs...)
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = g.dir
	err := cmd.Run()
	if err == nil {
		return 0, nil
	}
	var exitErr *exec.ExitError
	if errors.As(err, &exitErr) {
		return exitErr.ExitCode(), nil
	}
	return 0, fmt.Errorf("failed to invoke git diff: %w", err)
}
