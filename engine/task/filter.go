package task

import (
	"context"
	"strings"

	"github.com/rabadin/mise-tasks-discover-action/pkg/logger"
)

// FilterByPrefix retains tasks whose local name starts with prefix as a
// literal string, preserving order. The empty prefix matches everything.
func FilterByPrefix(tasks []NormalizedTask, prefix string) []NormalizedTask {
	if prefix == "" {
		return tasks
	}
	kept := make([]NormalizedTask, 0, len(tasks))
	for _, t := range tasks {
		if strings.HasPrefix(t.LocalName, prefix) {
			kept = append(kept, t)
		}
	}
	return kept
}

// ChangeQuerier answers whether any path matching the given pathspecs
// changed relative to baseRef. A zero code means no matching change; any
// other code means changed. An error means the query could not be run at
// all.
type ChangeQuerier interface {
	DiffQuiet(ctx context.Context, baseRef string, pathspecs []string) (int, error)
}

// FilterByChangedSources retains tasks whose declared sources changed
// since baseRef. Tasks with no declared sources are always kept and never
// queried: their relevance cannot be disproven. Queries run one at a time,
// in input order, one per task at most.
//
// The policy is fail-open: a non-zero diff code, an unknown code, or a
// failed query invocation all keep the task. A tooling problem must never
// silently drop work from a CI pipeline; the worst case is a task that
// runs unnecessarily. A failed query is logged and the pass continues
// with the next task.
func FilterByChangedSources(ctx context.Context, tasks []NormalizedTask, baseRef string, querier ChangeQuerier) []NormalizedTask {
	log := logger.FromContext(ctx)
	kept := make([]NormalizedTask, 0, len(tasks))
	for _, t := range tasks {
		if len(t.Sources) == 0 {
			kept = append(kept, t)
			continue
		}
		code, err := querier.DiffQuiet(ctx, baseRef, t.Pathspecs())
		if err != nil {
			log.Warn("change query failed, keeping task",
				"task", t.QualifiedName, "base_ref", baseRef, "error", err)
			kept = append(kept, t)
			continue
		}
		if code == 0 {
			log.Debug("sources unchanged, dropping task",
				"task", t.QualifiedName, "base_ref", baseRef)
			continue
		}
		kept = append(kept, t)
	}
	return kept
}
