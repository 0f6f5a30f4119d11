package task

import (
	"context"
	"strings"

	"github.com/rabadin/mise-tasks-discover-action/pkg/logger"
)

// Normalize resolves the monorepo qualifier of every raw task. It is total
// and order-preserving: exactly one descriptor per input record, in input
// order. It never drops a record, even a malformed one; see DropMalformed.
func Normalize(raw []RawTask) []NormalizedTask {
	tasks := make([]NormalizedTask, 0, len(raw))
	for _, r := range raw {
		project, localName := splitQualifiedName(r.Name)
		sources := r.Sources
		if sources == nil {
			sources = []string{}
		}
		tasks = append(tasks, NormalizedTask{
			Project:       project,
			QualifiedName: r.Name,
			LocalName:     localName,
			Sources:       sources,
		})
	}
	return tasks
}

// splitQualifiedName parses a fully qualified task name into its owning
// project and local name.
//
// Names without the "//" marker are root tasks: project ".", local name
// verbatim. For marked names the project is everything up to the first
// colon and the local name everything after it, so a local name may itself
// contain colons ("//services/api:ci:build" -> "services/api", "ci:build").
// "//:x" normalizes to the root project. A marked name with no colon at
// all has no recoverable local name; the descriptor is produced with an
// empty LocalName and left for DropMalformed to reject.
func splitQualifiedName(name string) (project, localName string) {
	if !strings.HasPrefix(name, monorepoMarker) {
		return RootProject, name
	}
	remainder := name[len(monorepoMarker):]
	project, localName, found := strings.Cut(remainder, ":")
	if !found {
		return remainder, ""
	}
	if project == "" {
		project = RootProject
	}
	return project, localName
}

// DropMalformed removes descriptors whose qualified name carried a
// monorepo marker but no task name ("//services/api"). Such names cannot
// be matched by any non-empty prefix and would group into confusing empty
// output segments, so they are rejected with a warning instead.
func DropMalformed(ctx context.Context, tasks []NormalizedTask) []NormalizedTask {
	log := logger.FromContext(ctx)
	kept := make([]NormalizedTask, 0, len(tasks))
	for _, t := range tasks {
		if t.LocalName == "" && strings.HasPrefix(t.QualifiedName, monorepoMarker) {
			log.Warn("skipping task with no name after its project qualifier", "task", t.QualifiedName)
			continue
		}
		kept = append(kept, t)
	}
	return kept
}
