// Package task implements the discovery pipeline over mise task
// definitions: normalization of qualified names, prefix filtering, change
// detection against a base revision, and grouping by owning project.
package task

// RootProject is the project key for tasks defined at the repository root.
const RootProject = "."

// monorepoMarker prefixes fully qualified names of tasks owned by a
// project subtree, e.g. "//services/api:ci:build".
const monorepoMarker = "//"

// GroupDelimiter joins the qualified task names of one project group.
const GroupDelimiter = " ::: "

// RawTask mirrors one record of `mise tasks ls --json`. Fields beyond the
// name and sources are carried along untouched.
type RawTask struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Aliases     []string `json:"aliases,omitempty"`
	Source      string   `json:"source,omitempty"`
	Sources     []string `json:"sources,omitempty"`
	Outputs     []string `json:"outputs,omitempty"`
	Depends     []string `json:"depends,omitempty"`
	Hide        bool     `json:"hide,omitempty"`
}

// NormalizedTask is a task descriptor with its monorepo qualifier resolved.
type NormalizedTask struct {
	// Project is "." for root tasks, otherwise the slash-separated path of
	// the owning project with no leading or trailing slash.
	Project string
	// QualifiedName is the original task name, the canonical identifier
	// used for downstream execution.
	QualifiedName string
	// LocalName is the name with the "//path:" qualifier removed. Only
	// used for prefix matching.
	LocalName string
	// Sources are the task's declared source globs, never nil.
	Sources []string
}

// Pathspecs returns the task's source globs scoped to its project subtree,
// in the form a version-control diff query expects.
func (t NormalizedTask) Pathspecs() []string {
	specs := make([]string, len(t.Sources))
	for i, src := range t.Sources {
		if t.Project == RootProject {
			specs[i] = src
		} else {
			specs[i] = t.Project + "/" + src
		}
	}
	return specs
}

// ProjectGroup is one entry of the discovery output: a project and its
// matching tasks joined with GroupDelimiter.
type ProjectGroup struct {
	Project     string `json:"project"`
	JoinedTasks string `json:"tasks"`
}
