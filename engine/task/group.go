package task

import "strings"

// GroupByProject partitions tasks by owning project, joining each
// project's qualified names with GroupDelimiter. Projects appear in
// first-seen order and task order within a group follows input order.
// Empty input yields an empty slice, not a default group.
func GroupByProject(tasks []NormalizedTask) []ProjectGroup {
	names := make(map[string][]string)
	order := make([]string, 0)
	for _, t := range tasks {
		if _, seen := names[t.Project]; !seen {
			order = append(order, t.Project)
		}
		names[t.Project] = append(names[t.Project], t.QualifiedName)
	}
	groups := make([]ProjectGroup, 0, len(order))
	for _, project := range order {
		groups = append(groups, ProjectGroup{
			Project:     project,
			JoinedTasks: strings.Join(names[project], GroupDelimiter),
		})
	}
	return groups
}
