// Package mise lists task definitions by invoking the mise task runner.
package mise

import (
	"context"
	"encoding/json"
	"fmt"
	"os/exec"

	"github.com/google/shlex"
	"github.com/tidwall/gjson"

	"github.com/rabadin/mise-tasks-discover-action/engine/task"
	"github.com/rabadin/mise-tasks-discover-action/pkg/logger"
)

// ListError signals that the listing command line itself is unusable.
type ListError struct {
	Message string
	Code    string
}

func (e *ListError) Error() string {
	return e.Message
}

// Lister runs a task listing command and parses its JSON output.
type Lister struct {
	command []string
	dir     string
}

// NewLister builds a lister from a shell-style command line such as
// "mise tasks ls --json". The command is split with shlex, so quoted
// arguments survive. An empty or unparseable command line is a
// configuration fault, not a listing failure.
func NewLister(command, dir string) (*Lister, error) {
	parts, err := shlex.Split(command)
	if err != nil {
		return nil, &ListError{
			Message: fmt.Sprintf("failed to parse listing command %q: %v", command, err),
			Code:    "INVALID_COMMAND",
		}
	}
	if len(parts) == 0 {
		return nil, &ListError{
			Message: "listing command is empty",
			Code:    "EMPTY_COMMAND",
		}
	}
	return &Lister{command: parts, dir: dir}, nil
}

// List returns the tasks the runner exposes. Every failure mode —
// command not found, non-zero exit, output that is not a JSON task array —
// degrades to an empty list with a warning. The pipeline downstream never
// sees a fault from this boundary.
func (l *Lister) List(ctx context.Context) []task.RawTask {
	log := logger.FromContext(ctx)
	cmd := exec.CommandContext(ctx, l.command[0], l.command[1:]...)
	cmd.Dir = l.dir
	output, err := cmd.Output()
	if err != nil {
		log.Warn("task listing failed, continuing with no tasks",
			"command", l.command[0], "error", err)
		return []task.RawTask{}
	}
	return parseTaskList(ctx, output)
}

// parseTaskList decodes the listing output, tolerating both the flat
// array form and mise's map-keyed-by-name form.
func parseTaskList(ctx context.Context, output []byte) []task.RawTask {
	log := logger.FromContext(ctx)
	if !gjson.ValidBytes(output) {
		log.Warn("task listing output is not valid JSON, continuing with no tasks")
		return []task.RawTask{}
	}
	root := gjson.ParseBytes(output)
	switch {
	case root.IsArray():
		var tasks []task.RawTask
		if err := json.Unmarshal(output, &tasks); err != nil {
			log.Warn("task listing output has an unexpected shape, continuing with no tasks", "error", err)
			return []task.RawTask{}
		}
		if tasks == nil {
			tasks = []task.RawTask{}
		}
		return tasks
	case root.IsObject():
		tasks := []task.RawTask{}
		valid := true
		root.ForEach(func(key, value gjson.Result) bool {
			var t task.RawTask
			if err := json.Unmarshal([]byte(value.Raw), &t); err != nil {
				log.Warn("task listing output has an unexpected shape, continuing with no tasks", "error", err)
				valid = false
				return false
			}
			if t.Name == "" {
				t.Name = key.String()
			}
			tasks = append(tasks, t)
			return true
		})
		if !valid {
			return []task.RawTask{}
		}
		return tasks
	default:
		log.Warn("task listing output is not a JSON array or object, continuing with no tasks")
		return []task.RawTask{}
	}
}
