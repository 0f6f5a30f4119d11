package cli

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/rabadin/mise-tasks-discover-action/engine/mise"
	"github.com/rabadin/mise-tasks-discover-action/engine/scm"
	"github.com/rabadin/mise-tasks-discover-action/engine/task"
	"github.com/rabadin/mise-tasks-discover-action/pkg/config"
	"github.com/rabadin/mise-tasks-discover-action/pkg/logger"
)

// runDiscover is the orchestrator: list, normalize, filter, group, emit.
// Listing and diff failures degrade to smaller result sets; only
// configuration and output faults fail the run.
func runDiscover(cmd *cobra.Command, _ []string) error {
	loader := config.NewLoader()
	cfg, err := loader.Load()
	if err != nil {
		return err
	}
	applyFlagOverrides(cmd, cfg)
	if err := loader.Validate(cfg); err != nil {
		return err
	}

	log := logger.SetupLogger(cfg.LogLevel, cfg.LogJSON)
	ctx := logger.ContextWithLogger(cmd.Context(), log)

	lister, err := mise.NewLister(cfg.MiseCommand, cfg.WorkDir)
	if err != nil {
		return err
	}

	tasks := task.Normalize(lister.List(ctx))
	tasks = task.DropMalformed(ctx, tasks)
	tasks = task.FilterByPrefix(tasks, cfg.TaskPrefix)
	if cfg.BaseRef != "" {
		tasks = task.FilterByChangedSources(ctx, tasks, cfg.BaseRef, newQuerier(cfg))
	} else {
		log.Debug("no base ref configured, skipping change detection")
	}
	groups := task.GroupByProject(tasks)

	payload, err := json.Marshal(groups)
	if err != nil {
		return fmt.Errorf("failed to serialize discovery result: %w", err)
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(payload))
	if cfg.OutputFile != "" {
		if err := WriteActionOutput(cfg.OutputFile, "tasks", string(payload)); err != nil {
			return err
		}
	}
	log.Info("discovery complete", "tasks", len(tasks), "projects", len(groups))
	return nil
}

func newQuerier(cfg *config.Config) task.ChangeQuerier {
	if cfg.DiffEngine == config.DiffEngineGoGit {
		return scm.NewGoGit(cfg.WorkDir)
	}
	return scm.NewGitCLI(cfg.WorkDir)
}
