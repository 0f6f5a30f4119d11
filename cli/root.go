// Package cli wires the discovery pipeline into the mise-tasks-discover
// command.
package cli

import (
	"github.com/spf13/cobra"

	"github.com/rabadin/mise-tasks-discover-action/pkg/config"
)

// RootCmd returns the mise-tasks-discover root command.
func RootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:   "mise-tasks-discover",
		Short: "Discover mise tasks for a CI job matrix",
		Long: "Discovers the tasks exposed by mise, filters them by name prefix and by " +
			"whether their declared sources changed since a base revision, and prints " +
			"the survivors grouped by project as JSON.",
		SilenceUsage: true,
		RunE:         runDiscover,
	}

	root.Flags().String("task-prefix", "", "Only keep tasks whose name starts with this prefix")
	root.Flags().String("base-ref", "", "Base revision for change detection; empty skips it")
	root.Flags().String("mise-command", "", "Command used to list tasks (default \"mise tasks ls --json\")")
	root.Flags().String("diff-engine", "", "Change detection backend: git-cli or go-git")
	root.Flags().String("work-dir", "", "Repository root diff queries run in")
	root.Flags().String("output-file", "", "File to append the tasks output to, GitHub Actions style")
	root.Flags().String("log-level", "", "Log level: debug, info, warn or error")
	root.Flags().Bool("log-json", false, "Emit logs as JSON")

	root.AddCommand(VersionCmd())
	return root
}

// applyFlagOverrides copies explicitly set flags over the loaded
// configuration. Flags beat action inputs, which beat defaults.
func applyFlagOverrides(cmd *cobra.Command, cfg *config.Config) {
	setString := func(name string, dst *string) {
		if cmd.Flags().Changed(name) {
			*dst, _ = cmd.Flags().GetString(name)
		}
	}
	setString("task-prefix", &cfg.TaskPrefix)
	setString("base-ref", &cfg.BaseRef)
	setString("mise-command", &cfg.MiseCommand)
	setString("diff-engine", &cfg.DiffEngine)
	setString("work-dir", &cfg.WorkDir)
	setString("output-file", &cfg.OutputFile)
	setString("log-level", &cfg.LogLevel)
	if cmd.Flags().Changed("log-json") {
		cfg.LogJSON, _ = cmd.Flags().GetBool("log-json")
	}
}
