package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoader_Load(t *testing.T) {
	t.Run("Should load defaults when no environment is set", func(t *testing.T) {
		cfg, err := NewLoader().Load()
		require.NoError(t, err)

		assert.Empty(t, cfg.TaskPrefix)
		assert.Empty(t, cfg.BaseRef)
		assert.Equal(t, "mise tasks ls --json", cfg.MiseCommand)
		assert.Equal(t, DiffEngineGitCLI, cfg.DiffEngine)
		assert.Equal(t, ".", cfg.WorkDir)
		assert.Equal(t, "info", cfg.LogLevel)
	})

	t.Run("Should bind GitHub Action inputs from the environment", func(t *testing.T) {
		t.Setenv("INPUT_TASK_PREFIX", "ci:build")
		t.Setenv("INPUT_BASE_REF", "origin/main")
		t.Setenv("INPUT_DIFF_ENGINE", "go-git")
		t.Setenv("INPUT_LOG_JSON", "true")
		t.Setenv("GITHUB_OUTPUT", "/tmp/gh_output")

		cfg, err := NewLoader().Load()
		require.NoError(t, err)

		assert.Equal(t, "ci:build", cfg.TaskPrefix)
		assert.Equal(t, "origin/main", cfg.BaseRef)
		assert.Equal(t, DiffEngineGoGit, cfg.DiffEngine)
		assert.True(t, cfg.LogJSON)
		assert.Equal(t, "/tmp/gh_output", cfg.OutputFile)
	})

	t.Run("Should reject an unknown diff engine", func(t *testing.T) {
		t.Setenv("INPUT_DIFF_ENGINE", "svn")

		_, err := NewLoader().Load()
		require.Error(t, err)
		assert.Contains(t, err.Error(), "validation failed")
	})

	t.Run("Should reject an unknown log level", func(t *testing.T) {
		t.Setenv("INPUT_LOG_LEVEL", "loud")

		_, err := NewLoader().Load()
		require.Error(t, err)
	})

	t.Run("Should ignore unrelated environment variables", func(t *testing.T) {
		t.Setenv("INPUT_SOMETHING_ELSE", "value")

		cfg, err := NewLoader().Load()
		require.NoError(t, err)
		assert.Equal(t, "mise tasks ls --json", cfg.MiseCommand)
	})
}

func TestGenerateEnvMappings(t *testing.T) {
	t.Run("Should map every tagged field to its env var", func(t *testing.T) {
		mappings := GenerateEnvMappings()

		byEnv := make(map[string]string, len(mappings))
		for _, m := range mappings {
			byEnv[m.EnvVar] = m.ConfigPath
		}
		assert.Equal(t, "task_prefix", byEnv["INPUT_TASK_PREFIX"])
		assert.Equal(t, "base_ref", byEnv["INPUT_BASE_REF"])
		assert.Equal(t, "output_file", byEnv["GITHUB_OUTPUT"])
	})
}
