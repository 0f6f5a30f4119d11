package config

// DiffEngine selects how changed files are detected.
const (
	DiffEngineGitCLI = "git-cli"
	DiffEngineGoGit  = "go-git"
)

// Config holds every knob of the discovery run. Each field binds to a CLI
// flag and to a GitHub Action input through its env tag (action inputs are
// exposed to the process as INPUT_<NAME> variables).
type Config struct {
	// TaskPrefix retains only tasks whose local name starts with this
	// literal prefix. Empty matches every task.
	TaskPrefix string `koanf:"task_prefix" env:"INPUT_TASK_PREFIX"`
	// BaseRef is the revision changed sources are compared against. Empty
	// skips change filtering entirely.
	BaseRef string `koanf:"base_ref" env:"INPUT_BASE_REF"`
	// MiseCommand is the command line used to list tasks.
	MiseCommand string `koanf:"mise_command" env:"INPUT_MISE_COMMAND" validate:"required"`
	// DiffEngine picks the change detection backend.
	DiffEngine string `koanf:"diff_engine" env:"INPUT_DIFF_ENGINE"  validate:"oneof=git-cli go-git"`
	// WorkDir is the repository root diff queries run in.
	WorkDir string `koanf:"work_dir" env:"INPUT_WORK_DIR"`
	// OutputFile is a file the "tasks" output is appended to in GitHub
	// Actions output syntax. GITHUB_OUTPUT is picked up automatically.
	OutputFile string `koanf:"output_file" env:"GITHUB_OUTPUT"`
	LogLevel   string `koanf:"log_level"   env:"INPUT_LOG_LEVEL" validate:"omitempty,oneof=debug info warn error"`
	LogJSON    bool   `koanf:"log_json"    env:"INPUT_LOG_JSON"`
}

// Default returns the default configuration.
func Default() *Config {
	return &Config{
		MiseCommand: "mise tasks ls --json",
		DiffEngine:  DiffEngineGitCLI,
		WorkDir:     ".",
		LogLevel:    "info",
	}
}
