package logger

import "os"

// SetupLogger builds a logger for the CLI. Annotations are enabled
// automatically when running under GitHub Actions.
func SetupLogger(logLevel string, logJSON bool) Logger {
	cfg := DefaultConfig()
	cfg.Level = LogLevel(logLevel)
	cfg.JSON = logJSON
	cfg.Annotations = os.Getenv("GITHUB_ACTIONS") == "true"
	return NewLogger(cfg)
}
