package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/google/uuid"
)

// WriteActionOutput appends a name/value pair to a GitHub Actions output
// file. Single-line values use the plain name=value form; anything with a
// newline falls back to the heredoc form with a collision-safe delimiter,
// the same way the official toolkit does.
func WriteActionOutput(path, name, value string) error {
	file, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("failed to open output file %s: %w", path, err)
	}
	defer file.Close()

	var line string
	if strings.Contains(value, "\n") {
		delimiter := "ghadelimiter_" + uuid.NewString()
		if strings.Contains(value, delimiter) {
			return fmt.Errorf("output value for %s contains its own delimiter", name)
		}
		line = fmt.Sprintf("%s<<%s\n%s\n%s\n", name, delimiter, value, delimiter)
	} else {
		line = fmt.Sprintf("%s=%s\n", name, value)
	}
	if _, err := file.WriteString(line); err != nil {
		return fmt.Errorf("failed to write output file %s: %w", path, err)
	}
	return nil
}
