// Package faillog appends fatal run errors to a plain text log next to the fetcher.
package faillog

import (
	"fmt"
	"os"
	"strings"
)

// Append writes message as a single line to the log at path, creating the file if
// needed. Embedded newlines are flattened so each fatal error stays on one line.
func Append(path, message string) error {
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0644)
	if err != nil {
		return fmt.Errorf("failed to open error log %s: %w", path, err)
	}

	line := strings.ReplaceAll(strings.TrimRight(message, "\n"), "\n", " ")
	if _, err := fmt.Fprintln(f, line); err != nil {
		f.Close()
		return fmt.Errorf("failed to write error log %s: %w", path, err)
	}
	return f.Close()
}
