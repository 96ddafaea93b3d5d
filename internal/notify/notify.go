package notify

import (
	"context"
	"fmt"
	"os"
	"strings"
)

// Notifier delivers one plain-text message to the configured destination.
type Notifier interface {
	Notify(ctx context.Context, text string) error
}

// ReadGreeting loads an optional startup message from path. A missing file or
// an empty (whitespace-only) file yields an empty string and no error.
func ReadGreeting(path string) (string, error) {
	if path == "" {
		return "", nil
	}
	b, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return "", nil
		}
		return "", fmt.Errorf("read greeting file: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
