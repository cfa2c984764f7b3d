// Package clipboard copies summaries to the system clipboard
package clipboard

import (
	"errors"
	"fmt"
	"strings"

	"github.com/atotto/clipboard"
)

// ErrNothingToCopy is returned for empty text
var ErrNothingToCopy = errors.New("nothing to copy")

// ErrUnsupported is returned when no clipboard utility is available
var ErrUnsupported = errors.New("clipboard not available on this system")

// write is replaced in tests
var write = clipboard.WriteAll

// Copy writes text to the system clipboard
func Copy(text string) error {
	if strings.TrimSpace(text) == "" {
		return ErrNothingToCopy
	}
	if clipboard.Unsupported {
		return ErrUnsupported
	}
	if err := write(text); err != nil {
		return fmt.Errorf("clipboard copy failed: %w", err)
	}
	return nil
}
