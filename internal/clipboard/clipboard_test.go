package clipboard

import (
	"errors"
	"testing"

	"github.com/atotto/clipboard"
)

func stubWrite(t *testing.T, fn func(string) error) {
	t.Helper()
	original := write
	write = fn
	t.Cleanup(func() { write = original })
}

func TestCopy(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("no clipboard utility available")
	}

	var got string
	stubWrite(t, func(text string) error {
		got = text
		return nil
	})

	if err := Copy("A fox runs."); err != nil {
		t.Fatalf("Copy failed: %v", err)
	}
	if got != "A fox runs." {
		t.Errorf("Expected summary to be written, got %q", got)
	}
}

func TestCopy_Empty(t *testing.T) {
	stubWrite(t, func(string) error {
		t.Error("Expected no write for empty text")
		return nil
	})

	if err := Copy("  \n"); !errors.Is(err, ErrNothingToCopy) {
		t.Errorf("Expected ErrNothingToCopy, got %v", err)
	}
}

func TestCopy_WriteError(t *testing.T) {
	if clipboard.Unsupported {
		t.Skip("no clipboard utility available")
	}

	boom := errors.New("xclip exited")
	stubWrite(t, func(string) error { return boom })

	if err := Copy("text"); !errors.Is(err, boom) {
		t.Errorf("Expected wrapped write error, got %v", err)
	}
}
