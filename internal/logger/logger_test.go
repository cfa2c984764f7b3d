package logger

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
	"testing"
)

func TestLogger_VerboseGating(t *testing.T) {
	var buf bytes.Buffer
	verbose := false
	log := NewWithWriter("session", func() bool { return verbose }, &buf)

	log.Debug("hidden %d", 1)
	log.Info("hidden too")
	log.Warn("shown %s", "always")

	output := buf.String()
	if strings.Contains(output, "hidden") {
		t.Errorf("Expected debug and info suppressed\n%s", output)
	}
	if !strings.Contains(output, "WARN [session] shown always") {
		t.Errorf("Expected warning line\n%s", output)
	}

	verbose = true
	log.Debug("now visible")
	if !strings.Contains(buf.String(), "DEBUG [session] now visible") {
		t.Errorf("Expected debug line once verbose\n%s", buf.String())
	}
}

func TestLogger_Fields(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("remote", func() bool { return true }, &buf)

	log.WarnWithFields("request failed", []Field{RequestID("abc"), F("status", 502), Error(errors.New("boom"))})

	want := "request failed [request_id=abc status=502 error=boom]"
	if !strings.Contains(buf.String(), want) {
		t.Errorf("Expected %q in\n%s", want, buf.String())
	}
}

func TestLogger_WithComponentKeepsWriter(t *testing.T) {
	var buf bytes.Buffer
	log := NewWithWriter("root", nil, &buf).WithComponent("ui")

	log.Error("failed")

	if !strings.Contains(buf.String(), "ERROR [ui] failed") {
		t.Errorf("Expected component logger to share writer\n%s", buf.String())
	}
}

func TestSetDefaultOutput(t *testing.T) {
	var buf bytes.Buffer
	SetDefaultOutput(&buf)
	defer SetDefaultOutput(nil)

	NewWithCallback("", nil).Warn("redirected")

	if !strings.Contains(buf.String(), "WARN [main] redirected") {
		t.Errorf("Expected line in redirected output\n%s", buf.String())
	}
}

func TestOpenLogFile_CreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "synopsis.log")

	file, err := OpenLogFile(path)
	if err != nil {
		t.Fatalf("OpenLogFile failed: %v", err)
	}
	defer func() { _ = file.Close() }()

	if _, err := file.WriteString("line\n"); err != nil {
		t.Errorf("Expected writable log file: %v", err)
	}
}

func TestNop(t *testing.T) {
	log := Nop()
	log.Warn("discarded")
	log.WithComponent("x").Error("discarded")
}
