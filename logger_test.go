package atlas

import (
	"bytes"
	"log/slog"
	"strings"
	"testing"
)

func TestLoggerDefaultsSilent(t *testing.T) {
	l := Logger()
	if l == nil {
		t.Fatal("Logger() returned nil")
	}
	if l.Enabled(nil, slog.LevelError) {
		t.Error("default logger should be disabled at every level")
	}
}

func TestSetLogger(t *testing.T) {
	defer SetLogger(nil)

	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	Logger().Info("atlas test message")
	if !strings.Contains(buf.String(), "atlas test message") {
		t.Errorf("log output missing message: %q", buf.String())
	}
}

func TestSetLoggerNilRestoresSilence(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	SetLogger(nil)
	Logger().Warn("should be dropped")
	if buf.Len() != 0 {
		t.Errorf("unexpected output after SetLogger(nil): %q", buf.String())
	}
}
