package logger_test

import (
	"bytes"
	"strings"
	"testing"

	"go.trai.ch/sgen/internal/adapters/logger"
	"go.trai.ch/zerr"
)

func TestLogger_Info(t *testing.T) {
	l := logger.New()

	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.Info("hello world")

	out := buf.String()
	if !strings.Contains(out, "hello world") {
		t.Errorf("expected log output to contain message, got %q", out)
	}
	if !strings.Contains(out, "level=INFO") {
		t.Errorf("expected INFO level in output, got %q", out)
	}
}

func TestLogger_Error(t *testing.T) {
	l := logger.New()

	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.Error(zerr.New("boom"))

	out := buf.String()
	if !strings.Contains(out, "boom") {
		t.Errorf("expected log output to contain error, got %q", out)
	}
	if !strings.Contains(out, "level=ERROR") {
		t.Errorf("expected ERROR level in output, got %q", out)
	}
}

func TestLogger_DebugSuppressedByDefault(t *testing.T) {
	l := logger.New()

	var buf bytes.Buffer
	l.SetOutput(&buf)

	l.Debug("argv dump")

	if buf.Len() != 0 {
		t.Errorf("expected debug output to be suppressed, got %q", buf.String())
	}
}

func TestLogger_SetVerbose(t *testing.T) {
	l := logger.New()

	var buf bytes.Buffer
	l.SetOutput(&buf)
	l.SetVerbose(true)

	l.Debug("argv dump")

	out := buf.String()
	if !strings.Contains(out, "argv dump") {
		t.Errorf("expected debug output in verbose mode, got %q", out)
	}
}
