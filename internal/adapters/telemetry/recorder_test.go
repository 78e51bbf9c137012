package telemetry_test

import (
	"context"
	"strings"
	"sync"
	"testing"

	"go.trai.ch/zerr"

	"go.trai.ch/sgen/internal/adapters/telemetry"
)

// captureLogger records log lines so tests can assert that recorded
// vertexes actually surface in the build log.
type captureLogger struct {
	mu    sync.Mutex
	lines []string
}

func (l *captureLogger) Debug(msg string) { l.append(msg) }
func (l *captureLogger) Info(msg string)  { l.append(msg) }
func (l *captureLogger) Warn(msg string)  { l.append(msg) }
func (l *captureLogger) Error(err error)  { l.append(err.Error()) }

func (l *captureLogger) append(msg string) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.lines = append(l.lines, msg)
}

func (l *captureLogger) joined() string {
	l.mu.Lock()
	defer l.mu.Unlock()
	return strings.Join(l.lines, "\n")
}

func TestRecorder_CompletedStagesReachTheLog(t *testing.T) {
	log := &captureLogger{}
	rec := telemetry.New(log)

	_, span := rec.Start(context.Background(), "compile schemas")
	span.End(nil)

	_, failed := rec.Start(context.Background(), "unpack dependencies")
	failed.End(zerr.New("archive unreadable"))

	_, cached := rec.Start(context.Background(), "discover schemas")
	cached.Cached()
	cached.End(nil)

	if err := rec.Close(); err != nil {
		t.Fatalf("Close failed: %v", err)
	}

	out := log.joined()
	if !strings.Contains(out, `"compile schemas": done`) {
		t.Errorf("expected completed stage in log, got:\n%s", out)
	}
	if !strings.Contains(out, `"unpack dependencies": failed: archive unreadable`) {
		t.Errorf("expected failed stage with cause in log, got:\n%s", out)
	}
	if !strings.Contains(out, `"discover schemas": cached`) {
		t.Errorf("expected cached stage in log, got:\n%s", out)
	}
}

func TestRecorder_InProgressStagesStayQuiet(t *testing.T) {
	log := &captureLogger{}
	rec := telemetry.New(log)

	rec.Start(context.Background(), "compile schemas")

	if out := log.joined(); out != "" {
		t.Errorf("expected no log output before the stage completes, got:\n%s", out)
	}
}

func TestNoOpTracer(t *testing.T) {
	tracer := telemetry.NewNoOpTracer()

	_, span := tracer.Start(context.Background(), "anything")
	span.Cached()
	span.End(nil)

	if err := tracer.Close(); err != nil {
		t.Errorf("Close failed: %v", err)
	}
}
