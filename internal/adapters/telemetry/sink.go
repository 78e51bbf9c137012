package telemetry

import (
	"fmt"
	"time"

	"github.com/vito/progrock"

	"go.trai.ch/sgen/internal/core/ports"
)

var _ progrock.Writer = (*logSink)(nil)

// logSink renders progrock status updates into the build log at debug
// level. The tool has no interactive progress view, so completed
// vertexes surface as log lines instead.
type logSink struct {
	logger ports.Logger
}

func newLogSink(logger ports.Logger) *logSink {
	return &logSink{logger: logger}
}

// WriteStatus logs every completed vertex. In-progress updates are
// dropped; the pipeline logs its own intent lines at info level.
func (s *logSink) WriteStatus(update *progrock.StatusUpdate) error {
	for _, v := range update.Vertexes {
		if v.Completed == nil {
			continue
		}
		switch {
		case v.Cached:
			s.logger.Debug(fmt.Sprintf("stage %q: cached", v.Name))
		case v.Error != nil:
			s.logger.Debug(fmt.Sprintf("stage %q: failed: %s", v.Name, v.GetError()))
		default:
			s.logger.Debug(fmt.Sprintf("stage %q: done in %s", v.Name, vertexDuration(v)))
		}
	}
	return nil
}

// Close implements progrock.Writer. The sink holds no resources.
func (s *logSink) Close() error { return nil }

func vertexDuration(v *progrock.Vertex) time.Duration {
	if v.Started == nil || v.Completed == nil {
		return 0
	}
	return v.Completed.AsTime().Sub(v.Started.AsTime()).Round(time.Millisecond)
}
