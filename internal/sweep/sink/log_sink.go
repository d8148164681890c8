package sink

import (
	"context"
	"log/slog"
	"time"
)

// LogSink writes entries to the structured log only.
type LogSink struct {
	logger *slog.Logger
}

func NewLogSink(logger *slog.Logger) *LogSink {
	if logger == nil {
		logger = slog.Default()
	}
	return &LogSink{logger: logger}
}

func (s *LogSink) Record(_ context.Context, e Entry) error {
	s.logger.Info("Experiment recorded",
		"run_id", e.RunID,
		"status", e.Status,
		"name", e.Name,
		"date", e.Date.Format(time.RFC3339),
		"solver", e.Solver,
		"project", e.Project,
		"justification", e.Justification,
		"jobs", e.Jobs,
		"result_path", e.ResultPath,
		"file_path", e.ParametersPath,
		"manifest", e.ManifestPath,
	)
	return nil
}

func (s *LogSink) Close() error { return nil }
