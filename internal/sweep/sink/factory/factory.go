package factory

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/sink"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/sink/es"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/sink/pg"
)

// NewSink creates the sink.Sink selected by cfg.
func NewSink(ctx context.Context, cfg *SinkConfig, logger *slog.Logger) (sink.Sink, error) {
	switch cfg.Type {
	case sink.Log:
		return sink.NewLogSink(logger), nil

	case sink.CSV:
		return sink.NewCSVSink(cfg.Ledger), nil

	case sink.Postgres:
		if cfg.Pg == nil {
			return nil, fmt.Errorf("missing PostgreSQL configuration")
		}
		s, err := pg.NewSink(ctx, *cfg.Pg)
		if err != nil {
			return nil, fmt.Errorf("failed to create PostgreSQL sink: %w", err)
		}
		return s, nil

	case sink.Elasticsearch:
		if cfg.Es == nil {
			return nil, fmt.Errorf("missing Elasticsearch configuration")
		}
		s, err := es.NewSink(ctx, *cfg.Es)
		if err != nil {
			return nil, fmt.Errorf("failed to create Elasticsearch sink: %w", err)
		}
		return s, nil

	default:
		return nil, fmt.Errorf(string(sink.ErrUnsupportedSink), cfg.Type)
	}
}
