package factory

import (
	"fmt"
	"log/slog"
	"os"
	"slices"

	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/sink"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/sink/es"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/sink/pg"
	"github.com/DjordjeVuckovic/sweepgen/pkg/stringsutil"
)

const DefaultLedger = "experiment_log.csv"

type SinkConfig struct {
	sink.Type
	Ledger string
	Pg     *pg.PoolConfig
	Es     *es.ClientConfig
}

// LoadEnv reads the sink selection from RECORD_* variables. An unset
// RECORD_SINK selects the log sink.
func LoadEnv() (*SinkConfig, error) {
	sinkType := sink.Type(os.Getenv("RECORD_SINK"))
	if sinkType == "" {
		sinkType = sink.Log
	}
	if !slices.Contains(sink.Types, sinkType) {
		slog.Error("Invalid RECORD_SINK environment variable value", "value", sinkType)
		return nil, fmt.Errorf(
			"invalid RECORD_SINK environment variable value: %s, expected one of %v",
			sinkType,
			sink.Types)
	}

	cfg := &SinkConfig{Type: sinkType}

	switch sinkType {
	case sink.CSV:
		cfg.Ledger = os.Getenv("RECORD_LEDGER")
		if cfg.Ledger == "" {
			cfg.Ledger = DefaultLedger
		}

	case sink.Postgres:
		cfg.Pg = &pg.PoolConfig{
			ConnStr: os.Getenv("RECORD_PG_CONN"),
		}
		if cfg.Pg.ConnStr == "" {
			slog.Error("PostgreSQL connection string is not set")
			return nil, fmt.Errorf("RECORD_PG_CONN is not set")
		}

	case sink.Elasticsearch:
		cfg.Es = &es.ClientConfig{
			Addresses: stringsutil.SplitList(os.Getenv("RECORD_ES_ADDRESSES"), ","),
			IndexName: os.Getenv("RECORD_ES_INDEX"),
			Username:  os.Getenv("RECORD_ES_USERNAME"),
			Password:  os.Getenv("RECORD_ES_PASSWORD"),
		}
		if len(cfg.Es.Addresses) == 0 || cfg.Es.IndexName == "" {
			slog.Error("Elasticsearch configuration is incomplete", "addresses", cfg.Es.Addresses, "indexName", cfg.Es.IndexName)
			return nil, fmt.Errorf("elasticsearch configuration is incomplete: addresses or index name is missing")
		}
	}

	return cfg, nil
}
