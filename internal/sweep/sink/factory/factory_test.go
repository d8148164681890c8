package factory

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/sink"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnv(t *testing.T) {
	t.Run("defaults to log", func(t *testing.T) {
		t.Setenv("RECORD_SINK", "")
		cfg, err := LoadEnv()
		require.NoError(t, err)
		assert.Equal(t, sink.Log, cfg.Type)
	})

	t.Run("csv with default ledger", func(t *testing.T) {
		t.Setenv("RECORD_SINK", "csv")
		t.Setenv("RECORD_LEDGER", "")
		cfg, err := LoadEnv()
		require.NoError(t, err)
		assert.Equal(t, DefaultLedger, cfg.Ledger)
	})

	t.Run("postgres requires a connection string", func(t *testing.T) {
		t.Setenv("RECORD_SINK", "postgres")
		t.Setenv("RECORD_PG_CONN", "")
		_, err := LoadEnv()
		assert.ErrorContains(t, err, "RECORD_PG_CONN")

		t.Setenv("RECORD_PG_CONN", "postgres://u:p@db/x")
		cfg, err := LoadEnv()
		require.NoError(t, err)
		assert.Equal(t, "postgres://u:p@db/x", cfg.Pg.ConnStr)
	})

	t.Run("elasticsearch", func(t *testing.T) {
		t.Setenv("RECORD_SINK", "elasticsearch")
		t.Setenv("RECORD_ES_ADDRESSES", "")
		t.Setenv("RECORD_ES_INDEX", "experiments")
		_, err := LoadEnv()
		assert.ErrorContains(t, err, "incomplete")

		t.Setenv("RECORD_ES_ADDRESSES", "http://a:9200, http://b:9200")
		cfg, err := LoadEnv()
		require.NoError(t, err)
		assert.Equal(t, []string{"http://a:9200", "http://b:9200"}, cfg.Es.Addresses)
		assert.Equal(t, "experiments", cfg.Es.IndexName)
	})

	t.Run("unknown type", func(t *testing.T) {
		t.Setenv("RECORD_SINK", "notion")
		_, err := LoadEnv()
		assert.ErrorContains(t, err, "invalid RECORD_SINK")
	})
}

func TestNewSink(t *testing.T) {
	ctx := context.Background()

	s, err := NewSink(ctx, &SinkConfig{Type: sink.Log}, nil)
	require.NoError(t, err)
	assert.IsType(t, &sink.LogSink{}, s)

	s, err = NewSink(ctx, &SinkConfig{Type: sink.CSV, Ledger: filepath.Join(t.TempDir(), "l.csv")}, nil)
	require.NoError(t, err)
	assert.IsType(t, &sink.CSVSink{}, s)

	_, err = NewSink(ctx, &SinkConfig{Type: sink.Postgres}, nil)
	assert.Error(t, err)

	_, err = NewSink(ctx, &SinkConfig{Type: "bogus"}, nil)
	assert.ErrorContains(t, err, "unsupported sink type: bogus")
}
