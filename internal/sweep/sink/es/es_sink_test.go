package es

import (
	"context"
	"testing"
	"time"

	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/sink"
	tc "github.com/DjordjeVuckovic/sweepgen/pkg/testing"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSink_Record(t *testing.T) {
	ctx := context.Background()
	container := tc.NewESContainer(ctx, t)

	s, err := NewSink(ctx, ClientConfig{
		Addresses: []string{container.Address},
		IndexName: "experiment_log",
	})
	require.NoError(t, err)

	entry := sink.Entry{
		RunID:          uuid.New(),
		Status:         sink.StatusInProgress,
		Name:           "er_scaling",
		Date:           time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC),
		Solver:         "block_sa",
		Project:        "BlockSA",
		ResultPath:     "/results/block_sa/sim000_er_scaling",
		ParametersPath: "/results/block_sa/sim000_er_scaling/parameters",
		Jobs:           40,
		ManifestPath:   "/results/block_sa/sim000_er_scaling/parameters/records.csv",
	}
	require.NoError(t, s.Record(ctx, entry))

	got, err := s.Get(ctx, entry.RunID)
	require.NoError(t, err)
	assert.Equal(t, entry, got)

	t.Run("existing index is reused", func(t *testing.T) {
		_, err := NewSink(ctx, ClientConfig{
			Addresses: []string{container.Address},
			IndexName: "experiment_log",
		})
		assert.NoError(t, err)
	})
}
