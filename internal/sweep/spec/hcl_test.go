package spec

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validHCL = `
solver    = "block_sa"
threshold = 500

experiment {
  project       = "BlockSA"
  number        = 3
  name          = "hcl_sweep"
  justification = "same sweep, different syntax"
}

paths {
  base_config = "base_config.json"
  results_dir = "/scratch/results"
}

resources {
  partition = "ising"
  time      = "0-12:00:00"
}

group {
  sweeps = "20000"
  block  = [false]
  beta   = [0.5, 1]
}

sweep {
  graph_class = "erdos_renyi"
  graph       = ["a.gset", "b.gset"]
  iter        = range(0, 4)
}
`

func TestParseHCL(t *testing.T) {
	t.Run("valid spec", func(t *testing.T) {
		s, err := ParseHCL([]byte(validHCL), "sweep.hcl")
		require.NoError(t, err)

		assert.Equal(t, "sim003_hcl_sweep", s.SimName())
		assert.Equal(t, 500, s.Threshold)
		assert.Equal(t, "0-12:00:00", s.Resources.Time)
		require.Len(t, s.Groups, 1)
		assert.Equal(t, []string{"sweeps", "block", "beta", "graph_class", "graph", "iter"}, s.Groups[0].Names())
		assert.Equal(t, 1*1*2*1*2*4, s.Groups[0].Size())
	})

	t.Run("values are typed", func(t *testing.T) {
		s, err := ParseHCL([]byte(validHCL), "sweep.hcl")
		require.NoError(t, err)

		sweeps, _ := s.Groups[0].Values("sweeps")
		assert.True(t, value.OfInt(20000).Equal(sweeps[0]))

		block, _ := s.Groups[0].Values("block")
		assert.True(t, value.OfBool(false).Equal(block[0]))

		beta, _ := s.Groups[0].Values("beta")
		assert.True(t, value.OfFloat(0.5).Equal(beta[0]))
		assert.True(t, value.OfInt(1).Equal(beta[1]))

		iter, _ := s.Groups[0].Values("iter")
		require.Len(t, iter, 4)
		assert.True(t, value.OfInt(3).Equal(iter[3]))
	})

	t.Run("syntax error", func(t *testing.T) {
		_, err := ParseHCL([]byte(`solver = `), "broken.hcl")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse spec HCL")
	})

	t.Run("nested object axis", func(t *testing.T) {
		_, err := ParseHCL([]byte(`
solver = "sa"
experiment { name = "x" }
paths {
  base_config = "b.json"
  results_dir = "/r"
}
resources { partition = "p" }
sweep {
  x = { a = 1 }
}
`), "bad.hcl")
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unsupported type")
	})
}

func TestLoadFromFile_HCL(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sweep.hcl")
	require.NoError(t, os.WriteFile(path, []byte(validHCL), 0o644))

	s, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "base_config.json"), s.Paths.BaseConfig)
}
