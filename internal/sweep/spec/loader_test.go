package spec

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/DjordjeVuckovic/sweepgen/internal/apperr"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/params"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const validYAML = `
experiment:
  project: BlockSA
  number: 7
  name: er_scaling
  justification: check the dropoff
solver: block_sa
paths:
  base_config: base_config.json
  results_dir: /scratch/results
  queue_helper: ./queue_SA.py
resources:
  partition: ising
  memory_gb: 16
groups:
  - sweeps: "20000"
    block: [false, true]
  - active: ["0", "1", "2"]
sweep:
  graph_class: erdos_renyi
  graph: [a.gset, b.gset]
  iter:
    range: {start: 0, stop: 3}
`

func TestParse(t *testing.T) {
	t.Run("valid spec", func(t *testing.T) {
		s, err := Parse([]byte(validYAML))
		require.NoError(t, err)

		assert.Equal(t, "sim007_er_scaling", s.SimName())
		assert.Equal(t, filepath.Join("/scratch/results", "block_sa", "sim007_er_scaling"), s.ResultDir())
		require.Len(t, s.Groups, 2)
		assert.Equal(t, []string{"sweeps", "block", "graph_class", "graph", "iter"}, s.Groups[0].Names())
		assert.Equal(t, []string{"active", "graph_class", "graph", "iter"}, s.Groups[1].Names())
		assert.Equal(t, 2*2*3, s.Groups[0].Size())
		assert.Equal(t, 3*2*3, s.Groups[1].Size())
		assert.Equal(t, 16, s.Resources.MemoryGB)
	})

	t.Run("values are typed", func(t *testing.T) {
		s, err := Parse([]byte(validYAML))
		require.NoError(t, err)

		sweeps, ok := s.Groups[0].Values("sweeps")
		require.True(t, ok)
		assert.True(t, value.OfInt(20000).Equal(sweeps[0]))

		block, _ := s.Groups[0].Values("block")
		assert.True(t, value.OfBool(false).Equal(block[0]))

		iter, _ := s.Groups[0].Values("iter")
		require.Len(t, iter, 3)
		assert.True(t, value.OfInt(2).Equal(iter[2]))
	})

	t.Run("defaults applied", func(t *testing.T) {
		s, err := Parse([]byte(validYAML))
		require.NoError(t, err)

		assert.Equal(t, DefaultThreshold, s.Threshold)
		assert.Equal(t, DefaultTime, s.Resources.Time)
		assert.Equal(t, DefaultBuildJobs, s.Resources.BuildJobs)
		assert.Equal(t, "graph_class", s.Keys.AssetClass)
		assert.Equal(t, "graph", s.Keys.AssetName)
		assert.Equal(t, "iter", s.Keys.Iteration)
		assert.Equal(t, "graph", s.Keys.AssetFlag)
		assert.Equal(t, "bsa", s.Artifact.Prefix)
		assert.Equal(t, "python3", s.Artifact.QueueInterpreter)
	})

	t.Run("shared axes override group axes in place", func(t *testing.T) {
		s, err := Parse([]byte(`
experiment: {name: x}
solver: sa
paths: {base_config: b.json, results_dir: /r}
resources: {partition: p}
groups:
  - {iter: [9], beta: [1, 2]}
sweep:
  iter: [0, 1]
`))
		require.NoError(t, err)
		assert.Equal(t, []string{"iter", "beta"}, s.Groups[0].Names())
		iter, _ := s.Groups[0].Values("iter")
		assert.Len(t, iter, 2)
	})

	t.Run("shared axes alone form one group", func(t *testing.T) {
		s, err := Parse([]byte(`
experiment: {name: x}
solver: sa
paths: {base_config: b.json, results_dir: /r}
resources: {partition: p}
sweep:
  x: ["1", "2"]
`))
		require.NoError(t, err)
		require.Len(t, s.Groups, 1)
		assert.Equal(t, []string{"x"}, s.Columns())
	})

	t.Run("no groups", func(t *testing.T) {
		_, err := Parse([]byte(`
experiment: {name: x}
solver: sa
paths: {base_config: b.json, results_dir: /r}
resources: {partition: p}
`))
		require.Error(t, err)
		var ve *apperr.ValidationError
		assert.True(t, errors.As(err, &ve))
		assert.Contains(t, err.Error(), "no sweep groups")
	})

	t.Run("empty axis", func(t *testing.T) {
		_, err := Parse([]byte(`
experiment: {name: x}
solver: sa
paths: {base_config: b.json, results_dir: /r}
resources: {partition: p}
groups:
  - {x: []}
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "has no values")
	})

	t.Run("missing solver", func(t *testing.T) {
		_, err := Parse([]byte(`
experiment: {name: x}
paths: {base_config: b.json, results_dir: /r}
resources: {partition: p}
sweep: {x: 1}
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "no solver")
	})

	t.Run("zero range step", func(t *testing.T) {
		_, err := Parse([]byte(`
experiment: {name: x}
solver: sa
paths: {base_config: b.json, results_dir: /r}
resources: {partition: p}
sweep:
  iter: {range: {start: 0, stop: 3, step: 0}}
`))
		require.Error(t, err)
		assert.Contains(t, err.Error(), "step must not be zero")
	})

	t.Run("scalar range", func(t *testing.T) {
		s, err := Parse([]byte(`
experiment: {name: x}
solver: sa
paths: {base_config: b.json, results_dir: /r}
resources: {partition: p}
sweep:
  iter: {range: 20}
`))
		require.NoError(t, err)
		assert.Equal(t, 20, s.Groups[0].Size())
	})
}

func TestRangeValues(t *testing.T) {
	t.Run("descending", func(t *testing.T) {
		vals, err := Range{Start: 3, Stop: 0, Step: -1}.Values()
		require.NoError(t, err)
		require.Len(t, vals, 3)
		assert.True(t, value.OfInt(3).Equal(vals[0]))
		assert.True(t, value.OfInt(1).Equal(vals[2]))
	})

	t.Run("empty", func(t *testing.T) {
		vals, err := Range{Start: 5, Stop: 5, Step: 1}.Values()
		require.NoError(t, err)
		assert.Empty(t, vals)
	})
}

func TestColumns(t *testing.T) {
	s, err := Parse([]byte(validYAML))
	require.NoError(t, err)
	assert.Equal(t, []string{"sweeps", "block", "graph_class", "graph", "iter", "active"}, s.Columns())
}

func TestCheckBase(t *testing.T) {
	s, err := Parse([]byte(`
experiment: {name: x}
solver: sa
paths: {base_config: b.json, results_dir: /r}
resources: {partition: p}
sweep:
  x: ["1", "2"]
`))
	require.NoError(t, err)

	t.Run("asset keys from base", func(t *testing.T) {
		base := params.New()
		base.Set("graph_class", value.OfString("g"))
		base.Set("graph", value.OfString("a.gset"))
		assert.NoError(t, s.CheckBase(base))
		assert.Equal(t, []string{"g"}, s.AssetClasses(base))
	})

	t.Run("asset name missing", func(t *testing.T) {
		base := params.New()
		base.Set("graph_class", value.OfString("g"))
		err := s.CheckBase(base)
		require.Error(t, err)
		assert.Contains(t, err.Error(), `"graph"`)
	})
}

func TestAssetClasses_FromGroups(t *testing.T) {
	s, err := Parse([]byte(`
experiment: {name: x}
solver: sa
paths: {base_config: b.json, results_dir: /r}
resources: {partition: p}
groups:
  - {graph_class: [set, tiny]}
  - {graph_class: [tiny, erdos_renyi]}
  - {x: [1]}
`))
	require.NoError(t, err)

	base := params.New()
	base.Set("graph_class", value.OfString("K_graphs"))
	assert.Equal(t, []string{"set", "tiny", "erdos_renyi", "K_graphs"}, s.AssetClasses(base))
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sweep.yaml")
	require.NoError(t, os.WriteFile(path, []byte(validYAML), 0o644))

	s, err := LoadFromFile(path)
	require.NoError(t, err)
	assert.Equal(t, path, s.Path)
	assert.Equal(t, filepath.Join(dir, "base_config.json"), s.Paths.BaseConfig)
	assert.Equal(t, dir, s.Paths.SourceDir)
}

func TestLoadFromFile_Missing(t *testing.T) {
	_, err := LoadFromFile(filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read spec file")
}
