package bks

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/value"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSummary(t *testing.T, root, class, content string) {
	t.Helper()
	dir := filepath.Join(root, class)
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, SummaryFile), []byte(content), 0o644))
}

func TestReadTable(t *testing.T) {
	t.Run("comma layout", func(t *testing.T) {
		table, skipped, err := readTable(strings.NewReader("graph,BKS,n\na.gset,11624,800\nb.gset,2.5,10\n"), Layout{Delimiter: ','})
		require.NoError(t, err)
		assert.Equal(t, 0, skipped)
		assert.True(t, value.OfInt(11624).Equal(table["a.gset"]))
		assert.True(t, value.OfFloat(2.5).Equal(table["b.gset"]))
	})

	t.Run("space layout with aliases", func(t *testing.T) {
		layout := DefaultLayouts()[0]
		table, skipped, err := readTable(strings.NewReader("Gset   Cuts\nG1  11624\n\nG2 11620\n"), layout)
		require.NoError(t, err)
		assert.Equal(t, 0, skipped)
		assert.Len(t, table, 2)
		assert.True(t, value.OfInt(11620).Equal(table["G2"]))
	})

	t.Run("second alias variant", func(t *testing.T) {
		table, _, err := readTable(strings.NewReader("GSET CUT\nG43 6660\n"), DefaultLayouts()[0])
		require.NoError(t, err)
		assert.True(t, value.OfInt(6660).Equal(table["G43"]))
	})

	t.Run("malformed rows are skipped", func(t *testing.T) {
		table, skipped, err := readTable(strings.NewReader("graph,BKS\na.gset,1\nbroken\nc.gset,2,extra\nd.gset,n/a\ne.gset,5\n"), Layout{Delimiter: ','})
		require.NoError(t, err)
		assert.Equal(t, 3, skipped)
		assert.Len(t, table, 2)
	})

	t.Run("missing canonical columns", func(t *testing.T) {
		_, _, err := readTable(strings.NewReader("name,value\na,1\n"), Layout{Delimiter: ','})
		require.Error(t, err)
	})

	t.Run("empty table", func(t *testing.T) {
		_, _, err := readTable(strings.NewReader(""), Layout{Delimiter: ','})
		require.Error(t, err)
	})
}

func TestLayoutsFor(t *testing.T) {
	ls := DefaultLayouts()

	l, ok := ls.For("K_graphs")
	require.True(t, ok)
	assert.Equal(t, ' ', l.Delimiter)

	l, ok = ls.For("erdos_renyi")
	require.True(t, ok)
	assert.Equal(t, ',', l.Delimiter)

	_, ok = Layouts{{Classes: map[string]bool{"set": true}}}.For("tiny")
	assert.False(t, ok)
}

func TestLoad(t *testing.T) {
	root := t.TempDir()
	writeSummary(t, root, "set", "Gset Cuts\nG1 11624\nG2\n")
	writeSummary(t, root, "erdos_renyi", "graph,BKS\ner_1.gset,420\n")
	writeSummary(t, root, "broken", "nothing useful here\n")

	ix, err := Load([]string{"set", "erdos_renyi", "absent", "broken"}, root, DefaultLayouts(), nil)
	require.NoError(t, err)

	assert.Equal(t, 2, ix.Classes())
	assert.Equal(t, 1, ix.Skipped())

	v, ok := ix.Lookup("set", "G1")
	require.True(t, ok)
	assert.Equal(t, "11624", v.String())

	v, ok = ix.Lookup("erdos_renyi", "er_1.gset")
	require.True(t, ok)
	assert.Equal(t, "420", v.String())

	_, ok = ix.Lookup("absent", "x")
	assert.False(t, ok)
	_, ok = ix.Lookup("set", "G99")
	assert.False(t, ok)
}

func TestLookup_NilIndex(t *testing.T) {
	var ix *Index
	_, ok := ix.Lookup("set", "G1")
	assert.False(t, ok)
}
