// Package bks loads best-known-solution reference values for the assets a
// sweep references.
package bks

import (
	"bufio"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/value"
)

// SummaryFile is the name of the per-class reference table under the asset root.
const SummaryFile = "summary.txt"

// Index maps (class, asset name) to a reference value. It is read-only
// after Load.
type Index struct {
	tables  map[string]map[string]value.Value
	skipped int
}

// NewIndex builds an index from already-normalized tables.
func NewIndex(tables map[string]map[string]value.Value) *Index {
	if tables == nil {
		tables = make(map[string]map[string]value.Value)
	}
	return &Index{tables: tables}
}

// Lookup returns the reference value for name in class.
func (ix *Index) Lookup(class, name string) (value.Value, bool) {
	if ix == nil {
		return value.Value{}, false
	}
	v, ok := ix.tables[class][name]
	return v, ok
}

// Classes returns the number of classes with a loaded table.
func (ix *Index) Classes() int { return len(ix.tables) }

// Skipped returns the number of malformed rows dropped while loading.
func (ix *Index) Skipped() int { return ix.skipped }

// Load reads {root}/{class}/summary.txt for every requested class. Classes
// without a table, or whose table lacks the canonical columns, are left out.
func Load(classes []string, root string, layouts Layouts, logger *slog.Logger) (*Index, error) {
	if logger == nil {
		logger = slog.Default()
	}
	ix := &Index{tables: make(map[string]map[string]value.Value, len(classes))}

	for _, class := range classes {
		path := filepath.Join(root, class, SummaryFile)
		f, err := os.Open(path)
		if errors.Is(err, fs.ErrNotExist) {
			logger.Debug("No reference table for class", "class", class, "path", path)
			continue
		}
		if err != nil {
			return nil, fmt.Errorf("open reference table %s: %w", path, err)
		}

		layout, ok := layouts.For(class)
		if !ok {
			f.Close()
			logger.Warn("No table layout for class", "class", class)
			continue
		}

		table, skipped, err := readTable(f, layout)
		f.Close()
		if err != nil {
			logger.Warn("Ignoring unreadable reference table", "path", path, "error", err)
			continue
		}
		if skipped > 0 {
			logger.Warn("Skipped malformed reference rows", "path", path, "rows", skipped)
		}
		ix.skipped += skipped
		ix.tables[class] = table
		logger.Debug("Loaded reference table", "class", class, "entries", len(table))
	}
	return ix, nil
}

func readTable(r io.Reader, layout Layout) (map[string]value.Value, int, error) {
	rows := newRowReader(r, layout.Delimiter)

	header, err := rows.next()
	if err != nil {
		return nil, 0, fmt.Errorf("read header: %w", err)
	}
	nameCol, valueCol := -1, -1
	for i, h := range header {
		switch layout.canonical(strings.TrimSpace(h)) {
		case NameColumn:
			nameCol = i
		case ValueColumn:
			valueCol = i
		}
	}
	if nameCol < 0 || valueCol < 0 {
		return nil, 0, fmt.Errorf("header %v lacks %q and %q columns", header, NameColumn, ValueColumn)
	}

	table := make(map[string]value.Value)
	skipped := 0
	for {
		row, err := rows.next()
		if err == io.EOF {
			break
		}
		if err != nil {
			var pe *csv.ParseError
			if errors.As(err, &pe) {
				skipped++
				continue
			}
			return nil, 0, err
		}
		if len(row) != len(header) {
			skipped++
			continue
		}
		v := value.Parse(strings.TrimSpace(row[valueCol]))
		if !v.IsNumeric() {
			skipped++
			continue
		}
		table[strings.TrimSpace(row[nameCol])] = v
	}
	return table, skipped, nil
}

// rowReader yields delimited records. Whitespace-delimited tables collapse
// runs of blanks; other delimiters go through encoding/csv.
type rowReader struct {
	csv     *csv.Reader
	scanner *bufio.Scanner
}

func newRowReader(r io.Reader, delim rune) *rowReader {
	if delim == ' ' || delim == '\t' {
		return &rowReader{scanner: bufio.NewScanner(r)}
	}
	cr := csv.NewReader(r)
	cr.Comma = delim
	cr.FieldsPerRecord = -1
	return &rowReader{csv: cr}
}

func (rr *rowReader) next() ([]string, error) {
	if rr.csv != nil {
		return rr.csv.Read()
	}
	for rr.scanner.Scan() {
		fields := strings.Fields(rr.scanner.Text())
		if len(fields) == 0 {
			continue
		}
		return fields, nil
	}
	if err := rr.scanner.Err(); err != nil {
		return nil, err
	}
	return nil, io.EOF
}
