// Package manifest accumulates the record of every generated job and writes
// it once the batch is complete.
package manifest

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"

	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/params"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/value"
)

// FileName is the manifest written into the batch's parameter directory.
const FileName = "records.csv"

// Record is one generated job: its index and the swept column values.
type Record struct {
	Job    int
	Values []value.Value
	Set    []bool
}

type Recorder struct {
	columns []string
	records []Record
}

func NewRecorder(columns []string) *Recorder {
	return &Recorder{columns: columns}
}

func (r *Recorder) Columns() []string { return r.columns }

// Add stores cfg under the next job index and returns that index. Indices
// start at 1 and have no gaps.
func (r *Recorder) Add(cfg params.Params) int {
	rec := Record{
		Job:    len(r.records) + 1,
		Values: make([]value.Value, len(r.columns)),
		Set:    make([]bool, len(r.columns)),
	}
	for i, col := range r.columns {
		rec.Values[i], rec.Set[i] = cfg.Get(col)
	}
	r.records = append(r.records, rec)
	return rec.Job
}

// Next is the index the next Add will assign.
func (r *Recorder) Next() int { return len(r.records) + 1 }

func (r *Recorder) Len() int { return len(r.records) }

func (r *Recorder) Records() []Record { return r.records }

// Write emits the header row "job,<columns...>" and one row per record.
// Columns a job does not carry are left empty.
func (r *Recorder) Write(w io.Writer) error {
	cw := csv.NewWriter(w)
	header := append([]string{"job"}, r.columns...)
	if err := cw.Write(header); err != nil {
		return err
	}
	row := make([]string, len(header))
	for _, rec := range r.records {
		row[0] = strconv.Itoa(rec.Job)
		for i, v := range rec.Values {
			row[i+1] = ""
			if rec.Set[i] {
				row[i+1] = v.String()
			}
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func (r *Recorder) WriteFile(path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create manifest: %w", err)
	}
	if err := r.Write(f); err != nil {
		f.Close()
		return fmt.Errorf("write manifest: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close manifest: %w", err)
	}
	return nil
}
