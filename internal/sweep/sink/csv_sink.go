package sink

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"time"
)

// LedgerHeader is the first row of a ledger file.
var LedgerHeader = []string{
	"Run ID", "Status", "Name", "Date", "Solver", "Project",
	"Justification", "Result Path", "File Path", "Jobs", "Manifest",
}

// CSVSink appends entries to a ledger file shared by every batch. The header
// is written when the file is created.
type CSVSink struct {
	path string
}

func NewCSVSink(path string) *CSVSink {
	return &CSVSink{path: path}
}

func (s *CSVSink) Record(ctx context.Context, e Entry) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.OpenFile(s.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	defer f.Close()

	info, err := f.Stat()
	if err != nil {
		return fmt.Errorf("stat ledger: %w", err)
	}

	w := csv.NewWriter(f)
	if info.Size() == 0 {
		if err := w.Write(LedgerHeader); err != nil {
			return fmt.Errorf("write ledger header: %w", err)
		}
	}
	if err := w.Write(ledgerRow(e)); err != nil {
		return fmt.Errorf("write ledger row: %w", err)
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("flush ledger: %w", err)
	}
	return f.Close()
}

func (s *CSVSink) Close() error { return nil }

func ledgerRow(e Entry) []string {
	return []string{
		e.RunID.String(),
		e.Status,
		e.Name,
		e.Date.Format(time.RFC3339),
		e.Solver,
		e.Project,
		e.Justification,
		e.ResultPath,
		e.ParametersPath,
		strconv.Itoa(e.Jobs),
		e.ManifestPath,
	}
}
