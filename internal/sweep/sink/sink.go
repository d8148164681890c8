// Package sink records generated batches in an experiment log.
package sink

import (
	"context"
	"time"

	"github.com/google/uuid"
)

const StatusInProgress = "In Progress"

// Entry is one row of the experiment log.
type Entry struct {
	RunID          uuid.UUID `json:"run_id"`
	Status         string    `json:"status"`
	Name           string    `json:"name"`
	Date           time.Time `json:"date"`
	Solver         string    `json:"solver"`
	Project        string    `json:"project"`
	Justification  string    `json:"justification"`
	ResultPath     string    `json:"result_path"`
	ParametersPath string    `json:"file_path"`
	Jobs           int       `json:"jobs"`
	ManifestPath   string    `json:"manifest_path"`
}

// Sink stores experiment log entries.
type Sink interface {
	Record(ctx context.Context, e Entry) error
	Close() error
}

type Type string

const (
	Log           Type = "log"
	CSV           Type = "csv"
	Postgres      Type = "postgres"
	Elasticsearch Type = "elasticsearch"
)

// Types lists every supported sink type.
var Types = []Type{Log, CSV, Postgres, Elasticsearch}

type SinkError string

const (
	ErrUnsupportedSink SinkError = "unsupported sink type: %s"
)

func (e SinkError) Error() string {
	return string(e)
}
