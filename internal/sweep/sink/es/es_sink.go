// Package es indexes experiment log entries in Elasticsearch.
package es

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/sink"
	"github.com/elastic/go-elasticsearch/v8"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types"
	"github.com/elastic/go-elasticsearch/v8/typedapi/types/enums/refresh"
	"github.com/google/uuid"
)

type Sink struct {
	client    *elasticsearch.TypedClient
	indexName string
}

func NewSink(ctx context.Context, config ClientConfig) (*Sink, error) {
	client, err := newClient(config)
	if err != nil {
		return nil, fmt.Errorf("failed to create Elasticsearch client: %w", err)
	}
	s := &Sink{client: client, indexName: config.IndexName}

	if err := s.EnsureIndex(ctx); err != nil {
		return nil, fmt.Errorf("failed to ensure index exists: %w", err)
	}
	return s, nil
}

func (s *Sink) EnsureIndex(ctx context.Context) error {
	exists, err := s.client.Indices.Exists(s.indexName).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to check if index exists: %w", err)
	}
	if exists {
		slog.Debug("Index already exists", "index", s.indexName)
		return nil
	}

	mappings := types.TypeMapping{
		Properties: map[string]types.Property{
			"run_id":        types.NewKeywordProperty(),
			"status":        types.NewKeywordProperty(),
			"name":          types.NewKeywordProperty(),
			"date":          types.NewDateProperty(),
			"solver":        types.NewKeywordProperty(),
			"project":       types.NewKeywordProperty(),
			"justification": types.NewTextProperty(),
			"result_path":   types.NewKeywordProperty(),
			"file_path":     types.NewKeywordProperty(),
			"jobs":          types.NewIntegerNumberProperty(),
			"manifest_path": types.NewKeywordProperty(),
		},
	}

	res, err := s.client.Indices.Create(s.indexName).Mappings(&mappings).Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to create index: %w", err)
	}
	if !res.Acknowledged {
		return fmt.Errorf("index creation was not acknowledged")
	}

	slog.Info("Index created successfully", "index", s.indexName)
	return nil
}

func (s *Sink) Record(ctx context.Context, e sink.Entry) error {
	if e.RunID == uuid.Nil {
		e.RunID = uuid.New()
	}

	res, err := s.client.Index(s.indexName).
		Id(e.RunID.String()).
		Document(e).
		Refresh(refresh.True).
		Do(ctx)
	if err != nil {
		return fmt.Errorf("failed to index experiment: %w", err)
	}

	slog.Info("Experiment indexed", "run_id", e.RunID, "index", s.indexName, "result", res.Result)
	return nil
}

// Get loads one entry by run id.
func (s *Sink) Get(ctx context.Context, id uuid.UUID) (sink.Entry, error) {
	res, err := s.client.Get(s.indexName, id.String()).Do(ctx)
	if err != nil {
		return sink.Entry{}, fmt.Errorf("failed to get experiment %s: %w", id, err)
	}
	if !res.Found {
		return sink.Entry{}, fmt.Errorf("experiment %s not found", id)
	}

	var e sink.Entry
	if err := json.Unmarshal(res.Source_, &e); err != nil {
		return sink.Entry{}, fmt.Errorf("failed to decode experiment %s: %w", id, err)
	}
	return e, nil
}

func (s *Sink) Close() error { return nil }
