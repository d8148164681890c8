// Package gate holds the operator checkpoints that run before a batch touches
// the filesystem.
package gate

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"

	"github.com/DjordjeVuckovic/sweepgen/internal/apperr"
)

type Gate struct {
	confirmer Confirmer
	logger    *slog.Logger
}

func New(confirmer Confirmer, logger *slog.Logger) *Gate {
	if logger == nil {
		logger = slog.Default()
	}
	return &Gate{confirmer: confirmer, logger: logger}
}

// CheckJobCount asks for approval when estimate exceeds threshold. The
// estimate is taken before asset filtering, so it is an upper bound.
func (g *Gate) CheckJobCount(ctx context.Context, estimate, threshold int) error {
	if estimate <= threshold {
		return nil
	}
	g.logger.Warn("Job count above threshold",
		"estimate", estimate,
		"threshold", threshold,
		"note", "estimate counts jobs before missing assets are skipped")

	ok, err := g.confirmer.Confirm(ctx, Prompt{
		Title:  fmt.Sprintf("About to generate up to %d jobs (threshold %d). Continue?", estimate, threshold),
		Detail: "The count includes configurations whose asset may be missing.",
	})
	if err != nil {
		return fmt.Errorf("confirm job count: %w", err)
	}
	if !ok {
		return fmt.Errorf("job count %d declined: %w", estimate, apperr.ErrAborted)
	}
	return nil
}

// PrepareOutputDir ensures dir exists and is empty. An existing directory is
// only replaced after the operator agrees; a refusal leaves it untouched.
func (g *Gate) PrepareOutputDir(ctx context.Context, dir string) error {
	info, err := os.Stat(dir)
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return mkdir(dir)
	case err != nil:
		return fmt.Errorf("stat output directory: %w", err)
	case !info.IsDir():
		return apperr.NewValidation(fmt.Sprintf("results_dir: %s exists and is not a directory", dir))
	}

	ok, err := g.confirmer.Confirm(ctx, Prompt{
		Title:  fmt.Sprintf("Output directory %s already exists. Replace it?", dir),
		Detail: "Replacing deletes every file from the previous batch.",
	})
	if err != nil {
		return fmt.Errorf("confirm output directory: %w", err)
	}
	if !ok {
		return fmt.Errorf("keep %s: %w", dir, apperr.ErrAborted)
	}

	g.logger.Info("Replacing output directory", "path", dir)
	if err := os.RemoveAll(dir); err != nil {
		return fmt.Errorf("remove output directory: %w", err)
	}
	return mkdir(dir)
}

func mkdir(dir string) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create output directory: %w", err)
	}
	return nil
}
