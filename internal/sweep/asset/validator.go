// Package asset checks that the input file a job configuration references
// exists before the job is written.
package asset

import (
	"log/slog"
	"os"
	"path/filepath"

	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/params"
)

type Validator struct {
	root     string
	classKey string
	nameKey  string
	logger   *slog.Logger
	skipped  int
}

func NewValidator(root, classKey, nameKey string, logger *slog.Logger) *Validator {
	if logger == nil {
		logger = slog.Default()
	}
	return &Validator{root: root, classKey: classKey, nameKey: nameKey, logger: logger}
}

// Path resolves {root}/{class}/{name} for cfg. ok is false when either key
// is absent.
func (v *Validator) Path(cfg params.Params) (string, bool) {
	class, ok := cfg.Get(v.classKey)
	if !ok {
		return "", false
	}
	name, ok := cfg.Get(v.nameKey)
	if !ok {
		return "", false
	}
	return filepath.Join(v.root, class.Text(), name.Text()), true
}

// Validate returns the resolved asset path, or ok=false after logging the
// unresolved path when the asset is missing. Skips are counted.
func (v *Validator) Validate(cfg params.Params) (string, bool) {
	path, ok := v.Path(cfg)
	if !ok {
		v.skipped++
		v.logger.Warn("Skipping job without asset reference", "class_key", v.classKey, "name_key", v.nameKey)
		return "", false
	}

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		v.skipped++
		v.logger.Warn("Skipping job with missing asset", "path", path)
		return "", false
	}
	return path, true
}

func (v *Validator) Skipped() int { return v.skipped }
