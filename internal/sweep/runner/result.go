package runner

import (
	"time"

	"github.com/google/uuid"
)

// Result summarizes one batch. Estimated counts configurations before asset
// filtering; Enumerated == Written + Skipped once a run completes.
type Result struct {
	RunID     uuid.UUID
	Name      string
	ResultDir string
	DryRun    bool

	Estimated  int
	Enumerated int
	Skipped    int
	Written    int

	ReferenceClasses int
	ReferenceSkipped int

	ManifestPath string
	LaunchPath   string
	Duration     time.Duration
}
