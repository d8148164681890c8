package report

import (
	"runtime"
	"time"

	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/runner"
)

type Report struct {
	Meta    Meta    `json:"meta"`
	Batch   Batch   `json:"batch"`
	Counts  Counts  `json:"counts"`
	Outputs Outputs `json:"outputs"`
}

type Meta struct {
	RunID       string          `json:"run_id"`
	Timestamp   time.Time       `json:"timestamp"`
	Environment EnvironmentInfo `json:"environment"`
}

type Batch struct {
	Name      string `json:"name"`
	ResultDir string `json:"result_dir"`
	DryRun    bool   `json:"dry_run,omitempty"`
}

type Counts struct {
	Estimated        int `json:"estimated"`
	Enumerated       int `json:"enumerated"`
	Skipped          int `json:"skipped"`
	Written          int `json:"written"`
	ReferenceClasses int `json:"reference_classes"`
	ReferenceSkipped int `json:"reference_rows_skipped"`
}

type Outputs struct {
	Manifest string        `json:"manifest,omitempty"`
	Launch   string        `json:"launch,omitempty"`
	Duration time.Duration `json:"duration_ns"`
}

type EnvironmentInfo struct {
	GoVersion string `json:"go_version"`
	OS        string `json:"os"`
	Arch      string `json:"arch"`
	NumCPU    int    `json:"num_cpu"`
}

func NewEnvironmentInfo() EnvironmentInfo {
	return EnvironmentInfo{
		GoVersion: runtime.Version(),
		OS:        runtime.GOOS,
		Arch:      runtime.GOARCH,
		NumCPU:    runtime.NumCPU(),
	}
}

func Build(res *runner.Result, ts time.Time) *Report {
	return &Report{
		Meta: Meta{
			RunID:       res.RunID.String(),
			Timestamp:   ts,
			Environment: NewEnvironmentInfo(),
		},
		Batch: Batch{
			Name:      res.Name,
			ResultDir: res.ResultDir,
			DryRun:    res.DryRun,
		},
		Counts: Counts{
			Estimated:        res.Estimated,
			Enumerated:       res.Enumerated,
			Skipped:          res.Skipped,
			Written:          res.Written,
			ReferenceClasses: res.ReferenceClasses,
			ReferenceSkipped: res.ReferenceSkipped,
		},
		Outputs: Outputs{
			Manifest: res.ManifestPath,
			Launch:   res.LaunchPath,
			Duration: res.Duration,
		},
	}
}
