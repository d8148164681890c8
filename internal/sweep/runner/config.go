package runner

import (
	"log/slog"
	"time"

	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/bks"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/build"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/gate"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/params"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/sink"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/spec"
	"github.com/google/uuid"
)

// RunContext is everything a batch run reads. It is built once and never
// modified.
type RunContext struct {
	Spec *spec.Spec
	Base *params.Base
	// AssetRoot holds {class}/{name} asset files and per-class reference tables.
	AssetRoot string
	// AuxDir is the random-initialization directory. It is only reported.
	AuxDir string
	RunID  uuid.UUID
	Now    time.Time
}

func NewRunContext(s *spec.Spec, base *params.Base, assetRoot, auxDir string) RunContext {
	return RunContext{
		Spec:      s,
		Base:      base,
		AssetRoot: assetRoot,
		AuxDir:    auxDir,
		RunID:     uuid.New(),
		Now:       time.Now(),
	}
}

// Deps are the collaborators a Runner talks to. Nil fields fall back to
// Defaults.
type Deps struct {
	Confirmer gate.Confirmer
	Builder   build.Builder
	Sink      sink.Sink
	Layouts   bks.Layouts
	Logger    *slog.Logger
}

func (d Deps) withDefaults() Deps {
	if d.Logger == nil {
		d.Logger = slog.Default()
	}
	if d.Confirmer == nil {
		d.Confirmer = gate.Always(false)
	}
	if d.Builder == nil {
		d.Builder = build.Nop{}
	}
	if d.Sink == nil {
		d.Sink = sink.NewLogSink(d.Logger)
	}
	if d.Layouts == nil {
		d.Layouts = bks.DefaultLayouts()
	}
	return d
}
