// Package runner drives a batch from a loaded spec to a directory of job
// scripts ready for submission.
package runner

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/artifact"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/asset"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/bks"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/expand"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/gate"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/manifest"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/sink"
)

type Runner struct {
	rc     RunContext
	deps   Deps
	logger *slog.Logger
}

func New(rc RunContext, deps Deps) *Runner {
	deps = deps.withDefaults()
	return &Runner{
		rc:     rc,
		deps:   deps,
		logger: deps.Logger.With("run_id", rc.RunID, "sim", rc.Spec.SimName()),
	}
}

// prepared is the read-only state computed before anything is written.
type prepared struct {
	expander *expand.Expander
	writer   *artifact.Writer
	index    *bks.Index
	estimate int
}

func (r *Runner) prepare() (*prepared, error) {
	s := r.rc.Spec
	if err := s.CheckBase(r.rc.Base.Params); err != nil {
		return nil, err
	}

	index, err := bks.Load(s.AssetClasses(r.rc.Base.Params), r.rc.AssetRoot, r.deps.Layouts, r.logger)
	if err != nil {
		return nil, fmt.Errorf("load reference values: %w", err)
	}

	target := s.ResultDir()
	writer, err := artifact.NewWriter(artifact.Options{
		TargetDir:        target,
		ExecPath:         filepath.Join(target, artifact.BuildDir, s.Artifact.Binary),
		SimName:          s.SimName(),
		Partition:        s.Resources.Partition,
		MemoryGB:         s.Resources.MemoryGB,
		Time:             s.Resources.Time,
		Prefix:           s.Artifact.Prefix,
		Tag:              s.Artifact.Tag,
		Header:           s.Artifact.Header,
		QueueInterpreter: s.Artifact.QueueInterpreter,
		QueueHelper:      s.Paths.QueueHelper,
		AssetClassKey:    s.Keys.AssetClass,
		AssetNameKey:     s.Keys.AssetName,
		IterationKey:     s.Keys.Iteration,
		AssetFlag:        s.Keys.AssetFlag,
		CommandLine:      r.rc.Base.IsCommandLine,
	}, index)
	if err != nil {
		return nil, fmt.Errorf("job header: %w", err)
	}

	exp := expand.New(s.Groups, r.rc.Base.Params)
	return &prepared{
		expander: exp,
		writer:   writer,
		index:    index,
		estimate: exp.Count(),
	}, nil
}

// DryRun validates the spec and reports the job estimate without asking any
// question or touching the filesystem.
func (r *Runner) DryRun(ctx context.Context) (*Result, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	p, err := r.prepare()
	if err != nil {
		return nil, err
	}
	r.logger.Info("Dry run", "estimated_jobs", p.estimate, "threshold", r.rc.Spec.Threshold)
	return &Result{
		RunID:            r.rc.RunID,
		Name:             r.rc.Spec.SimName(),
		ResultDir:        r.rc.Spec.ResultDir(),
		DryRun:           true,
		Estimated:        p.estimate,
		ReferenceClasses: p.index.Classes(),
		ReferenceSkipped: p.index.Skipped(),
	}, nil
}

// Run generates the batch. Nothing is created until both gates pass.
func (r *Runner) Run(ctx context.Context) (*Result, error) {
	start := time.Now()
	s := r.rc.Spec

	p, err := r.prepare()
	if err != nil {
		return nil, err
	}
	r.logger.Info("Estimated jobs", "count", p.estimate, "note", "upper bound, missing assets are skipped later")
	if r.rc.AuxDir != "" {
		r.logger.Info("Random initialization directory", "path", r.rc.AuxDir)
	}

	g := gate.New(r.deps.Confirmer, r.logger)
	if err := g.CheckJobCount(ctx, p.estimate, s.Threshold); err != nil {
		return nil, err
	}
	target := s.ResultDir()
	if err := g.PrepareOutputDir(ctx, target); err != nil {
		return nil, err
	}

	for _, dir := range []string{artifact.BuildDir, artifact.ParametersDir, artifact.JobsDir, artifact.DataDir, artifact.ErrDir} {
		if err := os.MkdirAll(filepath.Join(target, dir), 0o755); err != nil {
			return nil, fmt.Errorf("create %s directory: %w", dir, err)
		}
	}

	if err := r.deps.Builder.Build(ctx, filepath.Join(target, artifact.BuildDir)); err != nil {
		return nil, err
	}

	paramDir := filepath.Join(target, artifact.ParametersDir)
	for _, snap := range snapshotNames(s.Path, r.rc.Base.Path) {
		if err := copyFile(snap.src, filepath.Join(paramDir, snap.name)); err != nil {
			return nil, fmt.Errorf("snapshot %s: %w", snap.src, err)
		}
	}

	res := &Result{
		RunID:            r.rc.RunID,
		Name:             s.SimName(),
		ResultDir:        target,
		Estimated:        p.estimate,
		ReferenceClasses: p.index.Classes(),
		ReferenceSkipped: p.index.Skipped(),
	}

	rec, skipped, err := r.generate(ctx, p)
	if err != nil {
		return nil, err
	}
	res.Enumerated = rec.Len() + skipped
	res.Skipped = skipped
	res.Written = rec.Len()

	res.ManifestPath = filepath.Join(paramDir, manifest.FileName)
	if err := rec.WriteFile(res.ManifestPath); err != nil {
		return nil, err
	}
	r.logger.Info("Wrote job record", "jobs", rec.Len(), "path", res.ManifestPath)

	res.LaunchPath, err = p.writer.WriteLaunch()
	if err != nil {
		return nil, err
	}

	err = r.deps.Sink.Record(ctx, sink.Entry{
		RunID:          r.rc.RunID,
		Status:         sink.StatusInProgress,
		Name:           s.Experiment.Name,
		Date:           r.rc.Now,
		Solver:         s.Solver,
		Project:        s.Experiment.Project,
		Justification:  s.Experiment.Justification,
		ResultPath:     target,
		ParametersPath: paramDir,
		Jobs:           res.Written,
		ManifestPath:   res.ManifestPath,
	})
	if err != nil {
		return nil, fmt.Errorf("record experiment: %w", err)
	}

	res.Duration = time.Since(start)
	return res, nil
}

// generate streams every configuration through asset validation and the
// writer. Only configurations with an asset get an index, so indices stay
// contiguous.
func (r *Runner) generate(ctx context.Context, p *prepared) (*manifest.Recorder, int, error) {
	s := r.rc.Spec
	validator := asset.NewValidator(r.rc.AssetRoot, s.Keys.AssetClass, s.Keys.AssetName, r.logger)
	rec := manifest.NewRecorder(s.Columns())

	for _, cfg := range p.expander.All() {
		if err := ctx.Err(); err != nil {
			return nil, 0, err
		}
		path, ok := validator.Validate(cfg)
		if !ok {
			continue
		}
		if _, err := p.writer.WriteJob(rec.Next(), cfg, path); err != nil {
			return nil, 0, err
		}
		rec.Add(cfg)
	}

	if n := validator.Skipped(); n > 0 {
		r.logger.Warn("Skipped jobs with missing assets", "count", n)
	}
	return rec, validator.Skipped(), nil
}

type snapshot struct {
	src  string
	name string
}

// snapshotNames names the copies of the spec and base config files inside
// the parameters directory. A base config whose name clashes with the spec
// snapshot or with a generated file gets a "base_" prefix.
func snapshotNames(specPath, basePath string) []snapshot {
	taken := map[string]bool{
		manifest.FileName:   true,
		artifact.LaunchFile: true,
	}
	var out []snapshot
	if specPath != "" {
		name := filepath.Base(specPath)
		taken[name] = true
		out = append(out, snapshot{src: specPath, name: name})
	}
	if basePath != "" {
		name := filepath.Base(basePath)
		for taken[name] {
			name = "base_" + name
		}
		out = append(out, snapshot{src: basePath, name: name})
	}
	return out
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}
