package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/DjordjeVuckovic/sweepgen/internal/apperr"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/build"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/gate"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/params"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/report"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/runner"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/sink/factory"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/spec"
	"github.com/DjordjeVuckovic/sweepgen/internal/tui/confirm"
	"github.com/DjordjeVuckovic/sweepgen/pkg/config/env"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	cfg, err := parseFlags(args, stderr)
	if errors.Is(err, flag.ErrHelp) {
		return apperr.ExitOK
	}
	if err != nil {
		fmt.Fprintln(stderr, err)
		return apperr.ExitInvalid
	}

	logger := newLogger(cfg.LogLevel, cfg.LogFormat, stderr)
	slog.SetDefault(logger)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	return apperr.Handle(generate(ctx, cfg, stdout, logger), stderr)
}

func generate(ctx context.Context, cfg cliConfig, stdout io.Writer, logger *slog.Logger) error {
	if cfg.EnvPath != "" {
		if err := env.LoadDotEnv(true, cfg.EnvPath); err != nil {
			return fmt.Errorf("load env file: %w", err)
		}
	} else if err := env.LoadDotEnv(false, ".env"); err != nil {
		return fmt.Errorf("load env file: %w", err)
	}

	re, err := loadRunEnv()
	if err != nil {
		return err
	}

	s, err := spec.LoadFromFile(cfg.SpecPath)
	if err != nil {
		return fmt.Errorf("load spec %s: %w", cfg.SpecPath, err)
	}
	if re.ResultsDir != "" {
		s.Paths.ResultsDir = re.ResultsDir
	}

	base, err := params.LoadBase(s.Paths.BaseConfig)
	if err != nil {
		return err
	}
	logger.Info("Loaded sweep",
		"spec", cfg.SpecPath,
		"sim", s.SimName(),
		"groups", len(s.Groups),
		"base_params", base.Params.Len())

	rc := runner.NewRunContext(s, base, re.AssetRoot, re.AuxDir)

	if cfg.DryRun {
		res, err := runner.New(rc, runner.Deps{Logger: logger}).DryRun(ctx)
		if err != nil {
			return err
		}
		return writeReport(cfg, res, stdout)
	}

	sinkCfg, err := factory.LoadEnv()
	if err != nil {
		return err
	}
	snk, err := factory.NewSink(ctx, sinkCfg, logger)
	if err != nil {
		return err
	}
	defer func() {
		if err := snk.Close(); err != nil {
			logger.Warn("Failed to close experiment sink", "error", err)
		}
	}()

	var confirmer gate.Confirmer = confirm.NewTerminal()
	if cfg.Yes {
		confirmer = gate.Always(true)
	}

	var builder build.Builder = build.NewCMake(s.Paths.SourceDir, s.Resources.BuildJobs, logger)
	if cfg.SkipBuild {
		builder = build.Nop{}
	}

	res, err := runner.New(rc, runner.Deps{
		Confirmer: confirmer,
		Builder:   builder,
		Sink:      snk,
		Logger:    logger,
	}).Run(ctx)
	if err != nil {
		return err
	}

	if err := writeReport(cfg, res, stdout); err != nil {
		return err
	}
	fmt.Fprintf(stdout, "To run, enter: sbatch %s\n", res.LaunchPath)
	return nil
}

func writeReport(cfg cliConfig, res *runner.Result, stdout io.Writer) error {
	rep := report.Build(res, time.Now())
	report.WriteTable(rep, stdout)

	if cfg.SummaryOut == "" {
		return nil
	}
	if err := report.WriteJSON(rep, cfg.SummaryOut); err != nil {
		return err
	}
	slog.Info("Summary written", "path", cfg.SummaryOut)
	return nil
}
