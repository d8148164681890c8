// Package build compiles the solver binary into a batch's build directory.
package build

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os/exec"
	"strings"

	"github.com/DjordjeVuckovic/sweepgen/internal/apperr"
)

type Builder interface {
	Build(ctx context.Context, buildDir string) error
}

// Nop skips compilation; the binary is expected to already be in place.
type Nop struct{}

func (Nop) Build(context.Context, string) error { return nil }

// CommandFunc creates the process for one build step.
type CommandFunc func(ctx context.Context, name string, args ...string) *exec.Cmd

// CMake configures the project with cmake and compiles it with make.
type CMake struct {
	SourceDir string
	Jobs      int
	Logger    *slog.Logger
	Command   CommandFunc
}

func NewCMake(sourceDir string, jobs int, logger *slog.Logger) *CMake {
	if logger == nil {
		logger = slog.Default()
	}
	return &CMake{
		SourceDir: sourceDir,
		Jobs:      jobs,
		Logger:    logger,
		Command:   exec.CommandContext,
	}
}

func (b *CMake) Build(ctx context.Context, buildDir string) error {
	steps := []struct {
		name string
		args []string
	}{
		{"cmake", []string{"-B" + buildDir, "-S" + b.SourceDir}},
		{"make", []string{"--directory=" + buildDir, fmt.Sprintf("-j%d", b.Jobs)}},
	}
	for _, s := range steps {
		if err := b.run(ctx, s.name, s.args...); err != nil {
			return err
		}
	}
	b.Logger.Info("Build finished", "dir", buildDir)
	return nil
}

func (b *CMake) run(ctx context.Context, name string, args ...string) error {
	b.Logger.Info("Running build step", "cmd", name+" "+strings.Join(args, " "))

	cmd := b.Command(ctx, name, args...)
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		code := -1
		var exitErr *exec.ExitError
		if errors.As(err, &exitErr) {
			code = exitErr.ExitCode()
		}
		return &apperr.BuildError{
			Step:     name,
			ExitCode: code,
			Stderr:   strings.TrimRight(stderr.String(), "\n"),
			Err:      err,
		}
	}
	return nil
}
