package apperr

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
)

const (
	ExitOK      = 0
	ExitFailure = 1
	ExitInvalid = 2
)

// Handle logs err the way the CLI reports it and returns the process exit
// code. Build failures print the captured diagnostic output to w.
func Handle(err error, w io.Writer) int {
	if err == nil {
		return ExitOK
	}

	if errors.Is(err, ErrAborted) {
		slog.Info("Exiting without changes", "reason", err)
		return ExitOK
	}

	var ve *ValidationError
	if errors.As(err, &ve) {
		slog.Error("Invalid sweep specification", "error", err)
		return ExitInvalid
	}

	var be *BuildError
	if errors.As(err, &be) {
		slog.Error("Build failed", "step", be.Step, "exit_code", be.ExitCode)
		if be.Stderr != "" {
			fmt.Fprintf(w, "%s error with code %d:\n%s\n", be.Step, be.ExitCode, be.Stderr)
		}
		return ExitFailure
	}

	slog.Error("Run failed", "error", err)
	return ExitFailure
}
