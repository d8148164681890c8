package env

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
)

// LoadDotEnv loads environment variables from .env files. ENV_PATH, when set,
// replaces paths. Variables already present in the environment win. Missing
// files are skipped unless required is set.
func LoadDotEnv(required bool, paths ...string) error {
	if p := os.Getenv("ENV_PATH"); p != "" {
		paths = []string{p}
	}

	var found []string
	for _, p := range paths {
		_, err := os.Stat(p)
		switch {
		case err == nil:
			found = append(found, p)
		case errors.Is(err, fs.ErrNotExist) && !required:
			slog.Debug("Skipping .env file", "path", p)
		default:
			slog.Error("Failed to load environment file", "path", p, "error", err)
			return err
		}
	}
	if len(found) == 0 {
		return nil
	}

	if err := godotenv.Load(found...); err != nil {
		slog.Error("Failed to load environment variables", "error", err)
		return err
	}
	slog.Debug("Loaded environment files", "paths", found)
	return nil
}
