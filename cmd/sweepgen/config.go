package main

import (
	"flag"
	"fmt"
	"io"
	"os"
)

type cliConfig struct {
	SpecPath   string
	EnvPath    string
	Yes        bool
	SkipBuild  bool
	DryRun     bool
	LogLevel   string
	LogFormat  string
	SummaryOut string
}

// runEnv is the part of the process environment the generator reads.
type runEnv struct {
	AssetRoot  string
	AuxDir     string
	ResultsDir string
}

func parseFlags(args []string, errOut io.Writer) (cliConfig, error) {
	cfg := cliConfig{}

	fs := flag.NewFlagSet("sweepgen", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&cfg.SpecPath, "spec", "sweep.yaml", "Path to the sweep spec (YAML, or HCL with a .hcl extension)")
	fs.StringVar(&cfg.EnvPath, "env", "", "Path to a .env file (default: .env in the working directory, if present)")
	fs.BoolVar(&cfg.Yes, "yes", false, "Answer yes to every confirmation")
	fs.BoolVar(&cfg.SkipBuild, "skip-build", false, "Do not run cmake/make in the build directory")
	fs.BoolVar(&cfg.DryRun, "dry-run", false, "Validate the spec and print the job estimate without writing anything")
	fs.StringVar(&cfg.LogLevel, "log-level", "info", "Log level: debug, info, warn, or error")
	fs.StringVar(&cfg.LogFormat, "log-format", "text", "Log format: text or json")
	fs.StringVar(&cfg.SummaryOut, "summary", "", "Write a JSON run summary to this path")

	if err := fs.Parse(args); err != nil {
		return cliConfig{}, err
	}
	if fs.NArg() > 0 {
		return cliConfig{}, fmt.Errorf("unexpected arguments: %v", fs.Args())
	}
	return cfg, nil
}

func loadRunEnv() (runEnv, error) {
	e := runEnv{
		AssetRoot:  os.Getenv("GSET"),
		AuxDir:     os.Getenv("RND"),
		ResultsDir: os.Getenv("RESULTS_DIR"),
	}
	if e.AssetRoot == "" {
		return runEnv{}, fmt.Errorf("GSET environment variable is not set")
	}
	return e, nil
}
