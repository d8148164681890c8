// Package artifact serializes job configurations into Slurm launch scripts.
package artifact

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/bks"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/params"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/value"
)

// DefaultJobHeader is the resource block written at the top of every job script.
const DefaultJobHeader = `#!/bin/bash
#SBATCH --job-name {{job}}_{{tag}}
#SBATCH --output={{target}}/data/{{prefix}}_output_{{job}}.run
#SBATCH --error={{target}}/err/{{prefix}}_output_{{job}}.err
#SBATCH -p {{partition}}
#SBATCH --mem={{memory}}G
#SBATCH --ntasks=1
#SBATCH --time={{time}}
`

const launchHeader = `#!/bin/bash
#SBATCH --job-name QUEUE_{{sim}}
#SBATCH --output={{target}}/parameters/queue.run
#SBATCH --error={{target}}/err/queue.err
#SBATCH -p {{partition}}
#SBATCH --mem=1G
#SBATCH --ntasks=1
#SBATCH --time={{time}}
`

// HeaderPlaceholders lists the placeholders a job header may use.
var HeaderPlaceholders = []string{"job", "tag", "prefix", "target", "partition", "memory", "time", "sim"}

const (
	JobsDir       = "jobs"
	ParametersDir = "parameters"
	DataDir       = "data"
	ErrDir        = "err"
	BuildDir      = "build"
	LaunchFile    = "launch_queue.sh"
)

type Options struct {
	TargetDir string
	ExecPath  string
	SimName   string

	Partition string
	MemoryGB  int
	Time      string

	Prefix string
	Tag    string
	Header string

	QueueInterpreter string
	QueueHelper      string

	AssetClassKey string
	AssetNameKey  string
	IterationKey  string
	AssetFlag     string

	// CommandLine reports whether a parameter is passed to the binary.
	CommandLine func(name string) bool
}

type Writer struct {
	opts   Options
	header *Template
	launch *Template
	index  *bks.Index
}

// NewWriter validates the header template up front so a bad template fails
// before anything is written.
func NewWriter(opts Options, index *bks.Index) (*Writer, error) {
	text := opts.Header
	if text == "" {
		text = DefaultJobHeader
	}
	if !strings.HasSuffix(text, "\n") {
		text += "\n"
	}
	header := &Template{ID: "job_header", Text: text}
	if err := header.Validate(HeaderPlaceholders); err != nil {
		return nil, err
	}
	if opts.CommandLine == nil {
		opts.CommandLine = func(string) bool { return false }
	}
	return &Writer{
		opts:   opts,
		header: header,
		launch: &Template{ID: "launch_header", Text: launchHeader},
		index:  index,
	}, nil
}

func (w *Writer) JobPath(jobIndex int) string {
	return filepath.Join(w.opts.TargetDir, JobsDir, fmt.Sprintf("%s_job_%d.sh", w.opts.Prefix, jobIndex))
}

func (w *Writer) LaunchPath() string {
	return filepath.Join(w.opts.TargetDir, ParametersDir, LaunchFile)
}

// WriteJob renders and writes the script for one job and returns its path.
func (w *Writer) WriteJob(jobIndex int, cfg params.Params, assetPath string) (string, error) {
	script, err := w.RenderJob(jobIndex, cfg, assetPath)
	if err != nil {
		return "", err
	}
	path := w.JobPath(jobIndex)
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		return "", fmt.Errorf("write job file: %w", err)
	}
	return path, nil
}

// RenderJob builds the job script: header, executable, allow-listed
// parameters, asset, seed and, when known, the best-known value.
func (w *Writer) RenderJob(jobIndex int, cfg params.Params, assetPath string) (string, error) {
	header, err := w.header.Render(w.headerParams(jobIndex))
	if err != nil {
		return "", err
	}

	lines := []string{w.opts.ExecPath}
	cfg.Each(func(name string, v value.Value) {
		if !w.opts.CommandLine(name) {
			return
		}
		if b, ok := v.AsBool(); ok {
			if b {
				lines = append(lines, "--"+name)
			}
			return
		}
		lines = append(lines, fmt.Sprintf("--%s %s", name, v))
	})
	lines = append(lines, fmt.Sprintf("--%s %s", w.opts.AssetFlag, assetPath))
	lines = append(lines, "--seed "+w.seed(cfg))
	if best, ok := w.best(cfg); ok {
		lines = append(lines, "--best "+best.String())
	}

	var sb strings.Builder
	sb.WriteString(header)
	sb.WriteString("\n")
	sb.WriteString(strings.Join(lines, " \\\n\t"))
	sb.WriteString("\n")
	return sb.String(), nil
}

func (w *Writer) headerParams(jobIndex int) TemplateParams {
	return TemplateParams{
		"job":       jobIndex,
		"tag":       w.opts.Tag,
		"prefix":    w.opts.Prefix,
		"target":    w.opts.TargetDir,
		"partition": w.opts.Partition,
		"memory":    w.opts.MemoryGB,
		"time":      w.opts.Time,
		"sim":       w.opts.SimName,
	}
}

// seed is the iteration index of the job; configurations without one run
// with seed 0.
func (w *Writer) seed(cfg params.Params) string {
	if v, ok := cfg.Get(w.opts.IterationKey); ok {
		return v.String()
	}
	return "0"
}

func (w *Writer) best(cfg params.Params) (value.Value, bool) {
	class, ok := cfg.Get(w.opts.AssetClassKey)
	if !ok {
		return value.Value{}, false
	}
	name, ok := cfg.Get(w.opts.AssetNameKey)
	if !ok {
		return value.Value{}, false
	}
	return w.index.Lookup(class.Text(), name.Text())
}

// WriteLaunch writes the batch-level script that hands the job directory to
// the queue helper.
func (w *Writer) WriteLaunch() (string, error) {
	header, err := w.launch.Render(w.headerParams(0))
	if err != nil {
		return "", err
	}
	script := fmt.Sprintf("%s\n%s %s %s\n", header, w.opts.QueueInterpreter, w.opts.QueueHelper, w.opts.SimName)

	path := w.LaunchPath()
	if err := os.WriteFile(path, []byte(script), 0o755); err != nil {
		return "", fmt.Errorf("write launch file: %w", err)
	}
	return path, nil
}
