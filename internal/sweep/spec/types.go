package spec

import (
	"fmt"
	"math"
	"path/filepath"

	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/value"
)

const (
	DefaultThreshold        = 20000
	DefaultMemoryGB         = 8
	DefaultTime             = "5-00:00:00"
	DefaultBuildJobs        = 8
	DefaultAssetClassKey    = "graph_class"
	DefaultAssetNameKey     = "graph"
	DefaultIterationKey     = "iter"
	DefaultAssetFlag        = "graph"
	DefaultPrefix           = "bsa"
	DefaultTag              = "BSA"
	DefaultBinary           = "block_sa"
	DefaultQueueInterpreter = "python3"
	DefaultQueueHelper      = "./queue_SA.py"
)

// Spec is a loaded sweep specification. Groups already include the shared
// sweep axes.
type Spec struct {
	Experiment Experiment     `yaml:"experiment"`
	Solver     string         `yaml:"solver"`
	Paths      Paths          `yaml:"paths"`
	Resources  Resources      `yaml:"resources"`
	Threshold  int            `yaml:"threshold"`
	Keys       Keys           `yaml:"keys"`
	Artifact   ArtifactConfig `yaml:"artifact"`
	Groups     []Group        `yaml:"groups"`
	Shared     Group          `yaml:"sweep"`

	// Path is the file the spec was loaded from, empty for in-memory specs.
	Path string `yaml:"-"`
}

type Experiment struct {
	Project       string `yaml:"project"`
	Number        int    `yaml:"number"`
	Name          string `yaml:"name"`
	Justification string `yaml:"justification"`
}

type Paths struct {
	BaseConfig  string `yaml:"base_config"`
	ResultsDir  string `yaml:"results_dir"`
	SourceDir   string `yaml:"source_dir"`
	QueueHelper string `yaml:"queue_helper"`
}

type Resources struct {
	Partition string `yaml:"partition"`
	MemoryGB  int    `yaml:"memory_gb"`
	Time      string `yaml:"time"`
	BuildJobs int    `yaml:"build_jobs"`
}

// Keys names the job parameters with a fixed role.
type Keys struct {
	AssetClass string `yaml:"asset_class"`
	AssetName  string `yaml:"asset_name"`
	Iteration  string `yaml:"iteration"`
	AssetFlag  string `yaml:"asset_flag"`
}

type ArtifactConfig struct {
	Prefix           string `yaml:"prefix"`
	Tag              string `yaml:"tag"`
	Binary           string `yaml:"binary"`
	QueueInterpreter string `yaml:"queue_interpreter"`
	Header           string `yaml:"header"`
}

// Axis is one swept parameter with its candidate values in enumeration order.
type Axis struct {
	Name   string
	Values []value.Value
}

// Group is an independently enumerated block of axes.
type Group struct {
	Axes []Axis
}

// Size is the number of configurations the group expands to.
func (g Group) Size() int {
	n := 1
	for _, a := range g.Axes {
		l := len(a.Values)
		if l == 0 {
			return 0
		}
		if n > math.MaxInt/l {
			return math.MaxInt
		}
		n *= l
	}
	return n
}

func (g Group) Names() []string {
	names := make([]string, len(g.Axes))
	for i, a := range g.Axes {
		names[i] = a.Name
	}
	return names
}

func (g Group) Has(name string) bool {
	for _, a := range g.Axes {
		if a.Name == name {
			return true
		}
	}
	return false
}

// Values returns the candidate values of the named axis.
func (g Group) Values(name string) ([]value.Value, bool) {
	for _, a := range g.Axes {
		if a.Name == name {
			return a.Values, true
		}
	}
	return nil, false
}

// mergeShared overlays the shared axes onto g: existing names are replaced
// in place, new ones are appended.
func mergeShared(g, shared Group) Group {
	out := Group{Axes: make([]Axis, len(g.Axes), len(g.Axes)+len(shared.Axes))}
	copy(out.Axes, g.Axes)
	for _, sa := range shared.Axes {
		replaced := false
		for i := range out.Axes {
			if out.Axes[i].Name == sa.Name {
				out.Axes[i] = sa
				replaced = true
				break
			}
		}
		if !replaced {
			out.Axes = append(out.Axes, sa)
		}
	}
	return out
}

// SimName is the batch directory name, e.g. sim007_er_scaling.
func (s *Spec) SimName() string {
	return fmt.Sprintf("sim%03d_%s", s.Experiment.Number, s.Experiment.Name)
}

// ResultDir is where every artifact of the batch is written.
func (s *Spec) ResultDir() string {
	return filepath.Join(s.Paths.ResultsDir, s.Solver, s.SimName())
}

// Columns lists every swept parameter name across all groups, in first-seen
// order without duplicates.
func (s *Spec) Columns() []string {
	seen := make(map[string]bool)
	var cols []string
	for _, g := range s.Groups {
		for _, a := range g.Axes {
			if !seen[a.Name] {
				seen[a.Name] = true
				cols = append(cols, a.Name)
			}
		}
	}
	return cols
}
