package spec

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/DjordjeVuckovic/sweepgen/internal/apperr"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/params"
	"gopkg.in/yaml.v3"
)

// LoadFromFile reads a sweep spec. Files ending in .hcl are read as HCL,
// everything else as YAML. Relative base_config and source_dir paths are
// resolved against the spec's directory.
func LoadFromFile(path string) (*Spec, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read spec file: %w", err)
	}

	var s *Spec
	if strings.EqualFold(filepath.Ext(path), ".hcl") {
		s, err = ParseHCL(data, path)
	} else {
		s, err = Parse(data)
	}
	if err != nil {
		return nil, err
	}

	s.Path = path
	dir := filepath.Dir(path)
	s.Paths.BaseConfig = resolve(dir, s.Paths.BaseConfig)
	s.Paths.SourceDir = resolve(dir, s.Paths.SourceDir)
	return s, nil
}

func Parse(data []byte) (*Spec, error) {
	var s Spec
	if err := yaml.Unmarshal(data, &s); err != nil {
		return nil, fmt.Errorf("parse spec YAML: %w", err)
	}
	if err := finalize(&s); err != nil {
		return nil, err
	}
	return &s, nil
}

func resolve(dir, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

// finalize merges the shared axes into every group, applies defaults and
// validates the result.
func finalize(s *Spec) error {
	switch {
	case len(s.Groups) == 0 && len(s.Shared.Axes) == 0:
		return apperr.NewValidation("spec has no sweep groups")
	case len(s.Groups) == 0:
		s.Groups = []Group{s.Shared}
	default:
		for i, g := range s.Groups {
			s.Groups[i] = mergeShared(g, s.Shared)
		}
	}
	applyDefaults(s)
	return validate(s)
}

func applyDefaults(s *Spec) {
	if s.Threshold <= 0 {
		s.Threshold = DefaultThreshold
	}
	if s.Resources.MemoryGB <= 0 {
		s.Resources.MemoryGB = DefaultMemoryGB
	}
	if s.Resources.Time == "" {
		s.Resources.Time = DefaultTime
	}
	if s.Resources.BuildJobs <= 0 {
		s.Resources.BuildJobs = DefaultBuildJobs
	}
	if s.Paths.SourceDir == "" {
		s.Paths.SourceDir = "."
	}
	setDefault(&s.Paths.QueueHelper, DefaultQueueHelper)
	setDefault(&s.Keys.AssetClass, DefaultAssetClassKey)
	setDefault(&s.Keys.AssetName, DefaultAssetNameKey)
	setDefault(&s.Keys.Iteration, DefaultIterationKey)
	setDefault(&s.Keys.AssetFlag, DefaultAssetFlag)
	setDefault(&s.Artifact.Prefix, DefaultPrefix)
	setDefault(&s.Artifact.Tag, DefaultTag)
	setDefault(&s.Artifact.Binary, DefaultBinary)
	setDefault(&s.Artifact.QueueInterpreter, DefaultQueueInterpreter)
}

func setDefault(field *string, def string) {
	if *field == "" {
		*field = def
	}
}

func validate(s *Spec) error {
	if s.Experiment.Name == "" {
		return apperr.NewValidation("experiment has no name")
	}
	if s.Solver == "" {
		return apperr.NewValidation("spec has no solver")
	}
	if s.Paths.ResultsDir == "" {
		return apperr.NewValidation("paths.results_dir is required")
	}
	if s.Paths.BaseConfig == "" {
		return apperr.NewValidation("paths.base_config is required")
	}
	if s.Resources.Partition == "" {
		return apperr.NewValidation("resources.partition is required")
	}
	for i, g := range s.Groups {
		seen := make(map[string]bool, len(g.Axes))
		for _, a := range g.Axes {
			if a.Name == "" {
				return apperr.NewValidation(fmt.Sprintf("group %d has an unnamed axis", i))
			}
			if seen[a.Name] {
				return apperr.NewValidation(fmt.Sprintf("group %d declares axis %q twice", i, a.Name))
			}
			seen[a.Name] = true
			if len(a.Values) == 0 {
				return apperr.NewValidation(fmt.Sprintf("group %d axis %q has no values", i, a.Name))
			}
		}
	}
	return nil
}

// CheckBase verifies that every job the spec produces will carry the asset
// class and asset name, either from its group or from the base configuration.
func (s *Spec) CheckBase(base params.Params) error {
	for i, g := range s.Groups {
		for _, key := range []string{s.Keys.AssetClass, s.Keys.AssetName} {
			if !g.Has(key) && !base.Has(key) {
				return apperr.NewValidation(fmt.Sprintf("group %d: %q is set neither in the group nor in the base config", i, key))
			}
		}
	}
	return nil
}

// AssetClasses returns the distinct asset classes the sweep can reference,
// in first-seen order.
func (s *Spec) AssetClasses(base params.Params) []string {
	seen := make(map[string]bool)
	var classes []string
	add := func(name string) {
		if !seen[name] {
			seen[name] = true
			classes = append(classes, name)
		}
	}
	for _, g := range s.Groups {
		if values, ok := g.Values(s.Keys.AssetClass); ok {
			for _, v := range values {
				add(v.Text())
			}
		} else if v, ok := base.Get(s.Keys.AssetClass); ok {
			add(v.Text())
		}
	}
	return classes
}
