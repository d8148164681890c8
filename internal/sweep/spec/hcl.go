package spec

import (
	"fmt"
	"sort"

	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/value"
	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"
	"github.com/zclconf/go-cty/cty/gocty"
)

// hclSpecFile mirrors the YAML layout. Sweep axes live in the remaining body
// of each group/sweep block so their declaration order can be recovered.
type hclSpecFile struct {
	Experiment *hclExperiment `hcl:"experiment,block"`
	Solver     string         `hcl:"solver,optional"`
	Threshold  int            `hcl:"threshold,optional"`
	Paths      *hclPaths      `hcl:"paths,block"`
	Resources  *hclResources  `hcl:"resources,block"`
	Keys       *hclKeys       `hcl:"keys,block"`
	Artifact   *hclArtifact   `hcl:"artifact,block"`
	Groups     []*hclAxes     `hcl:"group,block"`
	Sweep      *hclAxes       `hcl:"sweep,block"`
}

type hclExperiment struct {
	Project       string `hcl:"project,optional"`
	Number        int    `hcl:"number,optional"`
	Name          string `hcl:"name"`
	Justification string `hcl:"justification,optional"`
}

type hclPaths struct {
	BaseConfig  string `hcl:"base_config,optional"`
	ResultsDir  string `hcl:"results_dir,optional"`
	SourceDir   string `hcl:"source_dir,optional"`
	QueueHelper string `hcl:"queue_helper,optional"`
}

type hclResources struct {
	Partition string `hcl:"partition,optional"`
	MemoryGB  int    `hcl:"memory_gb,optional"`
	Time      string `hcl:"time,optional"`
	BuildJobs int    `hcl:"build_jobs,optional"`
}

type hclKeys struct {
	AssetClass string `hcl:"asset_class,optional"`
	AssetName  string `hcl:"asset_name,optional"`
	Iteration  string `hcl:"iteration,optional"`
	AssetFlag  string `hcl:"asset_flag,optional"`
}

type hclArtifact struct {
	Prefix           string `hcl:"prefix,optional"`
	Tag              string `hcl:"tag,optional"`
	Binary           string `hcl:"binary,optional"`
	QueueInterpreter string `hcl:"queue_interpreter,optional"`
	Header           string `hcl:"header,optional"`
}

type hclAxes struct {
	Body hcl.Body `hcl:",remain"`
}

// evalContext exposes range(start, stop[, step]) to axis expressions.
func evalContext() *hcl.EvalContext {
	return &hcl.EvalContext{
		Functions: map[string]function.Function{
			"range": stdlib.RangeFunc,
		},
	}
}

// ParseHCL decodes an HCL sweep spec. filename is used in diagnostics only.
func ParseHCL(data []byte, filename string) (*Spec, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(data, filename)
	if diags.HasErrors() {
		return nil, fmt.Errorf("parse spec HCL: %w", diags)
	}

	var raw hclSpecFile
	if diags := gohcl.DecodeBody(file.Body, nil, &raw); diags.HasErrors() {
		return nil, fmt.Errorf("decode spec HCL: %w", diags)
	}

	s := &Spec{Solver: raw.Solver, Threshold: raw.Threshold}
	if e := raw.Experiment; e != nil {
		s.Experiment = Experiment{Project: e.Project, Number: e.Number, Name: e.Name, Justification: e.Justification}
	}
	if p := raw.Paths; p != nil {
		s.Paths = Paths(*p)
	}
	if r := raw.Resources; r != nil {
		s.Resources = Resources(*r)
	}
	if k := raw.Keys; k != nil {
		s.Keys = Keys(*k)
	}
	if a := raw.Artifact; a != nil {
		s.Artifact = ArtifactConfig(*a)
	}

	ctx := evalContext()
	for i, g := range raw.Groups {
		group, err := decodeHCLAxes(g.Body, ctx)
		if err != nil {
			return nil, fmt.Errorf("group %d: %w", i, err)
		}
		s.Groups = append(s.Groups, group)
	}
	if raw.Sweep != nil {
		shared, err := decodeHCLAxes(raw.Sweep.Body, ctx)
		if err != nil {
			return nil, fmt.Errorf("sweep: %w", err)
		}
		s.Shared = shared
	}

	if err := finalize(s); err != nil {
		return nil, err
	}
	return s, nil
}

func decodeHCLAxes(body hcl.Body, ctx *hcl.EvalContext) (Group, error) {
	attrs, diags := body.JustAttributes()
	if diags.HasErrors() {
		return Group{}, diags
	}

	ordered := make([]*hcl.Attribute, 0, len(attrs))
	for _, a := range attrs {
		ordered = append(ordered, a)
	}
	sort.Slice(ordered, func(i, j int) bool {
		return ordered[i].Range.Start.Byte < ordered[j].Range.Start.Byte
	})

	g := Group{Axes: make([]Axis, 0, len(ordered))}
	for _, a := range ordered {
		v, diags := a.Expr.Value(ctx)
		if diags.HasErrors() {
			return Group{}, diags
		}
		values, err := ctyCandidates(v)
		if err != nil {
			return Group{}, fmt.Errorf("axis %q: %w", a.Name, err)
		}
		g.Axes = append(g.Axes, Axis{Name: a.Name, Values: values})
	}
	return g, nil
}

func ctyCandidates(v cty.Value) ([]value.Value, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, fmt.Errorf("value must be known and non-null")
	}
	ty := v.Type()
	if !ty.IsListType() && !ty.IsTupleType() && !ty.IsSetType() {
		s, err := ctyScalar(v)
		if err != nil {
			return nil, err
		}
		return []value.Value{s}, nil
	}

	values := make([]value.Value, 0, v.LengthInt())
	it := v.ElementIterator()
	for it.Next() {
		_, elem := it.Element()
		s, err := ctyScalar(elem)
		if err != nil {
			return nil, err
		}
		values = append(values, s)
	}
	return values, nil
}

func ctyScalar(v cty.Value) (value.Value, error) {
	if v.IsNull() || !v.IsKnown() {
		return value.Value{}, fmt.Errorf("value must be known and non-null")
	}
	switch v.Type() {
	case cty.String:
		return value.Parse(v.AsString()), nil
	case cty.Bool:
		return value.OfBool(v.True()), nil
	case cty.Number:
		bf := v.AsBigFloat()
		if bf.IsInt() {
			var i int64
			if err := gocty.FromCtyValue(v, &i); err == nil {
				return value.OfInt(i), nil
			}
		}
		f, _ := bf.Float64()
		return value.OfFloat(f), nil
	default:
		return value.Value{}, fmt.Errorf("unsupported type %s", v.Type().FriendlyName())
	}
}
