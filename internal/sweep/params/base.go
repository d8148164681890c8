package params

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/value"
	"gopkg.in/yaml.v3"
)

// Base is the configuration applied to every job. Its keys double as the
// allow-list of parameters the job binary accepts on its command line.
type Base struct {
	Params      Params
	Path        string
	commandLine map[string]struct{}
}

// IsCommandLine reports whether name is passed to the job binary.
func (b *Base) IsCommandLine(name string) bool {
	_, ok := b.commandLine[name]
	return ok
}

func NewBase(p Params) *Base {
	cl := make(map[string]struct{}, p.Len())
	for _, k := range p.Keys() {
		cl[k] = struct{}{}
	}
	return &Base{Params: p, commandLine: cl}
}

// LoadBase reads a flat base configuration. Files ending in .yaml or .yml
// are read as YAML, anything else as a JSON object. Key order is kept.
func LoadBase(path string) (*Base, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read base config: %w", err)
	}

	var p Params
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		p, err = ParseBaseYAML(data)
	default:
		p, err = ParseBaseJSON(data)
	}
	if err != nil {
		return nil, fmt.Errorf("parse base config %s: %w", path, err)
	}

	b := NewBase(p)
	b.Path = path
	return b, nil
}

// ParseBaseJSON decodes a flat JSON object. Values are converted to text
// and inferred with value.Parse, the way a hand-written config of quoted
// strings is meant to be read.
func ParseBaseJSON(data []byte) (Params, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()

	tok, err := dec.Token()
	if err != nil {
		return Params{}, err
	}
	if d, ok := tok.(json.Delim); !ok || d != '{' {
		return Params{}, fmt.Errorf("expected a JSON object")
	}

	p := New()
	for dec.More() {
		keyTok, err := dec.Token()
		if err != nil {
			return Params{}, err
		}
		key := keyTok.(string)

		valTok, err := dec.Token()
		if err != nil {
			return Params{}, err
		}
		switch t := valTok.(type) {
		case string:
			p.Set(key, value.Parse(t))
		case json.Number:
			p.Set(key, value.Parse(t.String()))
		case bool:
			p.Set(key, value.OfBool(t))
		case nil:
			p.Set(key, value.OfString(""))
		default:
			return Params{}, fmt.Errorf("key %q: expected a scalar value", key)
		}
	}
	if _, err := dec.Token(); err != nil && err != io.EOF {
		return Params{}, err
	}
	return p, nil
}

func ParseBaseYAML(data []byte) (Params, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return Params{}, err
	}
	p := New()
	if len(doc.Content) == 0 {
		return p, nil
	}
	root := doc.Content[0]
	if root.Kind != yaml.MappingNode {
		return Params{}, fmt.Errorf("line %d: expected a mapping", root.Line)
	}
	for i := 0; i+1 < len(root.Content); i += 2 {
		var v value.Value
		if err := root.Content[i+1].Decode(&v); err != nil {
			return Params{}, fmt.Errorf("key %q: %w", root.Content[i].Value, err)
		}
		p.Set(root.Content[i].Value, v)
	}
	return p, nil
}
