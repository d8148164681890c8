// Package params holds insertion-ordered parameter maps and the loader for
// the base configuration every job inherits.
package params

import (
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/value"
)

// Params is an insertion-ordered mapping from parameter name to value.
// Setting an existing key replaces the value in place.
type Params struct {
	keys   []string
	values map[string]value.Value
}

func New() Params {
	return Params{values: make(map[string]value.Value)}
}

func (p *Params) Set(name string, v value.Value) {
	if p.values == nil {
		p.values = make(map[string]value.Value)
	}
	if _, ok := p.values[name]; !ok {
		p.keys = append(p.keys, name)
	}
	p.values[name] = v
}

func (p Params) Get(name string) (value.Value, bool) {
	v, ok := p.values[name]
	return v, ok
}

func (p Params) Has(name string) bool {
	_, ok := p.values[name]
	return ok
}

// Keys returns the names in insertion order. The slice must not be modified.
func (p Params) Keys() []string { return p.keys }

func (p Params) Len() int { return len(p.keys) }

// Clone returns an independent copy sized for extra additional keys.
func (p Params) Clone(extra int) Params {
	c := Params{
		keys:   make([]string, len(p.keys), len(p.keys)+extra),
		values: make(map[string]value.Value, len(p.keys)+extra),
	}
	copy(c.keys, p.keys)
	for k, v := range p.values {
		c.values[k] = v
	}
	return c
}

// Each calls fn for every entry in order.
func (p Params) Each(fn func(name string, v value.Value)) {
	for _, k := range p.keys {
		fn(k, p.values[k])
	}
}
