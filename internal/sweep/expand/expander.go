// Package expand enumerates sweep groups into job configurations.
package expand

import (
	"iter"
	"math"

	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/params"
	"github.com/DjordjeVuckovic/sweepgen/internal/sweep/spec"
)

// Expander streams the Cartesian product of every group in turn, each tuple
// merged over the base configuration. Groups are never crossed with each
// other; their products are concatenated in declaration order.
type Expander struct {
	groups []spec.Group
	base   params.Params
}

func New(groups []spec.Group, base params.Params) *Expander {
	return &Expander{groups: groups, base: base}
}

// Count returns the number of configurations All will yield, without
// enumerating them. It saturates at math.MaxInt.
func (e *Expander) Count() int {
	total := 0
	for _, g := range e.groups {
		n := g.Size()
		if total > math.MaxInt-n {
			return math.MaxInt
		}
		total += n
	}
	return total
}

// All yields (ordinal, configuration) pairs lazily. Ordinals start at 0 and
// count every enumerated configuration. Within a group the last axis varies
// fastest.
func (e *Expander) All() iter.Seq2[int, params.Params] {
	return func(yield func(int, params.Params) bool) {
		ordinal := 0
		for _, g := range e.groups {
			if g.Size() == 0 {
				continue
			}
			idx := make([]int, len(g.Axes))
			for {
				if !yield(ordinal, e.merge(g, idx)) {
					return
				}
				ordinal++
				if !advance(g, idx) {
					break
				}
			}
		}
	}
}

// advance moves the odometer one step and reports false once it wraps.
func advance(g spec.Group, idx []int) bool {
	for i := len(idx) - 1; i >= 0; i-- {
		idx[i]++
		if idx[i] < len(g.Axes[i].Values) {
			return true
		}
		idx[i] = 0
	}
	return false
}

func (e *Expander) merge(g spec.Group, idx []int) params.Params {
	cfg := e.base.Clone(len(g.Axes))
	for i, a := range g.Axes {
		cfg.Set(a.Name, a.Values[idx[i]])
	}
	return cfg
}
