package engine

import (
	v2 "github.com/deadsy/sdfx/vec/v2"

	"github.com/chazu/froe/pkg/region"
)

// Result collects everything a script produced: the regions it
// defined by name, in definition order, and the lines it wrote with
// emit.
type Result struct {
	regions map[string]*region.Tree[v2.Vec]
	order   []string
	output  []string
}

// NewResult creates an empty Result.
func NewResult() *Result {
	return &Result{regions: make(map[string]*region.Tree[v2.Vec])}
}

// AddRegion registers a region under the given name. Redefining a
// name replaces the region but keeps its original position in the
// definition order.
func (r *Result) AddRegion(name string, t *region.Tree[v2.Vec]) {
	if _, exists := r.regions[name]; !exists {
		r.order = append(r.order, name)
	}
	r.regions[name] = t
}

// Region returns the region registered under the name, or nil.
func (r *Result) Region(name string) *region.Tree[v2.Vec] {
	return r.regions[name]
}

// RegionNames returns the defined region names in definition order.
func (r *Result) RegionNames() []string {
	names := make([]string, len(r.order))
	copy(names, r.order)
	return names
}

// RegionCount returns the number of defined regions.
func (r *Result) RegionCount() int { return len(r.regions) }

// Emit appends a line to the script's output.
func (r *Result) Emit(line string) {
	r.output = append(r.output, line)
}

// Output returns the lines the script emitted, in order.
func (r *Result) Output() []string {
	out := make([]string, len(r.output))
	copy(out, r.output)
	return out
}
