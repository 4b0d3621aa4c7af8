package scene

import (
	"errors"
	"fmt"
)

// Graph mutation errors.
var (
	ErrDuplicateName = errors.New("duplicate part name")
	ErrUnknownPart   = errors.New("unknown part")
	ErrHasParent     = errors.New("part already has a parent")
	ErrCycle         = errors.New("parent edge would create a cycle")
	ErrFinalized     = errors.New("hierarchy is finalized")
	ErrNotFinalized  = errors.New("hierarchy is not finalized")
)

// Graph is an ordered forest of parts. Parts keep insertion order, which
// is also export order.
type Graph struct {
	parts     []*Part
	byName    map[string]*Part
	parent    map[string]string
	children  map[string][]string
	finalized bool
}

// New returns an empty Graph.
func New() *Graph {
	return &Graph{
		byName:   make(map[string]*Part),
		parent:   make(map[string]string),
		children: make(map[string][]string),
	}
}

// Add registers p as a root. Names must be unique.
func (g *Graph) Add(p *Part) error {
	if g.finalized {
		return fmt.Errorf("add part %q: %w", p.Name, ErrFinalized)
	}
	if p.Name == "" {
		return fmt.Errorf("add part: empty name")
	}
	if _, exists := g.byName[p.Name]; exists {
		return fmt.Errorf("add part %q: %w", p.Name, ErrDuplicateName)
	}
	g.parts = append(g.parts, p)
	g.byName[p.Name] = p
	return nil
}

// SetParent attaches child under parent.
func (g *Graph) SetParent(child, parent string) error {
	if g.finalized {
		return fmt.Errorf("parent %q to %q: %w", child, parent, ErrFinalized)
	}
	if g.byName[child] == nil {
		return fmt.Errorf("parent %q to %q: child: %w", child, parent, ErrUnknownPart)
	}
	if g.byName[parent] == nil {
		return fmt.Errorf("parent %q to %q: parent: %w", child, parent, ErrUnknownPart)
	}
	if existing, ok := g.parent[child]; ok {
		return fmt.Errorf("parent %q to %q: already under %q: %w", child, parent, existing, ErrHasParent)
	}
	for cur, ok := parent, true; ok; cur, ok = g.parent[cur] {
		if cur == child {
			return fmt.Errorf("parent %q to %q: %w", child, parent, ErrCycle)
		}
	}
	g.parent[child] = parent
	g.children[parent] = append(g.children[parent], child)
	return nil
}

// Finalize validates the graph and freezes the hierarchy. It fails on
// any error-severity finding. Calling it again is a no-op.
func (g *Graph) Finalize() error {
	if g.finalized {
		return nil
	}
	var errs []error
	for _, f := range g.Validate() {
		if f.Severity == SeverityError {
			errs = append(errs, f)
		}
	}
	if err := errors.Join(errs...); err != nil {
		return fmt.Errorf("finalize scene: %w", err)
	}
	g.finalized = true
	return nil
}

// Finalized reports whether Finalize has succeeded.
func (g *Graph) Finalized() bool { return g.finalized }

// Parts returns every part in insertion order.
func (g *Graph) Parts() []*Part {
	out := make([]*Part, len(g.parts))
	copy(out, g.parts)
	return out
}

// Len returns the number of parts.
func (g *Graph) Len() int { return len(g.parts) }

// Lookup returns the part with the given name, or nil.
func (g *Graph) Lookup(name string) *Part {
	return g.byName[name]
}

// MustLookup returns the part with the given name, or panics.
func (g *Graph) MustLookup(name string) *Part {
	p := g.Lookup(name)
	if p == nil {
		panic(fmt.Sprintf("scene: no part named %q", name))
	}
	return p
}

// Parent returns the parent of the named part, or nil for a root.
func (g *Graph) Parent(name string) *Part {
	pn, ok := g.parent[name]
	if !ok {
		return nil
	}
	return g.byName[pn]
}

// Children returns the direct children of the named part in attach
// order.
func (g *Graph) Children(name string) []*Part {
	names := g.children[name]
	out := make([]*Part, 0, len(names))
	for _, n := range names {
		if c := g.byName[n]; c != nil {
			out = append(out, c)
		}
	}
	return out
}

// Roots returns the parts without a parent in insertion order.
func (g *Graph) Roots() []*Part {
	var roots []*Part
	for _, p := range g.parts {
		if _, ok := g.parent[p.Name]; !ok {
			roots = append(roots, p)
		}
	}
	return roots
}

// Select returns the parts matching pred in insertion order.
func (g *Graph) Select(pred Predicate) []*Part {
	var out []*Part
	for _, p := range g.parts {
		if pred(g, p) {
			out = append(out, p)
		}
	}
	return out
}

// Reset removes every part and unfreezes the hierarchy.
func (g *Graph) Reset() {
	*g = *New()
}
