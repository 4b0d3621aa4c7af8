package scene

import "strings"

// Predicate decides whether a part belongs to a selection.
type Predicate func(g *Graph, p *Part) bool

// Named matches parts with exactly one of the given names.
func Named(names ...string) Predicate {
	set := make(map[string]bool, len(names))
	for _, n := range names {
		set[n] = true
	}
	return func(_ *Graph, p *Part) bool { return set[p.Name] }
}

// NamePrefix matches parts whose name starts with prefix.
func NamePrefix(prefix string) Predicate {
	return func(_ *Graph, p *Part) bool { return strings.HasPrefix(p.Name, prefix) }
}

// ChildOf matches direct children of the named part.
func ChildOf(parent string) Predicate {
	return func(g *Graph, p *Part) bool {
		pp := g.Parent(p.Name)
		return pp != nil && pp.Name == parent
	}
}

// Any matches parts satisfying at least one of preds.
func Any(preds ...Predicate) Predicate {
	return func(g *Graph, p *Part) bool {
		for _, pred := range preds {
			if pred(g, p) {
				return true
			}
		}
		return false
	}
}

// All matches every part.
func All() Predicate {
	return func(*Graph, *Part) bool { return true }
}
