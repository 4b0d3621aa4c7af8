package scene

import (
	"fmt"
	"sort"
)

// Severity indicates whether a finding blocks finalization or is merely
// informational.
type Severity int

const (
	SeverityError   Severity = iota // blocks Finalize
	SeverityWarning                 // informational
)

func (s Severity) String() string {
	switch s {
	case SeverityError:
		return "error"
	case SeverityWarning:
		return "warning"
	default:
		return fmt.Sprintf("Severity(%d)", int(s))
	}
}

// Finding describes a single validation result.
type Finding struct {
	Part     string // empty for graph-level findings
	Message  string
	Severity Severity
}

func (f Finding) Error() string {
	if f.Part == "" {
		return fmt.Sprintf("[%s] %s", f.Severity, f.Message)
	}
	return fmt.Sprintf("[%s] part %s: %s", f.Severity, f.Part, f.Message)
}

// Validate runs the structural checks and returns every finding. An
// empty slice means the graph is valid. It never mutates the graph.
func (g *Graph) Validate() []Finding {
	var fs []Finding
	fs = append(fs, g.validateAcyclic()...)
	fs = append(fs, g.validateReferences()...)
	fs = append(fs, g.validateParts()...)
	return fs
}

// validateAcyclic walks parent edges with 3-color DFS. White (0) =
// unvisited, gray (1) = on the current path, black (2) = done.
func (g *Graph) validateAcyclic() []Finding {
	const (
		white = iota
		gray
		black
	)
	color := make(map[string]int)
	var fs []Finding

	var visit func(name string) bool
	visit = func(name string) bool {
		switch color[name] {
		case black:
			return false
		case gray:
			fs = append(fs, Finding{Part: name, Message: "part is part of a parent cycle", Severity: SeverityError})
			return true
		}
		color[name] = gray
		for _, c := range g.children[name] {
			if visit(c) {
				return true
			}
		}
		color[name] = black
		return false
	}

	for _, p := range g.parts {
		if color[p.Name] == white && visit(p.Name) {
			// One cycle finding is sufficient.
			break
		}
	}
	return fs
}

// validateReferences checks that every parent edge names known parts.
func (g *Graph) validateReferences() []Finding {
	var fs []Finding
	children := make([]string, 0, len(g.parent))
	for c := range g.parent {
		children = append(children, c)
	}
	sort.Strings(children)
	for _, c := range children {
		p := g.parent[c]
		if g.byName[c] == nil {
			fs = append(fs, Finding{Part: c, Message: "parent edge from unknown part", Severity: SeverityError})
		}
		if g.byName[p] == nil {
			fs = append(fs, Finding{Part: c, Message: fmt.Sprintf("parent %q does not exist", p), Severity: SeverityError})
		}
	}
	return fs
}

// validateParts checks per-part completeness.
func (g *Graph) validateParts() []Finding {
	var fs []Finding
	for _, p := range g.parts {
		if p.Shape == nil {
			fs = append(fs, Finding{Part: p.Name, Message: "no shape", Severity: SeverityError})
		}
		if p.Material == nil {
			fs = append(fs, Finding{Part: p.Name, Message: "no material assigned", Severity: SeverityWarning})
		}
	}
	return fs
}
