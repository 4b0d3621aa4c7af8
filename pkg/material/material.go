// Package material provides named physically-based materials and the
// registry that deduplicates them within a generation run.
package material

import "fmt"

// AlphaMode controls how a material's alpha channel is interpreted.
type AlphaMode int

const (
	AlphaOpaque AlphaMode = iota
	AlphaBlend
)

func (m AlphaMode) String() string {
	switch m {
	case AlphaOpaque:
		return "OPAQUE"
	case AlphaBlend:
		return "BLEND"
	default:
		return fmt.Sprintf("AlphaMode(%d)", int(m))
	}
}

// Descriptor holds the parameters a material is created from.
type Descriptor struct {
	BaseColor           [4]float64 // linear RGBA
	Metallic            float64
	Roughness           float64
	IOR                 float64 // zero when unspecified
	Alpha               AlphaMode
	ShowTransparentBack bool
}

// HasIOR reports whether an index of refraction was specified.
func (d Descriptor) HasIOR() bool { return d.IOR > 0 }

// Material is a named, immutable material. Parts hold *Material
// references; identity is the pointer.
type Material struct {
	name string
	desc Descriptor
}

// Name returns the material's registry key.
func (m *Material) Name() string { return m.name }

// Descriptor returns a copy of the creation parameters.
func (m *Material) Descriptor() Descriptor { return m.desc }

func (m *Material) String() string {
	return fmt.Sprintf("material %q (metallic %.2f, roughness %.2f)", m.name, m.desc.Metallic, m.desc.Roughness)
}

// Registry maps names to materials for one generation run. It is not
// safe for concurrent mutation; the pipeline owns it from one goroutine.
type Registry struct {
	byName map[string]*Material
	order  []*Material
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*Material)}
}

// GetOrCreate returns the material registered under name, creating it
// from desc on first use. On later calls desc is ignored.
func (r *Registry) GetOrCreate(name string, desc Descriptor) *Material {
	if m, ok := r.byName[name]; ok {
		return m
	}
	m := &Material{name: name, desc: desc}
	r.byName[name] = m
	r.order = append(r.order, m)
	return m
}

// Lookup returns the named material, or nil.
func (r *Registry) Lookup(name string) *Material {
	return r.byName[name]
}

// All returns materials in creation order.
func (r *Registry) All() []*Material {
	out := make([]*Material, len(r.order))
	copy(out, r.order)
	return out
}

// Len returns the number of registered materials.
func (r *Registry) Len() int { return len(r.order) }

// Reset drops every material. Materials already handed out stay valid
// but are no longer reachable through the registry.
func (r *Registry) Reset() {
	r.byName = make(map[string]*Material)
	r.order = nil
}
