// Package native implements the kernel.Kernel interface with exact
// polygon meshes built in pure Go. Bevels are supported on box topology
// (rounded box), subdivision is Catmull-Clark, and output is flat
// shaded.
package native

import (
	"github.com/chazu/gemforge/pkg/geom"
	"github.com/chazu/gemforge/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*Kernel)(nil)

// Kernel is the default geometry backend.
type Kernel struct{}

// New returns a native Kernel.
func New() *Kernel {
	return &Kernel{}
}

// Name implements kernel.Kernel.
func (k *Kernel) Name() string { return "native" }

// Realize implements kernel.Kernel.
//
// Scale is flattened before modifiers and rotation after them. Both
// modifiers commute with rotation, so the result equals flattening the
// whole transform first.
func (k *Kernel) Realize(shape kernel.Shape, rot geom.Euler, scale geom.Vec3, mods []kernel.Modifier) (*kernel.Mesh, error) {
	p, err := polygons(shape, scale, mods)
	if err != nil {
		return nil, err
	}
	if !rot.IsZero() {
		p.rotate(rot.Matrix())
	}
	return p.toMesh(), nil
}

// polygons builds the scaled, modified polygon mesh of shape.
func polygons(shape kernel.Shape, scale geom.Vec3, mods []kernel.Modifier) (*polyMesh, error) {
	if err := kernel.ValidateInputs(shape, scale, mods); err != nil {
		return nil, err
	}

	p := build(shape)
	p.scale(scale)

	for _, m := range mods {
		switch m := m.(type) {
		case kernel.Bevel:
			var err error
			if p, err = bevel(p, m); err != nil {
				return nil, err
			}
		case kernel.Subdivision:
			for i := 0; i < m.Levels; i++ {
				p = catmullClark(p)
			}
			if m.Levels > 0 {
				p.cuboid = nil
			}
		}
	}
	return p, nil
}
