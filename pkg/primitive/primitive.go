// Package primitive creates scene parts from primitive shapes and queues
// modifiers on them. Nothing here realizes geometry; parameters are
// validated up front so that bad input fails before any mesh is built.
package primitive

import (
	"github.com/chazu/gemforge/pkg/fault"
	"github.com/chazu/gemforge/pkg/geom"
	"github.com/chazu/gemforge/pkg/kernel"
	"github.com/chazu/gemforge/pkg/scene"
)

// Build returns a part of the given shape with its origin at location,
// unit scale and no rotation. Invalid shape parameters fail with a
// *fault.GeometryError wrapping fault.ErrInvalidParameter; nothing is
// clamped.
func Build(name string, shape kernel.Shape, location geom.Vec3) (*scene.Part, error) {
	if shape == nil {
		return nil, fault.WithPart(fault.BadParam("build", "no shape"), name)
	}
	if err := shape.Validate(); err != nil {
		return nil, fault.WithPart(err, name)
	}
	return &scene.Part{
		Name:      name,
		Shape:     shape,
		Transform: geom.At(location),
	}, nil
}

// BuildBox returns a box part sized dims (full extents) by scaling the
// unit cube.
func BuildBox(name string, dims, location geom.Vec3) (*scene.Part, error) {
	for i := 0; i < 3; i++ {
		if !(dims[i] > 0) {
			return nil, fault.WithPart(fault.BadParam("build box", "dimensions %v must be positive", dims), name)
		}
	}
	p, err := Build(name, kernel.Box{}, location)
	if err != nil {
		return nil, err
	}
	p.Transform.Scale = dims
	return p, nil
}

// ApplyModifier validates mod and appends it to the part's stack. It is
// evaluated when the part is baked. Baked parts reject new modifiers.
func ApplyModifier(p *scene.Part, mod kernel.Modifier) error {
	if mod == nil {
		return fault.WithPart(fault.BadParam("apply modifier", "nil modifier"), p.Name)
	}
	if err := mod.Validate(); err != nil {
		return fault.WithPart(err, p.Name)
	}
	if p.Baked {
		return &fault.GeometryError{
			Part:   p.Name,
			Op:     "apply " + mod.ModifierKind().String(),
			Reason: "part is already baked",
			Err:    fault.ErrUnsupported,
		}
	}
	p.Modifiers = append(p.Modifiers, mod)
	return nil
}
