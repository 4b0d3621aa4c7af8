// Package kernel defines the abstract geometry kernel interface.
// Implementations (native, sdfx) realize a primitive shape, its local
// rotation and scale, and an ordered modifier stack into a triangle mesh.
// The kernel abstraction allows swapping backends without changing the
// rest of the system.
package kernel

import (
	"github.com/chazu/gemforge/pkg/geom"
)

// Kernel is the abstract geometry kernel interface.
type Kernel interface {
	// Name identifies the backend in logs and reports.
	Name() string

	// Realize produces the mesh of shape after applying rot and scale
	// and then each modifier in order. Rotation and scale are flattened
	// into the geometry before modifiers run, so a bevel width is
	// measured in the scaled frame. The result is in the part's local
	// frame, centred where the shape is centred.
	//
	// Errors are *fault.GeometryError wrapping fault.ErrInvalidParameter
	// or fault.ErrUnsupported.
	Realize(shape Shape, rot geom.Euler, scale geom.Vec3, mods []Modifier) (*Mesh, error)
}

// ValidateInputs runs the checks every backend shares: shape and
// modifier parameters, and a non-degenerate scale.
func ValidateInputs(shape Shape, scale geom.Vec3, mods []Modifier) error {
	if shape == nil {
		return badParam("realize", "no shape")
	}
	if err := shape.Validate(); err != nil {
		return err
	}
	for i := 0; i < 3; i++ {
		if scale[i] == 0 {
			return badParam("realize", "scale %v has a zero component", scale)
		}
	}
	for _, m := range mods {
		if m == nil {
			return badParam("realize", "nil modifier")
		}
		if err := m.Validate(); err != nil {
			return err
		}
	}
	return nil
}
