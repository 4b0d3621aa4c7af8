// Package scene holds the parts of one generated product and the
// parent/child hierarchy between them. A Graph is built, finalized, and
// then baked part by part; after Finalize the hierarchy is frozen.
package scene

import (
	"fmt"

	"github.com/chazu/gemforge/pkg/geom"
	"github.com/chazu/gemforge/pkg/kernel"
	"github.com/chazu/gemforge/pkg/material"
)

// Role classifies a part's function in the product.
type Role int

const (
	RoleCosmetic   Role = iota // decorative, free-standing (cluster stones)
	RoleAnchor                 // the reference every placement is computed from
	RoleStructural             // carries or attaches the anchor (plate, post, band)
)

func (r Role) String() string {
	switch r {
	case RoleCosmetic:
		return "cosmetic"
	case RoleAnchor:
		return "anchor"
	case RoleStructural:
		return "structural"
	default:
		return fmt.Sprintf("Role(%d)", int(r))
	}
}

// Part is one mesh instance.
//
// Transform.Position is expressed in the product frame, the same for
// children and roots; the hierarchy records attachment, not nesting of
// coordinates. Pivot offsets the geometry from the origin after rotation
// and scale, so a part can sit on its anchor point rather than its
// centre.
type Part struct {
	Name      string
	Shape     kernel.Shape
	Transform geom.Transform
	Pivot     geom.Vec3
	Modifiers []kernel.Modifier
	Material  *material.Material
	Role      Role

	// Set by bake. Mesh is in the part's local frame: pivot, rotation
	// and scale applied, position not.
	Mesh  *kernel.Mesh
	Baked bool
}

// WorldVertex returns vertex i of the baked mesh in the product frame.
func (p *Part) WorldVertex(i int) geom.Vec3 {
	return p.Mesh.Vertex(i).Add(p.Transform.Position)
}

// Bounds returns the baked mesh's bounding box in the product frame.
// ok is false for an unbaked or empty part.
func (p *Part) Bounds() (lo, hi geom.Vec3, ok bool) {
	if !p.Baked || p.Mesh == nil || p.Mesh.IsEmpty() {
		return lo, hi, false
	}
	lo, hi = p.Mesh.Bounds()
	return lo.Add(p.Transform.Position), hi.Add(p.Transform.Position), true
}

func (p *Part) String() string {
	kind := "none"
	if p.Shape != nil {
		kind = p.Shape.Kind().String()
	}
	return fmt.Sprintf("%s (%s, %s)", p.Name, kind, p.Role)
}
