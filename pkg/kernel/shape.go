package kernel

import (
	"fmt"

	"github.com/chazu/gemforge/pkg/fault"
)

// ShapeKind enumerates the primitive shapes a kernel can realize.
type ShapeKind int

const (
	KindBox ShapeKind = iota
	KindIcosphere
	KindTorus
	KindCylinder
)

func (k ShapeKind) String() string {
	switch k {
	case KindBox:
		return "box"
	case KindIcosphere:
		return "icosphere"
	case KindTorus:
		return "torus"
	case KindCylinder:
		return "cylinder"
	default:
		return fmt.Sprintf("ShapeKind(%d)", int(k))
	}
}

// Shape is a primitive in its canonical local frame. Concrete types:
// Box, Icosphere, Torus, Cylinder.
type Shape interface {
	Kind() ShapeKind
	Validate() error
	shape() // marker method, restricts implementations to this package
}

// Box is a unit cube centred on the origin. A Part sizes it through its
// scale, so scale (w, t, h) yields a w by t by h block.
type Box struct{}

// Icosphere is a geodesic sphere centred on the origin. Subdivisions 1
// is the plain icosahedron; each further level splits every triangle
// into four.
type Icosphere struct {
	Subdivisions int
	Radius       float64
}

// Torus lies in the XY plane, its axis along Z.
type Torus struct {
	MajorRadius   float64
	MinorRadius   float64
	MajorSegments int
	MinorSegments int
}

// Cylinder is centred on the origin with its axis along Z.
type Cylinder struct {
	Radius   float64
	Depth    float64
	Vertices int
}

// Default segment counts.
const (
	DefaultTorusMajorSegments = 48
	DefaultTorusMinorSegments = 12
	DefaultCylinderVertices   = 32
	MaxIcosphereSubdivisions  = 8
)

func (Box) Kind() ShapeKind       { return KindBox }
func (Icosphere) Kind() ShapeKind { return KindIcosphere }
func (Torus) Kind() ShapeKind     { return KindTorus }
func (Cylinder) Kind() ShapeKind  { return KindCylinder }

func (Box) shape()       {}
func (Icosphere) shape() {}
func (Torus) shape()     {}
func (Cylinder) shape()  {}

func (Box) Validate() error { return nil }

func (s Icosphere) Validate() error {
	if s.Subdivisions < 1 || s.Subdivisions > MaxIcosphereSubdivisions {
		return badParam("build icosphere", "subdivisions %d outside [1, %d]", s.Subdivisions, MaxIcosphereSubdivisions)
	}
	if !(s.Radius > 0) {
		return badParam("build icosphere", "radius %g must be positive", s.Radius)
	}
	return nil
}

func (s Torus) Validate() error {
	switch {
	case !(s.MajorRadius > 0):
		return badParam("build torus", "major radius %g must be positive", s.MajorRadius)
	case !(s.MinorRadius > 0):
		return badParam("build torus", "minor radius %g must be positive", s.MinorRadius)
	case s.MinorRadius >= s.MajorRadius:
		return badParam("build torus", "minor radius %g must be smaller than major radius %g", s.MinorRadius, s.MajorRadius)
	case s.MajorSegments < 3 || s.MinorSegments < 3:
		return badParam("build torus", "segments %dx%d, need at least 3x3", s.MajorSegments, s.MinorSegments)
	}
	return nil
}

func (s Cylinder) Validate() error {
	switch {
	case !(s.Radius > 0):
		return badParam("build cylinder", "radius %g must be positive", s.Radius)
	case !(s.Depth > 0):
		return badParam("build cylinder", "depth %g must be positive", s.Depth)
	case s.Vertices < 3:
		return badParam("build cylinder", "%d vertices, need at least 3", s.Vertices)
	}
	return nil
}

func badParam(op, format string, args ...any) error {
	return fault.BadParam(op, format, args...)
}
