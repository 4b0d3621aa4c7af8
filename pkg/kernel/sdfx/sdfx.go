// Package sdfx implements the kernel.Kernel interface using the
// github.com/deadsy/sdfx SDF-based CAD library.
//
// Shapes become signed distance fields and are meshed with marching
// cubes, so output is an approximation of the exact native meshes:
// bevels become SDF rounding and subdivision raises the sampling
// resolution instead of refining topology.
package sdfx

import (
	"math"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v2 "github.com/deadsy/sdfx/vec/v2"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/gemforge/pkg/fault"
	"github.com/chazu/gemforge/pkg/geom"
	"github.com/chazu/gemforge/pkg/kernel"
)

// Compile-time interface check.
var _ kernel.Kernel = (*SdfxKernel)(nil)

// DefaultMeshCells controls marching cubes tessellation resolution
// along the longest bounding box axis.
const DefaultMeshCells = 64

// maxMeshCells caps resolution after subdivision doubling.
const maxMeshCells = 1024

// SdfxKernel implements kernel.Kernel using sdfx.
type SdfxKernel struct {
	cells int
}

// New returns a new SdfxKernel sampling with cells marching cubes cells;
// zero selects DefaultMeshCells.
func New(cells int) *SdfxKernel {
	if cells <= 0 {
		cells = DefaultMeshCells
	}
	return &SdfxKernel{cells: cells}
}

// Name implements kernel.Kernel.
func (k *SdfxKernel) Name() string { return "sdfx" }

// Cells returns the base marching cubes resolution.
func (k *SdfxKernel) Cells() int { return k.cells }

// Realize implements kernel.Kernel.
func (k *SdfxKernel) Realize(shape kernel.Shape, rot geom.Euler, scale geom.Vec3, mods []kernel.Modifier) (*kernel.Mesh, error) {
	if err := kernel.ValidateInputs(shape, scale, mods); err != nil {
		return nil, err
	}

	round, cells := 0.0, k.cells
	for _, m := range mods {
		switch m := m.(type) {
		case kernel.Bevel:
			round = math.Max(round, m.Width)
		case kernel.Subdivision:
			for i := 0; i < m.Levels && cells < maxMeshCells; i++ {
				cells *= 2
			}
		}
	}

	s, err := field(shape, scale, round)
	if err != nil {
		return nil, err
	}

	// Box scale is already in the field; others scale here.
	_, isBox := shape.(kernel.Box)
	scaled := !isBox && scale != geom.One
	if scaled || !rot.IsZero() {
		m := sdf.RotateZ(rot.Z).Mul(sdf.RotateY(rot.Y)).Mul(sdf.RotateX(rot.X))
		if scaled {
			m = m.Mul(sdf.Scale3d(v3.Vec{X: scale[0], Y: scale[1], Z: scale[2]}))
		}
		s = sdf.Transform3D(s, m)
	}
	return toMesh(s, cells), nil
}

// field builds the distance field of shape. round is the largest bevel
// width; it rounds boxes and cylinders and is ignored by the smooth
// shapes, which have no edges.
func field(shape kernel.Shape, scale geom.Vec3, round float64) (sdf.SDF3, error) {
	switch s := shape.(type) {
	case kernel.Box:
		size := v3.Vec{X: math.Abs(scale[0]), Y: math.Abs(scale[1]), Z: math.Abs(scale[2])}
		if smallest := math.Min(size.X, math.Min(size.Y, size.Z)) / 2; round >= smallest {
			return nil, fault.BadParam("bevel", "width %g must be smaller than the smallest half-extent %g", round, smallest)
		}
		return wrap("build box", func() (sdf.SDF3, error) { return sdf.Box3D(size, round) })
	case kernel.Icosphere:
		return wrap("build icosphere", func() (sdf.SDF3, error) { return sdf.Sphere3D(s.Radius) })
	case kernel.Torus:
		return wrap("build torus", func() (sdf.SDF3, error) {
			c, err := sdf.Circle2D(s.MinorRadius)
			if err != nil {
				return nil, err
			}
			return sdf.Revolve3D(sdf.Transform2D(c, sdf.Translate2d(v2.Vec{X: s.MajorRadius, Y: 0})))
		})
	case kernel.Cylinder:
		if round >= math.Min(s.Radius, s.Depth/2) {
			return nil, fault.BadParam("bevel", "width %g too large for cylinder r=%g depth=%g", round, s.Radius, s.Depth)
		}
		return wrap("build cylinder", func() (sdf.SDF3, error) { return sdf.Cylinder3D(s.Depth, s.Radius, round) })
	}
	return nil, &fault.GeometryError{Op: "realize", Reason: "unknown shape", Err: fault.ErrUnsupported}
}

func wrap(op string, f func() (sdf.SDF3, error)) (sdf.SDF3, error) {
	s, err := f()
	if err != nil {
		return nil, &fault.GeometryError{Op: op, Reason: err.Error(), Err: fault.ErrInvalidParameter}
	}
	return s, nil
}

// toMesh converts a solid to a triangle mesh using marching cubes.
func toMesh(s sdf.SDF3, cells int) *kernel.Mesh {
	renderer := render.NewMarchingCubesUniform(cells)
	triangles := render.ToTriangles(s, renderer)

	numTri := len(triangles)
	numVerts := numTri * 3

	vertices := make([]float32, 0, numVerts*3)
	normals := make([]float32, 0, numVerts*3)
	indices := make([]uint32, 0, numVerts)

	for i, tri := range triangles {
		// Compute face normal.
		n := tri.Normal()
		nx := float32(n.X)
		ny := float32(n.Y)
		nz := float32(n.Z)

		for j := 0; j < 3; j++ {
			v := tri[j]
			vertices = append(vertices, float32(v.X), float32(v.Y), float32(v.Z))
			normals = append(normals, nx, ny, nz)
			indices = append(indices, uint32(i*3+j))
		}
	}

	return &kernel.Mesh{
		Vertices: vertices,
		Normals:  normals,
		Indices:  indices,
	}
}
