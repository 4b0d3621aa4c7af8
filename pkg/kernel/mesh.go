package kernel

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/gemforge/pkg/geom"
)

// Mesh is a triangle mesh suitable for rendering and export.
// All arrays are flat: vertices has 3 floats per vertex (x,y,z),
// normals has 3 floats per vertex, indices has 3 uint32s per triangle.
type Mesh struct {
	Vertices []float32 `json:"vertices"` // [x0,y0,z0, x1,y1,z1, ...]
	Normals  []float32 `json:"normals"`  // [nx0,ny0,nz0, ...]
	Indices  []uint32  `json:"indices"`  // [i0,i1,i2, ...] triangles
	PartName string    `json:"partName"` // which scene part this came from
}

// VertexCount returns the number of vertices.
func (m *Mesh) VertexCount() int {
	return len(m.Vertices) / 3
}

// TriangleCount returns the number of triangles.
func (m *Mesh) TriangleCount() int {
	return len(m.Indices) / 3
}

// IsEmpty returns true if the mesh has no geometry.
func (m *Mesh) IsEmpty() bool {
	return len(m.Vertices) == 0
}

// Vertex returns vertex i widened to float64.
func (m *Mesh) Vertex(i int) geom.Vec3 {
	return geom.Vec3{float64(m.Vertices[3*i]), float64(m.Vertices[3*i+1]), float64(m.Vertices[3*i+2])}
}

// Normal returns the normal of vertex i widened to float64.
func (m *Mesh) Normal(i int) geom.Vec3 {
	return geom.Vec3{float64(m.Normals[3*i]), float64(m.Normals[3*i+1]), float64(m.Normals[3*i+2])}
}

// Bounds returns the axis-aligned bounding box. Both corners are zero
// for an empty mesh.
func (m *Mesh) Bounds() (lo, hi geom.Vec3) {
	n := m.VertexCount()
	if n == 0 {
		return lo, hi
	}
	lo, hi = m.Vertex(0), m.Vertex(0)
	for i := 1; i < n; i++ {
		v := m.Vertex(i)
		for a := 0; a < 3; a++ {
			lo[a] = math.Min(lo[a], v[a])
			hi[a] = math.Max(hi[a], v[a])
		}
	}
	return lo, hi
}

// Clone returns a deep copy.
func (m *Mesh) Clone() *Mesh {
	return &Mesh{
		Vertices: append([]float32(nil), m.Vertices...),
		Normals:  append([]float32(nil), m.Normals...),
		Indices:  append([]uint32(nil), m.Indices...),
		PartName: m.PartName,
	}
}

// Transformed returns a copy with every vertex mapped to basis*v+offset
// and normals carried through the inverse transpose of basis. A basis
// with a negative determinant flips triangle winding so faces stay
// outward.
func (m *Mesh) Transformed(basis mgl64.Mat3, offset geom.Vec3) (*Mesh, error) {
	nm, ok := geom.NormalMatrix(basis)
	if !ok {
		return nil, fmt.Errorf("transform mesh %q: singular basis", m.PartName)
	}
	out := m.Clone()
	for i := 0; i < m.VertexCount(); i++ {
		putVec(out.Vertices, i, basis.Mul3x1(m.Vertex(i)).Add(offset))
		if len(m.Normals) == len(m.Vertices) {
			putVec(out.Normals, i, safeNormalize(nm.Mul3x1(m.Normal(i))))
		}
	}
	if basis.Det() < 0 {
		for t := 0; t+2 < len(out.Indices); t += 3 {
			out.Indices[t+1], out.Indices[t+2] = out.Indices[t+2], out.Indices[t+1]
		}
	}
	return out, nil
}

// Translated returns a copy moved by offset.
func (m *Mesh) Translated(offset geom.Vec3) *Mesh {
	out := m.Clone()
	for i := 0; i < m.VertexCount(); i++ {
		putVec(out.Vertices, i, m.Vertex(i).Add(offset))
	}
	return out
}

// Validate checks that the arrays are consistent: whole triangles,
// matching normal count, indices in range, finite coordinates.
func (m *Mesh) Validate() error {
	if len(m.Vertices)%3 != 0 {
		return fmt.Errorf("mesh %q: vertex array length %d is not a multiple of 3", m.PartName, len(m.Vertices))
	}
	if len(m.Normals) != len(m.Vertices) {
		return fmt.Errorf("mesh %q: %d normal floats for %d vertex floats", m.PartName, len(m.Normals), len(m.Vertices))
	}
	if len(m.Indices)%3 != 0 {
		return fmt.Errorf("mesh %q: index array length %d is not a multiple of 3", m.PartName, len(m.Indices))
	}
	n := uint32(m.VertexCount())
	for i, idx := range m.Indices {
		if idx >= n {
			return fmt.Errorf("mesh %q: index %d at %d out of range (%d vertices)", m.PartName, idx, i, n)
		}
	}
	for i, f := range m.Vertices {
		if math.IsNaN(float64(f)) || math.IsInf(float64(f), 0) {
			return fmt.Errorf("mesh %q: non-finite coordinate at %d", m.PartName, i)
		}
	}
	return nil
}

// AddPolygon appends a planar convex polygon as a triangle fan with one
// shared face normal. Polygons whose area vanishes are skipped.
func (m *Mesh) AddPolygon(pts []geom.Vec3) {
	if len(pts) < 3 {
		return
	}
	n := NewellNormal(pts)
	if n.Len() == 0 {
		return
	}
	base := uint32(m.VertexCount())
	for _, p := range pts {
		m.Vertices = append(m.Vertices, float32(p[0]), float32(p[1]), float32(p[2]))
		m.Normals = append(m.Normals, float32(n[0]), float32(n[1]), float32(n[2]))
	}
	for i := 1; i+1 < len(pts); i++ {
		m.Indices = append(m.Indices, base, base+uint32(i), base+uint32(i+1))
	}
}

// NewellNormal returns the unit normal of a polygon by Newell's method,
// or the zero vector for a degenerate polygon.
func NewellNormal(pts []geom.Vec3) geom.Vec3 {
	var n geom.Vec3
	for i, cur := range pts {
		next := pts[(i+1)%len(pts)]
		n[0] += (cur[1] - next[1]) * (cur[2] + next[2])
		n[1] += (cur[2] - next[2]) * (cur[0] + next[0])
		n[2] += (cur[0] - next[0]) * (cur[1] + next[1])
	}
	return safeNormalize(n)
}

func safeNormalize(v geom.Vec3) geom.Vec3 {
	l := v.Len()
	if l < 1e-300 {
		return geom.Vec3{}
	}
	return v.Mul(1 / l)
}

func putVec(dst []float32, i int, v geom.Vec3) {
	dst[3*i] = float32(v[0])
	dst[3*i+1] = float32(v[1])
	dst[3*i+2] = float32(v[2])
}
