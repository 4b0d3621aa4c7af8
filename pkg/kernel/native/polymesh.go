package native

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/gemforge/pkg/kernel"
)

// polyMesh is an indexed polygon mesh with outward (counter-clockwise)
// face winding.
type polyMesh struct {
	verts []mgl64.Vec3
	faces [][]int

	// cuboid is set while the mesh is still an axis-aligned box, which
	// is the one topology the bevel can rebuild analytically.
	cuboid *cuboid
}

// cuboid records the half-extents of a box in its scaled local frame.
type cuboid struct {
	half mgl64.Vec3
}

func (p *polyMesh) scale(s mgl64.Vec3) {
	for i, v := range p.verts {
		p.verts[i] = mgl64.Vec3{v[0] * s[0], v[1] * s[1], v[2] * s[2]}
	}
	if s[0]*s[1]*s[2] < 0 {
		p.flip()
	}
	if p.cuboid != nil {
		h := p.cuboid.half
		p.cuboid = &cuboid{half: mgl64.Vec3{h[0] * math.Abs(s[0]), h[1] * math.Abs(s[1]), h[2] * math.Abs(s[2])}}
	}
}

func (p *polyMesh) rotate(m mgl64.Mat3) {
	for i, v := range p.verts {
		p.verts[i] = m.Mul3x1(v)
	}
}

func (p *polyMesh) flip() {
	for _, f := range p.faces {
		for i, j := 0, len(f)-1; i < j; i, j = i+1, j-1 {
			f[i], f[j] = f[j], f[i]
		}
	}
}

func (p *polyMesh) facePoints(f []int) []mgl64.Vec3 {
	pts := make([]mgl64.Vec3, len(f))
	for i, vi := range f {
		pts[i] = p.verts[vi]
	}
	return pts
}

// toMesh emits one flat-shaded fan per face.
func (p *polyMesh) toMesh() *kernel.Mesh {
	m := &kernel.Mesh{}
	for _, f := range p.faces {
		m.AddPolygon(p.facePoints(f))
	}
	return m
}

type edgeKey struct{ a, b int }

func keyOf(a, b int) edgeKey {
	if a > b {
		a, b = b, a
	}
	return edgeKey{a, b}
}

// edgeFaces maps every undirected edge to the faces that use it. order
// lists the edges as first met walking the faces, so callers iterate
// deterministically.
func (p *polyMesh) edgeFaces() (order []edgeKey, edges map[edgeKey][]int) {
	edges = make(map[edgeKey][]int)
	for fi, f := range p.faces {
		for i := range f {
			k := keyOf(f[i], f[(i+1)%len(f)])
			if _, seen := edges[k]; !seen {
				order = append(order, k)
			}
			edges[k] = append(edges[k], fi)
		}
	}
	return order, edges
}

// maxDihedral returns the largest angle between the normals of two
// faces sharing an edge: 0 for coplanar faces, pi/2 for a box edge.
func (p *polyMesh) maxDihedral() float64 {
	normals := make([]mgl64.Vec3, len(p.faces))
	for i, f := range p.faces {
		normals[i] = kernel.NewellNormal(p.facePoints(f))
	}
	var sharpest float64
	_, edges := p.edgeFaces()
	for _, fs := range edges {
		if len(fs) != 2 {
			continue
		}
		d := mgl64.Clamp(normals[fs[0]].Dot(normals[fs[1]]), -1, 1)
		if a := math.Acos(d); a > sharpest {
			sharpest = a
		}
	}
	return sharpest
}
