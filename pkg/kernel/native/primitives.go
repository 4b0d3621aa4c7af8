package native

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/gemforge/pkg/kernel"
)

func build(shape kernel.Shape) *polyMesh {
	switch s := shape.(type) {
	case kernel.Box:
		return box()
	case kernel.Icosphere:
		return icosphere(s.Subdivisions, s.Radius)
	case kernel.Torus:
		return torus(s)
	case kernel.Cylinder:
		return cylinder(s)
	}
	panic("native: unhandled shape kind")
}

// box returns the unit cube centred on the origin.
func box() *polyMesh {
	verts := make([]mgl64.Vec3, 8)
	for i := range verts {
		// bit 2 = x, bit 1 = y, bit 0 = z
		verts[i] = mgl64.Vec3{
			float64(i>>2&1) - 0.5,
			float64(i>>1&1) - 0.5,
			float64(i&1) - 0.5,
		}
	}
	faces := [][]int{
		{0, 1, 3, 2}, // -x
		{4, 6, 7, 5}, // +x
		{0, 4, 5, 1}, // -y
		{2, 3, 7, 6}, // +y
		{0, 2, 6, 4}, // -z
		{1, 5, 7, 3}, // +z
	}
	return &polyMesh{verts: verts, faces: faces, cuboid: &cuboid{half: mgl64.Vec3{0.5, 0.5, 0.5}}}
}

// icosphere starts from the icosahedron and splits each triangle into
// four per extra subdivision level, projecting new vertices onto the
// sphere.
func icosphere(subdivisions int, radius float64) *polyMesh {
	phi := (1 + math.Sqrt(5)) / 2
	raw := []mgl64.Vec3{
		{-1, phi, 0}, {1, phi, 0}, {-1, -phi, 0}, {1, -phi, 0},
		{0, -1, phi}, {0, 1, phi}, {0, -1, -phi}, {0, 1, -phi},
		{phi, 0, -1}, {phi, 0, 1}, {-phi, 0, -1}, {-phi, 0, 1},
	}
	p := &polyMesh{}
	for _, v := range raw {
		p.verts = append(p.verts, v.Normalize())
	}
	p.faces = [][]int{
		{0, 11, 5}, {0, 5, 1}, {0, 1, 7}, {0, 7, 10}, {0, 10, 11},
		{1, 5, 9}, {5, 11, 4}, {11, 10, 2}, {10, 7, 6}, {7, 1, 8},
		{3, 9, 4}, {3, 4, 2}, {3, 2, 6}, {3, 6, 8}, {3, 8, 9},
		{4, 9, 5}, {2, 4, 11}, {6, 2, 10}, {8, 6, 7}, {9, 8, 1},
	}

	for level := 1; level < subdivisions; level++ {
		mid := make(map[edgeKey]int)
		midpoint := func(a, b int) int {
			k := keyOf(a, b)
			if i, ok := mid[k]; ok {
				return i
			}
			p.verts = append(p.verts, p.verts[a].Add(p.verts[b]).Normalize())
			mid[k] = len(p.verts) - 1
			return mid[k]
		}
		next := make([][]int, 0, 4*len(p.faces))
		for _, f := range p.faces {
			ab := midpoint(f[0], f[1])
			bc := midpoint(f[1], f[2])
			ca := midpoint(f[2], f[0])
			next = append(next,
				[]int{f[0], ab, ca},
				[]int{f[1], bc, ab},
				[]int{f[2], ca, bc},
				[]int{ab, bc, ca},
			)
		}
		p.faces = next
	}

	for i, v := range p.verts {
		p.verts[i] = v.Mul(radius)
	}
	return p
}

func torus(s kernel.Torus) *polyMesh {
	n, m := s.MajorSegments, s.MinorSegments
	p := &polyMesh{verts: make([]mgl64.Vec3, 0, n*m)}
	for i := 0; i < n; i++ {
		u := 2 * math.Pi * float64(i) / float64(n)
		for j := 0; j < m; j++ {
			v := 2 * math.Pi * float64(j) / float64(m)
			r := s.MajorRadius + s.MinorRadius*math.Cos(v)
			p.verts = append(p.verts, mgl64.Vec3{r * math.Cos(u), r * math.Sin(u), s.MinorRadius * math.Sin(v)})
		}
	}
	at := func(i, j int) int { return (i%n)*m + j%m }
	for i := 0; i < n; i++ {
		for j := 0; j < m; j++ {
			p.faces = append(p.faces, []int{at(i, j), at(i+1, j), at(i+1, j+1), at(i, j+1)})
		}
	}
	return p
}

// cylinder has n-gon caps, matching an n-gon cap fill.
func cylinder(s kernel.Cylinder) *polyMesh {
	n := s.Vertices
	h := s.Depth / 2
	p := &polyMesh{verts: make([]mgl64.Vec3, 0, 2*n)}
	for _, z := range []float64{-h, h} {
		for i := 0; i < n; i++ {
			a := 2 * math.Pi * float64(i) / float64(n)
			p.verts = append(p.verts, mgl64.Vec3{s.Radius * math.Cos(a), s.Radius * math.Sin(a), z})
		}
	}
	top := make([]int, n)
	bottom := make([]int, n)
	for i := 0; i < n; i++ {
		j := (i + 1) % n
		p.faces = append(p.faces, []int{i, j, n + j, n + i})
		top[i] = n + i
		bottom[i] = n - 1 - i
	}
	p.faces = append(p.faces, top, bottom)
	return p
}
