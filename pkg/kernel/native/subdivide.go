package native

import (
	"github.com/go-gl/mathgl/mgl64"
)

// catmullClark performs one Catmull-Clark step. Every n-gon becomes n
// quads. Boundary edges use their midpoint and boundary vertices stay
// put; the primitives here are closed, so that rule only matters for
// hand-built meshes.
func catmullClark(p *polyMesh) *polyMesh {
	nv := len(p.verts)

	facePt := make([]mgl64.Vec3, len(p.faces))
	for fi, f := range p.faces {
		var c mgl64.Vec3
		for _, vi := range f {
			c = c.Add(p.verts[vi])
		}
		facePt[fi] = c.Mul(1 / float64(len(f)))
	}

	order, edges := p.edgeFaces()
	out := &polyMesh{verts: make([]mgl64.Vec3, nv, nv+len(edges)+len(p.faces))}

	edgePt := make(map[edgeKey]int, len(edges))
	for _, k := range order {
		fs := edges[k]
		pt := p.verts[k.a].Add(p.verts[k.b]).Mul(0.5)
		if len(fs) == 2 {
			pt = p.verts[k.a].Add(p.verts[k.b]).Add(facePt[fs[0]]).Add(facePt[fs[1]]).Mul(0.25)
		}
		out.verts = append(out.verts, pt)
		edgePt[k] = len(out.verts) - 1
	}

	faceIdx := make([]int, len(p.faces))
	for fi := range p.faces {
		out.verts = append(out.verts, facePt[fi])
		faceIdx[fi] = len(out.verts) - 1
	}

	// Per-vertex sums of adjacent face points and edge midpoints.
	fSum := make([]mgl64.Vec3, nv)
	fCount := make([]int, nv)
	for fi, f := range p.faces {
		for _, vi := range f {
			fSum[vi] = fSum[vi].Add(facePt[fi])
			fCount[vi]++
		}
	}
	rSum := make([]mgl64.Vec3, nv)
	rCount := make([]int, nv)
	boundary := make([]bool, nv)
	for _, k := range order {
		fs := edges[k]
		mid := p.verts[k.a].Add(p.verts[k.b]).Mul(0.5)
		for _, vi := range []int{k.a, k.b} {
			rSum[vi] = rSum[vi].Add(mid)
			rCount[vi]++
			if len(fs) != 2 {
				boundary[vi] = true
			}
		}
	}
	for vi, v := range p.verts {
		n := float64(fCount[vi])
		if boundary[vi] || fCount[vi] == 0 {
			out.verts[vi] = v
			continue
		}
		f := fSum[vi].Mul(1 / n)
		r := rSum[vi].Mul(1 / float64(rCount[vi]))
		out.verts[vi] = f.Add(r.Mul(2)).Add(v.Mul(n - 3)).Mul(1 / n)
	}

	out.faces = make([][]int, 0, 4*len(p.faces))
	for fi, f := range p.faces {
		n := len(f)
		for i, vi := range f {
			next := f[(i+1)%n]
			prev := f[(i+n-1)%n]
			out.faces = append(out.faces, []int{
				vi,
				edgePt[keyOf(vi, next)],
				faceIdx[fi],
				edgePt[keyOf(prev, vi)],
			})
		}
	}
	return out
}
