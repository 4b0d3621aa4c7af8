package native

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"

	"github.com/chazu/gemforge/pkg/fault"
	"github.com/chazu/gemforge/pkg/kernel"
)

// bevel applies b to p. A cuboid is rebuilt as a rounded box; any other
// mesh is left alone when none of its edges is sharp enough to qualify,
// and rejected otherwise.
func bevel(p *polyMesh, b kernel.Bevel) (*polyMesh, error) {
	if p.cuboid != nil {
		// Box edges are right angles.
		if b.AngleLimit >= math.Pi/2 {
			return p, nil
		}
		return roundedBox(p.cuboid.half, b.Width, b.Segments)
	}
	if b.AngleLimit > 0 && p.maxDihedral() <= b.AngleLimit {
		return p, nil
	}
	return nil, &fault.GeometryError{
		Op:     "bevel",
		Reason: "only box topology can be beveled by this kernel",
		Err:    fault.ErrUnsupported,
	}
}

// roundedBox builds a box with half-extents h whose edges and corners
// are rounded with radius w, using segs arc steps per quarter circle.
//
// The surface is swept as latitude rows from the bottom pole to the top
// pole. Each row walks four quadrants of segs+1 samples around the
// vertical axis, each quadrant arcing about its own corner centre, so
// the gaps between quadrants become the flat side faces. The pole rows
// collapse to one point per quadrant and are closed by triangle fans
// and a flat quad cap.
func roundedBox(h mgl64.Vec3, w float64, segs int) (*polyMesh, error) {
	if smallest := math.Min(h[0], math.Min(h[1], h[2])); w >= smallest {
		return nil, fault.BadParam("bevel", "width %g must be smaller than the smallest half-extent %g", w, smallest)
	}
	inner := mgl64.Vec3{h[0] - w, h[1] - w, h[2] - w}
	quadrant := [4][2]float64{{1, 1}, {-1, 1}, {-1, -1}, {1, -1}}
	per := segs + 1
	ring := 4 * per

	p := &polyMesh{}
	row := func(elev, cz float64) []int {
		idx := make([]int, 0, ring)
		for q, sign := range quadrant {
			for j := 0; j <= segs; j++ {
				az := (float64(q) + float64(j)/float64(segs)) * math.Pi / 2
				p.verts = append(p.verts, mgl64.Vec3{
					sign[0]*inner[0] + w*math.Cos(elev)*math.Cos(az),
					sign[1]*inner[1] + w*math.Cos(elev)*math.Sin(az),
					cz + w*math.Sin(elev),
				})
				idx = append(idx, len(p.verts)-1)
			}
		}
		return idx
	}
	pole := func(z float64) []int {
		idx := make([]int, 4)
		for q, sign := range quadrant {
			p.verts = append(p.verts, mgl64.Vec3{sign[0] * inner[0], sign[1] * inner[1], z})
			idx[q] = len(p.verts) - 1
		}
		return idx
	}

	bottom := pole(-h[2])
	var rows [][]int
	for k := segs - 1; k >= 0; k-- {
		rows = append(rows, row(-float64(k)*math.Pi/2/float64(segs), -inner[2]))
	}
	for k := 0; k < segs; k++ {
		rows = append(rows, row(float64(k)*math.Pi/2/float64(segs), inner[2]))
	}
	top := pole(h[2])

	// bottom cap, viewed from below
	p.faces = append(p.faces, []int{bottom[0], bottom[3], bottom[2], bottom[1]})
	fan(p, bottom, rows[0], per, false)
	for r := 0; r+1 < len(rows); r++ {
		a, b := rows[r], rows[r+1]
		for i := 0; i < ring; i++ {
			j := (i + 1) % ring
			p.faces = append(p.faces, []int{a[i], a[j], b[j], b[i]})
		}
	}
	fan(p, top, rows[len(rows)-1], per, true)
	p.faces = append(p.faces, []int{top[0], top[1], top[2], top[3]})
	return p, nil
}

// fan joins a full row to a collapsed pole row. up is true when the
// pole lies above the row.
func fan(p *polyMesh, pole, row []int, per int, up bool) {
	ring := len(row)
	for q := 0; q < 4; q++ {
		for j := 0; j+1 < per; j++ {
			i := q*per + j
			if up {
				p.faces = append(p.faces, []int{row[i], row[i+1], pole[q]})
			} else {
				p.faces = append(p.faces, []int{pole[q], row[i+1], row[i]})
			}
		}
		last := q*per + per - 1
		next := (last + 1) % ring
		nq := (q + 1) % 4
		if up {
			p.faces = append(p.faces, []int{row[last], row[next], pole[nq], pole[q]})
		} else {
			p.faces = append(p.faces, []int{pole[q], pole[nq], row[next], row[last]})
		}
	}
}
