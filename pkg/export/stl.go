package export

import (
	"os"

	"github.com/deadsy/sdfx/render"
	"github.com/deadsy/sdfx/sdf"
	v3 "github.com/deadsy/sdfx/vec/v3"

	"github.com/chazu/gemforge/pkg/tessellate"
)

// STL encodes a selection as one binary STL soup in the product frame.
// STL has no materials or hierarchy; both are dropped.
type STL struct{}

// Format implements Encoder.
func (STL) Format() string { return "stl" }

// Encode implements Encoder. render.SaveSTL only writes to a path, so
// the triangles go to the pending file by name.
func (STL) Encode(f *os.File, sel Selection, _ Options) error {
	var tris []*sdf.Triangle3
	for _, p := range sel.Parts {
		m, err := tessellate.WorldMesh(p)
		if err != nil {
			return err
		}
		for t := 0; t < m.TriangleCount(); t++ {
			var tri sdf.Triangle3
			for j := 0; j < 3; j++ {
				v := m.Vertex(int(m.Indices[3*t+j]))
				tri[j] = v3.Vec{X: v[0], Y: v[1], Z: v[2]}
			}
			tris = append(tris, &tri)
		}
	}
	return render.SaveSTL(f.Name(), tris)
}
