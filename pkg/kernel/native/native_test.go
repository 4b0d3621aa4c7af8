package native

import (
	"errors"
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/chazu/gemforge/pkg/fault"
	"github.com/chazu/gemforge/pkg/geom"
	"github.com/chazu/gemforge/pkg/kernel"
)

// ---------------------------------------------------------------------------
// Helpers
// ---------------------------------------------------------------------------

// checkClosed asserts every directed edge is used once and its reverse
// once, i.e. the surface is closed and consistently wound.
func checkClosed(t require.TestingT, p *polyMesh) {
	directed := make(map[[2]int]int)
	for _, f := range p.faces {
		for i := range f {
			directed[[2]int{f[i], f[(i+1)%len(f)]}]++
		}
	}
	for e, n := range directed {
		require.Equal(t, 1, n, "directed edge %v used %d times", e, n)
		require.Equal(t, 1, directed[[2]int{e[1], e[0]}], "edge %v has no opposite", e)
	}
}

// checkOutward asserts every face of a convex mesh around the origin
// faces away from it.
func checkOutward(t require.TestingT, p *polyMesh) {
	for fi, f := range p.faces {
		pts := p.facePoints(f)
		var c mgl64.Vec3
		for _, v := range pts {
			c = c.Add(v)
		}
		n := kernel.NewellNormal(pts)
		require.Greater(t, n.Dot(c), 0.0, "face %d points inward", fi)
	}
}

func realize(t *testing.T, shape kernel.Shape, scale geom.Vec3, mods ...kernel.Modifier) *kernel.Mesh {
	t.Helper()
	m, err := New().Realize(shape, geom.Euler{}, scale, mods)
	require.NoError(t, err)
	require.NoError(t, m.Validate())
	return m
}

// ---------------------------------------------------------------------------
// Primitives
// ---------------------------------------------------------------------------

func TestPrimitiveTriangleCounts(t *testing.T) {
	tests := []struct {
		name  string
		shape kernel.Shape
		tris  int
	}{
		{"box", kernel.Box{}, 12},
		{"icosahedron", kernel.Icosphere{Subdivisions: 1, Radius: 1}, 20},
		{"icosphere 3", kernel.Icosphere{Subdivisions: 3, Radius: 1}, 320},
		{"torus", kernel.Torus{MajorRadius: 1, MinorRadius: 0.25, MajorSegments: 48, MinorSegments: 12}, 48 * 12 * 2},
		{"cylinder", kernel.Cylinder{Radius: 1, Depth: 2, Vertices: 32}, 32*2 + 2*30},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := realize(t, tt.shape, geom.One)
			assert.Equal(t, tt.tris, m.TriangleCount())
		})
	}
}

func TestPrimitivesClosedAndOutward(t *testing.T) {
	shapes := []kernel.Shape{
		kernel.Box{},
		kernel.Icosphere{Subdivisions: 2, Radius: 1},
		kernel.Cylinder{Radius: 1, Depth: 2, Vertices: 16},
	}
	for _, s := range shapes {
		t.Run(s.Kind().String(), func(t *testing.T) {
			p := build(s)
			checkClosed(t, p)
			checkOutward(t, p)
		})
	}
	// The torus is not convex but must still be closed.
	checkClosed(t, build(kernel.Torus{MajorRadius: 1, MinorRadius: 0.3, MajorSegments: 8, MinorSegments: 6}))
}

func TestIcosphereOnSphere(t *testing.T) {
	m := realize(t, kernel.Icosphere{Subdivisions: 3, Radius: 0.0012}, geom.One)
	for i := 0; i < m.VertexCount(); i++ {
		assert.InDelta(t, 0.0012, m.Vertex(i).Len(), 1e-8)
	}
}

func TestBoxScaleSetsExtents(t *testing.T) {
	m := realize(t, kernel.Box{}, geom.Vec3{0.008, 0.003, 0.012})
	lo, hi := m.Bounds()
	assert.True(t, geom.ApproxEqual(lo, geom.Vec3{-0.004, -0.0015, -0.006}, 1e-7), "lo = %v", lo)
	assert.True(t, geom.ApproxEqual(hi, geom.Vec3{0.004, 0.0015, 0.006}, 1e-7), "hi = %v", hi)
}

func TestTorusExtents(t *testing.T) {
	m := realize(t, kernel.Torus{MajorRadius: 0.0105, MinorRadius: 0.0015, MajorSegments: 48, MinorSegments: 12}, geom.One)
	lo, hi := m.Bounds()
	assert.InDelta(t, 0.012, hi[0], 1e-7)
	assert.InDelta(t, -0.012, lo[0], 1e-7)
	assert.InDelta(t, 0.0015, hi[2], 1e-4)
}

func TestRotationApplied(t *testing.T) {
	m, err := New().Realize(kernel.Box{}, geom.Degrees(0, 0, 90), geom.Vec3{2, 1, 1}, nil)
	require.NoError(t, err)
	lo, hi := m.Bounds()
	assert.True(t, geom.ApproxEqual(lo, geom.Vec3{-0.5, -1, -0.5}, 1e-6), "lo = %v", lo)
	assert.True(t, geom.ApproxEqual(hi, geom.Vec3{0.5, 1, 0.5}, 1e-6), "hi = %v", hi)
}

func TestNegativeScaleKeepsOutwardWinding(t *testing.T) {
	p := build(kernel.Box{})
	p.scale(mgl64.Vec3{-1, 1, 1})
	checkClosed(t, p)
	checkOutward(t, p)
}

// ---------------------------------------------------------------------------
// Bevel
// ---------------------------------------------------------------------------

func TestRoundedBoxTopology(t *testing.T) {
	for segs := 1; segs <= 5; segs++ {
		p, err := roundedBox(mgl64.Vec3{1, 0.5, 2}, 0.2, segs)
		require.NoError(t, err)
		checkClosed(t, p)
		checkOutward(t, p)

		_, edges := p.edgeFaces()
		euler := len(p.verts) - len(edges) + len(p.faces)
		assert.Equal(t, 2, euler, "segs=%d", segs)
	}
}

func TestRoundedBoxSingleSegmentIsChamferedCube(t *testing.T) {
	p, err := roundedBox(mgl64.Vec3{1, 1, 1}, 0.1, 1)
	require.NoError(t, err)
	// 6 faces, 12 edge chamfers, 8 corner triangles
	assert.Len(t, p.faces, 26)
}

func TestBevelKeepsBounds(t *testing.T) {
	dims := geom.Vec3{0.008, 0.003, 0.012}
	m := realize(t, kernel.Box{}, dims, kernel.StoneCutBevel(0.003))
	lo, hi := m.Bounds()
	assert.True(t, geom.ApproxEqual(hi, dims.Mul(0.5), 1e-7), "hi = %v", hi)
	assert.True(t, geom.ApproxEqual(lo, dims.Mul(-0.5), 1e-7), "lo = %v", lo)
	assert.Greater(t, m.TriangleCount(), 12)
}

func TestBevelTooWide(t *testing.T) {
	_, err := New().Realize(kernel.Box{}, geom.Euler{}, geom.Vec3{1, 0.2, 1}, []kernel.Modifier{
		kernel.Bevel{Width: 0.1, Segments: 2},
	})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fault.ErrInvalidParameter))
	assert.Equal(t, fault.StageGeometry, fault.StageOf(err))
}

func TestBevelAngleLimitAtRightAngleIsNoop(t *testing.T) {
	m := realize(t, kernel.Box{}, geom.One, kernel.Bevel{Width: 0.1, Segments: 3, AngleLimit: math.Pi / 2})
	assert.Equal(t, 12, m.TriangleCount())
}

func TestBevelOnSmoothMesh(t *testing.T) {
	sphere := kernel.Icosphere{Subdivisions: 2, Radius: 1}

	m := realize(t, sphere, geom.One, kernel.StoneCutBevel(0.1))
	assert.Equal(t, 80, m.TriangleCount(), "no edge exceeds 60 degrees")

	_, err := New().Realize(sphere, geom.Euler{}, geom.One, []kernel.Modifier{kernel.PlateBevel(0.1)})
	require.Error(t, err)
	assert.True(t, errors.Is(err, fault.ErrUnsupported))
}

func TestRoundedBoxProperties(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := mgl64.Vec3{
			rapid.Float64Range(0.1, 2).Draw(t, "hx"),
			rapid.Float64Range(0.1, 2).Draw(t, "hy"),
			rapid.Float64Range(0.1, 2).Draw(t, "hz"),
		}
		smallest := math.Min(h[0], math.Min(h[1], h[2]))
		w := rapid.Float64Range(0.01, 0.95).Draw(t, "frac") * smallest
		segs := rapid.IntRange(1, 6).Draw(t, "segs")

		p, err := roundedBox(h, w, segs)
		if err != nil {
			t.Fatalf("roundedBox: %v", err)
		}
		checkClosed(t, p)
		for _, v := range p.verts {
			for a := 0; a < 3; a++ {
				if math.Abs(v[a]) > h[a]+1e-12 {
					t.Fatalf("vertex %v outside half-extents %v", v, h)
				}
			}
		}
	})
}

// ---------------------------------------------------------------------------
// Subdivision
// ---------------------------------------------------------------------------

func TestCatmullClarkCube(t *testing.T) {
	p := catmullClark(build(kernel.Box{}))
	assert.Len(t, p.faces, 24)
	assert.Len(t, p.verts, 8+12+6)
	checkClosed(t, p)
	checkOutward(t, p)

	// Cube corners pull inward: (F + 2R + (n-3)P)/n with n=3.
	for _, v := range p.verts[:8] {
		for a := 0; a < 3; a++ {
			assert.InDelta(t, 5.0/18.0, math.Abs(v[a]), 1e-12)
		}
	}
}

func TestSubdivisionLevels(t *testing.T) {
	m0 := realize(t, kernel.Box{}, geom.One, kernel.Subdivision{Levels: 0})
	assert.Equal(t, 12, m0.TriangleCount())

	m2 := realize(t, kernel.Box{}, geom.One, kernel.Subdivision{Levels: 2, RenderLevels: 2})
	assert.Equal(t, 6*16*2, m2.TriangleCount())
}

func TestBevelThenSubdivide(t *testing.T) {
	dims := geom.Vec3{0.008, 0.003, 0.012}
	m := realize(t, kernel.Box{}, dims, kernel.StoneCutBevel(0.003), kernel.SmoothSubdivision())
	lo, hi := m.Bounds()
	for a := 0; a < 3; a++ {
		assert.LessOrEqual(t, hi[a], dims[a]/2+1e-7)
		assert.GreaterOrEqual(t, lo[a], -dims[a]/2-1e-7)
	}
}

func TestRealizeDeterministic(t *testing.T) {
	mods := []kernel.Modifier{kernel.StoneCutBevel(0.003), kernel.SmoothSubdivision()}
	a, err := New().Realize(kernel.Box{}, geom.Degrees(10, 20, 30), geom.Vec3{0.008, 0.003, 0.012}, mods)
	require.NoError(t, err)
	b, err := New().Realize(kernel.Box{}, geom.Degrees(10, 20, 30), geom.Vec3{0.008, 0.003, 0.012}, mods)
	require.NoError(t, err)
	assert.Equal(t, a.Vertices, b.Vertices)
	assert.Equal(t, a.Indices, b.Indices)
}

func TestRealizeRejectsInvalidShape(t *testing.T) {
	_, err := New().Realize(kernel.Icosphere{Subdivisions: 3, Radius: -1}, geom.Euler{}, geom.One, nil)
	require.Error(t, err)
	var ge *fault.GeometryError
	require.True(t, errors.As(err, &ge))
	assert.Equal(t, "build icosphere", ge.Op)
}
