package sdfx

import (
	"errors"
	"math"
	"testing"

	"github.com/chazu/gemforge/pkg/fault"
	"github.com/chazu/gemforge/pkg/geom"
	"github.com/chazu/gemforge/pkg/kernel"
)

// checkMesh verifies array consistency the way every test needs it.
func checkMesh(t *testing.T, mesh *kernel.Mesh) {
	t.Helper()
	if mesh.IsEmpty() {
		t.Fatal("mesh is empty")
	}
	if mesh.TriangleCount() == 0 {
		t.Fatal("expected non-zero triangle count")
	}
	if len(mesh.Vertices) != len(mesh.Normals) {
		t.Fatalf("vertices length %d != normals length %d", len(mesh.Vertices), len(mesh.Normals))
	}
	if len(mesh.Indices) != mesh.TriangleCount()*3 {
		t.Fatalf("indices length %d != triCount*3 %d", len(mesh.Indices), mesh.TriangleCount()*3)
	}
}

func TestBox(t *testing.T) {
	k := New(32)
	mesh, err := k.Realize(kernel.Box{}, geom.Euler{}, geom.Vec3{100, 50, 25}, nil)
	if err != nil {
		t.Fatalf("Realize failed: %v", err)
	}
	checkMesh(t, mesh)

	lo, hi := mesh.Bounds()
	const tol = 5.0
	expectMin := [3]float64{-50, -25, -12.5}
	expectMax := [3]float64{50, 25, 12.5}
	for i := 0; i < 3; i++ {
		if math.Abs(lo[i]-expectMin[i]) > tol {
			t.Errorf("min[%d] = %f, expected ~%f", i, lo[i], expectMin[i])
		}
		if math.Abs(hi[i]-expectMax[i]) > tol {
			t.Errorf("max[%d] = %f, expected ~%f", i, hi[i], expectMax[i])
		}
	}
}

func TestCylinder(t *testing.T) {
	k := New(32)
	mesh, err := k.Realize(kernel.Cylinder{Radius: 10, Depth: 50, Vertices: 32}, geom.Euler{}, geom.One, nil)
	if err != nil {
		t.Fatalf("Realize failed: %v", err)
	}
	checkMesh(t, mesh)
	t.Logf("cylinder triangle count: %d", mesh.TriangleCount())
}

func TestTorus(t *testing.T) {
	k := New(48)
	mesh, err := k.Realize(kernel.Torus{MajorRadius: 10.5, MinorRadius: 1.5, MajorSegments: 48, MinorSegments: 12}, geom.Euler{}, geom.One, nil)
	if err != nil {
		t.Fatalf("Realize failed: %v", err)
	}
	checkMesh(t, mesh)

	lo, hi := mesh.Bounds()
	if hi[0] < 10 || lo[0] > -10 {
		t.Errorf("torus x extent [%f, %f], expected about +/-12", lo[0], hi[0])
	}
	if hi[2] > 2 {
		t.Errorf("torus z max = %f, expected about 1.5", hi[2])
	}
}

func TestIcosphere(t *testing.T) {
	k := New(32)
	mesh, err := k.Realize(kernel.Icosphere{Subdivisions: 3, Radius: 5}, geom.Euler{}, geom.One, nil)
	if err != nil {
		t.Fatalf("Realize failed: %v", err)
	}
	checkMesh(t, mesh)
	for i := 0; i < mesh.VertexCount(); i++ {
		if r := mesh.Vertex(i).Len(); math.Abs(r-5) > 0.5 {
			t.Fatalf("vertex %d at radius %f, expected ~5", i, r)
		}
	}
}

func TestRotate(t *testing.T) {
	k := New(32)

	// A long box along X rotated 90 degrees around Z should extend along Y instead.
	mesh, err := k.Realize(kernel.Box{}, geom.Degrees(0, 0, 90), geom.Vec3{100, 10, 10}, nil)
	if err != nil {
		t.Fatalf("Realize failed: %v", err)
	}
	lo, hi := mesh.Bounds()
	xExtent := hi[0] - lo[0]
	yExtent := hi[1] - lo[1]

	const tol = 8.0
	if math.Abs(xExtent-10) > tol {
		t.Errorf("rotated X extent = %f, expected ~10", xExtent)
	}
	if math.Abs(yExtent-100) > tol {
		t.Errorf("rotated Y extent = %f, expected ~100", yExtent)
	}
}

func TestSubdivisionRaisesResolution(t *testing.T) {
	k := New(16)
	sphere := kernel.Icosphere{Subdivisions: 2, Radius: 5}

	coarse, err := k.Realize(sphere, geom.Euler{}, geom.One, nil)
	if err != nil {
		t.Fatal(err)
	}
	fine, err := k.Realize(sphere, geom.Euler{}, geom.One, []kernel.Modifier{kernel.SmoothSubdivision()})
	if err != nil {
		t.Fatal(err)
	}
	if fine.TriangleCount() <= coarse.TriangleCount() {
		t.Errorf("subdivided mesh has %d triangles, coarse %d", fine.TriangleCount(), coarse.TriangleCount())
	}
}

func TestBevelRoundsBox(t *testing.T) {
	k := New(32)
	mods := []kernel.Modifier{kernel.Bevel{Width: 2, Segments: 3}}
	mesh, err := k.Realize(kernel.Box{}, geom.Euler{}, geom.Vec3{20, 20, 20}, mods)
	if err != nil {
		t.Fatalf("Realize failed: %v", err)
	}
	checkMesh(t, mesh)
	// No vertex may sit on the sharp corner.
	for i := 0; i < mesh.VertexCount(); i++ {
		v := mesh.Vertex(i)
		if math.Abs(v[0]) > 9.5 && math.Abs(v[1]) > 9.5 && math.Abs(v[2]) > 9.5 {
			t.Fatalf("vertex %v on an unrounded corner", v)
		}
	}
}

func TestBevelTooWide(t *testing.T) {
	k := New(16)
	_, err := k.Realize(kernel.Box{}, geom.Euler{}, geom.Vec3{10, 2, 10}, []kernel.Modifier{kernel.Bevel{Width: 1, Segments: 1}})
	if !errors.Is(err, fault.ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
}

func TestInvalidShape(t *testing.T) {
	k := New(16)
	_, err := k.Realize(kernel.Cylinder{Radius: -1, Depth: 1, Vertices: 32}, geom.Euler{}, geom.One, nil)
	if !errors.Is(err, fault.ErrInvalidParameter) {
		t.Fatalf("err = %v, want ErrInvalidParameter", err)
	}
}

func TestDefaultCells(t *testing.T) {
	if got := New(0).Cells(); got != DefaultMeshCells {
		t.Errorf("New(0).Cells() = %d, want %d", got, DefaultMeshCells)
	}
	if New(0).Name() != "sdfx" {
		t.Error("unexpected backend name")
	}
}
