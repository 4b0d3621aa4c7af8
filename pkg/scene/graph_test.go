package scene

import (
	"errors"
	"strings"
	"testing"

	"github.com/chazu/gemforge/pkg/geom"
	"github.com/chazu/gemforge/pkg/kernel"
	"github.com/chazu/gemforge/pkg/material"
)

func newPart(name string) *Part {
	reg := material.NewRegistry()
	return &Part{
		Name:      name,
		Shape:     kernel.Box{},
		Transform: geom.Identity(),
		Material:  reg.FromCatalog(material.Metal),
	}
}

// earringLike builds MainStone with two children and two loose stones.
func earringLike(t *testing.T) *Graph {
	t.Helper()
	g := New()
	for _, n := range []string{"MainStone", "ClusterStone_0", "ClusterStone_1", "BackingPlate", "Post"} {
		if err := g.Add(newPart(n)); err != nil {
			t.Fatalf("Add(%s): %v", n, err)
		}
	}
	if err := g.SetParent("BackingPlate", "MainStone"); err != nil {
		t.Fatal(err)
	}
	if err := g.SetParent("Post", "MainStone"); err != nil {
		t.Fatal(err)
	}
	return g
}

func names(parts []*Part) string {
	ns := make([]string, len(parts))
	for i, p := range parts {
		ns[i] = p.Name
	}
	return strings.Join(ns, ",")
}

// ---------------------------------------------------------------------------
// Construction
// ---------------------------------------------------------------------------

func TestNewGraph(t *testing.T) {
	g := New()
	if g.Len() != 0 {
		t.Errorf("empty graph has %d parts", g.Len())
	}
	if g.Finalized() {
		t.Error("new graph should not be finalized")
	}
	if len(g.Roots()) != 0 {
		t.Error("empty graph should have no roots")
	}
}

func TestAddAndLookup(t *testing.T) {
	g := earringLike(t)

	if got := names(g.Parts()); got != "MainStone,ClusterStone_0,ClusterStone_1,BackingPlate,Post" {
		t.Errorf("Parts() order = %s", got)
	}
	if g.Lookup("Post") == nil {
		t.Fatal("Lookup(Post) returned nil")
	}
	if g.Lookup("missing") != nil {
		t.Error("Lookup should return nil for missing name")
	}
	if got := g.MustLookup("MainStone").Name; got != "MainStone" {
		t.Errorf("MustLookup returned %s", got)
	}
}

func TestMustLookupPanics(t *testing.T) {
	g := New()
	defer func() {
		if r := recover(); r == nil {
			t.Error("MustLookup should panic for a missing part")
		}
	}()
	g.MustLookup("ghost")
}

func TestAddDuplicate(t *testing.T) {
	g := New()
	if err := g.Add(newPart("A")); err != nil {
		t.Fatal(err)
	}
	err := g.Add(newPart("A"))
	if !errors.Is(err, ErrDuplicateName) {
		t.Fatalf("err = %v, want ErrDuplicateName", err)
	}
	if err := g.Add(newPart("")); err == nil {
		t.Error("empty name should be rejected")
	}
}

// ---------------------------------------------------------------------------
// Hierarchy
// ---------------------------------------------------------------------------

func TestHierarchyQueries(t *testing.T) {
	g := earringLike(t)

	if p := g.Parent("Post"); p == nil || p.Name != "MainStone" {
		t.Errorf("Parent(Post) = %v, want MainStone", p)
	}
	if p := g.Parent("ClusterStone_0"); p != nil {
		t.Errorf("cluster stone should be a root, has parent %s", p.Name)
	}
	if got := names(g.Children("MainStone")); got != "BackingPlate,Post" {
		t.Errorf("Children(MainStone) = %s", got)
	}
	if got := names(g.Roots()); got != "MainStone,ClusterStone_0,ClusterStone_1" {
		t.Errorf("Roots() = %s", got)
	}
}

func TestSetParentErrors(t *testing.T) {
	tests := []struct {
		name   string
		child  string
		parent string
		want   error
	}{
		{"unknown child", "ghost", "MainStone", ErrUnknownPart},
		{"unknown parent", "Post", "ghost", ErrUnknownPart},
		{"second parent", "Post", "ClusterStone_0", ErrHasParent},
		{"cycle", "MainStone", "Post", ErrCycle},
		{"self", "ClusterStone_1", "ClusterStone_1", ErrCycle},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g := earringLike(t)
			err := g.SetParent(tt.child, tt.parent)
			if !errors.Is(err, tt.want) {
				t.Errorf("SetParent(%s, %s) = %v, want %v", tt.child, tt.parent, err, tt.want)
			}
		})
	}
}

func TestFinalizeFreezes(t *testing.T) {
	g := earringLike(t)
	if err := g.Finalize(); err != nil {
		t.Fatalf("Finalize() = %v", err)
	}
	if !g.Finalized() {
		t.Fatal("Finalized() = false after Finalize")
	}
	if err := g.SetParent("ClusterStone_0", "MainStone"); !errors.Is(err, ErrFinalized) {
		t.Errorf("SetParent after Finalize = %v, want ErrFinalized", err)
	}
	if err := g.Add(newPart("Late")); !errors.Is(err, ErrFinalized) {
		t.Errorf("Add after Finalize = %v, want ErrFinalized", err)
	}
	if err := g.Finalize(); err != nil {
		t.Errorf("second Finalize() = %v", err)
	}
}

func TestFinalizeRejectsShapeless(t *testing.T) {
	g := New()
	p := newPart("Blank")
	p.Shape = nil
	if err := g.Add(p); err != nil {
		t.Fatal(err)
	}
	if err := g.Finalize(); err == nil {
		t.Fatal("Finalize should fail for a part without a shape")
	}
	if g.Finalized() {
		t.Error("failed Finalize must not freeze the graph")
	}
}

func TestResetClears(t *testing.T) {
	g := earringLike(t)
	_ = g.Finalize()
	g.Reset()
	if g.Len() != 0 || g.Finalized() {
		t.Errorf("after Reset: %d parts, finalized=%v", g.Len(), g.Finalized())
	}
	if err := g.Add(newPart("MainStone")); err != nil {
		t.Errorf("Add after Reset = %v", err)
	}
}

// ---------------------------------------------------------------------------
// Validation
// ---------------------------------------------------------------------------

func TestValidateClean(t *testing.T) {
	g := earringLike(t)
	if fs := g.Validate(); len(fs) != 0 {
		t.Errorf("expected no findings, got %v", fs)
	}
}

func TestValidateMissingMaterialWarns(t *testing.T) {
	g := New()
	p := newPart("Bare")
	p.Material = nil
	_ = g.Add(p)

	fs := g.Validate()
	if len(fs) != 1 || fs[0].Severity != SeverityWarning {
		t.Fatalf("findings = %v, want one warning", fs)
	}
	if err := g.Finalize(); err != nil {
		t.Errorf("warnings must not block Finalize: %v", err)
	}
}

func TestValidateDetectsInjectedCycle(t *testing.T) {
	g := earringLike(t)
	// Bypass SetParent to corrupt the hierarchy.
	g.parent["MainStone"] = "Post"
	g.children["Post"] = append(g.children["Post"], "MainStone")

	var found bool
	for _, f := range g.Validate() {
		if f.Severity == SeverityError && strings.Contains(f.Message, "cycle") {
			found = true
		}
	}
	if !found {
		t.Error("cycle not reported")
	}
}

func TestValidateDanglingParent(t *testing.T) {
	g := earringLike(t)
	g.parent["ClusterStone_0"] = "Nowhere"

	fs := g.Validate()
	if len(fs) == 0 || !strings.Contains(fs[len(fs)-1].Error(), "Nowhere") {
		t.Errorf("dangling parent not reported: %v", fs)
	}
}

// ---------------------------------------------------------------------------
// Selection
// ---------------------------------------------------------------------------

func TestSelect(t *testing.T) {
	g := earringLike(t)
	tests := []struct {
		name string
		pred Predicate
		want string
	}{
		{"named", Named("Post", "MainStone"), "MainStone,Post"},
		{"prefix", NamePrefix("ClusterStone_"), "ClusterStone_0,ClusterStone_1"},
		{"child of", ChildOf("MainStone"), "BackingPlate,Post"},
		{"earring selection", Any(Named("MainStone"), ChildOf("MainStone"), NamePrefix("ClusterStone_")),
			"MainStone,ClusterStone_0,ClusterStone_1,BackingPlate,Post"},
		{"none", Named("ghost"), ""},
		{"all", All(), "MainStone,ClusterStone_0,ClusterStone_1,BackingPlate,Post"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := names(g.Select(tt.pred)); got != tt.want {
				t.Errorf("Select = %s, want %s", got, tt.want)
			}
		})
	}
}

// ---------------------------------------------------------------------------
// Digest
// ---------------------------------------------------------------------------

func TestDigestStableAndSensitive(t *testing.T) {
	a, b := earringLike(t), earringLike(t)
	if a.Digest() != b.Digest() {
		t.Fatal("equal graphs produced different digests")
	}
	b.MustLookup("Post").Transform.Position = geom.Vec3{0, -0.001, 0}
	if a.Digest() == b.Digest() {
		t.Error("digest ignored a position change")
	}
}

func TestPartBounds(t *testing.T) {
	p := newPart("P")
	if _, _, ok := p.Bounds(); ok {
		t.Error("unbaked part should report no bounds")
	}
	p.Mesh = &kernel.Mesh{}
	p.Mesh.AddPolygon([]geom.Vec3{{0, 0, 0}, {1, 0, 0}, {1, 1, 0}})
	p.Baked = true
	p.Transform.Position = geom.Vec3{0, 0, 5}
	lo, hi, ok := p.Bounds()
	if !ok || lo != (geom.Vec3{0, 0, 5}) || hi != (geom.Vec3{1, 1, 5}) {
		t.Errorf("Bounds() = %v %v %v", lo, hi, ok)
	}
	if got := p.WorldVertex(1); got != (geom.Vec3{1, 0, 5}) {
		t.Errorf("WorldVertex(1) = %v", got)
	}
}
