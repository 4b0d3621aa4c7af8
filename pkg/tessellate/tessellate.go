// Package tessellate bakes scene parts into triangle meshes using a
// geometry kernel. Baking resolves a part's modifier stack and flattens
// its pivot, rotation and scale into vertex data; position is kept on
// the part's transform.
package tessellate

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"

	"github.com/chazu/gemforge/pkg/fault"
	"github.com/chazu/gemforge/pkg/geom"
	"github.com/chazu/gemforge/pkg/kernel"
	"github.com/chazu/gemforge/pkg/scene"
)

// Bake realizes p with k. Afterwards p.Mesh holds the local-frame mesh,
// the modifier stack is empty, rotation is zero, scale is one and
// p.Baked is set. Baking a baked part is a no-op.
func Bake(k kernel.Kernel, p *scene.Part) error {
	if p.Baked {
		return nil
	}
	mesh, err := k.Realize(p.Shape, p.Transform.Rotation, p.Transform.Scale, p.Modifiers)
	if err != nil {
		return fault.WithPart(err, p.Name)
	}
	if p.Pivot != (geom.Vec3{}) {
		mesh = mesh.Translated(p.Pivot)
	}
	if err := mesh.Validate(); err != nil {
		return &fault.GeometryError{Part: p.Name, Op: "bake", Reason: err.Error(), Err: fault.ErrUnsupported}
	}
	mesh.PartName = p.Name

	p.Mesh = mesh
	p.Modifiers = nil
	p.Transform.Rotation = geom.Euler{}
	p.Transform.Scale = geom.One
	p.Pivot = geom.Vec3{}
	p.Baked = true
	return nil
}

// BakeAll bakes parts, which must belong to the finalized graph g. With
// workers > 1 meshes are realized concurrently; each worker writes only
// the part it was handed, and the graph itself is not touched.
func BakeAll(ctx context.Context, k kernel.Kernel, g *scene.Graph, parts []*scene.Part, workers int) error {
	if !g.Finalized() {
		return fmt.Errorf("bake: %w", scene.ErrNotFinalized)
	}
	for _, p := range parts {
		if g.Lookup(p.Name) != p {
			return fmt.Errorf("bake %q: %w", p.Name, scene.ErrUnknownPart)
		}
	}

	if workers <= 1 {
		for _, p := range parts {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := Bake(k, p); err != nil {
				return err
			}
		}
		return nil
	}

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for _, p := range parts {
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			return Bake(k, p)
		})
	}
	return eg.Wait()
}

// Walk visits every part depth first, roots in insertion order and
// children in attach order, passing the hierarchy depth.
func Walk(g *scene.Graph, visit func(p *scene.Part, depth int) error) error {
	var walk func(p *scene.Part, depth int) error
	walk = func(p *scene.Part, depth int) error {
		if err := visit(p, depth); err != nil {
			return err
		}
		for _, c := range g.Children(p.Name) {
			if err := walk(c, depth+1); err != nil {
				return err
			}
		}
		return nil
	}
	for _, r := range g.Roots() {
		if err := walk(r, 0); err != nil {
			return fmt.Errorf("tessellate: walking root %s: %w", r.Name, err)
		}
	}
	return nil
}

// WorldMesh returns a copy of a baked part's mesh moved into the
// product frame.
func WorldMesh(p *scene.Part) (*kernel.Mesh, error) {
	if !p.Baked || p.Mesh == nil {
		return nil, &fault.ExportError{Kind: fault.NotBaked, Part: p.Name}
	}
	return p.Mesh.Translated(p.Transform.Position), nil
}
