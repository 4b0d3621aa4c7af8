package assemble

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/chazu/gemforge/pkg/config"
	"github.com/chazu/gemforge/pkg/kernel"
	"github.com/chazu/gemforge/pkg/layout"
	"github.com/chazu/gemforge/pkg/material"
	"github.com/chazu/gemforge/pkg/primitive"
	"github.com/chazu/gemforge/pkg/scene"
)

// Earring part names.
const (
	MainStoneName      = "MainStone"
	BackingPlateName   = "BackingPlate"
	PostName           = "Post"
	ClusterStonePrefix = "ClusterStone_"
)

// ClusterIcosphereSubdivisions is the mesh density of each cluster stone.
const ClusterIcosphereSubdivisions = 3

// Earring is an assembled, finalized earring scene.
type Earring struct {
	Layout  layout.EarringLayout
	Stones  []layout.ClusterStone
	Root    *scene.Part
	Plate   *scene.Part
	Post    *scene.Part // nil without a post
	Cluster []*scene.Part
}

// ClusterStoneName returns the name of cluster stone i.
func ClusterStoneName(i int) string {
	return fmt.Sprintf("%s%d", ClusterStonePrefix, i)
}

// BuildEarring validates cfg and assembles the earring into ctx.Scene.
// The scene is finalized on success. Cluster stones are top-level
// siblings of the main stone; the plate and post are its children.
func BuildEarring(ctx *Context, cfg config.EarringConfig) (*Earring, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("earring config: %w", err)
	}
	l := layout.Earring(cfg)
	stones, err := layout.Cluster(l.Cluster, ctx.Rand)
	if err != nil {
		return nil, fmt.Errorf("earring cluster: %w", err)
	}

	blue := ctx.Materials.FromCatalog(material.BlueGem)
	white := ctx.Materials.FromCatalog(material.WhiteGem)
	metal := ctx.Materials.FromCatalog(material.Metal)

	e := &Earring{Layout: l, Stones: stones}
	g := ctx.Scene

	// Main stone: the anchor, hanging from the origin.
	root, err := primitive.BuildBox(MainStoneName, l.MainStone.Dims, l.MainStone.Position)
	if err != nil {
		return nil, err
	}
	root.Pivot = l.MainStone.Pivot
	root.Material = blue
	root.Role = scene.RoleAnchor
	if err := applyAll(root, kernel.StoneCutBevel(l.MainThickness), kernel.SmoothSubdivision()); err != nil {
		return nil, err
	}
	if err := g.Add(root); err != nil {
		return nil, err
	}
	e.Root = root

	for _, s := range stones {
		shape := kernel.Icosphere{Subdivisions: ClusterIcosphereSubdivisions, Radius: l.Cluster.StoneRadius}
		p, err := primitive.Build(ClusterStoneName(s.Index), shape, l.StonePosition(s))
		if err != nil {
			return nil, err
		}
		p.Material = white
		if s.Blue {
			p.Material = blue
		}
		p.Role = scene.RoleCosmetic
		if err := g.Add(p); err != nil {
			return nil, err
		}
		e.Cluster = append(e.Cluster, p)
	}

	plate, err := primitive.BuildBox(BackingPlateName, l.Plate.Dims, l.Plate.Position)
	if err != nil {
		return nil, err
	}
	plate.Material = metal
	plate.Role = scene.RoleStructural
	if err := primitive.ApplyModifier(plate, kernel.PlateBevel(l.PlateThickness)); err != nil {
		return nil, err
	}
	if err := attach(g, plate, root); err != nil {
		return nil, err
	}
	e.Plate = plate

	if l.Post != nil {
		shape := kernel.Cylinder{Radius: l.Post.Radius, Depth: l.Post.Length, Vertices: kernel.DefaultCylinderVertices}
		post, err := primitive.Build(PostName, shape, l.Post.Position)
		if err != nil {
			return nil, err
		}
		post.Transform.Rotation = l.Post.Rotation
		post.Material = metal
		post.Role = scene.RoleStructural
		if err := attach(g, post, root); err != nil {
			return nil, err
		}
		e.Post = post
	}

	if err := g.Finalize(); err != nil {
		return nil, err
	}
	ctx.Log.Info("earring assembled",
		zap.String("run_id", ctx.RunID.String()),
		zap.Int("parts", g.Len()),
		zap.Int("cluster_stones", len(stones)),
		zap.Int("blue_stones", layout.BlueCount(stones)),
		zap.Bool("post", e.Post != nil),
	)
	return e, nil
}

// EarringSelection selects the root, its direct children and every
// cluster stone.
func EarringSelection(root string) scene.Predicate {
	return scene.Any(scene.Named(root), scene.ChildOf(root), scene.NamePrefix(ClusterStonePrefix))
}

func applyAll(p *scene.Part, mods ...kernel.Modifier) error {
	for _, m := range mods {
		if err := primitive.ApplyModifier(p, m); err != nil {
			return err
		}
	}
	return nil
}

func attach(g *scene.Graph, child, parent *scene.Part) error {
	if err := g.Add(child); err != nil {
		return err
	}
	return g.SetParent(child.Name, parent.Name)
}
