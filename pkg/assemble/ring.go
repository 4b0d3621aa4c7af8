package assemble

import (
	"fmt"

	"go.uber.org/zap"

	"github.com/chazu/gemforge/pkg/config"
	"github.com/chazu/gemforge/pkg/geom"
	"github.com/chazu/gemforge/pkg/kernel"
	"github.com/chazu/gemforge/pkg/layout"
	"github.com/chazu/gemforge/pkg/material"
	"github.com/chazu/gemforge/pkg/primitive"
	"github.com/chazu/gemforge/pkg/scene"
)

// Ring part names.
const (
	RingBandName  = "RingBand"
	RingStoneName = "Stone"
)

// Ring is an assembled, finalized ring scene.
type Ring struct {
	Layout layout.RingLayout
	Band   *scene.Part
	Stone  *scene.Part // nil without a stone
}

// BuildRing validates cfg and assembles the ring into ctx.Scene. Band
// and stone are independent roots.
func BuildRing(ctx *Context, cfg config.RingConfig) (*Ring, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("ring config: %w", err)
	}
	l := layout.Ring(cfg)
	r := &Ring{Layout: l}
	g := ctx.Scene

	band, err := primitive.Build(RingBandName, kernel.Torus{
		MajorRadius:   l.MajorRadius,
		MinorRadius:   l.MinorRadius,
		MajorSegments: kernel.DefaultTorusMajorSegments,
		MinorSegments: kernel.DefaultTorusMinorSegments,
	}, geom.Vec3{})
	if err != nil {
		return nil, err
	}
	band.Material = ctx.Materials.FromCatalog(material.Gold)
	band.Role = scene.RoleAnchor
	if err := g.Add(band); err != nil {
		return nil, err
	}
	r.Band = band

	if l.AddStone {
		stone, err := primitive.Build(RingStoneName, kernel.Cylinder{
			Radius:   l.StoneRadius,
			Depth:    l.StoneHeight,
			Vertices: kernel.DefaultCylinderVertices,
		}, l.StonePosition)
		if err != nil {
			return nil, err
		}
		stone.Material = ctx.Materials.FromCatalog(material.Stone)
		stone.Role = scene.RoleCosmetic
		if err := g.Add(stone); err != nil {
			return nil, err
		}
		r.Stone = stone
	}

	if err := g.Finalize(); err != nil {
		return nil, err
	}
	ctx.Log.Info("ring assembled",
		zap.String("run_id", ctx.RunID.String()),
		zap.Float64("major_radius_m", l.MajorRadius),
		zap.Bool("stone", r.Stone != nil),
	)
	return r, nil
}

// RingSelection selects the band and the stone.
func RingSelection() scene.Predicate {
	return scene.Named(RingBandName, RingStoneName)
}
