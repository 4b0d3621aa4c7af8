package layout

import (
	"github.com/chazu/gemforge/pkg/config"
	"github.com/chazu/gemforge/pkg/geom"
)

// RingLayout holds the derived ring dimensions in meters. The ring's
// rotational centre is the origin and the band lies in the XY plane.
type RingLayout struct {
	MajorRadius float64
	MinorRadius float64

	AddStone      bool
	StoneRadius   float64
	StoneHeight   float64
	StonePosition geom.Vec3
}

// Ring derives the layout from cfg. It does not validate cfg.
//
// The stone sits on the +Y side over the band's centre line with its
// base on the band's top surface.
func Ring(cfg config.RingConfig) RingLayout {
	inner := config.Meters(cfg.InnerDiameterMM) / 2
	width := config.Meters(cfg.BandWidthMM)

	l := RingLayout{
		MajorRadius: inner + config.Meters(cfg.BandThicknessMM),
		MinorRadius: width / 2,
		AddStone:    cfg.AddStone,
	}
	if cfg.AddStone {
		l.StoneRadius = config.Meters(cfg.StoneRadiusMM)
		l.StoneHeight = config.Meters(cfg.StoneHeightMM)
		l.StonePosition = geom.Vec3{0, inner + width/2, l.MinorRadius + l.StoneHeight/2}
	}
	return l
}
