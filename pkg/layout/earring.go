package layout

import (
	"math"

	"github.com/chazu/gemforge/pkg/config"
	"github.com/chazu/gemforge/pkg/geom"
)

// Fixed earring hardware dimensions in millimeters.
const (
	ClusterGapMM = 1.0
	PostRadiusMM = 0.5
	PostLengthMM = 3.0
)

// BoxPlacement places a scaled unit cube.
type BoxPlacement struct {
	Dims     geom.Vec3 // full extents, used as scale
	Position geom.Vec3
	Pivot    geom.Vec3
}

// PostPlacement places the ear post cylinder.
type PostPlacement struct {
	Radius   float64
	Length   float64
	Position geom.Vec3
	Rotation geom.Euler
}

// EarringLayout holds every derived earring dimension and position in
// meters. The anchor, the main stone's top centre, is the origin; Z is
// up and -Y is toward the back.
type EarringLayout struct {
	MainStone      BoxPlacement
	MainThickness  float64
	ClusterTopZ    float64
	ClusterCenterZ float64
	StoneDepth     float64 // Y of every cluster stone
	Cluster        ClusterParams
	Plate          BoxPlacement
	PlateThickness float64
	Post           *PostPlacement // nil without a post
}

// Earring derives the layout from cfg. It does not validate cfg.
//
// The cluster gap is measured down from z = -h/2, where the main
// stone's bottom edge would be if the stone were centred on the origin.
// With the top-anchored pivot the stone reaches down to -h, so the top
// of the cluster overlaps the stone's lower half by h/2 - gap. The
// plate spans from the anchor to the cluster centre.
func Earring(cfg config.EarringConfig) EarringLayout {
	w := config.Meters(cfg.MainStoneWidthMM)
	h := config.Meters(cfg.MainStoneHeightMM)
	t := config.Meters(cfg.MainStoneThicknessMM)
	cw := config.Meters(cfg.ClusterWidthMM)
	ch := config.Meters(cfg.ClusterHeightMM)
	metal := config.Meters(cfg.MetalThicknessMM)
	gap := config.Meters(ClusterGapMM)

	l := EarringLayout{
		MainStone: BoxPlacement{
			Dims:  geom.Vec3{w, t, h},
			Pivot: geom.Vec3{0, 0, -h / 2},
		},
		MainThickness: t,
		StoneDepth:    t * 0.5,
		Cluster: ClusterParams{
			Count:       cfg.ClusterStoneCount,
			BlueCount:   cfg.ClusterBlueStoneCount,
			Width:       cw,
			Height:      ch,
			StoneRadius: config.Meters(cfg.ClusterStoneRadiusMM),
		},
		PlateThickness: metal,
	}
	l.ClusterTopZ = -h/2 - gap
	l.ClusterCenterZ = l.ClusterTopZ - ch/2

	l.Plate = BoxPlacement{
		Dims: geom.Vec3{
			math.Max(w, cw) * 1.1,
			metal,
			(h + ch + gap) * 0.95,
		},
		Position: geom.Vec3{0, -metal/2 - t/2, l.ClusterCenterZ / 2},
	}

	if cfg.AddPost {
		length := config.Meters(PostLengthMM)
		l.Post = &PostPlacement{
			Radius:   config.Meters(PostRadiusMM),
			Length:   length,
			Position: geom.Vec3{0, -t/2 - length/2, 0},
			// Cylinder axis Z turned onto Y so it points out of the back.
			Rotation: geom.Degrees(90, 0, 0),
		}
	}
	return l
}

// StonePosition returns a cluster stone's position in the product frame.
func (l EarringLayout) StonePosition(s ClusterStone) geom.Vec3 {
	return geom.Vec3{s.X, l.StoneDepth, s.Z + l.ClusterCenterZ}
}
