package kernel

import (
	"fmt"
	"math"
)

// ModifierKind enumerates the modifiers in a Part's stack.
type ModifierKind int

const (
	ModBevel ModifierKind = iota
	ModSubdivision
)

func (k ModifierKind) String() string {
	switch k {
	case ModBevel:
		return "bevel"
	case ModSubdivision:
		return "subdivision"
	default:
		return fmt.Sprintf("ModifierKind(%d)", int(k))
	}
}

// Modifier is a pending geometric operation. Concrete types: Bevel,
// Subdivision.
type Modifier interface {
	ModifierKind() ModifierKind
	Validate() error
	modifier()
}

// Bevel rounds edges whose dihedral angle exceeds AngleLimit. Width is
// the offset from the original edge, Segments the number of arc steps.
// AngleLimit zero bevels every edge.
type Bevel struct {
	Width      float64
	Segments   int
	AngleLimit float64 // radians
}

// Subdivision is Catmull-Clark smoothing. Levels is applied when the
// modifier is baked; RenderLevels is carried for consumers that
// distinguish preview from final quality.
type Subdivision struct {
	Levels       int
	RenderLevels int
}

// MaxSubdivisionLevels bounds Subdivision.Levels; each level multiplies
// the face count by about four.
const MaxSubdivisionLevels = 6

func (Bevel) ModifierKind() ModifierKind       { return ModBevel }
func (Subdivision) ModifierKind() ModifierKind { return ModSubdivision }

func (Bevel) modifier()       {}
func (Subdivision) modifier() {}

func (b Bevel) Validate() error {
	switch {
	case !(b.Width > 0):
		return badParam("bevel", "width %g must be positive", b.Width)
	case b.Segments < 1:
		return badParam("bevel", "%d segments, need at least 1", b.Segments)
	case b.AngleLimit < 0 || b.AngleLimit > math.Pi:
		return badParam("bevel", "angle limit %g outside [0, pi]", b.AngleLimit)
	}
	return nil
}

func (s Subdivision) Validate() error {
	if s.Levels < 0 || s.Levels > MaxSubdivisionLevels {
		return badParam("subdivision", "levels %d outside [0, %d]", s.Levels, MaxSubdivisionLevels)
	}
	if s.RenderLevels < 0 || s.RenderLevels > MaxSubdivisionLevels {
		return badParam("subdivision", "render levels %d outside [0, %d]", s.RenderLevels, MaxSubdivisionLevels)
	}
	return nil
}

// StoneCutBevel is the faceted-gem edge treatment: width 0.35t with five
// segments on edges sharper than 60 degrees, t being the stone's
// thickness in meters.
func StoneCutBevel(thickness float64) Bevel {
	return Bevel{Width: 0.35 * thickness, Segments: 5, AngleLimit: 60 * math.Pi / 180}
}

// PlateBevel softens every edge of a backing plate of thickness t.
func PlateBevel(thickness float64) Bevel {
	return Bevel{Width: 0.3 * thickness, Segments: 3}
}

// SmoothSubdivision is one level of Catmull-Clark for preview and render.
func SmoothSubdivision() Subdivision {
	return Subdivision{Levels: 1, RenderLevels: 1}
}
