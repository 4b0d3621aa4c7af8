// Package layout computes where parts go. It is pure arithmetic: every
// function takes millimeter configs or meter parameters and returns
// positions in meters, with randomness drawn only from the Rand it is
// handed.
package layout

import (
	"errors"
	"math"
	"math/rand/v2"

	"github.com/chazu/gemforge/pkg/fault"
)

// Rand is the randomness the layout consumes.
type Rand interface {
	Float64() float64
	IntN(n int) int
}

// NewRand returns a PCG generator seeded deterministically from seed.
func NewRand(seed int64) *rand.Rand {
	s := uint64(seed)
	return rand.New(rand.NewPCG(s, s^0x9e3779b97f4a7c15))
}

// Heart silhouette constants.
const (
	arcFraction  = 0.48 // share of the sequence on the upper arc
	arcAmplitude = 0.38 // arc height as a fraction of cluster height
	pointNarrow  = 0.8  // V half-width shrinks to 1-pointNarrow at the tip
	jitterSpread = 0.15 // jitter span as a fraction of stone radius
)

// ClusterParams describes a cluster in meters.
type ClusterParams struct {
	Count       int
	BlueCount   int
	Width       float64
	Height      float64
	StoneRadius float64
}

// Validate rejects parameters the layout cannot honor.
func (p ClusterParams) Validate() error {
	var errs []error
	if p.Count < 1 {
		errs = append(errs, fault.Invalid("cluster_stone_count", p.Count, "need at least 1 cluster stone"))
	}
	if p.BlueCount < 0 {
		errs = append(errs, fault.Invalid("cluster_blue_stone_count", p.BlueCount, "must not be negative"))
	}
	for _, f := range []struct {
		name string
		v    float64
	}{
		{"cluster_width", p.Width},
		{"cluster_height", p.Height},
		{"cluster_stone_radius", p.StoneRadius},
	} {
		if !(f.v > 0) {
			errs = append(errs, fault.Invalid(f.name, f.v, "must be positive"))
		}
	}
	return errors.Join(errs...)
}

// ClusterStone is one stone's offset from the cluster centre.
type ClusterStone struct {
	Index int
	X, Z  float64
	Blue  bool
}

// Cluster arranges p.Count stones in a heart-like silhouette around the
// cluster centre: an upper arc over the first 48% of the sequence, then
// a V that alternates sides while narrowing to the tip.
//
// rng is consumed in a fixed order: blue selection first, then x and z
// jitter per stone. A single stone sits exactly at the centre.
func Cluster(p ClusterParams, rng Rand) ([]ClusterStone, error) {
	if err := p.Validate(); err != nil {
		return nil, err
	}
	n := p.Count
	blue := pickBlue(n, p.BlueCount, rng)

	stones := make([]ClusterStone, n)
	if n == 1 {
		stones[0] = ClusterStone{Index: 0}
		return stones, nil
	}

	bottomStart := int(float64(n) * arcFraction)
	for i := 0; i < n; i++ {
		t := float64(i) / float64(n-1)
		var x, z float64
		if t < arcFraction {
			theta := math.Pi * (1 - 2*t/arcFraction)
			x = p.Width / 2 * math.Cos(theta)
			z = p.Height * arcAmplitude * math.Sin(theta)
		} else {
			tb := (t - arcFraction) / (1 - arcFraction)
			side := 1.0
			if (i-bottomStart)%2 != 0 {
				side = -1
			}
			x = side * p.Width / 2 * (1 - pointNarrow*tb)
			z = -p.Height * (arcAmplitude + (1-arcAmplitude)*tb)
		}
		x += (rng.Float64() - 0.5) * p.StoneRadius * jitterSpread
		z += (rng.Float64() - 0.5) * p.StoneRadius * jitterSpread
		stones[i] = ClusterStone{Index: i, X: x, Z: z, Blue: blue[i]}
	}
	return stones, nil
}

// pickBlue chooses min(want, |[n/4, 3n/4)|) distinct indices from the
// middle half of the sequence with a partial Fisher-Yates shuffle.
func pickBlue(n, want int, rng Rand) map[int]bool {
	var candidates []int
	for i := n / 4; i < 3*n/4; i++ {
		candidates = append(candidates, i)
	}
	k := min(want, len(candidates))
	blue := make(map[int]bool, k)
	for i := 0; i < k; i++ {
		j := i + rng.IntN(len(candidates)-i)
		candidates[i], candidates[j] = candidates[j], candidates[i]
		blue[candidates[i]] = true
	}
	return blue
}

// BlueCount returns how many stones are blue.
func BlueCount(stones []ClusterStone) int {
	var c int
	for _, s := range stones {
		if s.Blue {
			c++
		}
	}
	return c
}
