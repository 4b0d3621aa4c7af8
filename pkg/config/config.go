// Package config defines the parameter bundles that drive a
// generation run, their defaults, and their domain validation.
//
// All dimensions are millimeters. Conversion to meters happens once, in
// package layout, via MMToM.
package config

import (
	"errors"

	"github.com/chazu/gemforge/pkg/fault"
)

// MMToM converts millimeters to meters.
const MMToM = 0.001

// Meters converts a millimeter dimension to meters.
func Meters(mm float64) float64 {
	return mm * MMToM
}

// EarringConfig parametrizes the earring: a faceted main stone, a heart
// shaped cluster of accent stones below it, a metal backing plate and an
// optional post.
type EarringConfig struct {
	MainStoneWidthMM      float64 `yaml:"main_stone_width_mm" toml:"main_stone_width_mm" env:"MAIN_STONE_WIDTH_MM"`
	MainStoneHeightMM     float64 `yaml:"main_stone_height_mm" toml:"main_stone_height_mm" env:"MAIN_STONE_HEIGHT_MM"`
	MainStoneThicknessMM  float64 `yaml:"main_stone_thickness_mm" toml:"main_stone_thickness_mm" env:"MAIN_STONE_THICKNESS_MM"`
	ClusterWidthMM        float64 `yaml:"cluster_width_mm" toml:"cluster_width_mm" env:"CLUSTER_WIDTH_MM"`
	ClusterHeightMM       float64 `yaml:"cluster_height_mm" toml:"cluster_height_mm" env:"CLUSTER_HEIGHT_MM"`
	ClusterStoneCount     int     `yaml:"cluster_stone_count" toml:"cluster_stone_count" env:"CLUSTER_STONE_COUNT"`
	ClusterBlueStoneCount int     `yaml:"cluster_blue_stone_count" toml:"cluster_blue_stone_count" env:"CLUSTER_BLUE_STONE_COUNT"`
	ClusterStoneRadiusMM  float64 `yaml:"cluster_stone_radius_mm" toml:"cluster_stone_radius_mm" env:"CLUSTER_STONE_RADIUS_MM"`
	MetalThicknessMM      float64 `yaml:"metal_thickness_mm" toml:"metal_thickness_mm" env:"METAL_THICKNESS_MM"`
	AddPost               bool    `yaml:"add_post" toml:"add_post" env:"ADD_POST"`
}

// DefaultEarring returns the stock earring parameters.
func DefaultEarring() EarringConfig {
	return EarringConfig{
		MainStoneWidthMM:      8.0,
		MainStoneHeightMM:     12.0,
		MainStoneThicknessMM:  3.0,
		ClusterWidthMM:        14.0,
		ClusterHeightMM:       12.0,
		ClusterStoneCount:     20,
		ClusterBlueStoneCount: 4,
		ClusterStoneRadiusMM:  1.2,
		MetalThicknessMM:      0.5,
		AddPost:               true,
	}
}

// ReferenceEarring returns the parameters of the reference design the
// earring generator was tuned against.
func ReferenceEarring() EarringConfig {
	return EarringConfig{
		MainStoneWidthMM:      6.5,
		MainStoneHeightMM:     9.5,
		MainStoneThicknessMM:  2.8,
		ClusterWidthMM:        11.5,
		ClusterHeightMM:       9.5,
		ClusterStoneCount:     28,
		ClusterBlueStoneCount: 6,
		ClusterStoneRadiusMM:  1.4,
		MetalThicknessMM:      0.4,
		AddPost:               true,
	}
}

// Validate checks every field and joins all violations. Each violation
// is a *fault.ValidationError.
func (c EarringConfig) Validate() error {
	var errs []error
	errs = positive(errs, "main_stone_width_mm", c.MainStoneWidthMM)
	errs = positive(errs, "main_stone_height_mm", c.MainStoneHeightMM)
	errs = positive(errs, "main_stone_thickness_mm", c.MainStoneThicknessMM)
	errs = positive(errs, "cluster_width_mm", c.ClusterWidthMM)
	errs = positive(errs, "cluster_height_mm", c.ClusterHeightMM)
	errs = positive(errs, "cluster_stone_radius_mm", c.ClusterStoneRadiusMM)
	errs = positive(errs, "metal_thickness_mm", c.MetalThicknessMM)
	if c.ClusterStoneCount < 1 {
		errs = append(errs, fault.Invalid("cluster_stone_count", c.ClusterStoneCount, "need at least 1 cluster stone"))
	}
	if c.ClusterBlueStoneCount < 0 {
		errs = append(errs, fault.Invalid("cluster_blue_stone_count", c.ClusterBlueStoneCount, "must not be negative"))
	}
	return errors.Join(errs...)
}

// RingConfig parametrizes the ring: a torus band and an optional
// cylindrical stone resting on it.
type RingConfig struct {
	InnerDiameterMM float64 `yaml:"inner_diameter_mm" toml:"inner_diameter_mm" env:"INNER_DIAMETER_MM"`
	BandThicknessMM float64 `yaml:"band_thickness_mm" toml:"band_thickness_mm" env:"BAND_THICKNESS_MM"`
	BandWidthMM     float64 `yaml:"band_width_mm" toml:"band_width_mm" env:"BAND_WIDTH_MM"`
	StoneRadiusMM   float64 `yaml:"stone_radius_mm" toml:"stone_radius_mm" env:"STONE_RADIUS_MM"`
	StoneHeightMM   float64 `yaml:"stone_height_mm" toml:"stone_height_mm" env:"STONE_HEIGHT_MM"`
	AddStone        bool    `yaml:"add_stone" toml:"add_stone" env:"ADD_STONE"`
}

// DefaultRing returns the stock ring parameters.
func DefaultRing() RingConfig {
	return RingConfig{
		InnerDiameterMM: 18.0,
		BandThicknessMM: 1.5,
		BandWidthMM:     3.0,
		StoneRadiusMM:   3.0,
		StoneHeightMM:   4.0,
		AddStone:        true,
	}
}

// Validate checks every field and joins all violations. Stone dimensions
// are only checked when AddStone is set.
func (c RingConfig) Validate() error {
	var errs []error
	errs = positive(errs, "inner_diameter_mm", c.InnerDiameterMM)
	errs = positive(errs, "band_thickness_mm", c.BandThicknessMM)
	errs = positive(errs, "band_width_mm", c.BandWidthMM)
	if c.AddStone {
		errs = positive(errs, "stone_radius_mm", c.StoneRadiusMM)
		errs = positive(errs, "stone_height_mm", c.StoneHeightMM)
	}
	// The band tube must not swallow the ring's own center.
	if c.BandWidthMM > 0 && c.InnerDiameterMM > 0 && c.BandWidthMM/2 >= c.InnerDiameterMM/2+c.BandThicknessMM {
		errs = append(errs, fault.Invalid("band_width_mm", c.BandWidthMM, "band tube radius must be smaller than the band's major radius"))
	}
	return errors.Join(errs...)
}

func positive(errs []error, field string, v float64) []error {
	if !(v > 0) {
		return append(errs, fault.Invalid(field, v, "must be positive"))
	}
	return errs
}
