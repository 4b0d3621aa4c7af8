package config

import (
	"errors"
	"strings"

	"github.com/chazu/gemforge/pkg/fault"
)

// DefaultSeed seeds the cluster layout generator when none is given.
const DefaultSeed = 42

// Kernel backend names.
const (
	KernelNative = "native"
	KernelSDFX   = "sdfx"
)

// Output format names.
const (
	FormatGLB = "glb"
	FormatSTL = "stl"
)

// Settings are run-level knobs that are not part of a product's
// geometry: the layout seed, the geometry backend and export format.
type Settings struct {
	Seed        int64  `yaml:"seed" toml:"seed" env:"SEED"`
	Kernel      string `yaml:"kernel" toml:"kernel" env:"KERNEL"`
	Format      string `yaml:"format" toml:"format" env:"FORMAT"`
	BakeWorkers int    `yaml:"bake_workers" toml:"bake_workers" env:"BAKE_WORKERS"`
	SDFXCells   int    `yaml:"sdfx_cells" toml:"sdfx_cells" env:"SDFX_CELLS"`
}

// DefaultSettings returns sequential native-kernel GLB output seeded
// with DefaultSeed.
func DefaultSettings() Settings {
	return Settings{
		Seed:        DefaultSeed,
		Kernel:      KernelNative,
		Format:      FormatGLB,
		BakeWorkers: 1,
		SDFXCells:   64,
	}
}

// Validate checks the backend and format names and worker counts.
func (s Settings) Validate() error {
	var errs []error
	switch strings.ToLower(s.Kernel) {
	case KernelNative, KernelSDFX:
	default:
		errs = append(errs, fault.Invalid("kernel", s.Kernel, "expected native or sdfx"))
	}
	switch strings.ToLower(s.Format) {
	case FormatGLB, FormatSTL:
	default:
		errs = append(errs, fault.Invalid("format", s.Format, "expected glb or stl"))
	}
	if s.BakeWorkers < 1 {
		errs = append(errs, fault.Invalid("bake_workers", s.BakeWorkers, "need at least 1 worker"))
	}
	if s.SDFXCells < 8 {
		errs = append(errs, fault.Invalid("sdfx_cells", s.SDFXCells, "need at least 8 cells"))
	}
	return errors.Join(errs...)
}
