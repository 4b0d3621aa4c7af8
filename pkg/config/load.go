package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"

	"github.com/chazu/gemforge/pkg/fault"
)

// EnvPrefix prefixes every environment override, e.g.
// GEMFORGE_SEED or GEMFORGE_EARRING_CLUSTER_STONE_COUNT.
const EnvPrefix = "GEMFORGE_"

// File is the on-disk configuration: run settings plus one section per
// product. Fields absent from the file keep their defaults.
type File struct {
	Settings Settings      `yaml:"settings" toml:"settings"`
	Earring  EarringConfig `yaml:"earring" toml:"earring" envPrefix:"EARRING_"`
	Ring     RingConfig    `yaml:"ring" toml:"ring" envPrefix:"RING_"`
}

// Default returns a File populated with every default.
func Default() File {
	return File{
		Settings: DefaultSettings(),
		Earring:  DefaultEarring(),
		Ring:     DefaultRing(),
	}
}

// Load builds a File from defaults, then the file at path (YAML or TOML
// by extension; skipped when path is empty), then environment overrides.
// environ replaces the process environment when non-nil.
//
// Load does not validate product sections; callers validate the one
// they build.
func Load(path string, environ map[string]string) (File, error) {
	f := Default()

	if path != "" {
		if err := decodeFile(path, &f); err != nil {
			return File{}, err
		}
	}

	if err := ParseEnv(&f, environ); err != nil {
		return File{}, err
	}

	if err := f.Settings.Validate(); err != nil {
		return File{}, err
	}
	return f, nil
}

// ParseEnv applies GEMFORGE_* environment overrides onto target.
func ParseEnv(target *File, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix, Environment: environ}
	if err := env.ParseWithOptions(target, opts); err != nil {
		return fault.Invalid("environment", EnvPrefix+"*", err.Error())
	}
	return nil
}

func decodeFile(path string, f *File) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fault.Invalid("config_file", path, err.Error())
	}

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, f); err != nil {
			return fault.Invalid("config_file", path, fmt.Sprintf("parse yaml: %v", err))
		}
	case ".toml":
		if err := toml.Unmarshal(data, f); err != nil {
			return fault.Invalid("config_file", path, fmt.Sprintf("parse toml: %v", err))
		}
	default:
		return fault.Invalid("config_file", path, fmt.Sprintf("unsupported extension %q, expected .yaml, .yml or .toml", ext))
	}
	return nil
}
