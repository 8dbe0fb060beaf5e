// Package config loads CLI settings from an optional YAML file and ISOKIN_* environment variables.
package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/go-playground/validator/v10"
	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"

	"github.com/farcloser/primordium/fault"

	"github.com/farcloser/isokin/internal/analysis/shared"
	"github.com/farcloser/isokin/internal/integration/codepage"
)

// EnvPrefix prefixes every environment override, e.g. ISOKIN_ENCODING.
const EnvPrefix = "ISOKIN"

var errInvalidConfig = errors.New("invalid configuration")

// Config holds settings shared by the isokin binaries. Flags override it.
type Config struct {
	Encoding          string  `yaml:"encoding"            envconfig:"ENCODING"            validate:"oneof=windows-1252 iso-8859-1 iso-8859-15 utf-8"`
	SkipInvalidRows   bool    `yaml:"skip_invalid_rows"   envconfig:"SKIP_INVALID_ROWS"`
	DefaultSampleRate float64 `yaml:"default_sample_rate" envconfig:"DEFAULT_SAMPLE_RATE" validate:"gt=0"`
	Format            string  `yaml:"format"              envconfig:"FORMAT"              validate:"oneof=console json markdown"`
	Workers           int     `yaml:"workers"             envconfig:"WORKERS"             validate:"gte=0"`
}

// Default returns the built-in settings. Workers 0 means one per CPU.
func Default() Config {
	return Config{
		Encoding:          codepage.Default,
		SkipInvalidRows:   false,
		DefaultSampleRate: shared.DefaultSampleRate,
		Format:            "console",
		Workers:           0,
	}
}

// Load starts from Default, applies the YAML file at path when path is not empty, then environment
// variables, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path) //nolint:gosec // user-specified config file
		if err != nil {
			return Config{}, fmt.Errorf("%w: %w", fault.ErrReadFailure, err)
		}

		if err := yaml.UnmarshalStrict(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("%w: %s: %w", errInvalidConfig, path, err)
		}
	}

	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return Config{}, fmt.Errorf("%w: environment: %w", errInvalidConfig, err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}

	return cfg, nil
}

// Validate checks field constraints.
func (c Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %w", errInvalidConfig, err)
	}

	return nil
}
