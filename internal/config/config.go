package config

import (
	"fmt"
	"os"

	"github.com/san-kum/coulomb/internal/field"
	"github.com/san-kum/coulomb/internal/rng"
	"gopkg.in/yaml.v3"
)

const (
	DefaultElectrons = field.DefaultElectrons
	DefaultSeed      = 1
	DefaultGenerator = "libc"
	DefaultWorkers   = 1
	DefaultAngleMode = "reference"
	DefaultFormat    = "text"
	DefaultDataDir   = ".coulomb"
	DefaultRepeats   = 3
)

var Formats = []string{"text", "json", "csv"}

type Config struct {
	Electrons int         `yaml:"electrons"`
	Seed      int64       `yaml:"seed"`
	Generator string      `yaml:"generator"`
	Workers   int         `yaml:"workers"`
	AngleMode string      `yaml:"angle_mode"`
	Format    string      `yaml:"format"`
	DataDir   string      `yaml:"data_dir"`
	Bench     BenchConfig `yaml:"bench"`
}

type BenchConfig struct {
	Sizes   []int `yaml:"sizes"`
	Repeats int   `yaml:"repeats"`
}

func DefaultConfig() *Config {
	return &Config{
		Electrons: DefaultElectrons,
		Seed:      DefaultSeed,
		Generator: DefaultGenerator,
		Workers:   DefaultWorkers,
		AngleMode: DefaultAngleMode,
		Format:    DefaultFormat,
		DataDir:   DefaultDataDir,
		Bench: BenchConfig{
			Sizes:   []int{250, 500, 1000, 2000, 4000},
			Repeats: DefaultRepeats,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("%w: %s: %v", field.ErrInvalidConfiguration, path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}

// Validate reports the first problem found, wrapped in
// field.ErrInvalidConfiguration.
func (c *Config) Validate() error {
	if err := field.ValidateCount(c.Electrons); err != nil {
		return err
	}
	if _, err := rng.New(c.Generator, c.Seed); err != nil {
		return fmt.Errorf("%w: %v", field.ErrInvalidConfiguration, err)
	}
	if c.Workers < 0 {
		return fmt.Errorf("%w: workers cannot be negative (got %d)", field.ErrInvalidConfiguration, c.Workers)
	}
	if _, err := field.ParseAngleMode(c.AngleMode); err != nil {
		return err
	}
	if !validFormat(c.Format) {
		return fmt.Errorf("%w: unknown format %q (available: %v)", field.ErrInvalidConfiguration, c.Format, Formats)
	}
	for _, n := range c.Bench.Sizes {
		if err := field.ValidateCount(n); err != nil {
			return fmt.Errorf("bench size: %w", err)
		}
	}
	if c.Bench.Repeats < 0 {
		return fmt.Errorf("%w: bench repeats cannot be negative", field.ErrInvalidConfiguration)
	}
	return nil
}

// Options converts a validated config into run options.
func (c *Config) Options() (field.Options, error) {
	mode, err := field.ParseAngleMode(c.AngleMode)
	if err != nil {
		return field.Options{}, err
	}
	return field.Options{
		Electrons: c.Electrons,
		Seed:      c.Seed,
		Generator: c.Generator,
		Workers:   c.Workers,
		AngleMode: mode,
	}, nil
}

func validFormat(f string) bool {
	for _, v := range Formats {
		if v == f {
			return true
		}
	}
	return false
}
