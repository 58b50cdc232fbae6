package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultNx          = 32
	DefaultNy          = 32
	DefaultNz          = 32
	DefaultExtent      = 1.0
	DefaultDt          = 1e-2
	DefaultDuration    = 1.0
	DefaultChi         = 0.1
	DefaultViscosity   = 1e-3
	DefaultDiffusivity = 1e-3
	DefaultPoissonCap  = 200
	DefaultPoissonTol  = 1e-8
)

type Config struct {
	Grid     GridConfig    `yaml:"grid"`
	Dt       float64       `yaml:"dt"`
	Duration float64       `yaml:"duration"`
	Chi      float64       `yaml:"chi"`
	Closure  ClosureConfig `yaml:"closure"`
	Poisson  PoissonConfig `yaml:"poisson"`
	Tracers  []string      `yaml:"tracers"`
	Backend  string        `yaml:"backend"`
	Preset   string        `yaml:"preset"`
}

type GridConfig struct {
	Nx int     `yaml:"nx"`
	Ny int     `yaml:"ny"`
	Nz int     `yaml:"nz"`
	Lx float64 `yaml:"lx"`
	Ly float64 `yaml:"ly"`
	Lz float64 `yaml:"lz"`
}

type ClosureConfig struct {
	Viscosity   float64 `yaml:"viscosity"`
	Diffusivity float64 `yaml:"diffusivity"`
}

type PoissonConfig struct {
	MaxIters  int     `yaml:"max_iters"`
	Tolerance float64 `yaml:"tolerance"`
}

func DefaultConfig() *Config {
	return &Config{
		Grid: GridConfig{
			Nx: DefaultNx, Ny: DefaultNy, Nz: DefaultNz,
			Lx: DefaultExtent, Ly: DefaultExtent, Lz: DefaultExtent,
		},
		Dt:       DefaultDt,
		Duration: DefaultDuration,
		Chi:      DefaultChi,
		Closure: ClosureConfig{
			Viscosity:   DefaultViscosity,
			Diffusivity: DefaultDiffusivity,
		},
		Poisson: PoissonConfig{
			MaxIters:  DefaultPoissonCap,
			Tolerance: DefaultPoissonTol,
		},
		Backend: "auto",
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
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

func (c *Config) Validate() error {
	if c.Grid.Nx < 1 || c.Grid.Ny < 1 || c.Grid.Nz < 1 {
		return fmt.Errorf("config: grid extents must be positive, got %dx%dx%d",
			c.Grid.Nx, c.Grid.Ny, c.Grid.Nz)
	}
	if c.Grid.Lx <= 0 || c.Grid.Ly <= 0 || c.Grid.Lz <= 0 {
		return fmt.Errorf("config: domain lengths must be positive")
	}
	if c.Dt == 0 {
		return fmt.Errorf("config: dt must be nonzero")
	}
	if c.Duration <= 0 {
		return fmt.Errorf("config: duration must be positive")
	}
	if c.Chi == -0.5 {
		return fmt.Errorf("config: chi -0.5 is reserved for euler stepping")
	}
	if c.Closure.Viscosity < 0 || c.Closure.Diffusivity < 0 {
		return fmt.Errorf("config: closure coefficients must be nonnegative")
	}
	if c.Poisson.MaxIters < 1 {
		return fmt.Errorf("config: poisson iteration cap must be positive")
	}
	return nil
}
