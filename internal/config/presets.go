package config

// Presets are ready-made run configurations, keyed by name.
var Presets = map[string]*Config{
	"decay": {
		Grid: GridConfig{Nx: 32, Ny: 32, Nz: 32, Lx: 1, Ly: 1, Lz: 1},
		Dt: 5e-3, Duration: 2.0, Chi: DefaultChi,
		Closure: ClosureConfig{Viscosity: 1e-3, Diffusivity: 1e-3},
		Poisson: PoissonConfig{MaxIters: 200, Tolerance: 1e-8},
		Backend: "auto",
	},
	"decay-coarse": {
		Grid: GridConfig{Nx: 16, Ny: 16, Nz: 16, Lx: 1, Ly: 1, Lz: 1},
		Dt: 1e-2, Duration: 2.0, Chi: DefaultChi,
		Closure: ClosureConfig{Viscosity: 1e-3, Diffusivity: 1e-3},
		Poisson: PoissonConfig{MaxIters: 100, Tolerance: 1e-7},
		Backend: "auto",
	},
	"tracer-blob": {
		Grid: GridConfig{Nx: 32, Ny: 32, Nz: 8, Lx: 1, Ly: 1, Lz: 0.25},
		Dt: 5e-3, Duration: 4.0, Chi: DefaultChi,
		Closure: ClosureConfig{Viscosity: 5e-4, Diffusivity: 1e-4},
		Poisson: PoissonConfig{MaxIters: 200, Tolerance: 1e-8},
		Tracers: []string{"c"},
		Backend: "auto",
	},
	"viscous": {
		Grid: GridConfig{Nx: 24, Ny: 24, Nz: 24, Lx: 1, Ly: 1, Lz: 1},
		Dt: 2e-3, Duration: 1.0, Chi: DefaultChi,
		Closure: ClosureConfig{Viscosity: 1e-2, Diffusivity: 1e-2},
		Poisson: PoissonConfig{MaxIters: 300, Tolerance: 1e-9},
		Backend: "auto",
	},
}

func GetPreset(name string) *Config {
	cfg, ok := Presets[name]
	if !ok {
		return nil
	}
	c := *cfg
	c.Preset = name
	return &c
}
