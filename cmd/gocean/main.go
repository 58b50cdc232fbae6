package main

import (
	"fmt"
	"math"
	"os"
	"sort"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"github.com/ssghost/gocean/internal/closure"
	"github.com/ssghost/gocean/internal/compute"
	"github.com/ssghost/gocean/internal/config"
	"github.com/ssghost/gocean/internal/diag"
	"github.com/ssghost/gocean/internal/field"
	"github.com/ssghost/gocean/internal/forcing"
	"github.com/ssghost/gocean/internal/grid"
	"github.com/ssghost/gocean/internal/pressure"
	"github.com/ssghost/gocean/internal/sim"
	"github.com/ssghost/gocean/internal/storage"
	"github.com/ssghost/gocean/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	dt         float64
	duration   float64
	chi        float64
	nx         int
	ny         int
	nz         int
	viscosity  float64
	backend    string
	frameRate  int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "gocean",
		Short: "incompressible flow simulation on a staggered grid",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".gocean", "data directory")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run a simulation",
		RunE:  runSimulation,
	}
	addRunFlags(runCmd)

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list stored runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot diagnostics of a stored run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run a simulation with a live terminal monitor",
		RunE:  runLive,
	}
	addRunFlags(liveCmd)
	liveCmd.Flags().IntVar(&frameRate, "every", 5, "report every n steps")

	configCmd := &cobra.Command{
		Use:   "config [path]",
		Short: "write a default configuration file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := config.Save(args[0], config.DefaultConfig()); err != nil {
				return err
			}
			fmt.Printf("wrote %s\n", args[0])
			return nil
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE: func(cmd *cobra.Command, args []string) error {
			names := make([]string, 0, len(config.Presets))
			for name := range config.Presets {
				names = append(names, name)
			}
			sort.Strings(names)
			w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
			fmt.Fprintln(w, "NAME\tGRID\tDT\tDURATION\tTRACERS")
			for _, name := range names {
				p := config.Presets[name]
				fmt.Fprintf(w, "%s\t%dx%dx%d\t%.4g\t%.4g\t%d\n",
					name, p.Grid.Nx, p.Grid.Ny, p.Grid.Nz, p.Dt, p.Duration, len(p.Tracers))
			}
			return w.Flush()
		},
	}

	rootCmd.AddCommand(runCmd, listCmd, plotCmd, liveCmd, configCmd, presetsCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	cmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	cmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	cmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	cmd.Flags().Float64Var(&chi, "chi", config.DefaultChi, "multistep coefficient")
	cmd.Flags().IntVar(&nx, "nx", config.DefaultNx, "grid cells in x")
	cmd.Flags().IntVar(&ny, "ny", config.DefaultNy, "grid cells in y")
	cmd.Flags().IntVar(&nz, "nz", config.DefaultNz, "grid cells in z")
	cmd.Flags().Float64Var(&viscosity, "nu", config.DefaultViscosity, "kinematic viscosity")
	cmd.Flags().StringVar(&backend, "backend", "auto", "execution backend (host, device, auto)")
}

// resolveConfig merges preset, config file and command-line flags, with
// flags taking precedence over the file and the file over the preset.
func resolveConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			names := make([]string, 0, len(config.Presets))
			for name := range config.Presets {
				names = append(names, name)
			}
			sort.Strings(names)
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, names)
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("chi") {
		cfg.Chi = chi
	}
	if cmd.Flags().Changed("nx") {
		cfg.Grid.Nx = nx
	}
	if cmd.Flags().Changed("ny") {
		cfg.Grid.Ny = ny
	}
	if cmd.Flags().Changed("nz") {
		cfg.Grid.Nz = nz
	}
	if cmd.Flags().Changed("nu") {
		cfg.Closure.Viscosity = viscosity
	}
	if cmd.Flags().Changed("backend") {
		cfg.Backend = backend
	}
	if cfg.Backend == "" {
		cfg.Backend = "auto"
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// buildModel assembles a model from a resolved configuration: grid,
// velocity and tracer fields, closure, pressure solver and backend.
func buildModel(cfg *config.Config) (*sim.Model, error) {
	g, err := grid.New(cfg.Grid.Nx, cfg.Grid.Ny, cfg.Grid.Nz, cfg.Grid.Lx, cfg.Grid.Ly, cfg.Grid.Lz)
	if err != nil {
		return nil, err
	}

	fields, err := field.NewBundle(
		field.New("u", field.XFace, g),
		field.New("v", field.YFace, g),
		field.New("w", field.ZFace, g),
	)
	if err != nil {
		return nil, err
	}
	for _, name := range cfg.Tracers {
		if err := fields.Add(field.New(name, field.CellCenter, g)); err != nil {
			return nil, err
		}
	}

	m, err := sim.NewModel(g, fields)
	if err != nil {
		return nil, err
	}
	if err := m.SetCoefficient(cfg.Chi); err != nil {
		return nil, err
	}
	m.SetClosure(closure.New(cfg.Closure.Viscosity, cfg.Closure.Diffusivity))

	solver, err := pressure.New(cfg.Poisson.MaxIters, cfg.Poisson.Tolerance)
	if err != nil {
		return nil, err
	}
	m.SetPressureSolver(solver)
	m.SetBackend(compute.ByName(cfg.Backend))

	if err := setInitialConditions(m, g, cfg); err != nil {
		return nil, err
	}
	return m, nil
}

// setInitialConditions seeds a Taylor-Green vortex in the velocity field
// and, for each tracer, a centered Gaussian blob with a weak source term.
func setInitialConditions(m *sim.Model, g *grid.Grid, cfg *config.Config) error {
	kx := 2 * math.Pi / cfg.Grid.Lx
	ky := 2 * math.Pi / cfg.Grid.Ly

	if u, ok := m.Fields.Get("u"); ok {
		u.SetInterior(func(i, j, k int) float64 {
			return math.Sin(kx*g.X(i, grid.Face)) * math.Cos(ky*g.Y(j, grid.Center))
		})
	}
	if v, ok := m.Fields.Get("v"); ok {
		v.SetInterior(func(i, j, k int) float64 {
			return -math.Cos(kx*g.X(i, grid.Center)) * math.Sin(ky*g.Y(j, grid.Face))
		})
	}

	cx, cy, cz := cfg.Grid.Lx/2, cfg.Grid.Ly/2, cfg.Grid.Lz/2
	sigma := cfg.Grid.Lx / 10
	for _, name := range cfg.Tracers {
		c, ok := m.Fields.Get(name)
		if !ok {
			continue
		}
		c.SetInterior(func(i, j, k int) float64 {
			dx := g.X(i, grid.Center) - cx
			dy := g.Y(j, grid.Center) - cy
			dz := g.Z(k, grid.Center) - cz
			return math.Exp(-(dx*dx + dy*dy + dz*dz) / (2 * sigma * sigma))
		})

		// weak oscillating source at the blob center
		src, err := forcing.ContinuousWithParameter(func(x, y, z, t, rate float64) float64 {
			dx, dy, dz := x-cx, y-cy, z-cz
			return rate * math.Cos(t) * math.Exp(-(dx*dx+dy*dy+dz*dz)/(2*sigma*sigma))
		}, 0.1)
		if err != nil {
			return err
		}
		if err := m.AddForcing(name, src); err != nil {
			return err
		}
	}
	return nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	m, err := buildModel(cfg)
	if err != nil {
		return err
	}

	steps := int(cfg.Duration/cfg.Dt + 0.5)
	fmt.Printf("running %s on %s (%d steps, backend %s)\n",
		runLabel(cfg), m.Grid, steps, m.Backend().Name())

	stepper := sim.NewStepper()
	series := &storage.Series{}
	start := time.Now()

	for s := 0; s < steps; s++ {
		if err := stepper.Advance(m, cfg.Dt, false); err != nil {
			return err
		}
		if v, ok := m.Velocity(); ok {
			series.Append(m.Clock.Time(),
				diag.KineticEnergy(v, m.Grid),
				diag.MaxDivergence(v, m.Grid),
				diag.CFL(v, m.Grid, cfg.Dt))
		}
	}
	elapsed := time.Since(start)

	runID, err := st.Save(cfg, m.Backend().Name(), series)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)

	if series.Len() > 0 {
		last := series.Len() - 1
		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintln(w, "TIME\tENERGY\tMAX_DIV\tCFL")
		fmt.Fprintf(w, "%.4f\t%.6e\t%.3e\t%.3f\n",
			series.Times[last], series.Energy[last], series.Divergence[last], series.CFL[last])
		w.Flush()

		fmt.Println()
		fmt.Println(asciigraph.Plot(series.Energy,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("kinetic energy"),
		))
	}

	return nil
}

func runLabel(cfg *config.Config) string {
	if cfg.Preset != "" {
		return cfg.Preset
	}
	return "simulation"
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tGRID\tDT\tSTEPS\tBACKEND")
	for _, run := range runs {
		label := run.Preset
		if label == "" {
			label = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%dx%dx%d\t%.4g\t%d\t%s\n",
			run.ID,
			label,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Nx, run.Ny, run.Nz,
			run.Dt,
			run.Steps,
			run.Backend,
		)
	}
	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}
	series, err := st.LoadSeries(runID)
	if err != nil {
		return err
	}
	if series.Len() == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("grid: %dx%dx%d  dt: %.4g  chi: %.2f\n\n", meta.Nx, meta.Ny, meta.Nz, meta.Dt, meta.Chi)

	traces := []struct {
		name string
		data []float64
	}{
		{"kinetic energy", series.Energy},
		{"max divergence", series.Divergence},
		{"cfl", series.CFL},
	}
	for _, tr := range traces {
		fmt.Println(asciigraph.Plot(tr.data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption(tr.name),
		))
		fmt.Println()
	}
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := resolveConfig(cmd)
	if err != nil {
		return err
	}
	if frameRate < 1 {
		frameRate = 1
	}

	m, err := buildModel(cfg)
	if err != nil {
		return err
	}

	steps := int(cfg.Duration/cfg.Dt + 0.5)
	frames := make(chan tui.Frame)

	go func() {
		defer close(frames)
		stepper := sim.NewStepper()
		for s := 0; s < steps; s++ {
			if err := stepper.Advance(m, cfg.Dt, false); err != nil {
				frames <- tui.Frame{Err: err}
				return
			}
			if s%frameRate != 0 && s != steps-1 {
				continue
			}
			frame := tui.Frame{
				Iteration: m.Clock.Iteration(),
				Time:      m.Clock.Time(),
			}
			if v, ok := m.Velocity(); ok {
				frame.Energy = diag.KineticEnergy(v, m.Grid)
				frame.Divergence = diag.MaxDivergence(v, m.Grid)
				frame.CFL = diag.CFL(v, m.Grid, cfg.Dt)
			}
			frames <- frame
		}
		frames <- tui.Frame{Done: true}
	}()

	p := tea.NewProgram(tui.NewMonitor(frames, cfg.Duration))
	if _, err := p.Run(); err != nil {
		return err
	}
	return nil
}
