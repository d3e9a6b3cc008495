package main

import (
	"context"
	"fmt"
	"log"
	"math"
	"os"
	"os/signal"
	"sort"
	"strconv"
	"strings"
	"syscall"
	"text/tabwriter"

	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/motionlab/internal/analysis"
	"github.com/san-kum/motionlab/internal/config"
	"github.com/san-kum/motionlab/internal/demos"
	"github.com/san-kum/motionlab/internal/export"
	"github.com/san-kum/motionlab/internal/kinematics"
	"github.com/san-kum/motionlab/internal/sim"
	"github.com/san-kum/motionlab/internal/viz"
	"github.com/san-kum/motionlab/internal/web"
	"github.com/spf13/cobra"
)

var (
	configFile string
	envFile    string
	preset     string
	dt         float64
	maxTicks   int
	frameRate  int
	wheelMode  string
	sets       []string
	format     string
	listen     string
	// sweep range
	sweepFrom  float64
	sweepTo    float64
	sweepSteps int
	// snapshot
	snapAt    float64
	snapScale float64
	snapTrace bool
)

var registry = demos.NewRegistry()

// main registers the commands and runs the root command, which opens the
// interactive menu when no subcommand is given. It exits with status 1 on error.
func main() {
	rootCmd := &cobra.Command{
		Use:          "motionlab",
		Short:        "interactive kinematics demonstrations",
		SilenceUsage: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(cmd, "")
			if err != nil {
				return err
			}
			items := make([]viz.MenuItem, 0, len(registry.Names()))
			for _, name := range registry.Names() {
				items = append(items, viz.MenuItem{Name: name, Description: registry.Describe(name)})
			}
			build := func(name string) (*sim.Controller, error) {
				return cfg.NewController(registry, name)
			}
			return viz.RunMenu(items, build, cfg.FPS)
		},
	}

	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&envFile, "env", ".env", "dotenv file with MOTIONLAB_* overrides")
	rootCmd.PersistentFlags().Float64Var(&dt, "dt", config.DefaultTimestep, "timestep in seconds per tick")
	rootCmd.PersistentFlags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate of live views")
	rootCmd.PersistentFlags().StringVar(&wheelMode, "wheel-mode", config.DefaultWheelMode, "accelerated wheel rotation: incremental or closed")

	runCmd := &cobra.Command{
		Use:   "run [demo]",
		Short: "run a demo headlessly and print its trace",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runDemo,
	}
	addRunFlags(runCmd)
	runCmd.Flags().StringVar(&format, "format", "summary", "output: summary, csv or json")

	liveCmd := &cobra.Command{
		Use:   "live [demo]",
		Short: "open one demo in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset parameters")
	liveCmd.Flags().StringArrayVar(&sets, "set", nil, "parameter override name=value (repeatable)")

	plotCmd := &cobra.Command{
		Use:   "plot [demo]",
		Short: "plot position, velocity and rotation against time",
		Args:  cobra.ExactArgs(1),
		RunE:  plotDemo,
	}
	addRunFlags(plotCmd)

	analyzeCmd := &cobra.Command{
		Use:   "analyze [demo]",
		Short: "frequency, period and completion analysis",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeDemo,
	}
	addRunFlags(analyzeCmd)

	sweepCmd := &cobra.Command{
		Use:   "sweep [demo] [param]",
		Short: "run a demo once per parameter value",
		Args:  cobra.ExactArgs(2),
		RunE:  sweepDemo,
	}
	addRunFlags(sweepCmd)
	sweepCmd.Flags().Float64Var(&sweepFrom, "from", 1, "first parameter value")
	sweepCmd.Flags().Float64Var(&sweepTo, "to", 10, "last parameter value")
	sweepCmd.Flags().IntVar(&sweepSteps, "steps", 10, "number of values")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [demo]",
		Short: "render the scene at a given time as SVG on stdout",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshotDemo,
	}
	addRunFlags(snapshotCmd)
	snapshotCmd.Flags().Float64Var(&snapAt, "at", 1, "simulated time of the snapshot in seconds")
	snapshotCmd.Flags().Float64Var(&snapScale, "scale", 4, "pixels per braille dot")
	snapshotCmd.Flags().BoolVar(&snapTrace, "trace", false, "draw position against time instead of the scene")

	presetsCmd := &cobra.Command{
		Use:   "presets [demo]",
		Short: "list available presets for a demo",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name, err := registry.Resolve(args[0])
			if err != nil {
				return err
			}
			presets := config.ListPresets(name)
			if len(presets) == 0 {
				fmt.Printf("no presets for demo: %s\n", name)
				return nil
			}
			sort.Strings(presets)
			fmt.Printf("presets for %s:\n", name)
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	demosCmd := &cobra.Command{
		Use:   "demos",
		Short: "list demos and their default parameters",
		RunE:  listDemos,
	}

	serveCmd := &cobra.Command{
		Use:   "serve",
		Short: "serve the demos over HTTP and websocket",
		RunE:  serve,
	}
	serveCmd.Flags().StringVar(&listen, "listen", config.DefaultListen, "listen address")
	serveCmd.Flags().IntVar(&maxTicks, "ticks", config.DefaultMaxTicks, "tick budget of trace requests")

	rootCmd.AddCommand(runCmd, liveCmd, plotCmd, analyzeCmd, sweepCmd, snapshotCmd, presetsCmd, demosCmd, serveCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func addRunFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&preset, "preset", "", "use preset parameters")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "parameter override name=value (repeatable)")
	cmd.Flags().IntVar(&maxTicks, "ticks", config.DefaultMaxTicks, "tick budget")
}

// loadConfig layers defaults, the config file, the environment, the preset and
// finally any flags the user set explicitly.
func loadConfig(cmd *cobra.Command, demo string) (*config.Config, error) {
	if err := config.LoadDotEnv(envFile); err != nil {
		return nil, err
	}

	cfg := config.DefaultConfig()
	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}
	if err := cfg.ApplyEnv(); err != nil {
		return nil, fmt.Errorf("environment: %w", err)
	}

	if preset != "" && demo != "" {
		if !cfg.ApplyPreset(demo, preset) {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(demo))
		}
	}

	flags := cmd.Flags()
	if flags.Changed("dt") {
		cfg.Timestep = dt
	}
	if flags.Changed("fps") {
		cfg.FPS = frameRate
	}
	if flags.Changed("wheel-mode") {
		cfg.WheelMode = wheelMode
	}
	if flags.Changed("ticks") {
		cfg.MaxTicks = maxTicks
	}
	if flags.Changed("listen") {
		cfg.Listen = listen
	}
	return cfg, cfg.Validate()
}

// parseSets turns name=value pairs into a parameter map.
func parseSets(pairs []string) (map[string]float64, error) {
	out := make(map[string]float64, len(pairs))
	for _, pair := range pairs {
		name, raw, ok := strings.Cut(pair, "=")
		if !ok {
			return nil, fmt.Errorf("invalid --set %q: want name=value", pair)
		}
		switch raw {
		case "on", "true":
			raw = "1"
		case "off", "false":
			raw = "0"
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid --set %q: %w", pair, err)
		}
		out[strings.TrimSpace(name)] = v
	}
	return out, nil
}

// setup resolves a demo and builds its controller with every override applied.
// An empty demo name falls back to the configured default demo.
func setup(cmd *cobra.Command, demo string) (*config.Config, *sim.Controller, error) {
	if demo == "" {
		base, err := loadConfig(cmd, "")
		if err != nil {
			return nil, nil, err
		}
		demo = base.Demo
	}
	name, err := registry.Resolve(demo)
	if err != nil {
		return nil, nil, err
	}
	cfg, err := loadConfig(cmd, name)
	if err != nil {
		return nil, nil, err
	}
	ctrl, err := cfg.NewController(registry, name)
	if err != nil {
		return nil, nil, err
	}
	overrides, err := parseSets(sets)
	if err != nil {
		return nil, nil, err
	}
	names := make([]string, 0, len(overrides))
	for name := range overrides {
		names = append(names, name)
	}
	sort.Strings(names)
	for _, name := range names {
		if err := ctrl.SetParameter(name, overrides[name]); err != nil {
			return nil, nil, err
		}
	}
	return cfg, ctrl, nil
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func runTrace(cmd *cobra.Command, demo string) (*config.Config, *sim.Trace, error) {
	cfg, ctrl, err := setup(cmd, demo)
	if err != nil {
		return nil, nil, err
	}
	trace, err := sim.Run(cmd.Context(), ctrl, cfg.MaxTicks)
	if err != nil {
		return nil, nil, err
	}
	return cfg, trace, nil
}

func runDemo(cmd *cobra.Command, args []string) error {
	_, trace, err := runTrace(cmd, firstArg(args))
	if err != nil {
		return err
	}

	switch format {
	case "csv":
		return export.WriteCSV(os.Stdout, trace)
	case "json":
		return export.WriteJSON(os.Stdout, trace)
	case "summary":
	default:
		return fmt.Errorf("unknown format %q (want summary, csv or json)", format)
	}

	last := trace.Samples[len(trace.Samples)-1]
	fmt.Printf("demo: %s\n", trace.Model)
	fmt.Printf("timestep: %g s\n", trace.Timestep)
	fmt.Printf("ticks: %d\n", last.Tick)
	fmt.Printf("elapsed: %.3f s\n", last.Time)
	fmt.Println("\nparameters:")
	printParams(trace.Params)

	if trace.Result == nil {
		fmt.Printf("\nnot completed: position %.3f, velocity %.3f\n", last.Pose.Position, last.Pose.Velocity)
		return nil
	}
	r := trace.Result
	fmt.Println("\nresult:")
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "  time\t%.3f s\n", r.Elapsed)
	fmt.Fprintf(w, "  distance\t%.3f m\n", r.FinalPosition)
	fmt.Fprintf(w, "  final velocity\t%.3f m/s\n", r.Velocity)
	fmt.Fprintf(w, "  max position\t%.3f m\n", r.MaxPosition)
	fmt.Fprintf(w, "  wheel turns\t%.3f\n", r.WheelTurns)
	w.Flush()
	fmt.Println("\nformulas:")
	for _, f := range viz.Formulas(r.Model) {
		fmt.Printf("  %s\n", f)
	}
	return nil
}

func printParams(params map[string]float64) {
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	sort.Strings(names)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%g\n", name, params[name])
	}
	w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, ctrl, err := setup(cmd, firstArg(args))
	if err != nil {
		return err
	}
	return viz.RunLive(ctrl, cfg.FPS)
}

func plotDemo(cmd *cobra.Command, args []string) error {
	_, trace, err := runTrace(cmd, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("demo: %s\n", trace.Model)
	fmt.Printf("samples: %d\n\n", len(trace.Samples))

	series := []struct {
		caption string
		data    []float64
	}{
		{"position vs time", trace.Positions()},
		{"velocity vs time", trace.Velocities()},
		{"rotation vs time", trace.Rotations()},
	}
	if trace.Model == demos.PendulumName {
		series[0] = series[2]
		series[0].caption = "theta (rad) vs time"
		series = series[:2]
	}

	for _, s := range series {
		graph := asciigraph.Plot(s.data,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption(s.caption),
		)
		fmt.Println(graph)
		fmt.Println()
	}
	return nil
}

func analyzeDemo(cmd *cobra.Command, args []string) error {
	_, trace, err := runTrace(cmd, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("analysis: %s\n", trace.Model)
	fmt.Printf("samples: %d\n\n", len(trace.Samples))
	times := trace.Times()

	if trace.Model == demos.PendulumName {
		theta := trace.Rotations()
		period, frequency, omega := kinematics.PendulumFigures(trace.Params["length"])
		peaks := analysis.FindPeaks(times, theta)

		w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
		fmt.Fprintf(w, "\tclosed form\tmeasured\n")
		fmt.Fprintf(w, "period\t%.4f s\t%.4f s\n", period, analysis.EstimatePeriod(peaks))
		fmt.Fprintf(w, "frequency\t%.4f Hz\t%.4f Hz\n", frequency, analysis.DominantFrequency(theta, trace.Timestep))
		fmt.Fprintf(w, "angular frequency\t%.4f rad/s\t\n", omega)
		fmt.Fprintf(w, "peaks\t\t%d\n", len(peaks))
		fmt.Fprintf(w, "envelope decaying\t\t%v\n", analysis.Decaying(peaks, 1e-9))
		w.Flush()

		if spectrum := analysis.PowerSpectrum(theta); len(spectrum) > 1 {
			fmt.Println()
			fmt.Println(asciigraph.Plot(spectrum[:min(64, len(spectrum))],
				asciigraph.Height(10),
				asciigraph.Width(70),
				asciigraph.Caption("power spectrum (theta)"),
			))
		}
		fmt.Println("\nphase portrait (theta vs bob velocity):")
		fmt.Print(analysis.NewPhasePortrait("theta", theta, "v", trace.Velocities()).ToASCII(60, 18))
		return nil
	}

	v0, a := trace.Params["velocity"], 0.0
	if trace.Model == demos.AcceleratedName {
		v0, a = trace.Params["initial_velocity"], trace.Params["acceleration"]
	}
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	predicted, ok := kinematics.CrossingTime(v0, a, kinematics.TrackLength)
	if ok {
		fmt.Fprintf(w, "predicted finish\t%.4f s\n", predicted)
	} else {
		fmt.Fprintf(w, "predicted finish\tnever\n")
	}
	if trace.Result != nil {
		fmt.Fprintf(w, "simulated finish\t%.4f s\n", trace.Result.Elapsed)
		if ok {
			fmt.Fprintf(w, "difference\t%.4f s (timestep %g s)\n", trace.Result.Elapsed-predicted, trace.Timestep)
		}
	} else {
		fmt.Fprintf(w, "simulated finish\tnot reached in %d ticks\n", len(trace.Samples)-1)
	}
	if crossings := analysis.Crossings(times, trace.Positions(), kinematics.TrackLength/2); len(crossings) > 0 {
		fmt.Fprintf(w, "halfway\t%.4f s\n", crossings[0])
	}
	w.Flush()

	fmt.Println("\nphase portrait (position vs velocity):")
	fmt.Print(analysis.NewPhasePortrait("s", trace.Positions(), "v", trace.Velocities()).ToASCII(60, 18))
	return nil
}

func sweepDemo(cmd *cobra.Command, args []string) error {
	name, err := registry.Resolve(args[0])
	if err != nil {
		return err
	}
	param := args[1]
	cfg, err := loadConfig(cmd, name)
	if err != nil {
		return err
	}
	overrides, err := parseSets(sets)
	if err != nil {
		return err
	}

	build := func() (*sim.Controller, error) {
		ctrl, err := cfg.NewController(registry, name)
		if err != nil {
			return nil, err
		}
		return ctrl, demos.Apply(ctrl.Model(), overrides)
	}

	log.Printf("[SWEEP] %s %s from %g to %g in %d steps", name, param, sweepFrom, sweepTo, sweepSteps)
	points, err := analysis.Sweep(cmd.Context(), build, param, sweepFrom, sweepTo, sweepSteps, cfg.MaxTicks)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintf(w, "%s\tcompleted\telapsed\tmax position\tperiod\n", param)
	var elapsed []float64
	for _, p := range points {
		if p.Err != nil {
			log.Printf("[SWEEP] skipped %s=%g: %v", param, p.Value, p.Err)
			fmt.Fprintf(w, "%g\trejected\t\t\t\n", p.Value)
			continue
		}
		fmt.Fprintf(w, "%g\t%v\t%.3f\t%.3f\t%.3f\n", p.Value, p.Completed, p.Elapsed, p.MaxPosition, p.Period)
		if name == demos.PendulumName {
			elapsed = append(elapsed, p.Period)
		} else {
			elapsed = append(elapsed, p.Elapsed)
		}
	}
	w.Flush()

	if len(elapsed) > 1 {
		caption := "elapsed (s) per value"
		if name == demos.PendulumName {
			caption = "period (s) per value"
		}
		fmt.Println()
		fmt.Println(asciigraph.Plot(elapsed, asciigraph.Height(10), asciigraph.Width(60), asciigraph.Caption(caption)))
	}
	return nil
}

func snapshotDemo(cmd *cobra.Command, args []string) error {
	if snapAt < 0 || math.IsNaN(snapAt) {
		return fmt.Errorf("--at must be non-negative, got %g", snapAt)
	}
	cfg, ctrl, err := setup(cmd, args[0])
	if err != nil {
		return err
	}

	if snapTrace {
		trace, err := sim.Run(cmd.Context(), ctrl, cfg.MaxTicks)
		if err != nil {
			return err
		}
		points := make([]analysis.Point, 0, len(trace.Samples))
		for _, s := range trace.Samples {
			if s.Time > snapAt {
				break
			}
			points = append(points, analysis.Point{X: s.Time, Y: s.Pose.Position})
		}
		fmt.Print(export.PointsToSVG(points, 800, 300, "#00ff88"))
		return nil
	}

	ctrl.Start()
	for ctrl.Ticks() < cfg.MaxTicks && ctrl.Phase() == sim.PhaseRunning && ctrl.Clock().Elapsed+ctrl.Timestep()/2 < snapAt {
		ctrl.Tick()
	}
	frame := ctrl.Snapshot()
	canvas := viz.NewCanvas(60, 20)
	viz.DrawFrame(canvas, frame, viz.Target(frame.Pose.Position))
	fmt.Print(export.CanvasToSVG(canvas, snapScale))
	return nil
}

func listDemos(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}
	for _, name := range registry.Names() {
		m, err := cfg.NewModel(registry, name)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s\n", name, registry.Describe(name))
		printParams(m.GetParams())
	}
	return nil
}

func serve(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd, "")
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	build := func(name string) (*sim.Controller, error) {
		return cfg.NewController(registry, name)
	}
	return web.NewServer(registry, build, cfg.FPS, cfg.MaxTicks).ListenAndServe(ctx, cfg.Listen)
}
