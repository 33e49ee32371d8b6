package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/rigid2d/internal/analysis"
	"github.com/san-kum/rigid2d/internal/config"
	"github.com/san-kum/rigid2d/internal/export"
	"github.com/san-kum/rigid2d/internal/metrics"
	"github.com/san-kum/rigid2d/internal/scene"
	"github.com/san-kum/rigid2d/internal/sim"
	"github.com/san-kum/rigid2d/internal/space"
	"github.com/san-kum/rigid2d/internal/storage"
	"github.com/san-kum/rigid2d/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	dt         float64
	duration   float64
	configFile string
	preset     string
	bodyIdx    int
	outFile    string
	iterations int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "rigid2d",
		Short: "2d rigid body simulation lab",
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".rigid2d", "data directory")

	runCmd := &cobra.Command{
		Use:   "run [scene]",
		Short: "run simulation",
		Args:  cobra.ExactArgs(1),
		RunE:  runSimulation,
	}
	runCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	runCmd.Flags().Float64Var(&duration, "time", config.DefaultDuration, "duration")
	runCmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "velocity solver iterations")
	runCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	runCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	scenesCmd := &cobra.Command{
		Use:   "scenes",
		Short: "list available scenes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range scene.List() {
				fmt.Println(name)
			}
		},
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a body's trajectory",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}
	plotCmd.Flags().IntVar(&bodyIdx, "body", 0, "body index to plot")

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export run metadata",
		Args:  cobra.ExactArgs(1),
		RunE:  exportRun,
	}

	exportJSONCmd := &cobra.Command{
		Use:   "export-json [run_id]",
		Short: "export run data to JSON",
		Args:  cobra.ExactArgs(1),
		RunE:  exportJSONRun,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [run_id]",
		Short: "export run data to CSV",
		Args:  cobra.ExactArgs(1),
		RunE:  exportCSVRun,
	}

	benchCmd := &cobra.Command{
		Use:   "bench [scene]",
		Short: "benchmark scene",
		Args:  cobra.ExactArgs(1),
		RunE:  benchScene,
	}

	liveCmd := &cobra.Command{
		Use:   "live [scene]",
		Short: "run simulation with live visualization",
		Args:  cobra.ExactArgs(1),
		RunE:  runLive,
	}
	liveCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	liveCmd.Flags().IntVar(&iterations, "iterations", config.DefaultIterations, "velocity solver iterations")
	liveCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	liveCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")

	presetsCmd := &cobra.Command{
		Use:   "presets [scene]",
		Short: "list available presets for a scene",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			presets := config.ListPresets(args[0])
			if len(presets) == 0 {
				fmt.Printf("no presets for scene: %s\n", args[0])
				return nil
			}
			fmt.Printf("presets for %s:\n", args[0])
			for _, p := range presets {
				fmt.Printf("  %s\n", p)
			}
			return nil
		},
	}

	analyzeCmd := &cobra.Command{
		Use:   "analyze [run_id]",
		Short: "frequency analysis of a body's motion",
		Args:  cobra.ExactArgs(1),
		RunE:  analyzeRun,
	}
	analyzeCmd.Flags().IntVar(&bodyIdx, "body", 0, "body index to analyze")

	snapshotCmd := &cobra.Command{
		Use:   "snapshot [run_id]",
		Short: "export a body's trajectory as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  snapshotRun,
	}
	snapshotCmd.Flags().IntVar(&bodyIdx, "body", 0, "body index to trace")
	snapshotCmd.Flags().StringVar(&outFile, "out", "trajectory.svg", "output file")

	renderCmd := &cobra.Command{
		Use:   "render [scene]",
		Short: "render a scene frame as SVG",
		Args:  cobra.ExactArgs(1),
		RunE:  renderScene,
	}
	renderCmd.Flags().Float64Var(&dt, "dt", config.DefaultDt, "timestep")
	renderCmd.Flags().Float64Var(&duration, "time", 0, "simulate this long before rendering")
	renderCmd.Flags().StringVar(&outFile, "out", "frame.svg", "output file")

	rootCmd.AddCommand(runCmd, listCmd, scenesCmd, plotCmd, exportCmd, exportJSONCmd, exportCSVCmd, benchCmd, liveCmd, presetsCmd, analyzeCmd, snapshotCmd, renderCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// resolveConfig merges preset, config file, and CLI flags for a scene.
// Flags that were set explicitly win over file values.
func resolveConfig(cmd *cobra.Command, sceneName string) (*config.Config, error) {
	cfg := config.DefaultConfig()
	cfg.Scene = sceneName

	if preset != "" {
		p := config.GetPreset(sceneName, preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets(sceneName))
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		loaded.Scene = sceneName
		cfg = loaded
	}

	if cmd.Flags().Changed("dt") {
		cfg.Dt = dt
	}
	if cmd.Flags().Changed("time") {
		cfg.Duration = duration
	}
	if cmd.Flags().Changed("iterations") {
		cfg.Solver.VelocityIterations = iterations
	}

	return cfg, nil
}

func runSimulation(cmd *cobra.Command, args []string) error {
	sceneName := args[0]

	cfg, err := resolveConfig(cmd, sceneName)
	if err != nil {
		return err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}

	sp, err := scene.New(sceneName, settings)
	if err != nil {
		return err
	}

	runner := sim.New()
	for _, m := range metrics.Default() {
		runner.AddMetric(m)
	}

	fmt.Printf("running %s scene...\n", sceneName)
	start := time.Now()

	result, err := runner.Run(context.Background(), sp, cfg.Dt, cfg.Duration)
	if err != nil {
		return err
	}

	elapsed := time.Since(start)

	runID, err := st.Save(sceneName, cfg.Dt, cfg.Duration, result)
	if err != nil {
		return err
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("run id: %s\n", runID)
	fmt.Printf("steps: %d\n", result.Steps)
	fmt.Println("\nmetrics:")
	for name, val := range result.Metrics {
		fmt.Printf("  %s: %.6f\n", name, val)
	}

	return nil
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
	fmt.Fprintln(w, "ID\tSCENE\tTIME\tDURATION\tDT\tBODIES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%.2fs\t%.4fs\t%d\n",
			run.ID,
			run.Scene,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Duration,
			run.Dt,
			run.Bodies,
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

	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}
	if bodyIdx < 0 || bodyIdx >= len(frames[0]) {
		return fmt.Errorf("body index %d out of range (run has %d bodies)", bodyIdx, len(frames[0]))
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("scene: %s\n", meta.Scene)
	fmt.Printf("samples: %d\n\n", len(frames))

	xData := make([]float64, len(frames))
	yData := make([]float64, len(frames))
	for i, frame := range frames {
		xData[i] = frame[bodyIdx].X
		yData[i] = frame[bodyIdx].Y
	}

	fmt.Println(asciigraph.Plot(yData,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("body %d: y vs time", bodyIdx)),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(xData,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("body %d: x vs time", bodyIdx)),
	))

	return nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(meta)
}

func loadResult(st *storage.Store, runID string) (*storage.RunMetadata, *sim.Result, error) {
	meta, err := st.Load(runID)
	if err != nil {
		return nil, nil, err
	}
	frames, times, err := st.LoadFrames(runID)
	if err != nil {
		return nil, nil, err
	}
	result := &sim.Result{
		Times:   times,
		Frames:  frames,
		Metrics: meta.Metrics,
		Steps:   len(times) - 1,
	}
	return meta, result, nil
}

func exportJSONRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, result, err := loadResult(st, args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta.Scene, meta.Dt, meta.Duration, result)
}

func exportCSVRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	_, result, err := loadResult(st, args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, result)
}

func benchScene(cmd *cobra.Command, args []string) error {
	sceneName := args[0]
	settings := space.DefaultSettings()

	durations := []float64{1.0, 5.0, 10.0}
	dts := []float64{1.0 / 240.0, 1.0 / 60.0, 1.0 / 30.0}

	fmt.Printf("benchmarking %s\n\n", sceneName)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "DURATION\tDT\tSTEPS\tTIME\tSTEPS/SEC")

	for _, dur := range durations {
		for _, stepDt := range dts {
			sp, err := scene.New(sceneName, settings)
			if err != nil {
				return err
			}

			runner := sim.New()
			start := time.Now()
			result, err := runner.Run(context.Background(), sp, stepDt, dur)
			if err != nil {
				return err
			}
			elapsed := time.Since(start)

			stepsPerSec := float64(result.Steps) / elapsed.Seconds()
			fmt.Fprintf(w, "%.1fs\t%.4fs\t%d\t%v\t%.0f\n",
				dur, stepDt, result.Steps, elapsed, stepsPerSec)
		}
	}

	return w.Flush()
}

func analyzeRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.Load(runID)
	if err != nil {
		return err
	}

	frames, _, err := st.LoadFrames(runID)
	if err != nil {
		return err
	}

	if len(frames) == 0 {
		return fmt.Errorf("no data")
	}
	if bodyIdx < 0 || bodyIdx >= len(frames[0]) {
		return fmt.Errorf("body index %d out of range (run has %d bodies)", bodyIdx, len(frames[0]))
	}

	fmt.Printf("frequency analysis: %s\n", meta.ID)
	fmt.Printf("scene: %s\n\n", meta.Scene)

	data := make([]float64, len(frames))
	for i := range frames {
		data[i] = frames[i][bodyIdx].Y
	}

	ps := analysis.PowerSpectrum(data)
	plotData := ps[:len(ps)/4]

	fmt.Println(asciigraph.Plot(plotData,
		asciigraph.Height(15),
		asciigraph.Width(80),
		asciigraph.Caption(fmt.Sprintf("power spectrum (body %d, y)", bodyIdx)),
	))
	fmt.Println()

	sampleRate := 1.0 / meta.Dt
	freq := analysis.DominantFrequency(ps, sampleRate, len(data))
	fmt.Printf("dominant frequency: %.3f hz\n", freq)
	if freq > 0 {
		fmt.Printf("period: %.3f s\n", 1.0/freq)
	}

	return nil
}

func snapshotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	frames, _, err := st.LoadFrames(args[0])
	if err != nil {
		return err
	}

	svg := export.TrajectoryToSVG(frames, bodyIdx, 800, 600, "#00ff00")
	if svg == "" {
		return fmt.Errorf("not enough data for body %d", bodyIdx)
	}

	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func renderScene(cmd *cobra.Command, args []string) error {
	sceneName := args[0]

	sp, err := scene.New(sceneName, space.DefaultSettings())
	if err != nil {
		return err
	}

	for t := 0.0; t < duration; t += dt {
		if err := sp.Step(dt); err != nil {
			return err
		}
	}

	canvas := viz.NewCanvas(120, 48)
	view := viz.NewView(canvas, mgl64.Vec2{0, 4}, 8)
	for _, b := range sp.Bodies() {
		view.DrawBody(b)
	}

	svg := export.CanvasToSVG(canvas, 4)
	if err := os.WriteFile(outFile, []byte(svg), 0644); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", outFile)
	return nil
}

func runLive(cmd *cobra.Command, args []string) error {
	sceneName := args[0]

	cfg, err := resolveConfig(cmd, sceneName)
	if err != nil {
		return err
	}
	settings, err := cfg.Settings()
	if err != nil {
		return err
	}

	factory := func() (*space.Space, error) {
		return scene.New(sceneName, settings)
	}

	m, err := viz.NewModel(factory, sceneName, cfg.Dt)
	if err != nil {
		return err
	}

	p := tea.NewProgram(m)
	final, err := p.Run()
	if err != nil {
		return err
	}
	if fm, ok := final.(viz.Model); ok && fm.Err() != nil {
		return fm.Err()
	}
	return nil
}
