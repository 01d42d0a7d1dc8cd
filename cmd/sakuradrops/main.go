package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/phanxgames/drops"
	"github.com/phanxgames/drops/canvas"
	"github.com/phanxgames/drops/internal/config"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	num        int
	seed       uint64
	testMode   bool
	verbose    bool
	debug      bool

	watch       bool
	showFPS     bool
	snapshotDir string
	scriptFile  string

	frames int
	tps    int
	out    string

	plot bool
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "sakuradrops",
		Short: "packed, glowing, spinning rings that ripple",
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			if verbose {
				drops.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelDebug})))
			}
		},
		RunE: runWindow,
	}
	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.IntVar(&num, "num", 0, "number of drops")
	pf.Uint64Var(&seed, "seed", 0, "random seed (0 picks one from the clock)")
	pf.BoolVar(&testMode, "test-mode", false, "a single centered drop with every decoration")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
	pf.BoolVar(&debug, "debug", false, "print redraw stats to stderr")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "open the drops in a window",
		Args:  cobra.NoArgs,
		RunE:  runWindow,
	}
	runCmd.Flags().BoolVar(&watch, "watch", false, "rebuild the scene when the config file changes")
	runCmd.Flags().BoolVar(&showFPS, "fps", false, "show FPS and TPS")
	runCmd.Flags().StringVar(&snapshotDir, "snapshots", "snapshots", "snapshot directory")
	runCmd.Flags().StringVar(&scriptFile, "script", "", "input script to play (yaml or json)")

	renderCmd := &cobra.Command{
		Use:   "render",
		Short: "render frames headlessly and save a PNG",
		Args:  cobra.NoArgs,
		RunE:  runRender,
	}
	renderCmd.Flags().IntVar(&frames, "frames", 120, "frames to simulate")
	renderCmd.Flags().IntVar(&tps, "tps", 60, "simulated ticks per second")
	renderCmd.Flags().StringVarP(&out, "out", "o", "drops.png", "output PNG path")
	renderCmd.Flags().StringVar(&snapshotDir, "snapshots", "snapshots", "snapshot directory")
	renderCmd.Flags().StringVar(&scriptFile, "script", "", "input script to play (yaml or json)")

	packCmd := &cobra.Command{
		Use:   "pack",
		Short: "run the circle packer and report overlap per pass",
		Args:  cobra.NoArgs,
		RunE:  runPack,
	}
	packCmd.Flags().BoolVar(&plot, "plot", false, "plot max overlap per pass")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		Args:  cobra.NoArgs,
		RunE:  listPresets,
	}

	rootCmd.AddCommand(runCmd, renderCmd, packCmd, presetsCmd)
	return rootCmd
}

// loadConfig resolves the preset and config file, then applies flags the
// user set explicitly. Reloads go through here too so overrides survive.
func loadConfig(cmd *cobra.Command) (drops.Config, error) {
	cfg, err := config.Resolve(preset, configFile)
	if err != nil {
		return drops.Config{}, err
	}
	flags := cmd.Flags()
	if flags.Changed("num") {
		cfg.Num = num
	}
	if flags.Changed("seed") {
		cfg.Seed = seed
	}
	if flags.Changed("test-mode") {
		cfg.TestMode = testMode
	}
	cfg.Normalize()
	return cfg, nil
}

func loadScript() (*drops.Script, error) {
	if scriptFile == "" {
		return nil, nil
	}
	data, err := os.ReadFile(scriptFile)
	if err != nil {
		return nil, fmt.Errorf("read script: %w", err)
	}
	return drops.LoadScript(data)
}

func runWindow(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	script, err := loadScript()
	if err != nil {
		return err
	}

	w := canvas.NewWindow(cfg)
	w.ShowFPS = showFPS
	w.SnapshotDir = snapshotDir
	w.Manager().SetDebugMode(debug)
	if script != nil {
		w.Manager().SetScript(script)
	}

	if watch {
		if configFile == "" {
			return fmt.Errorf("--watch needs --config")
		}
		ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
		defer cancel()
		go func() {
			err := config.Watch(ctx, configFile, func(_ drops.Config, err error) {
				if err == nil {
					var next drops.Config
					if next, err = loadConfig(cmd); err == nil {
						w.Reload(next)
						return
					}
				}
				fmt.Fprintf(os.Stderr, "reload: %v\n", err)
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "watch: %v\n", err)
			}
		}()
	}

	fmt.Println(summary("run", cfg))
	return canvas.Run(w)
}

func runRender(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	script, err := loadScript()
	if err != nil {
		return err
	}
	if tps <= 0 {
		return fmt.Errorf("--tps must be positive")
	}

	img := canvas.NewImageFor(cfg)
	defer img.Close()
	sched := drops.NewScheduler()
	m := drops.NewManager(cfg, img, sched)
	m.SetDebugMode(debug)
	var snapErr error
	m.SnapshotRequested.Add(func(label string) {
		path, err := img.Snapshot(snapshotDir, label)
		if err != nil {
			snapErr = err
			return
		}
		fmt.Println(dimStyle.Render("snapshot " + path))
	})
	if script != nil {
		m.SetScript(script)
	}

	dt := time.Second / time.Duration(tps)
	limit := frames
	if script != nil {
		limit = max(frames, 100*tps)
	}
	n := 0
	for ; n < limit; n++ {
		if n >= frames && (script == nil || script.Done()) {
			break
		}
		sched.Update(dt)
		m.Update()
	}
	if snapErr != nil {
		return snapErr
	}
	if err := img.Err(); err != nil {
		return err
	}
	if err := img.SavePNG(out); err != nil {
		return err
	}

	fmt.Println(summary("render", cfg))
	fmt.Println(statLine("frames", fmt.Sprintf("%d (%v)", n, time.Duration(n)*dt)))
	fmt.Println(statLine("redraws", fmt.Sprint(m.Redraws())))
	fmt.Println(statLine("awake", fmt.Sprint(m.AwakeCount())))
	fmt.Println(statLine("output", out))
	return nil
}

func runPack(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg.TestMode {
		return fmt.Errorf("test mode has no packer")
	}

	img := canvas.NewImageFor(cfg)
	defer img.Close()
	m := drops.NewManager(cfg, img, drops.NewScheduler())
	p := m.Packer()

	overlaps := []float64{p.MaxOverlap()}
	p.DrawingSocket.Add(func(int) {
		overlaps = append(overlaps, p.MaxOverlap())
	})
	for !p.IsSettled() {
		m.Update()
	}

	fmt.Println(summary("pack", cfg))
	fmt.Println(statLine("passes", fmt.Sprint(p.Pass())))
	fmt.Println(statLine("initial", fmt.Sprintf("%.3f", overlaps[0])))
	fmt.Println(statLine("final", fmt.Sprintf("%.3f", p.MaxOverlap())))

	if plot && len(overlaps) > 1 {
		graph := asciigraph.Plot(overlaps,
			asciigraph.Height(10),
			asciigraph.Width(70),
			asciigraph.Caption("max overlap per pass (px)"),
		)
		fmt.Println()
		fmt.Println(graphStyle.Render(graph))
	}
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	fmt.Println(headerStyle.Render("presets"))
	for _, name := range config.ListPresets() {
		cfg, _ := config.Preset(name)
		detail := fmt.Sprintf("num=%d passes=%d spin=%v glow=%v neighbors=%d",
			cfg.Num, cfg.CirclePacker.Passes, cfg.BaseNode.SpinSpeed, cfg.BaseNode.GlowSpeed, cfg.Ripple.MaxNeighbors)
		if cfg.TestMode {
			detail += " test-mode"
		}
		fmt.Println(labelStyle.Render(name) + valueStyle.Render(detail))
	}
	return nil
}
