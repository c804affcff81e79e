package main

import (
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/san-kum/mitosis/internal/config"
	"github.com/san-kum/mitosis/internal/gui"
	"github.com/san-kum/mitosis/internal/sim"
	"github.com/san-kum/mitosis/internal/viz"
	"github.com/spf13/cobra"
)

var (
	configFile string
	preset     string
	seed       int64
	logFile    string

	// tui / gui
	frameRate int
	theme     string
	winWidth  int
	winHeight int

	// run
	frames     int
	clickEvery int
	frameTime  float64
	runs       int
	plot       bool

	// config
	writePath string
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "mitosis",
		Short:        "breathing spheres that split when clicked",
		SilenceUsage: true,
		RunE:         runTUI,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.Int64Var(&seed, "seed", 1, "random seed")
	pf.StringVar(&logFile, "log", "", "write log to file")

	tuiCmd := &cobra.Command{
		Use:   "tui",
		Short: "run in the terminal",
		RunE:  runTUI,
	}
	for _, c := range []*cobra.Command{rootCmd, tuiCmd} {
		c.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
		c.Flags().StringVar(&theme, "theme", "", fmt.Sprintf("color theme %v", viz.ThemeNames()))
	}

	guiCmd := &cobra.Command{
		Use:   "gui",
		Short: "run in a window",
		RunE:  runGUI,
	}
	guiCmd.Flags().IntVar(&frameRate, "fps", config.DefaultFPS, "frame rate")
	guiCmd.Flags().IntVar(&winWidth, "width", 1280, "window width")
	guiCmd.Flags().IntVar(&winHeight, "height", 720, "window height")

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "run headless with scripted clicks",
		RunE:  runHeadless,
	}
	runCmd.Flags().IntVar(&frames, "frames", 1200, "frames to simulate")
	runCmd.Flags().IntVar(&clickEvery, "click-every", 30, "click a random sphere every N frames (0 disables)")
	runCmd.Flags().Float64Var(&frameTime, "frame-time", config.DefaultTimestep, "seconds of wall clock per frame")
	runCmd.Flags().IntVar(&runs, "runs", 1, "independent runs with consecutive seeds")
	runCmd.Flags().BoolVar(&plot, "plot", true, "plot population and energy")

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "print the effective configuration",
		RunE:  printConfig,
	}
	configCmd.Flags().StringVar(&writePath, "write", "", "also save it to this path")

	rootCmd.AddCommand(tuiCmd, guiCmd, runCmd, presetsCmd, configCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadConfig resolves preset, then config file, then flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()
	if preset != "" {
		cfg = config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		var err error
		cfg, err = config.LoadOnto(configFile, cfg)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
	}

	if cmd.Flags().Changed("seed") {
		cfg.Seed = seed
	}
	if f := cmd.Flags().Lookup("fps"); f != nil && f.Changed {
		cfg.View.FPS = frameRate
	}
	if f := cmd.Flags().Lookup("theme"); f != nil && f.Changed {
		cfg.View.Theme = theme
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// openLog routes the standard logger to --log when given. Without it the
// terminal UI discards logs, since stdout belongs to the UI, and the other
// commands log to stderr.
func openLog(quiet bool) (*log.Logger, func(), error) {
	if logFile != "" {
		f, err := tea.LogToFile(logFile, "mitosis")
		if err != nil {
			return nil, nil, err
		}
		return log.Default(), func() { f.Close() }, nil
	}
	if quiet {
		return log.New(io.Discard, "", 0), func() {}, nil
	}
	return log.New(os.Stderr, "mitosis: ", log.LstdFlags), func() {}, nil
}

func runTUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLog(true)
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := sim.New(cfg)
	if err != nil {
		return err
	}
	logger.Printf("tui: seed %d, %d fps", cfg.Seed, cfg.View.FPS)
	return viz.Run(s, viz.Options{
		Logger: logger,
		FPS:    cfg.View.FPS,
		Theme:  cfg.View.Theme,
	})
}

func runGUI(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	logger, closeLog, err := openLog(false)
	if err != nil {
		return err
	}
	defer closeLog()

	s, err := sim.New(cfg)
	if err != nil {
		return err
	}
	logger.Printf("gui: seed %d, %dx%d", cfg.Seed, winWidth, winHeight)
	return gui.Run(s, gui.Options{
		Logger: logger,
		Width:  winWidth,
		Height: winHeight,
		FPS:    cfg.View.FPS,
	})
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tAMPLITUDE\tFREQUENCY\tRATIO\tMIN SCALE\tMAX OBJECTS\tLIMIT")
	for _, name := range config.ListPresets() {
		c := config.GetPreset(name)
		maxObj := "-"
		if c.Split.MaxObjects > 0 {
			maxObj = fmt.Sprintf("%d", c.Split.MaxObjects)
		}
		fmt.Fprintf(w, "%s\t%.3f\t%.2f\t%.2f\t%.3f\t%s\t%.1f\n",
			name, c.Breathing.Amplitude, c.Breathing.Frequency, c.Split.Ratio,
			c.Split.MinScale, maxObj, c.Boundary.Limit)
	}
	return w.Flush()
}

func printConfig(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	data, err := cfg.Marshal()
	if err != nil {
		return err
	}
	fmt.Print(string(data))

	if writePath != "" {
		if err := config.Save(writePath, cfg); err != nil {
			return err
		}
		fmt.Fprintf(os.Stderr, "saved to %s\n", writePath)
	}
	return nil
}
