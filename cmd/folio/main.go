package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/robby/folio/internal/catalog"
	"github.com/robby/folio/internal/config"
	"github.com/robby/folio/internal/domain"
	"github.com/robby/folio/internal/export"
	"github.com/robby/folio/internal/slideshow"
	"github.com/robby/folio/internal/store"
	"github.com/robby/folio/internal/tui"
	"github.com/spf13/cobra"
)

var (
	// CLI flags
	configFlag   string
	projectsFlag string
	startFlag    int
	noMouseFlag  bool

	// geometry flags
	widthFlag  float64
	heightFlag float64
	pngFlag    string
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "folio",
		Short: "Terminal slideshow for a project portfolio",
		Long: `folio shows a portfolio of projects as a slideshow in the terminal.

The current project sits in the centre with its neighbours scaled down on
either side. Navigate with the arrow keys or by clicking a neighbour.

Projects:
  1. --projects flag or FOLIO_PROJECTS_PATH: a YAML catalogue
  2. projects.yaml in the working directory
  3. The built-in demo portfolio`,
		RunE:          run,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().StringVar(&configFlag, "config", "", "Path to a YAML config file (overrides FOLIO_CONFIG_PATH)")
	rootCmd.Flags().StringVar(&projectsFlag, "projects", "", "Path to a projects YAML file")
	rootCmd.Flags().IntVar(&startFlag, "start", -1, "Index of the initially current project")
	rootCmd.Flags().BoolVar(&noMouseFlag, "no-mouse", false, "Disable mouse hover and click navigation")

	geometryCmd := &cobra.Command{
		Use:   "geometry",
		Short: "Print the five slot transforms for a viewport",
		Long: `geometry computes the slot layout for a viewport and slide size in
viewport units and prints one transform per slot offset. With --png the
layout is also drawn as a diagram.`,
		RunE: runGeometry,
	}
	geometryCmd.Flags().Float64Var(&widthFlag, "width", 1280, "Viewport width")
	geometryCmd.Flags().Float64Var(&heightFlag, "height", 800, "Viewport height")
	geometryCmd.Flags().StringVar(&pngFlag, "png", "", "Write a layout diagram to this PNG file")
	rootCmd.AddCommand(geometryCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	if projectsFlag != "" {
		cfg.Projects.Path = projectsFlag
	}
	if startFlag >= 0 {
		cfg.Start = startFlag
	}

	logger, closeLog, err := newLogger(cfg.Log)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	app := tui.NewAppModel(ctx, store.New(), catalog.Sources(cfg.Projects.Path), cfg, logger)

	opts := []tea.ProgramOption{tea.WithAltScreen(), tea.WithContext(ctx)}
	if !noMouseFlag {
		opts = append(opts, tea.WithMouseAllMotion())
	}

	// Run Bubble Tea program
	p := tea.NewProgram(app, opts...)
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("program error: %w", err)
	}
	return nil
}

// newLogger writes structured logs to the configured file. The terminal
// belongs to the UI, so without a path logs are discarded.
func newLogger(cfg config.LogConfig) (*slog.Logger, func(), error) {
	opts := &slog.HandlerOptions{Level: config.ParseLogLevel(cfg.Level)}
	if cfg.Path == "" {
		return slog.New(slog.NewTextHandler(io.Discard, opts)), func() {}, nil
	}

	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}
	return slog.New(slog.NewTextHandler(f, opts)), func() { _ = f.Close() }, nil
}

func runGeometry(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(configFlag)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	viewport := domain.Size{Width: widthFlag, Height: heightFlag}
	slide := domain.Size{
		Width:  widthFlag * cfg.Layout.SlideWidth,
		Height: heightFlag * cfg.Layout.SlideHeight,
	}

	layout := slideshow.NewLayout(cfg.Layout.Scale, cfg.Layout.Margin)
	layout.Update(viewport, slide)
	slots, ok := layout.Slots()
	if !ok {
		return fmt.Errorf("viewport %vx%v is too small", widthFlag, heightFlag)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "viewport %.0fx%.0f  slide %.1fx%.1f  scale %g\n", viewport.Width, viewport.Height, slide.Width, slide.Height, cfg.Layout.Scale)
	for off := slideshow.MinOffset; off <= slideshow.MaxOffset; off++ {
		t := slots.At(off)
		fmt.Fprintf(out, "  %+d  x=%9.2f  y=%9.2f  scale=%g\n", off, t.X, t.Y, t.Scale)
	}

	if pngFlag == "" {
		return nil
	}

	labels := map[int]string{}
	if projects, err := catalog.Load(catalog.Sources(cfg.Projects.Path)...); err == nil && len(projects) >= domain.MinProjects {
		ix := slideshow.IndicesAt(0, len(projects))
		labels[-1] = projects[ix.Prev].Name
		labels[0] = projects[ix.Current].Name
		labels[1] = projects[ix.Next].Name
	}

	err = export.WritePNG(pngFlag, slide, viewport, export.Options{
		Scale:  cfg.Layout.Scale,
		Margin: cfg.Layout.Margin,
		Labels: labels,
	})
	if err != nil {
		return err
	}
	fmt.Fprintf(out, "wrote %s\n", pngFlag)
	return nil
}
