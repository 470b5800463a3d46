// main.go
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/gdamore/tcell/v2"
	"github.com/rs/zerolog"

	"hologlobe/v2/globe"
	"hologlobe/v2/term"
	"hologlobe/v2/window"
)

func main() {
	backend := flag.String("backend", "term", "Renderer backend: term or window")
	configPath := flag.String("config", "", "YAML config file (optional)")
	points := flag.Int("points", 0, "Number of sphere points (overrides config)")
	radius := flag.Float64("radius", 0, "Sphere radius (overrides config)")
	fps := flag.Int("fps", 0, "Frames per second (overrides config)")
	hud := flag.Bool("hud", false, "Show the status line in the terminal backend")
	style := flag.Int("style", -1, "Terminal glyph style: -1 for half blocks, 0.. for shaded ramps")
	logPath := flag.String("log", "", "Write debug logs to this file")
	dump := flag.Bool("dump-config", false, "Print the effective config as YAML and exit")
	bench := flag.Int("bench", 0, "Render N frames headless, print timing and exit")
	winW := flag.Int("width", 1280, "Window width (window backend)")
	winH := flag.Int("height", 800, "Window height (window backend)")
	flag.Parse()

	cfg, err := loadConfig(*configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		os.Exit(1)
	}
	applyOverrides(&cfg, *points, *radius, *fps)
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Invalid config: %v\n", err)
		os.Exit(1)
	}

	if *dump {
		out, err := cfg.Marshal()
		if err != nil {
			fmt.Fprintf(os.Stderr, "YAML encoding failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Print(string(out))
		return
	}

	if *bench > 0 {
		info, err := globe.BenchmarkFrames(cfg, *bench)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Benchmark failed: %v\n", err)
			os.Exit(1)
		}
		fmt.Printf("POINTS: %d\nEDGES: %d\nFRAMES: %d\nATTACH: %s\nPER FRAME: %s\nMAX FPS: %.0f\nDRAW CALLS: %d\n",
			info.Points, info.Edges, info.Frames, info.AttachTime, info.PerFrame, info.MaxFPS, info.DrawCalls)
		return
	}

	err = run(cfg, runOptions{
		backend: *backend,
		logPath: *logPath,
		term:    term.Options{HUD: *hud, Style: *style},
		width:   *winW,
		height:  *winH,
	})
	if errors.Is(err, errUnknownBackend) {
		fmt.Fprintf(os.Stderr, "%v. Supported: term, window\n", err)
		flag.Usage()
		os.Exit(1)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "%v\n", err)
		os.Exit(1)
	}
}

var errUnknownBackend = errors.New("unknown backend")

type runOptions struct {
	backend       string
	logPath       string
	term          term.Options
	width, height int
}

// run owns the log file and signal context, so every deferred cleanup has
// happened by the time main decides on an exit code.
func run(cfg globe.Config, o runOptions) error {
	if o.backend != "term" && o.backend != "window" {
		return fmt.Errorf("%w %q", errUnknownBackend, o.backend)
	}

	logger, closeLog, err := setupLogging(o.logPath)
	if err != nil {
		return fmt.Errorf("open log file %s: %w", o.logPath, err)
	}
	defer closeLog()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	logger.Info().Str("backend", o.backend).Int("points", cfg.Points).Float64("radius", cfg.Radius).Msg("starting")

	if o.backend == "window" {
		err = window.Run(ctx, cfg, logger, o.width, o.height)
	} else {
		err = runGraphics(ctx, cfg, logger, o.term)
	}
	if err != nil {
		logger.Error().Err(err).Msg("renderer failed")
		return fmt.Errorf("graphics error: %w", err)
	}
	return nil
}

// loadConfig returns the defaults when path is empty.
func loadConfig(path string) (globe.Config, error) {
	if path == "" {
		return globe.DefaultConfig(), nil
	}
	return globe.LoadConfig(path)
}

// applyOverrides copies non-zero flag values over the config.
func applyOverrides(cfg *globe.Config, points int, radius float64, fps int) {
	if points > 0 {
		cfg.Points = points
	}
	if radius > 0 {
		cfg.Radius = radius
	}
	if fps > 0 {
		cfg.FPS = fps
	}
}

// setupLogging routes zerolog to path, or discards everything when path is
// empty: the terminal backend owns stdout and stderr while it runs.
func setupLogging(path string) (zerolog.Logger, func(), error) {
	zerolog.TimeFieldFormat = time.RFC3339
	if path == "" {
		return zerolog.New(io.Discard), func() {}, nil
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return zerolog.Nop(), nil, err
		}
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return zerolog.Nop(), nil, err
	}
	w := zerolog.ConsoleWriter{Out: f, NoColor: true, TimeFormat: time.Kitchen}
	logger := zerolog.New(w).Level(zerolog.DebugLevel).With().Timestamp().Logger()
	return logger, func() { _ = f.Close() }, nil
}

func runGraphics(ctx context.Context, cfg globe.Config, logger zerolog.Logger, opts term.Options) error {
	s, err := tcell.NewScreen()
	if err != nil {
		return fmt.Errorf("screen init failed: %w", err)
	}
	if err := s.Init(); err != nil {
		return fmt.Errorf("screen start failed: %w", err)
	}
	defer s.Fini()

	return term.Run(ctx, s, cfg, logger, opts)
}
