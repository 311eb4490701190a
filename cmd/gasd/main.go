package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/udisondev/gascore/internal/asc"
	"github.com/udisondev/gascore/internal/config"
	"github.com/udisondev/gascore/internal/data"
	"github.com/udisondev/gascore/internal/db"
	"github.com/udisondev/gascore/internal/sim"
	"github.com/udisondev/gascore/internal/telemetry"
	"github.com/udisondev/gascore/internal/timeline"
)

const ConfigPath = "config/gasd.yaml"

func main() {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		sig := <-sigCh
		slog.Info("shutting down", "signal", sig)
		cancel()
	}()

	if err := run(ctx); err != nil {
		slog.Error("fatal", "err", err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	cfgPath := ConfigPath
	if p := os.Getenv("GAS_CONFIG"); p != "" {
		cfgPath = p
	}
	cfg, err := config.LoadEngine(cfgPath)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}

	logLevel := parseLogLevel(cfg.LogLevel)
	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{
		Level: logLevel,
	})))

	slog.Info("gasd starting",
		"log_level", cfg.LogLevel,
		"frame_rate", cfg.FrameRate,
		"tick_interval", cfg.TickInterval)

	shutdownTracing, err := telemetry.Setup(ctx, cfg.Telemetry)
	if err != nil {
		return fmt.Errorf("setting up telemetry: %w", err)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdownTracing(flushCtx); err != nil {
			slog.Error("flushing traces", "error", err)
		}
	}()

	var playerOpts []timeline.Option
	if cfg.MaxCatchUpFrames > 0 {
		playerOpts = append(playerOpts, timeline.WithMaxCatchUp(cfg.MaxCatchUpFrames))
	}
	switch {
	case cfg.Telemetry.Enabled:
		playerOpts = append(playerOpts, timeline.WithTracer(timeline.NewOTelTracer(ctx, telemetry.Tracer())))
	case logLevel == slog.LevelDebug:
		playerOpts = append(playerOpts, timeline.WithTracer(&timeline.SlogTracer{}))
	}

	world := asc.NewWorld()
	catalog, err := data.Load(cfg.AbilitiesPath,
		data.WithFinder(world),
		data.WithFrameRate(cfg.FrameRate),
		data.WithPlayerOptions(playerOpts...))
	if err != nil {
		return err
	}

	var grants *db.GrantRepository
	if cfg.Database.Enabled {
		version, err := db.RunMigrations(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("running migrations: %w", err)
		}
		slog.Info("database migrations applied", "version", version)

		database, err := db.New(ctx, cfg.Database.DSN())
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer database.Close()
		slog.Info("database connected")

		grants = database.Grants()
	}

	a, err := newArena(ctx, world, catalog, grants)
	if err != nil {
		return fmt.Errorf("building arena: %w", err)
	}

	loop := sim.NewLoop(world, cfg.TickInterval)

	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		if err := loop.Run(gctx); err != nil && gctx.Err() == nil {
			return fmt.Errorf("simulation loop: %w", err)
		}
		return nil
	})

	g.Go(func() error {
		slog.Info("starting arena driver", "interval", "1s")
		a.drive(gctx, loop, time.Second)
		return nil
	})

	if err := g.Wait(); err != nil {
		return fmt.Errorf("server error: %w", err)
	}

	if grants != nil {
		saveCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := grants.SaveAll(saveCtx, a.grantSnapshot()); err != nil {
			return fmt.Errorf("saving grants: %w", err)
		}
		slog.Info("grants saved", "owners", world.Len())
	}

	slog.Info("gasd stopped")
	return nil
}

// parseLogLevel converts string log level to slog.Level.
// Defaults to Info if invalid or empty.
func parseLogLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
