package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"github.com/i474232898/eink-weather/internal/app"
	"github.com/i474232898/eink-weather/internal/config"
	"github.com/i474232898/eink-weather/internal/display"
	"github.com/i474232898/eink-weather/internal/icons"
	"github.com/i474232898/eink-weather/internal/logging"
	"github.com/i474232898/eink-weather/internal/network"
	"github.com/i474232898/eink-weather/internal/render"
	"github.com/i474232898/eink-weather/internal/scheduler"
	"github.com/i474232898/eink-weather/internal/store"
	"github.com/i474232898/eink-weather/internal/weather"
	"github.com/i474232898/eink-weather/internal/weather/providers"
)

const appName = "eink-weather"

// version is set with -ldflags "-X main.version=...".
var version = "dev"

type panel interface {
	render.Panel
	Close() error
}

func main() {
	dotenvErr := godotenv.Load()

	cfg, err := config.Load(config.Path())
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}

	level, err := logging.ParseLevel(cfg.LogLevel)
	if err != nil {
		fmt.Fprintf(os.Stderr, "config error: %v\n", err)
		os.Exit(1)
	}
	slog.SetDefault(logging.New(os.Stdout, level, version, appName))

	if dotenvErr != nil {
		slog.Debug("no .env file loaded", "error", dotenvErr)
	}
	slog.Info("starting",
		"version", version,
		"display", cfg.Display,
		"refresh", cfg.RefreshInterval,
		"cache_ttl", cfg.CacheTTL,
		"log_level", level.String(),
	)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		slog.Error("run failed", "error", err)
		os.Exit(1)
	}

	slog.Info("shutting down")
}

// run owns the panel and the scheduler so both are released before main exits.
func run(ctx context.Context, cfg *config.Config) error {
	p, err := openPanel(cfg)
	if err != nil {
		return fmt.Errorf("open display: %w", err)
	}
	defer p.Close()
	slog.Debug("display ready", "icons", icons.Names())

	// Weather from the on-disk cache or OpenWeatherMap.
	svc := weather.NewService(
		providers.NewOpenWeatherProvider(providers.NewHTTPClient(cfg.FetchTimeout), cfg.APIKey, cfg.RestartDelay),
		store.NewFileStore(cfg.CacheDir),
		weather.Location{Lat: cfg.Lat, Lon: cfg.Lon},
		cfg.CacheTTL,
	)

	runner := app.NewRunner(
		render.NewEngine(display.NewFramebuffer(), p),
		network.NewWiFi(cfg.SSID, cfg.Password, cfg.Interface),
		svc,
		cfg.RestartDelay,
	)

	sched := scheduler.New(cfg.RefreshInterval, func(ctx context.Context) {
		if err := runner.Supervise(ctx); err != nil {
			slog.Info("refresh abandoned", "error", err)
		}
	})
	if err := sched.Start(ctx); err != nil {
		return fmt.Errorf("start scheduler: %w", err)
	}
	defer sched.Stop()

	<-ctx.Done()
	return nil
}

var openPanel = func(cfg *config.Config) (panel, error) {
	switch cfg.Display {
	case config.DisplayPNG:
		return display.NewPNGFile(cfg.PNGPath), nil
	default:
		return display.OpenWaveshare()
	}
}
