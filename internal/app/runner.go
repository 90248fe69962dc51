// Package app ties network, weather and rendering into one display refresh.
package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/i474232898/eink-weather/internal/render"
	"github.com/i474232898/eink-weather/internal/weather"
)

// Network brings the radio up for the length of a fetch.
type Network interface {
	SSID() string
	Connect(ctx context.Context) (string, error)
	Disconnect(ctx context.Context) error
}

// Source supplies the weather to draw.
type Source interface {
	Cached() (weather.Report, bool)
	Refresh(ctx context.Context) (weather.Report, error)
}

// Runner performs refresh cycles against a single display.
type Runner struct {
	engine       *render.Engine
	network      Network
	source       Source
	restartDelay time.Duration
}

func NewRunner(engine *render.Engine, network Network, source Source, restartDelay time.Duration) *Runner {
	return &Runner{
		engine:       engine,
		network:      network,
		source:       source,
		restartDelay: restartDelay,
	}
}

// Cycle wakes the display, draws the weather from the cache or a live fetch
// and puts the display back to sleep.
func (r *Runner) Cycle(ctx context.Context) error {
	logger := slog.With("cycle_id", uuid.NewString())
	logger.Info("cycle started")

	if err := r.engine.Wake(); err != nil {
		return fmt.Errorf("wake display: %w", err)
	}

	cur := &render.Cursor{}
	report, ok := r.source.Cached()
	if !ok {
		var err error
		if report, err = r.fetch(ctx, logger, cur); err != nil {
			return err
		}
	}

	if err := r.engine.ShowReport(cur, report); err != nil {
		return fmt.Errorf("render report: %w", err)
	}
	if err := r.engine.Sleep(); err != nil {
		return fmt.Errorf("sleep display: %w", err)
	}

	logger.Info("cycle finished", "captured_at", report.Current.CapturedAt, "cached", ok)
	return nil
}

func (r *Runner) fetch(ctx context.Context, logger *slog.Logger, cur *render.Cursor) (weather.Report, error) {
	if err := r.engine.ShowConnecting(cur, r.network.SSID()); err != nil {
		return weather.Report{}, fmt.Errorf("render connecting: %w", err)
	}

	ip, err := r.network.Connect(ctx)
	if err != nil {
		return weather.Report{}, fmt.Errorf("connect: %w", err)
	}
	defer func() {
		if err := r.network.Disconnect(context.WithoutCancel(ctx)); err != nil {
			logger.Warn("disconnect failed", "error", err)
		}
	}()

	if err := r.engine.ShowConnected(cur, ip); err != nil {
		return weather.Report{}, fmt.Errorf("render connected: %w", err)
	}

	report, err := r.source.Refresh(ctx)
	if err != nil {
		return weather.Report{}, err
	}
	return report, nil
}

// Supervise repeats Cycle until one succeeds. After a failure the error is
// shown, the display sleeps and the cycle restarts once the restart delay has
// passed. It returns the context error if ctx ends first.
func (r *Runner) Supervise(ctx context.Context) error {
	for attempt := 1; ; attempt++ {
		err := r.Cycle(ctx)
		if err == nil {
			return nil
		}
		if ctx.Err() != nil {
			slog.Info("cycle interrupted", "error", err)
			return ctx.Err()
		}

		slog.Error("cycle failed", "attempt", attempt, "error", err, "restart_in", r.restartDelay)
		if showErr := r.engine.ShowError(&render.Cursor{}, err); showErr != nil {
			slog.Error("showing failure", "error", showErr)
		}
		if sleepErr := r.engine.Sleep(); sleepErr != nil {
			slog.Error("sleeping display", "error", sleepErr)
		}

		timer := time.NewTimer(r.restartDelay)
		select {
		case <-ctx.Done():
			timer.Stop()
			return ctx.Err()
		case <-timer.C:
		}
	}
}
