package main

import (
	"context"
	"errors"
	"image"
	"path/filepath"
	"testing"
	"time"

	"github.com/i474232898/eink-weather/internal/config"
)

type closingPanel struct {
	closed int
}

func (p *closingPanel) Init() error             { return nil }
func (p *closingPanel) Clear() error            { return nil }
func (p *closingPanel) Flush(image.Image) error { return nil }
func (p *closingPanel) Sleep() error            { return nil }
func (p *closingPanel) Close() error            { p.closed++; return nil }

func stubPanel(t *testing.T, p panel, err error) {
	t.Helper()
	orig := openPanel
	openPanel = func(*config.Config) (panel, error) { return p, err }
	t.Cleanup(func() { openPanel = orig })
}

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	return &config.Config{
		Display:         config.DisplayPNG,
		CacheDir:        filepath.Join(t.TempDir(), "cache"),
		RefreshInterval: 30 * time.Minute,
		RestartDelay:    time.Millisecond,
		FetchTimeout:    time.Second,
	}
}

func TestRunClosesPanelOnShutdown(t *testing.T) {
	p := &closingPanel{}
	stubPanel(t, p, nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if err := run(ctx, testConfig(t)); err != nil {
		t.Fatalf("run() = %v", err)
	}
	if p.closed != 1 {
		t.Errorf("panel closed %d times; want 1", p.closed)
	}
}

func TestRunReportsPanelError(t *testing.T) {
	boom := errors.New("spi busy")
	stubPanel(t, nil, boom)

	err := run(context.Background(), testConfig(t))
	if !errors.Is(err, boom) {
		t.Errorf("run() = %v; want %v", err, boom)
	}
}
