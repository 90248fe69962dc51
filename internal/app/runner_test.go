package app

import (
	"context"
	"errors"
	"fmt"
	"image"
	"net/http"
	"net/http/httptest"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/i474232898/eink-weather/internal/display"
	"github.com/i474232898/eink-weather/internal/render"
	"github.com/i474232898/eink-weather/internal/store"
	"github.com/i474232898/eink-weather/internal/weather"
	"github.com/i474232898/eink-weather/internal/weather/providers"
)

const onecallScenario = `{
  "current": {"dt": 1700000000, "temp": 280.0,
    "weather": [{"main": "Rain", "description": "light rain"}]},
  "daily": [{"dt": 1699990000, "summary": "Expect rain",
    "temp": {"day": 282, "min": 278, "max": 285},
    "weather": [{"main": "Clouds", "description": "overcast"}]}]
}`

// recordingCanvas draws on a real framebuffer and keeps the text it was given.
type recordingCanvas struct {
	*display.Framebuffer
	texts []string
}

func (c *recordingCanvas) Text(x, y int, s string) {
	c.texts = append(c.texts, s)
	c.Framebuffer.Text(x, y, s)
}

func (c *recordingCanvas) has(s string) bool {
	for _, t := range c.texts {
		if t == s {
			return true
		}
	}
	return false
}

func (c *recordingCanvas) hasPrefix(p string) bool {
	for _, t := range c.texts {
		if strings.HasPrefix(t, p) {
			return true
		}
	}
	return false
}

type fakePanel struct {
	inits, clears, flushes, sleeps int
}

func (p *fakePanel) Init() error             { p.inits++; return nil }
func (p *fakePanel) Clear() error            { p.clears++; return nil }
func (p *fakePanel) Flush(image.Image) error { p.flushes++; return nil }
func (p *fakePanel) Sleep() error            { p.sleeps++; return nil }

type fakeNetwork struct {
	connects, disconnects int
	block                 bool
}

func (n *fakeNetwork) SSID() string { return "home" }

func (n *fakeNetwork) Connect(ctx context.Context) (string, error) {
	n.connects++
	if n.block {
		<-ctx.Done()
		return "", ctx.Err()
	}
	return "10.0.0.7", nil
}

func (n *fakeNetwork) Disconnect(context.Context) error {
	n.disconnects++
	return nil
}

// redirect sends every request to the test server.
type redirect struct {
	target *url.URL
	next   http.RoundTripper
}

func (r redirect) RoundTrip(req *http.Request) (*http.Response, error) {
	req = req.Clone(req.Context())
	req.URL.Scheme = r.target.Scheme
	req.URL.Host = r.target.Host
	return r.next.RoundTrip(req)
}

type harness struct {
	runner   *Runner
	canvas   *recordingCanvas
	panel    *fakePanel
	network  *fakeNetwork
	hits     *atomic.Int32
	cacheDir string
}

func newHarness(t *testing.T, handler func(hit int32, w http.ResponseWriter)) *harness {
	t.Helper()

	hits := &atomic.Int32{}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		handler(hits.Add(1), w)
	}))
	t.Cleanup(srv.Close)

	target, _ := url.Parse(srv.URL)
	client := providers.NewHTTPClient(5 * time.Second)
	client.Transport = redirect{target: target, next: http.DefaultTransport}

	const restartDelay = time.Millisecond
	cacheDir := filepath.Join(t.TempDir(), "cache")
	svc := weather.NewService(
		providers.NewOpenWeatherProvider(client, "key", restartDelay),
		store.NewFileStore(cacheDir),
		weather.Location{Lat: "51.5", Lon: "-0.12"},
		15*time.Minute,
	)

	canvas := &recordingCanvas{Framebuffer: display.NewFramebuffer()}
	panel := &fakePanel{}
	network := &fakeNetwork{}
	runner := NewRunner(render.NewEngine(canvas, panel), network, svc, restartDelay)

	return &harness{runner: runner, canvas: canvas, panel: panel, network: network, hits: hits, cacheDir: cacheDir}
}

func serveScenario(_ int32, w http.ResponseWriter) {
	fmt.Fprint(w, onecallScenario)
}

func TestCycleFetchesAndRenders(t *testing.T) {
	h := newHarness(t, serveScenario)

	if err := h.runner.Cycle(context.Background()); err != nil {
		t.Fatalf("Cycle() = %v", err)
	}

	for _, want := range []string{"Connecting to home...", "Connected", "IP: 10.0.0.7", "NOW", "TODAY",
		"6.9 C", "Rain", "light rain", "Expect rain.", "8.9 C", "4.9-11.9 C", "Clouds", "overcast"} {
		if !h.canvas.has(want) {
			t.Errorf("%q not drawn; texts = %q", want, h.canvas.texts)
		}
	}
	if !h.canvas.hasPrefix("Weather ") {
		t.Error("header not drawn")
	}

	// connecting, connected, report
	if h.panel.flushes != 3 || h.panel.clears != 1 || h.panel.inits != 1 || h.panel.sleeps != 1 {
		t.Errorf("panel = %+v; want 3 flushes, 1 clear, 1 init, 1 sleep", *h.panel)
	}
	if h.network.connects != 1 || h.network.disconnects != 1 {
		t.Errorf("network = %+v; want one connect and disconnect", *h.network)
	}
	for _, name := range []string{"current.json", "current_timestamp", "daily.json", "daily_timestamp"} {
		if _, err := os.Stat(filepath.Join(h.cacheDir, name)); err != nil {
			t.Errorf("cache file %s: %v", name, err)
		}
	}
}

func TestCycleUsesCache(t *testing.T) {
	h := newHarness(t, serveScenario)

	if err := h.runner.Cycle(context.Background()); err != nil {
		t.Fatal(err)
	}
	h.canvas.texts = nil

	if err := h.runner.Cycle(context.Background()); err != nil {
		t.Fatalf("second Cycle() = %v", err)
	}
	if got := h.hits.Load(); got != 1 {
		t.Errorf("provider hits = %d; want 1", got)
	}
	if h.network.connects != 1 {
		t.Errorf("connects = %d; want the cached cycle to stay offline", h.network.connects)
	}
	if h.canvas.hasPrefix("Connecting") {
		t.Error("cached cycle showed the connecting screen")
	}
	if !h.canvas.has("6.9 C") || !h.canvas.has("4.9-11.9 C") {
		t.Errorf("cached report not drawn; texts = %q", h.canvas.texts)
	}
}

func TestSuperviseRestartsAfterFailure(t *testing.T) {
	h := newHarness(t, func(hit int32, w http.ResponseWriter) {
		if hit == 1 {
			http.Error(w, "upstream down", http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, onecallScenario)
	})

	if err := h.runner.Supervise(context.Background()); err != nil {
		t.Fatalf("Supervise() = %v", err)
	}

	if !h.canvas.hasPrefix("Failed: ") {
		t.Errorf("failure not shown; texts = %q", h.canvas.texts)
	}
	if got := h.hits.Load(); got != 2 {
		t.Errorf("provider hits = %d; want 2", got)
	}
	if h.network.disconnects != 2 {
		t.Errorf("disconnects = %d; want 2", h.network.disconnects)
	}
	// error screen sleep, then the successful cycle
	if h.panel.sleeps != 2 || h.panel.inits != 2 {
		t.Errorf("panel = %+v; want 2 inits and 2 sleeps", *h.panel)
	}
	if !h.canvas.has("4.9-11.9 C") {
		t.Error("report not drawn after restart")
	}
}

func TestSuperviseFetchesOnceProviderRecovers(t *testing.T) {
	h := newHarness(t, func(hit int32, w http.ResponseWriter) {
		if hit <= 3 {
			http.Error(w, "upstream down", http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, onecallScenario)
	})

	if err := h.runner.Supervise(context.Background()); err != nil {
		t.Fatalf("Supervise() = %v", err)
	}

	// three failures open the breaker; the next restart must still reach the API
	if got := h.hits.Load(); got != 4 {
		t.Errorf("provider hits = %d; want 4", got)
	}
	if !h.canvas.has("6.9 C") {
		t.Errorf("report not drawn after recovery; texts = %q", h.canvas.texts)
	}
}

func TestSuperviseStopsOnCancel(t *testing.T) {
	h := newHarness(t, serveScenario)
	h.network.block = true

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- h.runner.Supervise(ctx) }()

	time.Sleep(20 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Supervise() = %v; want context.Canceled", err)
		}
	case <-time.After(5 * time.Second):
		t.Fatal("Supervise() did not return after cancel")
	}
	if h.canvas.hasPrefix("Failed: ") {
		t.Error("interrupt shown as a failure")
	}
	if h.hits.Load() != 0 {
		t.Error("provider called after interrupt")
	}
}
