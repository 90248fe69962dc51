package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.txt")
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

const minimal = `lat=51.5072
lon=-0.1276
openweathermap_key=abc123
`

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load(writeConfig(t, minimal))
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}

	if cfg.Lat != "51.5072" || cfg.Lon != "-0.1276" || cfg.APIKey != "abc123" {
		t.Errorf("location/key = %q %q %q", cfg.Lat, cfg.Lon, cfg.APIKey)
	}
	checks := []struct {
		name      string
		got, want any
	}{
		{"RefreshInterval", cfg.RefreshInterval, 30 * time.Minute},
		{"CacheTTL", cfg.CacheTTL, 15 * time.Minute},
		{"FetchTimeout", cfg.FetchTimeout, 30 * time.Second},
		{"RestartDelay", cfg.RestartDelay, time.Minute},
		{"LogLevel", cfg.LogLevel, "info"},
		{"CacheDir", cfg.CacheDir, "cache"},
		{"Interface", cfg.Interface, "wlan0"},
		{"Display", cfg.Display, DisplayWaveshare},
		{"SSID", cfg.SSID, ""},
	}
	for _, c := range checks {
		if c.got != c.want {
			t.Errorf("%s = %v; want %v", c.name, c.got, c.want)
		}
	}
}

func TestLoadFull(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	body := minimal + `# network
ssid=home net
password=hunter2
refresh_mins=60
cache_mins=45
log_level=DEBUG
display=png
png_path=/tmp/weather.png
fetch_timeout_secs=10
restart_delay_secs=5
colour=purple
`
	cfg, err := Load(writeConfig(t, body))
	if err != nil {
		t.Fatalf("Load() = %v", err)
	}
	if cfg.SSID != "home net" || cfg.Password != "hunter2" {
		t.Errorf("wifi = %q / %q", cfg.SSID, cfg.Password)
	}
	if cfg.RefreshInterval != time.Hour || cfg.CacheTTL != 45*time.Minute {
		t.Errorf("intervals = %v / %v", cfg.RefreshInterval, cfg.CacheTTL)
	}
	if cfg.LogLevel != "debug" || cfg.Display != DisplayPNG || cfg.PNGPath != "/tmp/weather.png" {
		t.Errorf("ambient = %+v", cfg)
	}
	if cfg.FetchTimeout != 10*time.Second || cfg.RestartDelay != 5*time.Second {
		t.Errorf("timeouts = %v / %v", cfg.FetchTimeout, cfg.RestartDelay)
	}
}

func TestLoadLegacySleepMins(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	cfg, err := Load(writeConfig(t, minimal+"sleep_mins=20\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RefreshInterval != 20*time.Minute {
		t.Errorf("RefreshInterval = %v; want 20m from sleep_mins", cfg.RefreshInterval)
	}

	cfg, err = Load(writeConfig(t, minimal+"sleep_mins=20\nrefresh_mins=40\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.RefreshInterval != 40*time.Minute {
		t.Errorf("RefreshInterval = %v; want refresh_mins to win", cfg.RefreshInterval)
	}
}

func TestLoadEnvOverridesLogLevel(t *testing.T) {
	t.Setenv("LOG_LEVEL", "warn")

	cfg, err := Load(writeConfig(t, minimal+"log_level=debug\n"))
	if err != nil {
		t.Fatal(err)
	}
	if cfg.LogLevel != "warn" {
		t.Errorf("LogLevel = %q; want warn", cfg.LogLevel)
	}
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("LOG_LEVEL", "")

	tests := []struct {
		name string
		body string
		want string
	}{
		{"missing key", "lat=1\nlon=2\n", "APIKey"},
		{"missing lat", "lon=2\nopenweathermap_key=k\n", "Lat"},
		{"latitude out of range", "lat=123\nlon=2\nopenweathermap_key=k\n", "Lat"},
		{"refresh not a number", minimal + "refresh_mins=soon\n", "refresh_mins"},
		{"zero refresh", minimal + "refresh_mins=0\n", "RefreshInterval"},
		{"unknown display", minimal + "display=lcd\n", "Display"},
		{"bad log level", minimal + "log_level=chatty\n", "LogLevel"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Load() = %v; want error mentioning %s", err, tt.want)
			}
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "nope.txt")); err == nil {
		t.Error("Load(missing) = nil; want error")
	}
}

func TestPath(t *testing.T) {
	t.Setenv("EINK_CONFIG", "")
	if got := Path(); got != DefaultPath {
		t.Errorf("Path() = %q; want %q", got, DefaultPath)
	}
	t.Setenv("EINK_CONFIG", "/etc/eink/config.txt")
	if got := Path(); got != "/etc/eink/config.txt" {
		t.Errorf("Path() = %q", got)
	}
}
