package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
)

// DefaultPath is read when EINK_CONFIG is not set.
const DefaultPath = "config.txt"

// Display backends.
const (
	DisplayWaveshare = "waveshare"
	DisplayPNG       = "png"
)

// Config is read once at startup and never changed.
type Config struct {
	// SSID may be empty when the host is already on a network.
	SSID     string
	Password string

	// Coordinates are passed to the provider as written in the file.
	Lat    string `validate:"required,latitude"`
	Lon    string `validate:"required,longitude"`
	APIKey string `validate:"required"`

	RefreshInterval time.Duration `validate:"gt=0"`
	CacheTTL        time.Duration `validate:"gte=0"`

	LogLevel     string `validate:"oneof=debug info warn warning error"`
	CacheDir     string `validate:"required"`
	Interface    string
	Display      string        `validate:"oneof=waveshare png"`
	PNGPath      string        `validate:"required_if=Display png"`
	FetchTimeout time.Duration `validate:"gt=0"`
	RestartDelay time.Duration `validate:"gte=0"`
}

var validate = validator.New()

// Path returns the config file location.
func Path() string {
	return getenvDefault("EINK_CONFIG", DefaultPath)
}

// Load reads a key=value config file. Unknown keys are ignored.
// LOG_LEVEL in the environment overrides log_level from the file.
func Load(path string) (*Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	values, err := godotenv.Parse(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return fromValues(values)
}

func fromValues(values map[string]string) (*Config, error) {
	get := func(key, def string) string {
		if v := strings.TrimSpace(values[key]); v != "" {
			return v
		}
		return def
	}

	cfg := &Config{
		SSID:      get("ssid", ""),
		Password:  get("password", ""),
		Lat:       get("lat", ""),
		Lon:       get("lon", ""),
		APIKey:    get("openweathermap_key", ""),
		LogLevel:  strings.ToLower(getenvDefault("LOG_LEVEL", get("log_level", "info"))),
		CacheDir:  get("cache_dir", "cache"),
		Interface: get("interface", "wlan0"),
		Display:   get("display", DisplayWaveshare),
		PNGPath:   get("png_path", "weather.png"),
	}

	// sleep_mins predates the refresh/cache split and only sets the refresh interval.
	refresh := get("refresh_mins", get("sleep_mins", "30"))

	var err error
	if cfg.RefreshInterval, err = minutes("refresh_mins", refresh); err != nil {
		return nil, err
	}
	if cfg.CacheTTL, err = minutes("cache_mins", get("cache_mins", "15")); err != nil {
		return nil, err
	}
	if cfg.FetchTimeout, err = seconds("fetch_timeout_secs", get("fetch_timeout_secs", "30")); err != nil {
		return nil, err
	}
	if cfg.RestartDelay, err = seconds("restart_delay_secs", get("restart_delay_secs", "60")); err != nil {
		return nil, err
	}

	if err := validate.Struct(cfg); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}

func minutes(key, v string) (time.Duration, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return time.Duration(n) * time.Minute, nil
}

func seconds(key, v string) (time.Duration, error) {
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, fmt.Errorf("invalid %s: %w", key, err)
	}
	return time.Duration(n) * time.Second, nil
}

func getenvDefault(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
