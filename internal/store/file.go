package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/i474232898/eink-weather/internal/weather"
)

var (
	// ErrNotFound is returned when no valid entry exists for a timeframe.
	ErrNotFound = errors.New("no cached weather for timeframe")

	// ErrCorrupt is returned when a cached entry exists but cannot be decoded.
	ErrCorrupt = errors.New("cached weather is corrupt")
)

// FileStore keeps one JSON record and one timestamp file per timeframe:
//
//	<dir>/<timeframe>.json
//	<dir>/<timeframe>_timestamp
//
// Entries are independent; there is no atomicity across the two files.
type FileStore struct {
	mu  sync.RWMutex
	dir string

	// now is replaced in tests.
	now func() time.Time
}

// NewFileStore creates a FileStore rooted at dir. The directory is created on first use.
func NewFileStore(dir string) *FileStore {
	return &FileStore{
		dir: dir,
		now: time.Now,
	}
}

func (s *FileStore) dataPath(tf weather.Timeframe) string {
	return filepath.Join(s.dir, string(tf)+".json")
}

func (s *FileStore) timestampPath(tf weather.Timeframe) string {
	return filepath.Join(s.dir, string(tf)+"_timestamp")
}

// IsValid reports whether the entry for tf was stored less than ttl ago.
// A timestamp in the future is treated as invalid.
func (s *FileStore) IsValid(tf weather.Timeframe, ttl time.Duration) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.isValid(tf, ttl)
}

func (s *FileStore) isValid(tf weather.Timeframe, ttl time.Duration) bool {
	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		slog.Error("cache dir unavailable", "dir", s.dir, "error", err)
		return false
	}

	raw, err := os.ReadFile(s.timestampPath(tf))
	if err != nil {
		return false
	}

	stamp, err := strconv.ParseInt(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		slog.Warn("ignoring unreadable cache timestamp", "timeframe", tf, "error", err)
		return false
	}

	age := s.now().Unix() - stamp
	valid := age >= 0 && age < int64(ttl/time.Second)
	slog.Debug("cache validity", "timeframe", tf, "age_secs", age, "ttl", ttl, "valid", valid)
	return valid
}

// Load returns the cached weather for tf. It returns ErrNotFound when the entry is
// missing or expired and an error wrapping ErrCorrupt when the record cannot be decoded.
func (s *FileStore) Load(tf weather.Timeframe, ttl time.Duration) (weather.Weather, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if !s.isValid(tf, ttl) {
		return weather.Weather{}, ErrNotFound
	}

	raw, err := os.ReadFile(s.dataPath(tf))
	if errors.Is(err, os.ErrNotExist) {
		return weather.Weather{}, ErrNotFound
	}
	if err != nil {
		return weather.Weather{}, fmt.Errorf("%w: read %s: %v", ErrCorrupt, tf, err)
	}

	var w weather.Weather
	if err := json.Unmarshal(raw, &w); err != nil {
		return weather.Weather{}, fmt.Errorf("%w: decode %s: %v", ErrCorrupt, tf, err)
	}
	return w, nil
}

// Store writes w for tf and stamps it with the current time, replacing any prior entry.
func (s *FileStore) Store(w weather.Weather, tf weather.Timeframe) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := os.MkdirAll(s.dir, 0o755); err != nil {
		return fmt.Errorf("create cache dir: %w", err)
	}

	data, err := json.Marshal(w)
	if err != nil {
		return fmt.Errorf("encode %s: %w", tf, err)
	}
	if err := os.WriteFile(s.dataPath(tf), data, 0o644); err != nil {
		return fmt.Errorf("write %s: %w", tf, err)
	}

	stamp := strconv.FormatInt(s.now().Unix(), 10)
	if err := os.WriteFile(s.timestampPath(tf), []byte(stamp), 0o644); err != nil {
		return fmt.Errorf("write %s timestamp: %w", tf, err)
	}

	slog.Debug("cached weather", "timeframe", tf, "stamp", stamp)
	return nil
}
