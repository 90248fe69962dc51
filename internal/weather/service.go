package weather

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"
)

// Service serves weather from the cache when it is fresh and from the provider otherwise.
type Service struct {
	provider Provider
	cache    Cache
	location Location
	ttl      time.Duration
}

// NewService creates a new Service.
func NewService(provider Provider, cache Cache, location Location, ttl time.Duration) *Service {
	return &Service{
		provider: provider,
		cache:    cache,
		location: location,
		ttl:      ttl,
	}
}

// Cached returns the report from the cache when every timeframe is still valid.
// Unreadable entries count as a miss.
func (s *Service) Cached() (Report, bool) {
	var report Report
	for _, tf := range Timeframes {
		if !s.cache.IsValid(tf, s.ttl) {
			slog.Debug("cache miss", "timeframe", tf, "ttl", s.ttl)
			return Report{}, false
		}

		w, err := s.cache.Load(tf, s.ttl)
		if err != nil {
			slog.Warn("cache entry unusable, fetching live weather", "timeframe", tf, "error", err)
			return Report{}, false
		}
		report.Set(tf, w)
	}

	slog.Info("using cached weather", "captured_at", report.Current.CapturedAt)
	return report, true
}

// Refresh fetches a fresh report and writes every timeframe back to the cache.
// Cache write failures are logged; the fetched report is still returned.
func (s *Service) Refresh(ctx context.Context) (Report, error) {
	if s.provider == nil {
		return Report{}, errors.New("no weather provider configured")
	}

	slog.Info("fetching weather", "provider", s.provider.Name(), "location", s.location.Key())
	report, err := s.provider.Fetch(ctx, s.location)
	if err != nil {
		return Report{}, fmt.Errorf("fetch %s: %w", s.provider.Name(), err)
	}

	for _, tf := range Timeframes {
		if err := s.cache.Store(report.Get(tf), tf); err != nil {
			slog.Error("cache store failed", "timeframe", tf, "error", err)
		}
	}
	return report, nil
}
