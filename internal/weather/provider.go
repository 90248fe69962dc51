package weather

import (
	"context"
	"time"
)

// Provider abstracts the remote weather API.
type Provider interface {
	Name() string
	Fetch(ctx context.Context, loc Location) (Report, error)
}

// Cache is the contract the on-disk weather cache satisfies.
type Cache interface {
	IsValid(tf Timeframe, ttl time.Duration) bool
	Load(tf Timeframe, ttl time.Duration) (Weather, error)
	Store(w Weather, tf Timeframe) error
}
