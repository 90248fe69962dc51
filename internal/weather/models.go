package weather

import (
	"time"
)

// Timeframe names one of the two weather views shown on the display.
type Timeframe string

const (
	TimeframeCurrent Timeframe = "current"
	TimeframeDaily   Timeframe = "daily"
)

// Timeframes lists every timeframe in display order.
var Timeframes = []Timeframe{TimeframeCurrent, TimeframeDaily}

// Location is the pair of coordinates the provider is queried with.
// Values are kept as configured so they reach the API unchanged.
type Location struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Key returns a canonical string key for logging.
func (l Location) Key() string {
	return l.Lat + "," + l.Lon
}

// Temperature is in Celsius. For current conditions Min and Max equal Main.
type Temperature struct {
	Main float64 `json:"main"`
	Min  float64 `json:"min"`
	Max  float64 `json:"max"`
}

// Weather is the normalized view of one timeframe.
type Weather struct {
	CapturedAt  time.Time   `json:"captured_at"`
	Temp        Temperature `json:"temp"`
	Titles      []string    `json:"titles"`
	Description string      `json:"description"`

	// DaySummary holds the wrapped narrative lines; only set for the daily timeframe.
	DaySummary []string `json:"day_summary"`
}

// Report bundles the current and daily weather fetched in one cycle.
type Report struct {
	Current Weather `json:"current"`
	Daily   Weather `json:"daily"`
}

// Get returns the weather for tf.
func (r Report) Get(tf Timeframe) Weather {
	if tf == TimeframeDaily {
		return r.Daily
	}
	return r.Current
}

// Set replaces the weather for tf.
func (r *Report) Set(tf Timeframe, w Weather) {
	if tf == TimeframeDaily {
		r.Daily = w
		return
	}
	r.Current = w
}
