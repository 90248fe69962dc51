package weather

import (
	"bytes"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"github.com/i474232898/eink-weather/internal/common"
)

// TempKind tells which shape a RawTemp was decoded from.
type TempKind int

const (
	TempScalar TempKind = iota
	TempRange
)

// RawTemp is the provider's "temp" field in Kelvin: a bare number for current
// conditions, a {day, min, max} object for daily forecasts.
type RawTemp struct {
	Kind  TempKind
	Value float64

	Day float64
	Min float64
	Max float64
}

// UnmarshalJSON implements json.Unmarshaler.
func (t *RawTemp) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if len(b) > 0 && b[0] == '{' {
		var r struct {
			Day float64 `json:"day"`
			Min float64 `json:"min"`
			Max float64 `json:"max"`
		}
		if err := json.Unmarshal(b, &r); err != nil {
			return fmt.Errorf("decode temp breakdown: %w", err)
		}
		*t = RawTemp{Kind: TempRange, Day: r.Day, Min: r.Min, Max: r.Max}
		return nil
	}

	var v float64
	if err := json.Unmarshal(b, &v); err != nil {
		return fmt.Errorf("decode temp: %w", err)
	}
	*t = RawTemp{Kind: TempScalar, Value: v}
	return nil
}

// Celsius resolves the union into a Temperature.
func (t RawTemp) Celsius() Temperature {
	if t.Kind == TempRange {
		return Temperature{
			Main: KelvinToCelsius(t.Day),
			Min:  KelvinToCelsius(t.Min),
			Max:  KelvinToCelsius(t.Max),
		}
	}
	c := KelvinToCelsius(t.Value)
	return Temperature{Main: c, Min: c, Max: c}
}

// RawCondition is one entry of the provider's "weather" array.
type RawCondition struct {
	Main        string `json:"main"`
	Description string `json:"description"`
}

// RawConditions is a provider condition record ("current" or one "daily" entry).
type RawConditions struct {
	Dt      int64          `json:"dt"`
	Temp    RawTemp        `json:"temp"`
	Weather []RawCondition `json:"weather"`
	Summary string         `json:"summary"`
}

// KelvinToCelsius converts without rounding.
func KelvinToCelsius(k float64) float64 {
	return k - 273.15
}

// Summarize turns a raw condition record into a temperature, the ordered
// condition titles and a single description sentence.
func Summarize(tf Timeframe, c RawConditions) (Temperature, []string, string) {
	temp := c.Temp.Celsius()

	if len(c.Weather) == 0 {
		slog.Info("no weather conditions returned", "timeframe", tf)
		return temp, []string{}, ""
	}

	titles := make([]string, 0, len(c.Weather))
	descriptions := make([]string, 0, len(c.Weather))
	for _, w := range c.Weather {
		titles = append(titles, w.Main)
		descriptions = append(descriptions, w.Description)
	}

	description := common.SentenceJoin(descriptions)
	slog.Debug("summarised conditions",
		"timeframe", tf,
		"count", len(c.Weather),
		"temp_c", temp.Main,
		"titles", titles,
		"description", description,
	)
	return temp, titles, description
}

// DaySummaryLines ends the narrative with a period and wraps it for the display.
func DaySummaryLines(summary string) []string {
	if summary == "" {
		return []string{}
	}
	return common.WrapText(common.EnsureSuffix(summary, "."), common.MaxTextWidth)
}

// NewReport builds the current and daily Weather from a provider response.
// The first daily entry is today. Both share the capture time of the current record.
func NewReport(current RawConditions, daily []RawConditions) Report {
	capturedAt := time.Unix(current.Dt, 0).UTC()

	temp, titles, desc := Summarize(TimeframeCurrent, current)
	report := Report{
		Current: Weather{
			CapturedAt:  capturedAt,
			Temp:        temp,
			Titles:      titles,
			Description: desc,
			DaySummary:  []string{},
		},
	}

	if len(daily) == 0 {
		slog.Warn("no daily weather returned")
		report.Daily = Weather{
			CapturedAt: capturedAt,
			Titles:     []string{},
			DaySummary: []string{},
		}
		return report
	}

	today := daily[0]
	temp, titles, desc = Summarize(TimeframeDaily, today)
	report.Daily = Weather{
		CapturedAt:  capturedAt,
		Temp:        temp,
		Titles:      titles,
		Description: desc,
		DaySummary:  DaySummaryLines(today.Summary),
	}
	return report
}

// IconForTitle maps an OpenWeatherMap condition group to an icon name.
// See https://openweathermap.org/weather-conditions
func IconForTitle(title string) (string, bool) {
	switch title {
	case "Clouds":
		return "cloud", true
	case "Mist", "Smoke", "Haze", "Dust", "Fog", "Sand", "Ash", "Squall", "Tornado":
		return "fog", true
	case "Rain", "Drizzle":
		return "rain", true
	case "Thunderstorm":
		return "lightning", true
	case "Snow":
		return "snow", true
	case "Clear":
		return "sun", true
	default:
		slog.Warn("unknown weather title", "title", title)
		return "", false
	}
}
