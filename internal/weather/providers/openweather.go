package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/i474232898/eink-weather/internal/weather"
	"github.com/sony/gobreaker"
)

// excludedParts trims the One Call response down to what the display shows.
const excludedParts = "minutely,hourly,alerts"

// OpenWeatherProvider implements weather.Provider with the OpenWeatherMap One Call API.
type OpenWeatherProvider struct {
	name    string
	apiKey  string
	baseURL string
	client  *http.Client
	circuit *gobreaker.CircuitBreaker
}

// NewOpenWeatherProvider returns a provider whose circuit breaker, once open,
// refuses requests for cooldown. Keep cooldown no longer than the restart delay
// so a recovered API is tried on the next cycle.
func NewOpenWeatherProvider(client *http.Client, apiKey string, cooldown time.Duration) *OpenWeatherProvider {
	return &OpenWeatherProvider{
		name:    "openweathermap",
		apiKey:  apiKey,
		baseURL: "https://api.openweathermap.org/data/3.0/onecall",
		client:  client,
		circuit: newCircuitBreaker("openweather", cooldown),
	}
}

func (p *OpenWeatherProvider) Name() string {
	return p.name
}

// onecallResponse is the subset of the One Call payload the display uses.
type onecallResponse struct {
	Current weather.RawConditions   `json:"current"`
	Daily   []weather.RawConditions `json:"daily"`
}

func (p *OpenWeatherProvider) Fetch(ctx context.Context, loc weather.Location) (weather.Report, error) {
	if p.apiKey == "" {
		return weather.Report{}, fmt.Errorf("openweather api key is not configured")
	}

	buildRequest := func() (*http.Request, error) {
		u, err := url.Parse(p.baseURL)
		if err != nil {
			return nil, err
		}

		values := url.Values{}
		values.Set("lat", loc.Lat)
		values.Set("lon", loc.Lon)
		values.Set("appid", p.apiKey)
		values.Set("exclude", excludedParts)
		u.RawQuery = values.Encode()

		slog.Info("querying weather", "url", redactURL(u, "appid"))
		return http.NewRequest(http.MethodGet, u.String(), nil)
	}

	resp, err := doRequest(ctx, p.client, p.circuit, buildRequest)
	if err != nil {
		return weather.Report{}, err
	}
	defer resp.Body.Close()

	var payload onecallResponse
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return weather.Report{}, fmt.Errorf("decode onecall response: %w", err)
	}

	return weather.NewReport(payload.Current, payload.Daily), nil
}
