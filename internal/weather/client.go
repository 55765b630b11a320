// Package weather reads the current conditions from the Open-Meteo
// forecast API.
package weather

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"
)

const DefaultBaseURL = "https://api.open-meteo.com"

// Current is the subset of the "current" block atmos uses.
type Current struct {
	Time         string  `json:"time"`
	TemperatureF float64 `json:"temperature_2m"`
	IsDay        int     `json:"is_day"`
	WeatherCode  int     `json:"weather_code"`
}

// Day reports whether the API considers it daytime at the location.
func (c Current) Day() bool { return c.IsDay == 1 }

type forecast struct {
	Current Current `json:"current"`
}

type Client struct {
	BaseURL    string
	HTTPClient *http.Client
}

func NewClient(baseURL string) *Client {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &Client{
		BaseURL:    strings.TrimRight(baseURL, "/"),
		HTTPClient: &http.Client{Timeout: 10 * time.Second},
	}
}

// Current fetches temperature (Fahrenheit), day flag and WMO weather code.
func (c *Client) Current(ctx context.Context, lat, long float64) (Current, error) {
	q := url.Values{}
	q.Set("latitude", strconv.FormatFloat(lat, 'f', -1, 64))
	q.Set("longitude", strconv.FormatFloat(long, 'f', -1, 64))
	q.Set("current", "temperature_2m,is_day,weather_code")
	q.Set("temperature_unit", "fahrenheit")
	endpoint := c.BaseURL + "/v1/forecast?" + q.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return Current{}, fmt.Errorf("weather request: %w", err)
	}
	resp, err := c.HTTPClient.Do(req)
	if err != nil {
		return Current{}, fmt.Errorf("weather fetch: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Current{}, fmt.Errorf("weather fetch: unexpected status %s", resp.Status)
	}
	var f forecast
	if err := json.NewDecoder(resp.Body).Decode(&f); err != nil {
		return Current{}, fmt.Errorf("weather decode: %w", err)
	}
	return f.Current, nil
}
