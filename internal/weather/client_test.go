package weather

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestClientCurrent(t *testing.T) {
	var query map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/forecast" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		query = map[string]string{}
		for k := range r.URL.Query() {
			query[k] = r.URL.Query().Get(k)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"latitude":37.6,"current":{"time":"2025-01-01T10:00","temperature_2m":28.4,"is_day":1,"weather_code":73}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	cur, err := c.Current(context.Background(), 37.619, -84.5786)
	if err != nil {
		t.Fatalf("current: %v", err)
	}
	if cur.WeatherCode != 73 {
		t.Errorf("expected code 73, got %d", cur.WeatherCode)
	}
	if cur.TemperatureF != 28.4 {
		t.Errorf("expected 28.4F, got %f", cur.TemperatureF)
	}
	if !cur.Day() {
		t.Error("expected daytime")
	}

	want := map[string]string{
		"latitude":         "37.619",
		"longitude":        "-84.5786",
		"current":          "temperature_2m,is_day,weather_code",
		"temperature_unit": "fahrenheit",
	}
	for k, v := range want {
		if query[k] != v {
			t.Errorf("query %s: expected %q, got %q", k, v, query[k])
		}
	}
}

func TestClientStatusError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "nope", http.StatusServiceUnavailable)
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Current(context.Background(), 0, 0); err == nil {
		t.Error("expected error for 503")
	}
}

func TestClientBadJSON(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{"current":`))
	}))
	defer srv.Close()

	if _, err := NewClient(srv.URL).Current(context.Background(), 0, 0); err == nil {
		t.Error("expected decode error")
	}
}

func TestClientCanceled(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	defer srv.Close()

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := NewClient(srv.URL).Current(ctx, 0, 0); err == nil {
		t.Error("expected error for canceled context")
	}
}
