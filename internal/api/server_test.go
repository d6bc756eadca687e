package api

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"weatherflow-bridge/internal/coordinator"
	"weatherflow-bridge/internal/station"
	"weatherflow-bridge/internal/weather"
)

func newTestServer() (*Server, *coordinator.Observations, *coordinator.Forecasts) {
	obs := &coordinator.Observations{}
	fc := &coordinator.Forecasts{}
	entities := weather.DefaultEntities(obs, fc, true)

	s := NewServer(ServerConfig{
		Port:         0,
		Observations: obs,
		Forecasts:    fc,
		Entities:     entities,
	})
	return s, obs, fc
}

func get(t *testing.T, s *Server, path string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	rec := httptest.NewRecorder()
	s.Router().ServeHTTP(rec, req)
	return rec
}

func TestHealthEndpoint(t *testing.T) {
	s, _, _ := newTestServer()

	rec := get(t, s, "/health")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /health = %d, want %d", rec.Code, http.StatusOK)
	}

	var body map[string]interface{}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid health JSON: %v", err)
	}
	if body["observations_ok"] != false || body["forecasts_ok"] != false {
		t.Errorf("expected both coordinators unhealthy before first refresh, got %v", body)
	}
}

func TestConditionsBeforeFirstSnapshot(t *testing.T) {
	s, _, _ := newTestServer()

	rec := get(t, s, "/api/v1/conditions")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("GET /api/v1/conditions = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}
}

func TestConditionsAfterSnapshot(t *testing.T) {
	s, obs, fc := newTestServer()

	temp := 21.4
	wind := 10.0
	icon := "rainy"
	obs.Set(&station.Observation{AirTemperature: &temp, WindAvg: &wind})
	fc.Set(&station.ForecastBundle{Icon: &icon})

	rec := get(t, s, "/api/v1/conditions")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/conditions = %d, want %d", rec.Code, http.StatusOK)
	}

	var body struct {
		Condition       *string  `json:"condition"`
		Temperature     *float64 `json:"temperature"`
		TemperatureUnit string   `json:"temperature_unit"`
		WindSpeed       *int     `json:"wind_speed"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &body); err != nil {
		t.Fatalf("invalid conditions JSON: %v", err)
	}
	if body.Condition == nil || *body.Condition != "rainy" {
		t.Errorf("condition = %v, want rainy", body.Condition)
	}
	if body.Temperature == nil || *body.Temperature != 21.4 {
		t.Errorf("temperature = %v, want 21.4", body.Temperature)
	}
	if body.TemperatureUnit != weather.TemperatureUnitCelsius {
		t.Errorf("temperature_unit = %q, want %q", body.TemperatureUnit, weather.TemperatureUnitCelsius)
	}
	if body.WindSpeed == nil || *body.WindSpeed != 36 {
		t.Errorf("wind_speed = %v, want 36", body.WindSpeed)
	}
}

func TestForecastEndpoints(t *testing.T) {
	s, _, fc := newTestServer()

	// 503 until the first forecast document arrives.
	rec := get(t, s, "/api/v1/forecast/daily")
	if rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("GET /api/v1/forecast/daily = %d, want %d", rec.Code, http.StatusServiceUnavailable)
	}

	fc.Set(&station.ForecastBundle{
		Daily:  []station.ForecastDaily{{Time: 1700000000}, {Time: 1700086400}},
		Hourly: []station.ForecastHourly{{Time: 1700000000}},
	})

	rec = get(t, s, "/api/v1/forecast/daily")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/forecast/daily = %d, want %d", rec.Code, http.StatusOK)
	}
	var daily []weather.ForecastEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &daily); err != nil {
		t.Fatalf("invalid daily forecast JSON: %v", err)
	}
	if len(daily) != 2 {
		t.Errorf("got %d daily entries, want 2", len(daily))
	}

	rec = get(t, s, "/api/v1/forecast/hourly")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/forecast/hourly = %d, want %d", rec.Code, http.StatusOK)
	}
	var hourly []weather.ForecastEntry
	if err := json.Unmarshal(rec.Body.Bytes(), &hourly); err != nil {
		t.Fatalf("invalid hourly forecast JSON: %v", err)
	}
	if len(hourly) != 1 {
		t.Errorf("got %d hourly entries, want 1", len(hourly))
	}
}

func TestEntitiesEndpoint(t *testing.T) {
	s, _, fc := newTestServer()
	fc.Set(&station.ForecastBundle{})

	rec := get(t, s, "/api/v1/entities")
	if rec.Code != http.StatusOK {
		t.Fatalf("GET /api/v1/entities = %d, want %d", rec.Code, http.StatusOK)
	}

	var states []weather.EntityState
	if err := json.Unmarshal(rec.Body.Bytes(), &states); err != nil {
		t.Fatalf("invalid entities JSON: %v", err)
	}
	if len(states) != 2 {
		t.Fatalf("got %d entities, want 2", len(states))
	}

	keys := map[string]bool{}
	for _, st := range states {
		keys[st.Key] = true
	}
	if !keys["weather_daily"] || !keys["weather_hourly"] {
		t.Errorf("unexpected entity keys: %v", keys)
	}
}
