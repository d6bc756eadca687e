package station

import (
	"encoding/json"
	"testing"
	"time"
)

func TestObservationDecodeAbsentFields(t *testing.T) {
	// A station that has just booted reports a sparse document; everything
	// missing must come through as nil, not zero.
	payload := []byte(`{"time": 1700000000, "air_temperature": 17.3}`)

	var obs Observation
	if err := json.Unmarshal(payload, &obs); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if obs.AirTemperature == nil || *obs.AirTemperature != 17.3 {
		t.Errorf("AirTemperature = %v, want 17.3", obs.AirTemperature)
	}
	if obs.RelativeHumidity != nil {
		t.Errorf("RelativeHumidity = %v, want nil", *obs.RelativeHumidity)
	}
	if obs.WindAvg != nil {
		t.Errorf("WindAvg = %v, want nil", *obs.WindAvg)
	}
	if obs.Icon != nil {
		t.Errorf("Icon = %v, want nil", *obs.Icon)
	}

	want := time.Date(2023, time.November, 14, 22, 13, 20, 0, time.UTC)
	if !obs.UTCTime().Equal(want) {
		t.Errorf("UTCTime() = %v, want %v", obs.UTCTime(), want)
	}
}

func TestForecastBundleDecode(t *testing.T) {
	payload := []byte(`{
		"icon": "partly-cloudy-day",
		"forecast_daily": [
			{"time": 1700000000, "air_temp_high": 18.5, "air_temp_low": 9.1, "sunrise": 1700000000, "sunset": 1700035200}
		],
		"forecast_hourly": [
			{"time": 1700000000, "air_temperature": 12.3, "wind_gust": 7.8, "feels_like": 10.9, "uv": 2}
		]
	}`)

	var bundle ForecastBundle
	if err := json.Unmarshal(payload, &bundle); err != nil {
		t.Fatalf("unmarshal failed: %v", err)
	}

	if bundle.Icon == nil || *bundle.Icon != "partly-cloudy-day" {
		t.Errorf("Icon = %v, want partly-cloudy-day", bundle.Icon)
	}
	if len(bundle.Daily) != 1 || len(bundle.Hourly) != 1 {
		t.Fatalf("got %d daily / %d hourly records, want 1 each", len(bundle.Daily), len(bundle.Hourly))
	}

	d := bundle.Daily[0]
	if d.AirTempHigh == nil || *d.AirTempHigh != 18.5 {
		t.Errorf("AirTempHigh = %v, want 18.5", d.AirTempHigh)
	}
	if d.Sunset == nil || *d.Sunset != 1700035200 {
		t.Errorf("Sunset = %v, want 1700035200", d.Sunset)
	}
	if d.PrecipProbability != nil {
		t.Errorf("PrecipProbability = %v, want nil", *d.PrecipProbability)
	}

	h := bundle.Hourly[0]
	if h.WindGust == nil || *h.WindGust != 7.8 {
		t.Errorf("WindGust = %v, want 7.8", h.WindGust)
	}
	if h.FeelsLike == nil || *h.FeelsLike != 10.9 {
		t.Errorf("FeelsLike = %v, want 10.9", h.FeelsLike)
	}
}
