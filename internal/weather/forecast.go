package weather

import (
	"time"

	"weatherflow-bridge/internal/station"
)

// Horizon selects the forecast granularity an entity serves.
type Horizon string

const (
	HorizonDaily  Horizon = "daily"
	HorizonHourly Horizon = "hourly"
)

// ForecastEntry is one forecast item in the host framework's attribute
// schema. Daily entries carry TempLow/Sunrise/Sunset; hourly entries carry
// FeelsLike/UVIndex/WindGust. Absent source fields stay nil and are omitted
// from the JSON payload.
type ForecastEntry struct {
	Datetime                 time.Time  `json:"datetime"`
	Condition                *Condition `json:"condition,omitempty"`
	Temperature              *float64   `json:"temperature,omitempty"`
	TempLow                  *float64   `json:"templow,omitempty"`
	Precipitation            *float64   `json:"precipitation,omitempty"`
	PrecipitationProbability *int       `json:"precipitation_probability,omitempty"`
	WindSpeed                *float64   `json:"wind_speed,omitempty"`
	WindGust                 *float64   `json:"wind_gust,omitempty"`
	WindBearing              *int       `json:"wind_bearing,omitempty"`
	Sunrise                  *time.Time `json:"sunrise,omitempty"`
	Sunset                   *time.Time `json:"sunset,omitempty"`
	FeelsLike                *float64   `json:"feels_like,omitempty"`
	UVIndex                  *float64   `json:"uv_index,omitempty"`
}

// ProjectDaily converts the station's daily forecast records into canonical
// entries. The result is freshly allocated, same length and order as the
// input; records are never mutated.
func ProjectDaily(records []station.ForecastDaily, table ConditionTable) []ForecastEntry {
	entries := make([]ForecastEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, ForecastEntry{
			Datetime:                 time.Unix(r.Time, 0).UTC(),
			Condition:                table.canonicalPtr(r.Icon),
			Temperature:              r.AirTempHigh,
			TempLow:                  r.AirTempLow,
			Precipitation:            r.Precip,
			PrecipitationProbability: r.PrecipProbability,
			WindSpeed:                r.WindAvg,
			WindBearing:              r.WindDirection,
			Sunrise:                  utcFromTimestamp(r.Sunrise),
			Sunset:                   utcFromTimestamp(r.Sunset),
		})
	}
	return entries
}

// ProjectHourly converts the station's hourly forecast records into
// canonical entries. Same allocation and ordering guarantees as
// ProjectDaily; no sunrise/sunset at this horizon.
func ProjectHourly(records []station.ForecastHourly, table ConditionTable) []ForecastEntry {
	entries := make([]ForecastEntry, 0, len(records))
	for _, r := range records {
		entries = append(entries, ForecastEntry{
			Datetime:                 time.Unix(r.Time, 0).UTC(),
			Condition:                table.canonicalPtr(r.Icon),
			Temperature:              r.AirTemperature,
			Precipitation:            r.Precip,
			PrecipitationProbability: r.PrecipProbability,
			WindSpeed:                r.WindAvg,
			WindGust:                 r.WindGust,
			WindBearing:              r.WindDirection,
			FeelsLike:                r.FeelsLike,
			UVIndex:                  r.UV,
		})
	}
	return entries
}

// utcFromTimestamp converts epoch seconds to a UTC instant, passing
// absence through.
func utcFromTimestamp(sec *int64) *time.Time {
	if sec == nil {
		return nil
	}
	t := time.Unix(*sec, 0).UTC()
	return &t
}
