package station

import "time"

// Observation is the latest instantaneous reading from the station.
// Optional telemetry uses pointers; nil means the station has not reported
// the field (or no snapshot has arrived yet) and propagates as absence.
type Observation struct {
	Time int64 `json:"time"`

	AirTemperature   *float64 `json:"air_temperature"`
	RelativeHumidity *float64 `json:"relative_humidity"`
	SeaLevelPressure *float64 `json:"sea_level_pressure"`
	WindAvg          *float64 `json:"wind_avg"`
	WindDirection    *int     `json:"wind_direction"`
	Visibility       *float64 `json:"visibility"`
	Icon             *string  `json:"icon"`
}

// ForecastDaily is one day of the station's daily forecast.
type ForecastDaily struct {
	Time int64 `json:"time"`

	AirTempHigh       *float64 `json:"air_temp_high"`
	AirTempLow        *float64 `json:"air_temp_low"`
	Precip            *float64 `json:"precip"`
	PrecipProbability *int     `json:"precip_probability"`
	Icon              *string  `json:"icon"`
	WindAvg           *float64 `json:"wind_avg"`
	WindDirection     *int     `json:"wind_direction"`
	Sunrise           *int64   `json:"sunrise"`
	Sunset            *int64   `json:"sunset"`
}

// ForecastHourly is one hour of the station's hourly forecast.
type ForecastHourly struct {
	Time int64 `json:"time"`

	AirTemperature    *float64 `json:"air_temperature"`
	Precip            *float64 `json:"precip"`
	PrecipProbability *int     `json:"precip_probability"`
	Icon              *string  `json:"icon"`
	WindAvg           *float64 `json:"wind_avg"`
	WindGust          *float64 `json:"wind_gust"`
	WindDirection     *int     `json:"wind_direction"`
	FeelsLike         *float64 `json:"feels_like"`
	UV                *float64 `json:"uv"`
}

// ForecastBundle is the station's full forecast document. Icon carries the
// current condition icon the station reports alongside the forecast.
type ForecastBundle struct {
	Icon   *string          `json:"icon"`
	Daily  []ForecastDaily  `json:"forecast_daily"`
	Hourly []ForecastHourly `json:"forecast_hourly"`
}

// UTCTime returns the observation time as a UTC instant.
func (o *Observation) UTCTime() time.Time {
	return time.Unix(o.Time, 0).UTC()
}
