package weather

import (
	"time"

	"weatherflow-bridge/internal/coordinator"
)

// EntityDescription identifies one weather entity towards the host
// framework.
type EntityDescription struct {
	Key  string
	Name string
}

// Entity adapts the shared coordinators into one weather entity. The
// horizon is fixed at construction; both entities read the same current
// conditions and differ only in which forecast projection they serve.
type Entity struct {
	Description EntityDescription

	observations *coordinator.Observations
	forecasts    *coordinator.Forecasts
	horizon      Horizon
	metric       bool
	table        ConditionTable
}

// EntityState is the full attribute payload for one entity, the shape the
// MQTT publisher and the API serve.
type EntityState struct {
	Key             string          `json:"key"`
	Name            string          `json:"name"`
	Available       bool            `json:"available"`
	Condition       *Condition      `json:"condition"`
	Temperature     *float64        `json:"temperature"`
	TemperatureUnit string          `json:"temperature_unit"`
	Humidity        *float64        `json:"humidity"`
	Pressure        *float64        `json:"pressure"`
	WindSpeed       *int            `json:"wind_speed"`
	WindBearing     *int            `json:"wind_bearing"`
	Visibility      *float64        `json:"visibility"`
	Forecast        []ForecastEntry `json:"forecast"`
	UpdatedAt       time.Time       `json:"updated_at"`
}

func NewEntity(desc EntityDescription, obs *coordinator.Observations, fc *coordinator.Forecasts, horizon Horizon, metric bool) *Entity {
	return &Entity{
		Description:  desc,
		observations: obs,
		forecasts:    fc,
		horizon:      horizon,
		metric:       metric,
		table:        DefaultConditionTable,
	}
}

// DefaultEntities builds the daily and hourly entity pair over shared
// coordinators.
func DefaultEntities(obs *coordinator.Observations, fc *coordinator.Forecasts, metric bool) []*Entity {
	return []*Entity{
		NewEntity(EntityDescription{Key: "weather_daily", Name: "Day based Forecast"}, obs, fc, HorizonDaily, metric),
		NewEntity(EntityDescription{Key: "weather_hourly", Name: "Hourly based Forecast"}, obs, fc, HorizonHourly, metric),
	}
}

// Available mirrors the forecast coordinator's last refresh outcome.
func (e *Entity) Available() bool {
	return e.forecasts.LastUpdateSuccess()
}

func (e *Entity) Horizon() Horizon {
	return e.horizon
}

// CurrentConditions builds the view over the latest snapshots. The current
// condition icon comes from the forecast document.
func (e *Entity) CurrentConditions() CurrentConditions {
	var icon *string
	if bundle := e.forecasts.Data(); bundle != nil {
		icon = bundle.Icon
	}
	return NewCurrentConditions(e.observations.Data(), icon, e.metric, e.table)
}

// Forecast projects the horizon fixed at construction. Nil before the
// first forecast snapshot, empty (non-nil) for an empty record list.
func (e *Entity) Forecast() []ForecastEntry {
	bundle := e.forecasts.Data()
	if bundle == nil {
		return nil
	}
	if e.horizon == HorizonDaily {
		return ProjectDaily(bundle.Daily, e.table)
	}
	return ProjectHourly(bundle.Hourly, e.table)
}

// State assembles the full attribute payload.
func (e *Entity) State() EntityState {
	current := e.CurrentConditions()
	return EntityState{
		Key:             e.Description.Key,
		Name:            e.Description.Name,
		Available:       e.Available(),
		Condition:       current.Condition(),
		Temperature:     current.Temperature(),
		TemperatureUnit: current.TemperatureUnit(),
		Humidity:        current.Humidity(),
		Pressure:        current.Pressure(),
		WindSpeed:       current.WindSpeed(),
		WindBearing:     current.WindBearing(),
		Visibility:      current.Visibility(),
		Forecast:        e.Forecast(),
		UpdatedAt:       e.forecasts.UpdatedAt(),
	}
}
