package weather

import (
	"math"

	"weatherflow-bridge/internal/station"
)

// TemperatureUnitCelsius is the unit the station reports temperatures in.
// The metric flag only affects wind speed; temperature stays Celsius either
// way, matching the station firmware.
const TemperatureUnitCelsius = "°C"

// CurrentConditions is a read-only view over the latest observation
// snapshot. Every accessor tolerates a nil snapshot or a nil field and
// answers with nil; nothing here mutates the snapshot.
type CurrentConditions struct {
	obs    *station.Observation
	icon   *string
	metric bool
	table  ConditionTable
}

// NewCurrentConditions builds a view over an observation snapshot. icon is
// the current-condition icon from the forecast document, which is where the
// station reports it.
func NewCurrentConditions(obs *station.Observation, icon *string, metric bool, table ConditionTable) CurrentConditions {
	return CurrentConditions{obs: obs, icon: icon, metric: metric, table: table}
}

func (c CurrentConditions) Temperature() *float64 {
	if c.obs == nil {
		return nil
	}
	return c.obs.AirTemperature
}

func (c CurrentConditions) Humidity() *float64 {
	if c.obs == nil {
		return nil
	}
	return c.obs.RelativeHumidity
}

func (c CurrentConditions) Pressure() *float64 {
	if c.obs == nil {
		return nil
	}
	return c.obs.SeaLevelPressure
}

func (c CurrentConditions) WindBearing() *int {
	if c.obs == nil {
		return nil
	}
	return c.obs.WindDirection
}

func (c CurrentConditions) Visibility() *float64 {
	if c.obs == nil {
		return nil
	}
	return c.obs.Visibility
}

// Condition resolves the current condition icon through the table.
func (c CurrentConditions) Condition() *Condition {
	return c.table.canonicalPtr(c.icon)
}

// WindSpeed returns the wind average as an integer. The station reports
// m/s; when metric the value is converted to km/h (×3.6) before rounding.
// When imperial the raw value is rounded as-is. Rounding is math.Round,
// half away from zero (2.5 → 3).
func (c CurrentConditions) WindSpeed() *int {
	if c.obs == nil || c.obs.WindAvg == nil {
		return nil
	}
	v := *c.obs.WindAvg
	if c.metric {
		v *= 3.6
	}
	n := int(math.Round(v))
	return &n
}

func (c CurrentConditions) TemperatureUnit() string {
	return TemperatureUnitCelsius
}
