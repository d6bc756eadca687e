package weather

// Condition is one of the host framework's fixed weather states.
type Condition string

const (
	ConditionClearNight   Condition = "clear-night"
	ConditionCloudy       Condition = "cloudy"
	ConditionExceptional  Condition = "exceptional"
	ConditionFog          Condition = "fog"
	ConditionHail         Condition = "hail"
	ConditionLightning    Condition = "lightning"
	ConditionPartlyCloudy Condition = "partlycloudy"
	ConditionPouring      Condition = "pouring"
	ConditionRainy        Condition = "rainy"
	ConditionSnowy        Condition = "snowy"
	ConditionSnowyRainy   Condition = "snowy-rainy"
	ConditionSunny        Condition = "sunny"
	ConditionWindy        Condition = "windy"
)

// ConditionClass binds one canonical condition to the station icon codes
// that mean it.
type ConditionClass struct {
	Condition Condition
	Codes     []string
}

// ConditionTable maps station icon codes to canonical conditions. It is a
// slice, not a map: lookups scan in definition order and the first class
// containing the code wins, so a code listed under two classes resolves to
// the earlier one.
type ConditionTable []ConditionClass

// DefaultConditionTable covers the icon codes the WeatherFlow forecast API
// emits.
var DefaultConditionTable = ConditionTable{
	{ConditionClearNight, []string{"clear-night"}},
	{ConditionCloudy, []string{"cloudy"}},
	{ConditionFog, []string{"foggy"}},
	{ConditionPartlyCloudy, []string{"partly-cloudy-day", "partly-cloudy-night"}},
	{ConditionRainy, []string{"rainy", "possibly-rainy-day", "possibly-rainy-night"}},
	{ConditionSnowy, []string{"snow", "possibly-snow-day", "possibly-snow-night"}},
	{ConditionSnowyRainy, []string{"sleet", "possibly-sleet-day", "possibly-sleet-night"}},
	{ConditionLightning, []string{"thunderstorm", "possibly-thunderstorm-day", "possibly-thunderstorm-night"}},
	{ConditionSunny, []string{"clear-day"}},
	{ConditionWindy, []string{"windy"}},
}

// Canonical resolves a station icon code to its canonical condition.
// Unknown or empty codes return ok=false; that is the lenient-lookup
// policy, not an error.
func (t ConditionTable) Canonical(code string) (Condition, bool) {
	if code == "" {
		return "", false
	}
	for _, class := range t {
		for _, c := range class.Codes {
			if c == code {
				return class.Condition, true
			}
		}
	}
	return "", false
}

// canonicalPtr is the pointer-shaped variant used when building attribute
// payloads, where absence is nil.
func (t ConditionTable) canonicalPtr(code *string) *Condition {
	if code == nil {
		return nil
	}
	cond, ok := t.Canonical(*code)
	if !ok {
		return nil
	}
	return &cond
}
