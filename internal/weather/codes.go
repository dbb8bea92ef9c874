package weather

// Describe maps a WMO weather code to a human description.
func Describe(code int) string {
	switch {
	case code == 0:
		return "Clear sky"
	case code >= 1 && code <= 3:
		return "Partly cloudy"
	case code == 45 || code == 48:
		return "Fog"
	case code >= 51 && code <= 57:
		return "Drizzle"
	case code >= 61 && code <= 67:
		return "Rain"
	case code >= 71 && code <= 77:
		return "Snow"
	case code >= 80 && code <= 82:
		return "Rain showers"
	case code >= 85 && code <= 86:
		return "Snow showers"
	case code >= 95 && code <= 99:
		return "Thunderstorm"
	}
	return "Unknown"
}

// Severe reports thunderstorm-class conditions that block travel outright.
func Severe(code int) bool {
	return code >= 95
}
