package domain

import "time"

// TemperatureRange in degrees Celsius.
type TemperatureRange struct {
	Min float64
	Max float64
}

// WeatherInfo is one day's forecast (or the current conditions) as consumed
// from the weather collaborator. Read-only to the core.
type WeatherInfo struct {
	Date          time.Time
	Temperature   TemperatureRange
	Humidity      float64
	Precipitation float64 // millimeters
	WindSpeed     float64 // km/h
	Condition     string
	Description   string
}

// OutdoorFriendly reports whether conditions are suitable for
// weather-dependent activities: light precipitation, mild temperature,
// moderate wind.
func (w WeatherInfo) OutdoorFriendly() bool {
	return w.Precipitation < 5 &&
		w.Temperature.Max < 35 &&
		w.Temperature.Min > 5 &&
		w.WindSpeed < 15
}

// Adverse reports whether conditions should push indoor attractions ahead of
// outdoor ones during selection.
func (w WeatherInfo) Adverse() bool {
	return w.Precipitation > 5 ||
		w.Temperature.Max > 35 ||
		w.Temperature.Min < 10
}
