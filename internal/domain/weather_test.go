package domain

import "testing"

func TestOutdoorFriendly(t *testing.T) {
	tests := []struct {
		name string
		w    WeatherInfo
		want bool
	}{
		{"mild day", WeatherInfo{Temperature: TemperatureRange{Min: 18, Max: 26}, Precipitation: 1, WindSpeed: 8}, true},
		{"heavy rain", WeatherInfo{Temperature: TemperatureRange{Min: 18, Max: 26}, Precipitation: 8, WindSpeed: 8}, false},
		{"heat wave", WeatherInfo{Temperature: TemperatureRange{Min: 28, Max: 36}, Precipitation: 0, WindSpeed: 8}, false},
		{"near freezing", WeatherInfo{Temperature: TemperatureRange{Min: 4, Max: 12}, Precipitation: 0, WindSpeed: 8}, false},
		{"strong wind", WeatherInfo{Temperature: TemperatureRange{Min: 18, Max: 26}, Precipitation: 0, WindSpeed: 20}, false},
	}

	for _, tc := range tests {
		if got := tc.w.OutdoorFriendly(); got != tc.want {
			t.Fatalf("%s: OutdoorFriendly() = %v, want %v", tc.name, got, tc.want)
		}
	}
}

func TestAdverse(t *testing.T) {
	tests := []struct {
		name string
		w    WeatherInfo
		want bool
	}{
		{"mild day", WeatherInfo{Temperature: TemperatureRange{Min: 18, Max: 26}, Precipitation: 1}, false},
		{"rain over threshold", WeatherInfo{Temperature: TemperatureRange{Min: 18, Max: 26}, Precipitation: 6}, true},
		{"too hot", WeatherInfo{Temperature: TemperatureRange{Min: 28, Max: 36}}, true},
		{"too cold", WeatherInfo{Temperature: TemperatureRange{Min: 8, Max: 18}}, true},
		{"boundary rain stays fine", WeatherInfo{Temperature: TemperatureRange{Min: 18, Max: 26}, Precipitation: 5}, false},
	}

	for _, tc := range tests {
		if got := tc.w.Adverse(); got != tc.want {
			t.Fatalf("%s: Adverse() = %v, want %v", tc.name, got, tc.want)
		}
	}
}
