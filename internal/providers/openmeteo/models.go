package openmeteo

// ForecastAPIResponse is the subset of the Open-Meteo forecast payload the
// adapter consumes.
type ForecastAPIResponse struct {
	Timezone string  `json:"timezone"`
	Current  Current `json:"current"`
	Hourly   Hourly  `json:"hourly"`
	Daily    Daily   `json:"daily"`
}

type Current struct {
	Time             string  `json:"time"`
	Temperature2M    float64 `json:"temperature_2m"`
	ApparentTemp     float64 `json:"apparent_temperature"`
	RelativeHumidity float64 `json:"relative_humidity_2m"`
	IsDay            int     `json:"is_day"`
	WeatherCode      int     `json:"weather_code"`
	WindSpeed10M     float64 `json:"wind_speed_10m"`
	WindGusts10M     float64 `json:"wind_gusts_10m"`
	WindDirection10M float64 `json:"wind_direction_10m"`
	CloudCover       float64 `json:"cloud_cover"`
	UVIndex          float64 `json:"uv_index"`
	VisibilityM      float64 `json:"visibility"`
}

type Hourly struct {
	Time                     []string  `json:"time"`
	Temperature2M            []float64 `json:"temperature_2m"`
	RelativeHumidity2M       []float64 `json:"relative_humidity_2m"`
	PrecipitationProbability []float64 `json:"precipitation_probability"`
	WeatherCode              []int     `json:"weather_code"`
	WindSpeed10M             []float64 `json:"wind_speed_10m"`
	UVIndex                  []float64 `json:"uv_index"`
}

// ElevationAPIResponse is the Open-Meteo elevation API payload.
type ElevationAPIResponse struct {
	Elevation []float64 `json:"elevation"`
}

type Daily struct {
	Time                        []string  `json:"time"`
	Temperature2MMax            []float64 `json:"temperature_2m_max"`
	Temperature2MMin            []float64 `json:"temperature_2m_min"`
	PrecipitationProbabilityMax []float64 `json:"precipitation_probability_max"`
	WeatherCode                 []int     `json:"weather_code"`
	Sunrise                     []string  `json:"sunrise"`
	Sunset                      []string  `json:"sunset"`
}
