package tomorrowio

// ForecastAPIResponse is the subset of the Tomorrow.io v4 forecast payload
// the adapter consumes.
type ForecastAPIResponse struct {
	Timelines Timelines `json:"timelines"`
	Location  struct {
		Lat float64 `json:"lat"`
		Lon float64 `json:"lon"`
	} `json:"location"`
}

type Timelines struct {
	Hourly []TimelineEntry `json:"hourly"`
	Daily  []DailyEntry    `json:"daily"`
}

type TimelineEntry struct {
	Time   string       `json:"time"`
	Values HourlyValues `json:"values"`
}

type HourlyValues struct {
	Temperature              float64 `json:"temperature"`
	TemperatureApparent      float64 `json:"temperatureApparent"`
	Humidity                 float64 `json:"humidity"`
	DewPoint                 float64 `json:"dewPoint"`
	WindSpeed                float64 `json:"windSpeed"` // m/s in metric units
	WindGust                 float64 `json:"windGust"`
	WindDirection            float64 `json:"windDirection"`
	CloudCover               float64 `json:"cloudCover"`
	UVIndex                  float64 `json:"uvIndex"`
	UVHealthConcern          float64 `json:"uvHealthConcern"`
	Visibility               float64 `json:"visibility"` // km
	PrecipitationProbability float64 `json:"precipitationProbability"`
	PrecipitationType        float64 `json:"precipitationType"`
	ThunderstormProbability  float64 `json:"thunderstormProbability"`
	WeatherCode              int     `json:"weatherCode"`
}

type DailyEntry struct {
	Time   string      `json:"time"`
	Values DailyValues `json:"values"`
}

type DailyValues struct {
	TemperatureMax              float64 `json:"temperatureMax"`
	TemperatureMin              float64 `json:"temperatureMin"`
	PrecipitationProbabilityAvg float64 `json:"precipitationProbabilityAvg"`
	WeatherCodeMax              int     `json:"weatherCodeMax"`
	SunriseTime                 string  `json:"sunriseTime"`
	SunsetTime                  string  `json:"sunsetTime"`
	MoonPhase                   float64 `json:"moonPhase"`
	EvapotranspirationSum       float64 `json:"evapotranspirationSum"`
}
