package models

// Location describes where a snapshot was measured.
type Location struct {
	Lat   float64 `json:"lat"`
	Lon   float64 `json:"lon"`
	Label string  `json:"label"`
}

// PollutantReading is one measured species in an air quality response.
type PollutantReading struct {
	Name     string  `json:"name"`
	Value    float64 `json:"value"`
	Unit     string  `json:"unit"`
	Severity string  `json:"severity"`
}

// HistoryPoint is one point of the downsampled AQI time series.
type HistoryPoint struct {
	Time  string `json:"time"`
	Value int    `json:"value"`
}

// AirQuality is the air quality portion of a dashboard response.
type AirQuality struct {
	AQI               int                         `json:"aqi"`
	Level             string                      `json:"level"`
	LevelLocalized    string                      `json:"levelLocalized"`
	DominantPollutant string                      `json:"dominantPollutant"`
	Location          Location                    `json:"location"`
	Pollutants        map[string]PollutantReading `json:"pollutants"`
	History           []HistoryPoint              `json:"history"`
	FetchedAt         Timestamp                   `json:"fetchedAt"`
}

// DayForecast is one day of the short-range weather forecast.
type DayForecast struct {
	Day     string `json:"day"`
	TempMax int    `json:"tempMax"`
	TempMin int    `json:"tempMin"`
}

// Weather is the weather portion of a dashboard response.
type Weather struct {
	TemperatureC int           `json:"temperatureC"`
	Condition    string        `json:"condition"`
	HumidityPct  int           `json:"humidityPct"`
	WindSpeedKmh float64       `json:"windSpeedKmh"`
	Forecast     []DayForecast `json:"forecast"`
	FetchedAt    Timestamp     `json:"fetchedAt"`
}

// Notification is one derived alert in a dashboard response.
type Notification struct {
	ID           string `json:"id"`
	Title        string `json:"title"`
	Message      string `json:"message"`
	Severity     string `json:"severity"`
	RelativeTime string `json:"relativeTime"`
}

// DashboardResponse is the full dashboard load.
type DashboardResponse struct {
	AirQuality    AirQuality     `json:"airQuality"`
	Weather       Weather        `json:"weather"`
	Notifications []Notification `json:"notifications"`
	LoadedAt      Timestamp      `json:"loadedAt"`
}

// InsightResponse carries the AI health summary.
type InsightResponse struct {
	Summary string `json:"summary"`
}

// LocateResponse is the resolved caller location.
type LocateResponse struct {
	Lat      float64 `json:"lat"`
	Lon      float64 `json:"lon"`
	Name     string  `json:"name"`
	Resolved bool    `json:"resolved"`
}

// City is one predefined location.
type City struct {
	Name string  `json:"name"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
}

// CitiesResponse is the predefined city list.
type CitiesResponse struct {
	Cities []City `json:"cities"`
}

// ChatRequest is a message to the assistant.
type ChatRequest struct {
	Message string `json:"message"`
	Context string `json:"context,omitempty"`
	Lang    string `json:"lang,omitempty"`
}

// ChatResponse is the assistant's reply.
type ChatResponse struct {
	Reply string `json:"reply"`
}

// CreateReportRequest is a crowdsourced observation submission.
type CreateReportRequest struct {
	Text string  `json:"text"`
	Lat  float64 `json:"lat"`
	Lon  float64 `json:"lon"`
	Name string  `json:"name,omitempty"`
}

// Report is a stored crowdsourced observation.
type Report struct {
	ID             string    `json:"id"`
	Text           string    `json:"text"`
	Location       Location  `json:"location"`
	Classification string    `json:"classification,omitempty"`
	CreatedAt      Timestamp `json:"createdAt"`
}

// ReportListResponse is a page of stored reports.
type ReportListResponse struct {
	Items      []Report `json:"items"`
	NextCursor string   `json:"nextCursor,omitempty"`
}
