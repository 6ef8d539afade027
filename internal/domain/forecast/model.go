package forecast

// CleanedData is the processed forecast served to clients. Field names are
// part of the wire contract shared with the briefing endpoint.
type CleanedData struct {
	ReportMetadata ReportMetadata `json:"reportMetadata"`
	Summary        string         `json:"summary"`
	AreaName       string         `json:"areaName"`
	DailyRatings   []DailyRating  `json:"dailyRatings"`
}

// ReportMetadata describes who issued the report and how long it holds.
type ReportMetadata struct {
	Forecaster string `json:"forecaster"`
	DateIssued string `json:"dateIssued"`
	ValidUntil string `json:"validUntil"`
	Confidence string `json:"confidence"`
}

// DailyRating carries the danger ratings for one forecast day across the
// three elevation bands.
type DailyRating struct {
	DateDisplay         string `json:"dateDisplay"`
	DangerAlpine        string `json:"dangerAlpine"`
	DangerTreeline      string `json:"dangerTreeline"`
	DangerBelowTreeline string `json:"dangerBelowTreeline"`
}

// Config wires the coordinate the service forecasts for.
type Config struct {
	Latitude  float64
	Longitude float64
}
