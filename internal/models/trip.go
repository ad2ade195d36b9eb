package models

import "time"

// CityDateRange is one city plus the date window the model wants a forecast for.
// Field tags match the tool-call argument schema, so tool arguments decode
// directly into this type.
type CityDateRange struct {
	City      string `json:"city"`
	StartDate string `json:"start_date"` // YYYY-MM-DD, may be empty
	EndDate   string `json:"end_date"`   // YYYY-MM-DD, may be empty
}

// ForecastSample is one provider-returned forecast point. Never persisted.
type ForecastSample struct {
	Timestamp   time.Time
	Temperature float64 // °C
	Condition   string  // free-text description
	Humidity    int     // %
	WindSpeed   float64 // m/s
}

// DailySummary holds aggregated statistics over all samples sharing a calendar date.
type DailySummary struct {
	Date        string // YYYY-MM-DD
	AvgTemp     float64
	MinTemp     float64
	MaxTemp     float64
	Condition   string // most frequent; ties broken by first condition reaching the max count
	AvgHumidity float64
	AvgWind     float64
}

// PlanRequest is the planner's public input, marshalled from the CLI, the web
// form, or the JSON API body.
type PlanRequest struct {
	Region     string `json:"region"`
	StartDate  string `json:"start_date"` // YYYY-MM-DD
	EndDate    string `json:"end_date"`   // YYYY-MM-DD
	Preference string `json:"preference"` // "1" popular, "2" hidden gems, "3" mixed
}
