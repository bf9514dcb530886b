package models

import "time"

// ReportRanges maps the report range keys to their labels
var ReportRanges = []struct {
	Key   string
	Label string
}{
	{"7d", "Last 7 Days"},
	{"30d", "Last 30 Days"},
	{"90d", "Last 90 Days"},
	{"1y", "Last Year"},
}

// ReportRangeStart returns the start of a report range; unknown keys mean 30 days
func ReportRangeStart(key string, now time.Time) time.Time {
	switch key {
	case "7d":
		return now.AddDate(0, 0, -7)
	case "90d":
		return now.AddDate(0, 0, -90)
	case "1y":
		return now.AddDate(-1, 0, 0)
	default:
		return now.AddDate(0, 0, -30)
	}
}

// NormalizeReportRange returns key when known, "30d" otherwise
func NormalizeReportRange(key string) string {
	for _, r := range ReportRanges {
		if r.Key == key {
			return key
		}
	}
	return "30d"
}

// StatusCounts counts applications per status
type StatusCounts struct {
	Total    int `json:"total"`
	Pending  int `json:"pending"`
	InReview int `json:"in_review"`
	Approved int `json:"approved"`
	Rejected int `json:"rejected"`
}

// BusinessTypeShare is one row of the business type breakdown
type BusinessTypeShare struct {
	Type       string `json:"type"`
	Count      int    `json:"count"`
	Percentage int    `json:"percentage"`
}

// MonthlyPoint is one month of the submission series
type MonthlyPoint struct {
	Month        string `json:"month"`
	Applications int    `json:"applications"`
	Approved     int    `json:"approved"`
	Rejected     int    `json:"rejected"`
}

// Report is the computed summary shown on the reports page
type Report struct {
	Range             string              `json:"range"`
	GeneratedAt       time.Time           `json:"generated_at"`
	Counts            StatusCounts        `json:"counts"`
	ApprovalRate      int                 `json:"approval_rate"`
	RejectionRate     int                 `json:"rejection_rate"`
	AvgProcessingDays float64             `json:"avg_processing_days"`
	SLACompliance     int                 `json:"sla_compliance"`
	SLAHours          int                 `json:"sla_hours"`
	BusinessTypes     []BusinessTypeShare `json:"business_types"`
	Monthly           []MonthlyPoint      `json:"monthly"`
}
