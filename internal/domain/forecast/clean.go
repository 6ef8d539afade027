package forecast

import (
	"regexp"
	"strings"

	"github.com/peakwatch/avybrief/internal/infra/avcan"
)

const (
	notAvailable    = "N/A"
	defaultSummary  = "No summary provided."
	defaultAreaName = "Avalanche Area"
)

var htmlTagPattern = regexp.MustCompile(`<[^<]+?>`)

// Clean extracts the displayable forecast content from a raw product. The
// second return value is false when the product holds nothing usable.
func Clean(product *avcan.Product) (CleanedData, bool) {
	if product == nil || product.Report == nil {
		return CleanedData{}, false
	}
	report := product.Report

	metadata := ReportMetadata{
		Forecaster: defaultString(report.Forecaster, notAvailable),
		DateIssued: report.DateIssued,
		ValidUntil: report.ValidUntil,
		Confidence: defaultString(report.Confidence.Rating.Display, notAvailable),
	}

	ratings := make([]DailyRating, 0, len(report.DangerRatings))
	for _, day := range report.DangerRatings {
		ratings = append(ratings, DailyRating{
			DateDisplay:         defaultString(day.Date.Display, notAvailable),
			DangerAlpine:        defaultString(day.Ratings.Alpine.Rating.Display, notAvailable),
			DangerTreeline:      defaultString(day.Ratings.Treeline.Rating.Display, notAvailable),
			DangerBelowTreeline: defaultString(day.Ratings.BelowTreeline.Rating.Display, notAvailable),
		})
	}

	return CleanedData{
		ReportMetadata: metadata,
		Summary:        stripHTML(defaultString(report.Highlights, defaultSummary)),
		AreaName:       defaultString(product.Area.Name, defaultAreaName),
		DailyRatings:   ratings,
	}, true
}

func stripHTML(text string) string {
	return strings.TrimSpace(htmlTagPattern.ReplaceAllString(text, ""))
}

func defaultString(value, fallback string) string {
	if strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
