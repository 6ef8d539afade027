package main

import (
	"fmt"
	"io"

	"github.com/peakwatch/avybrief/internal/domain/forecast"
)

// terminalPresenter renders flow output as plain text.
type terminalPresenter struct {
	out io.Writer
}

func newTerminalPresenter(out io.Writer) *terminalPresenter {
	return &terminalPresenter{out: out}
}

func (p *terminalPresenter) RenderForecast(data forecast.CleanedData) {
	fmt.Fprintf(p.out, "%s\n", data.AreaName)
	fmt.Fprintf(p.out, "Forecaster: %s (confidence: %s)\n", data.ReportMetadata.Forecaster, data.ReportMetadata.Confidence)
	if data.ReportMetadata.DateIssued != "" {
		fmt.Fprintf(p.out, "Issued: %s", data.ReportMetadata.DateIssued)
		if data.ReportMetadata.ValidUntil != "" {
			fmt.Fprintf(p.out, "  Valid until: %s", data.ReportMetadata.ValidUntil)
		}
		fmt.Fprintln(p.out)
	}
	fmt.Fprintf(p.out, "\n%s\n\n", data.Summary)

	for _, day := range data.DailyRatings {
		fmt.Fprintf(p.out, "%s\n", day.DateDisplay)
		fmt.Fprintf(p.out, "  Alpine:         %s\n", day.DangerAlpine)
		fmt.Fprintf(p.out, "  Treeline:       %s\n", day.DangerTreeline)
		fmt.Fprintf(p.out, "  Below treeline: %s\n", day.DangerBelowTreeline)
	}
}

func (p *terminalPresenter) RenderBriefing(summary, areaName string) {
	fmt.Fprintf(p.out, "\nAI Safety Briefing for %s\n\n%s\n", areaName, summary)
}

func (p *terminalPresenter) RenderError(message string) {
	fmt.Fprintf(p.out, "\nERROR: %s\n", message)
}
