package domain

import (
	"fmt"
	"strings"
	"time"
)

// AccountResult is the immutable record of one account's run.
// MaskedIdentifier is already redacted for display.
type AccountResult struct {
	MaskedIdentifier string
	Succeeded        bool
	OutcomeText      string
	// Supplementary carries best-effort status info (points, streak).
	// Empty means absent.
	Supplementary string
}

// BatchReport aggregates the ordered per-account results of one batch
// run. Results preserve input account order.
type BatchReport struct {
	Total     int
	Succeeded int
	Timestamp time.Time
	Results   []AccountResult
}

// NewBatchReport derives the aggregate counters from an ordered result
// sequence.
func NewBatchReport(results []AccountResult, timestamp time.Time) BatchReport {
	succeeded := 0
	for _, result := range results {
		if result.Succeeded {
			succeeded++
		}
	}

	return BatchReport{
		Total:     len(results),
		Succeeded: succeeded,
		Timestamp: timestamp,
		Results:   results,
	}
}

// Render formats the report as the multi-line notification text: a header
// with counts and date, then one block per account.
func (r BatchReport) Render(siteName string) string {
	var b strings.Builder

	fmt.Fprintf(&b, "🤖 %s daily check-in report\n", siteName)
	fmt.Fprintf(&b, "📅 Date: %s\n", r.Timestamp.Format("2006-01-02"))
	fmt.Fprintf(&b, "📊 Succeeded: %d/%d\n", r.Succeeded, r.Total)

	for _, result := range r.Results {
		marker := "✅"
		if !result.Succeeded {
			marker = "❌"
		}

		fmt.Fprintf(&b, "\n%s %s\n", marker, result.MaskedIdentifier)
		fmt.Fprintf(&b, "   %s\n", result.OutcomeText)
		if result.Supplementary != "" {
			fmt.Fprintf(&b, "   %s\n", result.Supplementary)
		}
	}

	return b.String()
}
