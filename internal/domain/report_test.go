package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewBatchReportCountsAndPreservesOrder(t *testing.T) {
	timestamp := time.Date(2026, 9, 1, 0, 15, 0, 0, time.UTC)
	results := []AccountResult{
		{MaskedIdentifier: "aa***", Succeeded: true, OutcomeText: "done"},
		{MaskedIdentifier: "bb***", Succeeded: false, OutcomeText: "authentication failed"},
		{MaskedIdentifier: "cc***", Succeeded: true, OutcomeText: "already checked in today"},
	}

	report := NewBatchReport(results, timestamp)

	assert.Equal(t, 3, report.Total)
	assert.Equal(t, 2, report.Succeeded)
	assert.Equal(t, timestamp, report.Timestamp)
	require.Len(t, report.Results, 3)
	assert.Equal(t, "aa***", report.Results[0].MaskedIdentifier)
	assert.Equal(t, "bb***", report.Results[1].MaskedIdentifier)
	assert.Equal(t, "cc***", report.Results[2].MaskedIdentifier)
}

func TestBatchReportRender(t *testing.T) {
	report := NewBatchReport([]AccountResult{
		{MaskedIdentifier: "al***", Succeeded: true, OutcomeText: "done", Supplementary: "points: 10, streak: 3 days, total: 20 days"},
		{MaskedIdentifier: "bo***", Succeeded: false, OutcomeText: "authentication failed"},
	}, time.Date(2026, 9, 1, 0, 15, 0, 0, time.UTC))

	text := report.Render("mjjbox")

	assert.Contains(t, text, "mjjbox daily check-in report")
	assert.Contains(t, text, "Date: 2026-09-01")
	assert.Contains(t, text, "Succeeded: 1/2")
	assert.Contains(t, text, "✅ al***")
	assert.Contains(t, text, "points: 10")
	assert.Contains(t, text, "❌ bo***")
	assert.Contains(t, text, "authentication failed")
}

func TestCheckinStatusLatestRecord(t *testing.T) {
	status := CheckinStatus{
		History: []CheckinRecord{
			{Date: "2026-08-30", Points: 3},
			{Date: "2026-09-01", Points: 5},
			{Date: "2026-08-31", Points: 4},
		},
	}

	latest, ok := status.LatestRecord()
	require.True(t, ok)
	assert.Equal(t, "2026-09-01", latest.Date)
	assert.Equal(t, 5, latest.Points)

	_, ok = CheckinStatus{}.LatestRecord()
	assert.False(t, ok)
}

func TestCheckinStatusSummary(t *testing.T) {
	status := CheckinStatus{
		TotalDays:       20,
		ConsecutiveDays: 3,
		Points:          120,
		History:         []CheckinRecord{{Date: "2026-09-01", Points: 5}},
	}

	summary := status.Summary()
	assert.Contains(t, summary, "points: 120")
	assert.Contains(t, summary, "streak: 3 days")
	assert.Contains(t, summary, "earned 5 on 2026-09-01")
}
