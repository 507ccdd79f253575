package domain

import "fmt"

// CheckinRecord is one entry of the check-in history: the day and the
// points it earned.
type CheckinRecord struct {
	Date   string
	Points int
}

// CheckinStatus is the supplementary state a forum exposes next to the
// check-in endpoint.
type CheckinStatus struct {
	TotalDays       int
	ConsecutiveDays int
	CheckedInToday  bool
	Points          int
	History         []CheckinRecord
}

// LatestRecord returns the history entry with the maximum date. Dates are
// ISO-formatted, so lexicographic comparison orders them correctly.
func (s CheckinStatus) LatestRecord() (CheckinRecord, bool) {
	if len(s.History) == 0 {
		return CheckinRecord{}, false
	}

	latest := s.History[0]
	for _, record := range s.History[1:] {
		if record.Date > latest.Date {
			latest = record
		}
	}
	return latest, true
}

// Summary renders the status as a single display line.
func (s CheckinStatus) Summary() string {
	line := fmt.Sprintf("points: %d, streak: %d days, total: %d days", s.Points, s.ConsecutiveDays, s.TotalDays)
	if latest, ok := s.LatestRecord(); ok {
		line += fmt.Sprintf(", earned %d on %s", latest.Points, latest.Date)
	}
	return line
}
