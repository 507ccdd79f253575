package domain

import (
	"fmt"
	"math/rand"
	"time"
)

// MinIntervalSeconds is the floor imposed by the downstream monitor API's
// minimum polling granularity.
const MinIntervalSeconds = 20

// ScheduleDecision is the sampled next run time and the whole-seconds
// delay until it.
type ScheduleDecision struct {
	IntervalSeconds int
	NextRun         time.Time
}

// ComputeNextInterval samples a uniformly random instant inside
// tomorrow's [startMinute, endMinute] window (minutes past local
// midnight, in now's location) and returns the floored whole-seconds
// delay until it, clamped up to MinIntervalSeconds.
//
// The same (startMinute, endMinute, now, rng state) reproduces the same
// decision.
func ComputeNextInterval(startMinute, endMinute int, now time.Time, rng *rand.Rand) (ScheduleDecision, error) {
	if endMinute <= startMinute {
		return ScheduleDecision{}, fmt.Errorf("%w: end minute %d must be greater than start minute %d",
			ErrInvalidWindow, endMinute, startMinute)
	}

	year, month, day := now.AddDate(0, 0, 1).Date()
	midnight := time.Date(year, month, day, 0, 0, 0, 0, now.Location())

	windowStart := midnight.Add(time.Duration(startMinute) * time.Minute)
	windowEnd := midnight.Add(time.Duration(endMinute) * time.Minute)

	span := int(windowEnd.Sub(windowStart) / time.Second)
	offset := rng.Intn(span + 1)
	nextRun := windowStart.Add(time.Duration(offset) * time.Second)

	interval := int(nextRun.Sub(now) / time.Second)
	if interval < MinIntervalSeconds {
		interval = MinIntervalSeconds
	}

	return ScheduleDecision{IntervalSeconds: interval, NextRun: nextRun}, nil
}
