package application

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bnema/checkin-cli/internal/domain"
	"github.com/bnema/checkin-cli/internal/ports"
)

// ScheduleService samples the next run instant and pushes the resulting
// interval to the external monitor that triggers the batch.
type ScheduleService struct {
	monitor  ports.MonitorClient
	clock    ports.Clock
	log      logrus.FieldLogger
	location *time.Location
	rng      *rand.Rand
}

func NewScheduleService(monitor ports.MonitorClient, clock ports.Clock, location *time.Location, log logrus.FieldLogger) *ScheduleService {
	if clock == nil {
		clock = ports.SystemClock{}
	}
	if location == nil {
		location = time.UTC
	}

	return &ScheduleService{
		monitor:  monitor,
		clock:    clock,
		log:      log,
		location: location,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

// WithScheduleRand injects a deterministic random source.
func (s *ScheduleService) WithScheduleRand(rng *rand.Rand) *ScheduleService {
	s.rng = rng
	return s
}

// Reschedule computes tomorrow's randomized run time within the window
// and updates the monitor's polling interval accordingly.
func (s *ScheduleService) Reschedule(ctx context.Context, startMinute, endMinute, monitorID int) (domain.ScheduleDecision, error) {
	now := s.clock.Now().In(s.location)

	decision, err := domain.ComputeNextInterval(startMinute, endMinute, now, s.rng)
	if err != nil {
		return domain.ScheduleDecision{}, err
	}

	s.log.WithFields(logrus.Fields{
		"next_run":   decision.NextRun.Format(time.RFC3339),
		"interval_s": decision.IntervalSeconds,
		"monitor_id": monitorID,
	}).Info("next run sampled")

	if err := s.monitor.SetInterval(ctx, monitorID, decision.IntervalSeconds); err != nil {
		return decision, fmt.Errorf("update monitor interval: %w", err)
	}

	return decision, nil
}
