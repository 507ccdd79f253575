package application

import (
	"context"
	"math/rand"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/bnema/checkin-cli/internal/domain"
	"github.com/bnema/checkin-cli/internal/ports"
)

const (
	defaultDelayMin = 5 * time.Second
	defaultDelayMax = 10 * time.Second
)

// AccountRunner runs one account end to end.
type AccountRunner interface {
	RunAccount(ctx context.Context, account domain.Account, site domain.Site) domain.AccountResult
}

// BatchService runs every account in turn and aggregates the results.
//
// Execution is strictly sequential: parallel logins from one address are
// exactly the pattern forum abuse detection looks for. A randomized
// courtesy delay separates consecutive accounts for the same reason.
type BatchService struct {
	runner   AccountRunner
	notifier ports.Notifier
	clock    ports.Clock
	log      logrus.FieldLogger
	delayMin time.Duration
	delayMax time.Duration
	rng      *rand.Rand
}

type BatchOption func(*BatchService)

// WithCourtesyDelay overrides the randomized pause bounds between
// accounts.
func WithCourtesyDelay(min, max time.Duration) BatchOption {
	return func(s *BatchService) {
		s.delayMin = min
		s.delayMax = max
	}
}

// WithRand injects a deterministic random source.
func WithRand(rng *rand.Rand) BatchOption {
	return func(s *BatchService) {
		s.rng = rng
	}
}

// NewBatchService wires a batch runner. notifier may be nil when no
// notification transport is configured.
func NewBatchService(runner AccountRunner, notifier ports.Notifier, clock ports.Clock, log logrus.FieldLogger, opts ...BatchOption) *BatchService {
	if clock == nil {
		clock = ports.SystemClock{}
	}

	s := &BatchService{
		runner:   runner,
		notifier: notifier,
		clock:    clock,
		log:      log,
		delayMin: defaultDelayMin,
		delayMax: defaultDelayMax,
		rng:      rand.New(rand.NewSource(time.Now().UnixNano())),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// RunAll executes every account sequentially and returns the aggregate
// report. One account's failure never stops the loop. A cancelled
// context stops before the next account and returns the partial report
// alongside the context error; results collected so far keep their
// order.
func (s *BatchService) RunAll(ctx context.Context, accounts []domain.Account, site domain.Site) (domain.BatchReport, error) {
	if len(accounts) == 0 {
		return domain.BatchReport{}, domain.ErrNoAccounts
	}

	s.log.WithFields(logrus.Fields{"site": site.Name, "accounts": len(accounts)}).Info("starting batch run")

	results := make([]domain.AccountResult, 0, len(accounts))
	for i, account := range accounts {
		if err := ctx.Err(); err != nil {
			return domain.NewBatchReport(results, s.clock.Now()), err
		}

		results = append(results, s.runner.RunAccount(ctx, account, site))

		if i < len(accounts)-1 {
			if err := s.courtesyPause(ctx); err != nil {
				return domain.NewBatchReport(results, s.clock.Now()), err
			}
		}
	}

	report := domain.NewBatchReport(results, s.clock.Now())
	s.log.WithFields(logrus.Fields{"succeeded": report.Succeeded, "total": report.Total}).Info("batch run finished")

	return report, nil
}

// Publish renders the report and pushes it to the notifier. Delivery
// failure is logged and never affects the batch result.
func (s *BatchService) Publish(ctx context.Context, report domain.BatchReport, site domain.Site) {
	if s.notifier == nil {
		return
	}

	if err := s.notifier.Send(ctx, report.Render(site.Name)); err != nil {
		s.log.WithError(err).Error("deliver batch report notification")
		return
	}
	s.log.Info("batch report notification delivered")
}

func (s *BatchService) courtesyPause(ctx context.Context) error {
	delay := s.delayMin
	if span := s.delayMax - s.delayMin; span > 0 {
		delay += time.Duration(s.rng.Int63n(int64(span) + 1))
	}

	s.log.WithField("delay", delay.Round(time.Millisecond)).Debug("courtesy pause before next account")

	timer := time.NewTimer(delay)
	defer timer.Stop()

	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-timer.C:
		return nil
	}
}
