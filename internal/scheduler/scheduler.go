package scheduler

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"

	"treedash/internal/auth"
	"treedash/pkg/sl"
)

const subject = "scheduler"

type TrashCleaner interface {
	CleanupTrash(ctx context.Context) (int, error)
}

// Scheduler runs the nightly trash cleanup under the dashboard's own service
// token, so expired items go even when no admin opens the trash tab.
type Scheduler struct {
	log     *slog.Logger
	cron    *cron.Cron
	cleaner TrashCleaner
	header  string
	timeout time.Duration
}

func New(log *slog.Logger, cleaner TrashCleaner, spec, serviceToken string, loc *time.Location, timeout time.Duration) (*Scheduler, error) {
	const op = "scheduler.New"

	if serviceToken == "" {
		return nil, fmt.Errorf("%s: service token is empty", op)
	}
	if loc == nil {
		loc = time.UTC
	}

	log = log.With(slog.String("component", "scheduler"))

	s := &Scheduler{
		log:     log,
		cleaner: cleaner,
		header:  "Bearer " + serviceToken,
		timeout: timeout,
	}

	cronLog := cron.PrintfLogger(slog.NewLogLogger(log.Handler(), slog.LevelWarn))
	s.cron = cron.New(
		cron.WithLocation(loc),
		cron.WithChain(cron.Recover(cronLog), cron.SkipIfStillRunning(cronLog)),
	)

	if _, err := s.cron.AddFunc(spec, s.cleanup); err != nil {
		return nil, fmt.Errorf("%s: schedule %q: %w", op, spec, err)
	}

	return s, nil
}

func (s *Scheduler) Start() {
	s.cron.Start()
	for _, e := range s.cron.Entries() {
		s.log.Info("Trash cleanup scheduled", slog.Time("next", e.Next))
	}
}

// Stop waits for a running cleanup to finish or ctx to expire.
func (s *Scheduler) Stop(ctx context.Context) {
	select {
	case <-s.cron.Stop().Done():
	case <-ctx.Done():
		s.log.Warn("Scheduler stop timed out")
	}
}

func (s *Scheduler) cleanup() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	if _, err := s.RunCleanup(ctx); err != nil {
		s.log.Error("Scheduled trash cleanup failed", sl.Err(err))
	}
}

// RunCleanup performs one cleanup pass now.
func (s *Scheduler) RunCleanup(ctx context.Context) (int, error) {
	const op = "scheduler.RunCleanup"

	ctx = auth.WithSession(ctx, auth.Session{Header: s.header, Subject: subject})

	count, err := s.cleaner.CleanupTrash(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	s.log.Info("Scheduled trash cleanup finished", slog.Int("deleted", count))
	return count, nil
}
