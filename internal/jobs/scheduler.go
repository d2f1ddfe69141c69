package jobs

import (
	"context"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog"
)

// Enqueuer hands periodic jobs to the worker stream.
type Enqueuer interface {
	Enqueue(ctx context.Context, values map[string]any) error
}

type Scheduler struct {
	cron  *cron.Cron
	queue Enqueuer
	log   zerolog.Logger
}

func NewScheduler(queue Enqueuer, log zerolog.Logger) *Scheduler {
	c := cron.New(cron.WithSeconds())
	return &Scheduler{
		cron:  c,
		queue: queue,
		log:   log,
	}
}

func (s *Scheduler) Start() error {
	if s.queue == nil {
		return nil
	}

	// Daily sweep for declarations still waiting on confirmation or resend.
	if _, err := s.cron.AddFunc("0 0 6 * * *", s.enqueueDimonaReminder); err != nil {
		return err
	}
	if _, err := s.cron.AddFunc("0 0 */1 * * *", s.enqueueSessionCleanup); err != nil { // hourly
		return err
	}

	s.cron.Start()
	return nil
}

func (s *Scheduler) Stop() context.CancelFunc {
	_, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	go func() {
		s.cron.Stop()
		cancel()
	}()
	return cancel
}

func (s *Scheduler) enqueueDimonaReminder() {
	if err := s.queue.Enqueue(context.Background(), map[string]any{
		"type": "dimona_reminder",
	}); err != nil {
		s.log.Error().Err(err).Msg("enqueue dimona reminder failed")
	}
}

func (s *Scheduler) enqueueSessionCleanup() {
	if err := s.queue.Enqueue(context.Background(), map[string]any{
		"type": "session_cleanup",
	}); err != nil {
		s.log.Error().Err(err).Msg("enqueue session cleanup failed")
	}
}
