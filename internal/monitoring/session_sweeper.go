package monitoring

import (
	"context"
	"time"

	"github.com/nvalverde/tourvia-be/internal/services"
	"github.com/robfig/cron/v3"
	"github.com/rs/zerolog/log"
)

// SessionSweeper periodically deletes expired session rows. Expiry is
// enforced lazily at resolve time, so the sweep is storage hygiene
// only: skipping a run never makes an expired token resolvable.
type SessionSweeper struct {
	sessions services.SessionServiceProvider
	cron     *cron.Cron
	schedule string
}

// NewSessionSweeper creates a sweeper with a cron schedule spec,
// e.g. "@hourly".
func NewSessionSweeper(sessions services.SessionServiceProvider, schedule string) *SessionSweeper {
	return &SessionSweeper{
		sessions: sessions,
		cron:     cron.New(),
		schedule: schedule,
	}
}

// Run registers the sweep job and starts the cron scheduler.
func (s *SessionSweeper) Run() error {
	_, err := s.cron.AddFunc(s.schedule, s.sweep)
	if err != nil {
		return err
	}
	s.cron.Start()
	log.Info().Str("schedule", s.schedule).Msg("Session sweeper started")
	return nil
}

// Stop halts the cron scheduler and waits for a running sweep to finish.
func (s *SessionSweeper) Stop() {
	ctx := s.cron.Stop()
	<-ctx.Done()
	log.Info().Msg("Session sweeper stopped")
}

func (s *SessionSweeper) sweep() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	deleted, err := s.sessions.DeleteExpired(ctx, time.Now())
	if err != nil {
		log.Error().Err(err).Msg("Session sweep failed")
		return
	}
	if deleted > 0 {
		log.Info().Int64("deleted", deleted).Msg("Swept expired sessions")
	}
}
