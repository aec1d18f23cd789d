package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// Scheduler periodically scans for appointments entering the
// reminder window and pushes them through the sender. An appointment
// is marked only after a successful delivery, so failures are
// retried on the next tick.
type Scheduler struct {
	store    AppointmentStore
	sender   *Sender
	lead     time.Duration
	interval time.Duration
	log      *zerolog.Logger
	metrics  *Metrics
}

// NewScheduler creates a scheduler that wakes every interval and
// reminds about appointments starting within lead.
func NewScheduler(store AppointmentStore, sender *Sender, lead, interval time.Duration, log *zerolog.Logger, metrics *Metrics) *Scheduler {
	if lead <= 0 {
		lead = 24 * time.Hour
	}
	if interval <= 0 {
		interval = 5 * time.Minute
	}
	return &Scheduler{
		store:    store,
		sender:   sender,
		lead:     lead,
		interval: interval,
		log:      log,
		metrics:  metrics,
	}
}

// Run blocks until ctx is canceled. It processes one batch
// immediately on start, then on every tick.
func (s *Scheduler) Run(ctx context.Context) {
	s.log.Info().
		Dur("lead", s.lead).
		Dur("interval", s.interval).
		Msg("reminder scheduler started")

	s.ProcessDue(ctx)

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.log.Info().Msg("reminder scheduler stopped")
			return
		case <-ticker.C:
			s.ProcessDue(ctx)
		}
	}
}

// ProcessDue sends reminders for every appointment in the window.
func (s *Scheduler) ProcessDue(ctx context.Context) {
	appointments, err := s.store.ListUpcomingUnreminded(ctx, s.lead)
	if err != nil {
		s.log.Error().Err(err).Msg("failed to fetch reminder queue")
		return
	}
	s.metrics.SetQueueSize(len(appointments))
	if len(appointments) == 0 {
		return
	}

	sent := 0
	for i := range appointments {
		if ctx.Err() != nil {
			return
		}
		appt := &appointments[i]
		if err := s.sender.Send(ctx, appt); err != nil {
			continue
		}
		if err := s.store.MarkReminderSent(ctx, appt.ID); err != nil {
			s.log.Error().Err(err).Str("code", appt.Code).Msg("failed to mark reminder sent")
			continue
		}
		sent++
	}

	s.log.Info().
		Int("queued", len(appointments)).
		Int("sent", sent).
		Msg("reminder batch processed")
}
