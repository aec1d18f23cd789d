package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"navalha/internal/model"
)

// defaultRetryDelays backs off between failed attempts. Exhausting
// the list gives up on the reminder; the appointment stays unmarked
// so the next tick retries it.
var defaultRetryDelays = []time.Duration{
	1 * time.Second,
	5 * time.Second,
	30 * time.Second,
}

// Sender wraps a Notifier with rate limiting and retries. Telegram
// allows roughly 30 messages per second overall; we stay well under.
type Sender struct {
	notifier Notifier
	limiter  *rate.Limiter
	delays   []time.Duration
	log      *zerolog.Logger
	metrics  *Metrics
}

// NewSender creates a sender. messagesPerSecond caps outbound rate.
func NewSender(notifier Notifier, messagesPerSecond float64, log *zerolog.Logger, metrics *Metrics) *Sender {
	if messagesPerSecond <= 0 {
		messagesPerSecond = 20
	}
	return &Sender{
		notifier: notifier,
		limiter:  rate.NewLimiter(rate.Limit(messagesPerSecond), int(messagesPerSecond)),
		delays:   defaultRetryDelays,
		log:      log,
		metrics:  metrics,
	}
}

// Send delivers one reminder, retrying transient failures.
func (s *Sender) Send(ctx context.Context, appt *model.Appointment) error {
	if err := s.limiter.Wait(ctx); err != nil {
		return err
	}

	start := time.Now()
	var lastErr error
	for attempt := 0; ; attempt++ {
		lastErr = s.notifier.SendReminder(ctx, appt.ClientChatID, appt)
		if lastErr == nil {
			s.metrics.ObserveSendDuration(time.Since(start).Seconds())
			s.metrics.IncSent("sent")
			return nil
		}
		if attempt >= len(s.delays) {
			break
		}

		s.metrics.IncRetries()
		s.log.Warn().
			Err(lastErr).
			Str("code", appt.Code).
			Int("attempt", attempt+1).
			Msg("reminder send failed, retrying")

		select {
		case <-time.After(s.delays[attempt]):
		case <-ctx.Done():
			return ctx.Err()
		}
	}

	s.metrics.IncSent("failed")
	s.log.Error().
		Err(lastErr).
		Str("code", appt.Code).
		Int64("chat_id", appt.ClientChatID).
		Msg("reminder delivery gave up")
	return lastErr
}
