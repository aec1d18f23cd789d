// Package notify delivers appointment reminders to clients over
// Telegram. Appointments without a chat id are never queued.
package notify

import (
	"context"
	"time"

	"navalha/internal/model"
)

// Notifier sends one reminder message to a client.
type Notifier interface {
	SendReminder(ctx context.Context, chatID int64, appt *model.Appointment) error
}

// AppointmentStore is the slice of storage the reminder loop needs.
type AppointmentStore interface {
	ListUpcomingUnreminded(ctx context.Context, within time.Duration) ([]model.Appointment, error)
	MarkReminderSent(ctx context.Context, id int64) error
}
