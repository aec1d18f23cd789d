package notify

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navalha/internal/model"
)

// fakeNotifier records deliveries and can fail a number of times.
type fakeNotifier struct {
	mu       sync.Mutex
	sent     []int64
	failures int
}

func (f *fakeNotifier) SendReminder(ctx context.Context, chatID int64, appt *model.Appointment) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.failures > 0 {
		f.failures--
		return errors.New("telegram unavailable")
	}
	f.sent = append(f.sent, chatID)
	return nil
}

func (f *fakeNotifier) sentCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.sent)
}

// fakeStore serves a fixed queue and records marks.
type fakeStore struct {
	mu     sync.Mutex
	queue  []model.Appointment
	marked []int64
}

func (f *fakeStore) ListUpcomingUnreminded(ctx context.Context, within time.Duration) ([]model.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]model.Appointment, len(f.queue))
	copy(out, f.queue)
	return out, nil
}

func (f *fakeStore) MarkReminderSent(ctx context.Context, id int64) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.marked = append(f.marked, id)
	for i := range f.queue {
		if f.queue[i].ID == id {
			f.queue = append(f.queue[:i], f.queue[i+1:]...)
			break
		}
	}
	return nil
}

func testAppointment(id, chatID int64) model.Appointment {
	start := time.Now().Add(2 * time.Hour)
	return model.Appointment{
		ID:           id,
		Code:         "test-code",
		BarberID:     1,
		ClientName:   "Ana",
		ClientChatID: chatID,
		StartTime:    start,
		EndTime:      start.Add(30 * time.Minute),
		Status:       model.AppointmentStatusConfirmed,
	}
}

func newTestSender(notifier Notifier) *Sender {
	log := zerolog.Nop()
	sender := NewSender(notifier, 1000, &log, nil)
	sender.delays = nil // fail fast in tests
	return sender
}

func TestSenderDelivers(t *testing.T) {
	notifier := &fakeNotifier{}
	sender := newTestSender(notifier)

	appt := testAppointment(1, 42)
	err := sender.Send(context.Background(), &appt)
	require.NoError(t, err)
	assert.Equal(t, []int64{42}, notifier.sent)
}

func TestSenderGivesUpAfterRetries(t *testing.T) {
	notifier := &fakeNotifier{failures: 10}
	sender := newTestSender(notifier)

	appt := testAppointment(1, 42)
	err := sender.Send(context.Background(), &appt)
	require.Error(t, err)
	assert.Equal(t, 0, notifier.sentCount())
}

func TestSenderRetriesTransientFailure(t *testing.T) {
	notifier := &fakeNotifier{failures: 2}
	log := zerolog.Nop()
	sender := NewSender(notifier, 1000, &log, nil)
	sender.delays = []time.Duration{0, 0, 0}

	appt := testAppointment(1, 42)
	err := sender.Send(context.Background(), &appt)
	require.NoError(t, err)
	assert.Equal(t, 1, notifier.sentCount())
}

func TestSchedulerMarksOnlyDelivered(t *testing.T) {
	notifier := &fakeNotifier{failures: 1}
	store := &fakeStore{
		queue: []model.Appointment{
			testAppointment(1, 10),
			testAppointment(2, 20),
		},
	}

	log := zerolog.Nop()
	scheduler := NewScheduler(store, newTestSender(notifier), time.Hour, time.Minute, &log, nil)

	// First appointment fails once and is not marked; the second
	// goes through.
	scheduler.ProcessDue(context.Background())
	assert.Equal(t, []int64{2}, store.marked)

	// Next tick retries the one left in the queue.
	scheduler.ProcessDue(context.Background())
	assert.ElementsMatch(t, []int64{1, 2}, store.marked)
}

func TestSchedulerEmptyQueue(t *testing.T) {
	notifier := &fakeNotifier{}
	store := &fakeStore{}

	log := zerolog.Nop()
	scheduler := NewScheduler(store, newTestSender(notifier), time.Hour, time.Minute, &log, nil)
	scheduler.ProcessDue(context.Background())

	assert.Empty(t, store.marked)
	assert.Equal(t, 0, notifier.sentCount())
}

func TestReminderText(t *testing.T) {
	loc := time.UTC
	appt := testAppointment(1, 42)
	appt.ServiceName = "Corte"
	appt.StartTime = time.Date(2026, 1, 15, 14, 30, 0, 0, loc)

	text := reminderText(&appt, loc)
	assert.Contains(t, text, "Ana")
	assert.Contains(t, text, "Corte")
	assert.Contains(t, text, "15.01.2026")
	assert.Contains(t, text, "14:30")
	assert.Contains(t, text, appt.Code)
}
