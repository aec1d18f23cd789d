package model

import "time"

// Appointment statuses.
const (
	AppointmentStatusPending   = "pending"
	AppointmentStatusConfirmed = "confirmed"
	AppointmentStatusCanceled  = "canceled"
)

// Appointment is a booked service interval for one barber.
type Appointment struct {
	ID           int64     `json:"id"`
	Code         string    `json:"code"` // public cancellation code
	BarberID     int64     `json:"barber_id"`
	ServiceID    int64     `json:"service_id,omitempty"`
	ServiceName  string    `json:"service_name,omitempty"`
	ClientName   string    `json:"client_name"`
	ClientPhone  string    `json:"client_phone"`
	ClientChatID int64     `json:"client_chat_id,omitempty"`
	StartTime    time.Time `json:"start_time"`
	EndTime      time.Time `json:"end_time"`
	Status       string    `json:"status"`
	Comment      string    `json:"comment,omitempty"`
	ReminderSent bool      `json:"reminder_sent"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

// Duration returns the appointment length.
func (a *Appointment) Duration() time.Duration {
	return a.EndTime.Sub(a.StartTime)
}

// IsActive reports whether the appointment still occupies its slot.
func (a *Appointment) IsActive() bool {
	return a.Status != AppointmentStatusCanceled
}

// OverlapsWith reports whether two appointments share any time.
// Intervals are half-open, so touching edges do not overlap.
func (a *Appointment) OverlapsWith(other *Appointment) bool {
	return a.StartTime.Before(other.EndTime) && other.StartTime.Before(a.EndTime)
}

// ContainsTime reports whether t falls inside [StartTime, EndTime).
func (a *Appointment) ContainsTime(t time.Time) bool {
	return !t.Before(a.StartTime) && t.Before(a.EndTime)
}

// StartsOnDate reports whether the appointment starts on the given
// calendar day in loc. Appointments are bucketed by the local day
// they start on.
func (a *Appointment) StartsOnDate(date time.Time, loc *time.Location) bool {
	return SameDate(a.StartTime.In(loc), date)
}
