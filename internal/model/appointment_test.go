package model

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func datetime(year int, month time.Month, day, hour, min int) time.Time {
	return time.Date(year, month, day, hour, min, 0, 0, time.UTC)
}

func TestAppointment_Duration(t *testing.T) {
	a := Appointment{
		StartTime: datetime(2026, 1, 15, 10, 0),
		EndTime:   datetime(2026, 1, 15, 11, 30),
	}
	assert.Equal(t, 90*time.Minute, a.Duration())
}

func TestAppointment_OverlapsWith(t *testing.T) {
	existing := Appointment{
		StartTime: datetime(2026, 1, 15, 10, 0),
		EndTime:   datetime(2026, 1, 15, 11, 0),
	}

	before := Appointment{
		StartTime: datetime(2026, 1, 15, 9, 0),
		EndTime:   datetime(2026, 1, 15, 10, 0),
	}
	assert.False(t, existing.OverlapsWith(&before), "touching edge is not overlap")

	after := Appointment{
		StartTime: datetime(2026, 1, 15, 11, 0),
		EndTime:   datetime(2026, 1, 15, 12, 0),
	}
	assert.False(t, existing.OverlapsWith(&after))

	front := Appointment{
		StartTime: datetime(2026, 1, 15, 9, 45),
		EndTime:   datetime(2026, 1, 15, 10, 15),
	}
	assert.True(t, existing.OverlapsWith(&front))

	contained := Appointment{
		StartTime: datetime(2026, 1, 15, 10, 15),
		EndTime:   datetime(2026, 1, 15, 10, 45),
	}
	assert.True(t, existing.OverlapsWith(&contained))
}

func TestAppointment_ContainsTime(t *testing.T) {
	a := Appointment{
		StartTime: datetime(2026, 1, 15, 10, 0),
		EndTime:   datetime(2026, 1, 15, 11, 0),
	}

	assert.True(t, a.ContainsTime(datetime(2026, 1, 15, 10, 0)))
	assert.True(t, a.ContainsTime(datetime(2026, 1, 15, 10, 30)))
	assert.False(t, a.ContainsTime(datetime(2026, 1, 15, 11, 0)))
	assert.False(t, a.ContainsTime(datetime(2026, 1, 15, 9, 59)))
}

func TestAppointment_StartsOnDate(t *testing.T) {
	a := Appointment{
		StartTime: datetime(2026, 1, 15, 23, 30),
		EndTime:   datetime(2026, 1, 16, 0, 30),
	}

	assert.True(t, a.StartsOnDate(datetime(2026, 1, 15, 0, 0), time.UTC))
	assert.False(t, a.StartsOnDate(datetime(2026, 1, 16, 0, 0), time.UTC), "bucketed by start day only")
}

func TestAppointment_IsActive(t *testing.T) {
	assert.True(t, (&Appointment{Status: AppointmentStatusPending}).IsActive())
	assert.True(t, (&Appointment{Status: AppointmentStatusConfirmed}).IsActive())
	assert.False(t, (&Appointment{Status: AppointmentStatusCanceled}).IsActive())
}

func TestWeeklyRule_AppliesTo(t *testing.T) {
	all := WeeklyRule{Weekday: time.Monday}
	assert.True(t, all.AppliesTo(5), "empty roster applies to everyone")

	some := WeeklyRule{Weekday: time.Monday, BarberIDs: []int64{1, 2}}
	assert.True(t, some.AppliesTo(2))
	assert.False(t, some.AppliesTo(5))
}
