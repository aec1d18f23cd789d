package db

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"navalha/internal/model"
)

func newTestDB(t *testing.T) *DB {
	t.Helper()
	database, err := NewDB(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { database.Close() })
	return database
}

func TestUpsertWeeklyRule(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()

	rule := &model.WeeklyRule{
		Weekday:    time.Monday,
		OpensAt:    "09:00",
		ClosesAt:   "18:00",
		LunchStart: "12:00",
		LunchEnd:   "13:00",
		BarberIDs:  []int64{1, 2},
	}
	require.NoError(t, database.UpsertWeeklyRule(ctx, rule))

	got, err := database.GetWeeklyRule(ctx, time.Monday)
	require.NoError(t, err)
	assert.Equal(t, "09:00", got.OpensAt)
	assert.Equal(t, "12:00", got.LunchStart)
	assert.Equal(t, []int64{1, 2}, got.BarberIDs)

	// Upserting the same weekday replaces, never duplicates.
	rule.OpensAt = "10:00"
	rule.BarberIDs = nil
	require.NoError(t, database.UpsertWeeklyRule(ctx, rule))

	rules, err := database.ListWeeklyRules(ctx)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "10:00", rules[0].OpensAt)
	assert.Empty(t, rules[0].BarberIDs)
}

func TestDateExceptionLifecycle(t *testing.T) {
	database := newTestDB(t)
	ctx := context.Background()
	day := time.Date(2026, 9, 7, 0, 0, 0, 0, time.UTC)

	_, err := database.GetDateException(ctx, day)
	assert.ErrorIs(t, err, sql.ErrNoRows)

	ex := &model.DateException{
		Date:     day,
		IsClosed: true,
	}
	require.NoError(t, database.UpsertDateException(ctx, ex))

	got, err := database.GetDateException(ctx, day)
	require.NoError(t, err)
	assert.True(t, got.IsClosed)
	assert.Equal(t, time.Monday, got.Weekday)
	assert.Equal(t, day, got.Date)

	// Replacing the same date keeps the one-per-date invariant.
	ex.IsClosed = false
	ex.OpensAt = "10:00"
	ex.ClosesAt = "14:00"
	require.NoError(t, database.UpsertDateException(ctx, ex))

	list, err := database.ListDateExceptions(ctx, day.AddDate(0, 0, -1), day.AddDate(0, 0, 1))
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "10:00", list[0].OpensAt)

	require.NoError(t, database.DeleteDateException(ctx, day))
	assert.ErrorIs(t, database.DeleteDateException(ctx, day), sql.ErrNoRows)
}

func TestRosterRoundTrip(t *testing.T) {
	assert.Equal(t, "", encodeRoster(nil))
	assert.Equal(t, "3,7,11", encodeRoster([]int64{3, 7, 11}))
	assert.Nil(t, decodeRoster(""))
	assert.Equal(t, []int64{3, 7, 11}, decodeRoster("3,7,11"))
}
