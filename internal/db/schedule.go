package db

import (
	"context"
	"database/sql"
	"strconv"
	"strings"
	"time"

	"navalha/internal/model"
)

const dateLayout = "2006-01-02"

// UpsertWeeklyRule creates or replaces the default rule for a weekday.
func (db *DB) UpsertWeeklyRule(ctx context.Context, r *model.WeeklyRule) error {
	now := time.Now()
	_, err := db.ExecContext(ctx, `
		INSERT INTO weekly_rules (
			weekday, opens_at, closes_at, lunch_start, lunch_end,
			is_closed, barber_ids, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(weekday) DO UPDATE SET
			opens_at = excluded.opens_at,
			closes_at = excluded.closes_at,
			lunch_start = excluded.lunch_start,
			lunch_end = excluded.lunch_end,
			is_closed = excluded.is_closed,
			barber_ids = excluded.barber_ids,
			updated_at = excluded.updated_at`,
		int(r.Weekday), r.OpensAt, r.ClosesAt, r.LunchStart, r.LunchEnd,
		r.IsClosed, encodeRoster(r.BarberIDs), now, now,
	)
	return err
}

// GetWeeklyRule returns the rule for a weekday, or sql.ErrNoRows.
func (db *DB) GetWeeklyRule(ctx context.Context, weekday time.Weekday) (*model.WeeklyRule, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, weekday, opens_at, closes_at, lunch_start, lunch_end,
		       is_closed, barber_ids, created_at, updated_at
		FROM weekly_rules WHERE weekday = ?`,
		int(weekday),
	)
	return scanWeeklyRule(row)
}

// ListWeeklyRules returns all weekly rules ordered by weekday.
func (db *DB) ListWeeklyRules(ctx context.Context) ([]model.WeeklyRule, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, weekday, opens_at, closes_at, lunch_start, lunch_end,
		       is_closed, barber_ids, created_at, updated_at
		FROM weekly_rules ORDER BY weekday`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []model.WeeklyRule
	for rows.Next() {
		r, err := scanWeeklyRule(rows)
		if err != nil {
			return nil, err
		}
		rules = append(rules, *r)
	}
	return rules, rows.Err()
}

// UpsertDateException creates or replaces the exception for a date.
func (db *DB) UpsertDateException(ctx context.Context, e *model.DateException) error {
	now := time.Now()
	_, err := db.ExecContext(ctx, `
		INSERT INTO date_exceptions (
			date, weekday, opens_at, closes_at, lunch_start, lunch_end,
			is_closed, barber_ids, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(date) DO UPDATE SET
			weekday = excluded.weekday,
			opens_at = excluded.opens_at,
			closes_at = excluded.closes_at,
			lunch_start = excluded.lunch_start,
			lunch_end = excluded.lunch_end,
			is_closed = excluded.is_closed,
			barber_ids = excluded.barber_ids,
			updated_at = excluded.updated_at`,
		e.Date.Format(dateLayout), int(e.Date.Weekday()),
		e.OpensAt, e.ClosesAt, e.LunchStart, e.LunchEnd,
		e.IsClosed, encodeRoster(e.BarberIDs), now, now,
	)
	return err
}

// DeleteDateException removes the exception for a date.
func (db *DB) DeleteDateException(ctx context.Context, date time.Time) error {
	res, err := db.ExecContext(ctx,
		"DELETE FROM date_exceptions WHERE date = ?", date.Format(dateLayout))
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetDateException returns the exception for a date, or sql.ErrNoRows.
func (db *DB) GetDateException(ctx context.Context, date time.Time) (*model.DateException, error) {
	row := db.QueryRowContext(ctx, `
		SELECT id, date, weekday, opens_at, closes_at, lunch_start, lunch_end,
		       is_closed, barber_ids, created_at, updated_at
		FROM date_exceptions WHERE date = ?`,
		date.Format(dateLayout),
	)
	return scanDateException(row)
}

// ListDateExceptions returns exceptions within [from, to], ordered by date.
func (db *DB) ListDateExceptions(ctx context.Context, from, to time.Time) ([]model.DateException, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, date, weekday, opens_at, closes_at, lunch_start, lunch_end,
		       is_closed, barber_ids, created_at, updated_at
		FROM date_exceptions WHERE date >= ? AND date <= ?
		ORDER BY date`,
		from.Format(dateLayout), to.Format(dateLayout),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var exceptions []model.DateException
	for rows.Next() {
		e, err := scanDateException(rows)
		if err != nil {
			return nil, err
		}
		exceptions = append(exceptions, *e)
	}
	return exceptions, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanWeeklyRule(row rowScanner) (*model.WeeklyRule, error) {
	var r model.WeeklyRule
	var weekday int
	var lunchStart, lunchEnd, roster sql.NullString
	err := row.Scan(
		&r.ID, &weekday, &r.OpensAt, &r.ClosesAt, &lunchStart, &lunchEnd,
		&r.IsClosed, &roster, &r.CreatedAt, &r.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	r.Weekday = time.Weekday(weekday)
	r.LunchStart = lunchStart.String
	r.LunchEnd = lunchEnd.String
	r.BarberIDs = decodeRoster(roster.String)
	return &r, nil
}

func scanDateException(row rowScanner) (*model.DateException, error) {
	var e model.DateException
	var dateStr string
	var weekday int
	var opensAt, closesAt, lunchStart, lunchEnd, roster sql.NullString
	err := row.Scan(
		&e.ID, &dateStr, &weekday, &opensAt, &closesAt, &lunchStart, &lunchEnd,
		&e.IsClosed, &roster, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Date, err = time.Parse(dateLayout, dateStr)
	if err != nil {
		return nil, err
	}
	e.Weekday = time.Weekday(weekday)
	e.OpensAt = opensAt.String
	e.ClosesAt = closesAt.String
	e.LunchStart = lunchStart.String
	e.LunchEnd = lunchEnd.String
	e.BarberIDs = decodeRoster(roster.String)
	return &e, nil
}

// Rosters are stored as comma-separated ids; empty means all barbers.
func encodeRoster(ids []int64) string {
	if len(ids) == 0 {
		return ""
	}
	parts := make([]string, len(ids))
	for i, id := range ids {
		parts[i] = strconv.FormatInt(id, 10)
	}
	return strings.Join(parts, ",")
}

func decodeRoster(s string) []int64 {
	if s == "" {
		return nil
	}
	var ids []int64
	for _, part := range strings.Split(s, ",") {
		id, err := strconv.ParseInt(strings.TrimSpace(part), 10, 64)
		if err != nil {
			continue
		}
		ids = append(ids, id)
	}
	return ids
}
