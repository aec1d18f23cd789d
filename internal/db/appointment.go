package db

import (
	"context"
	"database/sql"
	"time"

	"navalha/internal/model"
)

// CreateAppointment inserts a new appointment and sets its ID.
func (db *DB) CreateAppointment(ctx context.Context, a *model.Appointment) error {
	now := time.Now()
	res, err := db.ExecContext(ctx, `
		INSERT INTO appointments (
			code, barber_id, service_id, service_name, client_name,
			client_phone, client_chat_id, start_time, end_time,
			status, comment, reminder_sent, created_at, updated_at
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, 0, ?, ?)`,
		a.Code, a.BarberID, a.ServiceID, a.ServiceName, a.ClientName,
		a.ClientPhone, a.ClientChatID, a.StartTime, a.EndTime,
		a.Status, a.Comment, now, now,
	)
	if err != nil {
		return err
	}
	a.ID, err = res.LastInsertId()
	a.CreatedAt = now
	a.UpdatedAt = now
	return err
}

// IsSlotFree reports whether [start, end) is free for a barber.
// Touching edges count as free.
func (db *DB) IsSlotFree(ctx context.Context, barberID int64, start, end time.Time) (bool, error) {
	var count int
	err := db.QueryRowContext(ctx, `
		SELECT COUNT(*) FROM appointments
		WHERE barber_id = ?
		AND start_time < ? AND end_time > ?
		AND status != 'canceled'`,
		barberID, end, start,
	).Scan(&count)
	if err != nil {
		return false, err
	}
	return count == 0, nil
}

// GetAppointmentByCode returns an appointment by public code.
func (db *DB) GetAppointmentByCode(ctx context.Context, code string) (*model.Appointment, error) {
	row := db.QueryRowContext(ctx, appointmentSelect+" WHERE code = ?", code)
	return scanAppointment(row)
}

// CancelAppointmentByCode marks an appointment canceled. Returns
// sql.ErrNoRows when the code matches nothing still active.
func (db *DB) CancelAppointmentByCode(ctx context.Context, code string) error {
	res, err := db.ExecContext(ctx, `
		UPDATE appointments SET status = 'canceled', updated_at = ?
		WHERE code = ? AND status != 'canceled'`,
		time.Now(), code,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// ListAppointmentsForDay returns active appointments starting on the
// given calendar day. barberID zero means all barbers.
func (db *DB) ListAppointmentsForDay(ctx context.Context, barberID int64, date time.Time) ([]model.Appointment, error) {
	startOfDay := time.Date(date.Year(), date.Month(), date.Day(), 0, 0, 0, 0, date.Location())
	endOfDay := startOfDay.Add(24 * time.Hour)

	query := appointmentSelect + `
		WHERE start_time >= ? AND start_time < ?
		AND status != 'canceled'`
	args := []any{startOfDay, endOfDay}
	if barberID != 0 {
		query += " AND barber_id = ?"
		args = append(args, barberID)
	}
	query += " ORDER BY start_time"

	rows, err := db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appointments []model.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, *a)
	}
	return appointments, rows.Err()
}

// ListUpcomingUnreminded returns active appointments starting within
// the given window whose reminder has not been sent.
func (db *DB) ListUpcomingUnreminded(ctx context.Context, within time.Duration) ([]model.Appointment, error) {
	now := time.Now()
	rows, err := db.QueryContext(ctx, appointmentSelect+`
		WHERE start_time > ? AND start_time <= ?
		AND status != 'canceled'
		AND reminder_sent = 0
		AND client_chat_id != 0
		ORDER BY start_time`,
		now, now.Add(within),
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var appointments []model.Appointment
	for rows.Next() {
		a, err := scanAppointment(rows)
		if err != nil {
			return nil, err
		}
		appointments = append(appointments, *a)
	}
	return appointments, rows.Err()
}

// MarkReminderSent flags an appointment's reminder as delivered.
func (db *DB) MarkReminderSent(ctx context.Context, id int64) error {
	_, err := db.ExecContext(ctx,
		"UPDATE appointments SET reminder_sent = 1, updated_at = ? WHERE id = ?",
		time.Now(), id,
	)
	return err
}

const appointmentSelect = `
	SELECT id, code, barber_id, service_id, service_name, client_name,
	       client_phone, client_chat_id, start_time, end_time,
	       status, comment, reminder_sent, created_at, updated_at
	FROM appointments`

func scanAppointment(row rowScanner) (*model.Appointment, error) {
	var a model.Appointment
	var serviceID, chatID sql.NullInt64
	var serviceName, clientPhone, comment sql.NullString
	err := row.Scan(
		&a.ID, &a.Code, &a.BarberID, &serviceID, &serviceName, &a.ClientName,
		&clientPhone, &chatID, &a.StartTime, &a.EndTime,
		&a.Status, &comment, &a.ReminderSent, &a.CreatedAt, &a.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	a.ServiceID = serviceID.Int64
	a.ServiceName = serviceName.String
	a.ClientPhone = clientPhone.String
	a.ClientChatID = chatID.Int64
	a.Comment = comment.String
	return &a, nil
}
