package db

import (
	"context"
	"database/sql"
	"time"

	"navalha/internal/model"
)

// CreateBarber inserts a new barber and sets their ID.
func (db *DB) CreateBarber(ctx context.Context, b *model.Barber) error {
	now := time.Now()
	res, err := db.ExecContext(ctx, `
		INSERT INTO barbers (name, phone, is_active, created_at, updated_at)
		VALUES (?, ?, 1, ?, ?)`,
		b.Name, b.Phone, now, now,
	)
	if err != nil {
		return err
	}
	b.ID, err = res.LastInsertId()
	b.IsActive = true
	return err
}

// GetBarber returns a barber by id, or sql.ErrNoRows.
func (db *DB) GetBarber(ctx context.Context, id int64) (*model.Barber, error) {
	var b model.Barber
	var phone sql.NullString
	err := db.QueryRowContext(ctx, `
		SELECT id, name, phone, is_active, created_at, updated_at
		FROM barbers WHERE id = ?`, id,
	).Scan(&b.ID, &b.Name, &phone, &b.IsActive, &b.CreatedAt, &b.UpdatedAt)
	if err != nil {
		return nil, err
	}
	b.Phone = phone.String
	return &b, nil
}

// ListActiveBarbers returns active barbers ordered by name.
func (db *DB) ListActiveBarbers(ctx context.Context) ([]model.Barber, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, phone, is_active, created_at, updated_at
		FROM barbers WHERE is_active = 1 ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var barbers []model.Barber
	for rows.Next() {
		var b model.Barber
		var phone sql.NullString
		if err := rows.Scan(&b.ID, &b.Name, &phone, &b.IsActive, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, err
		}
		b.Phone = phone.String
		barbers = append(barbers, b)
	}
	return barbers, rows.Err()
}

// DeactivateBarber hides a barber from booking without deleting history.
func (db *DB) DeactivateBarber(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx,
		"UPDATE barbers SET is_active = 0, updated_at = ? WHERE id = ?",
		time.Now(), id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// CreateService inserts a new service and sets its ID.
func (db *DB) CreateService(ctx context.Context, s *model.Service) error {
	now := time.Now()
	res, err := db.ExecContext(ctx, `
		INSERT INTO services (name, duration_minutes, price_cents, is_active, created_at, updated_at)
		VALUES (?, ?, ?, 1, ?, ?)`,
		s.Name, s.DurationMinutes, s.PriceCents, now, now,
	)
	if err != nil {
		return err
	}
	s.ID, err = res.LastInsertId()
	s.IsActive = true
	return err
}

// GetService returns a service by id, or sql.ErrNoRows.
func (db *DB) GetService(ctx context.Context, id int64) (*model.Service, error) {
	var s model.Service
	err := db.QueryRowContext(ctx, `
		SELECT id, name, duration_minutes, price_cents, is_active, created_at, updated_at
		FROM services WHERE id = ?`, id,
	).Scan(&s.ID, &s.Name, &s.DurationMinutes, &s.PriceCents, &s.IsActive, &s.CreatedAt, &s.UpdatedAt)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

// ListActiveServices returns active services ordered by name.
func (db *DB) ListActiveServices(ctx context.Context) ([]model.Service, error) {
	rows, err := db.QueryContext(ctx, `
		SELECT id, name, duration_minutes, price_cents, is_active, created_at, updated_at
		FROM services WHERE is_active = 1 ORDER BY name`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var services []model.Service
	for rows.Next() {
		var s model.Service
		if err := rows.Scan(&s.ID, &s.Name, &s.DurationMinutes, &s.PriceCents, &s.IsActive, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, err
		}
		services = append(services, s)
	}
	return services, rows.Err()
}

// DeactivateService hides a service from booking.
func (db *DB) DeactivateService(ctx context.Context, id int64) error {
	res, err := db.ExecContext(ctx,
		"UPDATE services SET is_active = 0, updated_at = ? WHERE id = ?",
		time.Now(), id,
	)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}
