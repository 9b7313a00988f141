package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"treedash/pkg/response"
)

// Storage keeps per-admin dashboard preferences, the server-side home of
// what the browser used to stash in localStorage.
type Storage struct {
	db *sql.DB
}

func New(storagePath string) (*Storage, error) {
	const op = "storage.postgres.New"

	db, err := sql.Open("postgres", storagePath)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	return &Storage{db: db}, nil
}

func (s *Storage) Close() error {
	if s == nil || s.db == nil {
		return nil
	}

	return s.db.Close()
}

func (s *Storage) Migrate(ctx context.Context) error {
	const op = "storage.postgres.Migrate"

	_, err := s.db.ExecContext(ctx, `
		CREATE TABLE IF NOT EXISTS dashboard_preferences (
			subject       TEXT PRIMARY KEY,
			selected_date DATE,
			updated_at    TIMESTAMPTZ NOT NULL DEFAULT now()
		)`)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}

// #### preferences ####

func (s *Storage) GetSelectedDate(ctx context.Context, subject string) (string, error) {
	const op = "storage.postgres.GetSelectedDate"

	var date sql.NullTime

	err := s.db.QueryRowContext(ctx,
		`SELECT selected_date FROM dashboard_preferences WHERE subject=$1`,
		subject,
	).Scan(&date)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return "", fmt.Errorf("%s: %w", op, response.ErrNotFound)
		}

		return "", fmt.Errorf("%s: %w", op, err)
	}

	if !date.Valid {
		return "", fmt.Errorf("%s: %w", op, response.ErrNotFound)
	}

	return date.Time.Format("2006-01-02"), nil
}

func (s *Storage) SetSelectedDate(ctx context.Context, subject, date string) error {
	const op = "storage.postgres.SetSelectedDate"

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO dashboard_preferences (subject, selected_date, updated_at)
		VALUES ($1, $2, now())
		ON CONFLICT (subject)
		DO UPDATE
		SET selected_date = EXCLUDED.selected_date,
			updated_at = EXCLUDED.updated_at`,
		subject,
		date,
	)
	if err != nil {
		var pqErr *pq.Error
		// 22007 invalid_datetime_format, 22008 datetime_field_overflow
		if errors.As(err, &pqErr) && (pqErr.Code == "22007" || pqErr.Code == "22008") {
			return fmt.Errorf("%s: %w", op, response.ErrBadRequest)
		}

		return fmt.Errorf("%s: %w", op, err)
	}

	return nil
}
