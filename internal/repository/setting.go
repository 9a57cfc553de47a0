package repository

import (
	"context"
	"database/sql"
	"errors"
	"strconv"
)

// allowRegisterKey is the single settings row controlling registration.
const allowRegisterKey = "allow_register"

// PostgresSettingRepository implements board settings persistence using a
// PostgreSQL database.
type PostgresSettingRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresSettingRepository creates a new PostgresSettingRepository with
// the given database connection.
func NewPostgresSettingRepository(db *sql.DB) *PostgresSettingRepository {
	return &PostgresSettingRepository{DB: db}
}

// AllowRegister reports whether new registrations are accepted.
// An absent row means registration is open.
func (r *PostgresSettingRepository) AllowRegister(ctx context.Context) (bool, error) {
	var value string
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT value FROM settings WHERE key = $1`,
		allowRegisterKey,
	).Scan(&value)
	if errors.Is(err, sql.ErrNoRows) {
		return true, nil
	}
	if err != nil {
		return false, err
	}
	return value != "false", nil
}

// SetAllowRegister persists the registration gate state.
func (r *PostgresSettingRepository) SetAllowRegister(ctx context.Context, allow bool) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO settings (key, value) VALUES ($1, $2)
		 ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value`,
		allowRegisterKey, strconv.FormatBool(allow),
	)
	return err
}
