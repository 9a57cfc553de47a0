// Package repository provides PostgreSQL persistence for users, memos,
// and board settings.
package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/sunshine-community/memoboard/internal/models"
)

// ErrDuplicateUsername is returned by CreateUser when the username is
// already taken.
var ErrDuplicateUsername = errors.New("duplicate username")

// PostgresUserRepository implements user persistence using a PostgreSQL database.
type PostgresUserRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresUserRepository creates a new PostgresUserRepository with the
// given database connection.
func NewPostgresUserRepository(db *sql.DB) *PostgresUserRepository {
	return &PostgresUserRepository{DB: db}
}

// UsernameExists checks whether a user with the specified username exists.
func (r *PostgresUserRepository) UsernameExists(ctx context.Context, username string) (bool, error) {
	var exists bool
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT EXISTS(SELECT 1 FROM users WHERE username = $1)`,
		username,
	).Scan(&exists)
	return exists, err
}

// Count returns the total number of registered users.
func (r *PostgresUserRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT COUNT(*) FROM users`,
	).Scan(&count)
	return count, err
}

// CreateUser inserts a new user record. A unique-constraint violation on
// the username is reported as ErrDuplicateUsername.
func (r *PostgresUserRepository) CreateUser(ctx context.Context, username, passwordHash, role string, createdAt int64) error {
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO users (username, password, role, created_at) VALUES ($1, $2, $3, $4)`,
		username, passwordHash, role, createdAt,
	)
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && pqErr.Code == "23505" {
		return ErrDuplicateUsername
	}
	return err
}

// FindByCredentials looks up a user by username and password digest.
// Returns sql.ErrNoRows when no user matches.
func (r *PostgresUserRepository) FindByCredentials(ctx context.Context, username, passwordHash string) (*models.User, error) {
	var u models.User
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT id, username, role FROM users WHERE username = $1 AND password = $2`,
		username, passwordHash,
	).Scan(&u.ID, &u.Username, &u.Role)
	if err != nil {
		return nil, err
	}
	return &u, nil
}

// DeleteUser removes the user record with the given id.
func (r *PostgresUserRepository) DeleteUser(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(
		ctx,
		`DELETE FROM users WHERE id = $1`,
		id,
	)
	return err
}

// ListWithMemoCounts returns every user together with the number of memos
// they own, newest user first. Users with no memos report a zero count.
func (r *PostgresUserRepository) ListWithMemoCounts(ctx context.Context) ([]models.UserStat, error) {
	rows, err := r.DB.QueryContext(
		ctx,
		`SELECT u.id, u.username, u.role, u.created_at, COUNT(m.id) AS memo_count
		 FROM users u LEFT JOIN memos m ON u.id = m.user_id
		 GROUP BY u.id ORDER BY u.created_at DESC`,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	stats := []models.UserStat{}
	for rows.Next() {
		var s models.UserStat
		if err := rows.Scan(&s.ID, &s.Username, &s.Role, &s.CreatedAt, &s.MemoCount); err != nil {
			return nil, err
		}
		stats = append(stats, s)
	}
	return stats, rows.Err()
}
