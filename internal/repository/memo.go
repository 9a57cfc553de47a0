package repository

import (
	"context"
	"database/sql"

	"github.com/sunshine-community/memoboard/internal/models"
)

// PostgresMemoRepository implements memo persistence using a PostgreSQL database.
type PostgresMemoRepository struct {
	// DB is the database handle for executing queries.
	DB *sql.DB
}

// NewPostgresMemoRepository creates a new PostgresMemoRepository with the
// given database connection.
func NewPostgresMemoRepository(db *sql.DB) *PostgresMemoRepository {
	return &PostgresMemoRepository{DB: db}
}

// List returns memos visible to callerID: all public memos plus private
// memos owned by callerID. Anonymous callers pass a callerID that matches
// no user. When query is non-empty, results are narrowed to memos whose
// content contains it (case-insensitive). Results are joined with the
// owning username and role, newest first, capped at 200 rows.
func (r *PostgresMemoRepository) List(ctx context.Context, callerID int64, query string) ([]models.MemoView, error) {
	sqlText := `SELECT m.id, m.content, m.tags, m.is_private, m.created_at, m.user_id, u.username, u.role AS user_role
		 FROM memos m LEFT JOIN users u ON m.user_id = u.id
		 WHERE (m.is_private = 0 OR m.user_id = $1)`
	args := []any{callerID}

	if query != "" {
		sqlText += ` AND m.content ILIKE $2`
		args = append(args, "%"+query+"%")
	}
	sqlText += ` ORDER BY m.created_at DESC LIMIT 200`

	rows, err := r.DB.QueryContext(ctx, sqlText, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	memos := []models.MemoView{}
	for rows.Next() {
		var (
			v         models.MemoView
			isPrivate int
			username  sql.NullString
			userRole  sql.NullString
		)
		if err := rows.Scan(&v.ID, &v.Content, &v.Tags, &isPrivate, &v.CreatedAt, &v.UserID, &username, &userRole); err != nil {
			return nil, err
		}
		v.IsPrivate = isPrivate != 0
		v.Username = username.String
		v.UserRole = userRole.String
		memos = append(memos, v)
	}
	return memos, rows.Err()
}

// CreateMemo inserts a new memo owned by userID.
func (r *PostgresMemoRepository) CreateMemo(ctx context.Context, userID int64, content, tags string, isPrivate bool, createdAt int64) error {
	private := 0
	if isPrivate {
		private = 1
	}
	_, err := r.DB.ExecContext(
		ctx,
		`INSERT INTO memos (user_id, content, tags, is_private, created_at) VALUES ($1, $2, $3, $4, $5)`,
		userID, content, tags, private, createdAt,
	)
	return err
}

// OwnerOf returns the owning user id of the memo with the given id.
// Returns sql.ErrNoRows when the memo does not exist.
func (r *PostgresMemoRepository) OwnerOf(ctx context.Context, id int64) (int64, error) {
	var userID int64
	err := r.DB.QueryRowContext(
		ctx,
		`SELECT user_id FROM memos WHERE id = $1`,
		id,
	).Scan(&userID)
	return userID, err
}

// UpdateMemo replaces the content and derived tags of the memo with the
// given id. Visibility and ownership are never changed.
func (r *PostgresMemoRepository) UpdateMemo(ctx context.Context, id int64, content, tags string) error {
	_, err := r.DB.ExecContext(
		ctx,
		`UPDATE memos SET content = $1, tags = $2 WHERE id = $3`,
		content, tags, id,
	)
	return err
}

// DeleteMemo removes the memo with the given id.
func (r *PostgresMemoRepository) DeleteMemo(ctx context.Context, id int64) error {
	_, err := r.DB.ExecContext(
		ctx,
		`DELETE FROM memos WHERE id = $1`,
		id,
	)
	return err
}

// DeleteByUser removes every memo owned by userID.
func (r *PostgresMemoRepository) DeleteByUser(ctx context.Context, userID int64) error {
	_, err := r.DB.ExecContext(
		ctx,
		`DELETE FROM memos WHERE user_id = $1`,
		userID,
	)
	return err
}
