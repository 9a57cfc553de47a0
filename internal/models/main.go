// Package models defines the core data structures for users, memos and
// board settings.
package models

// Role values assigned to users at registration time.
const (
	// RoleAdmin is held by the bootstrap account only.
	RoleAdmin = "admin"
	// RoleUser is the role of every account registered after the first.
	RoleUser = "user"
)

// User represents an application user with credentials.
type User struct {
	// ID is the unique identifier for the user.
	ID int64 `json:"id"`
	// Username is the login name chosen by the user.
	Username string `json:"username"`
	// PasswordHash is the hex digest of the user's password. Never serialized.
	PasswordHash string `json:"-"`
	// Role is either RoleAdmin or RoleUser, fixed at creation.
	Role string `json:"role"`
	// CreatedAt is the registration time in epoch milliseconds.
	CreatedAt int64 `json:"created_at"`
}

// Memo is a short markdown note posted by a user.
type Memo struct {
	// ID is the unique identifier for the memo.
	ID int64 `json:"id"`
	// UserID references the owning user.
	UserID int64 `json:"user_id"`
	// Content is the raw markdown source.
	Content string `json:"content"`
	// Tags holds the space-joined #tags derived from Content.
	Tags string `json:"tags"`
	// IsPrivate hides the memo from everyone but its owner.
	IsPrivate bool `json:"is_private"`
	// CreatedAt is the posting time in epoch milliseconds.
	CreatedAt int64 `json:"created_at"`
}

// MemoView is a memo joined with its owner's public attributes,
// as returned by the listing endpoint.
type MemoView struct {
	Memo
	// Username of the owner; empty if the owner no longer exists.
	Username string `json:"username"`
	// UserRole of the owner; empty if the owner no longer exists.
	UserRole string `json:"user_role"`
}

// UserStat is a dashboard row: one user plus the number of memos they own.
type UserStat struct {
	ID        int64  `json:"id"`
	Username  string `json:"username"`
	Role      string `json:"role"`
	CreatedAt int64  `json:"created_at"`
	MemoCount int64  `json:"memo_count"`
}

// Dashboard aggregates the admin overview: the registration gate state
// and per-user memo counts, newest user first.
type Dashboard struct {
	AllowRegister bool       `json:"allowRegister"`
	Users         []UserStat `json:"users"`
}
