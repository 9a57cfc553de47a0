package service

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/sunshine-community/memoboard/internal/auth"
	"github.com/sunshine-community/memoboard/internal/models"
	"github.com/sunshine-community/memoboard/internal/repository"
)

// UserRepository defines the persistence operations required by the user
// and admin services.
type UserRepository interface {
	// UsernameExists returns true if a user with the given username exists.
	UsernameExists(ctx context.Context, username string) (bool, error)
	// Count returns the total number of registered users.
	Count(ctx context.Context) (int64, error)
	// CreateUser creates a new user record. Returns
	// repository.ErrDuplicateUsername when the username is taken.
	CreateUser(ctx context.Context, username, passwordHash, role string, createdAt int64) error
	// FindByCredentials looks a user up by username and password digest.
	// Returns sql.ErrNoRows when no user matches.
	FindByCredentials(ctx context.Context, username, passwordHash string) (*models.User, error)
	// DeleteUser removes the user record with the given id.
	DeleteUser(ctx context.Context, id int64) error
	// ListWithMemoCounts returns every user with their memo count,
	// newest user first.
	ListWithMemoCounts(ctx context.Context) ([]models.UserStat, error)
}

// SettingRepository defines the persistence operations for board settings.
type SettingRepository interface {
	// AllowRegister reports whether new registrations are accepted.
	AllowRegister(ctx context.Context) (bool, error)
	// SetAllowRegister persists the registration gate state.
	SetAllowRegister(ctx context.Context, allow bool) error
}

// UserService implements registration and login.
type UserService struct {
	users    UserRepository
	settings SettingRepository
	now      func() time.Time
}

// NewUserService constructs a UserService using the provided repositories.
func NewUserService(users UserRepository, settings SettingRepository) *UserService {
	return &UserService{users: users, settings: settings, now: time.Now}
}

// Register creates a new account. The first account ever created becomes
// the admin; every later one is a regular user. Fails with
// ErrRegistrationClosed when the gate is shut and ErrConflict when the
// username is taken.
func (s *UserService) Register(ctx context.Context, username, password string) error {
	allowed, err := s.settings.AllowRegister(ctx)
	if err != nil {
		return err
	}
	if !allowed {
		return ErrRegistrationClosed
	}

	exists, err := s.users.UsernameExists(ctx, username)
	if err != nil {
		return err
	}
	if exists {
		return ErrConflict
	}

	count, err := s.users.Count(ctx)
	if err != nil {
		return err
	}
	role := models.RoleUser
	if count == 0 {
		role = models.RoleAdmin
	}

	err = s.users.CreateUser(ctx, username, auth.HashPassword(password), role, s.now().UnixMilli())
	if errors.Is(err, repository.ErrDuplicateUsername) {
		return ErrConflict
	}
	return err
}

// Login verifies the supplied credentials by recomputing the password
// digest. Any mismatch is a uniform ErrBadCredentials.
func (s *UserService) Login(ctx context.Context, username, password string) (*models.User, error) {
	user, err := s.users.FindByCredentials(ctx, username, auth.HashPassword(password))
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrBadCredentials
	}
	if err != nil {
		return nil, err
	}
	return user, nil
}
