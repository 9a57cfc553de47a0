package service

import (
	"context"

	"github.com/sunshine-community/memoboard/internal/models"
)

// AdminService implements the admin dashboard, the registration gate
// toggle, and user removal.
type AdminService struct {
	users    UserRepository
	memos    MemoRepository
	settings SettingRepository
}

// NewAdminService constructs an AdminService using the provided repositories.
func NewAdminService(users UserRepository, memos MemoRepository, settings SettingRepository) *AdminService {
	return &AdminService{users: users, memos: memos, settings: settings}
}

// Dashboard returns the registration gate state and every user with their
// memo count, newest user first.
func (s *AdminService) Dashboard(ctx context.Context) (*models.Dashboard, error) {
	allowed, err := s.settings.AllowRegister(ctx)
	if err != nil {
		return nil, err
	}

	stats, err := s.users.ListWithMemoCounts(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Dashboard{AllowRegister: allowed, Users: stats}, nil
}

// ToggleRegister persists the registration gate state.
func (s *AdminService) ToggleRegister(ctx context.Context, allow bool) error {
	return s.settings.SetAllowRegister(ctx, allow)
}

// DeleteUser removes the target user and every memo they own. The memos
// go first; the two deletes are separate statements, so a failure in
// between leaves the user without memos but still present. Operators may
// not delete themselves.
func (s *AdminService) DeleteUser(ctx context.Context, operatorID, targetID int64) error {
	if operatorID == targetID {
		return ErrSelfDelete
	}

	if err := s.memos.DeleteByUser(ctx, targetID); err != nil {
		return err
	}
	return s.users.DeleteUser(ctx, targetID)
}
