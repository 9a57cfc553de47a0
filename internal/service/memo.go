package service

import (
	"context"
	"database/sql"
	"errors"
	"regexp"
	"strings"
	"time"

	"github.com/sunshine-community/memoboard/internal/auth"
	"github.com/sunshine-community/memoboard/internal/models"
)

// anonymousID is the caller id bound for unauthenticated listings.
// It matches no user, so only public memos satisfy the visibility
// predicate.
const anonymousID int64 = -1

// tagPattern matches a '#' followed by one or more characters that are
// neither whitespace nor '#'.
var tagPattern = regexp.MustCompile(`#[^\s#]+`)

// ExtractTags returns all non-overlapping #tags in content, joined with
// single spaces. Content without tags yields the empty string.
func ExtractTags(content string) string {
	return strings.Join(tagPattern.FindAllString(content, -1), " ")
}

// MemoRepository defines the persistence operations required by the memo
// and admin services.
type MemoRepository interface {
	// List returns memos visible to callerID, newest first, capped at
	// 200 rows, joined with the owning username and role.
	List(ctx context.Context, callerID int64, query string) ([]models.MemoView, error)
	// CreateMemo inserts a new memo owned by userID.
	CreateMemo(ctx context.Context, userID int64, content, tags string, isPrivate bool, createdAt int64) error
	// OwnerOf returns the owning user id of a memo, or sql.ErrNoRows.
	OwnerOf(ctx context.Context, id int64) (int64, error)
	// UpdateMemo replaces a memo's content and tags.
	UpdateMemo(ctx context.Context, id int64, content, tags string) error
	// DeleteMemo removes the memo with the given id.
	DeleteMemo(ctx context.Context, id int64) error
	// DeleteByUser removes every memo owned by userID.
	DeleteByUser(ctx context.Context, userID int64) error
}

// MemoService implements listing and mutation of memos.
type MemoService struct {
	memos MemoRepository
	now   func() time.Time
}

// NewMemoService constructs a MemoService using the provided repository.
func NewMemoService(memos MemoRepository) *MemoService {
	return &MemoService{memos: memos, now: time.Now}
}

// List returns the memos visible to the caller: all public memos, plus
// the caller's own private memos when claims is non-nil. An optional
// query narrows results to memos containing it.
func (s *MemoService) List(ctx context.Context, claims *auth.Claims, query string) ([]models.MemoView, error) {
	callerID := anonymousID
	if claims != nil {
		callerID = claims.ID
	}
	return s.memos.List(ctx, callerID, query)
}

// Create posts a new memo owned by the caller. Tags are derived from the
// content. Empty content fails with ErrEmptyContent.
func (s *MemoService) Create(ctx context.Context, claims *auth.Claims, content string, isPrivate bool) error {
	if content == "" {
		return ErrEmptyContent
	}
	return s.memos.CreateMemo(ctx, claims.ID, content, ExtractTags(content), isPrivate, s.now().UnixMilli())
}

// Update replaces a memo's content, re-deriving its tags. Fails with
// ErrNotFound when the memo does not exist and ErrForbidden when the
// caller is neither its owner nor an admin. Visibility and ownership are
// never changed.
func (s *MemoService) Update(ctx context.Context, claims *auth.Claims, id int64, content string) error {
	if err := s.authorize(ctx, claims, id); err != nil {
		return err
	}
	return s.memos.UpdateMemo(ctx, id, content, ExtractTags(content))
}

// Delete removes a memo. Fails with ErrNotFound when the memo does not
// exist and ErrForbidden when the caller is neither its owner nor an
// admin.
func (s *MemoService) Delete(ctx context.Context, claims *auth.Claims, id int64) error {
	if err := s.authorize(ctx, claims, id); err != nil {
		return err
	}
	return s.memos.DeleteMemo(ctx, id)
}

// authorize checks that the memo exists and the caller may mutate it.
func (s *MemoService) authorize(ctx context.Context, claims *auth.Claims, id int64) error {
	owner, err := s.memos.OwnerOf(ctx, id)
	if errors.Is(err, sql.ErrNoRows) {
		return ErrNotFound
	}
	if err != nil {
		return err
	}
	if owner != claims.ID && claims.Role != models.RoleAdmin {
		return ErrForbidden
	}
	return nil
}
