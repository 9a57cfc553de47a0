package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sunshine-community/memoboard/internal/auth"
	"github.com/sunshine-community/memoboard/internal/models"
)

// fakeMemoRepo implements MemoRepository for testing.
type fakeMemoRepo struct {
	listCallerID int64
	listQuery    string
	listResult   []models.MemoView
	listErr      error

	created *createdMemo

	owner    int64
	ownerErr error

	updated *updatedMemo

	deletedID     int64
	deletedByUser int64
	deleteErr     error
}

type createdMemo struct {
	userID    int64
	content   string
	tags      string
	isPrivate bool
	createdAt int64
}

type updatedMemo struct {
	id      int64
	content string
	tags    string
}

func (f *fakeMemoRepo) List(ctx context.Context, callerID int64, query string) ([]models.MemoView, error) {
	f.listCallerID = callerID
	f.listQuery = query
	return f.listResult, f.listErr
}

func (f *fakeMemoRepo) CreateMemo(ctx context.Context, userID int64, content, tags string, isPrivate bool, createdAt int64) error {
	f.created = &createdMemo{userID, content, tags, isPrivate, createdAt}
	return nil
}

func (f *fakeMemoRepo) OwnerOf(ctx context.Context, id int64) (int64, error) {
	return f.owner, f.ownerErr
}

func (f *fakeMemoRepo) UpdateMemo(ctx context.Context, id int64, content, tags string) error {
	f.updated = &updatedMemo{id, content, tags}
	return nil
}

func (f *fakeMemoRepo) DeleteMemo(ctx context.Context, id int64) error {
	f.deletedID = id
	return f.deleteErr
}

func (f *fakeMemoRepo) DeleteByUser(ctx context.Context, userID int64) error {
	f.deletedByUser = userID
	return nil
}

func TestExtractTags(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"two tags", "hello #world #foo bar", "#world #foo"},
		{"no tags", "plain text", ""},
		{"empty content", "", ""},
		{"tag only", "#solo", "#solo"},
		{"hash alone is not a tag", "just a # sign", ""},
		{"double hash splits", "a ##b", "#b"},
		{"stops at whitespace", "#multi\nline #tags\there", "#multi #tags"},
		{"unicode tag", "日記 #日記 today", "#日記"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ExtractTags(tt.content))
		})
	}
}

func TestMemoList_AnonymousCaller(t *testing.T) {
	repo := &fakeMemoRepo{}
	svc := NewMemoService(repo)

	_, err := svc.List(context.Background(), nil, "coffee")
	require.NoError(t, err)
	assert.Equal(t, int64(-1), repo.listCallerID)
	assert.Equal(t, "coffee", repo.listQuery)
}

func TestMemoList_AuthenticatedCaller(t *testing.T) {
	repo := &fakeMemoRepo{}
	svc := NewMemoService(repo)

	_, err := svc.List(context.Background(), &auth.Claims{ID: 7}, "")
	require.NoError(t, err)
	assert.Equal(t, int64(7), repo.listCallerID)
}

func TestMemoCreate_DerivesTags(t *testing.T) {
	repo := &fakeMemoRepo{}
	svc := NewMemoService(repo)
	svc.now = func() time.Time { return time.UnixMilli(1700000000000) }

	err := svc.Create(context.Background(), &auth.Claims{ID: 7}, "hello #world #foo bar", true)
	require.NoError(t, err)
	require.NotNil(t, repo.created)
	assert.Equal(t, int64(7), repo.created.userID)
	assert.Equal(t, "#world #foo", repo.created.tags)
	assert.True(t, repo.created.isPrivate)
	assert.Equal(t, int64(1700000000000), repo.created.createdAt)
}

func TestMemoCreate_EmptyContent(t *testing.T) {
	repo := &fakeMemoRepo{}
	svc := NewMemoService(repo)

	err := svc.Create(context.Background(), &auth.Claims{ID: 7}, "", false)
	assert.ErrorIs(t, err, ErrEmptyContent)
	assert.Nil(t, repo.created)
}

func TestMemoUpdate_OwnershipMatrix(t *testing.T) {
	tests := []struct {
		name    string
		claims  *auth.Claims
		owner   int64
		wantErr error
	}{
		{"owner may update", &auth.Claims{ID: 7, Role: models.RoleUser}, 7, nil},
		{"admin may update", &auth.Claims{ID: 1, Role: models.RoleAdmin}, 7, nil},
		{"stranger may not", &auth.Claims{ID: 9, Role: models.RoleUser}, 7, ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeMemoRepo{owner: tt.owner}
			svc := NewMemoService(repo)

			err := svc.Update(context.Background(), tt.claims, 3, "updated #x")
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Nil(t, repo.updated)
				return
			}
			require.NoError(t, err)
			require.NotNil(t, repo.updated)
			assert.Equal(t, "#x", repo.updated.tags)
		})
	}
}

func TestMemoUpdate_NotFound(t *testing.T) {
	repo := &fakeMemoRepo{ownerErr: sql.ErrNoRows}
	svc := NewMemoService(repo)

	err := svc.Update(context.Background(), &auth.Claims{ID: 7}, 404, "x")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestMemoDelete_OwnershipMatrix(t *testing.T) {
	tests := []struct {
		name    string
		claims  *auth.Claims
		owner   int64
		wantErr error
	}{
		{"owner may delete", &auth.Claims{ID: 7, Role: models.RoleUser}, 7, nil},
		{"admin may delete", &auth.Claims{ID: 1, Role: models.RoleAdmin}, 7, nil},
		{"stranger may not", &auth.Claims{ID: 9, Role: models.RoleUser}, 7, ErrForbidden},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := &fakeMemoRepo{owner: tt.owner}
			svc := NewMemoService(repo)

			err := svc.Delete(context.Background(), tt.claims, 3)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				assert.Zero(t, repo.deletedID)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, int64(3), repo.deletedID)
		})
	}
}

func TestMemoDelete_NotFound(t *testing.T) {
	repo := &fakeMemoRepo{ownerErr: sql.ErrNoRows}
	svc := NewMemoService(repo)

	err := svc.Delete(context.Background(), &auth.Claims{ID: 7}, 404)
	assert.ErrorIs(t, err, ErrNotFound)
}
