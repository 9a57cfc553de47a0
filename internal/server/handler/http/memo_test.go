package http

import (
	"bytes"
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/sunshine-community/memoboard/internal/auth"
	"github.com/sunshine-community/memoboard/internal/middleware"
	"github.com/sunshine-community/memoboard/internal/models"
	"github.com/sunshine-community/memoboard/internal/service"
)

// fakeMemoService implements MemoService for testing.
type fakeMemoService struct {
	listClaims *auth.Claims
	listQuery  string
	listResult []models.MemoView
	listErr    error

	createErr error
	updateErr error
	deleteErr error
	mutatedID int64
}

func (f *fakeMemoService) List(ctx context.Context, claims *auth.Claims, query string) ([]models.MemoView, error) {
	f.listClaims = claims
	f.listQuery = query
	return f.listResult, f.listErr
}

func (f *fakeMemoService) Create(ctx context.Context, claims *auth.Claims, content string, isPrivate bool) error {
	return f.createErr
}

func (f *fakeMemoService) Update(ctx context.Context, claims *auth.Claims, id int64, content string) error {
	f.mutatedID = id
	return f.updateErr
}

func (f *fakeMemoService) Delete(ctx context.Context, claims *auth.Claims, id int64) error {
	f.mutatedID = id
	return f.deleteErr
}

// authedRequest builds a request carrying the given claims.
func authedRequest(method, target, body string, claims *auth.Claims) *http.Request {
	req := httptest.NewRequest(method, target, bytes.NewBufferString(body))
	if claims != nil {
		req = req.WithContext(middleware.ContextWithClaims(req.Context(), claims))
	}
	return req
}

// withMemoID attaches a chi URL parameter to the request.
func withMemoID(req *http.Request, id string) *http.Request {
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add("id", id)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func TestMemoHandler_List(t *testing.T) {
	t.Run("anonymous sees the public feed", func(t *testing.T) {
		svc := &fakeMemoService{listResult: []models.MemoView{}}
		handler := &MemoHandler{MemoService: svc}

		req := httptest.NewRequest(http.MethodGet, "/api/memos?q=coffee", nil)
		rec := httptest.NewRecorder()
		handler.List(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if svc.listClaims != nil {
			t.Error("expected nil claims for anonymous caller")
		}
		if svc.listQuery != "coffee" {
			t.Errorf("expected query %q, got %q", "coffee", svc.listQuery)
		}
	})

	t.Run("authenticated caller is forwarded", func(t *testing.T) {
		svc := &fakeMemoService{listResult: []models.MemoView{}}
		handler := &MemoHandler{MemoService: svc}

		claims := &auth.Claims{ID: 7, Username: "alice", Role: "user"}
		req := authedRequest(http.MethodGet, "/api/memos", "", claims)
		rec := httptest.NewRecorder()
		handler.List(rec, req)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d", rec.Code)
		}
		if svc.listClaims == nil || svc.listClaims.ID != 7 {
			t.Errorf("expected caller claims to reach the service, got %+v", svc.listClaims)
		}
	})

	t.Run("result is a JSON array", func(t *testing.T) {
		svc := &fakeMemoService{listResult: []models.MemoView{{
			Memo:     models.Memo{ID: 1, UserID: 7, Content: "hi #all", Tags: "#all", CreatedAt: 1700000000000},
			Username: "alice",
			UserRole: "user",
		}}}
		handler := &MemoHandler{MemoService: svc}

		req := httptest.NewRequest(http.MethodGet, "/api/memos", nil)
		rec := httptest.NewRecorder()
		handler.List(rec, req)

		body := rec.Body.String()
		for _, substr := range []string{`"content":"hi #all"`, `"tags":"#all"`, `"username":"alice"`, `"user_role":"user"`} {
			if !strings.Contains(body, substr) {
				t.Errorf("expected body to contain %q, got %q", substr, body)
			}
		}
	})
}

func TestMemoHandler_Create(t *testing.T) {
	claims := &auth.Claims{ID: 7, Username: "alice", Role: "user"}

	tests := []struct {
		name         string
		claims       *auth.Claims
		body         string
		service      *fakeMemoService
		expectedCode int
	}{
		{"anonymous", nil, `{"content":"hi"}`, &fakeMemoService{}, http.StatusUnauthorized},
		{"empty content", claims, `{"content":""}`, &fakeMemoService{createErr: service.ErrEmptyContent}, http.StatusBadRequest},
		{"invalid JSON", claims, `nope`, &fakeMemoService{}, http.StatusBadRequest},
		{"success", claims, `{"content":"hi #all","is_private":true}`, &fakeMemoService{}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &MemoHandler{MemoService: tt.service}

			req := authedRequest(http.MethodPost, "/api/memos", tt.body, tt.claims)
			rec := httptest.NewRecorder()
			handler.Create(rec, req)

			if rec.Code != tt.expectedCode {
				t.Errorf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
		})
	}
}

func TestMemoHandler_Update(t *testing.T) {
	claims := &auth.Claims{ID: 7, Username: "alice", Role: "user"}

	tests := []struct {
		name         string
		claims       *auth.Claims
		id           string
		service      *fakeMemoService
		expectedCode int
	}{
		{"anonymous", nil, "3", &fakeMemoService{}, http.StatusUnauthorized},
		{"unparsable id", claims, "abc", &fakeMemoService{}, http.StatusNotFound},
		{"missing memo", claims, "404", &fakeMemoService{updateErr: service.ErrNotFound}, http.StatusNotFound},
		{"not the owner", claims, "3", &fakeMemoService{updateErr: service.ErrForbidden}, http.StatusForbidden},
		{"success", claims, "3", &fakeMemoService{}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &MemoHandler{MemoService: tt.service}

			req := withMemoID(authedRequest(http.MethodPut, "/api/memos/"+tt.id, `{"content":"edited"}`, tt.claims), tt.id)
			rec := httptest.NewRecorder()
			handler.Update(rec, req)

			if rec.Code != tt.expectedCode {
				t.Errorf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
		})
	}
}

func TestMemoHandler_Delete(t *testing.T) {
	claims := &auth.Claims{ID: 7, Username: "alice", Role: "user"}

	tests := []struct {
		name         string
		claims       *auth.Claims
		id           string
		service      *fakeMemoService
		expectedCode int
	}{
		{"anonymous", nil, "3", &fakeMemoService{}, http.StatusUnauthorized},
		{"unparsable id", claims, "abc", &fakeMemoService{}, http.StatusNotFound},
		{"missing memo", claims, "404", &fakeMemoService{deleteErr: service.ErrNotFound}, http.StatusNotFound},
		{"not the owner", claims, "3", &fakeMemoService{deleteErr: service.ErrForbidden}, http.StatusForbidden},
		{"success", claims, "3", &fakeMemoService{}, http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			handler := &MemoHandler{MemoService: tt.service}

			req := withMemoID(authedRequest(http.MethodDelete, "/api/memos/"+tt.id, "", tt.claims), tt.id)
			rec := httptest.NewRecorder()
			handler.Delete(rec, req)

			if rec.Code != tt.expectedCode {
				t.Errorf("expected status %d, got %d", tt.expectedCode, rec.Code)
			}
			if tt.expectedCode == http.StatusOK && tt.service.mutatedID != 3 {
				t.Errorf("expected memo 3 to be deleted, got %d", tt.service.mutatedID)
			}
		})
	}
}
