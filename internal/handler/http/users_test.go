package http

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/MKhiriev/go-session-auth/internal/service"
	"github.com/MKhiriev/go-session-auth/models"
)

func TestCreateUser_TableTest(t *testing.T) {
	tests := []struct {
		name       string
		body       string
		registerFn func(ctx context.Context, req models.RegisterRequest) (models.User, error)
		wantStatus int
		wantBody   string
	}{
		{
			name: "created",
			body: `{"email":"bob@hbtn.io","password":"H0lberton","first_name":"Bob"}`,
			registerFn: func(_ context.Context, req models.RegisterRequest) (models.User, error) {
				return models.User{ID: "u1", Email: req.Email, FirstName: req.FirstName, HashedPassword: "$2a$secret"}, nil
			},
			wantStatus: http.StatusCreated,
		},
		{
			name:       "invalid JSON",
			body:       `{"email":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Wrong format"}`,
		},
		{
			name:       "email missing",
			body:       `{"password":"pw"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"email missing"}`,
		},
		{
			name:       "password missing",
			body:       `{"email":"bob@hbtn.io"}`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"password missing"}`,
		},
		{
			name: "duplicate email",
			body: `{"email":"bob@hbtn.io","password":"pw"}`,
			registerFn: func(_ context.Context, _ models.RegisterRequest) (models.User, error) {
				return models.User{}, service.ErrAlreadyExists
			},
			wantStatus: http.StatusConflict,
			wantBody:   `{"error":"email already registered"}`,
		},
		{
			name: "storage failure",
			body: `{"email":"bob@hbtn.io","password":"pw"}`,
			registerFn: func(_ context.Context, _ models.RegisterRequest) (models.User, error) {
				return models.User{}, errors.New("connection refused")
			},
			wantStatus: http.StatusInternalServerError,
			wantBody:   `{"error":"Internal Server Error"}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := newTestHandler(&mockAuthService{registerFn: tt.registerFn}, nil)

			req := httptest.NewRequest(http.MethodPost, "/api/v1/users", strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := serve(h, req)

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rr.Body.String())
			}
			assert.NotContains(t, rr.Body.String(), "$2a$secret")
		})
	}
}

func TestMe(t *testing.T) {
	h := newTestHandler(&mockAuthService{
		resolveIdentityFn: func(_ context.Context, _ *http.Request) (models.User, error) {
			return models.User{ID: "u1", Email: "bob@hbtn.io"}, nil
		},
	}, nil)

	rr := serve(h, withSessionCookie(httptest.NewRequest(http.MethodGet, "/api/v1/users/me", nil), "tok"))

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"email":"bob@hbtn.io"`)
}

func TestGetUser(t *testing.T) {
	h := newTestHandler(&mockAuthService{
		resolveIdentityFn: func(_ context.Context, _ *http.Request) (models.User, error) {
			return models.User{ID: "u1"}, nil
		},
	}, &mockUserService{
		getUserFn: func(_ context.Context, id string) (models.User, error) {
			if id == "u2" {
				return models.User{ID: "u2", Email: "alice@hbtn.io"}, nil
			}
			return models.User{}, service.ErrNotFound
		},
	})

	rr := serve(h, withSessionCookie(httptest.NewRequest(http.MethodGet, "/api/v1/users/u2", nil), "tok"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":"u2"`)

	rr = serve(h, withSessionCookie(httptest.NewRequest(http.MethodGet, "/api/v1/users/u3", nil), "tok"))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

func TestListUsers(t *testing.T) {
	h := newTestHandler(&mockAuthService{
		resolveIdentityFn: func(_ context.Context, _ *http.Request) (models.User, error) {
			return models.User{ID: "u1"}, nil
		},
	}, &mockUserService{
		listUsersFn: func(_ context.Context) ([]models.User, error) {
			return []models.User{
				{ID: "u1", Email: "bob@hbtn.io", HashedPassword: "$2a$secret"},
				{ID: "u2", Email: "alice@hbtn.io"},
			}, nil
		},
	})

	rr := serve(h, withSessionCookie(httptest.NewRequest(http.MethodGet, "/api/v1/users", nil), "tok"))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"id":"u1"`)
	assert.Contains(t, rr.Body.String(), `"id":"u2"`)
	assert.NotContains(t, rr.Body.String(), "$2a$secret")

	rr = serve(h, httptest.NewRequest(http.MethodGet, "/api/v1/users", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = serve(h, httptest.NewRequest(http.MethodGet, "/api/v1/users/", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}

func TestUpdateUser_TableTest(t *testing.T) {
	tests := []struct {
		name       string
		path       string
		body       string
		updateFn   func(ctx context.Context, id string, req models.UpdateUserRequest) (models.User, error)
		wantStatus int
		wantBody   string
		wantID     string
	}{
		{
			name:       "own id",
			path:       "/api/v1/users/u1",
			body:       `{"first_name":"Ada","last_name":"Lovelace"}`,
			wantStatus: http.StatusOK,
			wantID:     "u1",
		},
		{
			name:       "me alias",
			path:       "/api/v1/users/me",
			body:       `{"last_name":"Lovelace"}`,
			wantStatus: http.StatusOK,
			wantID:     "u1",
		},
		{
			name:       "another user is forbidden",
			path:       "/api/v1/users/u2",
			body:       `{"first_name":"Eve"}`,
			wantStatus: http.StatusForbidden,
			wantBody:   `{"error":"Forbidden"}`,
		},
		{
			name:       "invalid JSON",
			path:       "/api/v1/users/u1",
			body:       `{"first_name":`,
			wantStatus: http.StatusBadRequest,
			wantBody:   `{"error":"Wrong format"}`,
		},
		{
			name: "user vanished",
			path: "/api/v1/users/u1",
			body: `{}`,
			updateFn: func(_ context.Context, _ string, _ models.UpdateUserRequest) (models.User, error) {
				return models.User{}, service.ErrNotFound
			},
			wantStatus: http.StatusNotFound,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var gotID string
			updateFn := tt.updateFn
			if updateFn == nil {
				updateFn = func(_ context.Context, id string, req models.UpdateUserRequest) (models.User, error) {
					gotID = id
					return models.User{ID: id, FirstName: req.FirstName, LastName: req.LastName}, nil
				}
			}

			h := newTestHandler(&mockAuthService{
				resolveIdentityFn: func(_ context.Context, _ *http.Request) (models.User, error) {
					return models.User{ID: "u1"}, nil
				},
			}, &mockUserService{updateUserFn: updateFn})

			req := httptest.NewRequest(http.MethodPut, tt.path, strings.NewReader(tt.body))
			req.Header.Set("Content-Type", "application/json")
			rr := serve(h, withSessionCookie(req, "tok"))

			assert.Equal(t, tt.wantStatus, rr.Code)
			if tt.wantBody != "" {
				assert.JSONEq(t, tt.wantBody, rr.Body.String())
			}
			if tt.wantID != "" {
				assert.Equal(t, tt.wantID, gotID)
				assert.Contains(t, rr.Body.String(), `"last_name":"Lovelace"`)
			}
		})
	}
}

func TestUpdateUser_RequiresSession(t *testing.T) {
	h := newTestHandler(&mockAuthService{}, &mockUserService{})

	req := httptest.NewRequest(http.MethodPut, "/api/v1/users/u1", strings.NewReader(`{"first_name":"Eve"}`))
	rr := serve(h, req)

	assert.Equal(t, http.StatusUnauthorized, rr.Code)
}
