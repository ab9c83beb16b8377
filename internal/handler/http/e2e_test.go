package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/MKhiriev/go-session-auth/internal/config"
	"github.com/MKhiriev/go-session-auth/internal/logger"
	"github.com/MKhiriev/go-session-auth/internal/service"
	"github.com/MKhiriev/go-session-auth/internal/store"
	"github.com/MKhiriev/go-session-auth/models"
)

// newE2EClient starts the full router over in-memory storages and returns a
// resty client pointed at it. Cookies are never stored automatically.
func newE2EClient(t *testing.T, authType string) *resty.Client {
	t.Helper()

	storages, err := store.NewStorages(context.Background(), config.DB{}, logger.Nop())
	require.NoError(t, err)

	cfg := &config.StructuredConfig{
		App: config.App{
			AuthType:        authType,
			SessionName:     testCookie,
			SessionDuration: time.Hour,
			ExcludedPaths:   config.DefaultExcludedPaths(),
			BcryptCost:      bcrypt.MinCost,
		},
		Server: config.Server{HTTPAddress: "localhost:0", RequestTimeout: 5 * time.Second},
	}

	services, err := service.NewServices(storages, cfg, models.NewAppBuildInfo("e2e", "", ""), logger.Nop())
	require.NoError(t, err)

	srv := httptest.NewServer(NewHandler(services, cfg.Server, logger.Nop()).Init())
	t.Cleanup(srv.Close)

	return resty.New().
		SetBaseURL(srv.URL).
		SetCookieJar(nil).
		SetTimeout(5 * time.Second)
}

func registerUser(t *testing.T, client *resty.Client, email, password string) models.User {
	t.Helper()

	var user models.User
	resp, err := client.R().
		SetHeader("Content-Type", "application/json").
		SetBody(models.RegisterRequest{Email: email, Password: password}).
		SetResult(&user).
		Post("/api/v1/users")
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode(), resp.String())
	return user
}

func loginUser(t *testing.T, client *resty.Client, email, password string) *http.Cookie {
	t.Helper()

	resp, err := client.R().
		SetFormData(map[string]string{"email": email, "password": password}).
		Post("/api/v1/auth_session/login")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())

	for _, c := range resp.Cookies() {
		if c.Name == testCookie {
			return c
		}
	}
	t.Fatalf("login response has no %s cookie", testCookie)
	return nil
}

func sessionCookie(token string) *http.Cookie {
	return &http.Cookie{Name: testCookie, Value: token}
}

func TestE2E_SessionLifecycle(t *testing.T) {
	client := newE2EClient(t, "")

	bob := registerUser(t, client, "bob@hbtn.io", "H0lberton")
	cookie := loginUser(t, client, "bob@hbtn.io", "H0lberton")
	assert.True(t, cookie.HttpOnly)

	var me models.User
	resp, err := client.R().SetCookie(sessionCookie(cookie.Value)).SetResult(&me).Get("/api/v1/users/me")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, bob.ID, me.ID)
	assert.NotContains(t, resp.String(), "hashed_password")

	resp, err = client.R().SetCookie(sessionCookie(cookie.Value)).Delete("/api/v1/auth_session/logout")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
	assert.JSONEq(t, `{}`, resp.String())

	resp, err = client.R().SetCookie(sessionCookie(cookie.Value)).Get("/api/v1/users/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())
}

func TestE2E_StatusCodes(t *testing.T) {
	client := newE2EClient(t, "")
	registerUser(t, client, "bob@hbtn.io", "H0lberton")

	tests := []struct {
		name       string
		request    func() (*resty.Response, error)
		wantStatus int
	}{
		{
			name:       "no proof is 401",
			request:    func() (*resty.Response, error) { return client.R().Get("/api/v1/users/me") },
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown session is 403",
			request: func() (*resty.Response, error) {
				return client.R().SetCookie(sessionCookie("not-a-session")).Get("/api/v1/users/me")
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "wrong basic password is 403",
			request: func() (*resty.Response, error) {
				return client.R().SetBasicAuth("bob@hbtn.io", "wrong").Get("/api/v1/users/me")
			},
			wantStatus: http.StatusForbidden,
		},
		{
			name: "basic auth is 200",
			request: func() (*resty.Response, error) {
				return client.R().SetBasicAuth("bob@hbtn.io", "H0lberton").Get("/api/v1/users/me")
			},
			wantStatus: http.StatusOK,
		},
		{
			name: "duplicate registration is 409",
			request: func() (*resty.Response, error) {
				return client.R().
					SetHeader("Content-Type", "application/json").
					SetBody(models.RegisterRequest{Email: "bob@hbtn.io", Password: "x"}).
					Post("/api/v1/users")
			},
			wantStatus: http.StatusConflict,
		},
		{
			name: "wrong login password is 401",
			request: func() (*resty.Response, error) {
				return client.R().
					SetFormData(map[string]string{"email": "bob@hbtn.io", "password": "bad"}).
					Post("/api/v1/auth_session/login")
			},
			wantStatus: http.StatusUnauthorized,
		},
		{
			name: "unknown route is 404",
			request: func() (*resty.Response, error) {
				return client.R().SetBasicAuth("bob@hbtn.io", "H0lberton").Get("/api/v1/nope")
			},
			wantStatus: http.StatusNotFound,
		},
		{
			name:       "public status is 200",
			request:    func() (*resty.Response, error) { return client.R().Get("/api/v1/status/") },
			wantStatus: http.StatusOK,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			resp, err := tt.request()
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode(), resp.String())
		})
	}
}

func TestE2E_ListAndUpdateUsers(t *testing.T) {
	client := newE2EClient(t, "")
	bob := registerUser(t, client, "bob@hbtn.io", "H0lberton")
	alice := registerUser(t, client, "alice@hbtn.io", "pw-a")
	cookie := loginUser(t, client, "bob@hbtn.io", "H0lberton")

	resp, err := client.R().Get("/api/v1/users")
	require.NoError(t, err)
	assert.Equal(t, http.StatusUnauthorized, resp.StatusCode())

	var users []models.User
	resp, err = client.R().SetCookie(sessionCookie(cookie.Value)).SetResult(&users).Get("/api/v1/users")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Len(t, users, 2)

	var updated models.User
	resp, err = client.R().
		SetCookie(sessionCookie(cookie.Value)).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"first_name": "Bob", "last_name": "Dylan"}).
		SetResult(&updated).
		Put("/api/v1/users/me")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode(), resp.String())
	assert.Equal(t, bob.ID, updated.ID)
	assert.Equal(t, "Bob Dylan", updated.DisplayName())

	resp, err = client.R().
		SetCookie(sessionCookie(cookie.Value)).
		SetHeader("Content-Type", "application/json").
		SetBody(map[string]string{"first_name": "Mallory"}).
		Put("/api/v1/users/" + alice.ID)
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())
}

func TestE2E_LoginFailuresLookAlike(t *testing.T) {
	client := newE2EClient(t, "")
	registerUser(t, client, "bob@hbtn.io", "H0lberton")

	login := func(email, password string) *resty.Response {
		resp, err := client.R().
			SetFormData(map[string]string{"email": email, "password": password}).
			Post("/api/v1/auth_session/login")
		require.NoError(t, err)
		return resp
	}

	wrongPassword := login("bob@hbtn.io", "bad")
	unknownEmail := login("nobody@hbtn.io", "bad")

	assert.Equal(t, http.StatusUnauthorized, wrongPassword.StatusCode())
	assert.Equal(t, http.StatusUnauthorized, unknownEmail.StatusCode())
	assert.JSONEq(t, `{"error":"invalid credentials"}`, wrongPassword.String())
	assert.JSONEq(t, wrongPassword.String(), unknownEmail.String())
}

func TestE2E_HeaderWinsOverCookie(t *testing.T) {
	client := newE2EClient(t, "")
	alice := registerUser(t, client, "alice@hbtn.io", "pw-a")
	registerUser(t, client, "bob@hbtn.io", "pw-b")
	bobCookie := loginUser(t, client, "bob@hbtn.io", "pw-b")

	var me models.User
	resp, err := client.R().
		SetBasicAuth("alice@hbtn.io", "pw-a").
		SetCookie(sessionCookie(bobCookie.Value)).
		SetResult(&me).
		Get("/api/v1/users/me")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, alice.ID, me.ID)
}

func TestE2E_SessionOnlyAuthIgnoresHeader(t *testing.T) {
	client := newE2EClient(t, config.AuthTypeSessionExp)
	registerUser(t, client, "bob@hbtn.io", "H0lberton")

	resp, err := client.R().SetBasicAuth("bob@hbtn.io", "H0lberton").Get("/api/v1/users/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())

	cookie := loginUser(t, client, "bob@hbtn.io", "H0lberton")
	assert.Equal(t, int(time.Hour.Seconds()), cookie.MaxAge)

	resp, err = client.R().SetCookie(sessionCookie(cookie.Value)).Get("/api/v1/users/me")
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode())
}

func TestE2E_PasswordReset(t *testing.T) {
	client := newE2EClient(t, "")
	registerUser(t, client, "bob@hbtn.io", "old")

	var issued models.ResetPasswordResponse
	resp, err := client.R().
		SetFormData(map[string]string{"email": "bob@hbtn.io"}).
		SetResult(&issued).
		Post("/api/v1/reset_password")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	require.NotEmpty(t, issued.ResetToken)

	confirm := func(token string) *resty.Response {
		resp, err := client.R().
			SetFormData(map[string]string{"reset_token": token, "new_password": "new"}).
			Put("/api/v1/reset_password")
		require.NoError(t, err)
		return resp
	}

	assert.Equal(t, http.StatusOK, confirm(issued.ResetToken).StatusCode())
	assert.Equal(t, http.StatusForbidden, confirm(issued.ResetToken).StatusCode())

	loginUser(t, client, "bob@hbtn.io", "new")

	resp, err = client.R().
		SetFormData(map[string]string{"email": "nobody@hbtn.io"}).
		Post("/api/v1/reset_password")
	require.NoError(t, err)
	assert.Equal(t, http.StatusForbidden, resp.StatusCode())
}

func TestE2E_Stats(t *testing.T) {
	client := newE2EClient(t, "")
	registerUser(t, client, "bob@hbtn.io", "pw")
	registerUser(t, client, "alice@hbtn.io", "pw")

	var stats models.StatsResponse
	resp, err := client.R().SetBasicAuth("bob@hbtn.io", "pw").SetResult(&stats).Get("/api/v1/stats")
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode())
	assert.Equal(t, int64(2), stats.Users)
}
