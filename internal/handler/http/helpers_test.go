package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"

	"github.com/MKhiriev/go-session-auth/internal/auth"
	"github.com/MKhiriev/go-session-auth/internal/config"
	"github.com/MKhiriev/go-session-auth/internal/logger"
	"github.com/MKhiriev/go-session-auth/internal/service"
	"github.com/MKhiriev/go-session-auth/models"
)

const testCookie = "_my_session_id"

// mockAuthService implements service.AuthService for unit tests.
// Each method field can be overridden per test case; the policy methods
// default to the real policy over the default excluded paths.
type mockAuthService struct {
	registerFn        func(ctx context.Context, req models.RegisterRequest) (models.User, error)
	loginFn           func(ctx context.Context, email, password string) (string, models.User, error)
	resolveIdentityFn func(ctx context.Context, r *http.Request) (models.User, error)
	logoutFn          func(ctx context.Context, token string) (bool, error)
	requestResetFn    func(ctx context.Context, email string) (string, error)
	confirmResetFn    func(ctx context.Context, token, newPassword string) error
}

func (m *mockAuthService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	return m.registerFn(ctx, req)
}

func (m *mockAuthService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	return m.loginFn(ctx, email, password)
}

func (m *mockAuthService) ResolveIdentity(ctx context.Context, r *http.Request) (models.User, error) {
	if m.resolveIdentityFn == nil {
		return models.User{}, service.ErrNoIdentity
	}
	return m.resolveIdentityFn(ctx, r)
}

func (m *mockAuthService) Logout(ctx context.Context, token string) (bool, error) {
	return m.logoutFn(ctx, token)
}

func (m *mockAuthService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	return m.requestResetFn(ctx, email)
}

func (m *mockAuthService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	return m.confirmResetFn(ctx, token, newPassword)
}

func (m *mockAuthService) HasCredentials(r *http.Request) bool {
	return auth.HasCredentials(r, testCookie)
}

func (m *mockAuthService) RequiresAuth(path string) bool {
	return auth.RequiresAuth(path, config.DefaultExcludedPaths())
}

func (m *mockAuthService) SessionCookieName() string {
	return testCookie
}

type mockUserService struct {
	getUserFn    func(ctx context.Context, id string) (models.User, error)
	listUsersFn  func(ctx context.Context) ([]models.User, error)
	updateUserFn func(ctx context.Context, id string, req models.UpdateUserRequest) (models.User, error)
	countUsersFn func(ctx context.Context) (int64, error)
}

func (m *mockUserService) GetUser(ctx context.Context, id string) (models.User, error) {
	return m.getUserFn(ctx, id)
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]models.User, error) {
	return m.listUsersFn(ctx)
}

func (m *mockUserService) UpdateUser(ctx context.Context, id string, req models.UpdateUserRequest) (models.User, error) {
	return m.updateUserFn(ctx, id, req)
}

func (m *mockUserService) CountUsers(ctx context.Context) (int64, error) {
	return m.countUsersFn(ctx)
}

type mockAppInfoService struct{}

func (m *mockAppInfoService) GetAppInfo(_ context.Context) models.AppBuildInfo {
	return models.NewAppBuildInfo("test-version", "", "")
}

func newTestHandler(authService *mockAuthService, userService *mockUserService) *Handler {
	if authService == nil {
		authService = &mockAuthService{}
	}
	if userService == nil {
		userService = &mockUserService{}
	}

	return &Handler{
		services: &service.Services{
			AuthService:    authService,
			UserService:    userService,
			AppInfoService: &mockAppInfoService{},
		},
		metrics: NewMetrics(),
		logger:  logger.Nop(),
	}
}

// serve runs one request through the full router.
func serve(h *Handler, r *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	h.Init().ServeHTTP(rr, r)
	return rr
}

func formRequest(method, target string, values url.Values) *http.Request {
	r := httptest.NewRequest(method, target, strings.NewReader(values.Encode()))
	r.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	return r
}

func withSessionCookie(r *http.Request, token string) *http.Request {
	r.AddCookie(&http.Cookie{Name: testCookie, Value: token})
	return r
}
