package adapter

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/MKhiriev/go-session-auth/internal/config"
	"github.com/MKhiriev/go-session-auth/internal/logger"
	"github.com/MKhiriev/go-session-auth/models"
)

const apiPrefix = "/api/v1"

// Config holds the client settings.
type Config struct {
	// Address is the server base URL. The scheme defaults to http.
	Address string

	// SessionName is the session cookie name. Empty means
	// [config.DefaultSessionName].
	SessionName string

	// Timeout bounds every request. Zero disables the limit.
	Timeout time.Duration
}

type httpServerAdapter struct {
	client      *resty.Client
	sessionName string

	mu    sync.RWMutex
	token string

	logger *logger.Logger
}

// NewHTTPServerAdapter constructs the resty implementation of [ServerAdapter].
// Returns an error if cfg.Address is empty or is not a valid URL.
func NewHTTPServerAdapter(cfg Config, logger *logger.Logger) (ServerAdapter, error) {
	baseURL, err := normalizeBaseURL(cfg.Address)
	if err != nil {
		return nil, fmt.Errorf("invalid adapter http address: %w", err)
	}

	sessionName := cfg.SessionName
	if sessionName == "" {
		sessionName = config.DefaultSessionName
	}

	// the session token is managed explicitly, not by a cookie jar
	client := resty.New().
		SetBaseURL(baseURL).
		SetCookieJar(nil).
		SetTimeout(cfg.Timeout)

	return &httpServerAdapter{client: client, sessionName: sessionName, logger: logger}, nil
}

func normalizeBaseURL(raw string) (string, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return "", fmt.Errorf("empty address")
	}

	if !strings.Contains(raw, "://") {
		raw = "http://" + raw
	}

	u, err := url.Parse(raw)
	if err != nil {
		return "", err
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("address must include host and scheme")
	}

	return strings.TrimRight(u.String(), "/"), nil
}

func (h *httpServerAdapter) SetToken(token string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.token = strings.TrimSpace(token)
}

func (h *httpServerAdapter) Token() string {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.token
}

func (h *httpServerAdapter) Status(ctx context.Context) (string, error) {
	var status models.StatusResponse

	resp, err := h.request(ctx).
		SetResult(&status).
		Get(apiPrefix + "/status")
	if err != nil {
		return "", fmt.Errorf("status request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return status.Status, nil
}

func (h *httpServerAdapter) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	var user models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&user).
		Post(apiPrefix + "/users")
	if err != nil {
		return models.User{}, fmt.Errorf("register request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}
	return user, nil
}

// Login implements [ServerAdapter]. The session token is read from the
// Set-Cookie header named after the configured session cookie.
func (h *httpServerAdapter) Login(ctx context.Context, email, password string) (models.User, error) {
	var user models.User

	resp, err := h.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			models.FormEmail:    email,
			models.FormPassword: password,
		}).
		SetResult(&user).
		Post(apiPrefix + "/auth_session/login")
	if err != nil {
		return models.User{}, fmt.Errorf("login request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}

	for _, c := range resp.Cookies() {
		if c.Name == h.sessionName && c.Value != "" {
			h.SetToken(c.Value)
			h.logger.Debug().Str("user_id", user.ID).Msg("session opened")
			return user, nil
		}
	}
	return models.User{}, ErrNoSessionCookie
}

func (h *httpServerAdapter) Logout(ctx context.Context) error {
	resp, err := h.request(ctx).Delete(apiPrefix + "/auth_session/logout")
	if err != nil {
		return fmt.Errorf("logout request: %w", err)
	}

	err = mapHTTPError(resp)
	if err == nil || errors.Is(err, ErrNotFound) {
		h.SetToken("")
	}
	return err
}

func (h *httpServerAdapter) Me(ctx context.Context) (models.User, error) {
	return h.getUser(ctx, apiPrefix+"/users/me")
}

func (h *httpServerAdapter) GetUser(ctx context.Context, id string) (models.User, error) {
	return h.getUser(ctx, apiPrefix+"/users/"+url.PathEscape(id))
}

func (h *httpServerAdapter) getUser(ctx context.Context, path string) (models.User, error) {
	var user models.User

	resp, err := h.request(ctx).
		SetResult(&user).
		Get(path)
	if err != nil {
		return models.User{}, fmt.Errorf("get user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (h *httpServerAdapter) ListUsers(ctx context.Context) ([]models.User, error) {
	var users []models.User

	resp, err := h.request(ctx).
		SetResult(&users).
		Get(apiPrefix + "/users")
	if err != nil {
		return nil, fmt.Errorf("list users request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return nil, err
	}
	return users, nil
}

func (h *httpServerAdapter) UpdateMe(ctx context.Context, req models.UpdateUserRequest) (models.User, error) {
	var user models.User

	resp, err := h.request(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(req).
		SetResult(&user).
		Put(apiPrefix + "/users/me")
	if err != nil {
		return models.User{}, fmt.Errorf("update user request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.User{}, err
	}
	return user, nil
}

func (h *httpServerAdapter) Stats(ctx context.Context) (models.StatsResponse, error) {
	var stats models.StatsResponse

	resp, err := h.request(ctx).
		SetResult(&stats).
		Get(apiPrefix + "/stats")
	if err != nil {
		return models.StatsResponse{}, fmt.Errorf("stats request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return models.StatsResponse{}, err
	}
	return stats, nil
}

func (h *httpServerAdapter) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	var reset models.ResetPasswordResponse

	resp, err := h.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{models.FormEmail: email}).
		SetResult(&reset).
		Post(apiPrefix + "/reset_password")
	if err != nil {
		return "", fmt.Errorf("reset password request: %w", err)
	}
	if err = mapHTTPError(resp); err != nil {
		return "", err
	}
	return reset.ResetToken, nil
}

func (h *httpServerAdapter) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	resp, err := h.client.R().
		SetContext(ctx).
		SetFormData(map[string]string{
			models.FormResetToken:  token,
			models.FormNewPassword: newPassword,
		}).
		Put(apiPrefix + "/reset_password")
	if err != nil {
		return fmt.Errorf("confirm password reset request: %w", err)
	}
	return mapHTTPError(resp)
}

func (h *httpServerAdapter) request(ctx context.Context) *resty.Request {
	req := h.client.R().SetContext(ctx)
	if token := h.Token(); token != "" {
		req.SetCookie(&http.Cookie{Name: h.sessionName, Value: token})
	}
	return req
}
