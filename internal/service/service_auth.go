package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"github.com/MKhiriev/go-session-auth/internal/auth"
	"github.com/MKhiriev/go-session-auth/internal/config"
	"github.com/MKhiriev/go-session-auth/internal/crypto"
	"github.com/MKhiriev/go-session-auth/internal/logger"
	"github.com/MKhiriev/go-session-auth/internal/session"
	"github.com/MKhiriev/go-session-auth/internal/store"
	"github.com/MKhiriev/go-session-auth/internal/utils"
	"github.com/MKhiriev/go-session-auth/models"
)

// dummyPassword is verified against when the login email is unknown, so that
// both failure paths pay for one hash comparison.
const dummyPassword = "not-a-real-password"

// authService is the concrete implementation of AuthService.
// It owns no state of its own besides configuration: users live in the
// repository, sessions in the registry.
type authService struct {
	users    store.UserRepository
	sessions *session.Registry
	hasher   crypto.PasswordHasher

	// extractors are tried in order by ResolveIdentity.
	extractors    []auth.Extractor
	excludedPaths []string
	cookieName    string

	newResetToken func() (string, error)
	now           func() time.Time

	dummyOnce sync.Once
	dummyHash string

	logger *logger.Logger
}

// NewAuthService wires an AuthService. The accepted identity proofs and their
// order are derived from cfg.AuthType.
func NewAuthService(users store.UserRepository, sessions *session.Registry, hasher crypto.PasswordHasher, cfg config.App, logger *logger.Logger) AuthService {
	return &authService{
		users:         users,
		sessions:      sessions,
		hasher:        hasher,
		extractors:    extractorsFor(cfg.AuthType, cfg.SessionName),
		excludedPaths: append([]string(nil), cfg.ExcludedPaths...),
		cookieName:    cfg.SessionName,
		newResetToken: session.NewRandomToken,
		now:           time.Now,
		logger:        logger,
	}
}

func extractorsFor(authType, cookieName string) []auth.Extractor {
	cookie := auth.SessionCookieExtractor{CookieName: cookieName}

	switch authType {
	case config.AuthTypeBasic:
		return []auth.Extractor{auth.BasicAuthExtractor{}}
	case config.AuthTypeSession, config.AuthTypeSessionExp, config.AuthTypeSessionDB:
		return []auth.Extractor{cookie}
	default:
		return []auth.Extractor{auth.BasicAuthExtractor{}, cookie}
	}
}

// Register creates a new user account.
//
// Returns the stored user or:
//   - ErrInvalidDataProvided if the email or the password is empty.
//   - ErrAlreadyExists if the email is already registered.
//   - a wrapped crypto.ErrHashing if the password cannot be hashed.
func (a *authService) Register(ctx context.Context, req models.RegisterRequest) (models.User, error) {
	log := logger.FromContext(ctx)

	if req.Email == "" || req.Password == "" {
		log.Error().Str("email", req.Email).Msg("invalid registration data provided")
		return models.User{}, ErrInvalidDataProvided
	}

	hashed, err := a.hasher.Hash(req.Password)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return models.User{}, fmt.Errorf("password hashing failed: %w", err)
	}

	now := a.now().UTC()
	user := models.User{
		ID:             utils.NewUserID(),
		Email:          req.Email,
		HashedPassword: hashed,
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	created, err := a.users.CreateUser(ctx, user)
	if errors.Is(err, store.ErrEmailAlreadyExists) {
		log.Info().Str("email", req.Email).Msg("email already registered")
		return models.User{}, ErrAlreadyExists
	}
	if err != nil {
		log.Err(err).Msg("user creation ended with error")
		return models.User{}, fmt.Errorf("user creation ended with error: %w", err)
	}

	return created, nil
}

// Login verifies email and password and opens a session for the user.
//
// An unknown email and a wrong password both yield ErrInvalidCredentials.
func (a *authService) Login(ctx context.Context, email, password string) (string, models.User, error) {
	log := logger.FromContext(ctx)

	if email == "" || password == "" {
		return "", models.User{}, ErrInvalidDataProvided
	}

	user, err := a.userByCredentials(ctx, email, password)
	if err != nil {
		return "", models.User{}, err
	}

	token, err := a.sessions.Create(ctx, user.ID)
	if err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("session creation failed")
		return "", models.User{}, fmt.Errorf("session creation failed: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("user logged in")
	return token, user, nil
}

// userByCredentials returns the user owning email when password matches,
// ErrInvalidCredentials otherwise. Repository failures are returned wrapped.
func (a *authService) userByCredentials(ctx context.Context, email, password string) (models.User, error) {
	user, err := a.users.FindUser(ctx, models.UserFilter{Email: email})
	if errors.Is(err, store.ErrNoUserWasFound) {
		a.hasher.Verify(a.dummyPasswordHash(), password)
		return models.User{}, ErrInvalidCredentials
	}
	if err != nil {
		return models.User{}, fmt.Errorf("user search by email failed: %w", err)
	}

	if !a.hasher.Verify(user.HashedPassword, password) {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (a *authService) dummyPasswordHash() string {
	a.dummyOnce.Do(func() {
		h, err := a.hasher.Hash(dummyPassword)
		if err != nil {
			a.logger.Err(err).Msg("dummy password hashing failed")
			return
		}
		a.dummyHash = h
	})
	return a.dummyHash
}

// ResolveIdentity runs the extractors in order. A proof that does not lead to
// a user falls through to the next extractor; a repository or registry
// failure stops the chain and is returned wrapped.
func (a *authService) ResolveIdentity(ctx context.Context, r *http.Request) (models.User, error) {
	log := logger.FromContext(ctx)

	if r == nil {
		return models.User{}, ErrNoIdentity
	}

	for _, extractor := range a.extractors {
		proof, err := extractor.Extract(r)
		if err != nil {
			log.Debug().Str("extractor", extractor.Name()).Err(err).Msg("no usable proof")
			continue
		}

		user, err := a.userByProof(ctx, proof)
		if errors.Is(err, ErrInvalidCredentials) || errors.Is(err, ErrNotFound) {
			log.Debug().Str("extractor", extractor.Name()).Msg("proof does not identify a user")
			continue
		}
		if err != nil {
			log.Err(err).Str("extractor", extractor.Name()).Msg("identity resolution failed")
			return models.User{}, err
		}

		return user, nil
	}

	return models.User{}, ErrNoIdentity
}

func (a *authService) userByProof(ctx context.Context, proof auth.Proof) (models.User, error) {
	switch p := proof.(type) {
	case auth.BasicCredentials:
		return a.userByCredentials(ctx, p.Email, p.Password)
	case auth.SessionToken:
		userID, err := a.sessions.Resolve(ctx, string(p))
		if errors.Is(err, session.ErrSessionNotFound) {
			return models.User{}, ErrNotFound
		}
		if err != nil {
			return models.User{}, fmt.Errorf("session lookup failed: %w", err)
		}
		return a.userByID(ctx, userID)
	default:
		return models.User{}, ErrNotFound
	}
}

func (a *authService) userByID(ctx context.Context, id string) (models.User, error) {
	user, err := a.users.FindUser(ctx, models.UserFilter{ID: id})
	if errors.Is(err, store.ErrNoUserWasFound) {
		return models.User{}, ErrNotFound
	}
	if err != nil {
		return models.User{}, fmt.Errorf("user search by id failed: %w", err)
	}
	return user, nil
}

// Logout destroys the session identified by token. It reports false for an
// empty, unknown, expired or already destroyed token.
func (a *authService) Logout(ctx context.Context, token string) (bool, error) {
	if token == "" {
		return false, nil
	}

	destroyed, err := a.sessions.Destroy(ctx, token)
	if err != nil {
		logger.FromContext(ctx).Err(err).Msg("session destruction failed")
		return false, fmt.Errorf("session destruction failed: %w", err)
	}
	return destroyed, nil
}

// RequestPasswordReset issues a new reset token for email. Only the token
// digest is stored; a previous token stops working.
//
// Returns ErrNotFound when no user has this email.
func (a *authService) RequestPasswordReset(ctx context.Context, email string) (string, error) {
	log := logger.FromContext(ctx)

	if email == "" {
		return "", ErrInvalidDataProvided
	}

	user, err := a.users.FindUser(ctx, models.UserFilter{Email: email})
	if errors.Is(err, store.ErrNoUserWasFound) {
		return "", ErrNotFound
	}
	if err != nil {
		return "", fmt.Errorf("user search by email failed: %w", err)
	}

	token, err := a.newResetToken()
	if err != nil {
		log.Err(err).Msg("reset token generation failed")
		return "", fmt.Errorf("reset token generation failed: %w", err)
	}

	digest := crypto.HashToken(token)
	err = a.users.UpdateUser(ctx, user.ID, models.UserChanges{ResetToken: &digest})
	if errors.Is(err, store.ErrNoUserWasFound) {
		return "", ErrNotFound
	}
	if err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("error storing reset token")
		return "", fmt.Errorf("error storing reset token: %w", err)
	}

	return token, nil
}

// ConfirmPasswordReset sets newPassword for the owner of token and clears the
// token in the same conditional update, so a token can be consumed once.
//
// Returns ErrInvalidToken for an empty, unknown or already used token and
// ErrInvalidDataProvided for an empty password.
func (a *authService) ConfirmPasswordReset(ctx context.Context, token, newPassword string) error {
	log := logger.FromContext(ctx)

	if token == "" {
		return ErrInvalidToken
	}
	if newPassword == "" {
		return ErrInvalidDataProvided
	}

	digest := crypto.HashToken(token)
	user, err := a.users.FindUser(ctx, models.UserFilter{ResetToken: digest})
	if errors.Is(err, store.ErrNoUserWasFound) {
		return ErrInvalidToken
	}
	if err != nil {
		return fmt.Errorf("user search by reset token failed: %w", err)
	}

	hashed, err := a.hasher.Hash(newPassword)
	if err != nil {
		log.Err(err).Msg("password hashing failed")
		return fmt.Errorf("password hashing failed: %w", err)
	}

	err = a.users.UpdateUser(ctx, user.ID, models.UserChanges{
		HashedPassword:  &hashed,
		ClearResetToken: true,
		IfResetToken:    &digest,
	})
	if errors.Is(err, store.ErrNoUserWasFound) {
		// consumed concurrently
		return ErrInvalidToken
	}
	if err != nil {
		log.Err(err).Str("user_id", user.ID).Msg("error updating password")
		return fmt.Errorf("error updating password: %w", err)
	}

	log.Info().Str("user_id", user.ID).Msg("password was reset")
	return nil
}

func (a *authService) HasCredentials(r *http.Request) bool {
	return auth.HasCredentials(r, a.cookieName)
}

func (a *authService) RequiresAuth(path string) bool {
	return auth.RequiresAuth(path, a.excludedPaths)
}

func (a *authService) SessionCookieName() string {
	return a.cookieName
}
