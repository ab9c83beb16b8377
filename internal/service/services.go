package service

import (
	"github.com/MKhiriev/go-session-auth/internal/config"
	"github.com/MKhiriev/go-session-auth/internal/crypto"
	"github.com/MKhiriev/go-session-auth/internal/logger"
	"github.com/MKhiriev/go-session-auth/internal/session"
	"github.com/MKhiriev/go-session-auth/internal/store"
	"github.com/MKhiriev/go-session-auth/models"
)

type Services struct {
	AuthService    AuthService
	UserService    UserService
	AppInfoService AppInfoService

	// Sessions is shared with the background sweeper.
	Sessions *session.Registry
}

func NewServices(storages *store.Storages, cfg *config.StructuredConfig, info models.AppBuildInfo, logger *logger.Logger) (*Services, error) {
	appInfoService, err := NewAppInfoService(info, logger)
	if err != nil {
		return nil, err
	}

	sessions := session.NewRegistry(storages.SessionStorage, session.WithTTL(cfg.EffectiveSessionDuration()))
	hasher := crypto.NewBcryptHasher(cfg.App.BcryptCost)

	return &Services{
		AuthService:    NewAuthService(storages.UserRepository, sessions, hasher, cfg.App, logger),
		UserService:    NewUserService(storages.UserRepository, logger),
		AppInfoService: appInfoService,
		Sessions:       sessions,
	}, nil
}
