// Package auth provides the authentication bounded context module.
// This file defines the module that encapsulates all auth setup and route registration.
package auth

import (
	"colabatr_backend/internal/auth/handler"
	"colabatr_backend/internal/auth/repository"
	"colabatr_backend/internal/auth/service"
	"colabatr_backend/internal/email"
	"colabatr_backend/internal/events"
	apphttp "colabatr_backend/internal/http"
	"colabatr_backend/platform/config"
	"colabatr_backend/platform/logger"
	"colabatr_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Config combines the config interfaces the auth module needs.
type Config interface {
	config.AuthServiceConfig
	config.OAuthConfig
}

// Module is the auth bounded context module implementing http.Module.
type Module struct {
	handler *handler.Handler
	service *service.Service
}

// NewModule creates and initializes the auth module with all its dependencies.
func NewModule(pool *pgxpool.Pool, cfg Config, mailer email.Sender, eventBus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	svc := service.New(repo, cfg, cfg, mailer, eventBus, log)
	h := handler.New(svc, val)

	return &Module{
		handler: h,
		service: svc,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "auth"
}

// Service returns the auth service for use by other modules.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts auth routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public auth routes with stricter rate limiting
	authGroup := ctx.V1.Group("/auth")
	authGroup.Use(ctx.AuthRateLimiter.RateLimit())
	m.handler.RegisterRoutes(authGroup)

	// Protected user routes
	ctx.Protected.GET("/users/me", m.handler.GetMe)

	// Admin routes
	ctx.Admin.PUT("/users/:id/entitlements", m.handler.SetEntitlements)
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)
