package geocode

import (
	apphttp "colabatr_backend/internal/http"
	"colabatr_backend/platform/config"
	"colabatr_backend/platform/logger"
)

// Module wires the geocoding HTTP routes.
type Module struct {
	handler  *Handler
	resolver *Resolver
}

// NewModule creates the geocode module.
func NewModule(cfg config.GeocoderConfig, log *logger.Logger) *Module {
	resolver := NewResolver(cfg, log)
	h := NewHandler(resolver)
	return &Module{handler: h, resolver: resolver}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "geocode"
}

// Resolver returns the resolver for use by the onboarding module.
func (m *Module) Resolver() *Resolver {
	return m.resolver
}

// RegisterRoutes mounts the geocode routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/geocode")
	group.GET("/reverse", m.handler.Reverse)
	group.GET("/search", m.handler.Search)
}

var _ apphttp.Module = (*Module)(nil)
