package onboarding

import (
	"colabatr_backend/internal/cities"
	"colabatr_backend/internal/events"
	"colabatr_backend/internal/geocode"
	apphttp "colabatr_backend/internal/http"
	"colabatr_backend/platform/config"
	"colabatr_backend/platform/logger"
)

// Module wires the location onboarding step HTTP routes.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule creates the onboarding module. The selector strategy (static
// list vs map) comes from configuration; the two are interchangeable behind
// the same step interface.
func NewModule(cfg config.OnboardingConfig, dataset *cities.Dataset, resolver *geocode.Resolver, bus events.Bus, log *logger.Logger) *Module {
	mode := ModeList
	if cfg.GetLocationSelectorMode() == "map" {
		mode = ModeMap
	}

	svc := NewService(mode, dataset, resolver, bus, log)
	h := NewHandler(svc)
	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "onboarding"
}

// Service returns the onboarding service for callback wiring.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes mounts the onboarding routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	group := ctx.Protected.Group("/onboarding/location")
	group.GET("", m.handler.GetState)
	group.DELETE("", m.handler.Destroy)
	group.POST("/input", m.handler.Input)
	group.POST("/clear", m.handler.Clear)
	group.POST("/pick", m.handler.Pick)
	group.POST("/blur", m.handler.Blur)
	group.POST("/resolve", m.handler.Resolve)
	group.POST("/continue", m.handler.Continue)
}

var _ apphttp.Module = (*Module)(nil)
