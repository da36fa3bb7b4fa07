package cities

import (
	apphttp "colabatr_backend/internal/http"
	"colabatr_backend/platform/config"
	"colabatr_backend/platform/logger"

	"github.com/redis/go-redis/v9"
)

// Module wires the city reference dataset HTTP routes.
type Module struct {
	handler *Handler
	service *Service
}

// NewModule creates the cities module. redisClient may be nil, in which case
// query results are not cached.
func NewModule(dataset *Dataset, redisClient *redis.Client, cfg config.RedisConfig, log *logger.Logger) *Module {
	cache := NewCache(redisClient, cfg.GetCitiesCacheTTL())
	svc := NewService(dataset, cache, log)
	h := NewHandler(svc)
	return &Module{handler: h, service: svc}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "cities"
}

// Service returns the cities service for use by the onboarding module.
func (m *Module) Service() *Service {
	return m.service
}

// RegisterRoutes mounts the cities routes.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	ctx.Protected.GET("/cities", m.handler.Search)
}

var _ apphttp.Module = (*Module)(nil)
