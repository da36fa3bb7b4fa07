package cities

import (
	"colabatr_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the city search endpoint.
type Handler struct {
	svc *Service
}

// NewHandler creates the cities handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type searchRequest struct {
	Query string `form:"q"`
}

type searchResponse struct {
	Count   int     `json:"count"`
	Entries []Entry `json:"entries"`
}

// Search handles GET /api/v1/cities?q=...
// An empty or absent query returns the full dataset in original order.
func (h *Handler) Search(c *gin.Context) {
	var req searchRequest
	_ = c.ShouldBindQuery(&req)

	entries := h.svc.Search(c.Request.Context(), req.Query)
	httpkit.OK(c, searchResponse{Count: len(entries), Entries: entries})
}
