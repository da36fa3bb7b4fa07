package geocode

import (
	"net/http"

	"colabatr_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the geocoding endpoints.
type Handler struct {
	resolver *Resolver
}

// NewHandler creates the geocode handler.
func NewHandler(resolver *Resolver) *Handler {
	return &Handler{resolver: resolver}
}

type resolveResponse struct {
	Resolved bool              `json:"resolved"`
	Location *ResolvedLocation `json:"location,omitempty"`
}

// Reverse handles GET /api/v1/geocode/reverse?lat=..&lng=..
func (h *Handler) Reverse(c *gin.Context) {
	var req ReverseRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "lat and lng query parameters are required", nil)
		return
	}

	location, err := h.resolver.ReverseGeocode(c.Request.Context(), req.Lat, req.Lng)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resolveResponse{Resolved: location != nil, Location: location})
}

// Search handles GET /api/v1/geocode/search?q=...
func (h *Handler) Search(c *gin.Context) {
	var req SearchRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "query 'q' is required (min 3 chars)", nil)
		return
	}

	location, err := h.resolver.SearchPlace(c.Request.Context(), req.Query)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, resolveResponse{Resolved: location != nil, Location: location})
}
