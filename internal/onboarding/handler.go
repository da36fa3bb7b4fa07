package onboarding

import (
	"net/http"

	"colabatr_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

// Handler exposes the location onboarding step endpoints.
type Handler struct {
	svc *Service
}

// NewHandler creates the onboarding handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{svc: svc}
}

type inputRequest struct {
	Text string `json:"text"`
}

type pickRequest struct {
	City    string `json:"city" binding:"required"`
	State   string `json:"state" binding:"required"`
	Pincode string `json:"pincode" binding:"required"`
}

type resolveRequest struct {
	Lat   *float64 `json:"lat"`
	Lng   *float64 `json:"lng"`
	Query string   `json:"query"`
}

type continueResponse struct {
	Location LocationRecord `json:"location"`
}

// GetState handles GET /api/v1/onboarding/location
func (h *Handler) GetState(c *gin.Context) {
	userID, ok := httpkit.CurrentUserID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "missing identity", nil)
		return
	}

	httpkit.OK(c, h.svc.StepFor(userID).View())
}

// Input handles POST /api/v1/onboarding/location/input
func (h *Handler) Input(c *gin.Context) {
	userID, ok := httpkit.CurrentUserID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "missing identity", nil)
		return
	}

	var req inputRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	httpkit.OK(c, h.svc.StepFor(userID).Input(req.Text))
}

// Clear handles POST /api/v1/onboarding/location/clear
func (h *Handler) Clear(c *gin.Context) {
	userID, ok := httpkit.CurrentUserID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "missing identity", nil)
		return
	}

	httpkit.OK(c, h.svc.StepFor(userID).Clear())
}

// Pick handles POST /api/v1/onboarding/location/pick
func (h *Handler) Pick(c *gin.Context) {
	userID, ok := httpkit.CurrentUserID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "missing identity", nil)
		return
	}

	var req pickRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "city, state and pincode are required", nil)
		return
	}

	view, err := h.svc.StepFor(userID).Pick(req.City, req.State, req.Pincode)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, view)
}

// Blur handles POST /api/v1/onboarding/location/blur
func (h *Handler) Blur(c *gin.Context) {
	userID, ok := httpkit.CurrentUserID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "missing identity", nil)
		return
	}

	httpkit.OK(c, h.svc.StepFor(userID).Blur())
}

// Resolve handles POST /api/v1/onboarding/location/resolve
// Accepts either a coordinate pair (map click) or a free-text query (search
// box); exactly one of the two must be provided.
func (h *Handler) Resolve(c *gin.Context) {
	userID, ok := httpkit.CurrentUserID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "missing identity", nil)
		return
	}

	var req resolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid request body", nil)
		return
	}

	step := h.svc.StepFor(userID)

	var view View
	var err error
	switch {
	case req.Lat != nil && req.Lng != nil:
		view, err = step.ResolveCoordinate(c.Request.Context(), *req.Lat, *req.Lng)
	case req.Query != "":
		view, err = step.ResolvePlace(c.Request.Context(), req.Query)
	default:
		httpkit.Error(c, http.StatusBadRequest, "either lat/lng or query is required", nil)
		return
	}

	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, view)
}

// Continue handles POST /api/v1/onboarding/location/continue
func (h *Handler) Continue(c *gin.Context) {
	userID, ok := httpkit.CurrentUserID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "missing identity", nil)
		return
	}

	record, err := h.svc.Continue(c.Request.Context(), userID)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, continueResponse{Location: record})
}

// Destroy handles DELETE /api/v1/onboarding/location
func (h *Handler) Destroy(c *gin.Context) {
	userID, ok := httpkit.CurrentUserID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "missing identity", nil)
		return
	}

	h.svc.Destroy(userID)
	c.Status(http.StatusNoContent)
}
