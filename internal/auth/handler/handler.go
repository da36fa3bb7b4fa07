// Package handler exposes the auth HTTP endpoints.
package handler

import (
	"net/http"

	"colabatr_backend/internal/auth/service"
	"colabatr_backend/internal/auth/token"
	"colabatr_backend/internal/auth/transport"
	"colabatr_backend/platform/httpkit"
	"colabatr_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	oauthStateCookie = "oauth_state"
	oauthStateMaxAge = 600 // seconds
)

// Handler exposes the auth endpoints.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates the auth handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the public auth routes on the given group.
func (h *Handler) RegisterRoutes(group *gin.RouterGroup) {
	group.POST("/magic-link", h.RequestMagicLink)
	group.GET("/magic-link/verify", h.VerifyMagicLink)
	group.GET("/google", h.GoogleRedirect)
	group.GET("/google/callback", h.GoogleCallback)
}

// RequestMagicLink handles POST /api/v1/auth/magic-link.
// The response is the same whether or not the address is known; it never
// leaks account existence.
func (h *Handler) RequestMagicLink(c *gin.Context) {
	var req transport.MagicLinkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "a valid email is required", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "a valid email is required", err.Error())
		return
	}

	if err := h.svc.RequestMagicLink(c.Request.Context(), req.Email); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	c.JSON(http.StatusAccepted, gin.H{"message": "check your inbox for a sign-in link"})
}

// VerifyMagicLink handles GET /api/v1/auth/magic-link/verify?token=...
func (h *Handler) VerifyMagicLink(c *gin.Context) {
	rawToken := c.Query("token")
	if rawToken == "" {
		httpkit.Error(c, http.StatusBadRequest, "token query parameter is required", nil)
		return
	}

	sessionToken, user, err := h.svc.VerifyMagicLink(c.Request.Context(), rawToken)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.SessionResponse{
		Token: sessionToken,
		User:  transport.NewUserResponse(user),
	})
}

// GoogleRedirect handles GET /api/v1/auth/google.
// Sets a short-lived CSRF state cookie and redirects to the provider.
func (h *Handler) GoogleRedirect(c *gin.Context) {
	state, err := token.GenerateRandomToken(16)
	if err != nil {
		httpkit.Error(c, http.StatusInternalServerError, "failed to start sign-in", nil)
		return
	}

	authURL, err := h.svc.GoogleAuthURL(state)
	if httpkit.HandleError(c, err) {
		return
	}

	c.SetCookie(oauthStateCookie, state, oauthStateMaxAge, "/", "", c.Request.TLS != nil, true)
	c.Redirect(http.StatusTemporaryRedirect, authURL)
}

// GoogleCallback handles GET /api/v1/auth/google/callback?state=..&code=..
func (h *Handler) GoogleCallback(c *gin.Context) {
	expectedState, err := c.Cookie(oauthStateCookie)
	if err != nil || expectedState == "" || c.Query("state") != expectedState {
		httpkit.Error(c, http.StatusUnauthorized, "invalid oauth state", nil)
		return
	}
	c.SetCookie(oauthStateCookie, "", -1, "/", "", c.Request.TLS != nil, true)

	code := c.Query("code")
	if code == "" {
		httpkit.Error(c, http.StatusBadRequest, "code query parameter is required", nil)
		return
	}

	sessionToken, user, err := h.svc.HandleGoogleCallback(c.Request.Context(), code)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.SessionResponse{
		Token: sessionToken,
		User:  transport.NewUserResponse(user),
	})
}

// GetMe handles GET /api/v1/users/me.
func (h *Handler) GetMe(c *gin.Context) {
	userID, ok := httpkit.CurrentUserID(c)
	if !ok {
		httpkit.Error(c, http.StatusUnauthorized, "missing identity", nil)
		return
	}

	user, err := h.svc.Me(c.Request.Context(), userID)
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.OK(c, transport.NewUserResponse(user))
}

// SetEntitlements handles PUT /api/v1/admin/users/:id/entitlements.
func (h *Handler) SetEntitlements(c *gin.Context) {
	userID, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, "invalid user id", nil)
		return
	}

	var req transport.EntitlementsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "isAdmin and isSeller are required", nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, "isAdmin and isSeller are required", err.Error())
		return
	}

	if err := h.svc.SetEntitlements(c.Request.Context(), userID, *req.IsAdmin, *req.IsSeller); err != nil {
		httpkit.HandleError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
