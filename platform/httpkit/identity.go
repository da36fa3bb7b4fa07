package httpkit

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// CurrentUserID extracts the authenticated user ID set by AuthRequired.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, ok := c.Get(ContextUserIDKey)
	if !ok {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

// CurrentEntitlements extracts the is_admin / is_seller flags set by AuthRequired.
func CurrentEntitlements(c *gin.Context) (isAdmin, isSeller bool) {
	if value, ok := c.Get(ContextIsAdminKey); ok {
		isAdmin, _ = value.(bool)
	}
	if value, ok := c.Get(ContextIsSellerKey); ok {
		isSeller, _ = value.(bool)
	}
	return isAdmin, isSeller
}
