package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/DanDopi/Zorg-Dossier-sub002/internal/middleware"
	"github.com/DanDopi/Zorg-Dossier-sub002/internal/models"
	appErrors "github.com/DanDopi/Zorg-Dossier-sub002/pkg/errors"
)

func claimsFromContext(c *gin.Context) *models.JWTClaims {
	value, exists := c.Get(middleware.ContextUserKey)
	if !exists {
		return nil
	}
	claims, ok := value.(*models.JWTClaims)
	if !ok {
		return nil
	}
	return claims
}

// resolveClientID picks the client scope for a request: clients act on their
// own data, admins must name a client via the clientId query parameter.
func resolveClientID(c *gin.Context, claims *models.JWTClaims) (string, error) {
	if claims == nil {
		return "", appErrors.ErrUnauthorized
	}
	clientID := c.Query("clientId")
	if clientID == "" && claims.Role == models.RoleClient {
		clientID = claims.UserID
	}
	if clientID == "" {
		return "", appErrors.Clone(appErrors.ErrValidation, "clientId is required")
	}
	return clientID, nil
}
