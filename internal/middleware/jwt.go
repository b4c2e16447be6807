package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/tutortrack-api/internal/service"
	appErrors "github.com/noah-isme/tutortrack-api/pkg/errors"
	"github.com/noah-isme/tutortrack-api/pkg/response"
)

// ContextIdentityKey is the gin context key storing the validated identity.
const ContextIdentityKey = "currentIdentity"

// JWT protects owner-scoped routes. A valid token attaches the identity and
// lazily opens the account's state session so the first authenticated request
// starts the sync loop.
func JWT(authService *service.AuthService, stateService *service.StateService) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			response.Error(c, appErrors.ErrUnauthorized)
			c.Abort()
			return
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
			response.Error(c, appErrors.Clone(appErrors.ErrUnauthorized, "invalid authorization header"))
			c.Abort()
			return
		}

		identity, err := authService.ValidateToken(parts[1])
		if err != nil {
			response.Error(c, err)
			c.Abort()
			return
		}

		stateService.Attach(c.Request.Context(), identity.OwnerID)
		c.Set(ContextIdentityKey, identity)
		c.Next()
	}
}

// Identity returns the validated identity stored by the JWT middleware.
func Identity(c *gin.Context) *service.Identity {
	if v, exists := c.Get(ContextIdentityKey); exists {
		if identity, ok := v.(*service.Identity); ok {
			return identity
		}
	}
	return nil
}
