package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/guttosm/epq-service/internal/domain/dto"
	"github.com/guttosm/epq-service/internal/i18n"
)

// Scopes granted to API callers.
const (
	ScopeOptimize    = "optimize"
	ScopeHistoryRead = "history:read"
)

// AllScopes is granted to API key callers.
var AllScopes = []string{ScopeOptimize, ScopeHistoryRead}

// RequireScope rejects authenticated callers lacking scope. Anonymous
// requests pass so the route still works with authentication disabled;
// Authenticate already rejects them when it is enabled.
func RequireScope(scope string) gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, exists := c.Get(string(ScopesKey))
		if !exists {
			c.Next()
			return
		}

		scopes, _ := raw.([]string)
		for _, s := range scopes {
			if s == scope {
				c.Next()
				return
			}
		}
		abortWithError(c, http.StatusForbidden, dto.ErrCodeForbidden, i18n.ErrKeyForbidden)
	}
}
