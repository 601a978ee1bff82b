package httpapi

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/dkovalev/accountd/internal/server/auth"
)

const bearerPrefix = "Bearer "

// requireToken validates the Authorization bearer token against the server's
// signing secret, issuer and audience. Validity is purely a function of the
// signature and expiry; no session state is consulted.
func (s *Server) requireToken() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, bearerPrefix) {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing token"})
			return
		}

		token := strings.TrimPrefix(header, bearerPrefix)
		if err := auth.ValidateToken(token, s.jwtSecret, s.tokenIssuer, s.tokenAudience); err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Next()
	}
}
