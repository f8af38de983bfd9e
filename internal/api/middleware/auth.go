package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mielhoja/bakeryapi/internal/config"
)

// AdminAuth verifies the bearer key on admin routes against the configured
// bcrypt hash
func AdminAuth(cfg *config.Config, logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		key := strings.TrimPrefix(header, "Bearer ")
		if key == "" || key == header {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing bearer token"})
			return
		}

		if err := bcrypt.CompareHashAndPassword([]byte(cfg.Admin.KeyHash), []byte(key)); err != nil {
			logger.Warn("Rejected admin request", zap.String("path", c.Request.URL.Path))
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid admin key"})
			return
		}

		c.Next()
	}
}

// CartID extracts the caller's cart identity from the X-Cart-ID header
func CartID(c *gin.Context) (string, bool) {
	cartID := c.GetHeader("X-Cart-ID")
	return cartID, cartID != ""
}
