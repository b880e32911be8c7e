package server

import (
	"crypto/subtle"
	"strings"

	"github.com/gin-gonic/gin"
)

const headerAPIKey = "X-API-Key"

// APIKeyRequired authenticates requests with the shared service key
// presented in the X-API-Key header.
func (s *Server) APIKeyRequired() gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.GetHeader(headerAPIKey)
		if strings.TrimSpace(key) == "" {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		if subtle.ConstantTimeCompare([]byte(key), []byte(s.cfg.APIKey)) != 1 {
			AbortWithError(c, ErrUnauthorized)
			return
		}

		c.Next()
	}
}
