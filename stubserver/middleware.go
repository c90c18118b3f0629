package stubserver

import (
	"net/http"
	"strings"
	"time"

	authUtils "civicsync-client/utils"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const userKey = "user"

// requestLogger logs one line per request.
func requestLogger(log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.WithFields(logrus.Fields{
			"method":   c.Request.Method,
			"path":     c.Request.URL.Path,
			"status":   c.Writer.Status(),
			"duration": time.Since(start).String(),
		}).Debug("stub request")
	}
}

// authenticate resolves the bearer token to a stored user.
func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.Request.Header.Get("Authorization")
		if authHeader == "" {
			respondError(c, http.StatusUnauthorized, "No authorization token provided")
			return
		}

		// Extracting token from "Bearer <token>" format
		tokenString := strings.TrimPrefix(authHeader, "Bearer ")

		username, err := authUtils.ParseToken(s.secret, tokenString)
		if err != nil {
			s.log.WithError(err).Debug("Token validation failed")
			respondError(c, http.StatusUnauthorized, "Invalid authorization token")
			return
		}

		u, ok := s.store.userByName(username)
		if !ok {
			respondError(c, http.StatusUnauthorized, "Invalid authorization token")
			return
		}

		c.Set(userKey, u)
		c.Next()
	}
}

// requireRole admits users holding any of roles. It must run after
// authenticate.
func requireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		u := currentUser(c)
		if u == nil {
			respondError(c, http.StatusUnauthorized, "User not authenticated")
			return
		}
		for _, role := range roles {
			if u.Role == role {
				c.Next()
				return
			}
		}
		respondError(c, http.StatusForbidden, "Access denied")
	}
}

func currentUser(c *gin.Context) *user {
	v, ok := c.Get(userKey)
	if !ok {
		return nil
	}
	u, _ := v.(*user)
	return u
}
