package stubserver

import (
	"net/http"

	"civicsync-client/models"

	"github.com/gin-gonic/gin"
)

// routes mirrors the backend's authorization rules: /auth is public,
// /issues is for citizens, uploads for citizens and admins, /admin for
// admins, /users/me for anyone signed in, and /media is publicly readable.
func (s *Server) routes(r *gin.Engine) {
	r.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})
	r.GET("/media/:name", s.serveMedia)

	v1 := r.Group("/api/v1")

	auth := v1.Group("/auth")
	{
		auth.POST("/register", s.registerUser)
		auth.POST("/login", s.loginUser)
	}

	issues := v1.Group("/issues", s.authenticate(), requireRole(models.RoleCitizen))
	{
		issues.POST("", s.createIssue)
		issues.GET("/my-issues", s.myIssues)
	}

	v1.POST("/files/upload", s.authenticate(), requireRole(models.RoleCitizen, models.RoleAdmin), s.uploadFile)

	admin := v1.Group("/admin", s.authenticate(), requireRole(models.RoleAdmin))
	{
		admin.GET("/issues", s.allIssues)
		admin.PUT("/issues/:id/status", s.updateIssueStatus)
		admin.DELETE("/issues/:id", s.deleteIssue)
	}

	users := v1.Group("/users", s.authenticate())
	{
		users.GET("/me", s.getProfile)
		users.PUT("/me", s.updateProfile)
		users.DELETE("/me", s.deleteProfile)
	}
}
