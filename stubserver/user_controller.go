package stubserver

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// getProfile returns the authenticated user's profile
func (s *Server) getProfile(c *gin.Context) {
	c.JSON(http.StatusOK, currentUser(c).profile())
}

// updateProfile changes the authenticated user's email
func (s *Server) updateProfile(c *gin.Context) {
	var input struct {
		Email string `json:"email" binding:"required,email"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	me := currentUser(c)
	if s.store.emailTaken(input.Email, me.Username) {
		respondError(c, http.StatusConflict, "Email is already registered: "+input.Email)
		return
	}

	updated, ok := s.store.updateEmail(me.Username, input.Email)
	if !ok {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}

	c.JSON(http.StatusOK, updated.profile())
}

// deleteProfile removes the authenticated user's account
func (s *Server) deleteProfile(c *gin.Context) {
	if !s.store.deleteUser(currentUser(c).Username) {
		respondError(c, http.StatusNotFound, "User not found")
		return
	}
	c.Status(http.StatusNoContent)
}
