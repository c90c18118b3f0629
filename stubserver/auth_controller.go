package stubserver

import (
	"net/http"

	"civicsync-client/models"
	authUtils "civicsync-client/utils"

	"github.com/gin-gonic/gin"
)

// registerUser handles citizen registration and signs the new user in
func (s *Server) registerUser(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required,max=50"`
		Email    string `json:"email" binding:"required,email"`
		Password string `json:"password" binding:"required,min=6"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	if s.store.emailTaken(input.Email, "") {
		respondError(c, http.StatusConflict, "Email is already registered: "+input.Email)
		return
	}

	u := &user{
		Username: input.Username,
		Email:    input.Email,
		Password: input.Password,
		Role:     models.RoleCitizen,
	}

	if err := u.HashPassword(); err != nil {
		s.log.WithError(err).Error("Error hashing password")
		respondError(c, http.StatusInternalServerError, "An unexpected internal server error occurred. Please try again later.")
		return
	}

	if !s.store.addUser(u) {
		respondError(c, http.StatusConflict, "Username is already taken: "+input.Username)
		return
	}

	s.respondWithToken(c, http.StatusCreated, u)
}

// loginUser handles username/password login
func (s *Server) loginUser(c *gin.Context) {
	var input struct {
		Username string `json:"username" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}

	u, ok := s.store.userByName(input.Username)
	if !ok || !u.ComparePassword(input.Password) {
		respondError(c, http.StatusUnauthorized, "Invalid username or password")
		return
	}

	s.respondWithToken(c, http.StatusOK, u)
}

func (s *Server) respondWithToken(c *gin.Context, status int, u *user) {
	token, err := authUtils.GenerateToken(s.secret, u.Username, s.now())
	if err != nil {
		s.log.WithError(err).Error("Error generating token")
		respondError(c, http.StatusInternalServerError, "An unexpected internal server error occurred. Please try again later.")
		return
	}

	c.JSON(status, models.AuthResponse{
		Token:    token,
		Username: u.Username,
		Role:     u.Role,
	})
}
