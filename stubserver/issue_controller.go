package stubserver

import (
	"fmt"
	"net/http"
	"strconv"
	"strings"

	"civicsync-client/models"

	"github.com/gin-gonic/gin"
)

// createIssue handles the creation of a new issue by a citizen
func (s *Server) createIssue(c *gin.Context) {
	var input struct {
		Title       string   `json:"title" binding:"required"`
		Description string   `json:"description" binding:"required"`
		Category    string   `json:"category" binding:"required"`
		ImageURL    *string  `json:"imageUrl"`
		Latitude    *float64 `json:"latitude"`
		Longitude   *float64 `json:"longitude"`
	}

	if err := c.ShouldBindJSON(&input); err != nil {
		respondError(c, http.StatusBadRequest, bindingMessage(err))
		return
	}
	if strings.TrimSpace(input.Title) == "" {
		respondError(c, http.StatusBadRequest, "Title is required")
		return
	}
	if strings.TrimSpace(input.Description) == "" {
		respondError(c, http.StatusBadRequest, "Description is required")
		return
	}
	if !models.IssueCategory(input.Category).Valid() {
		respondError(c, http.StatusBadRequest, "Invalid category")
		return
	}

	issue := s.store.addIssue(&models.Issue{
		Title:               input.Title,
		Description:         input.Description,
		Category:            models.IssueCategory(input.Category),
		Status:              models.Pending,
		ImageURL:            input.ImageURL,
		Latitude:            input.Latitude,
		Longitude:           input.Longitude,
		SubmittedByUsername: currentUser(c).Username,
		CreatedAt:           s.now().UTC(),
	})

	c.JSON(http.StatusCreated, issue)
}

// myIssues lists the authenticated citizen's issues, newest first
func (s *Server) myIssues(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.listIssues(currentUser(c).Username))
}

// allIssues lists every issue, newest first
func (s *Server) allIssues(c *gin.Context) {
	c.JSON(http.StatusOK, s.store.listIssues(""))
}

// updateIssueStatus moves an issue to a new status
func (s *Server) updateIssueStatus(c *gin.Context) {
	id, ok := issueID(c)
	if !ok {
		return
	}

	var input map[string]string
	if err := c.ShouldBindJSON(&input); err != nil || strings.TrimSpace(input["status"]) == "" {
		// The real backend answers a blank status with an empty 400.
		c.AbortWithStatus(http.StatusBadRequest)
		return
	}

	status, err := models.ParseStatus(input["status"])
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid status")
		return
	}

	issue, found := s.store.setStatus(id, status)
	if !found {
		respondError(c, http.StatusNotFound, fmt.Sprintf("Issue not found with id: %d", id))
		return
	}

	c.JSON(http.StatusOK, issue)
}

// deleteIssue removes an issue and its stored image
func (s *Server) deleteIssue(c *gin.Context) {
	id, ok := issueID(c)
	if !ok {
		return
	}

	if !s.store.deleteIssue(id) {
		respondError(c, http.StatusNotFound, fmt.Sprintf("Issue not found with id: %d", id))
		return
	}

	c.Status(http.StatusNoContent)
}

func issueID(c *gin.Context) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		respondError(c, http.StatusBadRequest, "Invalid issue ID")
		return 0, false
	}
	return id, true
}
