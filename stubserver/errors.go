package stubserver

import (
	"errors"
	"net/http"
	"time"

	"civicsync-client/api"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
)

// respondError writes the backend's standard error document.
func respondError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, api.ErrorBody{
		Timestamp: time.Now().UTC().Format(time.RFC3339Nano),
		Status:    status,
		Error:     http.StatusText(status),
		Message:   message,
		Path:      c.Request.URL.Path,
	})
}

var fieldMessages = map[string]string{
	"Title|required":       "Title is required",
	"Description|required": "Description is required",
	"Category|required":    "Category is required",
	"Username|required":    "Username is required",
	"Password|required":    "Password is required",
	"Password|min":         "Password must be at least 6 characters",
	"Email|required":       "Email is required",
	"Email|email":          "Please provide a valid email address",
}

// bindingMessage reports only the first failing field.
func bindingMessage(err error) string {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		first := fieldErrs[0]
		if msg, ok := fieldMessages[first.Field()+"|"+first.Tag()]; ok {
			return msg
		}
		return first.Field() + " is invalid"
	}
	return "Validation failed"
}
