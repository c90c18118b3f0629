package workflow

import (
	"errors"
	"fmt"
	"strings"

	"civicsync-client/models"

	"github.com/go-playground/validator/v10"
)

func newValidator() *validator.Validate {
	v := validator.New()
	if err := v.RegisterValidation("issue_category", validateCategory); err != nil {
		panic(fmt.Sprintf("register issue_category validation: %v", err))
	}
	return v
}

func validateCategory(fl validator.FieldLevel) bool {
	return models.IssueCategory(fl.Field().String()).Valid()
}

// validateDraft checks the required fields the backend would otherwise
// reject. Whitespace-only text counts as empty.
func validateDraft(v *validator.Validate, draft *models.IssueDraft) error {
	if draft == nil {
		return &ValidationError{Field: "draft", Message: "Nothing to submit"}
	}

	trimmed := *draft
	trimmed.Title = strings.TrimSpace(draft.Title)
	trimmed.Description = strings.TrimSpace(draft.Description)

	err := v.Struct(trimmed)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return &ValidationError{Field: "draft", Message: err.Error()}
	}

	first := fieldErrs[0]
	switch first.Tag() {
	case "required":
		return &ValidationError{Field: first.Field(), Message: first.Field() + " is required"}
	case "issue_category":
		names := make([]string, len(models.Categories))
		for i, c := range models.Categories {
			names[i] = string(c)
		}
		return &ValidationError{
			Field:   first.Field(),
			Message: fmt.Sprintf("Category must be one of: %s", strings.Join(names, ", ")),
		}
	default:
		return &ValidationError{Field: first.Field(), Message: first.Error()}
	}
}
