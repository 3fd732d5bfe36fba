package usecase

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
)

type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

func ValidateDispatchInput(input DispatchInput) []ValidationError {
	var errors []ValidationError

	if input.Lead == nil {
		errors = append(errors, ValidationError{"lead", "is required"})
	} else if strings.TrimSpace(input.Lead.ID) == "" {
		errors = append(errors, ValidationError{"lead.id", "is required"})
	}

	if input.Template == nil {
		errors = append(errors, ValidationError{"template", "is required"})
	}

	return errors
}

type CaptureLeadInput struct {
	Name       string `json:"name,omitempty"`
	Email      string `json:"email"`
	Phone      string `json:"phone,omitempty"`
	SchoolName string `json:"school_name,omitempty"`
	Address    string `json:"address,omitempty"`
}

func ValidateCaptureLeadInput(input CaptureLeadInput) []ValidationError {
	var errors []ValidationError

	if strings.TrimSpace(input.Email) == "" {
		errors = append(errors, ValidationError{"email", "is required"})
	} else if _, err := mail.ParseAddress(input.Email); err != nil {
		errors = append(errors, ValidationError{"email", "is invalid"})
	}

	if input.Phone != "" && !isValidPhoneNumber(input.Phone) {
		errors = append(errors, ValidationError{"phone", "must be a valid phone number"})
	}

	if len(input.Name) > 200 {
		errors = append(errors, ValidationError{"name", "must not exceed 200 characters"})
	}

	return errors
}

func isValidPhoneNumber(phone string) bool {
	cleaned := regexp.MustCompile(`\D`).ReplaceAllString(phone, "")

	return len(cleaned) >= 10 && len(cleaned) <= 14
}

func joinValidationErrors(errs []ValidationError) string {
	msg := "validation failed: "
	for i, e := range errs {
		if i > 0 {
			msg += ", "
		}
		msg += e.Field + " (" + e.Message + ")"
	}
	return msg
}
