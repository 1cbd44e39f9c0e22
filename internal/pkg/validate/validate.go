// Package validate holds the sanitizers and accumulating validators applied
// to user input before it reaches persistence. Pure functions, no I/O.
package validate

import (
	"strings"

	validator "github.com/go-playground/validator/v10"

	"blogql/internal/pkg/apperr"
)

const minPasswordLen = 5
const minPostFieldLen = 5

var emailValidator = validator.New()

// NormalizeEmail canonicalizes an address for lookup and storage.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func Trim(s string) string {
	return strings.TrimSpace(s)
}

func IsEmail(email string) bool {
	return emailValidator.Var(email, "required,email") == nil
}

// Signup checks a registration input and returns every violation at once,
// in field order. Inputs are expected to be sanitized already.
func Signup(email, name, password string) []apperr.Violation {
	var violations []apperr.Violation
	if !IsEmail(email) {
		violations = append(violations, apperr.Violation{Message: "E-Mail is invalid."})
	}
	if name == "" {
		violations = append(violations, apperr.Violation{Message: "Name is required."})
	}
	if password == "" || len(password) < minPasswordLen {
		violations = append(violations, apperr.Violation{Message: "Password too short!"})
	}
	return violations
}

// PostInput checks a post title/content pair, accumulating.
func PostInput(title, content string) []apperr.Violation {
	var violations []apperr.Violation
	if title == "" || len(title) < minPostFieldLen {
		violations = append(violations, apperr.Violation{Message: "Title is invalid."})
	}
	if content == "" || len(content) < minPostFieldLen {
		violations = append(violations, apperr.Violation{Message: "Content is invalid."})
	}
	return violations
}
