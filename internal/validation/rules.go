// Package validation holds the input rules shared by the account and vault services.
package validation

import (
	"fmt"
	"regexp"
	"strings"
	"unicode"

	validation "github.com/jellydator/validation"
)

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+\-]+@[a-zA-Z0-9.\-]+\.[a-zA-Z]{2,}$`)

// Wrap joins a rule failure to a domain sentinel so callers can match it with errors.Is.
func Wrap(sentinel, err error) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%w: %s", sentinel, err.Error())
}

// PasswordStrength checks length and character classes of an account password.
type PasswordStrength struct {
	MinLength      int
	MaxLength      int
	RequireUpper   bool
	RequireLower   bool
	RequireNumber  bool
	RequireSpecial bool
}

func (p PasswordStrength) Validate(value interface{}) error {
	s, ok := value.(string)
	if !ok {
		return validation.NewError("validation_password_type", "password must be a string")
	}

	if len(s) < p.MinLength {
		return validation.NewError("validation_password_min_length",
			fmt.Sprintf("password must be at least %d characters", p.MinLength))
	}
	// bcrypt ignores everything past 72 bytes
	if p.MaxLength > 0 && len(s) > p.MaxLength {
		return validation.NewError("validation_password_max_length",
			fmt.Sprintf("password must be at most %d bytes", p.MaxLength))
	}

	if p.RequireUpper && !containsAny(s, unicode.IsUpper) {
		return validation.NewError("validation_password_uppercase",
			"password must contain at least one uppercase letter")
	}
	if p.RequireLower && !containsAny(s, unicode.IsLower) {
		return validation.NewError("validation_password_lowercase",
			"password must contain at least one lowercase letter")
	}
	if p.RequireNumber && !containsAny(s, unicode.IsNumber) {
		return validation.NewError("validation_password_number",
			"password must contain at least one number")
	}
	if p.RequireSpecial && !containsAny(s, isSpecial) {
		return validation.NewError("validation_password_special",
			"password must contain at least one special character")
	}

	return nil
}

func isSpecial(r rune) bool {
	return unicode.IsPunct(r) || unicode.IsSymbol(r)
}

func containsAny(s string, pred func(rune) bool) bool {
	for _, r := range s {
		if pred(r) {
			return true
		}
	}
	return false
}

// Email checks the address shape only; deliverability is not verified.
var Email = validation.NewStringRuleWithError(
	func(s string) bool {
		return emailRegex.MatchString(s)
	},
	validation.NewError("validation_email_format", "must be a valid email address"),
)

// NotBlank rejects strings that are empty after trimming whitespace.
var NotBlank = validation.NewStringRuleWithError(
	func(s string) bool {
		return strings.TrimSpace(s) != ""
	},
	validation.NewError("validation_not_blank", "must not be blank"),
)
