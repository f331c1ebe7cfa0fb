package user

import (
	validation "github.com/jellydator/validation"

	appvalidation "vaultkeeper/internal/validation"
)

const (
	MaxEmailLen    = 254
	MinPasswordLen = 8
	MaxPasswordLen = 72
)

type Validator interface {
	ValidateRegister(email, password string) error
}

type CredentialsValidator struct {
	password appvalidation.PasswordStrength
}

func NewCredentialsValidator() *CredentialsValidator {
	return &CredentialsValidator{
		password: appvalidation.PasswordStrength{
			MinLength:      MinPasswordLen,
			MaxLength:      MaxPasswordLen,
			RequireUpper:   true,
			RequireLower:   true,
			RequireNumber:  true,
			RequireSpecial: true,
		},
	}
}

func (v *CredentialsValidator) ValidateRegister(email, password string) error {
	err := validation.Errors{
		"email": validation.Validate(email,
			validation.Required,
			validation.Length(0, MaxEmailLen),
			appvalidation.Email,
		),
		"password": validation.Validate(password,
			validation.Required,
			v.password,
		),
	}.Filter()

	return appvalidation.Wrap(ErrInvalidInput, err)
}
