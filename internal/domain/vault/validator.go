package vault

import (
	validation "github.com/jellydator/validation"

	appvalidation "vaultkeeper/internal/validation"
)

const (
	maxTitleLen    = 256
	maxUsernameLen = 256
	maxSecretLen   = 16 * 1024
	maxURLLen      = 2048
	maxNotesLen    = 64 * 1024
)

func (d Draft) Validate() error {
	err := validation.Errors{
		"title": validation.Validate(d.Title,
			validation.Required, appvalidation.NotBlank, validation.Length(0, maxTitleLen)),
		"username": validation.Validate(d.Username,
			validation.Required, appvalidation.NotBlank, validation.Length(0, maxUsernameLen)),
		"encryptedPassword": validation.Validate(d.EncryptedPassword,
			validation.Required, validation.Length(0, maxSecretLen)),
		"url":   validation.Validate(d.URL, validation.Length(0, maxURLLen)),
		"notes": validation.Validate(d.Notes, validation.Length(0, maxNotesLen)),
	}.Filter()

	return appvalidation.Wrap(ErrValidation, err)
}

// Validate rejects a patch that clears a required field.
func (p Patch) Validate() error {
	err := validation.Errors{
		"title": validation.Validate(p.Title,
			validation.NilOrNotEmpty, appvalidation.NotBlank, validation.Length(0, maxTitleLen)),
		"username": validation.Validate(p.Username,
			validation.NilOrNotEmpty, appvalidation.NotBlank, validation.Length(0, maxUsernameLen)),
		"encryptedPassword": validation.Validate(p.EncryptedPassword,
			validation.NilOrNotEmpty, validation.Length(0, maxSecretLen)),
		"url":   validation.Validate(p.URL, validation.Length(0, maxURLLen)),
		"notes": validation.Validate(p.Notes, validation.Length(0, maxNotesLen)),
	}.Filter()

	return appvalidation.Wrap(ErrValidation, err)
}
