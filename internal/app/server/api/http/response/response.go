// Package response sets the error body shape used by every endpoint:
// {"message": "..."}.
package response

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"
)

// ErrorModel is the body of every error response.
type ErrorModel struct {
	Status  int    `json:"-"`
	Message string `json:"message" example:"Item not found or user unauthorized"`
}

func (e *ErrorModel) Error() string {
	return e.Message
}

func (e *ErrorModel) GetStatus() int {
	return e.Status
}

// MessageBody is a plain confirmation.
type MessageBody struct {
	Message string `json:"message"`
}

func init() {
	huma.NewError = NewError
}

// NewError replaces huma's problem+json errors. Request validation failures
// are reported as 400 with their details folded into the message.
func NewError(status int, msg string, errs ...error) huma.StatusError {
	if status == http.StatusUnprocessableEntity {
		status = http.StatusBadRequest
	}

	details := make([]string, 0, len(errs))
	for _, err := range errs {
		if err == nil {
			continue
		}
		var detail *huma.ErrorDetail
		if errors.As(err, &detail) && detail.Location != "" {
			details = append(details, detail.Location+": "+detail.Message)
			continue
		}
		details = append(details, err.Error())
	}
	if len(details) > 0 {
		msg = msg + ": " + strings.Join(details, "; ")
	}

	return &ErrorModel{Status: status, Message: msg}
}

// Write sends an error body outside of a huma handler, e.g. from middleware.
func Write(ctx huma.Context, status int, msg string) error {
	ctx.SetHeader("Content-Type", "application/json")
	ctx.SetStatus(status)
	return json.NewEncoder(ctx.BodyWriter()).Encode(ErrorModel{Message: msg})
}

// APIConfig is huma's default config without the $schema links in bodies,
// so clients see the plain JSON shapes.
func APIConfig(title, version string) huma.Config {
	config := huma.DefaultConfig(title, version)
	config.CreateHooks = nil
	config.Components.SecuritySchemes = map[string]*huma.SecurityScheme{
		"bearer": {Type: "http", Scheme: "bearer", BearerFormat: "JWT"},
	}
	return config
}
