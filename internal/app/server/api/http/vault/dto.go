package vault

import (
	"time"

	"vaultkeeper/internal/app/server/api/http/response"
	"vaultkeeper/internal/domain/vault"
)

// ItemBody is the wire form of a stored item.
type ItemBody struct {
	ID                string    `json:"_id" format:"uuid"`
	UserID            string    `json:"userId" format:"uuid"`
	Title             string    `json:"title"`
	Username          string    `json:"username"`
	EncryptedPassword string    `json:"encryptedPassword" doc:"Client-side ciphertext, stored as is"`
	URL               string    `json:"url"`
	Notes             string    `json:"notes"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

func toBody(it vault.Item) ItemBody {
	return ItemBody{
		ID:                it.ID,
		UserID:            it.OwnerID,
		Title:             it.Title,
		Username:          it.Username,
		EncryptedPassword: it.EncryptedPassword,
		URL:               it.URL,
		Notes:             it.Notes,
		CreatedAt:         it.CreatedAt,
		UpdatedAt:         it.UpdatedAt,
	}
}

type listOutput struct {
	Body []ItemBody
}

type getInput struct {
	ID string `path:"id"`
}

type itemOutput struct {
	Body ItemBody
}

// Request bodies accept unknown fields, so an item as returned by the API
// can be sent back as is.
type createRequest struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	Title             string `json:"title" required:"false"`
	Username          string `json:"username" required:"false"`
	EncryptedPassword string `json:"encryptedPassword" required:"false"`
	URL               string `json:"url" required:"false"`
	Notes             string `json:"notes" required:"false"`
}

type createInput struct {
	Body createRequest
}

// updateRequest fields left out of the JSON keep their stored value.
type updateRequest struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	ID                string  `json:"_id" required:"false"`
	Title             *string `json:"title,omitempty" required:"false"`
	Username          *string `json:"username,omitempty" required:"false"`
	EncryptedPassword *string `json:"encryptedPassword,omitempty" required:"false"`
	URL               *string `json:"url,omitempty" required:"false"`
	Notes             *string `json:"notes,omitempty" required:"false"`
}

type updateInput struct {
	Body updateRequest
}

type deleteRequest struct {
	_ struct{} `json:"-" additionalProperties:"true"`

	ID string `json:"_id" required:"false"`
}

type deleteInput struct {
	Body deleteRequest
}

type deleteOutput struct {
	Body response.MessageBody
}
