package client

import "time"

// Item mirrors the server's JSON shape.
type Item struct {
	ID                string    `json:"_id"`
	UserID            string    `json:"userId"`
	Title             string    `json:"title"`
	Username          string    `json:"username"`
	EncryptedPassword string    `json:"encryptedPassword"`
	URL               string    `json:"url"`
	Notes             string    `json:"notes"`
	CreatedAt         time.Time `json:"createdAt"`
	UpdatedAt         time.Time `json:"updatedAt"`
}

// NewItem carries plaintext; the password is sealed before upload.
type NewItem struct {
	Title    string
	Username string
	Password string
	URL      string
	Notes    string
}

// ItemChanges is a partial edit. Nil fields are left untouched on the server.
type ItemChanges struct {
	Title    *string
	Username *string
	Password *string
	URL      *string
	Notes    *string
}

// Secret is an item with its password opened.
type Secret struct {
	Item
	Password string `json:"password"`
}

type credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type createItemRequest struct {
	Title             string `json:"title"`
	Username          string `json:"username"`
	EncryptedPassword string `json:"encryptedPassword"`
	URL               string `json:"url,omitempty"`
	Notes             string `json:"notes,omitempty"`
}

type updateItemRequest struct {
	ID                string  `json:"_id"`
	Title             *string `json:"title,omitempty"`
	Username          *string `json:"username,omitempty"`
	EncryptedPassword *string `json:"encryptedPassword,omitempty"`
	URL               *string `json:"url,omitempty"`
	Notes             *string `json:"notes,omitempty"`
}

type idRequest struct {
	ID string `json:"_id"`
}

type messageResponse struct {
	Message string `json:"message"`
}

type tokenResponse struct {
	Token string `json:"token"`
}
