package user

import "vaultkeeper/internal/app/server/api/http/response"

type Credentials struct {
	Email    string `json:"email" required:"false" maxLength:"254" example:"alice@example.com"`
	Password string `json:"password" required:"false" example:"Secret123!"`
}

type registerInput struct {
	Body Credentials
}

type registerOutput struct {
	Body response.MessageBody
}

type loginInput struct {
	Body Credentials
}

type loginOutput struct {
	Body LoginResponse
}

type LoginResponse struct {
	Token string `json:"token" doc:"Bearer token, valid for one hour"`
}
