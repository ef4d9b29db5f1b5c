package models

import "encoding/json"

// Envelope is the {success, message, data} wrapper the API puts around every
// structured response except the plain profile fetch. Data stays raw here so
// each gateway operation can decode it into its own payload type.
type Envelope struct {
	Success bool            `json:"success"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data"`
}

// LoginData is the data payload of a successful POST /login.
type LoginData struct {
	User      User   `json:"user"`
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

// DeletionWarningData is the data payload of GET /account/deletion-warning,
// shown to the user before the destructive delete call.
type DeletionWarningData struct {
	UserID  int    `json:"user_id"`
	Email   string `json:"email"`
	Warning string `json:"warning"`
}

// DeleteAccountData is the data payload of a successful DELETE /account.
type DeleteAccountData struct {
	UserID      int    `json:"user_id"`
	Email       string `json:"email"`
	DeletedAt   string `json:"deleted_at"`
	DataCleaned bool   `json:"data_cleaned"`
}
