package client

import (
	"encoding/json"
	"net/http"
)

// Fallback messages used when an error response carries no usable body.
const (
	defaultUnauthorizedMessage = "invalid credentials"
	defaultValidationMessage   = "validation errors"
	defaultServerMessage       = "server error"
)

// errorBody is the error payload shape shared by all endpoints.
type errorBody struct {
	Message string      `json:"message"`
	Errors  FieldErrors `json:"errors"`
}

// Classify maps a non-2xx response to the error taxonomy. The authed flag
// distinguishes the two meanings of 401: during login it is a credentials
// problem and comes back as a validation error keyed to the email field,
// while on an authenticated call it means the session token is no longer
// accepted.
func Classify(status int, body []byte, authed bool) error {
	var parsed errorBody
	_ = json.Unmarshal(body, &parsed)

	switch {
	case status == http.StatusUnauthorized && !authed:
		msg := parsed.Message
		if msg == "" {
			msg = defaultUnauthorizedMessage
		}
		fields := parsed.Errors
		if len(fields) == 0 {
			fields = FieldErrors{"email": {msg}}
		}
		return &ValidationError{Message: msg, Fields: fields}

	case status == http.StatusUnauthorized:
		msg := parsed.Message
		if msg == "" {
			msg = defaultUnauthorizedMessage
		}
		return &UnauthorizedError{Message: msg}

	case status == http.StatusUnprocessableEntity:
		msg := parsed.Message
		if msg == "" {
			msg = defaultValidationMessage
		}
		fields := parsed.Errors
		if fields == nil {
			fields = FieldErrors{}
		}
		return &ValidationError{Message: msg, Fields: fields}

	default:
		msg := parsed.Message
		if msg == "" {
			msg = defaultServerMessage
		}
		return &ServerError{Code: status, Message: msg}
	}
}
