package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/trainia/trainia-cli/internal/client/models"
	"github.com/trainia/trainia-cli/internal/client/repositories/token"
	"github.com/trainia/trainia-cli/internal/logging"
)

// API paths, relative to the configured base URL.
const (
	loginPath           = "/login"
	registerPath        = "/register"
	profilePath         = "/user"
	profileUpdatePath   = "/profile/update"
	forgotPasswordPath  = "/forgot-password"
	changePasswordPath  = "/change-password"
	deletionWarningPath = "/account/deletion-warning"
	deleteAccountPath   = "/account"
)

const contentTypeJSON = "application/json"

// HTTPClient is the production Client implementation speaking the TrainIA
// JSON/multipart protocol. The bearer token is read from the token repository
// on every authenticated request, so the client itself stays stateless.
type HTTPClient struct {
	baseURL string
	http    *http.Client
	tokens  token.Repository
	log     logging.Logger
}

// NewHTTPClient builds a client against baseURL. The timeout bounds every
// request round trip.
func NewHTTPClient(baseURL string, timeout time.Duration, tokens token.Repository, log logging.Logger) *HTTPClient {
	return &HTTPClient{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: timeout},
		tokens:  tokens,
		log:     log,
	}
}

// Request body DTOs. Field names follow the wire contract.

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Name                 string `json:"name"`
	Email                string `json:"email"`
	Password             string `json:"password"`
	PasswordConfirmation string `json:"password_confirmation"`
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

type changePasswordRequest struct {
	CurrentPassword string `json:"current_password"`
	NewPassword     string `json:"new_password"`
}

type deleteAccountRequest struct {
	Password        string `json:"password"`
	ConfirmDeletion bool   `json:"confirm_deletion"`
}

// do sends one request and returns the raw status and body. A transport
// failure (no response at all) comes back as *NetworkError; any received
// response, whatever its status, is returned to the caller for
// classification.
func (c *HTTPClient) do(ctx context.Context, method, path string, body []byte, contentType string, authed bool) (int, []byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return 0, nil, fmt.Errorf("build request %s %s: %w", method, path, err)
	}
	if contentType != "" {
		req.Header.Set("Content-Type", contentType)
	}
	if authed {
		tok, err := c.tokens.Load(ctx)
		if err != nil {
			c.log.Warn(ctx, "token load failed, sending request without credentials", "error", err)
		} else if tok != "" {
			req.Header.Set("Authorization", "Bearer "+tok)
		}
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return 0, nil, &NetworkError{Err: err}
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return 0, nil, &NetworkError{Err: err}
	}
	return resp.StatusCode, data, nil
}

// doEnvelope sends a JSON request (payload may be nil for GET) and decodes
// the standard {success, message, data} envelope from a 2xx response.
// Non-2xx statuses are mapped through Classify.
func (c *HTTPClient) doEnvelope(ctx context.Context, method, path string, payload any, authed bool) (*models.Envelope, error) {
	var body []byte
	contentType := ""
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, fmt.Errorf("encode request body: %w", err)
		}
		body = b
		contentType = contentTypeJSON
	}

	status, data, err := c.do(ctx, method, path, body, contentType, authed)
	if err != nil {
		return nil, err
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, Classify(status, data, authed)
	}

	var env models.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	return &env, nil
}

// Login exchanges credentials for a token and the user record.
func (c *HTTPClient) Login(ctx context.Context, email, password string) (*models.LoginData, error) {
	env, err := c.doEnvelope(ctx, http.MethodPost, loginPath, loginRequest{Email: email, Password: password}, false)
	if err != nil {
		return nil, err
	}
	var data models.LoginData
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return nil, fmt.Errorf("%w: login payload: %v", ErrInvalidResponse, err)
	}
	if data.Token == "" {
		return nil, fmt.Errorf("%w: login payload is missing a token", ErrInvalidResponse)
	}
	return &data, nil
}

// Register creates an account and returns the server's message.
func (c *HTTPClient) Register(ctx context.Context, name, email, password, passwordConfirmation string) (string, error) {
	env, err := c.doEnvelope(ctx, http.MethodPost, registerPath, registerRequest{
		Name:                 name,
		Email:                email,
		Password:             password,
		PasswordConfirmation: passwordConfirmation,
	}, false)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// GetProfile fetches the current user. Unlike every other endpoint this one
// returns the user record at the top level, without an envelope.
func (c *HTTPClient) GetProfile(ctx context.Context) (*models.User, error) {
	status, data, err := c.do(ctx, http.MethodGet, profilePath, nil, "", true)
	if err != nil {
		return nil, err
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, Classify(status, data, true)
	}

	var user models.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("%w: profile payload: %v", ErrInvalidResponse, err)
	}
	return &user, nil
}

// UpdateProfile sends the present fields of upd as a multipart form and
// returns the updated user record.
func (c *HTTPClient) UpdateProfile(ctx context.Context, upd ProfileUpdate) (*models.User, error) {
	body, contentType, err := encodeProfileUpdate(upd)
	if err != nil {
		return nil, err
	}

	status, data, err := c.do(ctx, http.MethodPost, profileUpdatePath, body, contentType, true)
	if err != nil {
		return nil, err
	}
	if status < http.StatusOK || status >= http.StatusMultipleChoices {
		return nil, Classify(status, data, true)
	}

	var env models.Envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidResponse, err)
	}
	var user models.User
	if err := json.Unmarshal(env.Data, &user); err != nil {
		return nil, fmt.Errorf("%w: profile update payload: %v", ErrInvalidResponse, err)
	}
	return &user, nil
}

// ForgotPassword requests a password reset email and returns the server's
// message.
func (c *HTTPClient) ForgotPassword(ctx context.Context, email string) (string, error) {
	env, err := c.doEnvelope(ctx, http.MethodPost, forgotPasswordPath, forgotPasswordRequest{Email: email}, false)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// ChangePassword replaces the account password. The server invalidates the
// current token on success; the session layer is responsible for the
// follow-up logout.
func (c *HTTPClient) ChangePassword(ctx context.Context, currentPassword, newPassword string) (string, error) {
	env, err := c.doEnvelope(ctx, http.MethodPost, changePasswordPath, changePasswordRequest{
		CurrentPassword: currentPassword,
		NewPassword:     newPassword,
	}, true)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}

// GetDeletionWarning fetches the summary of what deleting the account will
// remove.
func (c *HTTPClient) GetDeletionWarning(ctx context.Context) (*models.DeletionWarningData, error) {
	env, err := c.doEnvelope(ctx, http.MethodGet, deletionWarningPath, nil, true)
	if err != nil {
		return nil, err
	}
	var warning models.DeletionWarningData
	if err := json.Unmarshal(env.Data, &warning); err != nil {
		return nil, fmt.Errorf("%w: deletion warning payload: %v", ErrInvalidResponse, err)
	}
	return &warning, nil
}

// DeleteAccount permanently removes the account and returns the server's
// message.
func (c *HTTPClient) DeleteAccount(ctx context.Context, password string, confirmDeletion bool) (string, error) {
	env, err := c.doEnvelope(ctx, http.MethodDelete, deleteAccountPath, deleteAccountRequest{
		Password:        password,
		ConfirmDeletion: confirmDeletion,
	}, true)
	if err != nil {
		return "", err
	}
	return env.Message, nil
}
