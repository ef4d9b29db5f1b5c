package client

import (
	"context"

	"github.com/trainia/trainia-cli/internal/client/models"
)

// Client defines the API operations the TrainIA backend exposes to this
// program. Operations that return a string return the server's message from
// the response envelope.
//
// Authenticated operations attach the stored bearer token when one exists.
// A missing token is not pre-empted locally: the request is sent anyway and
// the server's rejection is surfaced through the error taxonomy.
type Client interface {
	Login(ctx context.Context, email, password string) (*models.LoginData, error)
	Register(ctx context.Context, name, email, password, passwordConfirmation string) (string, error)
	GetProfile(ctx context.Context) (*models.User, error)
	UpdateProfile(ctx context.Context, upd ProfileUpdate) (*models.User, error)
	ForgotPassword(ctx context.Context, email string) (string, error)
	ChangePassword(ctx context.Context, currentPassword, newPassword string) (string, error)
	GetDeletionWarning(ctx context.Context) (*models.DeletionWarningData, error)
	DeleteAccount(ctx context.Context, password string, confirmDeletion bool) (string, error)
}

// ProfileUpdate describes a partial profile update. Nil fields are left out
// of the request entirely, they are never sent as empty values.
type ProfileUpdate struct {
	Name   *string
	Email  *string
	Avatar []byte
}
