package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/trainia/trainia-cli/internal/client/client"
	"github.com/trainia/trainia-cli/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// reportError prints err for the user. Field-level validation messages are
// listed under their field names so the user sees which input was rejected.
func reportError(err error) {
	var verr *client.ValidationError
	if errors.As(err, &verr) {
		printlnFn(verr.Message)
		for field, msgs := range verr.Fields {
			for _, m := range msgs {
				printlnFn(fmt.Sprintf("  %s: %s", field, m))
			}
		}
		return
	}
	printlnFn(fmt.Sprintf("error: %v", err))
}

// Login prompts for credentials and authenticates. On success the session
// manager persists the token and publishes the authenticated state; on a
// validation failure the server's field errors are shown next to the
// offending fields.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.session.Login(ctx, email, string(password)); err != nil {
		reportError(err)
		return err
	}

	printlnFn("Logged in!")
	return nil
}

// Register prompts for the registration form and creates a new account.
// Registration does not log in; the new account still has to use login.
func (a *App) Register(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if !isValidEmail(email) {
		printlnFn("Please enter a valid email address")
		return nil
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)
	if !isValidPassword(password) {
		printlnFn(fmt.Sprintf("Password must be at least %d characters", minPasswordLength))
		return nil
	}

	confirmation, err := getPassword("Confirm password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirmation)
	if string(password) != string(confirmation) {
		printlnFn("Passwords do not match")
		return nil
	}

	msg, err := a.session.Register(ctx, name, email, string(password), string(confirmation))
	if err != nil {
		reportError(err)
		return err
	}

	printlnFn(msg)
	return nil
}

// Forgot prompts for an email and requests a password reset link.
func (a *App) Forgot(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}
	if !isValidEmail(email) {
		printlnFn("Please enter a valid email address")
		return nil
	}

	msg, err := a.session.ForgotPassword(ctx, email)
	if err != nil {
		reportError(err)
		return err
	}

	printlnFn(msg)
	return nil
}

// Logout tears down the session. It succeeds even when already logged out.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		reportError(err)
		return err
	}
	printlnFn("Logged out")
	return nil
}
