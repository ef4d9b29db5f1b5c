package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/trainia/trainia-cli/internal/common"
)

// Passwd changes the account password. A successful change invalidates the
// current token on the server, so the session manager logs out right after;
// the user is told to log in again.
func (a *App) Passwd(ctx context.Context) error {
	current, err := getPassword("Current password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(current)

	next, err := getPassword("New password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(next)

	confirm, err := getPassword("Confirm new password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(next) != string(confirm) {
		printlnFn("Passwords do not match")
		return nil
	}

	msg, err := a.session.ChangePassword(ctx, string(current), string(next))
	if err != nil {
		reportError(err)
		return err
	}

	printlnFn(msg)
	printlnFn("Your session has ended, please log in with the new password")
	return nil
}

// Delete shows the server's deletion warning, asks for the password and an
// explicit confirmation, and then destroys the account. On success the
// session is already logged out by the time the message is printed.
func (a *App) Delete(ctx context.Context) error {
	warning, err := a.session.GetDeletionWarning(ctx)
	if err != nil {
		reportError(err)
		return err
	}
	printlnFn(fmt.Sprintf("Deleting account %s (user %d)", warning.Email, warning.UserID))
	if warning.Warning != "" {
		printlnFn(warning.Warning)
	}

	confirm, err := getSimpleText(a.reader, "Type 'yes' to confirm deletion", os.Stdout)
	if err != nil {
		return err
	}
	if confirm != "yes" {
		printlnFn("Aborted")
		return nil
	}

	password, err := getPassword("Enter password", os.Stdout)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	msg, err := a.session.DeleteAccount(ctx, string(password), true)
	if err != nil {
		reportError(err)
		return err
	}

	printlnFn(msg)
	return nil
}
