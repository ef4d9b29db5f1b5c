package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/trainia/trainia-cli/internal/client/client"
)

// readFile is a test seam for os.ReadFile, used when loading an avatar image.
var readFile = os.ReadFile

// Whoami fetches the profile from the server and prints it. A failure here
// is soft: the session stays as it is and the error is only reported.
func (a *App) Whoami(ctx context.Context) error {
	user, err := a.session.GetProfile(ctx)
	if err != nil {
		reportError(err)
		return err
	}

	printlnFn(fmt.Sprintf("ID:           %d", user.ID))
	printlnFn(fmt.Sprintf("Name:         %s", user.Name))
	printlnFn(fmt.Sprintf("Email:        %s", user.Email))
	printlnFn(fmt.Sprintf("Role:         %s", user.Role))
	printlnFn(fmt.Sprintf("Subscription: %s", user.SubscriptionStatus))
	if user.AvatarURL != "" {
		printlnFn(fmt.Sprintf("Avatar:       %s", user.AvatarURL))
	}
	return nil
}

// Update prompts for new profile values and sends a partial update. Empty
// answers are skipped entirely, they are not sent as empty fields. At least
// one field must be supplied; an empty update is refused locally before any
// request is made.
func (a *App) Update(ctx context.Context) error {
	name, err := getSimpleText(a.reader, "New name (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	email, err := getSimpleText(a.reader, "New email (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}
	if email != "" && !isValidEmail(email) {
		printlnFn("Please enter a valid email address")
		return nil
	}

	avatarPath, err := getSimpleText(a.reader, "Avatar image path (empty to keep)", os.Stdout)
	if err != nil {
		return err
	}

	var upd client.ProfileUpdate
	if name != "" {
		upd.Name = &name
	}
	if email != "" {
		upd.Email = &email
	}
	if avatarPath != "" {
		data, err := readFile(avatarPath)
		if err != nil {
			printlnFn(fmt.Sprintf("error reading avatar file: %v", err))
			return err
		}
		upd.Avatar = data
	}

	if upd.Name == nil && upd.Email == nil && upd.Avatar == nil {
		printlnFn("Nothing to update")
		return nil
	}

	user, err := a.session.UpdateProfile(ctx, upd)
	if err != nil {
		reportError(err)
		return err
	}

	printlnFn(fmt.Sprintf("Profile updated: %s <%s>", user.Name, user.Email))
	return nil
}
