package cli

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/amezab/fittrack/internal/client/api"
	"github.com/amezab/fittrack/internal/client/models"
	"github.com/amezab/fittrack/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// readCredentials collects a credential set from the terminal. withName
// controls whether a display name is asked for (registration needs one,
// login does not). Federated sign-in skips the password prompt: the
// server receives a null password with authMethod "google".
func (a *App) readCredentials(withName bool) (models.Credentials, error) {
	creds := models.Credentials{Method: models.AuthMethodLocal}

	if withName {
		name, err := getSimpleText(a.reader, "Enter name", os.Stdout)
		if err != nil {
			return creds, err
		}
		creds.UserName = name
	}

	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return creds, err
	}
	creds.Email = email

	method, err := getSimpleText(a.reader, "Sign in with password or Google? (password/google)", os.Stdout)
	if err != nil {
		return creds, err
	}
	if strings.EqualFold(method, "google") {
		creds.Method = models.AuthMethodGoogle
		return creds, nil
	}

	pw, err := getPassword(os.Stdout)
	if err != nil {
		return creds, err
	}
	password := string(pw)
	common.WipeByteArray(pw)
	creds.Password = &password

	return creds, nil
}

// Register prompts for name, email, and password and creates a new
// account. On success the returned user id is remembered so the
// follow-up "verify" command can submit the emailed code without
// asking for the id again.
func (a *App) Register(ctx context.Context) error {
	creds, err := a.readCredentials(true)
	if err != nil {
		return err
	}

	res, err := a.session.Register(ctx, creds)
	if err != nil {
		a.reportAuthError(ctx, err)
		return err
	}

	a.pendingUserID = res.UserID
	fmt.Printf("Account created (id %d). Check your email for the verification code, then run 'verify'.\n", res.UserID)
	return nil
}

// Verify submits the two-factor code for the pending account. If no
// registration happened in this process, the user id is asked for.
func (a *App) Verify(ctx context.Context) error {
	userID := a.pendingUserID
	if userID == 0 {
		id, err := GetInt(a.reader, "Enter user id", 1, 1<<31, os.Stdout)
		if err != nil {
			return err
		}
		userID = int64(id)
	}

	code, err := getSimpleText(a.reader, "Enter verification code", os.Stdout)
	if err != nil {
		return err
	}

	if _, err := a.session.Verify2FA(ctx, userID, code); err != nil {
		a.reportAuthError(ctx, err)
		return err
	}

	a.pendingUserID = 0
	fmt.Println("Account verified. You can log in now.")
	return nil
}

// Login prompts for email and password and authenticates. A rejection
// that carries a pending user id means the account was never verified;
// the id is remembered and the user is pointed at "verify".
func (a *App) Login(ctx context.Context) error {
	creds, err := a.readCredentials(false)
	if err != nil {
		return err
	}

	if _, err := a.session.Login(ctx, creds); err != nil {
		a.reportAuthError(ctx, err)
		return err
	}

	fmt.Println("Logged in.")
	return nil
}

// Logout tears the local session down.
func (a *App) Logout(ctx context.Context) error {
	if err := a.session.Logout(ctx); err != nil {
		return err
	}
	a.pendingUserID = 0
	fmt.Println("Logged out.")
	return nil
}

// reportAuthError translates the error surface of the session layer
// into user-facing messages. A server rejection carrying a user id is
// steered to the verification flow.
func (a *App) reportAuthError(ctx context.Context, err error) {
	var apiErr *api.Error
	switch {
	case errors.As(err, &apiErr):
		if apiErr.UserID != 0 {
			a.pendingUserID = apiErr.UserID
			fmt.Printf("%s. Run 'verify' to enter the code for account %d.\n", apiErr.Message, apiErr.UserID)
			return
		}
		fmt.Println(apiErr.Message)
	case errors.Is(err, common.ErrNoResponse):
		fmt.Println("Server unreachable. Check the API address and try again.")
	default:
		a.log.Error(ctx, "auth request failed", "err", err)
		fmt.Println("Something went wrong. Try again.")
	}
}
