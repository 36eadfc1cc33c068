package cli

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/dverbis/itemkeeper/internal/client/api"
	"github.com/dverbis/itemkeeper/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// errMessage picks the user-facing message for a failed remote call: the
// normalized API message when available, the raw error text otherwise.
func errMessage(err error) string {
	var apiErr *api.Error
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return err.Error()
}

// Register prompts for an email, a username and a password (entered twice)
// and attempts to create a new account. Cheap constraint violations are
// caught locally before any request is made; server-side rejections are
// shown with the server-supplied detail.
//
// A successful registration does not log the user in.
func (a *App) Register(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", os.Stdout)
	if err != nil {
		return err
	}

	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	if len(username) < 3 {
		fmt.Println("Username must be at least 3 characters")
		return nil
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if len(password) < 6 {
		fmt.Println("Password must be at least 6 characters")
		return nil
	}

	confirm, err := getPassword(os.Stdout, "Repeat password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(confirm)

	if string(password) != string(confirm) {
		fmt.Println("Passwords do not match")
		return nil
	}

	if err := a.store.Register(ctx, email, username, string(password)); err != nil {
		fmt.Println(errMessage(err))
		return err
	}

	fmt.Println("Account created, you can log in now")
	return nil
}

// Login prompts for credentials and tries to authenticate. On success the
// credential is persisted by the session store and the user lands on the
// item list; on failure the session state is untouched and the user stays
// on the login prompt.
func (a *App) Login(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", os.Stdout)
	if err != nil {
		return err
	}

	password, err := getPassword(os.Stdout, "Enter password")
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	if err := a.store.Login(ctx, username, string(password)); err != nil {
		fmt.Println(errMessage(err))
		return err
	}

	fmt.Printf("Welcome, %s!\n", a.store.User().Username)
	return a.List(ctx)
}

// Logout erases the persisted credential and resets the session.
func (a *App) Logout(ctx context.Context) error {
	if err := a.store.Logout(ctx); err != nil {
		fmt.Println(errMessage(err))
		return err
	}
	fmt.Println("Logged out")
	return nil
}

// WhoAmI prints the current account.
func (a *App) WhoAmI(context.Context) error {
	u := a.store.User()
	if u == nil {
		fmt.Println("Not logged in")
		return nil
	}
	fmt.Printf("%s <%s>\n", u.Username, u.Email)
	return nil
}
