package cli

import (
	"context"
	"fmt"

	"github.com/dmitrijs2005/taskdesk/internal/client/models"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
var (
	getSimpleText = GetSimpleText
	getPassword   = GetPassword
)

// Register prompts for the account fields and creates the account. A
// successful registration signs the user in.
func (a *App) Register(ctx context.Context) error {
	var req models.RegisterRequest
	var err error

	if req.Username, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
		return err
	}
	if req.Email, err = getSimpleText(a.reader, "Enter email", a.out); err != nil {
		return err
	}
	if req.Password, err = getPassword(a.reader, "Enter password", a.out); err != nil {
		return err
	}
	if req.ConfirmPassword, err = getPassword(a.reader, "Confirm password", a.out); err != nil {
		return err
	}

	if err := a.session.Register(ctx, req); err != nil {
		return fmt.Errorf("registration failed: %w", err)
	}
	a.signedIn(ctx)
	return nil
}

func (a *App) Login(ctx context.Context) error {
	var req models.LoginRequest
	var err error

	if req.Username, err = getSimpleText(a.reader, "Enter username", a.out); err != nil {
		return err
	}
	if req.Password, err = getPassword(a.reader, "Enter password", a.out); err != nil {
		return err
	}

	if err := a.session.Login(ctx, req); err != nil {
		return fmt.Errorf("login failed: %w", err)
	}
	a.signedIn(ctx)
	return nil
}

func (a *App) signedIn(ctx context.Context) {
	a.roles.Refresh(ctx)
	a.resetBoard()
	if u := a.session.User(); u != nil {
		printlnFn("Welcome,", u.Username)
	}
	a.tasks().LoadAll(ctx)
	a.reportErrors()
}

// Logout forgets the stored session. No server call is made.
func (a *App) Logout(ctx context.Context) error {
	err := a.session.Logout(ctx)
	a.roles.Refresh(ctx)
	a.resetBoard()
	if err != nil {
		return err
	}
	printlnFn("Logged out")
	return nil
}

func (a *App) WhoAmI(ctx context.Context) error {
	u := a.session.User()
	if u == nil {
		printlnFn("Not signed in")
		return nil
	}
	fmt.Fprintf(a.out, "%s <%s>\nid:   %d\nrole: %s\n", u.Username, u.Email, u.ID, u.Role)
	return nil
}
