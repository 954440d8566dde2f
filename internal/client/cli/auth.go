package cli

import (
	"context"
	"fmt"

	"github.com/flashly/flashly/internal/common"
)

// getSimpleText and getPassword are indirections used to facilitate testing.
// They point to interactive input helpers and can be swapped in tests.
var getSimpleText = GetSimpleText
var getPassword = GetPassword

// Register prompts for a username, email and password and creates an
// account. It does not log in.
func (a *App) Register(ctx context.Context) error {
	username, err := getSimpleText(a.reader, "Enter username", a.out)
	if err != nil {
		return err
	}
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	p, err := a.auth.Register(ctx, username, email, password)
	if err != nil {
		return err
	}

	a.printf("%s\n", success(fmt.Sprintf("Account %s created. You can log in now.", p.Username)))
	return nil
}

// Login prompts for credentials, authenticates and switches to online mode.
func (a *App) Login(ctx context.Context) error {
	email, err := getSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}

	password, err := getPassword(a.out)
	if err != nil {
		return err
	}
	defer common.WipeByteArray(password)

	p, err := a.auth.Login(ctx, email, password)
	if err != nil {
		return err
	}

	a.setProfile(&p)
	a.setMode(ModeOnline)
	a.printf("%s\n", success(fmt.Sprintf("Welcome, %s!", p.Username)))
	return nil
}

// Logout ends the session locally and on the server.
func (a *App) Logout(ctx context.Context) error {
	if err := a.auth.Logout(ctx); err != nil {
		return err
	}
	a.setProfile(nil)
	a.printf("Logged out.\n")
	return nil
}

// restoreSession runs the startup auth gate.
func (a *App) restoreSession(ctx context.Context) error {
	res, err := a.auth.Initialize(ctx)
	if err != nil {
		return err
	}
	if !res.Authenticated() {
		return nil
	}

	p := res.Profile
	a.setProfile(&p)
	if res.Offline {
		a.setMode(ModeOffline)
	} else {
		a.setMode(ModeOnline)
	}
	a.printf("Signed in as %s.\n", p.Username)
	return nil
}
