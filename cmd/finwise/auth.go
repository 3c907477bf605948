package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"finwise/internal/api"
)

type loginCmd struct {
	app      *app
	email    string
	password string
}

func (*loginCmd) Name() string     { return "login" }
func (*loginCmd) Synopsis() string { return "authenticates against the service and opens a session" }
func (*loginCmd) Usage() string {
	return `finwise login -email <email> -password <password>

Exchanges the credentials for a session token, stores it durably, and
resolves the account identity.
`
}

func (c *loginCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.email, "email", "", "account email")
	f.StringVar(&c.password, "password", "", "account password")
}

func (c *loginCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return authenticate(ctx, c.app, api.ModeLogin, api.AuthRequest{
		Email:    c.email,
		Password: c.password,
	})
}

type registerCmd struct {
	app      *app
	name     string
	email    string
	password string
}

func (*registerCmd) Name() string     { return "register" }
func (*registerCmd) Synopsis() string { return "creates an account and opens a session" }
func (*registerCmd) Usage() string {
	return `finwise register -name <name> -email <email> -password <password>
`
}

func (c *registerCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.name, "name", "", "display name")
	f.StringVar(&c.email, "email", "", "account email")
	f.StringVar(&c.password, "password", "", "account password")
}

func (c *registerCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	return authenticate(ctx, c.app, api.ModeRegister, api.AuthRequest{
		Name:     c.name,
		Email:    c.email,
		Password: c.password,
	})
}

// authenticate covers both login and registration: they differ only in
// endpoint and payload, and both end with the credential becoming the
// current session.
func authenticate(ctx context.Context, a *app, mode api.AuthMode, req api.AuthRequest) subcommands.ExitStatus {
	if req.Email == "" || req.Password == "" {
		fmt.Fprintln(os.Stderr, "Error: email and password are required.")
		return subcommands.ExitUsageError
	}
	if mode == api.ModeRegister && req.Name == "" {
		fmt.Fprintln(os.Stderr, "Error: name is required.")
		return subcommands.ExitUsageError
	}

	cred, err := a.client.Authenticate(ctx, mode, req)
	if err != nil {
		var authErr *api.AuthError
		if errors.As(err, &authErr) {
			// Inline message on the auth form.
			fmt.Fprintf(os.Stderr, "%s\n", authErr.Message)
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return subcommands.ExitFailure
	}

	if err := a.session.Login(ctx, cred); err != nil {
		fmt.Fprintln(os.Stderr, "Logged in, but identity unknown (lookup failed); retry or log out.")
		return subcommands.ExitSuccess
	}

	if id, ok := a.session.Identity(); ok {
		fmt.Printf("Logged in as %s <%s>\n", id.Name, id.Email)
	} else {
		fmt.Println("Logged in.")
	}
	return subcommands.ExitSuccess
}

type logoutCmd struct {
	app *app
}

func (*logoutCmd) Name() string     { return "logout" }
func (*logoutCmd) Synopsis() string { return "ends the session and erases the stored credential" }
func (*logoutCmd) Usage() string    { return "finwise logout\n" }
func (*logoutCmd) SetFlags(*flag.FlagSet) {}

func (c *logoutCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	// No identity lookup needed to log out; tear down whatever is stored.
	if err := c.app.session.Logout(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	c.app.sync.Reset()
	fmt.Println("Logged out.")
	return subcommands.ExitSuccess
}

type whoamiCmd struct {
	app *app
}

func (*whoamiCmd) Name() string     { return "whoami" }
func (*whoamiCmd) Synopsis() string { return "shows the identity behind the current session" }
func (*whoamiCmd) Usage() string    { return "finwise whoami\n" }
func (*whoamiCmd) SetFlags(*flag.FlagSet) {}

func (c *whoamiCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if status := c.app.requireSession(ctx); status != subcommands.ExitSuccess {
		return status
	}
	id, ok := c.app.session.Identity()
	if !ok {
		fmt.Println("identity unknown")
		return subcommands.ExitSuccess
	}
	fmt.Printf("%s <%s>\n", id.Name, id.Email)
	return subcommands.ExitSuccess
}
