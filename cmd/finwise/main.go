// finwise is a command-line client for the FinWise personal-finance
// service: track income and expenses, manage savings goals, and view the
// aggregated dashboard.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"finwise/internal/api"
	"finwise/internal/cli"
	"finwise/internal/config"
	"finwise/internal/dashboard"
	applog "finwise/internal/log"
	"finwise/internal/session"
	"finwise/internal/state"
	"finwise/internal/submit"
)

// app bundles the wired components shared by every subcommand.
type app struct {
	logger  *applog.Logger
	cfg     *config.Config
	state   *state.Store
	client  *api.Client
	session *session.Store
	sync    *dashboard.Synchronizer
	submit  *submit.Submitter
}

// requireSession restores the persisted session if one exists. A failed
// identity lookup is reported but does not block: the credential stays and
// requests proceed with it.
func (a *app) requireSession(ctx context.Context) subcommands.ExitStatus {
	loggedIn, err := a.session.Initialize(ctx)
	if err != nil && !loggedIn {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if !loggedIn {
		fmt.Fprintln(os.Stderr, "Not logged in. Run 'finwise login' first.")
		return subcommands.ExitFailure
	}
	if err != nil {
		fmt.Fprintln(os.Stderr, "Warning: identity unknown (lookup failed); retry or log out.")
	}
	return subcommands.ExitSuccess
}

func main() {
	cli.LoadEnvFile()
	logger := cli.SetupLogger()
	cfg := cli.LoadAndValidateConfig(logger)

	st := cli.OpenState(logger, cfg.StateDBPath)
	defer st.Close()

	client := api.New(cfg.BackendURL, cfg.HTTPTimeout)
	sync := dashboard.New(client)
	a := &app{
		logger:  logger,
		cfg:     cfg,
		state:   st,
		client:  client,
		session: session.New(st, client),
		sync:    sync,
		submit:  submit.NewSubmitter(client, sync),
	}

	subcommands.Register(subcommands.HelpCommand(), "")
	subcommands.Register(subcommands.CommandsCommand(), "")

	subcommands.Register(&registerCmd{app: a}, "session")
	subcommands.Register(&loginCmd{app: a}, "session")
	subcommands.Register(&logoutCmd{app: a}, "session")
	subcommands.Register(&whoamiCmd{app: a}, "session")

	subcommands.Register(&dashboardCmd{app: a}, "dashboard")
	subcommands.Register(&txAddCmd{app: a}, "records")
	subcommands.Register(&goalAddCmd{app: a}, "records")

	subcommands.Register(&themeCmd{app: a}, "preferences")

	flag.Parse()
	os.Exit(int(subcommands.Execute(context.Background())))
}
