package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"
)

type dashboardCmd struct {
	app *app
}

func (*dashboardCmd) Name() string     { return "dashboard" }
func (*dashboardCmd) Synopsis() string { return "loads and renders the financial dashboard" }
func (*dashboardCmd) Usage() string {
	return `finwise dashboard

Fetches the summary, transactions, and goals together and renders them.
The three collections always come from the same load cycle.
`
}
func (*dashboardCmd) SetFlags(*flag.FlagSet) {}

func (c *dashboardCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if status := c.app.requireSession(ctx); status != subcommands.ExitSuccess {
		return status
	}

	snap, err := c.app.sync.LoadAll(c.app.session.Context(), c.app.session.Token())
	if err != nil {
		fmt.Fprintf(os.Stderr, "Could not refresh dashboard: %v\n", err)
		// Show the last good snapshot if there is one rather than nothing.
		if snap = c.app.sync.Snapshot(); snap == nil {
			return subcommands.ExitFailure
		}
		fmt.Fprintln(os.Stderr, "Showing previously loaded data.")
	}

	renderSnapshot(os.Stdout, snap, c.app.state.Theme(ctx))
	return subcommands.ExitSuccess
}
