package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"finwise/internal/submit"
)

type goalAddCmd struct {
	app  *app
	form submit.GoalForm
}

func (*goalAddCmd) Name() string     { return "goal" }
func (*goalAddCmd) Synopsis() string { return "creates a new savings goal" }
func (*goalAddCmd) Usage() string {
	return `finwise goal -name <name> -target <amount> [-current <amount>] [-deadline YYYY-MM-DD]
`
}

func (c *goalAddCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.form.Name, "name", "", "goal name")
	f.StringVar(&c.form.TargetAmount, "target", "", "target amount")
	f.StringVar(&c.form.CurrentAmount, "current", "", "already saved amount (default 0)")
	f.StringVar(&c.form.Deadline, "deadline", "", "optional deadline (YYYY-MM-DD)")
}

func (c *goalAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if status := c.app.requireSession(ctx); status != subcommands.ExitSuccess {
		return status
	}

	sessCtx := c.app.session.Context()
	if err := c.app.submit.SubmitGoal(sessCtx, c.app.session.Token(), &c.form); err != nil {
		var refreshErr *submit.RefreshError
		if errors.As(err, &refreshErr) {
			fmt.Fprintf(os.Stderr, "Goal created, but the dashboard could not be refreshed: %v\n", refreshErr.Err)
			return subcommands.ExitSuccess
		}
		fmt.Fprintf(os.Stderr, "Goal not saved: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println("Goal created.")
	if snap := c.app.sync.Snapshot(); snap != nil {
		renderGoals(os.Stdout, snap.Goals)
	}
	return subcommands.ExitSuccess
}
