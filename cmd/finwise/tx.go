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

type txAddCmd struct {
	app  *app
	form submit.TransactionForm
}

func (*txAddCmd) Name() string     { return "tx" }
func (*txAddCmd) Synopsis() string { return "records a new income or expense transaction" }
func (*txAddCmd) Usage() string {
	return `finwise tx -amount <amount> [-type income|expense] [-category <label>] [-date YYYY-MM-DD] [-note <text>]

Submits the transaction and refreshes the dashboard so the new row and the
updated aggregates appear together.
`
}

func (c *txAddCmd) SetFlags(f *flag.FlagSet) {
	defaults := submit.NewTransactionForm()
	f.StringVar(&c.form.Type, "type", defaults.Type, "transaction type: income or expense")
	f.StringVar(&c.form.Amount, "amount", "", "amount, e.g. 42.50")
	f.StringVar(&c.form.Category, "category", defaults.Category, "category label")
	f.StringVar(&c.form.Date, "date", defaults.Date, "transaction date (YYYY-MM-DD)")
	f.StringVar(&c.form.Note, "note", "", "optional note")
}

func (c *txAddCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	if status := c.app.requireSession(ctx); status != subcommands.ExitSuccess {
		return status
	}

	sessCtx := c.app.session.Context()
	if err := c.app.submit.SubmitTransaction(sessCtx, c.app.session.Token(), &c.form); err != nil {
		var refreshErr *submit.RefreshError
		if errors.As(err, &refreshErr) {
			// The write landed; only the follow-up load failed.
			fmt.Fprintf(os.Stderr, "Transaction saved, but the dashboard could not be refreshed: %v\n", refreshErr.Err)
			return subcommands.ExitSuccess
		}
		fmt.Fprintf(os.Stderr, "Transaction not saved: %v\n", err)
		return subcommands.ExitFailure
	}

	fmt.Println("Transaction saved.")
	if snap := c.app.sync.Snapshot(); snap != nil {
		renderSnapshot(os.Stdout, snap, c.app.state.Theme(ctx))
	}
	return subcommands.ExitSuccess
}
