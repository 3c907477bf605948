package main

import (
	"fmt"
	"io"
	"strings"

	"github.com/Rhymond/go-money"

	"finwise/internal/core"
	"finwise/internal/dashboard"
)

func formatAmount(a core.Amount) string {
	return money.New(a.Cents(), money.USD).Display()
}

func renderSnapshot(w io.Writer, snap *dashboard.Snapshot, theme string) {
	fmt.Fprintf(w, "FinWise dashboard (%s)\n\n", theme)

	s := snap.Summary
	fmt.Fprintf(w, "  Income     %s\n", formatAmount(s.Income))
	fmt.Fprintf(w, "  Expenses   %s\n", formatAmount(s.Expenses))
	fmt.Fprintf(w, "  Savings    %s\n", formatAmount(s.Savings))

	if len(s.Monthly) > 0 {
		fmt.Fprintf(w, "\nMonthly trend\n")
		for _, m := range s.Monthly {
			fmt.Fprintf(w, "  %-8s in %12s  out %12s\n",
				m.Month, formatAmount(m.Income), formatAmount(m.Expense))
		}
	}

	if len(s.ByCategory) > 0 {
		fmt.Fprintf(w, "\nExpenses by category\n")
		for _, c := range s.ByCategory {
			fmt.Fprintf(w, "  %-16s %12s\n", c.Category, formatAmount(c.Total))
		}
	}

	if len(snap.Transactions) > 0 {
		fmt.Fprintf(w, "\nTransactions\n")
		for _, t := range snap.Transactions {
			note := ""
			if t.Note != "" {
				note = "  " + t.Note
			}
			fmt.Fprintf(w, "  %s  %-7s  %-16s %12s%s\n",
				t.Date.Format("2006-01-02"), t.Type, t.Category, formatAmount(t.Amount), note)
		}
	}

	renderGoals(w, snap.Goals)
}

func renderGoals(w io.Writer, goals []core.Goal) {
	if len(goals) == 0 {
		return
	}
	fmt.Fprintf(w, "\nGoals\n")
	for _, g := range goals {
		pct := g.Percent()
		deadline := ""
		if g.Deadline != nil {
			deadline = "  by " + g.Deadline.Format("2006-01-02")
		}
		fmt.Fprintf(w, "  %-20s %s / %s  [%s] %3d%%%s\n",
			g.Name,
			formatAmount(g.CurrentAmount), formatAmount(g.TargetAmount),
			progressBar(pct), pct, deadline)
	}
}

func progressBar(pct int) string {
	const width = 10
	filled := pct * width / 100
	return strings.Repeat("=", filled) + strings.Repeat("-", width-filled)
}
