package main

import (
	"context"
	"flag"
	"fmt"
	"os"

	"github.com/google/subcommands"

	"finwise/internal/state"
)

type themeCmd struct {
	app    *app
	set    string
	toggle bool
}

func (*themeCmd) Name() string     { return "theme" }
func (*themeCmd) Synopsis() string { return "shows or changes the persisted theme preference" }
func (*themeCmd) Usage() string {
	return `finwise theme [-set light|dark] [-toggle]
`
}

func (c *themeCmd) SetFlags(f *flag.FlagSet) {
	f.StringVar(&c.set, "set", "", "set the theme: light or dark")
	f.BoolVar(&c.toggle, "toggle", false, "switch between light and dark")
}

func (c *themeCmd) Execute(ctx context.Context, f *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	current := c.app.state.Theme(ctx)

	next := ""
	switch {
	case c.set != "":
		next = c.set
	case c.toggle:
		next = state.ThemeDark
		if current == state.ThemeDark {
			next = state.ThemeLight
		}
	default:
		fmt.Println(current)
		return subcommands.ExitSuccess
	}

	if err := c.app.state.SetTheme(ctx, next); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitUsageError
	}
	fmt.Println(next)
	return subcommands.ExitSuccess
}
