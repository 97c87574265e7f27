package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"

	"github.com/google/subcommands"
)

// renderCmd prints the initial view once.
type renderCmd struct {
	out   io.Writer
	flags sessionFlags
}

func (*renderCmd) Name() string     { return "render" }
func (*renderCmd) Synopsis() string { return "print the starting friend list" }
func (*renderCmd) Usage() string {
	return `friendsplit render [-style <style>] [-width <n>]

  Renders the friend list a new session starts with.
`
}

func (c *renderCmd) SetFlags(f *flag.FlagSet) {
	c.flags.register(f)
}

func (c *renderCmd) Execute(_ context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	splitter, r, err := c.flags.setup(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := render(c.out, r, splitter.NewState(), splitter.Currency()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}
