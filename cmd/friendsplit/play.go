package main

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/glamour"
	"github.com/google/subcommands"

	"github.com/mmynk/friendsplit/internal/billsplit"
	"github.com/mmynk/friendsplit/internal/models"
)

const playHelp = `Commands:
  toggle               open or close the add-friend form
  name <text>          type the new friend's name
  image <url>          type the new friend's image URL
  add                  submit the add-friend form
  select <n>           select (or unselect) friend number n
  bill <amount>        type the bill value
  paid <amount>        type your expense
  payer user|friend    choose who is paying the bill
  split                submit the split-bill form
  view                 show the list again
  help                 show this help
  quit                 leave
`

var (
	errQuit        = errors.New("quit")
	errShowView    = errors.New("view")
	errShowHelp    = errors.New("help")
	errUnknownCmd  = errors.New("unknown command")
	errMissingArgs = errors.New("missing argument")
)

// playCmd runs an interactive session on stdin.
type playCmd struct {
	in    io.Reader
	out   io.Writer
	flags sessionFlags
}

func (*playCmd) Name() string     { return "play" }
func (*playCmd) Synopsis() string { return "split bills with friends interactively" }
func (*playCmd) Usage() string {
	return `friendsplit play [-style <style>] [-width <n>]

  Starts a session and reads one command per line. Type "help" for the list.
`
}

func (c *playCmd) SetFlags(f *flag.FlagSet) {
	c.flags.register(f)
}

func (c *playCmd) Execute(ctx context.Context, _ *flag.FlagSet, _ ...interface{}) subcommands.ExitStatus {
	splitter, r, err := c.flags.setup(os.Stderr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	if err := play(ctx, c.in, c.out, splitter, r); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return subcommands.ExitFailure
	}
	return subcommands.ExitSuccess
}

// play runs the read/apply/render loop until quit or end of input.
func play(ctx context.Context, in io.Reader, out io.Writer, splitter *billsplit.Splitter, r *glamour.TermRenderer) error {
	s := splitter.NewState()
	if err := render(out, r, s, splitter.Currency()); err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "> ")
		if !scanner.Scan() {
			break
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		e, err := parseCommand(scanner.Text(), s)
		switch {
		case errors.Is(err, errQuit):
			return nil
		case errors.Is(err, errShowHelp):
			fmt.Fprint(out, playHelp)
			continue
		case errors.Is(err, errShowView):
		case err != nil:
			fmt.Fprintf(out, "%v (type \"help\")\n", err)
			continue
		default:
			var applied bool
			s, applied = splitter.Apply(s, e)
			slog.Debug("Transition", "op", e.Op(), "applied", applied)
			if !applied {
				fmt.Fprintln(out, "Nothing changed.")
			}
		}

		if err := render(out, r, s, splitter.Currency()); err != nil {
			return err
		}
	}
	return scanner.Err()
}

// parseCommand decodes one input line into an event for state s.
func parseCommand(line string, s billsplit.State) (billsplit.Event, error) {
	cmd, arg, _ := strings.Cut(strings.TrimSpace(line), " ")
	arg = strings.TrimSpace(arg)

	switch strings.ToLower(cmd) {
	case "":
		return nil, errShowView
	case "quit", "exit":
		return nil, errQuit
	case "help", "?":
		return nil, errShowHelp
	case "view":
		return nil, errShowView
	case "toggle":
		return billsplit.ToggleAddFriendPanel{}, nil
	case "name":
		return billsplit.EditFriendName{Value: arg}, nil
	case "image":
		return billsplit.EditFriendImage{Value: arg}, nil
	case "add":
		return billsplit.SubmitAddFriend{}, nil
	case "select":
		if arg == "" {
			return nil, fmt.Errorf("select: %w", errMissingArgs)
		}
		n, err := strconv.Atoi(arg)
		if err != nil || n < 1 || n > len(s.Friends) {
			return nil, fmt.Errorf("select: no friend number %q", arg)
		}
		return billsplit.SelectFriend{ID: s.Friends[n-1].ID}, nil
	case "bill":
		return billsplit.EditBill{Raw: arg}, nil
	case "paid":
		return billsplit.EditPaidByUser{Raw: arg}, nil
	case "payer":
		p, err := models.ParsePayer(strings.ToLower(arg))
		if err != nil {
			return nil, err
		}
		return billsplit.ChoosePayer{Payer: p}, nil
	case "split":
		return billsplit.SubmitSplit{}, nil
	default:
		return nil, fmt.Errorf("%w: %s", errUnknownCmd, cmd)
	}
}
