package main

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/sonnes/offerchat/chat"
	"github.com/sonnes/offerchat/config"
	"github.com/sonnes/offerchat/core"
	"github.com/sonnes/offerchat/offers"
	"github.com/sonnes/offerchat/render/terminal"
)

const chatHelp = `Type a message and press enter. Commands:
  /sort FIELD            sort by FIELD, again to flip (title, category, price, discount, rating)
  /sort FIELD asc|desc   sort by FIELD in the given order
  /sort default          discount, then rating
  /offers                show the offer table again
  /help                  show this help
  /quit                  exit`

func chatCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "chat",
		Usage: "Chat with the agent interactively",
		Flags: []cli.Flag{
			endpointFlag(cfg),
			timeoutFlag(cfg),
			&cli.IntFlag{
				Name:  "width",
				Usage: "Output width (default: terminal width)",
			},
			&cli.BoolFlag{
				Name:  "no-redact",
				Usage: "Log queries without redacting secrets and PII",
			},
			&cli.StringSliceFlag{
				Name:  "redact",
				Usage: "Allowlist of rules to redact. Example: --redact=secrets,pii",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			redactor, err := newRedactor(cmd)
			if err != nil {
				return err
			}

			sess := chat.New(
				newQuerier(cmd.String("endpoint"), cmd.Duration("timeout")),
				chat.WithRedactor(redactor),
				chat.WithLogger(log.Default()),
			)
			r := &terminal.Renderer{Width: cmd.Int("width")}

			fmt.Fprintln(os.Stdout, chatHelp)
			return runChat(ctx, os.Stdin, os.Stdout, sess, r)
		},
	}
}

type actionKind int

const (
	actionQuery actionKind = iota
	actionSort
	actionSortOrder
	actionOffers
	actionHelp
	actionQuit
)

type action struct {
	kind  actionKind
	text  string
	field core.SortField
	order core.SortOrder
}

var errUnknownCommand = errors.New("unknown command")

// parseLine turns one line of input into an action. Lines that do not start
// with "/" are queries.
func parseLine(line string) (action, error) {
	line = strings.TrimSpace(line)
	if !strings.HasPrefix(line, "/") {
		return action{kind: actionQuery, text: line}, nil
	}

	fields := strings.Fields(line)
	switch strings.ToLower(fields[0]) {
	case "/quit", "/exit":
		return action{kind: actionQuit}, nil
	case "/offers":
		return action{kind: actionOffers}, nil
	case "/help":
		return action{kind: actionHelp}, nil
	case "/sort":
		return parseSort(fields[1:])
	default:
		return action{}, fmt.Errorf("%w %q", errUnknownCommand, fields[0])
	}
}

func parseSort(args []string) (action, error) {
	switch len(args) {
	case 1:
		field, err := core.ParseSortField(args[0])
		if err != nil {
			return action{}, err
		}
		if field == core.FieldNone {
			return action{kind: actionSortOrder, field: field, order: core.OrderDesc}, nil
		}
		return action{kind: actionSort, field: field}, nil
	case 2:
		field, err := core.ParseSortField(args[0])
		if err != nil {
			return action{}, err
		}
		order, err := core.ParseSortOrder(args[1])
		if err != nil {
			return action{}, err
		}
		return action{kind: actionSortOrder, field: field, order: order}, nil
	default:
		return action{}, errors.New("usage: /sort FIELD [asc|desc]")
	}
}

// runChat reads lines from in until EOF, /quit, or ctx is cancelled. After
// each line, new transcript messages are printed, followed by the offer
// table if it was re-rendered.
func runChat(ctx context.Context, in io.Reader, out io.Writer, sess *chat.Session, r *terminal.Renderer) error {
	var pending *offers.View
	sess.OnRender(func(v offers.View) { pending = &v })

	printed := 0
	flush := func() error {
		msgs := sess.Snapshot().Transcript.Messages
		for _, m := range msgs[printed:] {
			if err := r.RenderMessage(out, m); err != nil {
				return err
			}
		}
		printed = len(msgs)

		if pending != nil {
			v := *pending
			pending = nil
			return r.RenderOffers(out, v)
		}
		return nil
	}

	scanner := bufio.NewScanner(in)
	for {
		fmt.Fprint(out, "\n> ")
		if !scanner.Scan() {
			fmt.Fprintln(out)
			return scanner.Err()
		}
		if ctx.Err() != nil {
			return nil
		}

		act, err := parseLine(scanner.Text())
		if err != nil {
			fmt.Fprintln(out, err)
			continue
		}

		switch act.kind {
		case actionQuit:
			return nil
		case actionHelp:
			fmt.Fprintln(out, chatHelp)
		case actionOffers:
			snap := sess.Snapshot()
			if !snap.HasOffers {
				fmt.Fprintln(out, "No offers yet.")
				continue
			}
			if err := r.RenderOffers(out, snap.Offers); err != nil {
				return err
			}
		case actionSort, actionSortOrder:
			if !sess.Snapshot().HasOffers {
				fmt.Fprintln(out, "No offers to sort.")
				continue
			}
			if act.kind == actionSort {
				sess.SortByField(act.field)
			} else {
				sess.SortByFieldAndOrder(act.field, act.order)
			}
		case actionQuery:
			outcome := sess.Submit(ctx, act.text)
			log.Debug("submitted", "outcome", outcome)
		}

		if err := flush(); err != nil {
			return err
		}
	}
}
