package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/sonnes/offerchat/chat"
	"github.com/sonnes/offerchat/compact"
	"github.com/sonnes/offerchat/config"
	"github.com/sonnes/offerchat/core"
	"github.com/sonnes/offerchat/offers"
	"github.com/sonnes/offerchat/redact"
	"github.com/sonnes/offerchat/render"
)

func askCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:      "ask",
		Usage:     "Send one query and print the reply and any offers",
		ArgsUsage: "QUERY...",
		Flags: []cli.Flag{
			endpointFlag(cfg),
			timeoutFlag(cfg),
			&cli.StringFlag{
				Name:  "sort",
				Usage: "Sort offers by field: title, category, price, discount, rating",
			},
			&cli.StringFlag{
				Name:  "order",
				Usage: "Sort order: asc, desc",
				Value: string(core.OrderDesc),
			},
			&cli.StringFlag{
				Name:  "o",
				Usage: "Output format: terminal, json",
				Value: "terminal",
			},
			&cli.IntFlag{
				Name:  "width",
				Usage: "Output width (default: terminal width)",
			},
			&cli.BoolFlag{
				Name:  "no-redact",
				Usage: "Disable redaction of secrets and PII",
			},
			&cli.StringSliceFlag{
				Name:  "redact",
				Usage: "Allowlist of rules to redact. Example: --redact=secrets,pii",
			},
			&cli.BoolFlag{
				Name:  "compact",
				Usage: "Summarize code blocks in replies",
			},
			&cli.BoolFlag{
				Name:  "drop-failed",
				Usage: "Leave failed turns out of the output",
			},
		},
		Action: func(ctx context.Context, cmd *cli.Command) error {
			query := strings.Join(cmd.Args().Slice(), " ")
			if core.CleanQuery(query) == "" {
				return errors.New("a query is required")
			}

			field, err := core.ParseSortField(cmd.String("sort"))
			if err != nil {
				return err
			}
			order, err := core.ParseSortOrder(cmd.String("order"))
			if err != nil {
				return err
			}

			rnd, err := newApp().renderer(cmd.String("o"), cmd.Int("width"))
			if err != nil {
				return err
			}

			redactor, err := newRedactor(cmd)
			if err != nil {
				return err
			}

			sess := chat.New(
				newQuerier(cmd.String("endpoint"), cmd.Duration("timeout")),
				chat.WithRedactor(redactor),
				chat.WithLogger(log.Default()),
			)

			outcome := sess.Submit(ctx, query)
			if outcome == chat.OutcomeOffers && field != core.FieldNone {
				sess.SortByFieldAndOrder(field, order)
			}

			snap := sess.Snapshot()
			ts := outputTransformers(redactor, cmd.Bool("compact"), cmd.Bool("drop-failed"))
			if err := core.Chain(snap.Transcript, ts...); err != nil {
				return fmt.Errorf("transform: %w", err)
			}

			var view *offers.View
			if snap.HasOffers {
				view = &snap.Offers
			}
			if err := render.Session(os.Stdout, rnd, snap.Transcript, view); err != nil {
				return fmt.Errorf("render: %w", err)
			}

			if outcome == chat.OutcomeFailed {
				return cli.Exit("", 1)
			}
			return nil
		},
	}
}

// outputTransformers lists the transcript transforms for ask output, in the
// order they run.
func outputTransformers(redactor *redact.Redactor, compactCode, dropFailed bool) []core.Transformer {
	var ts []core.Transformer
	if redactor != nil {
		ts = append(ts, redactor)
	}
	if compactCode || dropFailed {
		ts = append(ts, compact.New(compact.Config{KeepCode: !compactCode, DropFailed: dropFailed}))
	}
	return ts
}
