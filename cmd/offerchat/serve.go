package main

import (
	"context"
	"fmt"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/sonnes/offerchat/config"
	"github.com/sonnes/offerchat/server"
)

func serveCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Serve the chat widget in a local web UI",
		Flags: append([]cli.Flag{
			portFlag(cfg),
			&cli.StringFlag{
				Name:    "endpoint",
				Aliases: []string{"e"},
				Usage:   "Agent query endpoint (default: run the demo agent in-process at /api/query)",
				Value:   cfg.Endpoint,
				Sources: cli.EnvVars(config.EnvEndpoint),
			},
			timeoutFlag(cfg),
			&cli.BoolFlag{
				Name:  "no-redact",
				Usage: "Log queries without redacting secrets and PII",
			},
			&cli.StringSliceFlag{
				Name:  "redact",
				Usage: "Allowlist of rules to redact. Example: --redact=secrets,pii",
			},
		}, agentFlags(cfg)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			redactor, err := newRedactor(cmd)
			if err != nil {
				return err
			}

			var s *server.Server
			if endpoint := cmd.String("endpoint"); endpoint != "" {
				s = server.New(newQuerier(endpoint, cmd.Duration("timeout")))
				log.Info("using agent", "endpoint", endpoint)
			} else {
				a, err := newAgent(ctx, cmd, cfg)
				if err != nil {
					return err
				}
				s = server.New(a)
				s.API = a.Handler()
				log.Info("using demo agent", "api", "/api/query")
			}
			s.Redactor = redactor
			s.Logger = log.Default().WithPrefix("widget")

			addr := fmt.Sprintf(":%d", cmd.Int("port"))
			announce("serving", "http://localhost"+addr)
			return server.ListenAndServe(ctx, addr, s.Handler())
		},
	}
}
