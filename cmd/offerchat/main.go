package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/charmbracelet/log"
	"github.com/urfave/cli/v3"

	"github.com/sonnes/offerchat/config"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	root := &cli.Command{
		Name:  "offerchat",
		Usage: "Chat with an offers agent and sort the offers it finds",
		Description: `
        __  __              _         _
  ___  / _|/ _| ___ _ __ ___| |__   __ _| |_
 / _ \| |_| |_ / _ \ '__/ __| '_ \ / _' | __|
| (_) |  _|  _|  __/ | | (__| | | | (_| | |_
 \___/|_| |_|  \___|_|  \___|_| |_|\__,_|\__|

 Ask for offers in plain words, then sort what comes back.`,
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log",
				Usage:   "Log level: debug, info, warn, error",
				Value:   cfg.LogLevel,
				Sources: cli.EnvVars(config.EnvLog),
			},
		},
		Before: func(ctx context.Context, cmd *cli.Command) (context.Context, error) {
			level, err := log.ParseLevel(cmd.String("log"))
			if err != nil {
				return ctx, err
			}
			log.SetLevel(level)
			return ctx, nil
		},
		Commands: []*cli.Command{
			chatCmd(cfg),
			askCmd(cfg),
			serveCmd(cfg),
			agentCmd(cfg),
		},
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := root.Run(ctx, os.Args); err != nil {
		log.Fatal(err)
	}
}
