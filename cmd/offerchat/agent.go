package main

import (
	"context"
	"fmt"

	"github.com/urfave/cli/v3"

	"github.com/sonnes/offerchat/config"
	"github.com/sonnes/offerchat/server"
)

func agentCmd(cfg *config.Config) *cli.Command {
	return &cli.Command{
		Name:  "agent",
		Usage: "Run the demo offers agent on its own",
		Flags: append([]cli.Flag{portFlag(cfg)}, agentFlags(cfg)...),
		Action: func(ctx context.Context, cmd *cli.Command) error {
			a, err := newAgent(ctx, cmd, cfg)
			if err != nil {
				return err
			}

			addr := fmt.Sprintf(":%d", cmd.Int("port"))
			announce("agent listening", "http://localhost"+addr+"/api/query")
			return server.ListenAndServe(ctx, addr, a.Handler())
		},
	}
}
