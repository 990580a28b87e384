package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/bft-labs/chatship"
	"github.com/bft-labs/chatship/internal/app"
)

func (c *cli) sendCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "send MESSAGE...",
		Short: "Send one or more messages and print the replies",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			tokens, closeStore, err := chatship.OpenTokenStore(ctx, c.cfg, c.log, false)
			if err != nil {
				return fmt.Errorf("open token store: %w", err)
			}
			defer closeStore()

			renderer, err := app.NewRenderer(cmd.OutOrStdout(), c.cfg.Output)
			if err != nil {
				return err
			}

			sender := chatship.NewSender(c.cfg, tokens, c.log)
			results, err := app.SendAll(ctx, sender, args, c.cfg.Concurrency)
			if rerr := renderer.RenderAll(results); rerr != nil {
				return rerr
			}
			if err != nil {
				return err
			}

			if failed := app.CountFailures(results); failed > 0 {
				return fmt.Errorf("%d of %d messages failed", failed, len(results))
			}
			return nil
		},
	}
}

func (c *cli) replCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "repl",
		Short: "Send each line read from stdin; /quit or EOF to exit",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			tokens, closeStore, err := chatship.OpenTokenStore(ctx, c.cfg, c.log, true)
			if err != nil {
				return fmt.Errorf("open token store: %w", err)
			}
			defer closeStore()

			renderer, err := app.NewRenderer(cmd.OutOrStdout(), c.cfg.Output)
			if err != nil {
				return err
			}

			sender := chatship.NewSender(c.cfg, tokens, c.log)
			return app.RunREPL(ctx, cmd.InOrStdin(), cmd.ErrOrStderr(), sender, renderer, zerologPorts(c.log))
		},
	}
}
