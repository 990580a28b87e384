package main

import (
	"github.com/spf13/cobra"

	"github.com/bft-labs/chatship/internal/echoserver"
)

func (c *cli) serveCommand() *cobra.Command {
	var (
		listen string
		opts   echoserver.Options
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run a local echo backend for /api/chat",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return echoserver.ListenAndServe(cmd.Context(), listen, c.log, opts)
		},
	}

	cmd.Flags().StringVar(&listen, "listen", ":8000", "address to listen on")
	cmd.Flags().StringVar(&opts.RequiredToken, "require-token", "", "reject requests without this bearer token")
	return cmd
}
