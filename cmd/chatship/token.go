package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/bft-labs/chatship"
	"github.com/bft-labs/chatship/internal/cliconfig"
	"github.com/bft-labs/chatship/internal/domain"
)

func (c *cli) tokenCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "token",
		Short: "Manage the stored access token",
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "set TOKEN",
			Short: "Store the access token",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.requirePersistentStore(); err != nil {
					return err
				}
				return c.withTokens(cmd, func(tokens chatship.TokenWriter) error {
					if err := tokens.Set(cmd.Context(), chatship.TokenKey, args[0]); err != nil {
						return fmt.Errorf("store token: %w", err)
					}
					c.log.Info().Str("store", c.cfg.TokenStore).Msg("token stored")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "clear",
			Short: "Remove the stored access token",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				if err := c.requirePersistentStore(); err != nil {
					return err
				}
				return c.withTokens(cmd, func(tokens chatship.TokenWriter) error {
					if err := tokens.Delete(cmd.Context(), chatship.TokenKey); err != nil {
						return fmt.Errorf("clear token: %w", err)
					}
					c.log.Info().Str("store", c.cfg.TokenStore).Msg("token cleared")
					return nil
				})
			},
		},
		&cobra.Command{
			Use:   "show",
			Short: "Print the stored access token, masked",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, args []string) error {
				return c.withTokens(cmd, func(tokens chatship.TokenWriter) error {
					token, ok, err := tokens.Get(cmd.Context(), chatship.TokenKey)
					if err != nil {
						return fmt.Errorf("read token: %w", err)
					}
					if !ok {
						return domain.ErrTokenNotFound
					}
					fmt.Fprintln(cmd.OutOrStdout(), maskToken(token))
					return nil
				})
			},
		},
	)
	return cmd
}

func (c *cli) withTokens(cmd *cobra.Command, fn func(chatship.TokenWriter) error) error {
	tokens, closeStore, err := chatship.OpenTokenStore(cmd.Context(), c.cfg, c.log, false)
	if err != nil {
		return fmt.Errorf("open token store: %w", err)
	}
	defer closeStore()
	return fn(tokens)
}

// requirePersistentStore rejects writes the process would lose on exit.
func (c *cli) requirePersistentStore() error {
	if c.cfg.TokenStore == cliconfig.StoreMemory {
		return fmt.Errorf("%w: use --token-store file or redis", domain.ErrEphemeralStore)
	}
	return nil
}

// maskToken keeps the last four characters visible.
func maskToken(token string) string {
	r := []rune(token)
	if len(r) <= 4 {
		return strings.Repeat("*", len(r))
	}
	return strings.Repeat("*", len(r)-4) + string(r[len(r)-4:])
}
