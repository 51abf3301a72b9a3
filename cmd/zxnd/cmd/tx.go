package cmd

import (
	"fmt"

	"cosmossdk.io/math"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"

	"github.com/zxnprotocol/zxn/app"
)

// txCommand returns the commands that change the engine state. Each one
// opens the engine, runs a single call and closes it again.
func txCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "tx",
		Short: "Engine calls that change state",
	}
	cmd.AddCommand(
		burnCmd("burn-primary", "Burn batches of the primary token", (*app.App).BurnPrimary),
		burnCmd("burn-secondary", "Burn batches of the secondary token into the pool", (*app.App).BurnSecondary),
		payoutCmd("settle", "Mint the rewards of every closed cycle", (*app.App).Settle),
		payoutCmd("claim-secondary", "Claim the lifetime share of the secondary pool", (*app.App).ClaimSecondary),
		approveCmd(),
		transferCmd(),
	)
	return cmd
}

func burnCmd(use, short string, burn func(*app.App, string, uint64) error) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [account] [batches]",
		Short: short,
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			batches, err := cast.ToUint64E(args[1])
			if err != nil {
				return fmt.Errorf("invalid batch count %q: %w", args[1], err)
			}
			return withSession(cmd, func(s *session) error {
				return burn(s.app, args[0], batches)
			})
		},
	}
}

func payoutCmd(use, short string, pay func(*app.App, string) (math.Int, error)) *cobra.Command {
	return &cobra.Command{
		Use:   use + " [account]",
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return withSession(cmd, func(s *session) error {
				amount, err := pay(s.app, args[0])
				if err != nil {
					return err
				}
				_, err = fmt.Fprintln(cmd.OutOrStdout(), amount.String())
				return err
			})
		},
	}
}

func approveCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "approve [token] [owner] [spender] [amount]",
		Short:   "Allow spender to move amount of owner's token",
		Example: "zxnd tx approve primary alice module/burnmint 1000000000000000000000000",
		Args:    cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[3])
			if err != nil {
				return err
			}
			return withSession(cmd, func(s *session) error {
				return s.app.Approve(app.Token(args[0]), args[1], args[2], amount)
			})
		},
	}
}

func transferCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "transfer [token] [from] [to] [amount]",
		Short: "Move amount of token between accounts",
		Args:  cobra.ExactArgs(4),
		RunE: func(cmd *cobra.Command, args []string) error {
			amount, err := parseAmount(args[3])
			if err != nil {
				return err
			}
			return withSession(cmd, func(s *session) error {
				return s.app.Transfer(app.Token(args[0]), args[1], args[2], amount)
			})
		},
	}
}

func withSession(cmd *cobra.Command, fn func(s *session) error) (err error) {
	s, err := openSession(cmd)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := s.Close(); err == nil {
			err = closeErr
		}
	}()
	return fn(s)
}
