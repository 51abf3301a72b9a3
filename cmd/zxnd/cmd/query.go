package cmd

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/zxnprotocol/zxn/app"
)

// queryCommand returns the read-only commands. Results are printed as JSON.
func queryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "query",
		Aliases: []string{"q"},
		Short:   "Read the engine state",
	}
	cmd.AddCommand(
		&cobra.Command{
			Use:   "account [account]",
			Short: "Show the statistics of an account",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return printQuery(cmd, func(a *app.App) (any, error) {
					return a.AccountStatistics(args[0])
				})
			},
		},
		&cobra.Command{
			Use:   "protocol",
			Short: "Show the protocol statistics",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return printQuery(cmd, func(a *app.App) (any, error) {
					return a.ProtocolStatistics()
				})
			},
		},
		&cobra.Command{
			Use:   "balance [token] [account]",
			Short: "Show the balance of an account",
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return printQuery(cmd, func(a *app.App) (any, error) {
					return a.BalanceOf(app.Token(args[0]), args[1])
				})
			},
		},
		&cobra.Command{
			Use:   "supply [token]",
			Short: "Show the total supply of a token",
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return printQuery(cmd, func(a *app.App) (any, error) {
					return a.TotalSupply(app.Token(args[0]))
				})
			},
		},
		&cobra.Command{
			Use:   "export",
			Short: "Export the token ledgers and the schedule as genesis",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return printQuery(cmd, func(a *app.App) (any, error) {
					return a.ExportGenesis()
				})
			},
		},
		&cobra.Command{
			Use:   "invariants",
			Short: "Check the ledger invariants",
			Args:  cobra.NoArgs,
			RunE: func(cmd *cobra.Command, _ []string) error {
				return withSession(cmd, func(s *session) error {
					if err := s.app.CheckInvariants(); err != nil {
						return err
					}
					_, err := fmt.Fprintln(cmd.OutOrStdout(), "all invariants hold")
					return err
				})
			},
		},
	)
	return cmd
}

func printQuery(cmd *cobra.Command, fn func(a *app.App) (any, error)) error {
	return withSession(cmd, func(s *session) error {
		result, err := fn(s.app)
		if err != nil {
			return err
		}
		bz, err := json.MarshalIndent(result, "", "  ")
		if err != nil {
			return err
		}
		_, err = cmd.OutOrStdout().Write(append(bz, '\n'))
		return err
	})
}
