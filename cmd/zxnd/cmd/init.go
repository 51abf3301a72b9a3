package cmd

import (
	"fmt"
	"os"

	"cosmossdk.io/math"
	"github.com/spf13/cobra"

	"github.com/zxnprotocol/zxn/app"
)

// initCmd returns the init command that writes the default config and
// genesis files to --home.
func initCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "init",
		Short:   "Write the default config and genesis files",
		Example: "zxnd init --home ~/.zxn --chain-id zxn-test",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			home, err := homeDir(cmd)
			if err != nil {
				return err
			}
			chainID, err := cmd.Flags().GetString(FlagChainID)
			if err != nil {
				return err
			}
			overwrite, err := cmd.Flags().GetBool(FlagOverwrite)
			if err != nil {
				return err
			}

			cfg := app.DefaultConfig()
			cfg.Home = home
			cfg.ChainID = chainID
			if err := cfg.Validate(); err != nil {
				return err
			}

			for _, path := range []string{cfg.ConfigFile(), cfg.GenesisFile()} {
				if _, err := os.Stat(path); err == nil && !overwrite {
					return fmt.Errorf("%s already exists, use --%s to replace it", path, FlagOverwrite)
				}
			}

			if err := app.WriteConfigFile(cfg.ConfigFile(), cfg); err != nil {
				return err
			}
			if err := app.DefaultGenesis().SaveAs(cfg.GenesisFile()); err != nil {
				return err
			}

			cmd.Printf("Initialized %s in %s\n", cfg.ChainID, home)
			return nil
		},
	}

	cmd.Flags().String(FlagChainID, app.DefaultChainID, "chain id recorded in the config")
	cmd.Flags().Bool(FlagOverwrite, false, "replace existing config and genesis files")
	return cmd
}

// addGenesisAccountCmd credits input tokens to an account in the genesis
// file.
func addGenesisAccountCmd() *cobra.Command {
	return &cobra.Command{
		Use:     "add-genesis-account [address] [primary-amount] [secondary-amount]",
		Short:   "Credit primary and secondary tokens to an account in genesis.json",
		Long:    "Credit primary and secondary tokens to an account in genesis.json. Amounts are in base units.",
		Example: "zxnd add-genesis-account alice 5000000000000000000000000 100000000000000000000",
		Args:    cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			home, err := homeDir(cmd)
			if err != nil {
				return err
			}
			primary, err := parseAmount(args[1])
			if err != nil {
				return err
			}
			secondary, err := parseAmount(args[2])
			if err != nil {
				return err
			}
			if primary.IsZero() && secondary.IsZero() {
				return fmt.Errorf("at least one amount must be positive")
			}

			cfg := app.DefaultConfig()
			cfg.Home = home
			genesis, err := app.LoadGenesis(cfg.GenesisFile())
			if err != nil {
				return err
			}
			genesis.AddBalance(args[0], primary, secondary)
			if err := genesis.Validate(); err != nil {
				return err
			}
			return genesis.SaveAs(cfg.GenesisFile())
		},
	}
}

func parseAmount(s string) (math.Int, error) {
	amount, ok := math.NewIntFromString(s)
	if !ok || amount.IsNegative() {
		return math.Int{}, fmt.Errorf("invalid amount %q", s)
	}
	return amount, nil
}
