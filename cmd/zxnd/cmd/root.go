package cmd

import (
	"errors"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/zxnprotocol/zxn/app"
)

// EnvFileName is read from the home directory before the config. Variables
// already set in the environment take precedence.
const EnvFileName = ".env"

// NewRootCmd creates a new root command for zxnd.
func NewRootCmd() *cobra.Command {
	rootCommand := &cobra.Command{
		Use:   "zxnd",
		Short: "Burn-to-mint emission engine",
		PersistentPreRunE: func(command *cobra.Command, _ []string) error {
			command.SetOut(command.OutOrStdout())
			command.SetErr(command.ErrOrStderr())

			home, err := homeDir(command)
			if err != nil {
				return err
			}
			return loadEnvFile(home)
		},
		SilenceUsage: true,
	}

	addPersistentFlags(rootCommand.PersistentFlags())
	rootCommand.AddCommand(
		initCmd(),
		addGenesisAccountCmd(),
		startCmd(),
		txCommand(),
		queryCommand(),
	)
	return rootCommand
}

// homeDir resolves --home, falling back to ZXN_HOME and then the default.
func homeDir(cmd *cobra.Command) (string, error) {
	v := viper.New()
	v.SetEnvPrefix(app.EnvPrefix)
	v.AutomaticEnv()
	if err := v.BindPFlag(FlagHome, cmd.Flags().Lookup(FlagHome)); err != nil {
		return "", err
	}
	return v.GetString(FlagHome), nil
}

func loadEnvFile(home string) error {
	path := filepath.Join(home, EnvFileName)
	if _, err := os.Stat(path); errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return godotenv.Load(path)
}
