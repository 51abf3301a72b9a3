package cmd

import (
	"github.com/spf13/pflag"

	"github.com/zxnprotocol/zxn/app"
)

const (
	// FlagHome is the directory holding config/, data/ and the engine lock.
	FlagHome = "home"

	// FlagLogToFile specifies whether to log to file or not.
	FlagLogToFile = "log-to-file"

	FlagEnableDebugLog = "enable-debug-log"
	FlagLogDir         = "log-dir"

	FlagChainID   = "chain-id"
	FlagOverwrite = "overwrite"

	// FlagStatsInterval sets how often start logs the protocol statistics.
	FlagStatsInterval = "stats-interval"
)

func addPersistentFlags(fs *pflag.FlagSet) {
	fs.String(FlagHome, app.DefaultNodeHome, "directory for config and data")
	fs.String(FlagLogToFile, "", "Write logs directly to a file. If empty, logs are written to stderr")
	fs.Bool(FlagEnableDebugLog, false, "Also write debug logs to a daily file in --log-dir")
	fs.String(FlagLogDir, "", "Directory of the debug log files (default <home>/logs)")
}
