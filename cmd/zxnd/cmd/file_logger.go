package cmd

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"cosmossdk.io/log"
	kitlog "github.com/go-kit/log"
	"github.com/spf13/cobra"

	"github.com/zxnprotocol/zxn/app"
)

type FileLogConfig struct {
	LogToFile      string
	EnableDebugLog bool
	LogDir         string
}

func DefaultFileLogConfig(homeDir string) FileLogConfig {
	return FileLogConfig{
		EnableDebugLog: false,
		LogDir:         filepath.Join(homeDir, "logs"),
	}
}

func createLogFile(logDir, prefix string) (*os.File, error) {
	if err := os.MkdirAll(logDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	timestamp := time.Now().Format("2006-01-02")
	logFileName := fmt.Sprintf("%s-%s.log", prefix, timestamp)
	logFilePath := filepath.Join(logDir, logFileName)

	file, err := os.OpenFile(logFilePath, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return nil, fmt.Errorf("failed to create log file: %w", err)
	}

	return file, nil
}

func getFileLogConfigFromFlags(cmd *cobra.Command, homeDir string) (FileLogConfig, error) {
	config := DefaultFileLogConfig(homeDir)

	var err error
	if config.LogToFile, err = cmd.Flags().GetString(FlagLogToFile); err != nil {
		return config, err
	}
	if config.EnableDebugLog, err = cmd.Flags().GetBool(FlagEnableDebugLog); err != nil {
		return config, err
	}
	logDir, err := cmd.Flags().GetString(FlagLogDir)
	if err != nil {
		return config, err
	}
	if logDir != "" {
		config.LogDir = logDir
	}

	return config, nil
}

// newLogger builds the engine logger for cmd. --log-to-file replaces stderr
// with the given file, --enable-debug-log copies every message down to debug
// level into a daily file. The returned closer releases the file.
func newLogger(cmd *cobra.Command, cfg app.Config) (log.Logger, io.Closer, error) {
	fileCfg, err := getFileLogConfigFromFlags(cmd, cfg.Home)
	if err != nil {
		return nil, nil, err
	}

	var (
		out  io.Writer = cmd.ErrOrStderr()
		file *os.File
	)
	switch {
	case fileCfg.LogToFile != "":
		file, err = os.OpenFile(fileCfg.LogToFile, os.O_WRONLY|os.O_CREATE|os.O_APPEND, 0o644)
		if err != nil {
			return nil, nil, err
		}
		out = file
	case fileCfg.EnableDebugLog:
		file, err = createLogFile(fileCfg.LogDir, "debug")
		if err != nil {
			return nil, nil, err
		}
		out = io.MultiWriter(out, file)
		cfg.Log.Level = "debug"
	}

	logger, err := app.NewLogger(cfg.Log, kitlog.NewSyncWriter(out))
	if err != nil {
		if file != nil {
			_ = file.Close()
		}
		return nil, nil, err
	}
	if file == nil {
		return logger, closerFunc(func() error { return nil }), nil
	}
	return logger, file, nil
}
