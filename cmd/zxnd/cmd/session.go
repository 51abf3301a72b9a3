package cmd

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
	"github.com/spf13/cobra"

	"github.com/zxnprotocol/zxn/app"
)

// LockFileName guards a home directory against concurrent engines.
const LockFileName = "engine.lock"

type closerFunc func() error

func (f closerFunc) Close() error { return f() }

// session is an engine opened for the duration of one command.
type session struct {
	app     *app.App
	lock    *flock.Flock
	logFile io.Closer
}

// openSession loads the config of --home, takes the engine lock and opens
// the engine. The genesis file is only needed on first start.
func openSession(cmd *cobra.Command) (*session, error) {
	home, err := homeDir(cmd)
	if err != nil {
		return nil, err
	}
	cfg, err := app.LoadConfig(home)
	if err != nil {
		return nil, err
	}

	lock := flock.New(filepath.Join(home, LockFileName))
	locked, err := lock.TryLock()
	if err != nil {
		return nil, fmt.Errorf("failed to lock %s: %w", home, err)
	}
	if !locked {
		return nil, fmt.Errorf("%s is in use by another engine", home)
	}

	s := &session{lock: lock}
	logger, logFile, err := newLogger(cmd, cfg)
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	s.logFile = logFile

	var genesis *app.GenesisState
	if _, err := os.Stat(cfg.GenesisFile()); err == nil {
		if genesis, err = app.LoadGenesis(cfg.GenesisFile()); err != nil {
			_ = s.Close()
			return nil, err
		}
	}

	s.app, err = app.New(cfg, genesis, app.WithLogger(logger))
	if err != nil {
		_ = s.Close()
		return nil, err
	}
	return s, nil
}

// Close closes the engine, then releases the log file and the lock.
func (s *session) Close() error {
	var errs []error
	if s.app != nil {
		errs = append(errs, s.app.Close())
	}
	if s.logFile != nil {
		errs = append(errs, s.logFile.Close())
	}
	errs = append(errs, s.lock.Unlock())
	return errors.Join(errs...)
}
