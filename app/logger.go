package app

import (
	"io"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"github.com/rs/zerolog"

	apperrors "github.com/zxnprotocol/zxn/app/errors"
	burnminttypes "github.com/zxnprotocol/zxn/x/burnmint/types"
	tokentypes "github.com/zxnprotocol/zxn/x/token/types"
)

// callRejectedMsg is logged whenever an engine call fails.
const callRejectedMsg = "call rejected"

// callerErrors are the rejections caused by a precondition the caller
// failed. Every other failure keeps its level.
var callerErrors = []error{
	burnminttypes.ErrInvalidBatchCount,
	burnminttypes.ErrPrimaryBurnRequired,
	burnminttypes.ErrInsufficientBalance,
	burnminttypes.ErrEmissionExhausted,
	burnminttypes.ErrNothingToSettle,
	burnminttypes.ErrEmissionStillActive,
	burnminttypes.ErrPrimaryRewardsOutstanding,
	burnminttypes.ErrAlreadyClaimed,
	burnminttypes.ErrNotAParticipant,
	burnminttypes.ErrInvalidAddress,
	tokentypes.ErrInvalidAddress,
	tokentypes.ErrInvalidAmount,
	tokentypes.ErrInsufficientFunds,
	tokentypes.ErrInsufficientAllowance,
	apperrors.ErrUnknownToken,
	apperrors.ErrBlockedAccount,
}

// RejectionLoggerWrapper wraps a logger to change the log level of rejected
// engine calls. Rejections caused by the caller, such as a burn outside the
// batch bounds or a settle with nothing owed, are downgraded from INFO to
// DEBUG.
type RejectionLoggerWrapper struct {
	logger log.Logger
}

// NewRejectionLoggerWrapper creates a new logger wrapper that downgrades
// caller rejections.
func NewRejectionLoggerWrapper(logger log.Logger) log.Logger {
	return &RejectionLoggerWrapper{logger: logger}
}

// Info logs an info message, but downgrades caller rejections to debug level.
func (l *RejectionLoggerWrapper) Info(msg string, keyvals ...interface{}) {
	if msg == callRejectedMsg && l.isCallerError(keyvals...) {
		l.logger.Debug(msg, keyvals...)
		return
	}
	l.logger.Info(msg, keyvals...)
}

// isCallerError checks whether the logged error is one of callerErrors.
func (l *RejectionLoggerWrapper) isCallerError(keyvals ...interface{}) bool {
	for i := 0; i < len(keyvals)-1; i += 2 {
		if key, ok := keyvals[i].(string); ok && key == "err" {
			if err, ok := keyvals[i+1].(error); ok {
				return errorsmod.IsOf(err, callerErrors...)
			}
		}
	}
	return false
}

// Debug passes through to the underlying logger
func (l *RejectionLoggerWrapper) Debug(msg string, keyvals ...interface{}) {
	l.logger.Debug(msg, keyvals...)
}

// Error passes through to the underlying logger
func (l *RejectionLoggerWrapper) Error(msg string, keyvals ...interface{}) {
	l.logger.Error(msg, keyvals...)
}

// Warn passes through to the underlying logger
func (l *RejectionLoggerWrapper) Warn(msg string, keyvals ...interface{}) {
	l.logger.Warn(msg, keyvals...)
}

// With passes through to the underlying logger
func (l *RejectionLoggerWrapper) With(keyvals ...interface{}) log.Logger {
	return &RejectionLoggerWrapper{logger: l.logger.With(keyvals...)}
}

// Impl returns the underlying logger implementation
func (l *RejectionLoggerWrapper) Impl() any {
	return l.logger.Impl()
}

// NewLogger builds the host logger described by cfg, writing to w.
func NewLogger(cfg LogConfig, w io.Writer) (log.Logger, error) {
	opts := []log.Option{log.ColorOption(cfg.Color)}
	if cfg.Format == LogFormatJSON {
		opts = append(opts, log.OutputJSONOption())
	}

	if cfg.Level == "" {
		opts = append(opts, log.LevelOption(zerolog.InfoLevel))
	} else {
		filter, err := log.ParseLogLevel(cfg.Level)
		if err != nil {
			return nil, err
		}
		opts = append(opts, log.FilterOption(filter))
	}

	return NewRejectionLoggerWrapper(log.NewLogger(w, opts...)), nil
}
