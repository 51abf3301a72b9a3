package errors

import (
	"cosmossdk.io/errors"
)

const AppErrorsCodespace = "app"

// host errors
var (
	ErrInvalidConfig  = errors.Register(AppErrorsCodespace, 11142, "invalid engine config")
	ErrInvalidGenesis = errors.Register(AppErrorsCodespace, 11143, "invalid engine genesis")
	ErrClosed         = errors.Register(AppErrorsCodespace, 11144, "engine closed")
	ErrUnknownToken   = errors.Register(AppErrorsCodespace, 11145, "unknown token")
	ErrBlockedAccount = errors.Register(AppErrorsCodespace, 11146, "account is blocked")
)
