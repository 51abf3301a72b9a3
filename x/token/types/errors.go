package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Module error codes scoped by ModuleName.
// NOTE: Error code 1 is reserved as internal error / unknown failure

var (
	ErrInvalidAddress        = errorsmod.Register(ModuleName, 2, "invalid address")
	ErrInvalidAmount         = errorsmod.Register(ModuleName, 3, "invalid amount")
	ErrInsufficientFunds     = errorsmod.Register(ModuleName, 4, "insufficient funds")
	ErrInsufficientAllowance = errorsmod.Register(ModuleName, 5, "insufficient allowance")
	ErrUnauthorized          = errorsmod.Register(ModuleName, 6, "unauthorized minter")
	ErrCapExceeded           = errorsmod.Register(ModuleName, 7, "cap exceeded")
	ErrInvalidParams         = errorsmod.Register(ModuleName, 8, "invalid params")
	ErrInvalidGenesis        = errorsmod.Register(ModuleName, 9, "invalid genesis")
)
