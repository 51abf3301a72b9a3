package types

import (
	errorsmod "cosmossdk.io/errors"
)

// Module error codes scoped by ModuleName.
// NOTE: Error code 1 is reserved as internal error / unknown failure

var (
	ErrInvalidBatchCount         = errorsmod.Register(ModuleName, 2, "invalid number of batches")
	ErrPrimaryBurnRequired       = errorsmod.Register(ModuleName, 3, "primary burn required in the current cycle")
	ErrInsufficientBalance       = errorsmod.Register(ModuleName, 4, "insufficient balance")
	ErrEmissionExhausted         = errorsmod.Register(ModuleName, 5, "active burn cycles exhausted")
	ErrNothingToSettle           = errorsmod.Register(ModuleName, 6, "nothing to settle")
	ErrEmissionStillActive       = errorsmod.Register(ModuleName, 7, "emission still active")
	ErrPrimaryRewardsOutstanding = errorsmod.Register(ModuleName, 8, "primary rewards outstanding")
	ErrAlreadyClaimed            = errorsmod.Register(ModuleName, 9, "secondary share already claimed")
	ErrNotAParticipant           = errorsmod.Register(ModuleName, 10, "not a protocol participant")
	ErrInvalidAddress            = errorsmod.Register(ModuleName, 11, "invalid address")
	ErrInvalidParams             = errorsmod.Register(ModuleName, 12, "invalid params")
	ErrInvalidGenesis            = errorsmod.Register(ModuleName, 13, "invalid genesis")
	ErrNonMonotonicTime          = errorsmod.Register(ModuleName, 14, "time moved before the last active cycle")
	ErrInvalidConversion         = errorsmod.Register(ModuleName, 15, "invalid conversion result")
	ErrInvariantBroken           = errorsmod.Register(ModuleName, 16, "invariant broken")
)
