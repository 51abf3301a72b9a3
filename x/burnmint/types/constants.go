package types

import (
	"time"

	"cosmossdk.io/math"
)

const (
	// Decimals is the number of decimal places of every token the engine
	// handles.
	Decimals = 18

	// MinBatches is the lower bound of every burn call.
	MinBatches uint64 = 1

	DefaultCycleLength         = 24 * time.Hour
	DefaultMaxPrimaryBatches   = uint64(1_000_000)
	DefaultMaxSecondaryBatches = uint64(10_000)
	// DefaultMaxActiveCycles is the number of cycles that can ever accrue
	// emission.
	DefaultMaxActiveCycles = uint64(400)

	// PrimaryTokensPerBatch and SecondaryTokensPerBatch are whole tokens.
	PrimaryTokensPerBatch   = 1_000_000
	SecondaryTokensPerBatch = 1
	// EmissionCapTokens is the lifetime supply of the output token in whole
	// tokens.
	EmissionCapTokens = 1_000_000_000
)

// Tokens converts whole tokens to base units.
func Tokens(n int64) math.Int {
	return math.NewIntWithDecimal(n, Decimals)
}
