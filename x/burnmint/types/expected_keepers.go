package types

import (
	"context"

	"cosmossdk.io/math"
)

// TokenLedger is the read side shared by the input tokens.
type TokenLedger interface {
	BalanceOf(ctx context.Context, owner string) (math.Int, error)
	Allowance(ctx context.Context, owner, spender string) (math.Int, error)
}

// PrimaryToken is the input token destroyed by primary burns.
type PrimaryToken interface {
	TokenLedger
	BurnFrom(ctx context.Context, spender, from string, amount math.Int) error
}

// SecondaryToken is the input token collected into the redistribution pool.
type SecondaryToken interface {
	TokenLedger
	TransferFrom(ctx context.Context, spender, from, to string, amount math.Int) error
	Transfer(ctx context.Context, from, to string, amount math.Int) error
}

// OutputToken is the emitted token. Only the module account may mint.
type OutputToken interface {
	Mint(ctx context.Context, minter, to string, amount math.Int) error
}
