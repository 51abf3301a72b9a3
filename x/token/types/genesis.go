package types

import (
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// Balance is the holding of a single account.
type Balance struct {
	Address string   `json:"address"`
	Amount  math.Int `json:"amount"`
}

// GenesisState seeds a token ledger.
type GenesisState struct {
	Params   Params    `json:"params"`
	Balances []Balance `json:"balances"`
}

// DefaultGenesis returns an empty uncapped ledger for denom.
func DefaultGenesis(denom string) *GenesisState {
	return &GenesisState{Params: NewParams(denom, math.ZeroInt(), "")}
}

// TotalBalance sums the genesis balances.
func (gs GenesisState) TotalBalance() math.Int {
	total := math.ZeroInt()
	for _, b := range gs.Balances {
		total = total.Add(b.Amount)
	}
	return total
}

// Validate performs basic genesis state validation.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return err
	}

	seen := make(map[string]struct{}, len(gs.Balances))
	for _, b := range gs.Balances {
		if b.Address == "" {
			return errorsmod.Wrap(ErrInvalidGenesis, "balance address must be non-empty")
		}
		if _, exists := seen[b.Address]; exists {
			return errorsmod.Wrapf(ErrInvalidGenesis, "duplicate balance for %s", b.Address)
		}
		seen[b.Address] = struct{}{}

		if b.Amount.IsNil() || !b.Amount.IsPositive() {
			return errorsmod.Wrapf(ErrInvalidGenesis, "balance of %s must be positive", b.Address)
		}
	}

	if gs.Params.Capped() && gs.TotalBalance().GT(gs.Params.Cap) {
		return errorsmod.Wrapf(ErrCapExceeded, "genesis supply %s exceeds cap %s", gs.TotalBalance(), gs.Params.Cap)
	}
	return nil
}
