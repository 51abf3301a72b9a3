package types

import (
	"regexp"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

var denomRegex = regexp.MustCompile(`^[a-z][a-z0-9]{1,15}$`)

// Params configures a token ledger.
type Params struct {
	// Denom names the token.
	Denom string `json:"denom"`
	// Cap bounds the total supply. A zero cap means the supply is unbounded.
	Cap math.Int `json:"cap"`
	// Minter is the only account allowed to mint. Empty disables minting.
	Minter string `json:"minter,omitempty"`
}

// NewParams returns Params for denom with the given cap and minter.
func NewParams(denom string, supplyCap math.Int, minter string) Params {
	return Params{Denom: denom, Cap: supplyCap, Minter: minter}
}

// Validate returns an error if the params are malformed.
func (p Params) Validate() error {
	if !denomRegex.MatchString(p.Denom) {
		return errorsmod.Wrapf(ErrInvalidParams, "invalid denom %q", p.Denom)
	}
	if p.Cap.IsNil() || p.Cap.IsNegative() {
		return errorsmod.Wrapf(ErrInvalidParams, "cap must be non-negative, got %v", p.Cap)
	}
	return nil
}

// Capped reports whether the supply is bounded.
func (p Params) Capped() bool {
	return p.Cap.IsPositive()
}
