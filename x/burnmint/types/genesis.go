package types

import (
	"time"

	errorsmod "cosmossdk.io/errors"
)

// GenesisState fixes the schedule at initialization.
type GenesisState struct {
	Params Params `json:"params"`
	// CycleOrigin is the first instant of cycle 0. A zero value is replaced
	// by the time of initialization.
	CycleOrigin time.Time `json:"cycle_origin"`
}

// DefaultGenesis returns the default module genesis.
func DefaultGenesis() *GenesisState {
	return &GenesisState{Params: DefaultParams()}
}

// Validate performs basic genesis state validation.
func (gs GenesisState) Validate() error {
	if err := gs.Params.Validate(); err != nil {
		return errorsmod.Wrap(ErrInvalidGenesis, err.Error())
	}
	if !gs.CycleOrigin.IsZero() && gs.CycleOrigin.Unix() < 0 {
		return errorsmod.Wrapf(ErrInvalidGenesis, "cycle origin %s predates the unix epoch", gs.CycleOrigin)
	}
	return nil
}
