package keeper

import (
	"context"
	"time"

	"github.com/zxnprotocol/zxn/x/burnmint/types"
)

// InitGenesis initialises the module genesis state. A zero cycle origin is
// replaced by the current header time.
func (k *Keeper) InitGenesis(ctx context.Context, gs *types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return err
	}

	origin := gs.CycleOrigin
	if origin.IsZero() {
		origin = k.now(ctx)
	}

	if err := k.params.Set(ctx, gs.Params); err != nil {
		return err
	}
	return k.cycleOrigin.Set(ctx, origin.UnixNano())
}

// ExportGenesis outputs the schedule the module was initialised with.
func (k *Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.params.Get(ctx)
	if err != nil {
		return nil, err
	}
	origin, err := k.cycleOrigin.Get(ctx)
	if err != nil {
		return nil, err
	}

	return &types.GenesisState{
		Params:      params,
		CycleOrigin: time.Unix(0, origin).UTC(),
	}, nil
}

// IsInitialized reports whether InitGenesis ran against the store.
func (k *Keeper) IsInitialized(ctx context.Context) (bool, error) {
	return k.params.Has(ctx)
}
