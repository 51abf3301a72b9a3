package keeper

import (
	"context"

	"cosmossdk.io/math"

	"github.com/zxnprotocol/zxn/x/token/types"
)

// InitGenesis initialises the ledger from gs.
func (k *Keeper) InitGenesis(ctx context.Context, gs *types.GenesisState) error {
	if err := gs.Validate(); err != nil {
		return err
	}
	if err := k.params.Set(ctx, gs.Params); err != nil {
		return err
	}

	for _, b := range gs.Balances {
		if err := k.balances.Set(ctx, b.Address, b.Amount); err != nil {
			return err
		}
	}

	return k.supply.Set(ctx, gs.TotalBalance())
}

// ExportGenesis outputs the ledger state.
func (k *Keeper) ExportGenesis(ctx context.Context) (*types.GenesisState, error) {
	params, err := k.params.Get(ctx)
	if err != nil {
		return nil, err
	}

	var balances []types.Balance
	if err := k.balances.Walk(ctx, nil, func(address string, amount math.Int) (bool, error) {
		balances = append(balances, types.Balance{Address: address, Amount: amount})
		return false, nil
	}); err != nil {
		return nil, err
	}

	return &types.GenesisState{
		Params:   params,
		Balances: balances,
	}, nil
}

// IsInitialized reports whether InitGenesis ran against the store.
func (k *Keeper) IsInitialized(ctx context.Context) (bool, error) {
	return k.params.Has(ctx)
}
