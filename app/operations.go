package app

import (
	"context"

	"cosmossdk.io/math"

	burnminttypes "github.com/zxnprotocol/zxn/x/burnmint/types"
)

// BurnPrimary burns batches of the primary token held by account.
func (app *App) BurnPrimary(account string, batches uint64) error {
	return app.execute("burn_primary", func(ctx context.Context) error {
		return app.BurnMintKeeper.BurnPrimary(ctx, account, batches)
	})
}

// BurnSecondary collects batches of the secondary token held by account.
func (app *App) BurnSecondary(account string, batches uint64) error {
	return app.execute("burn_secondary", func(ctx context.Context) error {
		return app.BurnMintKeeper.BurnSecondary(ctx, account, batches)
	})
}

// Settle mints the reward account earned in closed cycles.
func (app *App) Settle(account string) (math.Int, error) {
	amount, err := executeWithResult(app, "settle", func(ctx context.Context) (math.Int, error) {
		return app.BurnMintKeeper.Settle(ctx, account)
	})
	return zeroIfNil(amount), err
}

// ClaimSecondary pays account its share of the secondary pool.
func (app *App) ClaimSecondary(account string) (math.Int, error) {
	amount, err := executeWithResult(app, "claim_secondary", func(ctx context.Context) (math.Int, error) {
		return app.BurnMintKeeper.ClaimSecondary(ctx, account)
	})
	return zeroIfNil(amount), err
}

// Approve lets spender move amount of token on behalf of owner. Burns require
// the owner to approve the engine module account. Blocked accounts cannot
// approve.
func (app *App) Approve(token Token, owner, spender string, amount math.Int) error {
	k, err := app.tokenKeeper(token)
	if err != nil {
		return err
	}
	if err := app.checkNotBlocked(owner); err != nil {
		return err
	}
	return app.execute("approve", func(ctx context.Context) error {
		return k.Approve(ctx, owner, spender, amount)
	})
}

// Transfer moves amount of token from one account to another. Tokens held
// by a blocked account cannot be transferred.
func (app *App) Transfer(token Token, from, to string, amount math.Int) error {
	k, err := app.tokenKeeper(token)
	if err != nil {
		return err
	}
	if err := app.checkNotBlocked(from); err != nil {
		return err
	}
	return app.execute("transfer", func(ctx context.Context) error {
		return k.Transfer(ctx, from, to, amount)
	})
}

// BalanceOf returns the balance of owner in token.
func (app *App) BalanceOf(token Token, owner string) (math.Int, error) {
	k, err := app.tokenKeeper(token)
	if err != nil {
		return math.Int{}, err
	}
	return query(app, func(ctx context.Context) (math.Int, error) {
		return k.BalanceOf(ctx, owner)
	})
}

// TotalSupply returns the supply of token.
func (app *App) TotalSupply(token Token) (math.Int, error) {
	k, err := app.tokenKeeper(token)
	if err != nil {
		return math.Int{}, err
	}
	return query(app, func(ctx context.Context) (math.Int, error) {
		return k.TotalSupply(ctx)
	})
}

// AccountStatistics projects the position of account at the current time.
func (app *App) AccountStatistics(account string) (burnminttypes.AccountStatistics, error) {
	return query(app, func(ctx context.Context) (burnminttypes.AccountStatistics, error) {
		return app.BurnMintKeeper.AccountStatistics(ctx, account)
	})
}

// ProtocolStatistics projects the global ledger at the current time.
func (app *App) ProtocolStatistics() (burnminttypes.ProtocolStatistics, error) {
	return query(app, func(ctx context.Context) (burnminttypes.ProtocolStatistics, error) {
		return app.BurnMintKeeper.ProtocolStatistics(ctx)
	})
}

// CheckInvariants runs every ledger invariant against the committed state.
func (app *App) CheckInvariants() error {
	_, err := query(app, func(ctx context.Context) (struct{}, error) {
		return struct{}{}, app.BurnMintKeeper.AssertInvariants(ctx)
	})
	return err
}

// ExportGenesis exports the token ledgers and the schedule. The burn ledger
// itself is not part of the export.
func (app *App) ExportGenesis() (*GenesisState, error) {
	return query(app, func(ctx context.Context) (*GenesisState, error) {
		primary, err := app.PrimaryKeeper.ExportGenesis(ctx)
		if err != nil {
			return nil, err
		}
		secondary, err := app.SecondaryKeeper.ExportGenesis(ctx)
		if err != nil {
			return nil, err
		}
		output, err := app.OutputKeeper.ExportGenesis(ctx)
		if err != nil {
			return nil, err
		}
		burnmint, err := app.BurnMintKeeper.ExportGenesis(ctx)
		if err != nil {
			return nil, err
		}
		return &GenesisState{
			Primary:   *primary,
			Secondary: *secondary,
			Output:    *output,
			BurnMint:  *burnmint,
		}, nil
	})
}
