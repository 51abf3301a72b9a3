package keeper

import (
	"context"

	"cosmossdk.io/core/event"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/zxnprotocol/zxn/x/burnmint/types"
)

// SecondaryEntitlement returns totalSecondaryCollected * lifetime / totalLifetime
// for account at the current totals.
func (k *Keeper) SecondaryEntitlement(ctx context.Context, account string) (math.Int, error) {
	lifetime, err := k.LifetimeCredits(ctx, account)
	if err != nil {
		return math.Int{}, err
	}
	return k.poolShare(ctx, lifetime)
}

func (k *Keeper) poolShare(ctx context.Context, lifetime math.Int) (math.Int, error) {
	totalLifetime, err := k.TotalCreditsLifetime(ctx)
	if err != nil {
		return math.Int{}, err
	}
	if !totalLifetime.IsPositive() || !lifetime.IsPositive() {
		return math.ZeroInt(), nil
	}
	collected, err := getItemOrZero(ctx, k.totalSecondaryCollected)
	if err != nil {
		return math.Int{}, err
	}
	return collected.Mul(lifetime).Quo(totalLifetime), nil
}

// ClaimSecondary pays account its lifetime share of the secondary pool. The
// claim opens once every active cycle has been used and closed, and requires
// the account to have settled all its primary rewards first.
func (k *Keeper) ClaimSecondary(ctx context.Context, account string) (math.Int, error) {
	if err := validateAccount(account); err != nil {
		return math.Int{}, err
	}
	params, err := k.params.Get(ctx)
	if err != nil {
		return math.Int{}, err
	}

	lifetime, err := k.LifetimeCredits(ctx, account)
	if err != nil {
		return math.Int{}, err
	}
	if !lifetime.IsPositive() {
		return math.Int{}, errorsmod.Wrapf(types.ErrNotAParticipant, "%s never earned credit", account)
	}

	if err := k.checkEmissionFinished(ctx, params); err != nil {
		return math.Int{}, err
	}

	s, err := k.unsettled(ctx, account)
	if err != nil {
		return math.Int{}, err
	}
	if s.amount.IsPositive() {
		return math.Int{}, errorsmod.Wrapf(types.ErrPrimaryRewardsOutstanding, "%s must settle %s first", account, s.amount)
	}

	status, err := k.SecondaryClaimStatus(ctx, account)
	if err != nil {
		return math.Int{}, err
	}
	if status.IsClaimed() {
		return math.Int{}, errorsmod.Wrapf(types.ErrAlreadyClaimed, "%s claimed %s", account, status.Amount)
	}

	share, err := k.poolShare(ctx, lifetime)
	if err != nil {
		return math.Int{}, err
	}
	if share.IsPositive() {
		if err := k.secondaryToken.Transfer(ctx, types.ModuleAccount, account, share); err != nil {
			return math.Int{}, err
		}
	}

	// cycles whose shares truncated to zero still count as settled
	if s.closed {
		if err := k.settledThrough.Set(ctx, account, s.through); err != nil {
			return math.Int{}, err
		}
	}
	if err := k.secondaryClaims.Set(ctx, account, share); err != nil {
		return math.Int{}, err
	}
	if err := addToItem(ctx, k.totalSecondaryClaimed, share); err != nil {
		return math.Int{}, err
	}

	k.Logger(ctx).Info("secondary share claimed", "account", account, "amount", share)

	err = k.emit(ctx, types.EventTypeClaimSecondary,
		event.Attribute{Key: types.AttributeKeyAccount, Value: account},
		event.Attribute{Key: types.AttributeKeyAmount, Value: share.String()},
		event.Attribute{Key: types.AttributeKeyCredit, Value: lifetime.String()},
	)
	if err != nil {
		return math.Int{}, err
	}
	return share, nil
}

// checkEmissionFinished fails with ErrEmissionStillActive until the cap of
// active cycles is reached and the last of them has closed.
func (k *Keeper) checkEmissionFinished(ctx context.Context, params types.Params) error {
	count, err := k.ActiveCycleCount(ctx)
	if err != nil {
		return err
	}
	if count < params.MaxActiveCycles {
		return errorsmod.Wrapf(types.ErrEmissionStillActive, "%d of %d active cycles used", count, params.MaxActiveCycles)
	}

	last, _, err := k.LastActiveCycle(ctx)
	if err != nil {
		return err
	}
	current, err := k.CurrentCycle(ctx)
	if err != nil {
		return err
	}
	if current <= last {
		return errorsmod.Wrapf(types.ErrEmissionStillActive, "final active cycle %d has not closed", last)
	}
	return nil
}
