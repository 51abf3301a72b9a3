package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	"cosmossdk.io/math"

	"github.com/zxnprotocol/zxn/x/burnmint/types"
)

// AccountStatistics projects the position of account. Unknown accounts
// yield zero values.
func (k *Keeper) AccountStatistics(ctx context.Context, account string) (types.AccountStatistics, error) {
	stats := types.AccountStatistics{Account: account}

	s, err := k.unsettled(ctx, account)
	if err != nil {
		return stats, err
	}
	stats.Unsettled = s.amount

	if stats.ProjectedCurrentCycle, err = k.ProjectedCurrentCycleShare(ctx, account); err != nil {
		return stats, err
	}
	stats.Pending = stats.Unsettled.Add(stats.ProjectedCurrentCycle)

	if stats.SecondaryEntitlement, err = k.SecondaryEntitlement(ctx, account); err != nil {
		return stats, err
	}
	if stats.SecondaryClaim, err = k.SecondaryClaimStatus(ctx, account); err != nil {
		return stats, err
	}
	if stats.LifetimeCredits, err = k.LifetimeCredits(ctx, account); err != nil {
		return stats, err
	}
	if stats.ProtocolCredits, err = k.TotalCreditsLifetime(ctx); err != nil {
		return stats, err
	}

	current, err := k.CurrentCycle(ctx)
	if err != nil {
		return stats, err
	}
	if stats.CurrentCycleCredits, err = k.AccountCycleCredits(ctx, account, current); err != nil {
		return stats, err
	}

	stats.CyclesParticipated, err = k.cyclesParticipated.Get(ctx, account)
	if err != nil && !errors.Is(err, collections.ErrNotFound) {
		return stats, err
	}

	stats.LastPrimaryBurnCycle, err = k.lastPrimaryBurnCycle.Get(ctx, account)
	switch {
	case err == nil:
		stats.HasBurned = true
	case !errors.Is(err, collections.ErrNotFound):
		return stats, err
	}

	if stats.TotalMinted, err = getOrZero(ctx, k.accountEmitted, account); err != nil {
		return stats, err
	}
	if stats.Settlement, err = k.SettlementStatus(ctx, account); err != nil {
		return stats, err
	}
	return stats, nil
}

// ProtocolStatistics projects the global ledger.
func (k *Keeper) ProtocolStatistics(ctx context.Context) (types.ProtocolStatistics, error) {
	var stats types.ProtocolStatistics

	params, err := k.params.Get(ctx)
	if err != nil {
		return stats, err
	}
	stats.EmissionPerActiveCycle = params.EmissionPerActiveCycle()
	stats.EmissionCap = params.EmissionCap

	if stats.CurrentCycle, err = k.CurrentCycle(ctx); err != nil {
		return stats, err
	}
	if stats.ActiveCycleCount, err = k.ActiveCycleCount(ctx); err != nil {
		return stats, err
	}
	if stats.ActiveCycleCount < params.MaxActiveCycles {
		stats.CyclesRemaining = params.MaxActiveCycles - stats.ActiveCycleCount
	}

	last, _, err := k.LastActiveCycle(ctx)
	if err != nil {
		return stats, err
	}
	stats.LastActiveCycle = last

	if stats.CurrentCycleCredits, err = k.CycleCredits(ctx, stats.CurrentCycle); err != nil {
		return stats, err
	}
	if stats.CyclePrimaryBurned, err = getOrZero(ctx, k.cyclePrimaryBurned, stats.CurrentCycle); err != nil {
		return stats, err
	}
	if stats.TotalPrimaryBurned, err = getItemOrZero(ctx, k.totalPrimaryBurned); err != nil {
		return stats, err
	}
	if stats.CycleSecondaryCollected, err = getOrZero(ctx, k.cycleSecondaryCollected, stats.CurrentCycle); err != nil {
		return stats, err
	}
	if stats.TotalSecondaryCollected, err = getItemOrZero(ctx, k.totalSecondaryCollected); err != nil {
		return stats, err
	}
	if stats.TotalSecondaryClaimed, err = getItemOrZero(ctx, k.totalSecondaryClaimed); err != nil {
		return stats, err
	}
	if stats.TotalCreditsLifetime, err = k.TotalCreditsLifetime(ctx); err != nil {
		return stats, err
	}
	if stats.TotalEmitted, err = k.TotalEmitted(ctx); err != nil {
		return stats, err
	}

	if stats.UnmintedClosedEmission, err = k.totalUnsettled(ctx); err != nil {
		return stats, err
	}
	return stats, nil
}

// totalUnsettled sums the unsettled reward of every account that ever earned
// credit. Truncation residue of a cycle is never owed to anyone and is not
// counted.
func (k *Keeper) totalUnsettled(ctx context.Context) (math.Int, error) {
	var accounts []string
	err := k.lifetimeCredits.Walk(ctx, nil, func(account string, _ math.Int) (bool, error) {
		accounts = append(accounts, account)
		return false, nil
	})
	if err != nil {
		return math.Int{}, err
	}

	total := math.ZeroInt()
	for _, account := range accounts {
		s, err := k.unsettled(ctx, account)
		if err != nil {
			return math.Int{}, err
		}
		total = total.Add(s.amount)
	}
	return total, nil
}
