package keeper

import (
	"context"
	"strconv"
	"time"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/event"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/zxnprotocol/zxn/x/burnmint/types"
)

// settlement is the outcome of scanning an account's closed cycles.
type settlement struct {
	amount math.Int
	// through is the latest closed cycle; only valid when closed is true.
	through uint64
	closed  bool
}

// Unsettled returns the reward account earned in closed cycles and has not
// settled yet.
func (k *Keeper) Unsettled(ctx context.Context, account string) (math.Int, error) {
	s, err := k.unsettled(ctx, account)
	if err != nil {
		return math.Int{}, err
	}
	return s.amount, nil
}

// unsettled sums floor(credit * emission / total) over every cycle the
// account holds credit in, from its cursor through the latest closed cycle.
// Only active cycles hold credit so the scan never exceeds MaxActiveCycles
// entries, however long the account stayed away.
func (k *Keeper) unsettled(ctx context.Context, account string) (settlement, error) {
	params, err := k.params.Get(ctx)
	if err != nil {
		return settlement{}, err
	}
	current, err := k.CurrentCycle(ctx)
	if err != nil {
		return settlement{}, err
	}
	if current == 0 {
		return settlement{amount: math.ZeroInt()}, nil
	}
	latestClosed := current - 1

	status, err := k.SettlementStatus(ctx, account)
	if err != nil {
		return settlement{}, err
	}
	result := settlement{amount: math.ZeroInt(), through: latestClosed, closed: true}
	start := status.NextUnsettled()
	if start > latestClosed {
		return result, nil
	}

	emission := params.EmissionPerActiveCycle()
	rng := collections.NewPrefixedPairRange[string, uint64](account).StartInclusive(start).EndInclusive(latestClosed)
	err = k.accountCycleCredits.Walk(ctx, rng, func(key collections.Pair[string, uint64], credit math.Int) (bool, error) {
		share, err := k.cycleShare(ctx, key.K2(), credit, emission)
		if err != nil {
			return true, err
		}
		result.amount = result.amount.Add(share)
		return false, nil
	})
	if err != nil {
		return settlement{}, err
	}
	return result, nil
}

// cycleShare returns floor(credit * emission / cycleCredits[cycle]).
func (k *Keeper) cycleShare(ctx context.Context, cycle uint64, credit, emission math.Int) (math.Int, error) {
	total, err := k.CycleCredits(ctx, cycle)
	if err != nil {
		return math.Int{}, err
	}
	if !total.IsPositive() || !credit.IsPositive() {
		return math.ZeroInt(), nil
	}
	return credit.Mul(emission).Quo(total), nil
}

// ProjectedCurrentCycleShare previews the reward account would receive from
// the open cycle if it closed now. It is never minted.
func (k *Keeper) ProjectedCurrentCycleShare(ctx context.Context, account string) (math.Int, error) {
	params, err := k.params.Get(ctx)
	if err != nil {
		return math.Int{}, err
	}
	current, err := k.CurrentCycle(ctx)
	if err != nil {
		return math.Int{}, err
	}
	credit, err := k.AccountCycleCredits(ctx, account, current)
	if err != nil {
		return math.Int{}, err
	}
	return k.cycleShare(ctx, current, credit, params.EmissionPerActiveCycle())
}

// Settle mints the unsettled reward of account and moves its cursor to the
// latest closed cycle.
func (k *Keeper) Settle(ctx context.Context, account string) (math.Int, error) {
	defer measureSince("settle", time.Now())

	if err := validateAccount(account); err != nil {
		return math.Int{}, err
	}
	s, err := k.unsettled(ctx, account)
	if err != nil {
		return math.Int{}, err
	}
	if !s.closed {
		return math.Int{}, errorsmod.Wrap(types.ErrNothingToSettle, "no cycle has closed yet")
	}
	if !s.amount.IsPositive() {
		return math.Int{}, errorsmod.Wrapf(types.ErrNothingToSettle, "%s has no reward through cycle %d", account, s.through)
	}

	if err := k.outputToken.Mint(ctx, types.ModuleAccount, account, s.amount); err != nil {
		return math.Int{}, err
	}

	if err := k.settledThrough.Set(ctx, account, s.through); err != nil {
		return math.Int{}, err
	}
	if err := addToItem(ctx, k.totalEmitted, s.amount); err != nil {
		return math.Int{}, err
	}
	if err := addToMap(ctx, k.accountEmitted, account, s.amount); err != nil {
		return math.Int{}, err
	}

	recordSettlement(s.amount)
	k.Logger(ctx).Info("reward settled", "account", account, "amount", s.amount, "through", s.through)

	err = k.emit(ctx, types.EventTypeSettle,
		event.Attribute{Key: types.AttributeKeyAccount, Value: account},
		event.Attribute{Key: types.AttributeKeyAmount, Value: s.amount.String()},
		event.Attribute{Key: types.AttributeKeyThrough, Value: strconv.FormatUint(s.through, 10)},
	)
	if err != nil {
		return math.Int{}, err
	}
	return s.amount, nil
}
