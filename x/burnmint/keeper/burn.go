package keeper

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/event"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/zxnprotocol/zxn/x/burnmint/types"
)

// BurnPrimary destroys batches of the primary token held by account and
// credits the account one unit of burn credit per batch in the current cycle.
func (k *Keeper) BurnPrimary(ctx context.Context, account string, batches uint64) error {
	if err := validateAccount(account); err != nil {
		return err
	}
	params, err := k.params.Get(ctx)
	if err != nil {
		return err
	}
	if err := validateBatches(batches, params.MaxPrimaryBatches); err != nil {
		return err
	}

	current, err := k.CurrentCycle(ctx)
	if err != nil {
		return err
	}
	activates, err := k.activatesCycle(ctx, params, current)
	if err != nil {
		return err
	}

	amount := params.PrimaryBatchSize.Mul(math.NewIntFromUint64(batches))
	if err := k.checkFunds(ctx, k.primaryToken, account, amount); err != nil {
		return err
	}
	if err := k.primaryToken.BurnFrom(ctx, types.ModuleAccount, account, amount); err != nil {
		return fmt.Errorf("%w: %w", types.ErrInsufficientBalance, err)
	}

	if activates {
		if err := k.activateCycle(ctx, current); err != nil {
			return err
		}
	}

	credit := math.NewIntFromUint64(batches)
	if err := k.addCredit(ctx, account, current, credit); err != nil {
		return err
	}

	key := collections.Join(account, current)
	primaryBatches, err := k.accountCyclePrimaryBatches.Get(ctx, key)
	if err != nil && !errors.Is(err, collections.ErrNotFound) {
		return err
	}
	if err := k.accountCyclePrimaryBatches.Set(ctx, key, primaryBatches+batches); err != nil {
		return err
	}

	if err := addToMap(ctx, k.cyclePrimaryBurned, current, amount); err != nil {
		return err
	}
	if err := addToItem(ctx, k.totalPrimaryBurned, amount); err != nil {
		return err
	}
	if err := k.lastPrimaryBurnCycle.Set(ctx, account, current); err != nil {
		return err
	}

	recordBurn("primary", batches, credit)
	k.Logger(ctx).Debug("primary burn", "account", account, "cycle", current, "batches", batches)

	return k.emit(ctx, types.EventTypeBurnPrimary,
		event.Attribute{Key: types.AttributeKeyAccount, Value: account},
		event.Attribute{Key: types.AttributeKeyCycle, Value: strconv.FormatUint(current, 10)},
		event.Attribute{Key: types.AttributeKeyBatches, Value: strconv.FormatUint(batches, 10)},
		event.Attribute{Key: types.AttributeKeyAmount, Value: amount.String()},
		event.Attribute{Key: types.AttributeKeyCredit, Value: credit.String()},
	)
}

// BurnSecondary collects batches of the secondary token into the pool. The
// account must have burned the primary token in the same cycle. The credit
// awarded is decided by the conversion policy.
func (k *Keeper) BurnSecondary(ctx context.Context, account string, batches uint64) error {
	if err := validateAccount(account); err != nil {
		return err
	}
	params, err := k.params.Get(ctx)
	if err != nil {
		return err
	}
	if err := validateBatches(batches, params.MaxSecondaryBatches); err != nil {
		return err
	}

	current, err := k.CurrentCycle(ctx)
	if err != nil {
		return err
	}
	lastBurn, err := k.lastPrimaryBurnCycle.Get(ctx, account)
	switch {
	case errors.Is(err, collections.ErrNotFound):
		return errorsmod.Wrapf(types.ErrPrimaryBurnRequired, "%s never burned the primary token", account)
	case err != nil:
		return err
	case lastBurn != current:
		return errorsmod.Wrapf(types.ErrPrimaryBurnRequired, "last primary burn in cycle %d, current cycle %d", lastBurn, current)
	}

	amount := params.SecondaryBatchSize.Mul(math.NewIntFromUint64(batches))
	if err := k.checkFunds(ctx, k.secondaryToken, account, amount); err != nil {
		return err
	}

	cycleState, err := k.cycleState(ctx, current)
	if err != nil {
		return err
	}
	accountState, err := k.accountCycleState(ctx, account, current)
	if err != nil {
		return err
	}
	credit := k.policy.Convert(batches, cycleState, accountState)
	if credit.IsNil() || credit.IsNegative() {
		return errorsmod.Wrapf(types.ErrInvalidConversion, "policy returned %v for %d batches", credit, batches)
	}

	if err := k.secondaryToken.TransferFrom(ctx, types.ModuleAccount, account, types.ModuleAccount, amount); err != nil {
		return fmt.Errorf("%w: %w", types.ErrInsufficientBalance, err)
	}

	if err := k.addCredit(ctx, account, current, credit); err != nil {
		return err
	}
	if err := addToMap(ctx, k.cycleSecondaryCollected, current, amount); err != nil {
		return err
	}
	if err := addToItem(ctx, k.totalSecondaryCollected, amount); err != nil {
		return err
	}

	recordBurn("secondary", batches, credit)
	k.Logger(ctx).Debug("secondary burn", "account", account, "cycle", current, "batches", batches, "credit", credit)

	return k.emit(ctx, types.EventTypeBurnSecondary,
		event.Attribute{Key: types.AttributeKeyAccount, Value: account},
		event.Attribute{Key: types.AttributeKeyCycle, Value: strconv.FormatUint(current, 10)},
		event.Attribute{Key: types.AttributeKeyBatches, Value: strconv.FormatUint(batches, 10)},
		event.Attribute{Key: types.AttributeKeyAmount, Value: amount.String()},
		event.Attribute{Key: types.AttributeKeyCredit, Value: credit.String()},
	)
}

// activatesCycle reports whether a primary burn in current makes it a new
// active cycle. Burns are refused once the cap is reached, except inside the
// cycle that reached it.
func (k *Keeper) activatesCycle(ctx context.Context, params types.Params, current uint64) (bool, error) {
	last, found, err := k.LastActiveCycle(ctx)
	if err != nil {
		return false, err
	}
	if found && current == last {
		return false, nil
	}
	if found && current < last {
		return false, errorsmod.Wrapf(types.ErrNonMonotonicTime, "current cycle %d, last active cycle %d", current, last)
	}

	count, err := k.ActiveCycleCount(ctx)
	if err != nil {
		return false, err
	}
	if count >= params.MaxActiveCycles {
		return false, errorsmod.Wrapf(types.ErrEmissionExhausted, "all %d active cycles finished", params.MaxActiveCycles)
	}
	return true, nil
}

func (k *Keeper) activateCycle(ctx context.Context, cycle uint64) error {
	count, err := k.ActiveCycleCount(ctx)
	if err != nil {
		return err
	}
	count++
	if err := k.activeCycleCount.Set(ctx, count); err != nil {
		return err
	}
	if err := k.lastActiveCycle.Set(ctx, cycle); err != nil {
		return err
	}

	setActiveCycles(count)
	k.Logger(ctx).Info("cycle activated", "cycle", cycle, "active_cycle_count", count)

	return k.emit(ctx, types.EventTypeCycleActivated,
		event.Attribute{Key: types.AttributeKeyCycle, Value: strconv.FormatUint(cycle, 10)},
		event.Attribute{Key: types.AttributeKeyCount, Value: strconv.FormatUint(count, 10)},
	)
}

// addCredit adds credit to the four credit accumulators.
func (k *Keeper) addCredit(ctx context.Context, account string, cycle uint64, credit math.Int) error {
	if credit.IsZero() {
		return nil
	}

	key := collections.Join(account, cycle)
	participated, err := k.accountCycleCredits.Has(ctx, key)
	if err != nil {
		return err
	}
	if !participated {
		cycles, err := k.cyclesParticipated.Get(ctx, account)
		if err != nil && !errors.Is(err, collections.ErrNotFound) {
			return err
		}
		if err := k.cyclesParticipated.Set(ctx, account, cycles+1); err != nil {
			return err
		}
	}

	if err := addToMap(ctx, k.accountCycleCredits, key, credit); err != nil {
		return err
	}
	if err := addToMap(ctx, k.cycleCredits, cycle, credit); err != nil {
		return err
	}
	if err := addToMap(ctx, k.lifetimeCredits, account, credit); err != nil {
		return err
	}
	return addToItem(ctx, k.totalCreditsLifetime, credit)
}

// checkFunds fails with ErrInsufficientBalance unless account holds amount
// and allowed the module account to pull it.
func (k *Keeper) checkFunds(ctx context.Context, token types.TokenLedger, account string, amount math.Int) error {
	balance, err := token.BalanceOf(ctx, account)
	if err != nil {
		return err
	}
	if balance.LT(amount) {
		return errorsmod.Wrapf(types.ErrInsufficientBalance, "%s holds %s, need %s", account, balance, amount)
	}

	allowance, err := token.Allowance(ctx, account, types.ModuleAccount)
	if err != nil {
		return err
	}
	if allowance.LT(amount) {
		return errorsmod.Wrapf(types.ErrInsufficientBalance, "%s allowed %s, need %s", account, allowance, amount)
	}
	return nil
}

func (k *Keeper) cycleState(ctx context.Context, cycle uint64) (types.CycleState, error) {
	credits, err := k.CycleCredits(ctx, cycle)
	if err != nil {
		return types.CycleState{}, err
	}
	burned, err := getOrZero(ctx, k.cyclePrimaryBurned, cycle)
	if err != nil {
		return types.CycleState{}, err
	}
	collected, err := getOrZero(ctx, k.cycleSecondaryCollected, cycle)
	if err != nil {
		return types.CycleState{}, err
	}
	return types.CycleState{
		Cycle:              cycle,
		TotalCredits:       credits,
		PrimaryBurned:      burned,
		SecondaryCollected: collected,
	}, nil
}

func (k *Keeper) accountCycleState(ctx context.Context, account string, cycle uint64) (types.AccountCycleState, error) {
	credits, err := k.AccountCycleCredits(ctx, account, cycle)
	if err != nil {
		return types.AccountCycleState{}, err
	}
	batches, err := k.accountCyclePrimaryBatches.Get(ctx, collections.Join(account, cycle))
	if err != nil && !errors.Is(err, collections.ErrNotFound) {
		return types.AccountCycleState{}, err
	}
	return types.AccountCycleState{Credits: credits, PrimaryBatches: batches}, nil
}

func validateBatches(batches, maxBatches uint64) error {
	if batches < types.MinBatches || batches > maxBatches {
		return errorsmod.Wrapf(types.ErrInvalidBatchCount, "got %d, want between %d and %d", batches, types.MinBatches, maxBatches)
	}
	return nil
}
