package keeper

import (
	"context"
	"fmt"

	"cosmossdk.io/collections"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	"github.com/zxnprotocol/zxn/x/burnmint/types"
)

// Invariant checks a ledger property and describes the violation if broken.
type Invariant func(ctx context.Context) (msg string, broken bool, err error)

// Invariants returns every ledger invariant by name.
func (k *Keeper) Invariants() map[string]Invariant {
	return map[string]Invariant{
		"cycle-credits":    k.CycleCreditsInvariant,
		"lifetime-credits": k.LifetimeCreditsInvariant,
		"active-cycles":    k.ActiveCyclesInvariant,
		"emission-cap":     k.EmissionCapInvariant,
		"secondary-pool":   k.SecondaryPoolInvariant,
	}
}

// AssertInvariants runs every invariant and fails with ErrInvariantBroken on
// the first violation, in name order.
func (k *Keeper) AssertInvariants(ctx context.Context) error {
	for _, name := range []string{"cycle-credits", "lifetime-credits", "active-cycles", "emission-cap", "secondary-pool"} {
		msg, broken, err := k.Invariants()[name](ctx)
		if err != nil {
			return err
		}
		if broken {
			return errorsmod.Wrapf(types.ErrInvariantBroken, "%s: %s", name, msg)
		}
	}
	return nil
}

// CycleCreditsInvariant checks that the account credits of every cycle sum to
// the cycle total.
func (k *Keeper) CycleCreditsInvariant(ctx context.Context) (string, bool, error) {
	sums := make(map[uint64]math.Int)
	err := k.accountCycleCredits.Walk(ctx, nil, func(key collections.Pair[string, uint64], credit math.Int) (bool, error) {
		sum, ok := sums[key.K2()]
		if !ok {
			sum = math.ZeroInt()
		}
		sums[key.K2()] = sum.Add(credit)
		return false, nil
	})
	if err != nil {
		return "", false, err
	}

	var msg string
	err = k.cycleCredits.Walk(ctx, nil, func(cycle uint64, total math.Int) (bool, error) {
		sum, ok := sums[cycle]
		if !ok {
			sum = math.ZeroInt()
		}
		if !sum.Equal(total) {
			msg = fmt.Sprintf("cycle %d: accounts sum to %s, total is %s", cycle, sum, total)
			return true, nil
		}
		delete(sums, cycle)
		return false, nil
	})
	if err != nil || msg != "" {
		return msg, msg != "", err
	}

	for cycle, sum := range sums {
		return fmt.Sprintf("cycle %d: accounts hold %s credit without a cycle total", cycle, sum), true, nil
	}
	return "", false, nil
}

// LifetimeCreditsInvariant checks that account lifetime credits and cycle
// totals both sum to the protocol lifetime total.
func (k *Keeper) LifetimeCreditsInvariant(ctx context.Context) (string, bool, error) {
	total, err := k.TotalCreditsLifetime(ctx)
	if err != nil {
		return "", false, err
	}

	accounts := math.ZeroInt()
	if err := k.lifetimeCredits.Walk(ctx, nil, func(_ string, credit math.Int) (bool, error) {
		accounts = accounts.Add(credit)
		return false, nil
	}); err != nil {
		return "", false, err
	}

	cycles := math.ZeroInt()
	if err := k.cycleCredits.Walk(ctx, nil, func(_ uint64, credit math.Int) (bool, error) {
		cycles = cycles.Add(credit)
		return false, nil
	}); err != nil {
		return "", false, err
	}

	if !accounts.Equal(total) || !cycles.Equal(total) {
		return fmt.Sprintf("accounts %s, cycles %s, lifetime total %s", accounts, cycles, total), true, nil
	}
	return "", false, nil
}

// ActiveCyclesInvariant checks the active cycle count against the cap and
// against the cycles holding credit.
func (k *Keeper) ActiveCyclesInvariant(ctx context.Context) (string, bool, error) {
	params, err := k.params.Get(ctx)
	if err != nil {
		return "", false, err
	}
	count, err := k.ActiveCycleCount(ctx)
	if err != nil {
		return "", false, err
	}
	if count > params.MaxActiveCycles {
		return fmt.Sprintf("%d active cycles above cap %d", count, params.MaxActiveCycles), true, nil
	}

	var credited uint64
	if err := k.cycleCredits.Walk(ctx, nil, func(_ uint64, credit math.Int) (bool, error) {
		if credit.IsPositive() {
			credited++
		}
		return false, nil
	}); err != nil {
		return "", false, err
	}
	if credited != count {
		return fmt.Sprintf("%d cycles hold credit, active cycle count is %d", credited, count), true, nil
	}
	return "", false, nil
}

// EmissionCapInvariant checks that settlement never mints beyond the schedule.
func (k *Keeper) EmissionCapInvariant(ctx context.Context) (string, bool, error) {
	params, err := k.params.Get(ctx)
	if err != nil {
		return "", false, err
	}
	emitted, err := k.TotalEmitted(ctx)
	if err != nil {
		return "", false, err
	}

	count, err := k.ActiveCycleCount(ctx)
	if err != nil {
		return "", false, err
	}
	budget := params.EmissionPerActiveCycle().Mul(math.NewIntFromUint64(count))
	if emitted.GT(budget) || emitted.GT(params.EmissionCap) {
		return fmt.Sprintf("emitted %s above budget %s of %d active cycles", emitted, budget, count), true, nil
	}
	return "", false, nil
}

// SecondaryPoolInvariant checks that claims never exceed the collected pool
// and that the module account still holds the unclaimed remainder.
func (k *Keeper) SecondaryPoolInvariant(ctx context.Context) (string, bool, error) {
	collected, err := getItemOrZero(ctx, k.totalSecondaryCollected)
	if err != nil {
		return "", false, err
	}
	claimed, err := getItemOrZero(ctx, k.totalSecondaryClaimed)
	if err != nil {
		return "", false, err
	}
	if claimed.GT(collected) {
		return fmt.Sprintf("claimed %s above collected %s", claimed, collected), true, nil
	}

	held, err := k.secondaryToken.BalanceOf(ctx, types.ModuleAccount)
	if err != nil {
		return "", false, err
	}
	if held.LT(collected.Sub(claimed)) {
		return fmt.Sprintf("module holds %s, pool owes %s", held, collected.Sub(claimed)), true, nil
	}
	return "", false, nil
}
