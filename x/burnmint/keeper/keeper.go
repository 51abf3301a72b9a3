package keeper

import (
	"context"
	"errors"
	"time"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/event"
	"cosmossdk.io/core/header"
	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/zxnprotocol/zxn/internal/collcodec"
	"github.com/zxnprotocol/zxn/x/burnmint/types"
)

// Keeper owns the burn ledger, the reward emitter and the secondary pool.
type Keeper struct {
	params      collections.Item[types.Params]
	cycleOrigin collections.Item[int64]

	cycleCredits            collections.Map[uint64, math.Int]
	cyclePrimaryBurned      collections.Map[uint64, math.Int]
	cycleSecondaryCollected collections.Map[uint64, math.Int]
	activeCycleCount        collections.Item[uint64]
	lastActiveCycle         collections.Item[uint64]

	totalPrimaryBurned      collections.Item[math.Int]
	totalSecondaryCollected collections.Item[math.Int]
	totalCreditsLifetime    collections.Item[math.Int]
	totalEmitted            collections.Item[math.Int]
	totalSecondaryClaimed   collections.Item[math.Int]

	accountCycleCredits        collections.Map[collections.Pair[string, uint64], math.Int]
	accountCyclePrimaryBatches collections.Map[collections.Pair[string, uint64], uint64]
	lifetimeCredits            collections.Map[string, math.Int]
	cyclesParticipated         collections.Map[string, uint64]
	lastPrimaryBurnCycle       collections.Map[string, uint64]
	settledThrough             collections.Map[string, uint64]
	accountEmitted             collections.Map[string, math.Int]
	secondaryClaims            collections.Map[string, math.Int]

	schema collections.Schema

	headerService header.Service
	eventService  event.Service

	primaryToken   types.PrimaryToken
	secondaryToken types.SecondaryToken
	outputToken    types.OutputToken
	policy         types.ConversionPolicy
}

// NewKeeper creates and returns a new burnmint module Keeper. A nil policy
// selects types.PrimaryWeightedPolicy.
func NewKeeper(
	storeService corestore.KVStoreService,
	headerService header.Service,
	eventService event.Service,
	primaryToken types.PrimaryToken,
	secondaryToken types.SecondaryToken,
	outputToken types.OutputToken,
	policy types.ConversionPolicy,
) *Keeper {
	if policy == nil {
		policy = types.PrimaryWeightedPolicy{}
	}

	sb := collections.NewSchemaBuilder(storeService)
	pairKey := collections.PairKeyCodec(collections.StringKey, collections.Uint64Key)

	keeper := &Keeper{
		params:      collections.NewItem(sb, types.ParamsKey, "params", collcodec.JSONValue[types.Params]()),
		cycleOrigin: collections.NewItem(sb, types.CycleOriginKey, "cycle_origin", collections.Int64Value),

		cycleCredits:            collections.NewMap(sb, types.CycleCreditsPrefix, "cycle_credits", collections.Uint64Key, collcodec.IntValue),
		cyclePrimaryBurned:      collections.NewMap(sb, types.CyclePrimaryBurnedPrefix, "cycle_primary_burned", collections.Uint64Key, collcodec.IntValue),
		cycleSecondaryCollected: collections.NewMap(sb, types.CycleSecondaryCollectedPrefix, "cycle_secondary_collected", collections.Uint64Key, collcodec.IntValue),
		activeCycleCount:        collections.NewItem(sb, types.ActiveCycleCountKey, "active_cycle_count", collections.Uint64Value),
		lastActiveCycle:         collections.NewItem(sb, types.LastActiveCycleKey, "last_active_cycle", collections.Uint64Value),

		totalPrimaryBurned:      collections.NewItem(sb, types.TotalPrimaryBurnedKey, "total_primary_burned", collcodec.IntValue),
		totalSecondaryCollected: collections.NewItem(sb, types.TotalSecondaryCollectedKey, "total_secondary_collected", collcodec.IntValue),
		totalCreditsLifetime:    collections.NewItem(sb, types.TotalCreditsLifetimeKey, "total_credits_lifetime", collcodec.IntValue),
		totalEmitted:            collections.NewItem(sb, types.TotalEmittedKey, "total_emitted", collcodec.IntValue),
		totalSecondaryClaimed:   collections.NewItem(sb, types.TotalSecondaryClaimedKey, "total_secondary_claimed", collcodec.IntValue),

		accountCycleCredits:        collections.NewMap(sb, types.AccountCycleCreditsPrefix, "account_cycle_credits", pairKey, collcodec.IntValue),
		accountCyclePrimaryBatches: collections.NewMap(sb, types.AccountCyclePrimaryBatchesPrefix, "account_cycle_primary_batches", pairKey, collections.Uint64Value),
		lifetimeCredits:            collections.NewMap(sb, types.LifetimeCreditsPrefix, "lifetime_credits", collections.StringKey, collcodec.IntValue),
		cyclesParticipated:         collections.NewMap(sb, types.CyclesParticipatedPrefix, "cycles_participated", collections.StringKey, collections.Uint64Value),
		lastPrimaryBurnCycle:       collections.NewMap(sb, types.LastPrimaryBurnCyclePrefix, "last_primary_burn_cycle", collections.StringKey, collections.Uint64Value),
		settledThrough:             collections.NewMap(sb, types.SettledThroughPrefix, "settled_through", collections.StringKey, collections.Uint64Value),
		accountEmitted:             collections.NewMap(sb, types.AccountEmittedPrefix, "account_emitted", collections.StringKey, collcodec.IntValue),
		secondaryClaims:            collections.NewMap(sb, types.SecondaryClaimsPrefix, "secondary_claims", collections.StringKey, collcodec.IntValue),

		headerService:  headerService,
		eventService:   eventService,
		primaryToken:   primaryToken,
		secondaryToken: secondaryToken,
		outputToken:    outputToken,
		policy:         policy,
	}

	schema, err := sb.Build()
	if err != nil {
		panic(err)
	}
	keeper.schema = schema

	return keeper
}

// Logger returns the module logger carried by ctx.
func (k *Keeper) Logger(ctx context.Context) log.Logger {
	logger, ok := ctx.Value(log.ContextKey).(log.Logger)
	if !ok {
		logger = log.NewNopLogger()
	}
	return logger.With(log.ModuleKey, "x/"+types.ModuleName)
}

// GetParams returns the emission schedule.
func (k *Keeper) GetParams(ctx context.Context) (types.Params, error) {
	return k.params.Get(ctx)
}

// CycleClock returns the clock fixed at initialization.
func (k *Keeper) CycleClock(ctx context.Context) (types.CycleClock, error) {
	params, err := k.params.Get(ctx)
	if err != nil {
		return types.CycleClock{}, err
	}
	origin, err := k.cycleOrigin.Get(ctx)
	if err != nil {
		return types.CycleClock{}, err
	}
	return types.NewCycleClock(time.Unix(0, origin), params.CycleLength()), nil
}

// CurrentCycle returns the cycle of the current header time.
func (k *Keeper) CurrentCycle(ctx context.Context) (uint64, error) {
	clock, err := k.CycleClock(ctx)
	if err != nil {
		return 0, err
	}
	return clock.CurrentCycle(k.now(ctx)), nil
}

func (k *Keeper) now(ctx context.Context) time.Time {
	return k.headerService.GetHeaderInfo(ctx).Time
}

// ActiveCycleCount returns the number of cycles that accrued credit.
func (k *Keeper) ActiveCycleCount(ctx context.Context) (uint64, error) {
	return getUint64OrZero(ctx, k.activeCycleCount)
}

// LastActiveCycle returns the most recent active cycle, if any.
func (k *Keeper) LastActiveCycle(ctx context.Context) (uint64, bool, error) {
	cycle, err := k.lastActiveCycle.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, err
	}
	return cycle, true, nil
}

// CycleCredits returns the total credit earned in cycle.
func (k *Keeper) CycleCredits(ctx context.Context, cycle uint64) (math.Int, error) {
	return getOrZero(ctx, k.cycleCredits, cycle)
}

// AccountCycleCredits returns the credit account earned in cycle.
func (k *Keeper) AccountCycleCredits(ctx context.Context, account string, cycle uint64) (math.Int, error) {
	return getOrZero(ctx, k.accountCycleCredits, collections.Join(account, cycle))
}

// LifetimeCredits returns every credit account ever earned.
func (k *Keeper) LifetimeCredits(ctx context.Context, account string) (math.Int, error) {
	return getOrZero(ctx, k.lifetimeCredits, account)
}

// TotalCreditsLifetime returns every credit ever earned by anyone.
func (k *Keeper) TotalCreditsLifetime(ctx context.Context) (math.Int, error) {
	return getItemOrZero(ctx, k.totalCreditsLifetime)
}

// TotalEmitted returns the output tokens minted so far.
func (k *Keeper) TotalEmitted(ctx context.Context) (math.Int, error) {
	return getItemOrZero(ctx, k.totalEmitted)
}

// SettlementStatus returns how far account has settled.
func (k *Keeper) SettlementStatus(ctx context.Context, account string) (types.SettlementStatus, error) {
	cycle, err := k.settledThrough.Get(ctx, account)
	if errors.Is(err, collections.ErrNotFound) {
		return types.SettlementStatus{State: types.NeverSettled}, nil
	}
	if err != nil {
		return types.SettlementStatus{}, err
	}
	return types.NewSettledThrough(cycle), nil
}

// SecondaryClaimStatus returns whether account claimed its pool share.
func (k *Keeper) SecondaryClaimStatus(ctx context.Context, account string) (types.SecondaryClaimStatus, error) {
	amount, err := k.secondaryClaims.Get(ctx, account)
	if errors.Is(err, collections.ErrNotFound) {
		return types.SecondaryClaimStatus{State: types.Unclaimed, Amount: math.ZeroInt()}, nil
	}
	if err != nil {
		return types.SecondaryClaimStatus{}, err
	}
	return types.SecondaryClaimStatus{State: types.Claimed, Amount: amount}, nil
}

func (k *Keeper) emit(ctx context.Context, eventType string, attrs ...event.Attribute) error {
	if k.eventService == nil {
		return nil
	}
	return k.eventService.EventManager(ctx).EmitKV(ctx, eventType, attrs...)
}

func validateAccount(account string) error {
	if account == "" {
		return errorsmod.Wrap(types.ErrInvalidAddress, "account must be non-empty")
	}
	return nil
}

func getOrZero[K any](ctx context.Context, m collections.Map[K, math.Int], key K) (math.Int, error) {
	v, err := m.Get(ctx, key)
	if errors.Is(err, collections.ErrNotFound) {
		return math.ZeroInt(), nil
	}
	return v, err
}

func getItemOrZero(ctx context.Context, item collections.Item[math.Int]) (math.Int, error) {
	v, err := item.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return math.ZeroInt(), nil
	}
	return v, err
}

func getUint64OrZero(ctx context.Context, item collections.Item[uint64]) (uint64, error) {
	v, err := item.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return 0, nil
	}
	return v, err
}

func addToMap[K any](ctx context.Context, m collections.Map[K, math.Int], key K, delta math.Int) error {
	current, err := getOrZero(ctx, m, key)
	if err != nil {
		return err
	}
	return m.Set(ctx, key, current.Add(delta))
}

func addToItem(ctx context.Context, item collections.Item[math.Int], delta math.Int) error {
	current, err := getItemOrZero(ctx, item)
	if err != nil {
		return err
	}
	return item.Set(ctx, current.Add(delta))
}
