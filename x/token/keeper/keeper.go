package keeper

import (
	"context"
	"errors"

	"cosmossdk.io/collections"
	"cosmossdk.io/core/event"
	corestore "cosmossdk.io/core/store"
	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/log"
	"cosmossdk.io/math"

	"github.com/zxnprotocol/zxn/internal/collcodec"
	"github.com/zxnprotocol/zxn/x/token/types"
)

// Keeper maintains the balances, allowances and supply of one fungible token.
type Keeper struct {
	params     collections.Item[types.Params]
	balances   collections.Map[string, math.Int]
	allowances collections.Map[collections.Pair[string, string], math.Int]
	supply     collections.Item[math.Int]
	schema     collections.Schema

	eventService event.Service
}

// NewKeeper creates and returns a new token Keeper.
func NewKeeper(storeService corestore.KVStoreService, eventService event.Service) *Keeper {
	sb := collections.NewSchemaBuilder(storeService)

	keeper := &Keeper{
		params:       collections.NewItem(sb, types.ParamsKey, "params", collcodec.JSONValue[types.Params]()),
		balances:     collections.NewMap(sb, types.BalancesPrefix, "balances", collections.StringKey, collcodec.IntValue),
		allowances:   collections.NewMap(sb, types.AllowancesPrefix, "allowances", collections.PairKeyCodec(collections.StringKey, collections.StringKey), collcodec.IntValue),
		supply:       collections.NewItem(sb, types.SupplyKey, "supply", collcodec.IntValue),
		eventService: eventService,
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

// Params returns the ledger params.
func (k *Keeper) Params(ctx context.Context) (types.Params, error) {
	return k.params.Get(ctx)
}

// Denom returns the token denomination.
func (k *Keeper) Denom(ctx context.Context) (string, error) {
	params, err := k.params.Get(ctx)
	if err != nil {
		return "", err
	}
	return params.Denom, nil
}

// BalanceOf returns the balance of owner, zero for unknown accounts.
func (k *Keeper) BalanceOf(ctx context.Context, owner string) (math.Int, error) {
	return getOrZero(ctx, k.balances, owner)
}

// Allowance returns how much spender may still pull from owner.
func (k *Keeper) Allowance(ctx context.Context, owner, spender string) (math.Int, error) {
	return getOrZero(ctx, k.allowances, collections.Join(owner, spender))
}

// TotalSupply returns the amount of tokens in existence.
func (k *Keeper) TotalSupply(ctx context.Context) (math.Int, error) {
	supply, err := k.supply.Get(ctx)
	if errors.Is(err, collections.ErrNotFound) {
		return math.ZeroInt(), nil
	}
	return supply, err
}

// Approve sets the amount spender may pull from owner.
func (k *Keeper) Approve(ctx context.Context, owner, spender string, amount math.Int) error {
	if owner == "" || spender == "" {
		return errorsmod.Wrap(types.ErrInvalidAddress, "owner and spender must be non-empty")
	}
	if err := validateAmount(amount); err != nil {
		return err
	}

	if amount.IsZero() {
		return k.allowances.Remove(ctx, collections.Join(owner, spender))
	}
	if err := k.allowances.Set(ctx, collections.Join(owner, spender), amount); err != nil {
		return err
	}

	return k.emit(ctx, "approve",
		event.Attribute{Key: "owner", Value: owner},
		event.Attribute{Key: "spender", Value: spender},
		event.Attribute{Key: "amount", Value: amount.String()},
	)
}

// Transfer moves amount from one account to another.
func (k *Keeper) Transfer(ctx context.Context, from, to string, amount math.Int) error {
	if from == "" || to == "" {
		return errorsmod.Wrap(types.ErrInvalidAddress, "sender and recipient must be non-empty")
	}
	if err := validateAmount(amount); err != nil {
		return err
	}
	if err := k.subBalance(ctx, from, amount); err != nil {
		return err
	}
	if err := k.addBalance(ctx, to, amount); err != nil {
		return err
	}

	return k.emit(ctx, "transfer",
		event.Attribute{Key: "from", Value: from},
		event.Attribute{Key: "to", Value: to},
		event.Attribute{Key: "amount", Value: amount.String()},
	)
}

// TransferFrom moves amount from one account to another on behalf of
// spender, consuming the allowance granted by from.
func (k *Keeper) TransferFrom(ctx context.Context, spender, from, to string, amount math.Int) error {
	if err := k.spendAllowance(ctx, from, spender, amount); err != nil {
		return err
	}
	return k.Transfer(ctx, from, to, amount)
}

// BurnFrom destroys amount held by from on behalf of spender, consuming the
// allowance granted by from.
func (k *Keeper) BurnFrom(ctx context.Context, spender, from string, amount math.Int) error {
	if err := k.spendAllowance(ctx, from, spender, amount); err != nil {
		return err
	}
	if err := k.subBalance(ctx, from, amount); err != nil {
		return err
	}

	supply, err := k.TotalSupply(ctx)
	if err != nil {
		return err
	}
	if err := k.supply.Set(ctx, supply.Sub(amount)); err != nil {
		return err
	}

	return k.emit(ctx, "burn",
		event.Attribute{Key: "from", Value: from},
		event.Attribute{Key: "amount", Value: amount.String()},
	)
}

// Mint issues amount new tokens to to. Only the configured minter may mint and
// the supply never exceeds the cap.
func (k *Keeper) Mint(ctx context.Context, minter, to string, amount math.Int) error {
	params, err := k.params.Get(ctx)
	if err != nil {
		return err
	}
	if params.Minter == "" || minter != params.Minter {
		return errorsmod.Wrapf(types.ErrUnauthorized, "%s cannot mint %s", minter, params.Denom)
	}
	if to == "" {
		return errorsmod.Wrap(types.ErrInvalidAddress, "recipient must be non-empty")
	}
	if err := validateAmount(amount); err != nil {
		return err
	}

	supply, err := k.TotalSupply(ctx)
	if err != nil {
		return err
	}
	newSupply := supply.Add(amount)
	if params.Capped() && newSupply.GT(params.Cap) {
		return errorsmod.Wrapf(types.ErrCapExceeded, "minting %s would raise supply to %s above cap %s", amount, newSupply, params.Cap)
	}

	if err := k.supply.Set(ctx, newSupply); err != nil {
		return err
	}
	if err := k.addBalance(ctx, to, amount); err != nil {
		return err
	}

	return k.emit(ctx, "mint",
		event.Attribute{Key: "to", Value: to},
		event.Attribute{Key: "amount", Value: amount.String()},
	)
}

func (k *Keeper) spendAllowance(ctx context.Context, owner, spender string, amount math.Int) error {
	if owner == "" || spender == "" {
		return errorsmod.Wrap(types.ErrInvalidAddress, "owner and spender must be non-empty")
	}
	if err := validateAmount(amount); err != nil {
		return err
	}

	allowance, err := k.Allowance(ctx, owner, spender)
	if err != nil {
		return err
	}
	if allowance.LT(amount) {
		return errorsmod.Wrapf(types.ErrInsufficientAllowance, "%s allowed %s by %s, need %s", spender, allowance, owner, amount)
	}

	remaining := allowance.Sub(amount)
	if remaining.IsZero() {
		return k.allowances.Remove(ctx, collections.Join(owner, spender))
	}
	return k.allowances.Set(ctx, collections.Join(owner, spender), remaining)
}

func (k *Keeper) subBalance(ctx context.Context, owner string, amount math.Int) error {
	balance, err := k.BalanceOf(ctx, owner)
	if err != nil {
		return err
	}
	if balance.LT(amount) {
		return errorsmod.Wrapf(types.ErrInsufficientFunds, "%s holds %s, need %s", owner, balance, amount)
	}

	remaining := balance.Sub(amount)
	if remaining.IsZero() {
		return k.balances.Remove(ctx, owner)
	}
	return k.balances.Set(ctx, owner, remaining)
}

func (k *Keeper) addBalance(ctx context.Context, owner string, amount math.Int) error {
	if amount.IsZero() {
		return nil
	}
	balance, err := k.BalanceOf(ctx, owner)
	if err != nil {
		return err
	}
	return k.balances.Set(ctx, owner, balance.Add(amount))
}

func (k *Keeper) emit(ctx context.Context, eventType string, attrs ...event.Attribute) error {
	if k.eventService == nil {
		return nil
	}
	return k.eventService.EventManager(ctx).EmitKV(ctx, types.ModuleName+"."+eventType, attrs...)
}

func validateAmount(amount math.Int) error {
	if amount.IsNil() || amount.IsNegative() {
		return errorsmod.Wrapf(types.ErrInvalidAmount, "amount must be non-negative, got %v", amount)
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
