package types

import "cosmossdk.io/collections"

const (
	// ModuleName defines the module name
	ModuleName = "burnmint"

	// StoreKey defines the primary module store key
	StoreKey = ModuleName

	// ModuleAccount is the address the engine acts as on the token ledgers.
	// It spends burn allowances, holds the secondary pool and is the sole
	// minter of the output token.
	ModuleAccount = "module/" + ModuleName
)

var (
	ParamsKey      = collections.NewPrefix(0)
	CycleOriginKey = collections.NewPrefix(1)

	CycleCreditsPrefix            = collections.NewPrefix(10)
	CyclePrimaryBurnedPrefix      = collections.NewPrefix(11)
	CycleSecondaryCollectedPrefix = collections.NewPrefix(12)
	ActiveCycleCountKey           = collections.NewPrefix(13)
	LastActiveCycleKey            = collections.NewPrefix(14)

	TotalPrimaryBurnedKey      = collections.NewPrefix(20)
	TotalSecondaryCollectedKey = collections.NewPrefix(21)
	TotalCreditsLifetimeKey    = collections.NewPrefix(22)
	TotalEmittedKey            = collections.NewPrefix(23)
	TotalSecondaryClaimedKey   = collections.NewPrefix(24)

	AccountCycleCreditsPrefix        = collections.NewPrefix(30)
	AccountCyclePrimaryBatchesPrefix = collections.NewPrefix(31)
	LifetimeCreditsPrefix            = collections.NewPrefix(32)
	CyclesParticipatedPrefix         = collections.NewPrefix(33)
	LastPrimaryBurnCyclePrefix       = collections.NewPrefix(34)
	SettledThroughPrefix             = collections.NewPrefix(35)
	AccountEmittedPrefix             = collections.NewPrefix(36)
	SecondaryClaimsPrefix            = collections.NewPrefix(37)
)
