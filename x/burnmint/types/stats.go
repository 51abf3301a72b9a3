package types

import "cosmossdk.io/math"

// AccountStatistics is a read-only projection of an account's position.
type AccountStatistics struct {
	Account string
	// Unsettled is the reward earned in closed cycles and not minted yet.
	Unsettled math.Int
	// ProjectedCurrentCycle is the share of the open cycle at current totals.
	ProjectedCurrentCycle math.Int
	// Pending is Unsettled plus ProjectedCurrentCycle.
	Pending math.Int
	// SecondaryEntitlement is the pool share at current lifetime totals.
	SecondaryEntitlement math.Int
	SecondaryClaim       SecondaryClaimStatus
	LifetimeCredits      math.Int
	ProtocolCredits      math.Int
	CurrentCycleCredits  math.Int
	CyclesParticipated   uint64
	// LastPrimaryBurnCycle is only meaningful when HasBurned is true.
	LastPrimaryBurnCycle uint64
	HasBurned            bool
	TotalMinted          math.Int
	Settlement           SettlementStatus
}

// ProtocolStatistics is a read-only projection of the global ledger.
type ProtocolStatistics struct {
	CurrentCycle uint64
	// LastActiveCycle is only meaningful when ActiveCycleCount > 0.
	LastActiveCycle         uint64
	ActiveCycleCount        uint64
	CyclesRemaining         uint64
	CurrentCycleCredits     math.Int
	CyclePrimaryBurned      math.Int
	TotalPrimaryBurned      math.Int
	CycleSecondaryCollected math.Int
	TotalSecondaryCollected math.Int
	TotalSecondaryClaimed   math.Int
	TotalCreditsLifetime    math.Int
	TotalEmitted            math.Int
	// UnmintedClosedEmission is the reward earned in closed cycles that no
	// account has settled yet.
	UnmintedClosedEmission math.Int
	EmissionPerActiveCycle math.Int
	EmissionCap            math.Int
}

// EmissionExhausted reports whether no new cycle can become active.
func (s ProtocolStatistics) EmissionExhausted() bool {
	return s.CyclesRemaining == 0
}
