package types

import "cosmossdk.io/math"

// CycleState is the protocol-wide state of the cycle a burn lands in.
type CycleState struct {
	Cycle              uint64
	TotalCredits       math.Int
	PrimaryBurned      math.Int
	SecondaryCollected math.Int
}

// AccountCycleState is the burning account's state within the same cycle.
type AccountCycleState struct {
	Credits        math.Int
	PrimaryBatches uint64
}

// ConversionPolicy turns a secondary burn into burn credit. Implementations
// must be monotonic in batches, read nothing outside the current cycle and
// never return a negative or nil credit.
type ConversionPolicy interface {
	Convert(batches uint64, cycle CycleState, account AccountCycleState) math.Int
}

// ConversionPolicyFunc adapts a function to ConversionPolicy.
type ConversionPolicyFunc func(batches uint64, cycle CycleState, account AccountCycleState) math.Int

// Convert implements ConversionPolicy.
func (f ConversionPolicyFunc) Convert(batches uint64, cycle CycleState, account AccountCycleState) math.Int {
	return f(batches, cycle, account)
}

// PrimaryWeightedPolicy weighs every secondary batch beyond the first by the
// primary batches the account burned in the same cycle:
//
//	credit = primaryBatchesThisCycle * (batches - 1)
type PrimaryWeightedPolicy struct{}

var _ ConversionPolicy = PrimaryWeightedPolicy{}

// Convert implements ConversionPolicy.
func (PrimaryWeightedPolicy) Convert(batches uint64, _ CycleState, account AccountCycleState) math.Int {
	if batches <= 1 {
		return math.ZeroInt()
	}
	return math.NewIntFromUint64(account.PrimaryBatches).Mul(math.NewIntFromUint64(batches - 1))
}
