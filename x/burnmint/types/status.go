package types

import (
	"fmt"

	"cosmossdk.io/math"
)

// SettlementState is the progress of an account's primary reward settlement.
type SettlementState uint8

const (
	// NeverSettled accounts have not minted any reward yet.
	NeverSettled SettlementState = iota
	// SettledThrough accounts have minted every reward up to and including
	// SettlementStatus.Cycle.
	SettledThrough
)

// SettlementStatus replaces a nullable cursor.
type SettlementStatus struct {
	State SettlementState
	Cycle uint64
}

// NewSettledThrough returns the status of an account settled through cycle.
func NewSettledThrough(cycle uint64) SettlementStatus {
	return SettlementStatus{State: SettledThrough, Cycle: cycle}
}

// NextUnsettled returns the first cycle whose reward has not been settled.
func (s SettlementStatus) NextUnsettled() uint64 {
	if s.State == NeverSettled {
		return 0
	}
	return s.Cycle + 1
}

func (s SettlementStatus) String() string {
	if s.State == NeverSettled {
		return "never settled"
	}
	return fmt.Sprintf("settled through cycle %d", s.Cycle)
}

// ClaimState tracks the one-shot secondary pool claim.
type ClaimState uint8

const (
	Unclaimed ClaimState = iota
	Claimed
)

// SecondaryClaimStatus holds the claimed amount once the claim happened.
type SecondaryClaimStatus struct {
	State  ClaimState
	Amount math.Int
}

// IsClaimed reports whether the claim happened.
func (s SecondaryClaimStatus) IsClaimed() bool {
	return s.State == Claimed
}

func (s SecondaryClaimStatus) String() string {
	if s.State == Unclaimed {
		return "unclaimed"
	}
	return fmt.Sprintf("claimed %s", s.Amount)
}
