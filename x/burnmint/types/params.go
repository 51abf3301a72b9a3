package types

import (
	"time"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"
)

// Params are the fixed parameters of the emission schedule.
type Params struct {
	CycleLengthSeconds  uint64   `json:"cycle_length_seconds"`
	PrimaryBatchSize    math.Int `json:"primary_batch_size"`
	SecondaryBatchSize  math.Int `json:"secondary_batch_size"`
	MaxPrimaryBatches   uint64   `json:"max_primary_batches"`
	MaxSecondaryBatches uint64   `json:"max_secondary_batches"`
	MaxActiveCycles     uint64   `json:"max_active_cycles"`
	EmissionCap         math.Int `json:"emission_cap"`
}

// DefaultParams returns the default emission schedule.
func DefaultParams() Params {
	return Params{
		CycleLengthSeconds:  uint64(DefaultCycleLength / time.Second),
		PrimaryBatchSize:    Tokens(PrimaryTokensPerBatch),
		SecondaryBatchSize:  Tokens(SecondaryTokensPerBatch),
		MaxPrimaryBatches:   DefaultMaxPrimaryBatches,
		MaxSecondaryBatches: DefaultMaxSecondaryBatches,
		MaxActiveCycles:     DefaultMaxActiveCycles,
		EmissionCap:         Tokens(EmissionCapTokens),
	}
}

// CycleLength returns the cycle length as a duration.
func (p Params) CycleLength() time.Duration {
	return time.Duration(p.CycleLengthSeconds) * time.Second
}

// EmissionPerActiveCycle is the amount shared among the participants of every
// active cycle.
func (p Params) EmissionPerActiveCycle() math.Int {
	return p.EmissionCap.Quo(math.NewIntFromUint64(p.MaxActiveCycles))
}

// Validate returns an error if the params are inconsistent.
func (p Params) Validate() error {
	if p.CycleLengthSeconds == 0 {
		return errorsmod.Wrap(ErrInvalidParams, "cycle length must be positive")
	}
	if p.CycleLengthSeconds > uint64(maxCycleLength/time.Second) {
		return errorsmod.Wrapf(ErrInvalidParams, "cycle length must not exceed %s", maxCycleLength)
	}
	if err := validatePositive("primary batch size", p.PrimaryBatchSize); err != nil {
		return err
	}
	if err := validatePositive("secondary batch size", p.SecondaryBatchSize); err != nil {
		return err
	}
	if p.MaxPrimaryBatches < MinBatches {
		return errorsmod.Wrapf(ErrInvalidParams, "max primary batches must be at least %d", MinBatches)
	}
	if p.MaxSecondaryBatches < MinBatches {
		return errorsmod.Wrapf(ErrInvalidParams, "max secondary batches must be at least %d", MinBatches)
	}
	if p.MaxActiveCycles == 0 {
		return errorsmod.Wrap(ErrInvalidParams, "max active cycles must be positive")
	}
	if err := validatePositive("emission cap", p.EmissionCap); err != nil {
		return err
	}
	if !p.EmissionPerActiveCycle().IsPositive() {
		return errorsmod.Wrapf(ErrInvalidParams, "emission cap %s too small for %d active cycles", p.EmissionCap, p.MaxActiveCycles)
	}
	return nil
}

// maxCycleLength keeps cycle arithmetic within time.Duration.
const maxCycleLength = 100 * 365 * 24 * time.Hour

func validatePositive(name string, v math.Int) error {
	if v.IsNil() || !v.IsPositive() {
		return errorsmod.Wrapf(ErrInvalidParams, "%s must be positive, got %v", name, v)
	}
	return nil
}
