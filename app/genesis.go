package app

import (
	"encoding/json"
	"os"
	"path/filepath"

	errorsmod "cosmossdk.io/errors"
	"cosmossdk.io/math"

	apperrors "github.com/zxnprotocol/zxn/app/errors"
	burnminttypes "github.com/zxnprotocol/zxn/x/burnmint/types"
	tokentypes "github.com/zxnprotocol/zxn/x/token/types"
)

// Default token denominations.
const (
	PrimaryDenom   = "xen"
	SecondaryDenom = "dxn"
	OutputDenom    = "zxn"
)

// GenesisState seeds the three token ledgers and the emission schedule.
type GenesisState struct {
	Primary   tokentypes.GenesisState    `json:"primary"`
	Secondary tokentypes.GenesisState    `json:"secondary"`
	Output    tokentypes.GenesisState    `json:"output"`
	BurnMint  burnminttypes.GenesisState `json:"burnmint"`
}

// DefaultGenesis returns the default schedule with empty input ledgers. The
// output token is capped at the emission cap and minted only by the engine.
func DefaultGenesis() *GenesisState {
	burnmint := burnminttypes.DefaultGenesis()
	return &GenesisState{
		Primary:   *tokentypes.DefaultGenesis(PrimaryDenom),
		Secondary: *tokentypes.DefaultGenesis(SecondaryDenom),
		Output: tokentypes.GenesisState{
			Params: tokentypes.NewParams(OutputDenom, burnmint.Params.EmissionCap, burnminttypes.ModuleAccount),
		},
		BurnMint: *burnmint,
	}
}

// Validate performs basic validation of every section and checks that the
// output token can only ever be minted by the engine, up to the cap.
func (gs GenesisState) Validate() error {
	for name, token := range map[string]tokentypes.GenesisState{
		"primary":   gs.Primary,
		"secondary": gs.Secondary,
		"output":    gs.Output,
	} {
		if err := token.Validate(); err != nil {
			return errorsmod.Wrapf(apperrors.ErrInvalidGenesis, "%s: %v", name, err)
		}
	}
	if err := gs.BurnMint.Validate(); err != nil {
		return errorsmod.Wrapf(apperrors.ErrInvalidGenesis, "burnmint: %v", err)
	}

	if gs.Output.Params.Minter != burnminttypes.ModuleAccount {
		return errorsmod.Wrapf(apperrors.ErrInvalidGenesis, "output minter must be %s", burnminttypes.ModuleAccount)
	}
	if !gs.Output.Params.Cap.Equal(gs.BurnMint.Params.EmissionCap) {
		return errorsmod.Wrapf(apperrors.ErrInvalidGenesis, "output cap %s differs from emission cap %s",
			gs.Output.Params.Cap, gs.BurnMint.Params.EmissionCap)
	}
	if len(gs.Output.Balances) > 0 {
		return errorsmod.Wrap(apperrors.ErrInvalidGenesis, "output token must start with zero supply")
	}
	if gs.Primary.Params.Minter != "" || gs.Secondary.Params.Minter != "" {
		return errorsmod.Wrap(apperrors.ErrInvalidGenesis, "input tokens cannot be minted")
	}
	return nil
}

// AddBalance credits amount of the primary and secondary tokens to address.
func (gs *GenesisState) AddBalance(address string, primary, secondary math.Int) {
	if primary.IsPositive() {
		gs.Primary.Balances = append(gs.Primary.Balances, tokentypes.Balance{Address: address, Amount: primary})
	}
	if secondary.IsPositive() {
		gs.Secondary.Balances = append(gs.Secondary.Balances, tokentypes.Balance{Address: address, Amount: secondary})
	}
}

// LoadGenesis reads a genesis file.
func LoadGenesis(path string) (*GenesisState, error) {
	bz, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var gs GenesisState
	if err := json.Unmarshal(bz, &gs); err != nil {
		return nil, errorsmod.Wrapf(apperrors.ErrInvalidGenesis, "failed to decode %s: %v", path, err)
	}
	return &gs, nil
}

// SaveAs writes the genesis file to path, creating parent directories.
func (gs GenesisState) SaveAs(path string) error {
	bz, err := json.MarshalIndent(gs, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, bz, 0o644)
}
