package types

import "cosmossdk.io/collections"

const (
	// ModuleName defines the module name
	ModuleName = "token"
)

var (
	ParamsKey        = collections.NewPrefix(0)
	BalancesPrefix   = collections.NewPrefix(1)
	AllowancesPrefix = collections.NewPrefix(2)
	SupplyKey        = collections.NewPrefix(3)
)
