package keeper

import (
	"time"

	"cosmossdk.io/math"
	"github.com/hashicorp/go-metrics"

	"github.com/zxnprotocol/zxn/x/burnmint/types"
)

// Metric keys.
const (
	MetricKeyBurnBatches   = "burn_batches"
	MetricKeyBurnCredit    = "burn_credit"
	MetricKeyActiveCycles  = "active_cycles"
	MetricKeySettledTokens = "settled_tokens"
	MetricKeySettlements   = "settlements"
)

func recordBurn(token string, batches uint64, credit math.Int) {
	labels := []metrics.Label{{Name: "token", Value: token}}
	metrics.IncrCounterWithLabels([]string{types.ModuleName, MetricKeyBurnBatches}, float32(batches), labels)
	metrics.IncrCounterWithLabels([]string{types.ModuleName, MetricKeyBurnCredit}, toFloat32(credit), labels)
}

func setActiveCycles(count uint64) {
	metrics.SetGauge([]string{types.ModuleName, MetricKeyActiveCycles}, float32(count))
}

func recordSettlement(amount math.Int) {
	metrics.IncrCounter([]string{types.ModuleName, MetricKeySettlements}, 1)
	// whole tokens keep the float32 counter within precision
	metrics.IncrCounter([]string{types.ModuleName, MetricKeySettledTokens}, toFloat32(amount.Quo(types.Tokens(1))))
}

func measureSince(op string, start time.Time) {
	metrics.MeasureSince([]string{types.ModuleName, op}, start)
}

func toFloat32(v math.Int) float32 {
	f, _ := v.BigInt().Float64()
	return float32(f)
}
