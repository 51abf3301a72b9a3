package types

// Event types emitted by the keeper.
const (
	EventTypeBurnPrimary    = ModuleName + ".burn_primary"
	EventTypeBurnSecondary  = ModuleName + ".burn_secondary"
	EventTypeCycleActivated = ModuleName + ".cycle_activated"
	EventTypeSettle         = ModuleName + ".settle"
	EventTypeClaimSecondary = ModuleName + ".claim_secondary"
)

// Event attribute keys.
const (
	AttributeKeyAccount = "account"
	AttributeKeyCycle   = "cycle"
	AttributeKeyBatches = "batches"
	AttributeKeyAmount  = "amount"
	AttributeKeyCredit  = "credit"
	AttributeKeyCount   = "active_cycle_count"
	AttributeKeyThrough = "settled_through"
)
