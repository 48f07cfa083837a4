package model

// Trend classifies a delta for styling.
type Trend string

const (
	TrendNone    Trend = "NONE"
	TrendNeutral Trend = "NEUTRAL"
	TrendGain    Trend = "GAIN"
	TrendLoss    Trend = "LOSS"
)

// OperationKind names a mutating ledger operation.
type OperationKind string

const (
	OpAppend OperationKind = "APPEND"
	OpEdit   OperationKind = "EDIT"
	OpToggle OperationKind = "TOGGLE"
)
