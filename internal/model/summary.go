package model

import "github.com/shopspring/decimal"

// Summary holds aggregate statistics over the current ledger.
type Summary struct {
	Entries     int
	Checkpoints int
	Mean        decimal.Decimal
	High        decimal.Decimal
	Low         decimal.Decimal
	LastValue   decimal.Decimal
	LongestRun  int // largest count since checkpoint seen in the ledger
	CurrentRun  int // count since checkpoint of the last entry
}
