package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeltaPlaceholder is rendered in place of the delta of the first entry.
const DeltaPlaceholder = "-"

// Delta is the signed difference between an entry and its predecessor,
// rounded to one decimal place. Valid is false for the first entry.
type Delta struct {
	Value decimal.Decimal `json:"value"`
	Valid bool            `json:"valid"`
}

// NoDelta is the sentinel stored at index 0.
var NoDelta = Delta{}

// String renders the delta with exactly one fractional digit.
func (d Delta) String() string {
	if !d.Valid {
		return DeltaPlaceholder
	}
	return d.Value.StringFixed(1)
}

// Row is one rendered line of the ledger table.
type Row struct {
	Index                int             `json:"index"`
	Value                decimal.Decimal `json:"value"`
	CountSinceCheckpoint int             `json:"count_since_checkpoint"`
	Delta                Delta           `json:"delta"`
	Checkpoint           bool            `json:"checkpoint"`
}

// Snapshot is a consistent copy of the ledger and its derived columns.
type Snapshot struct {
	SessionID   string    `json:"session_id,omitempty"`
	Rows        []Row     `json:"rows"`
	Checkpoints []int     `json:"checkpoints"`
	TakenAt     time.Time `json:"taken_at"`
}
