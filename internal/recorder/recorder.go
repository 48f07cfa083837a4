package recorder

import (
	"github.com/shopspring/decimal"

	"SpinLedger/internal/model"
)

// OperationEvent records one mutating call against the ledger, successful or not.
type OperationEvent struct {
	SessionID string
	Kind      model.OperationKind
	Index     int
	Raw       string          // raw input for APPEND and EDIT, empty for TOGGLE
	Value     decimal.Decimal // stored value after a successful APPEND or EDIT
	Err       string          // error text, empty on success
}

// SummaryEvent records periodic session statistics.
type SummaryEvent struct {
	SessionID string
	Summary   model.Summary
}

// Recorder writes the session journal. Journals are write-only: nothing is
// ever loaded back into a session.
type Recorder interface {
	RecordOperation(evt *OperationEvent) error
	RecordSummary(evt *SummaryEvent) error
	Close() error
}
