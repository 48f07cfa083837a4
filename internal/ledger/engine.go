package ledger

import (
	"fmt"
	"sort"
	"sync"
	"time"

	"github.com/shopspring/decimal"

	"SpinLedger/internal/calculator"
	"SpinLedger/internal/model"
)

// Engine owns the ledger, the checkpoint set and both derived columns.
// Every mutation either completes fully or leaves all state untouched.
//
// All exported methods are safe for concurrent use.
type Engine struct {
	mu          sync.Mutex
	entries     []decimal.Decimal
	checkpoints map[int]struct{}
	counts      []int
	deltas      []model.Delta
}

// New returns an empty Engine.
func New() *Engine {
	return &Engine{checkpoints: make(map[int]struct{})}
}

// Append parses raw and adds it to the end of the ledger, returning its index.
func (e *Engine) Append(raw string) (int, error) {
	v, err := ParseValue(raw)
	if err != nil {
		return 0, err
	}

	e.mu.Lock()
	defer e.mu.Unlock()

	idx := len(e.entries)
	e.entries = append(e.entries, v)
	// The new index cannot be a checkpoint yet, so its distance follows from
	// the set as it stood before the append.
	e.counts = append(e.counts, calculator.CheckpointDistance(idx, e.isCheckpoint))
	e.deltas = append(e.deltas, calculator.DeltaAt(e.entries, idx))
	return idx, nil
}

// Edit overwrites the entry at index and recomputes the delta column.
func (e *Engine) Edit(index int, raw string) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkIndex(index); err != nil {
		return err
	}
	v, err := ParseValue(raw)
	if err != nil {
		return err
	}

	e.entries[index] = v
	e.deltas = calculator.Deltas(e.entries)
	return nil
}

// ToggleCheckpoint flips checkpoint membership of index and recomputes the
// distance column.
func (e *Engine) ToggleCheckpoint(index int) error {
	e.mu.Lock()
	defer e.mu.Unlock()

	if err := e.checkIndex(index); err != nil {
		return err
	}

	if _, ok := e.checkpoints[index]; ok {
		delete(e.checkpoints, index)
	} else {
		e.checkpoints[index] = struct{}{}
	}
	e.counts = calculator.CheckpointDistances(len(e.entries), e.isCheckpoint)
	return nil
}

// Len returns the number of entries.
func (e *Engine) Len() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.entries)
}

// Entries returns a copy of the ledger values.
func (e *Engine) Entries() []decimal.Decimal {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]decimal.Decimal(nil), e.entries...)
}

// ValueAt returns the stored value at index.
func (e *Engine) ValueAt(index int) (decimal.Decimal, bool) {
	e.mu.Lock()
	defer e.mu.Unlock()
	if index < 0 || index >= len(e.entries) {
		return decimal.Zero, false
	}
	return e.entries[index], true
}

// CountsSinceCheckpoint returns a copy of the distance column.
func (e *Engine) CountsSinceCheckpoint() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]int(nil), e.counts...)
}

// Deltas returns a copy of the delta column.
func (e *Engine) Deltas() []model.Delta {
	e.mu.Lock()
	defer e.mu.Unlock()
	return append([]model.Delta(nil), e.deltas...)
}

// IsCheckpoint reports whether index is a checkpoint. Out-of-range indices
// are never checkpoints.
func (e *Engine) IsCheckpoint(index int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.isCheckpoint(index)
}

// Checkpoints returns the checkpoint indices in ascending order.
func (e *Engine) Checkpoints() []int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.sortedCheckpoints()
}

// Snapshot returns all columns aligned by index.
func (e *Engine) Snapshot() model.Snapshot {
	e.mu.Lock()
	defer e.mu.Unlock()

	rows := make([]model.Row, len(e.entries))
	for i, v := range e.entries {
		rows[i] = model.Row{
			Index:                i,
			Value:                v,
			CountSinceCheckpoint: e.counts[i],
			Delta:                e.deltas[i],
			Checkpoint:           e.isCheckpoint(i),
		}
	}
	return model.Snapshot{
		Rows:        rows,
		Checkpoints: e.sortedCheckpoints(),
		TakenAt:     time.Now(),
	}
}

// Summary computes aggregate statistics over the ledger. An empty ledger
// yields a zero Summary.
func (e *Engine) Summary() model.Summary {
	e.mu.Lock()
	defer e.mu.Unlock()

	s := model.Summary{
		Entries:     len(e.entries),
		Checkpoints: len(e.checkpoints),
		LongestRun:  calculator.LongestRun(e.counts),
	}
	if len(e.entries) == 0 {
		return s
	}
	s.LastValue = e.entries[len(e.entries)-1]
	s.CurrentRun = e.counts[len(e.counts)-1]
	if mean, err := calculator.CalculateMean(e.entries); err == nil {
		s.Mean = mean
	}
	if high, low, err := calculator.CalculateRange(e.entries); err == nil {
		s.High, s.Low = high, low
	}
	return s
}

func (e *Engine) checkIndex(index int) error {
	if index < 0 || index >= len(e.entries) {
		return fmt.Errorf("%w: %d not in [0, %d)", ErrIndexOutOfRange, index, len(e.entries))
	}
	return nil
}

func (e *Engine) isCheckpoint(index int) bool {
	_, ok := e.checkpoints[index]
	return ok
}

func (e *Engine) sortedCheckpoints() []int {
	out := make([]int, 0, len(e.checkpoints))
	for c := range e.checkpoints {
		out = append(out, c)
	}
	sort.Ints(out)
	return out
}
