package ledger

import (
	"fmt"
	"math/rand"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"SpinLedger/internal/model"
)

func appendAll(t *testing.T, e *Engine, raws ...string) {
	t.Helper()
	for _, raw := range raws {
		idx, err := e.Append(raw)
		require.NoError(t, err)
		require.Equal(t, e.Len()-1, idx)
	}
}

func deltaStrings(ds []model.Delta) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.String()
	}
	return out
}

func entryStrings(vs []decimal.Decimal) []string {
	out := make([]string, len(vs))
	for i, v := range vs {
		out[i] = v.String()
	}
	return out
}

type state struct {
	entries     []string
	counts      []int
	deltas      []string
	checkpoints []int
}

func capture(e *Engine) state {
	return state{
		entries:     entryStrings(e.Entries()),
		counts:      e.CountsSinceCheckpoint(),
		deltas:      deltaStrings(e.Deltas()),
		checkpoints: e.Checkpoints(),
	}
}

func TestEngine_AppendScenario(t *testing.T) {
	e := New()
	for i, raw := range []string{"10.0", "12.5", "9.0"} {
		idx, err := e.Append(raw)
		require.NoError(t, err)
		assert.Equal(t, i, idx)
	}

	assert.Equal(t, []string{"10", "12.5", "9"}, entryStrings(e.Entries()))
	assert.Equal(t, []string{model.DeltaPlaceholder, "2.5", "-3.5"}, deltaStrings(e.Deltas()))
	assert.False(t, e.Deltas()[0].Valid)
	assert.Equal(t, []int{1, 2, 3}, e.CountsSinceCheckpoint())
}

func TestEngine_ToggleScenario(t *testing.T) {
	e := New()
	appendAll(t, e, "10.0", "12.5", "9.0")

	require.NoError(t, e.ToggleCheckpoint(1))
	assert.True(t, e.IsCheckpoint(1))
	assert.Equal(t, []int{1, 2, 1}, e.CountsSinceCheckpoint())
	assert.Equal(t, []string{model.DeltaPlaceholder, "2.5", "-3.5"}, deltaStrings(e.Deltas()))
}

func TestEngine_EditScenario(t *testing.T) {
	e := New()
	appendAll(t, e, "10.0", "12.5", "9.0")
	require.NoError(t, e.ToggleCheckpoint(1))
	countsBefore := e.CountsSinceCheckpoint()

	require.NoError(t, e.Edit(0, "8.0"))

	assert.Equal(t, []string{"8", "12.5", "9"}, entryStrings(e.Entries()))
	assert.Equal(t, []string{model.DeltaPlaceholder, "4.5", "-3.5"}, deltaStrings(e.Deltas()))
	assert.Equal(t, countsBefore, e.CountsSinceCheckpoint())
}

func TestEngine_AppendAfterCheckpoint(t *testing.T) {
	e := New()
	appendAll(t, e, "1", "2", "3")
	require.NoError(t, e.ToggleCheckpoint(0))

	_, err := e.Append("4")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 2, 3}, e.CountsSinceCheckpoint())

	// A checkpoint on the last entry resets the distance of the next append.
	require.NoError(t, e.ToggleCheckpoint(3))
	_, err = e.Append("5")
	require.NoError(t, err)
	assert.Equal(t, []int{1, 1, 2, 3, 1}, e.CountsSinceCheckpoint())
}

func TestEngine_RetroactiveToggleMatchesAppendRule(t *testing.T) {
	// Toggling an early index after later appends must give the same counts
	// as if the checkpoint had been set before those appends.
	late := New()
	appendAll(t, late, "0", "1", "2", "3", "4")
	require.NoError(t, late.ToggleCheckpoint(1))

	early := New()
	appendAll(t, early, "0", "1")
	require.NoError(t, early.ToggleCheckpoint(1))
	appendAll(t, early, "2", "3", "4")

	assert.Equal(t, early.CountsSinceCheckpoint(), late.CountsSinceCheckpoint())
	assert.Equal(t, []int{1, 2, 1, 2, 3}, late.CountsSinceCheckpoint())
}

func TestEngine_ToggleTwiceRestoresCounts(t *testing.T) {
	e := New()
	appendAll(t, e, "5", "7", "9", "11", "13")
	require.NoError(t, e.ToggleCheckpoint(3))
	before := e.CountsSinceCheckpoint()

	for _, idx := range []int{0, 2, 3, 4} {
		require.NoError(t, e.ToggleCheckpoint(idx))
		require.NoError(t, e.ToggleCheckpoint(idx))
		assert.Equal(t, before, e.CountsSinceCheckpoint(), "index %d", idx)
	}
}

func TestEngine_OutOfRangeLeavesStateUnchanged(t *testing.T) {
	e := New()
	appendAll(t, e, "10.0", "12.5", "9.0")
	require.NoError(t, e.ToggleCheckpoint(1))
	before := capture(e)

	for _, idx := range []int{-1, 3, 100} {
		err := e.Edit(idx, "1.0")
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		err = e.ToggleCheckpoint(idx)
		assert.ErrorIs(t, err, ErrIndexOutOfRange)
		assert.False(t, e.IsCheckpoint(idx))
	}
	assert.Equal(t, before, capture(e))
}

func TestEngine_EditChecksIndexBeforeValue(t *testing.T) {
	e := New()
	err := e.Edit(0, "not a number")
	assert.ErrorIs(t, err, ErrIndexOutOfRange)
	assert.NotErrorIs(t, err, ErrInvalidValue)
}

func TestEngine_InvalidValueLeavesStateUnchanged(t *testing.T) {
	e := New()
	appendAll(t, e, "3", "4")
	before := capture(e)

	_, err := e.Append("-1")
	assert.ErrorIs(t, err, ErrInvalidValue)
	err = e.Edit(1, "abc")
	assert.ErrorIs(t, err, ErrInvalidValue)

	assert.Equal(t, before, capture(e))
}

func TestEngine_ToggleOnEmptyLedger(t *testing.T) {
	e := New()
	assert.ErrorIs(t, e.ToggleCheckpoint(0), ErrIndexOutOfRange)
	assert.Empty(t, e.Checkpoints())
}

func TestEngine_Snapshot(t *testing.T) {
	e := New()
	appendAll(t, e, "10.0", "12.5", "9.0")
	require.NoError(t, e.ToggleCheckpoint(1))

	snap := e.Snapshot()
	require.Len(t, snap.Rows, 3)
	assert.Equal(t, []int{1}, snap.Checkpoints)
	row := snap.Rows[2]
	assert.Equal(t, 2, row.Index)
	assert.Equal(t, "9", row.Value.String())
	assert.Equal(t, 1, row.CountSinceCheckpoint)
	assert.True(t, row.Delta.Valid)
	assert.Equal(t, "-3.5", row.Delta.String())
	assert.False(t, row.Checkpoint)
	assert.True(t, snap.Rows[1].Checkpoint)
	assert.False(t, snap.TakenAt.IsZero())
}

func TestEngine_AccessorsReturnCopies(t *testing.T) {
	e := New()
	appendAll(t, e, "1", "2")

	entries := e.Entries()
	entries[0] = decimal.NewFromInt(99)
	counts := e.CountsSinceCheckpoint()
	counts[0] = 99

	assert.Equal(t, []string{"1", "2"}, entryStrings(e.Entries()))
	assert.Equal(t, []int{1, 2}, e.CountsSinceCheckpoint())
}

func TestEngine_Summary(t *testing.T) {
	e := New()
	assert.Equal(t, model.Summary{}, e.Summary())

	appendAll(t, e, "10", "20", "0", "30")
	require.NoError(t, e.ToggleCheckpoint(1))

	s := e.Summary()
	assert.Equal(t, 4, s.Entries)
	assert.Equal(t, 1, s.Checkpoints)
	assert.Equal(t, "15", s.Mean.String())
	assert.Equal(t, "30", s.High.String())
	assert.Equal(t, "0", s.Low.String())
	assert.Equal(t, "30", s.LastValue.String())
	assert.Equal(t, 2, s.LongestRun)
	assert.Equal(t, 2, s.CurrentRun)
}

func TestEngine_ValueAt(t *testing.T) {
	e := New()
	appendAll(t, e, " 12.35 ", ".5")

	v, ok := e.ValueAt(0)
	require.True(t, ok)
	assert.Equal(t, "12.35", v.String())
	v, ok = e.ValueAt(1)
	require.True(t, ok)
	assert.Equal(t, "0.5", v.String())

	for _, idx := range []int{-1, 2} {
		_, ok := e.ValueAt(idx)
		assert.False(t, ok, "index %d", idx)
	}
}

func TestEngine_HalfTenthDeltasRoundAwayFromZero(t *testing.T) {
	tests := []struct {
		prev, cur string
		want      string
	}{
		{"12.3", "12.35", "0.1"},
		{"12.35", "12.3", "-0.1"},
		{"1.1", "1.15", "0.1"},
		{"2.2", "2.25", "0.1"},
		{"0.3", "0.35", "0.1"},
		{"0.35", "0.3", "-0.1"},
		{"7.12", "7.16", "0.0"},
	}
	for _, tt := range tests {
		e := New()
		appendAll(t, e, tt.prev, tt.cur)
		assert.Equal(t, tt.want, e.Deltas()[1].String(), "%s -> %s", tt.prev, tt.cur)

		// The same pair reached through an edit rounds identically.
		edited := New()
		appendAll(t, edited, tt.prev, "0")
		require.NoError(t, edited.Edit(1, tt.cur))
		assert.Equal(t, tt.want, edited.Deltas()[1].String(), "edit %s -> %s", tt.prev, tt.cur)
	}
}

// hundredths formats h/100 with two fractional digits.
func hundredths(h int) string {
	return fmt.Sprintf("%d.%02d", h/100, h%100)
}

// expectedDelta rounds the difference of two hundredth counts to tenths,
// half away from zero, using integer arithmetic only.
func expectedDelta(prev, cur int) string {
	diff := cur - prev
	sign := ""
	if diff < 0 {
		sign = "-"
		diff = -diff
	}
	tenths := (diff + 5) / 10
	if tenths == 0 {
		sign = ""
	}
	return fmt.Sprintf("%s%d.%d", sign, tenths/10, tenths%10)
}

func TestExpectedDelta(t *testing.T) {
	assert.Equal(t, "0.1", expectedDelta(1230, 1235))
	assert.Equal(t, "-0.1", expectedDelta(1235, 1230))
	assert.Equal(t, "0.0", expectedDelta(1235, 1231))
	assert.Equal(t, "-3.5", expectedDelta(1250, 900))
	assert.Equal(t, "36.0", expectedDelta(0, 3600))
}

// TestEngine_RandomOperations checks the derived columns against a brute
// force model after every operation of a seeded random walk.
func TestEngine_RandomOperations(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	e := New()
	checkpoints := map[int]bool{}
	var values []int

	for step := 0; step < 400; step++ {
		n := len(values)
		switch op := rng.Intn(3); {
		case op == 0 || n == 0:
			h := rng.Intn(3700)
			idx, err := e.Append(hundredths(h))
			require.NoError(t, err)
			require.Equal(t, n, idx)
			values = append(values, h)
		case op == 1:
			k := rng.Intn(n)
			before := deltaStrings(e.Deltas())
			h := rng.Intn(3700)
			require.NoError(t, e.Edit(k, hundredths(h)))
			values[k] = h
			after := deltaStrings(e.Deltas())
			for i := range after {
				if i == k || i == k+1 {
					continue
				}
				require.Equal(t, before[i], after[i], "edit at %d changed delta %d", k, i)
			}
		default:
			k := rng.Intn(n)
			require.NoError(t, e.ToggleCheckpoint(k))
			checkpoints[k] = !checkpoints[k]
		}

		entries := e.Entries()
		counts := e.CountsSinceCheckpoint()
		deltas := e.Deltas()
		require.Len(t, entries, len(values))
		require.Len(t, counts, len(values))
		require.Len(t, deltas, len(values))

		for i := range values {
			require.True(t, entries[i].Equal(decimal.New(int64(values[i]), -2)),
				"step %d index %d: entry %s, want %s", step, i, entries[i], hundredths(values[i]))

			last := -1
			for c := range checkpoints {
				if checkpoints[c] && c < i && c > last {
					last = c
				}
			}
			require.Equal(t, i-last, counts[i], "step %d index %d", step, i)
			require.GreaterOrEqual(t, counts[i], 1)
			if i == 0 {
				require.False(t, deltas[0].Valid)
				continue
			}
			require.True(t, deltas[i].Valid)
			require.Equal(t, expectedDelta(values[i-1], values[i]), deltas[i].String(),
				"step %d index %d: %s -> %s", step, i, hundredths(values[i-1]), hundredths(values[i]))
		}
	}
}
