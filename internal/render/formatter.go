package render

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"SpinLedger/internal/model"
)

// CheckpointMarker is shown in the JP column of checkpoint rows.
const CheckpointMarker = "JP"

// FormatValue renders an entry with at least one fractional digit. Finer
// precision typed by the user is kept.
func FormatValue(v decimal.Decimal) string {
	if v.Exponent() < -1 {
		return v.String()
	}
	return v.StringFixed(1)
}

// FormatDelta renders a delta with one fractional digit, or the placeholder
// for the first entry.
func FormatDelta(d model.Delta) string {
	return d.String()
}

// DeltaTrend classifies a delta as gain, loss or neutral. A value that
// rounds to 0.0 is neutral.
func DeltaTrend(d model.Delta) model.Trend {
	if !d.Valid {
		return model.TrendNone
	}
	switch d.Value.Round(1).Sign() {
	case 0:
		return model.TrendNeutral
	case -1:
		return model.TrendLoss
	default:
		return model.TrendGain
	}
}

// FormatCheckpoint returns the JP column text for a row.
func FormatCheckpoint(checkpoint bool) string {
	if checkpoint {
		return CheckpointMarker
	}
	return ""
}

// FormatSummary formats session statistics as a short multi-line report.
func FormatSummary(s model.Summary) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("Spins: %d | JP: %d\n", s.Entries, s.Checkpoints))
	if s.Entries == 0 {
		b.WriteString("No entries yet")
		return b.String()
	}
	b.WriteString(fmt.Sprintf("Last: %s | Mean: %s | High: %s | Low: %s\n",
		FormatValue(s.LastValue), s.Mean.StringFixed(2), FormatValue(s.High), FormatValue(s.Low)))
	b.WriteString(fmt.Sprintf("Since JP: %d | Longest: %d", s.CurrentRun, s.LongestRun))
	return b.String()
}

// FormatSnapshotHeader titles an exported or printed snapshot.
func FormatSnapshotHeader(snap model.Snapshot) string {
	return fmt.Sprintf("SpinLedger snapshot | %s | %d rows",
		snap.TakenAt.Format(time.DateTime), len(snap.Rows))
}
