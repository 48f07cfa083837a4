package session

import (
	"fmt"
	"log"

	"SpinLedger/internal/ledger"
	"SpinLedger/internal/model"
	"SpinLedger/internal/recorder"

	"github.com/google/uuid"
	"github.com/robfig/cron/v3"
)

// Session binds one ledger engine to its journal and summary schedule.
type Session struct {
	ID       string
	Engine   *ledger.Engine
	Recorder recorder.Recorder
	Cron     *cron.Cron
}

// New creates a Session with a fresh ID.
func New(engine *ledger.Engine, rec recorder.Recorder) *Session {
	return &Session{
		ID:       uuid.NewString(),
		Engine:   engine,
		Recorder: rec,
		Cron:     cron.New(cron.WithSeconds()),
	}
}

// Append adds a value to the ledger and journals the call.
func (s *Session) Append(raw string) (int, error) {
	idx, err := s.Engine.Append(raw)
	evt := &recorder.OperationEvent{Kind: model.OpAppend, Index: idx, Raw: raw}
	if err != nil {
		evt.Index = s.Engine.Len()
	}
	s.recordOperation(evt, err)
	return idx, err
}

// Edit overwrites an entry and journals the call.
func (s *Session) Edit(index int, raw string) error {
	err := s.Engine.Edit(index, raw)
	s.recordOperation(&recorder.OperationEvent{Kind: model.OpEdit, Index: index, Raw: raw}, err)
	return err
}

// ToggleCheckpoint flips a checkpoint and journals the call.
func (s *Session) ToggleCheckpoint(index int) error {
	err := s.Engine.ToggleCheckpoint(index)
	s.recordOperation(&recorder.OperationEvent{Kind: model.OpToggle, Index: index}, err)
	return err
}

// Snapshot returns the engine snapshot stamped with the session ID.
func (s *Session) Snapshot() model.Snapshot {
	snap := s.Engine.Snapshot()
	snap.SessionID = s.ID
	return snap
}

// Summary returns the current session statistics.
func (s *Session) Summary() model.Summary {
	return s.Engine.Summary()
}

// RegisterSummary schedules periodic summary rows in the journal.
func (s *Session) RegisterSummary(spec string) error {
	if _, err := s.Cron.AddFunc(spec, s.RecordSummaryNow); err != nil {
		return fmt.Errorf("register summary task: %w", err)
	}
	return nil
}

// Start starts the cron scheduler.
func (s *Session) Start() {
	s.Cron.Start()
	log.Println("[INFO] summary scheduler started")
}

// Stop stops the cron scheduler and writes a final summary row.
func (s *Session) Stop() {
	<-s.Cron.Stop().Done()
	s.RecordSummaryNow()
	log.Println("[INFO] summary scheduler stopped")
}

// RecordSummaryNow writes the current statistics to the journal.
func (s *Session) RecordSummaryNow() {
	if err := s.Recorder.RecordSummary(&recorder.SummaryEvent{
		SessionID: s.ID,
		Summary:   s.Engine.Summary(),
	}); err != nil {
		log.Printf("[ERROR] record summary: %v", err)
	}
}

func (s *Session) recordOperation(evt *recorder.OperationEvent, opErr error) {
	evt.SessionID = s.ID
	if opErr != nil {
		evt.Err = opErr.Error()
		log.Printf("[WARN] %s rejected: %v", evt.Kind, opErr)
	} else if evt.Kind != model.OpToggle {
		// Journal the value as the engine stored it.
		if v, ok := s.Engine.ValueAt(evt.Index); ok {
			evt.Value = v
		}
	}
	if err := s.Recorder.RecordOperation(evt); err != nil {
		log.Printf("[ERROR] record operation: %v", err)
	}
}
