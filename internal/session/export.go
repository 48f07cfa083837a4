package session

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"time"

	"SpinLedger/internal/model"
	"SpinLedger/internal/render"
)

// Export writes the current snapshot as indented JSON into dir and returns
// the file path. Exports are never read back.
func (s *Session) Export(dir string) (string, error) {
	snap := s.Snapshot()
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("create export dir: %w", err)
	}
	path := filepath.Join(dir, exportFileName(s.ID, snap.TakenAt))
	if err := SaveSnapshot(path, &snap); err != nil {
		return "", err
	}
	log.Printf("[INFO] exported %s to %s", render.FormatSnapshotHeader(snap), path)
	return path, nil
}

// SaveSnapshot writes a snapshot to a JSON file.
func SaveSnapshot(filePath string, snap *model.Snapshot) error {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal snapshot: %w", err)
	}
	if err := os.WriteFile(filePath, data, 0644); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

func exportFileName(sessionID string, at time.Time) string {
	short := sessionID
	if len(short) > 8 {
		short = short[:8]
	}
	return fmt.Sprintf("spinledger-%s-%d.json", short, at.UnixMilli())
}
