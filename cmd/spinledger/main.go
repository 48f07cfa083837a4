package main

import (
	"fmt"
	"log"
	"os"
	"path/filepath"

	"SpinLedger/internal/config"
	"SpinLedger/internal/ledger"
	"SpinLedger/internal/recorder"
	"SpinLedger/internal/session"
	"SpinLedger/internal/tui"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

type flags struct {
	configPath  string
	exportDir   string
	journalPath string
}

func newRootCmd() *cobra.Command {
	var f flags
	cmd := &cobra.Command{
		Use:   "spinledger",
		Short: "Record roulette results with rounds-since-JP and delta columns",
		Long: `SpinLedger records spin results in a terminal table. Each row shows the
rounds since the last JP checkpoint and the change from the previous spin.`,
		SilenceUsage: true,
		Args:         cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := loadConfig(cmd, f)
			if err != nil {
				return err
			}
			return run(cfg)
		},
	}

	defaultPath := "configs/config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		defaultPath = v
	}
	cmd.Flags().StringVar(&f.configPath, "config", defaultPath, "path to the YAML config file")
	cmd.Flags().StringVar(&f.exportDir, "export-dir", "", "directory for ctrl+s snapshot exports")
	cmd.Flags().StringVar(&f.journalPath, "journal", "", "SQLite journal path (empty disables the journal)")
	return cmd
}

func loadConfig(cmd *cobra.Command, f flags) (*config.Config, error) {
	cfg, err := config.Load(f.configPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("export-dir") {
		cfg.Export.Dir = f.exportDir
	}
	if cmd.Flags().Changed("journal") {
		cfg.Journal.SQLitePath = f.journalPath
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config validation: %w", err)
	}
	return cfg, nil
}

func run(cfg *config.Config) error {
	// The terminal belongs to the UI, so logs go to a file.
	logFile, err := tea.LogToFile(cfg.Log.File, "")
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	defer logFile.Close()
	log.SetFlags(log.LstdFlags | log.Lshortfile)
	log.Println("[INFO] SpinLedger starting...")

	// Init recorder
	var rec recorder.Recorder
	if cfg.Journal.SQLitePath != "" {
		sr, err := openJournal(cfg.Journal.SQLitePath)
		if err != nil {
			log.Printf("[WARN] init sqlite journal failed, using noop: %v", err)
			rec = recorder.NewNoopRecorder()
		} else {
			rec = sr
			defer sr.Close()
		}
	} else {
		rec = recorder.NewNoopRecorder()
	}

	sess := session.New(ledger.New(), rec)
	log.Printf("[INFO] session %s", sess.ID)
	if err := sess.RegisterSummary(cfg.Journal.SummaryCron); err != nil {
		return err
	}
	sess.Start()
	defer sess.Stop()

	p := tea.NewProgram(tui.New(sess, tui.Config{ExportDir: cfg.Export.Dir}), tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run ui: %w", err)
	}

	log.Println("[INFO] SpinLedger stopped")
	return nil
}

func openJournal(path string) (*recorder.SQLiteRecorder, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("create journal dir: %w", err)
		}
	}
	return recorder.NewSQLiteRecorder(path)
}
