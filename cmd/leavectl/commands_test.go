package main

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"shift-leave-bot/internal/config"
	"shift-leave-bot/internal/models"
)

func testConfig(t *testing.T) *config.Config {
	t.Helper()
	dir := t.TempDir()
	anchor := time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC)

	return &config.Config{
		LedgerBackend:    config.BackendXLSX,
		WorkbookPath:     filepath.Join(dir, "holiday_book.xlsx"),
		SheetName:        "holiday",
		AuditSheetName:   "audit",
		PlanningYear:     2024,
		RedGreenAnchor:   anchor,
		BlueYellowAnchor: anchor,
		RosterFile:       filepath.Join(dir, "roster.json"),
	}
}

func run(t *testing.T, cfg *config.Config, args ...string) (string, error) {
	t.Helper()
	root := newRootCmd(func() (*config.Config, error) { return cfg, nil })

	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestLeavectlBookAndCancel(t *testing.T) {
	cfg := testConfig(t)
	roster := `{"employees": [{"name": "Jane Doe", "shift": "Red"}, {"name": "Ann Lee", "shift": "Blue"}]}`
	if err := os.WriteFile(cfg.RosterFile, []byte(roster), 0o600); err != nil {
		t.Fatalf("write roster: %v", err)
	}

	if _, err := run(t, cfg, "init-workbook"); err != nil {
		t.Fatalf("init-workbook: %v", err)
	}
	out, err := run(t, cfg, "load-roster")
	if err != nil || !strings.Contains(out, "added: 2") {
		t.Fatalf("load-roster: %v %q", err, out)
	}

	out, err = run(t, cfg, "book", "--name", "Jane Doe", "--shift", "Red", "--from", "2024-01-04", "--to", "2024-01-11")
	if err != nil {
		t.Fatalf("book: %v", err)
	}
	if !strings.Contains(out, `"outcome": "approved"`) {
		t.Fatalf("unexpected book output: %s", out)
	}

	_, err = run(t, cfg, "book", "--name", "Jane Doe", "--shift", "Blue", "--from", "2024-01-12")
	if !errors.Is(err, models.ErrInvalidShift) {
		t.Fatalf("expected ErrInvalidShift, got %v", err)
	}

	out, err = run(t, cfg, "cancel", "--name", "Jane Doe", "--shift", "Red", "--from", "2024-01-04", "--to", "2024-01-05")
	if err != nil {
		t.Fatalf("cancel: %v", err)
	}
	if !strings.Contains(out, `"cancellation_made": true`) {
		t.Fatalf("unexpected cancel output: %s", out)
	}

	out, err = run(t, cfg, "history", "jane doe")
	if err != nil {
		t.Fatalf("history: %v", err)
	}
	if !strings.Contains(out, "отмена") {
		t.Fatalf("unexpected history: %s", out)
	}
}

func TestLeavectlWorkday(t *testing.T) {
	cfg := testConfig(t)
	if _, err := run(t, cfg, "init-workbook"); err != nil {
		t.Fatalf("init-workbook: %v", err)
	}

	out, err := run(t, cfg, "workday", "yellow", "2024-01-08")
	if err != nil {
		t.Fatalf("workday: %v", err)
	}
	if strings.TrimSpace(out) != "Yellow 2024-01-08: workday" {
		t.Fatalf("unexpected output: %q", out)
	}

	if _, err := run(t, cfg, "workday", "Purple", "2024-01-08"); err == nil {
		t.Fatal("expected error for unknown shift")
	}
	if _, err := run(t, cfg, "book", "--name", "Jane Doe"); err == nil {
		t.Fatal("expected error for missing flags")
	}
}
