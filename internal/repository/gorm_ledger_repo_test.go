package repository

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"shift-leave-bot/internal/models"
)

func newTestGormLedger(t *testing.T) *GormLedgerRepository {
	t.Helper()

	db, err := OpenDatabase(filepath.Join(t.TempDir(), "leave.db"))
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	ledger, err := NewGormLedgerRepository(db, 2024)
	if err != nil {
		t.Fatalf("new ledger: %v", err)
	}
	t.Cleanup(func() { ledger.Close() })
	return ledger
}

func TestGormLedgerGrid(t *testing.T) {
	ledger := newTestGormLedger(t)

	for _, e := range []struct {
		name  string
		shift models.Shift
	}{{"Jane Doe", models.ShiftRed}, {"Ann Lee", models.ShiftGreen}} {
		if err := ledger.AddEmployee(e.name, e.shift); err != nil {
			t.Fatalf("add %s: %v", e.name, err)
		}
	}
	if err := ledger.AddEmployee("ann  lee", models.ShiftGreen); !errors.Is(err, ErrEmployeeExists) {
		t.Fatalf("expected ErrEmployeeExists, got %v", err)
	}

	names, err := ledger.ReadColumn(NameColumn)
	if err != nil {
		t.Fatalf("read names: %v", err)
	}
	if len(names) != 3 || names[HeaderRow] != NameHeader || names[2] != "Ann Lee" {
		t.Fatalf("unexpected names: %q", names)
	}

	row, found, _ := ledger.ReadEmployeeIndex("ANN LEE")
	if !found || row != 2 {
		t.Fatalf("expected Ann at row 2, got %d %v", row, found)
	}

	date := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	column, found, _ := ledger.FindColumnForDate(date)
	if !found || column != FirstDateColumn+60 {
		t.Fatalf("expected 1 Mar 2024 at column %d, got %d", FirstDateColumn+60, column)
	}

	if err := ledger.WriteCell(row, column, models.CellOff); err != nil {
		t.Fatalf("write: %v", err)
	}
	// Повторная запись обновляет ту же ячейку
	if err := ledger.WriteCell(row, column, models.CellLeave); err != nil {
		t.Fatalf("overwrite: %v", err)
	}

	values, err := ledger.ReadColumn(column)
	if err != nil {
		t.Fatalf("read column: %v", err)
	}
	if values[HeaderRow] != "01 Mar" || values[1] != "" || values[2] != models.CellLeave {
		t.Fatalf("unexpected column: %q", values)
	}

	if err := ledger.WriteCell(row, column, ""); err != nil {
		t.Fatalf("clear: %v", err)
	}
	values, _ = ledger.ReadColumn(column)
	if values[2] != "" {
		t.Fatalf("expected cleared cell, got %q", values[2])
	}

	if err := ledger.WriteCell(5, column, models.CellLeave); !errors.Is(err, ErrCellOutOfRange) {
		t.Fatalf("expected ErrCellOutOfRange, got %v", err)
	}
	if _, err := ledger.ReadColumn(FirstDateColumn + 366); !errors.Is(err, ErrCellOutOfRange) {
		t.Fatalf("expected ErrCellOutOfRange past the year, got %v", err)
	}
	if _, found, _ := ledger.FindColumnForDate(time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)); found {
		t.Fatal("2025 must not be found in a 2024 ledger")
	}
}

func TestGormLedgerAudit(t *testing.T) {
	ledger := newTestGormLedger(t)

	for i, name := range []string{"Jane Doe", "Ann Lee", "jane doe"} {
		err := ledger.AppendRecord(models.AuditRecord{
			RequestID: string(rune('a' + i)),
			Timestamp: time.Now(),
			Employee:  name,
			Action:    models.ActionBook,
			StartDate: time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC),
			EndDate:   time.Date(2024, time.January, 4, 0, 0, 0, 0, time.UTC),
			Outcome:   string(models.OutcomeDenied),
		})
		if err != nil {
			t.Fatalf("append: %v", err)
		}
	}

	records, err := ledger.RecordsFor("Jane Doe")
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(records) != 2 || records[0].RequestID != "a" || records[1].RequestID != "c" {
		t.Fatalf("unexpected records: %+v", records)
	}
}
