package repository

import (
	"errors"
	"path/filepath"
	"testing"
	"time"

	"shift-leave-bot/internal/models"
)

func openTestWorkbook(t *testing.T) (*XLSXLedger, string) {
	t.Helper()

	path := filepath.Join(t.TempDir(), "holiday_book.xlsx")
	if err := CreateWorkbook(path, "holiday", "audit", 2024); err != nil {
		t.Fatalf("create workbook: %v", err)
	}
	ledger, err := OpenXLSXLedger(path, "holiday", "audit", 2024)
	if err != nil {
		t.Fatalf("open workbook: %v", err)
	}
	return ledger, path
}

func TestXLSXLedgerLayout(t *testing.T) {
	ledger, _ := openTestWorkbook(t)
	defer ledger.Close()

	column, found, err := ledger.FindColumnForDate(time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC))
	if err != nil || !found || column != FirstDateColumn {
		t.Fatalf("expected 1 Jan at column %d, got %d %v %v", FirstDateColumn, column, found, err)
	}

	column, found, _ = ledger.FindColumnForDate(time.Date(2024, time.December, 31, 0, 0, 0, 0, time.UTC))
	if !found || column != FirstDateColumn+365 {
		t.Fatalf("expected 31 Dec 2024 at column %d, got %d", FirstDateColumn+365, column)
	}

	// Заголовок без года, поэтому другой год не ищется
	if _, found, _ := ledger.FindColumnForDate(time.Date(2023, time.December, 31, 0, 0, 0, 0, time.UTC)); found {
		t.Fatal("2023 must not be found in a 2024 ledger")
	}
}

func TestXLSXLedgerCellsPersist(t *testing.T) {
	ledger, path := openTestWorkbook(t)

	if err := ledger.AddEmployee("Jane Doe", models.ShiftRed); err != nil {
		t.Fatalf("add employee: %v", err)
	}
	if err := ledger.AddEmployee(" jane  DOE ", models.ShiftBlue); !errors.Is(err, ErrEmployeeExists) {
		t.Fatalf("expected ErrEmployeeExists, got %v", err)
	}
	if err := ledger.AddEmployee("Bob", models.ShiftUnknown); !errors.Is(err, models.ErrInvalidShift) {
		t.Fatalf("expected ErrInvalidShift, got %v", err)
	}

	row, found, err := ledger.ReadEmployeeIndex("jane doe")
	if err != nil || !found || row != 1 {
		t.Fatalf("expected Jane at row 1, got %d %v %v", row, found, err)
	}

	date := time.Date(2024, time.January, 5, 0, 0, 0, 0, time.UTC)
	column, _, _ := ledger.FindColumnForDate(date)
	if err := ledger.WriteCell(row, column, models.CellLeave); err != nil {
		t.Fatalf("write cell: %v", err)
	}

	record := models.AuditRecord{
		RequestID: "req-1",
		Timestamp: time.Date(2024, time.January, 1, 9, 30, 0, 0, time.UTC),
		Employee:  "Jane Doe",
		Action:    models.ActionBook,
		StartDate: date,
		EndDate:   date,
		Outcome:   string(models.OutcomeApproved),
		Remarks:   "leave taken: 1",
	}
	if err := ledger.AppendRecord(record); err != nil {
		t.Fatalf("append record: %v", err)
	}
	if err := ledger.Close(); err != nil {
		t.Fatalf("close: %v", err)
	}

	reopened, err := OpenXLSXLedger(path, "holiday", "audit", 2024)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer reopened.Close()

	values, err := reopened.ReadColumn(column)
	if err != nil {
		t.Fatalf("read column: %v", err)
	}
	if CellAt(values, HeaderRow) != "05 Jan" || CellAt(values, row) != models.CellLeave {
		t.Fatalf("unexpected column: %q", values)
	}

	shifts, _ := reopened.ReadColumn(ShiftColumn)
	if CellAt(shifts, row) != "Red" {
		t.Fatalf("expected Red shift, got %q", CellAt(shifts, row))
	}

	records, err := reopened.RecordsFor("JANE DOE")
	if err != nil {
		t.Fatalf("records: %v", err)
	}
	if len(records) != 1 || records[0].RequestID != "req-1" || !records[0].StartDate.Equal(date) {
		t.Fatalf("unexpected records: %+v", records)
	}

	// Очистка ячейки возвращает доступный день
	if err := reopened.WriteCell(row, column, ""); err != nil {
		t.Fatalf("clear cell: %v", err)
	}
	values, _ = reopened.ReadColumn(column)
	if models.ParseLeaveStatus(CellAt(values, row)) != models.StatusAvailable {
		t.Fatalf("expected available after clear, got %q", CellAt(values, row))
	}
}

func TestOpenXLSXLedgerMissingSheet(t *testing.T) {
	_, path := openTestWorkbook(t)

	if _, err := OpenXLSXLedger(path, "vacations", "audit", 2024); err == nil {
		t.Fatal("expected error for a missing ledger sheet")
	}
	if _, err := OpenXLSXLedger(filepath.Join(t.TempDir(), "none.xlsx"), "holiday", "audit", 2024); err == nil {
		t.Fatal("expected error for a missing file")
	}
}
