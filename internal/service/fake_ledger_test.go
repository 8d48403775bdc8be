package service

import (
	"sync"
	"testing"
	"time"

	"shift-leave-bot/internal/models"
	"shift-leave-bot/internal/repository"
	"shift-leave-bot/internal/schedule"
)

// gridLedger - книга отпусков в памяти с той же разметкой, что и у настоящих хранилищ
type gridLedger struct {
	mu        sync.Mutex
	year      int
	rows      [][]string
	writes    int
	records   []models.AuditRecord
	appendErr error
}

func newGridLedger(year int, dates []time.Time, employees ...[2]string) *gridLedger {
	header := []string{repository.NameHeader, repository.ShiftHeader}
	for _, date := range dates {
		header = append(header, repository.DateHeader(date))
	}

	g := &gridLedger{year: year, rows: [][]string{header}}
	for _, e := range employees {
		row := make([]string, len(header))
		row[repository.NameColumn] = e[0]
		row[repository.ShiftColumn] = e[1]
		g.rows = append(g.rows, row)
	}
	return g
}

func (g *gridLedger) FindColumnForDate(date time.Time) (int, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	if date.Year() != g.year {
		return 0, false, nil
	}
	want := repository.DateHeader(date)
	for i := repository.FirstDateColumn; i < len(g.rows[0]); i++ {
		if g.rows[0][i] == want {
			return i, true, nil
		}
	}
	return 0, false, nil
}

func (g *gridLedger) ReadColumn(index int) ([]string, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	values := make([]string, len(g.rows))
	for i, row := range g.rows {
		if index < len(row) {
			values[i] = row[index]
		}
	}
	return values, nil
}

func (g *gridLedger) ReadEmployeeIndex(name string) (int, bool, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	for i := repository.HeaderRow + 1; i < len(g.rows); i++ {
		if models.NamesMatch(g.rows[i][repository.NameColumn], name) {
			return i, true, nil
		}
	}
	return 0, false, nil
}

func (g *gridLedger) WriteCell(row, column int, value string) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if row >= len(g.rows) || column >= len(g.rows[row]) {
		return repository.ErrCellOutOfRange
	}
	g.rows[row][column] = value
	g.writes++
	return nil
}

func (g *gridLedger) AppendRecord(record models.AuditRecord) error {
	g.mu.Lock()
	defer g.mu.Unlock()

	if g.appendErr != nil {
		return g.appendErr
	}
	g.records = append(g.records, record)
	return nil
}

// set меняет ячейку без учета в счетчике записей
func (g *gridLedger) set(t *testing.T, name string, date time.Time, value string) {
	t.Helper()
	row, found, _ := g.ReadEmployeeIndex(name)
	column, ok, _ := g.FindColumnForDate(date)
	if !found || !ok {
		t.Fatalf("no cell for %s on %s", name, date.Format(models.DateLayout))
	}
	g.mu.Lock()
	g.rows[row][column] = value
	g.mu.Unlock()
}

func (g *gridLedger) cell(t *testing.T, name string, date time.Time) string {
	t.Helper()
	row, found, _ := g.ReadEmployeeIndex(name)
	column, ok, _ := g.FindColumnForDate(date)
	if !found || !ok {
		t.Fatalf("no cell for %s on %s", name, date.Format(models.DateLayout))
	}
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.rows[row][column]
}

func day(month time.Month, d int) time.Time {
	return time.Date(2024, month, d, 0, 0, 0, 0, time.UTC)
}

func yearDates(year int) []time.Time {
	dates := []time.Time{}
	for date := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC); date.Year() == year; date = date.AddDate(0, 0, 1) {
		dates = append(dates, date)
	}
	return dates
}

func expand(t *testing.T, start, end time.Time) []time.Time {
	t.Helper()
	dates, err := schedule.ExpandRange(start, end)
	if err != nil {
		t.Fatalf("expand range: %v", err)
	}
	return dates
}

func (g *gridLedger) AddEmployee(name string, shift models.Shift) error {
	if _, found, _ := g.ReadEmployeeIndex(name); found {
		return repository.ErrEmployeeExists
	}

	g.mu.Lock()
	defer g.mu.Unlock()
	row := make([]string, len(g.rows[0]))
	row[repository.NameColumn] = name
	row[repository.ShiftColumn] = string(shift)
	g.rows = append(g.rows, row)
	return nil
}

func (g *gridLedger) RecordsFor(name string) ([]models.AuditRecord, error) {
	g.mu.Lock()
	defer g.mu.Unlock()

	records := []models.AuditRecord{}
	for _, r := range g.records {
		if models.NamesMatch(r.Employee, name) {
			records = append(records, r)
		}
	}
	return records, nil
}
