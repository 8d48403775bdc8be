package repository

import (
	"fmt"
	"strings"
	"sync"
	"time"

	"shift-leave-bot/internal/models"

	"github.com/xuri/excelize/v2"
)

// XLSXLedger - книга отпусков в локальном файле .xlsx (офлайн-копия таблицы)
type XLSXLedger struct {
	mu         sync.Mutex
	file       *excelize.File
	path       string
	sheetName  string
	auditSheet string
	year       int
}

// CreateWorkbook создает пустую книгу: заголовок на каждый день года и лист журнала
func CreateWorkbook(path, sheetName, auditSheet string, year int) error {
	f := excelize.NewFile()
	defer func() { _ = f.Close() }()

	if err := f.SetSheetName(f.GetSheetName(0), sheetName); err != nil {
		return err
	}
	header := toRow(yearHeader(year))
	if err := f.SetSheetRow(sheetName, "A1", &header); err != nil {
		return err
	}

	if _, err := f.NewSheet(auditSheet); err != nil {
		return err
	}
	auditHeader := toRow(models.AuditHeader)
	if err := f.SetSheetRow(auditSheet, "A1", &auditHeader); err != nil {
		return err
	}

	return f.SaveAs(path)
}

func OpenXLSXLedger(path, sheetName, auditSheet string, year int) (*XLSXLedger, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open workbook %s: %w", path, err)
	}

	if idx, err := f.GetSheetIndex(sheetName); err != nil || idx < 0 {
		_ = f.Close()
		return nil, fmt.Errorf("sheet %q not found in %s", sheetName, path)
	}

	// Лист журнала создаем при первом открытии
	if idx, err := f.GetSheetIndex(auditSheet); err != nil || idx < 0 {
		if _, err := f.NewSheet(auditSheet); err != nil {
			_ = f.Close()
			return nil, err
		}
		auditHeader := toRow(models.AuditHeader)
		if err := f.SetSheetRow(auditSheet, "A1", &auditHeader); err != nil {
			_ = f.Close()
			return nil, err
		}
		if err := f.Save(); err != nil {
			_ = f.Close()
			return nil, err
		}
	}

	return &XLSXLedger{
		file:       f,
		path:       path,
		sheetName:  sheetName,
		auditSheet: auditSheet,
		year:       year,
	}, nil
}

func (l *XLSXLedger) FindColumnForDate(date time.Time) (int, bool, error) {
	if date.Year() != l.year {
		return 0, false, nil
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.file.GetRows(l.sheetName)
	if err != nil {
		return 0, false, err
	}
	if len(rows) == 0 {
		return 0, false, nil
	}

	column, ok := findHeaderColumn(rows[HeaderRow], date)
	return column, ok, nil
}

func (l *XLSXLedger) ReadColumn(index int) ([]string, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.readColumn(index)
}

func (l *XLSXLedger) ReadEmployeeIndex(name string) (int, bool, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	names, err := l.readColumn(NameColumn)
	if err != nil {
		return 0, false, err
	}
	row, ok := findNameRow(names, name)
	return row, ok, nil
}

func (l *XLSXLedger) WriteCell(row, column int, value string) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	cell, err := excelize.CoordinatesToCellName(column+1, row+1)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrCellOutOfRange, err)
	}
	if err := l.file.SetCellValue(l.sheetName, cell, value); err != nil {
		return err
	}
	return l.file.Save()
}

func (l *XLSXLedger) AppendRecord(record models.AuditRecord) error {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.file.GetRows(l.auditSheet)
	if err != nil {
		return err
	}

	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return err
	}
	fields := toRow(record.Fields())
	if err := l.file.SetSheetRow(l.auditSheet, cell, &fields); err != nil {
		return err
	}
	return l.file.Save()
}

func (l *XLSXLedger) RecordsFor(name string) ([]models.AuditRecord, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.file.GetRows(l.auditSheet)
	if err != nil {
		return nil, err
	}

	records := []models.AuditRecord{}
	for i, row := range rows {
		if i == HeaderRow {
			continue
		}
		record := models.AuditRecordFromFields(row)
		if models.NamesMatch(record.Employee, name) {
			records = append(records, record)
		}
	}
	return records, nil
}

func (l *XLSXLedger) AddEmployee(name string, shift models.Shift) error {
	if !shift.IsValid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidShift, shift)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	rows, err := l.file.GetRows(l.sheetName)
	if err != nil {
		return err
	}

	names := make([]string, len(rows))
	for i, row := range rows {
		names[i] = CellAt(row, NameColumn)
	}
	if _, found := findNameRow(names, name); found {
		return ErrEmployeeExists
	}

	cell, err := excelize.CoordinatesToCellName(1, len(rows)+1)
	if err != nil {
		return err
	}
	values := []interface{}{strings.TrimSpace(name), string(shift)}
	if err := l.file.SetSheetRow(l.sheetName, cell, &values); err != nil {
		return err
	}
	return l.file.Save()
}

func (l *XLSXLedger) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	return l.file.Close()
}

func (l *XLSXLedger) readColumn(index int) ([]string, error) {
	rows, err := l.file.GetRows(l.sheetName)
	if err != nil {
		return nil, err
	}

	column := make([]string, len(rows))
	for i, row := range rows {
		column[i] = CellAt(row, index)
	}
	return column, nil
}
