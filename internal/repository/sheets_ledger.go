package repository

import (
	"context"
	"fmt"
	"os"
	"strings"
	"time"

	"shift-leave-bot/internal/models"

	"github.com/sirupsen/logrus"
	"golang.org/x/oauth2/google"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

// NewSheetsService создает клиент Google Sheets по файлу сервисного аккаунта
func NewSheetsService(credentialsFile string) (*sheets.Service, error) {
	ctx := context.Background()
	b, err := os.ReadFile(credentialsFile)
	if err != nil {
		return nil, fmt.Errorf("unable to read credentials file: %w", err)
	}

	config, err := google.JWTConfigFromJSON(b, sheets.SpreadsheetsScope)
	if err != nil {
		return nil, fmt.Errorf("unable to parse credentials file: %w", err)
	}

	srv, err := sheets.NewService(ctx, option.WithHTTPClient(config.Client(ctx)))
	if err != nil {
		return nil, fmt.Errorf("unable to retrieve Sheets client: %w", err)
	}
	return srv, nil
}

// SheetsLedger - книга отпусков в Google Sheets (лист holiday + лист журнала)
type SheetsLedger struct {
	srv           *sheets.Service
	spreadsheetID string
	sheetName     string
	auditSheet    string
	year          int
}

func NewSheetsLedger(srv *sheets.Service, spreadsheetID, sheetName, auditSheet string, year int) *SheetsLedger {
	return &SheetsLedger{
		srv:           srv,
		spreadsheetID: spreadsheetID,
		sheetName:     sheetName,
		auditSheet:    auditSheet,
		year:          year,
	}
}

// EnsureAuditSheet создает лист журнала с заголовком, если его нет
func (l *SheetsLedger) EnsureAuditSheet() error {
	meta, err := l.srv.Spreadsheets.Get(l.spreadsheetID).Do()
	if err != nil {
		return err
	}

	for _, s := range meta.Sheets {
		if s.Properties != nil && s.Properties.Title == l.auditSheet {
			return nil
		}
	}

	req := &sheets.BatchUpdateSpreadsheetRequest{
		Requests: []*sheets.Request{
			{
				AddSheet: &sheets.AddSheetRequest{
					Properties: &sheets.SheetProperties{Title: l.auditSheet},
				},
			},
		},
	}
	if _, err := l.srv.Spreadsheets.BatchUpdate(l.spreadsheetID, req).Do(); err != nil {
		return fmt.Errorf("failed to create sheet %s: %w", l.auditSheet, err)
	}

	vr := &sheets.ValueRange{Values: [][]interface{}{toRow(models.AuditHeader)}}
	_, err = l.srv.Spreadsheets.Values.Update(l.spreadsheetID, l.rangeOf(l.auditSheet, "A1"), vr).
		ValueInputOption("RAW").Do()
	if err != nil {
		return fmt.Errorf("failed to write headers to %s: %w", l.auditSheet, err)
	}

	logrus.Infof("Created audit sheet %s", l.auditSheet)
	return nil
}

func (l *SheetsLedger) FindColumnForDate(date time.Time) (int, bool, error) {
	if date.Year() != l.year {
		return 0, false, nil
	}

	resp, err := l.srv.Spreadsheets.Values.Get(l.spreadsheetID, l.rangeOf(l.sheetName, "1:1")).Do()
	if err != nil {
		return 0, false, err
	}
	if len(resp.Values) == 0 {
		return 0, false, nil
	}

	column, ok := findHeaderColumn(toStrings(resp.Values[0]), date)
	return column, ok, nil
}

func (l *SheetsLedger) ReadColumn(index int) ([]string, error) {
	letter := columnName(index + 1)
	resp, err := l.srv.Spreadsheets.Values.Get(l.spreadsheetID, l.rangeOf(l.sheetName, letter+":"+letter)).
		MajorDimension("COLUMNS").Do()
	if err != nil {
		return nil, err
	}
	if len(resp.Values) == 0 {
		return []string{}, nil
	}
	return toStrings(resp.Values[0]), nil
}

func (l *SheetsLedger) ReadEmployeeIndex(name string) (int, bool, error) {
	names, err := l.ReadColumn(NameColumn)
	if err != nil {
		return 0, false, err
	}
	row, ok := findNameRow(names, name)
	return row, ok, nil
}

func (l *SheetsLedger) WriteCell(row, column int, value string) error {
	if row < 0 || column < 0 {
		return fmt.Errorf("%w: %d:%d", ErrCellOutOfRange, row, column)
	}

	cell := fmt.Sprintf("%s%d", columnName(column+1), row+1)
	vr := &sheets.ValueRange{Values: [][]interface{}{{value}}}
	_, err := l.srv.Spreadsheets.Values.Update(l.spreadsheetID, l.rangeOf(l.sheetName, cell), vr).
		ValueInputOption("RAW").Do()
	return err
}

func (l *SheetsLedger) AppendRecord(record models.AuditRecord) error {
	vr := &sheets.ValueRange{Values: [][]interface{}{toRow(record.Fields())}}
	_, err := l.srv.Spreadsheets.Values.Append(l.spreadsheetID, l.rangeOf(l.auditSheet, "A:H"), vr).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Do()
	return err
}

func (l *SheetsLedger) RecordsFor(name string) ([]models.AuditRecord, error) {
	resp, err := l.srv.Spreadsheets.Values.Get(l.spreadsheetID, l.rangeOf(l.auditSheet, "A:H")).Do()
	if err != nil {
		return nil, err
	}

	records := []models.AuditRecord{}
	for i, row := range resp.Values {
		if i == HeaderRow {
			continue
		}
		record := models.AuditRecordFromFields(toStrings(row))
		if models.NamesMatch(record.Employee, name) {
			records = append(records, record)
		}
	}
	return records, nil
}

func (l *SheetsLedger) AddEmployee(name string, shift models.Shift) error {
	if !shift.IsValid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidShift, shift)
	}

	_, found, err := l.ReadEmployeeIndex(name)
	if err != nil {
		return err
	}
	if found {
		return ErrEmployeeExists
	}

	vr := &sheets.ValueRange{Values: [][]interface{}{{strings.TrimSpace(name), string(shift)}}}
	_, err = l.srv.Spreadsheets.Values.Append(l.spreadsheetID, l.rangeOf(l.sheetName, "A:B"), vr).
		ValueInputOption("RAW").InsertDataOption("INSERT_ROWS").Do()
	return err
}

func (l *SheetsLedger) rangeOf(sheet, cells string) string {
	return fmt.Sprintf("'%s'!%s", sheet, cells)
}

func toStrings(row []interface{}) []string {
	result := make([]string, len(row))
	for i, v := range row {
		result[i] = fmt.Sprintf("%v", v)
	}
	return result
}

func toRow(fields []string) []interface{} {
	row := make([]interface{}, len(fields))
	for i, f := range fields {
		row[i] = f
	}
	return row
}

// columnName переводит номер колонки (с 1) в буквы A1-нотации
func columnName(n int) string {
	name := ""
	for n > 0 {
		n--
		name = string(rune('A'+(n%26))) + name
		n /= 26
	}
	return name
}
