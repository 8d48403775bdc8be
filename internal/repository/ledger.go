package repository

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"shift-leave-bot/internal/models"
)

// Разметка книги отпусков, общая для всех хранилищ:
// строка 0 - заголовок, колонка 0 - имя, колонка 1 - смена,
// колонки начиная с FirstDateColumn - по одному календарному дню.
const (
	HeaderRow       = 0
	NameColumn      = 0
	ShiftColumn     = 1
	FirstDateColumn = 2

	NameHeader  = "Name"
	ShiftHeader = "Shift"

	// DateHeaderLayout - формат заголовка дня, как в исходной таблице ("01 Jan")
	DateHeaderLayout = "02 Jan"
)

var (
	ErrEmployeeExists = errors.New("сотрудник уже есть в книге")
	ErrCellOutOfRange = errors.New("ячейка вне книги отпусков")
)

// Ledger - книга отпусков: единственный источник состояния дней
type Ledger interface {
	// FindColumnForDate ищет колонку дня, found=false если дня нет в книге
	FindColumnForDate(date time.Time) (column int, found bool, err error)
	// ReadColumn возвращает значения колонки по строкам, включая заголовок
	ReadColumn(index int) ([]string, error)
	// ReadEmployeeIndex ищет строку сотрудника по нормализованному имени
	ReadEmployeeIndex(name string) (row int, found bool, err error)
	WriteCell(row, column int, value string) error
	// AppendRecord добавляет запись в журнал решений
	AppendRecord(record models.AuditRecord) error
}

// RosterWriter добавляет сотрудников в книгу
type RosterWriter interface {
	AddEmployee(name string, shift models.Shift) error
}

// AuditReader читает журнал решений
type AuditReader interface {
	RecordsFor(name string) ([]models.AuditRecord, error)
}

// DateHeader - заголовок колонки дня
func DateHeader(date time.Time) string {
	return date.Format(DateHeaderLayout)
}

// CellAt безопасно берет значение колонки, отсутствующие строки пустые
func CellAt(column []string, row int) string {
	if row < 0 || row >= len(column) {
		return ""
	}
	return column[row]
}

// columnForYearDay - колонка дня при полной разметке года (SQLite)
func columnForYearDay(date time.Time, year int) (int, bool) {
	if date.Year() != year {
		return 0, false
	}
	return FirstDateColumn + date.YearDay() - 1, true
}

// dateForColumn - обратное преобразование для полной разметки года
func dateForColumn(column, year int) (time.Time, error) {
	if column < FirstDateColumn {
		return time.Time{}, fmt.Errorf("%w: колонка %d не является датой", ErrCellOutOfRange, column)
	}
	date := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC).AddDate(0, 0, column-FirstDateColumn)
	if date.Year() != year {
		return time.Time{}, fmt.Errorf("%w: колонка %d за пределами %d года", ErrCellOutOfRange, column, year)
	}
	return date, nil
}

// yearHeader строит строку заголовка на весь год
func yearHeader(year int) []string {
	header := []string{NameHeader, ShiftHeader}
	for date := time.Date(year, time.January, 1, 0, 0, 0, 0, time.UTC); date.Year() == year; date = date.AddDate(0, 0, 1) {
		header = append(header, DateHeader(date))
	}
	return header
}

// findHeaderColumn ищет дату в строке заголовка таблицы
func findHeaderColumn(header []string, date time.Time) (int, bool) {
	want := DateHeader(date)
	for i := FirstDateColumn; i < len(header); i++ {
		if strings.EqualFold(strings.TrimSpace(header[i]), want) {
			return i, true
		}
	}
	return 0, false
}

// findNameRow ищет сотрудника в колонке имен, пропуская заголовок
func findNameRow(names []string, name string) (int, bool) {
	for i := HeaderRow + 1; i < len(names); i++ {
		if models.NamesMatch(names[i], name) {
			return i, true
		}
	}
	return 0, false
}
