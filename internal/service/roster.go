package service

import (
	"errors"
	"fmt"
	"strings"

	"shift-leave-bot/internal/models"
	"shift-leave-bot/internal/repository"
	"shift-leave-bot/pkg/roster"

	"github.com/sirupsen/logrus"
)

// RosterLedger - книга, в которую можно добавлять сотрудников
type RosterLedger interface {
	repository.Ledger
	repository.RosterWriter
}

type RosterService struct {
	ledger RosterLedger
}

func NewRosterService(ledger RosterLedger) *RosterService {
	return &RosterService{ledger: ledger}
}

// RosterResult - итог загрузки списка сотрудников
type RosterResult struct {
	Added   []string
	Skipped []string
}

// AddEmployee добавляет сотрудника в книгу со своей сменой
func (s *RosterService) AddEmployee(name, shiftCode string) error {
	name = strings.Join(strings.Fields(name), " ")
	if name == "" {
		return fmt.Errorf("имя сотрудника не может быть пустым")
	}

	shift := models.ParseShift(shiftCode)
	if !shift.IsValid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidShift, shiftCode)
	}

	if err := s.ledger.AddEmployee(name, shift); err != nil {
		return err
	}

	logrus.WithFields(logrus.Fields{"employee": name, "shift": shift.String()}).Info("Employee added to ledger")
	return nil
}

// LoadFromJSON загружает сотрудников из JSON файла в книгу.
// Уже записанные сотрудники пропускаются.
func (s *RosterService) LoadFromJSON(filePath string) (*RosterResult, error) {
	rows, err := roster.ParseRosterJSON(filePath)
	if err != nil {
		return nil, err
	}

	// Проверяем смены до первой записи, чтобы не загрузить список наполовину
	for _, r := range rows {
		if !models.ParseShift(r.Shift).IsValid() {
			return nil, fmt.Errorf("%w: %s (%s)", models.ErrInvalidShift, r.Name, r.Shift)
		}
	}

	result := &RosterResult{}
	for _, r := range rows {
		err := s.AddEmployee(r.Name, r.Shift)
		if errors.Is(err, repository.ErrEmployeeExists) {
			logrus.Debugf("Employee %s already in ledger", r.Name)
			result.Skipped = append(result.Skipped, r.Name)
			continue
		}
		if err != nil {
			return result, fmt.Errorf("ошибка добавления %s: %w", r.Name, err)
		}
		result.Added = append(result.Added, r.Name)
	}

	logrus.Infof("Roster loaded: %s, added %d, skipped %d", roster.Summary(rows), len(result.Added), len(result.Skipped))
	return result, nil
}

// Employees возвращает сотрудников книги со сменами
func (s *RosterService) Employees() ([]models.Employee, error) {
	names, err := s.ledger.ReadColumn(repository.NameColumn)
	if err != nil {
		return nil, fmt.Errorf("чтение колонки имен: %w", err)
	}
	shifts, err := s.ledger.ReadColumn(repository.ShiftColumn)
	if err != nil {
		return nil, fmt.Errorf("чтение колонки смен: %w", err)
	}

	employees := []models.Employee{}
	for row := repository.HeaderRow + 1; row < len(names); row++ {
		if strings.TrimSpace(names[row]) == "" {
			continue
		}
		employees = append(employees, models.Employee{
			Name:           names[row],
			NormalizedName: models.NormalizeName(names[row]),
			Shift:          repository.CellAt(shifts, row),
		})
	}
	return employees, nil
}

// FormatEmployees форматирует список сотрудников по сменам
func (s *RosterService) FormatEmployees(employees []models.Employee) string {
	if len(employees) == 0 {
		return "📭 В книге нет сотрудников."
	}

	byShift := map[models.Shift][]string{}
	for _, e := range employees {
		shift := models.ParseShift(e.Shift)
		byShift[shift] = append(byShift[shift], e.Name)
	}

	var lines []string
	lines = append(lines, "📋 Сотрудники:")
	for _, shift := range append(models.AllShifts(), models.ShiftUnknown) {
		names := byShift[shift]
		if len(names) == 0 {
			continue
		}
		lines = append(lines, "")
		lines = append(lines, fmt.Sprintf("%s (%d):", shift.String(), len(names)))
		for _, name := range names {
			lines = append(lines, "  • "+name)
		}
	}
	return strings.Join(lines, "\n")
}
