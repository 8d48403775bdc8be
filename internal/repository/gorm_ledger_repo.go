package repository

import (
	"errors"
	"fmt"
	"time"

	"shift-leave-bot/internal/models"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// GormLedgerRepository - книга отпусков в SQLite.
// Строки - сотрудники по порядку ID, колонки - дни планового года.
type GormLedgerRepository struct {
	db   *gorm.DB
	year int
}

func NewGormLedgerRepository(db *gorm.DB, year int) (*GormLedgerRepository, error) {
	// Автомиграция для сотрудников, ячеек и журнала
	if err := db.AutoMigrate(&models.Employee{}, &models.LeaveDay{}, &models.AuditRecord{}); err != nil {
		return nil, err
	}

	return &GormLedgerRepository{db: db, year: year}, nil
}

func (r *GormLedgerRepository) FindColumnForDate(date time.Time) (int, bool, error) {
	column, ok := columnForYearDay(date, r.year)
	return column, ok, nil
}

func (r *GormLedgerRepository) ReadColumn(index int) ([]string, error) {
	employees, err := r.employees()
	if err != nil {
		return nil, err
	}

	column := make([]string, len(employees)+1)

	switch {
	case index == NameColumn:
		column[HeaderRow] = NameHeader
		for i, e := range employees {
			column[i+1] = e.Name
		}
	case index == ShiftColumn:
		column[HeaderRow] = ShiftHeader
		for i, e := range employees {
			column[i+1] = e.Shift
		}
	default:
		date, err := dateForColumn(index, r.year)
		if err != nil {
			return nil, err
		}
		column[HeaderRow] = DateHeader(date)

		var days []models.LeaveDay
		if err := r.db.Where("date = ?", date.Format(models.DateLayout)).Find(&days).Error; err != nil {
			return nil, err
		}

		statusByEmployee := make(map[uint]string, len(days))
		for _, d := range days {
			statusByEmployee[d.EmployeeID] = d.Status
		}
		for i, e := range employees {
			column[i+1] = statusByEmployee[e.ID]
		}
	}

	return column, nil
}

func (r *GormLedgerRepository) ReadEmployeeIndex(name string) (int, bool, error) {
	employees, err := r.employees()
	if err != nil {
		return 0, false, err
	}

	normalized := models.NormalizeName(name)
	for i, e := range employees {
		if e.NormalizedName == normalized {
			return i + 1, true, nil
		}
	}
	return 0, false, nil
}

func (r *GormLedgerRepository) WriteCell(row, column int, value string) error {
	employee, err := r.employeeAtRow(row)
	if err != nil {
		return err
	}

	switch column {
	case NameColumn:
		return r.db.Model(employee).Updates(map[string]interface{}{
			"name":            value,
			"normalized_name": models.NormalizeName(value),
		}).Error
	case ShiftColumn:
		return r.db.Model(employee).Update("shift", value).Error
	}

	date, err := dateForColumn(column, r.year)
	if err != nil {
		return err
	}
	day := date.Format(models.DateLayout)

	// Пустая ячейка в SQLite - отсутствие строки
	if value == "" {
		return r.db.Where("employee_id = ? AND date = ?", employee.ID, day).
			Delete(&models.LeaveDay{}).Error
	}

	cell := models.LeaveDay{
		EmployeeID: employee.ID,
		Date:       day,
		Status:     value,
	}
	return r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "employee_id"}, {Name: "date"}},
		DoUpdates: clause.AssignmentColumns([]string{"status", "updated_at"}),
	}).Create(&cell).Error
}

func (r *GormLedgerRepository) AppendRecord(record models.AuditRecord) error {
	return r.db.Create(&record).Error
}

func (r *GormLedgerRepository) RecordsFor(name string) ([]models.AuditRecord, error) {
	var records []models.AuditRecord
	if err := r.db.Order("id").Find(&records).Error; err != nil {
		return nil, err
	}

	// Имя в журнале записано как ввел сотрудник, сравниваем после нормализации
	result := []models.AuditRecord{}
	for _, rec := range records {
		if models.NamesMatch(rec.Employee, name) {
			result = append(result, rec)
		}
	}
	return result, nil
}

func (r *GormLedgerRepository) AddEmployee(name string, shift models.Shift) error {
	if !shift.IsValid() {
		return fmt.Errorf("%w: %q", models.ErrInvalidShift, shift)
	}

	normalized := models.NormalizeName(name)
	if normalized == "" {
		return fmt.Errorf("имя сотрудника не может быть пустым")
	}

	var existing models.Employee
	result := r.db.Where("normalized_name = ?", normalized).First(&existing)
	if result.Error == nil {
		return ErrEmployeeExists
	}
	if !errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return result.Error
	}

	return r.db.Create(&models.Employee{
		Name:           name,
		NormalizedName: normalized,
		Shift:          string(shift),
	}).Error
}

// Close закрывает соединение с БД
func (r *GormLedgerRepository) Close() error {
	sqlDB, err := r.db.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}

func (r *GormLedgerRepository) employees() ([]models.Employee, error) {
	var employees []models.Employee
	if err := r.db.Order("id").Find(&employees).Error; err != nil {
		return nil, err
	}
	return employees, nil
}

func (r *GormLedgerRepository) employeeAtRow(row int) (*models.Employee, error) {
	employees, err := r.employees()
	if err != nil {
		return nil, err
	}
	if row <= HeaderRow || row > len(employees) {
		return nil, fmt.Errorf("%w: строка %d", ErrCellOutOfRange, row)
	}
	return &employees[row-1], nil
}
