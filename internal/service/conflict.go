package service

import (
	"fmt"
	"time"

	"shift-leave-bot/internal/models"
	"shift-leave-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

// HasConflict проверяет, достигнут ли в дату лимит отпусков смены.
// Выходные дни смены и даты без колонки в книге конфликтом не считаются.
func (s *LeaveService) HasConflict(shift models.Shift, date time.Time) (bool, error) {
	if !s.calendar.IsWorkday(shift, date) {
		return false, nil
	}

	column, found, err := s.ledger.FindColumnForDate(date)
	if err != nil {
		return false, fmt.Errorf("поиск колонки %s: %w", date.Format(models.DateLayout), err)
	}
	if !found {
		s.logger.WithField("date", date.Format(models.DateLayout)).Warn("Date not found in ledger, skipping conflict check")
		return false, nil
	}

	count, err := s.countLeaveOn(shift, column)
	if err != nil {
		return false, err
	}
	return count >= MaxConcurrentLeave, nil
}

// FirstConflictingDate возвращает первую по порядку дату с превышением лимита или nil
func (s *LeaveService) FirstConflictingDate(shift models.Shift, dates []time.Time) (*time.Time, error) {
	conflict, _, err := s.firstConflict(shift, dates)
	return conflict, err
}

// firstConflict проверяет каждую рабочую дату заново и собирает даты без колонки
func (s *LeaveService) firstConflict(shift models.Shift, dates []time.Time) (*time.Time, []time.Time, error) {
	missing := []time.Time{}

	for _, date := range dates {
		if !s.calendar.IsWorkday(shift, date) {
			continue
		}

		column, found, err := s.ledger.FindColumnForDate(date)
		if err != nil {
			return nil, nil, fmt.Errorf("поиск колонки %s: %w", date.Format(models.DateLayout), err)
		}
		if !found {
			s.logger.WithField("date", date.Format(models.DateLayout)).Warn("Date not found in ledger, skipping conflict check")
			missing = append(missing, date)
			continue
		}

		count, err := s.countLeaveOn(shift, column)
		if err != nil {
			return nil, nil, err
		}
		if count >= MaxConcurrentLeave {
			conflict := date
			s.logger.WithFields(logrus.Fields{
				"date":  date.Format(models.DateLayout),
				"shift": shift.String(),
				"count": count,
			}).Info("Concurrent leave cap reached")
			return &conflict, missing, nil
		}
	}
	return nil, missing, nil
}

// countLeaveOn считает сотрудников смены с отпуском в колонке дня
func (s *LeaveService) countLeaveOn(shift models.Shift, column int) (int, error) {
	shifts, err := s.ledger.ReadColumn(repository.ShiftColumn)
	if err != nil {
		return 0, fmt.Errorf("чтение колонки смен: %w", err)
	}
	statuses, err := s.ledger.ReadColumn(column)
	if err != nil {
		return 0, fmt.Errorf("чтение колонки %d: %w", column, err)
	}

	count := 0
	for row := repository.HeaderRow + 1; row < len(shifts); row++ {
		if models.ParseShift(shifts[row]) != shift {
			continue
		}
		if models.ParseLeaveStatus(repository.CellAt(statuses, row)) == models.StatusLeave {
			count++
		}
	}
	return count, nil
}
