package service

import (
	"fmt"
	"time"

	"shift-leave-bot/internal/models"
	"shift-leave-bot/internal/schedule"
)

// CountPrecedingConsecutiveLeave считает уже одобренные дни отпуска,
// которые идут подряд (по рабочим дням смены) прямо перед start.
// Выходные смены пропускаются, первый рабочий день без отпуска
// или без колонки в книге обрывает серию.
func (s *LeaveService) CountPrecedingConsecutiveLeave(employeeRow int, shift models.Shift, start time.Time) (int, error) {
	start = schedule.Day(start)
	count := 0

	for i := 1; i <= LookbackDays; i++ {
		date := start.AddDate(0, 0, -i)
		if !s.calendar.IsWorkday(shift, date) {
			continue
		}

		column, found, err := s.ledger.FindColumnForDate(date)
		if err != nil {
			return 0, fmt.Errorf("поиск колонки %s: %w", date.Format(models.DateLayout), err)
		}
		if !found {
			s.logger.WithField("date", date.Format(models.DateLayout)).Debug("Look-back reached a date outside the ledger")
			break
		}

		status, err := s.statusAt(employeeRow, column)
		if err != nil {
			return 0, err
		}
		if status != models.StatusLeave {
			break
		}
		count++
	}

	return count, nil
}
