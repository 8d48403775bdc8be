package schedule

import (
	"errors"
	"time"
)

var ErrInvalidRange = errors.New("дата окончания раньше даты начала")

// ExpandRange возвращает все даты от start до end включительно по возрастанию
func ExpandRange(start, end time.Time) ([]time.Time, error) {
	start, end = Day(start), Day(end)
	if end.Before(start) {
		return nil, ErrInvalidRange
	}

	dates := make([]time.Time, 0, DaysBetween(start, end)+1)
	for date := start; !date.After(end); date = date.AddDate(0, 0, 1) {
		dates = append(dates, date)
	}
	return dates, nil
}

// InYear проверяет, что дата попадает в указанный год
func InYear(date time.Time, year int) bool {
	return date.Year() == year
}
