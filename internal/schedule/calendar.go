package schedule

import (
	"time"

	"shift-leave-bot/internal/models"
)

const (
	// CycleLength - длина цикла смен в днях
	CycleLength = 8
	// WorkdaysPerCycle - рабочих дней в цикле у каждой группы
	WorkdaysPerCycle = 4
)

// Calendar считает рабочие дни смен по опорным датам групп
type Calendar struct {
	redGreenAnchor   time.Time
	blueYellowAnchor time.Time
}

func NewCalendar(redGreenAnchor, blueYellowAnchor time.Time) *Calendar {
	return &Calendar{
		redGreenAnchor:   Day(redGreenAnchor),
		blueYellowAnchor: Day(blueYellowAnchor),
	}
}

// IsWorkday проверяет, работает ли смена в указанную дату.
// Неизвестная смена никогда не работает.
func (c *Calendar) IsWorkday(shift models.Shift, date time.Time) bool {
	switch shift.Group() {
	case models.GroupRedGreen:
		return CycleDay(c.redGreenAnchor, date) < WorkdaysPerCycle
	case models.GroupBlueYellow:
		return CycleDay(c.blueYellowAnchor, date) >= WorkdaysPerCycle
	default:
		return false
	}
}

// CountWorkdays считает рабочие дни смены среди дат
func (c *Calendar) CountWorkdays(shift models.Shift, dates []time.Time) int {
	count := 0
	for _, date := range dates {
		if c.IsWorkday(shift, date) {
			count++
		}
	}
	return count
}

// Workdays возвращает рабочие дни смены среди дат
func (c *Calendar) Workdays(shift models.Shift, dates []time.Time) []time.Time {
	result := []time.Time{}
	for _, date := range dates {
		if c.IsWorkday(shift, date) {
			result = append(result, date)
		}
	}
	return result
}

// CycleDay возвращает номер дня в цикле от опорной даты, всегда 0..7
func CycleDay(anchor, date time.Time) int {
	days := DaysBetween(anchor, date)
	return ((days % CycleLength) + CycleLength) % CycleLength
}

// DaysBetween - разница в календарных днях, может быть отрицательной.
// Считается через Unix-секунды: time.Duration не вмещает больше ~292 лет.
func DaysBetween(from, to time.Time) int {
	return int((Day(to).Unix() - Day(from).Unix()) / secondsPerDay)
}

const secondsPerDay = 24 * 60 * 60

// Day отбрасывает время и часовой пояс, оставляя календарную дату в UTC
func Day(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}
