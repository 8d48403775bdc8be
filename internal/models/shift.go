package models

import "strings"

// Shift - код смены сотрудника
type Shift string

const (
	ShiftRed     Shift = "Red"
	ShiftGreen   Shift = "Green"
	ShiftBlue    Shift = "Blue"
	ShiftYellow  Shift = "Yellow"
	ShiftUnknown Shift = ""
)

// ShiftGroup - пара смен с общей опорной датой цикла
type ShiftGroup int

const (
	GroupUnknown ShiftGroup = iota
	GroupRedGreen
	GroupBlueYellow
)

// AllShifts возвращает все известные смены в порядке вывода
func AllShifts() []Shift {
	return []Shift{ShiftRed, ShiftGreen, ShiftBlue, ShiftYellow}
}

// ParseShift разбирает код смены без учета регистра и пробелов
func ParseShift(value string) Shift {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case "red":
		return ShiftRed
	case "green":
		return ShiftGreen
	case "blue":
		return ShiftBlue
	case "yellow":
		return ShiftYellow
	default:
		return ShiftUnknown
	}
}

// IsValid проверяет, что смена одна из четырех известных
func (s Shift) IsValid() bool {
	return s.Group() != GroupUnknown
}

// Group возвращает группу смены
func (s Shift) Group() ShiftGroup {
	switch s {
	case ShiftRed, ShiftGreen:
		return GroupRedGreen
	case ShiftBlue, ShiftYellow:
		return GroupBlueYellow
	default:
		return GroupUnknown
	}
}

func (s Shift) String() string {
	if s == ShiftUnknown {
		return "unknown"
	}
	return string(s)
}

// NormalizeName приводит имя сотрудника к виду для сравнения
func NormalizeName(name string) string {
	return strings.ToLower(strings.Join(strings.Fields(name), " "))
}

// NamesMatch сравнивает имена после нормализации
func NamesMatch(a, b string) bool {
	return NormalizeName(a) == NormalizeName(b)
}
