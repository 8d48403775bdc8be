package models

import "strings"

// LeaveStatus - состояние ячейки сотрудника на дату
type LeaveStatus int

const (
	StatusAvailable LeaveStatus = iota // пустая ячейка или "In"
	StatusOff
	StatusLeave
)

// Значения ячеек в книге отпусков
const (
	CellLeave = "Leave"
	CellOff   = "Off"
	CellIn    = "In"
)

// ParseLeaveStatus разбирает значение ячейки.
// Пустое значение, "In" и любой неизвестный текст считаются доступным днем.
func ParseLeaveStatus(cell string) LeaveStatus {
	switch strings.ToLower(strings.TrimSpace(cell)) {
	case "leave":
		return StatusLeave
	case "off":
		return StatusOff
	default:
		return StatusAvailable
	}
}

// CellValue возвращает значение для записи в ячейку
func (s LeaveStatus) CellValue() string {
	switch s {
	case StatusLeave:
		return CellLeave
	case StatusOff:
		return CellOff
	default:
		return ""
	}
}

func (s LeaveStatus) String() string {
	switch s {
	case StatusLeave:
		return "leave"
	case StatusOff:
		return "off"
	default:
		return "available"
	}
}
