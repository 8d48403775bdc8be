package service

import (
	"fmt"
	"sync"

	"shift-leave-bot/internal/models"
	"shift-leave-bot/internal/repository"
)

// statusAt читает статус сотрудника в колонке дня
func (s *LeaveService) statusAt(row, column int) (models.LeaveStatus, error) {
	values, err := s.ledger.ReadColumn(column)
	if err != nil {
		return models.StatusAvailable, fmt.Errorf("чтение колонки %d: %w", column, err)
	}
	return models.ParseLeaveStatus(repository.CellAt(values, row)), nil
}

// recordedShift читает смену сотрудника из книги
func (s *LeaveService) recordedShift(row int) (models.Shift, error) {
	shifts, err := s.ledger.ReadColumn(repository.ShiftColumn)
	if err != nil {
		return models.ShiftUnknown, fmt.Errorf("чтение колонки смен: %w", err)
	}
	return models.ParseShift(repository.CellAt(shifts, row)), nil
}

// shiftLocks сериализует решение и запись по одной смене внутри процесса
type shiftLocks struct {
	mu    sync.Mutex
	locks map[models.Shift]*sync.Mutex
}

func newShiftLocks() *shiftLocks {
	return &shiftLocks{locks: make(map[models.Shift]*sync.Mutex)}
}

func (l *shiftLocks) lock(shift models.Shift) func() {
	l.mu.Lock()
	m, ok := l.locks[shift]
	if !ok {
		m = &sync.Mutex{}
		l.locks[shift] = m
	}
	l.mu.Unlock()

	m.Lock()
	return m.Unlock
}
