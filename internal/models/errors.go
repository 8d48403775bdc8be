package models

import "errors"

var (
	ErrInvalidShift              = errors.New("смена не совпадает со сменой сотрудника")
	ErrEmployeeNotFound          = errors.New("сотрудник не найден")
	ErrInvalidDateRange          = errors.New("неверный диапазон дат")
	ErrExceedsConsecutiveLimit   = errors.New("превышен лимит рабочих дней отпуска подряд")
	ErrExceedsConcurrentLeaveCap = errors.New("превышен лимит одновременных отпусков в смене")
	ErrLedgerDateNotFound        = errors.New("дата отсутствует в книге отпусков")
)
