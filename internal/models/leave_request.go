package models

import (
	"fmt"
	"time"
)

// LeaveRequest - заявка на отпуск или его отмену, живет одно решение
type LeaveRequest struct {
	EmployeeName string    `json:"employee_name"`
	Shift        string    `json:"shift"`
	StartDate    time.Time `json:"start_date"`
	EndDate      time.Time `json:"end_date"`
}

type Outcome string

const (
	OutcomeApproved  Outcome = "approved"
	OutcomeDenied    Outcome = "denied"
	OutcomeCancelled Outcome = "cancelled"
)

// DenialReason - причина отказа
type DenialReason string

const (
	ReasonNone                      DenialReason = ""
	ReasonInvalidShift              DenialReason = "invalid_shift"
	ReasonEmployeeNotFound          DenialReason = "employee_not_found"
	ReasonInvalidDateRange          DenialReason = "invalid_date_range"
	ReasonExceedsConsecutiveLimit   DenialReason = "exceeds_consecutive_limit"
	ReasonExceedsConcurrentLeaveCap DenialReason = "exceeds_concurrent_leave_cap"
	ReasonLedgerDateNotFound        DenialReason = "ledger_date_not_found"
)

var reasonErrors = map[DenialReason]error{
	ReasonInvalidShift:              ErrInvalidShift,
	ReasonEmployeeNotFound:          ErrEmployeeNotFound,
	ReasonInvalidDateRange:          ErrInvalidDateRange,
	ReasonExceedsConsecutiveLimit:   ErrExceedsConsecutiveLimit,
	ReasonExceedsConcurrentLeaveCap: ErrExceedsConcurrentLeaveCap,
	ReasonLedgerDateNotFound:        ErrLedgerDateNotFound,
}

// Decision - итог рассмотрения заявки
type Decision struct {
	RequestID    string       `json:"request_id"`
	Outcome      Outcome      `json:"outcome"`
	Reason       DenialReason `json:"reason,omitempty"`
	Detail       string       `json:"detail,omitempty"`
	ConflictDate *time.Time   `json:"conflict_date,omitempty"`
	NewWorkdays  int          `json:"new_workdays"`
	PriorRun     int          `json:"prior_run"`
	MarkedDates  []time.Time  `json:"marked_dates"`
	SkippedDates []time.Time  `json:"skipped_dates"`
}

// Approved проверяет, одобрена ли заявка
func (d *Decision) Approved() bool {
	return d.Outcome == OutcomeApproved
}

// LeaveTaken возвращает количество отмеченных дней отпуска
func (d *Decision) LeaveTaken() int {
	return len(d.MarkedDates)
}

// Err возвращает ошибку-причину отказа или nil для одобренной заявки
func (d *Decision) Err() error {
	if d.Approved() || d.Reason == ReasonNone {
		return nil
	}
	base, ok := reasonErrors[d.Reason]
	if !ok {
		return fmt.Errorf("отказ: %s", d.Reason)
	}
	if d.Detail == "" {
		return base
	}
	return fmt.Errorf("%w: %s", base, d.Detail)
}

// Remarks - короткое описание решения для журнала
func (d *Decision) Remarks() string {
	if d.Approved() {
		return fmt.Sprintf("leave taken: %d", d.LeaveTaken())
	}
	if d.ConflictDate != nil {
		return fmt.Sprintf("%s on %s", d.Reason, d.ConflictDate.Format(DateLayout))
	}
	if d.Detail != "" {
		return fmt.Sprintf("%s: %s", d.Reason, d.Detail)
	}
	return string(d.Reason)
}

// CancelResult - итог отмены отпуска
type CancelResult struct {
	RequestID        string      `json:"request_id"`
	CancelledDates   []time.Time `json:"cancelled_dates"`
	NothingToCancel  []time.Time `json:"nothing_to_cancel"`
	CancellationMade bool        `json:"cancellation_made"`
	Decision         *Decision   `json:"decision,omitempty"` // заполнено, если отмена отклонена на проверках
}

// DateLayout - формат дат во вводе и в журнале
const DateLayout = "2006-01-02"
