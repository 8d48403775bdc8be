package service

import (
	"errors"
	"fmt"
	"time"

	"shift-leave-bot/internal/models"
	"shift-leave-bot/internal/repository"
	"shift-leave-bot/internal/schedule"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	// MaxConsecutiveLeave - максимум рабочих дней отпуска подряд с учетом предыдущего блока
	MaxConsecutiveLeave = 8
	// MaxConcurrentLeave - сколько сотрудников одной смены могут быть в отпуске в один день
	MaxConcurrentLeave = 2
	// LookbackDays - сколько дней до начала заявки просматривается в поиске предыдущего блока
	LookbackDays = 8
)

// ErrAuditNotRecorded - решение принято и записано в книгу, но журнал не обновлен
var ErrAuditNotRecorded = errors.New("запись в журнал не добавлена")

// LeaveService принимает решения по заявкам на отпуск.
// Состояние дней каждый раз читается из книги заново.
type LeaveService struct {
	ledger       repository.Ledger
	calendar     *schedule.Calendar
	planningYear int
	locks        *shiftLocks
	logger       *logrus.Logger
	now          func() time.Time
	newID        func() string
}

func NewLeaveService(ledger repository.Ledger, calendar *schedule.Calendar, planningYear int) *LeaveService {
	return &LeaveService{
		ledger:       ledger,
		calendar:     calendar,
		planningYear: planningYear,
		locks:        newShiftLocks(),
		logger:       logrus.StandardLogger(),
		now:          time.Now,
		newID:        func() string { return uuid.NewString() },
	}
}

// RequestLeave рассматривает заявку: диапазон, смена, лимит подряд,
// лимит одновременных отпусков и запись дней. Отказ - это Decision,
// ошибка возвращается только при сбое книги.
func (s *LeaveService) RequestLeave(req models.LeaveRequest) (*models.Decision, error) {
	decision := &models.Decision{
		RequestID:    s.newID(),
		MarkedDates:  []time.Time{},
		SkippedDates: []time.Time{},
	}
	log := s.logger.WithFields(logrus.Fields{
		"request_id": decision.RequestID,
		"employee":   req.EmployeeName,
		"shift":      req.Shift,
		"action":     models.ActionBook,
	})

	dates, reason, detail := s.validateRange(req)
	if reason != models.ReasonNone {
		return s.deny(log, req, decision, reason, detail)
	}

	shift := models.ParseShift(req.Shift)
	unlock := s.locks.lock(shift)
	defer unlock()

	row, reason, err := s.validateShift(req)
	if err != nil {
		return nil, err
	}
	if reason != models.ReasonNone {
		return s.deny(log, req, decision, reason, "")
	}

	// Лимит рабочих дней подряд с учетом уже одобренного блока перед заявкой
	decision.NewWorkdays = s.calendar.CountWorkdays(shift, dates)
	decision.PriorRun, err = s.CountPrecedingConsecutiveLeave(row, shift, dates[0])
	if err != nil {
		return nil, err
	}
	if decision.NewWorkdays+decision.PriorRun > MaxConsecutiveLeave {
		detail := fmt.Sprintf("%d новых + %d предыдущих > %d", decision.NewWorkdays, decision.PriorRun, MaxConsecutiveLeave)
		return s.deny(log, req, decision, models.ReasonExceedsConsecutiveLimit, detail)
	}

	conflict, missing, err := s.firstConflict(shift, dates)
	if err != nil {
		return nil, err
	}
	if conflict != nil {
		decision.ConflictDate = conflict
		return s.deny(log, req, decision, models.ReasonExceedsConcurrentLeaveCap, conflict.Format(models.DateLayout))
	}
	if decision.NewWorkdays > 0 && len(missing) == decision.NewWorkdays {
		return s.deny(log, req, decision, models.ReasonLedgerDateNotFound, "")
	}

	if err := s.commit(log, row, shift, dates, decision); err != nil {
		return nil, err
	}

	decision.Outcome = models.OutcomeApproved
	log.WithFields(logrus.Fields{
		"leave_taken": decision.LeaveTaken(),
		"skipped":     len(decision.SkippedDates),
	}).Info("Leave approved")

	return decision, s.record(models.ActionBook, req, decision.RequestID, decision.Outcome, decision.Remarks())
}

// CancelLeave снимает отпуск с дней диапазона, где он стоит.
// Запись в журнал добавляется, только если что-то было отменено.
func (s *LeaveService) CancelLeave(req models.LeaveRequest) (*models.CancelResult, error) {
	result := &models.CancelResult{
		RequestID:       s.newID(),
		CancelledDates:  []time.Time{},
		NothingToCancel: []time.Time{},
	}
	log := s.logger.WithFields(logrus.Fields{
		"request_id": result.RequestID,
		"employee":   req.EmployeeName,
		"shift":      req.Shift,
		"action":     models.ActionCancel,
	})

	dates, reason, detail := s.validateRange(req)
	if reason != models.ReasonNone {
		result.Decision = s.denial(log, result.RequestID, reason, detail)
		return result, nil
	}

	shift := models.ParseShift(req.Shift)
	unlock := s.locks.lock(shift)
	defer unlock()

	row, reason, err := s.validateShift(req)
	if err != nil {
		return nil, err
	}
	if reason != models.ReasonNone {
		result.Decision = s.denial(log, result.RequestID, reason, "")
		return result, nil
	}

	for _, date := range dates {
		dayLog := log.WithField("date", date.Format(models.DateLayout))

		column, found, err := s.ledger.FindColumnForDate(date)
		if err != nil {
			return nil, fmt.Errorf("поиск колонки %s: %w", date.Format(models.DateLayout), err)
		}
		if !found {
			dayLog.Warn("Date not found in ledger, skipping")
			result.NothingToCancel = append(result.NothingToCancel, date)
			continue
		}

		status, err := s.statusAt(row, column)
		if err != nil {
			return nil, err
		}
		if status != models.StatusLeave {
			dayLog.Info("Nothing to cancel")
			result.NothingToCancel = append(result.NothingToCancel, date)
			continue
		}

		if err := s.ledger.WriteCell(row, column, models.StatusAvailable.CellValue()); err != nil {
			return nil, fmt.Errorf("отмена отпуска %s: %w", date.Format(models.DateLayout), err)
		}
		result.CancelledDates = append(result.CancelledDates, date)
	}

	result.CancellationMade = len(result.CancelledDates) > 0
	if !result.CancellationMade {
		log.Info("No leave cancelled")
		return result, nil
	}

	log.WithField("cancelled", len(result.CancelledDates)).Info("Leave cancelled")
	remarks := fmt.Sprintf("leave cancelled: %d", len(result.CancelledDates))
	return result, s.record(models.ActionCancel, req, result.RequestID, models.OutcomeCancelled, remarks)
}

// RejectUnparsedDates отклоняет заявку, даты которой не удалось разобрать.
// Отказ пишется в журнал так же, как отказ по диапазону из RequestLeave.
func (s *LeaveService) RejectUnparsedDates(req models.LeaveRequest, detail string) (*models.Decision, error) {
	decision := &models.Decision{
		RequestID:    s.newID(),
		MarkedDates:  []time.Time{},
		SkippedDates: []time.Time{},
	}
	log := s.logger.WithFields(logrus.Fields{
		"request_id": decision.RequestID,
		"employee":   req.EmployeeName,
		"shift":      req.Shift,
		"action":     models.ActionBook,
	})
	return s.deny(log, req, decision, models.ReasonInvalidDateRange, detail)
}

// RejectUnparsedCancel - то же для отмены, без записи в журнал
func (s *LeaveService) RejectUnparsedCancel(req models.LeaveRequest, detail string) *models.CancelResult {
	result := &models.CancelResult{
		RequestID:       s.newID(),
		CancelledDates:  []time.Time{},
		NothingToCancel: []time.Time{},
	}
	log := s.logger.WithFields(logrus.Fields{
		"request_id": result.RequestID,
		"employee":   req.EmployeeName,
		"shift":      req.Shift,
		"action":     models.ActionCancel,
	})
	result.Decision = s.denial(log, result.RequestID, models.ReasonInvalidDateRange, detail)
	return result
}

// IsWorkday проверяет рабочий день по коду смены
func (s *LeaveService) IsWorkday(shiftCode string, date time.Time) (bool, error) {
	shift := models.ParseShift(shiftCode)
	if !shift.IsValid() {
		return false, fmt.Errorf("%w: %q", models.ErrInvalidShift, shiftCode)
	}
	return s.calendar.IsWorkday(shift, date), nil
}

// commit отмечает отпуск на рабочих днях, где еще нет Off или Leave
func (s *LeaveService) commit(log *logrus.Entry, row int, shift models.Shift, dates []time.Time, decision *models.Decision) error {
	for _, date := range s.calendar.Workdays(shift, dates) {
		dayLog := log.WithField("date", date.Format(models.DateLayout))

		column, found, err := s.ledger.FindColumnForDate(date)
		if err != nil {
			return fmt.Errorf("поиск колонки %s: %w", date.Format(models.DateLayout), err)
		}
		if !found {
			dayLog.Warn("Date not found in ledger, skipping")
			decision.SkippedDates = append(decision.SkippedDates, date)
			continue
		}

		status, err := s.statusAt(row, column)
		if err != nil {
			return err
		}
		if status == models.StatusOff || status == models.StatusLeave {
			dayLog.WithField("status", status.String()).Info("Day already excluded, skipping")
			decision.SkippedDates = append(decision.SkippedDates, date)
			continue
		}

		if err := s.ledger.WriteCell(row, column, models.StatusLeave.CellValue()); err != nil {
			return fmt.Errorf("запись отпуска %s: %w", date.Format(models.DateLayout), err)
		}
		decision.MarkedDates = append(decision.MarkedDates, date)
	}
	return nil
}

// validateRange проверяет порядок дат и плановый год
func (s *LeaveService) validateRange(req models.LeaveRequest) ([]time.Time, models.DenialReason, string) {
	if req.StartDate.IsZero() || req.EndDate.IsZero() {
		return nil, models.ReasonInvalidDateRange, "не указаны даты"
	}

	dates, err := schedule.ExpandRange(req.StartDate, req.EndDate)
	if err != nil {
		return nil, models.ReasonInvalidDateRange, err.Error()
	}

	if !schedule.InYear(dates[0], s.planningYear) || !schedule.InYear(dates[len(dates)-1], s.planningYear) {
		return nil, models.ReasonInvalidDateRange, fmt.Sprintf("даты должны быть в %d году", s.planningYear)
	}
	return dates, models.ReasonNone, ""
}

// validateShift ищет сотрудника и сверяет заявленную смену с записанной
func (s *LeaveService) validateShift(req models.LeaveRequest) (int, models.DenialReason, error) {
	row, found, err := s.ledger.ReadEmployeeIndex(req.EmployeeName)
	if err != nil {
		return 0, models.ReasonNone, fmt.Errorf("поиск сотрудника: %w", err)
	}
	if !found {
		return 0, models.ReasonEmployeeNotFound, nil
	}

	recorded, err := s.recordedShift(row)
	if err != nil {
		return 0, models.ReasonNone, err
	}

	claimed := models.ParseShift(req.Shift)
	if !claimed.IsValid() || claimed != recorded {
		return row, models.ReasonInvalidShift, nil
	}
	return row, models.ReasonNone, nil
}

func (s *LeaveService) deny(
	log *logrus.Entry,
	req models.LeaveRequest,
	decision *models.Decision,
	reason models.DenialReason,
	detail string,
) (*models.Decision, error) {
	decision.Outcome = models.OutcomeDenied
	decision.Reason = reason
	decision.Detail = detail
	log.WithFields(logrus.Fields{"reason": reason, "detail": detail}).Warn("Leave denied")

	return decision, s.record(models.ActionBook, req, decision.RequestID, decision.Outcome, decision.Remarks())
}

// denial - отказ без записи в журнал (для отмены)
func (s *LeaveService) denial(log *logrus.Entry, requestID string, reason models.DenialReason, detail string) *models.Decision {
	log.WithFields(logrus.Fields{"reason": reason, "detail": detail}).Warn("Cancellation denied")
	return &models.Decision{
		RequestID:    requestID,
		Outcome:      models.OutcomeDenied,
		Reason:       reason,
		Detail:       detail,
		MarkedDates:  []time.Time{},
		SkippedDates: []time.Time{},
	}
}

// record добавляет одну запись журнала на решение
func (s *LeaveService) record(action string, req models.LeaveRequest, requestID string, outcome models.Outcome, remarks string) error {
	record := models.AuditRecord{
		RequestID: requestID,
		Timestamp: s.now(),
		Employee:  req.EmployeeName,
		Action:    action,
		StartDate: schedule.Day(req.StartDate),
		EndDate:   schedule.Day(req.EndDate),
		Outcome:   string(outcome),
		Remarks:   remarks,
	}

	if err := s.ledger.AppendRecord(record); err != nil {
		s.logger.WithError(err).WithField("request_id", requestID).Error("Failed to append audit record")
		return fmt.Errorf("%w: %v", ErrAuditNotRecorded, err)
	}
	return nil
}
