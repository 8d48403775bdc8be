package service

import (
	"fmt"
	"sort"
	"strings"

	"shift-leave-bot/internal/models"
	"shift-leave-bot/internal/repository"
)

// AuditService читает журнал решений по сотруднику
type AuditService struct {
	reader repository.AuditReader
}

func NewAuditService(reader repository.AuditReader) *AuditService {
	return &AuditService{reader: reader}
}

// History возвращает записи сотрудника, новые первыми
func (s *AuditService) History(name string) ([]models.AuditRecord, error) {
	if strings.TrimSpace(name) == "" {
		return nil, models.ErrEmployeeNotFound
	}

	records, err := s.reader.RecordsFor(name)
	if err != nil {
		return nil, fmt.Errorf("ошибка чтения журнала: %w", err)
	}

	sort.SliceStable(records, func(i, j int) bool {
		return records[i].Timestamp.After(records[j].Timestamp)
	})
	return records, nil
}

// FormatHistory форматирует записи журнала для вывода, не больше limit строк
func (s *AuditService) FormatHistory(name string, records []models.AuditRecord, limit int) string {
	if len(records) == 0 {
		return fmt.Sprintf("📭 По сотруднику %s записей нет.", name)
	}

	var lines []string
	lines = append(lines, fmt.Sprintf("📜 История заявок: %s", name))
	lines = append(lines, "")

	for i, r := range records {
		if limit > 0 && i >= limit {
			lines = append(lines, fmt.Sprintf("... и еще %d", len(records)-limit))
			break
		}

		emoji := "❌"
		switch models.Outcome(r.Outcome) {
		case models.OutcomeApproved:
			emoji = "✅"
		case models.OutcomeCancelled:
			emoji = "↩️"
		}

		lines = append(lines, fmt.Sprintf("%s %s %s: %s - %s (%s)",
			emoji,
			r.Timestamp.Format(models.AuditTimestampLayout),
			actionTitle(r.Action),
			r.StartDate.Format("02.01.2006"),
			r.EndDate.Format("02.01.2006"),
			r.Remarks,
		))
	}

	return strings.Join(lines, "\n")
}

func actionTitle(action string) string {
	switch action {
	case models.ActionBook:
		return "отпуск"
	case models.ActionCancel:
		return "отмена"
	default:
		return action
	}
}
