package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"shift-leave-bot/internal/models"
	"shift-leave-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const (
	confirmCancelPrefix = "confirm_cancel_"
	abortCancelData     = "abort_cancel"

	displayDateLayout = "02.01.2006"
	defaultHistory    = 10
)

// requestLeave запрашивает отпуск для сотрудника, привязанного к чату
func (h *Handler) requestLeave(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	user, ok := h.linkedUser(chatID)
	if !ok {
		return
	}

	if strings.TrimSpace(args) == "" {
		h.reply(chatID, fmt.Sprintf("🏖️ Формат команды:\n/leave смена дата_начала дата_окончания\n\nПример:\n/leave Red 04.01.%[1]d 11.01.%[1]d\n→ Отпуск на рабочие дни смены Red с 4 по 11 января", h.config.PlanningYear))
		return
	}

	shift, start, end, err := parseLeaveArgs(args, h.config.PlanningYear)
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}

	h.submitLeave(chatID, models.LeaveRequest{
		EmployeeName: user.EmployeeName,
		Shift:        shift,
		StartDate:    start,
		EndDate:      end,
	})
}

func (h *Handler) submitLeave(chatID int64, req models.LeaveRequest) *models.Decision {
	decision, err := h.leaveService.RequestLeave(req)
	if decision == nil {
		logrus.WithError(err).Error("Failed to process leave request")
		h.reply(chatID, "❌ Ошибка обработки заявки: "+err.Error())
		return nil
	}

	text := formatDecision(decision)
	if errors.Is(err, service.ErrAuditNotRecorded) {
		text += "\n\n⚠️ Решение не попало в журнал, сообщите администратору."
	}
	h.reply(chatID, text)
	return decision
}

// cancelLeave просит подтвердить отмену отпуска
func (h *Handler) cancelLeave(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if _, ok := h.linkedUser(chatID); !ok {
		return
	}

	if strings.TrimSpace(args) == "" {
		h.reply(chatID, "↩️ Формат команды:\n/cancel смена дата_начала дата_окончания")
		return
	}

	shift, start, end, err := parseLeaveArgs(args, h.config.PlanningYear)
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}

	data, err := cancelCallbackData(models.ParseShift(shift), start, end)
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Да, отменить", data),
			tgbotapi.NewInlineKeyboardButtonData("❌ Нет", abortCancelData),
		),
	)

	msg := tgbotapi.NewMessage(chatID, fmt.Sprintf("Отменить отпуск с %s по %s?", start.Format(displayDateLayout), end.Format(displayDateLayout)))
	msg.ReplyMarkup = keyboard
	if _, err := h.client.Bot.Send(msg); err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to send cancel confirmation")
	}
}

// confirmCancel выполняет отмену после подтверждения
func (h *Handler) confirmCancel(chatID int64, data string) {
	user, ok := h.linkedUser(chatID)
	if !ok {
		return
	}

	shift, start, end, err := parseCancelCallback(data)
	if err != nil {
		logrus.WithError(err).WithField("data", data).Warn("Bad cancel callback")
		h.reply(chatID, "❌ Ошибка: неверные данные отмены")
		return
	}

	result, err := h.leaveService.CancelLeave(models.LeaveRequest{
		EmployeeName: user.EmployeeName,
		Shift:        string(shift),
		StartDate:    start,
		EndDate:      end,
	})
	if result == nil {
		logrus.WithError(err).Error("Failed to cancel leave")
		h.reply(chatID, "❌ Ошибка отмены: "+err.Error())
		return
	}

	text := formatCancelResult(result)
	if errors.Is(err, service.ErrAuditNotRecorded) {
		text += "\n\n⚠️ Отмена не попала в журнал, сообщите администратору."
	}
	h.reply(chatID, text)
}

// checkWorkday проверяет, работает ли смена в указанную дату
func (h *Handler) checkWorkday(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	parts := strings.Fields(args)
	if len(parts) == 0 || len(parts) > 2 {
		h.reply(chatID, "❌ Формат команды: /workday смена [дата]\nПример: /workday Blue 08.01")
		return
	}

	date := time.Now()
	if len(parts) == 2 {
		parsed, err := parseDate(parts[1], h.config.PlanningYear)
		if err != nil {
			h.reply(chatID, "❌ "+err.Error())
			return
		}
		date = parsed
	}

	working, err := h.leaveService.IsWorkday(parts[0], date)
	if err != nil {
		h.reply(chatID, "❌ Неизвестная смена. Доступные смены: Red, Green, Blue, Yellow")
		return
	}

	response := fmt.Sprintf("📅 Дата: %s\n👥 Смена: %s\n", date.Format(displayDateLayout), models.ParseShift(parts[0]))
	if working {
		response += "✅ Рабочий день"
	} else {
		response += "❌ Выходной день"
	}
	h.reply(chatID, response)
}

// showHistory показывает последние записи журнала по сотруднику
func (h *Handler) showHistory(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	user, ok := h.linkedUser(chatID)
	if !ok {
		return
	}

	limit := defaultHistory
	if args = strings.TrimSpace(args); args != "" {
		n, err := strconv.Atoi(args)
		if err != nil || n <= 0 {
			h.reply(chatID, "❌ Укажите количество записей числом.\nПример: /history 5")
			return
		}
		limit = n
	}

	records, err := h.auditService.History(user.EmployeeName)
	if err != nil {
		logrus.WithError(err).Error("Failed to read audit history")
		h.reply(chatID, "❌ Ошибка получения истории: "+err.Error())
		return
	}

	h.reply(chatID, h.auditService.FormatHistory(user.EmployeeName, records, limit))
}

// parseDate парсит дату, без года подставляет плановый год
func parseDate(value string, year int) (time.Time, error) {
	formats := []string{
		models.DateLayout,
		"02.01.2006",
		"02-01-2006",
		"02.01",
		"02-01",
	}

	for _, format := range formats {
		if t, err := time.Parse(format, value); err == nil {
			if !strings.Contains(format, "2006") {
				t = time.Date(year, t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
			}
			return t, nil
		}
	}

	return time.Time{}, fmt.Errorf("неверный формат даты %q. Используйте ДД.ММ.ГГГГ, ДД.ММ или ГГГГ-ММ-ДД", value)
}

// parseLeaveArgs разбирает "смена начало [конец]", без конца берется один день
func parseLeaveArgs(args string, year int) (string, time.Time, time.Time, error) {
	parts := strings.Fields(args)
	if len(parts) < 2 || len(parts) > 3 {
		return "", time.Time{}, time.Time{}, fmt.Errorf("неверный формат. Используйте: смена дата_начала дата_окончания")
	}

	start, err := parseDate(parts[1], year)
	if err != nil {
		return "", time.Time{}, time.Time{}, err
	}

	end := start
	if len(parts) == 3 {
		if end, err = parseDate(parts[2], year); err != nil {
			return "", time.Time{}, time.Time{}, err
		}
	}

	return parts[0], start, end, nil
}

// splitArgs делит аргументы по ";" и проверяет их количество
func splitArgs(args string, want int) ([]string, error) {
	parts := strings.Split(args, ";")
	if len(parts) != want {
		return nil, fmt.Errorf("ожидается %d значений через \";\", получено %d", want, len(parts))
	}

	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
		if parts[i] == "" {
			return nil, fmt.Errorf("значение %d не заполнено", i+1)
		}
	}
	return parts, nil
}

// callbackDataLimit - ограничение Telegram на callback_data в байтах
const callbackDataLimit = 64

// cancelCallbackData кодирует отмену в кнопку, принимает только известные смены
func cancelCallbackData(shift models.Shift, start, end time.Time) (string, error) {
	if !shift.IsValid() {
		return "", fmt.Errorf("неизвестная смена, используйте Red, Green, Blue или Yellow")
	}

	data := fmt.Sprintf("%s%s_%s_%s", confirmCancelPrefix, shift, start.Format(models.DateLayout), end.Format(models.DateLayout))
	if len(data) > callbackDataLimit {
		return "", fmt.Errorf("слишком длинные данные кнопки: %d байт", len(data))
	}
	return data, nil
}

func parseCancelCallback(data string) (models.Shift, time.Time, time.Time, error) {
	parts := strings.Split(data, "_")
	if len(parts) != 3 {
		return models.ShiftUnknown, time.Time{}, time.Time{}, fmt.Errorf("unexpected callback %q", data)
	}

	shift := models.ParseShift(parts[0])
	if !shift.IsValid() {
		return models.ShiftUnknown, time.Time{}, time.Time{}, fmt.Errorf("unknown shift in callback %q", data)
	}

	start, err := time.Parse(models.DateLayout, parts[1])
	if err != nil {
		return models.ShiftUnknown, time.Time{}, time.Time{}, err
	}
	end, err := time.Parse(models.DateLayout, parts[2])
	if err != nil {
		return models.ShiftUnknown, time.Time{}, time.Time{}, err
	}
	return shift, start, end, nil
}

// denialText - причина отказа для пользователя
func denialText(d *models.Decision) string {
	switch d.Reason {
	case models.ReasonInvalidShift:
		return "смена не совпадает с записанной в книге"
	case models.ReasonEmployeeNotFound:
		return "сотрудник не найден в книге отпусков"
	case models.ReasonInvalidDateRange:
		if d.Detail != "" {
			return "неверные даты: " + d.Detail
		}
		return "неверные даты"
	case models.ReasonExceedsConsecutiveLimit:
		return fmt.Sprintf("больше %d рабочих дней отпуска подряд (новых %d, уже взято перед заявкой %d)",
			service.MaxConsecutiveLeave, d.NewWorkdays, d.PriorRun)
	case models.ReasonExceedsConcurrentLeaveCap:
		if d.ConflictDate != nil {
			return fmt.Sprintf("%s в отпуске уже %d человека из смены", d.ConflictDate.Format(displayDateLayout), service.MaxConcurrentLeave)
		}
		return "достигнут лимит отпусков в смене"
	case models.ReasonLedgerDateNotFound:
		return "дат нет в книге отпусков"
	default:
		return string(d.Reason)
	}
}

// formatDecision форматирует решение по заявке
func formatDecision(d *models.Decision) string {
	if !d.Approved() {
		return "❌ Отпуск не одобрен: " + denialText(d)
	}

	var lines []string
	lines = append(lines, "✅ Отпуск одобрен!")
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("📅 Отмечено рабочих дней: %d", d.LeaveTaken()))
	if len(d.MarkedDates) > 0 {
		lines = append(lines, "🏖️ "+joinDates(d.MarkedDates))
	}
	if len(d.SkippedDates) > 0 {
		lines = append(lines, "⏭ Пропущено (уже Off/Leave или нет в книге): "+joinDates(d.SkippedDates))
	}
	lines = append(lines, "")
	lines = append(lines, "🆔 "+d.RequestID)
	return strings.Join(lines, "\n")
}

// formatCancelResult форматирует итог отмены
func formatCancelResult(r *models.CancelResult) string {
	if r.Decision != nil {
		return "❌ Отмена не выполнена: " + denialText(r.Decision)
	}
	if !r.CancellationMade {
		return "📭 В указанные даты отпуска нет, отменять нечего."
	}

	return fmt.Sprintf("↩️ Отпуск отменен: %d дн.\n📅 %s", len(r.CancelledDates), joinDates(r.CancelledDates))
}

func joinDates(dates []time.Time) string {
	parts := make([]string, 0, len(dates))
	for _, d := range dates {
		parts = append(parts, d.Format("02.01"))
	}
	return strings.Join(parts, ", ")
}
