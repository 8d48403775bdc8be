package handler

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"shift-leave-bot/internal/models"
	"shift-leave-bot/internal/repository"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// requireAdmin проверяет права и сообщает об отказе
func (h *Handler) requireAdmin(chatID int64) bool {
	isAdmin, err := h.userService.IsAdmin(chatID)
	if err != nil {
		h.reply(chatID, "❌ Ошибка проверки прав доступа: "+err.Error())
		return false
	}

	if !isAdmin {
		h.reply(chatID, "❌ Доступ запрещен. Эта команда только для администраторов.")
		return false
	}
	return true
}

// requestLeaveFor - заявка на отпуск от имени сотрудника
func (h *Handler) requestLeaveFor(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if !h.requireAdmin(chatID) {
		return
	}

	parts, err := splitArgs(args, 4)
	if err != nil {
		h.reply(chatID, "❌ "+err.Error()+"\nПример: /leavefor Jane Doe; Red; 04.01; 11.01")
		return
	}

	start, err := parseDate(parts[2], h.config.PlanningYear)
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}
	end, err := parseDate(parts[3], h.config.PlanningYear)
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}

	logrus.WithFields(logrus.Fields{"admin": chatID, "employee": parts[0]}).Info("Leave requested by admin")
	decision := h.submitLeave(chatID, models.LeaveRequest{
		EmployeeName: parts[0],
		Shift:        parts[1],
		StartDate:    start,
		EndDate:      end,
	})
	if decision != nil && decision.Approved() {
		h.notifyEmployee(chatID, parts[0], decision)
	}
}

// notifyEmployee сообщает сотруднику об отпуске, оформленном администратором
func (h *Handler) notifyEmployee(adminChatID int64, employeeName string, decision *models.Decision) {
	chats, err := h.userService.LinkedChats(employeeName)
	if err != nil {
		logrus.WithError(err).WithField("employee", employeeName).Error("Failed to find employee chats")
		return
	}

	text := "📢 Администратор оформил вам отпуск.\n\n" + formatDecision(decision)
	for _, chat := range chats {
		if chat == adminChatID {
			continue
		}
		h.reply(chat, text)
	}
}

// addEmployee добавляет сотрудника в книгу
func (h *Handler) addEmployee(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if !h.requireAdmin(chatID) {
		return
	}

	parts, err := splitArgs(args, 2)
	if err != nil {
		h.reply(chatID, "❌ "+err.Error()+"\nПример: /addemployee Jane Doe; Red")
		return
	}

	err = h.rosterService.AddEmployee(parts[0], parts[1])
	switch {
	case errors.Is(err, repository.ErrEmployeeExists):
		h.reply(chatID, fmt.Sprintf("⚠️ Сотрудник %s уже есть в книге.", parts[0]))
	case errors.Is(err, models.ErrInvalidShift):
		h.reply(chatID, "❌ Неизвестная смена. Доступные смены: Red, Green, Blue, Yellow")
	case err != nil:
		logrus.WithError(err).Error("Failed to add employee")
		h.reply(chatID, "❌ Ошибка добавления сотрудника: "+err.Error())
	default:
		h.reply(chatID, fmt.Sprintf("✅ Сотрудник %s добавлен в смену %s", parts[0], models.ParseShift(parts[1])))
	}
}

// loadRoster загружает сотрудников из файла ROSTER_FILE
func (h *Handler) loadRoster(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if !h.requireAdmin(chatID) {
		return
	}

	result, err := h.rosterService.LoadFromJSON(h.config.RosterFile)
	if err != nil {
		logrus.WithError(err).Error("Failed to load roster")
		h.reply(chatID, "❌ Ошибка загрузки сотрудников: "+err.Error())
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Загружено сотрудников: %d\n⏭ Уже были в книге: %d", len(result.Added), len(result.Skipped)))
}

// showEmployees показывает сотрудников книги
func (h *Handler) showEmployees(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if !h.requireAdmin(chatID) {
		return
	}

	employees, err := h.rosterService.Employees()
	if err != nil {
		h.reply(chatID, "❌ Ошибка чтения книги: "+err.Error())
		return
	}

	h.reply(chatID, h.rosterService.FormatEmployees(employees))
}

// promoteToAdmin назначает пользователя администратором
func (h *Handler) promoteToAdmin(message *tgbotapi.Message, args string) {
	h.changeRole(message.Chat.ID, args, models.RoleAdmin)
}

// demoteToClient снимает пользователя с должности администратора
func (h *Handler) demoteToClient(message *tgbotapi.Message, args string) {
	h.changeRole(message.Chat.ID, args, models.RoleClient)
}

func (h *Handler) changeRole(chatID int64, args string, role models.Role) {
	if !h.requireAdmin(chatID) {
		return
	}

	targetChatID, err := strconv.ParseInt(strings.TrimSpace(args), 10, 64)
	if err != nil {
		h.reply(chatID, "❌ Неверный формат ID.\nID должен быть числом.")
		return
	}

	// Не позволяем снять главного администратора из конфига
	if role != models.RoleAdmin && targetChatID == h.config.BaseAdminChatID && h.config.BaseAdminChatID != 0 {
		h.reply(chatID, "❌ Нельзя снять главного администратора, заданного в конфигурации!")
		return
	}

	if err := h.userService.UpdateRole(chatID, targetChatID, role); err != nil {
		h.reply(chatID, "❌ Ошибка изменения роли: "+err.Error())
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Пользователь с ID %d теперь %s!", targetChatID, role))
}
