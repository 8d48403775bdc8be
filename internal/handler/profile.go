package handler

import (
	"errors"
	"fmt"
	"strings"

	"shift-leave-bot/internal/models"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// register привязывает чат к сотруднику, без аргументов спрашивает имя
func (h *Handler) register(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if strings.TrimSpace(args) == "" {
		h.userStates[chatID] = stateAwaitingEmployee
		h.reply(chatID, "👤 Привязка к сотруднику\n\n✏️ Отправьте имя и фамилию так, как они записаны в книге отпусков:")
		return
	}

	h.registerEmployee(message, args)
}

// handleRegisterState обрабатывает ответ с именем сотрудника
func (h *Handler) handleRegisterState(message *tgbotapi.Message, state string) {
	chatID := message.Chat.ID
	delete(h.userStates, chatID)

	if state == stateAwaitingEmployee {
		h.registerEmployee(message, message.Text)
	}
}

func (h *Handler) registerEmployee(message *tgbotapi.Message, name string) {
	chatID := message.Chat.ID

	user, err := h.userService.Register(chatID, message.From.UserName, name)
	if errors.Is(err, models.ErrEmployeeNotFound) {
		h.reply(chatID, fmt.Sprintf("❌ Сотрудник %q не найден в книге отпусков.\nПроверьте написание или обратитесь к администратору.", strings.TrimSpace(name)))
		return
	}
	if err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to register user")
		h.reply(chatID, "❌ Ошибка регистрации: "+err.Error())
		return
	}

	h.reply(chatID, fmt.Sprintf("🎉 Готово!\n\n%s", h.userService.FormatUserInfo(user)))
}

// unregister отвязывает чат от сотрудника
func (h *Handler) unregister(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if err := h.userService.Unregister(chatID); err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Warn("Failed to unregister user")
		h.reply(chatID, "❌ "+err.Error())
		return
	}

	h.reply(chatID, "👋 Чат отвязан от сотрудника.\nИспользуйте /register чтобы привязать его снова.")
}

// showProfile показывает профиль пользователя
func (h *Handler) showProfile(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	user, err := h.userService.GetUser(chatID)
	if err != nil {
		h.reply(chatID, "❌ Профиль не найден.\nИспользуйте /register чтобы привязать чат к сотруднику.")
		return
	}

	h.reply(chatID, h.userService.FormatUserInfo(user))
}

// linkedUser возвращает пользователя, привязанного к сотруднику, или сообщает об ошибке
func (h *Handler) linkedUser(chatID int64) (*models.User, bool) {
	user, err := h.userService.GetUser(chatID)
	if err != nil || user == nil || !user.IsLinked() {
		logrus.WithField("chat_id", chatID).Warn("Chat is not linked to an employee")
		h.reply(chatID, "❌ Чат не привязан к сотруднику.\nИспользуйте /register Имя Фамилия.")
		return nil, false
	}
	return user, true
}
