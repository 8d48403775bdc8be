package handler

import (
	"strings"

	"shift-leave-bot/internal/config"
	"shift-leave-bot/internal/service"
	"shift-leave-bot/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

const stateAwaitingEmployee = "awaiting_employee_name"

type Handler struct {
	client        *telegram.Client
	userService   *service.UserService
	leaveService  *service.LeaveService
	rosterService *service.RosterService
	auditService  *service.AuditService
	userStates    map[int64]string
	config        *config.Config
}

func NewHandler(
	client *telegram.Client,
	userService *service.UserService,
	leaveService *service.LeaveService,
	rosterService *service.RosterService,
	auditService *service.AuditService,
	cfg *config.Config,
) *Handler {
	return &Handler{
		client:        client,
		userService:   userService,
		leaveService:  leaveService,
		rosterService: rosterService,
		auditService:  auditService,
		userStates:    make(map[int64]string),
		config:        cfg,
	}
}

func (h *Handler) HandleUpdates(updates tgbotapi.UpdatesChannel) {
	for update := range updates {
		// Обработка callback query (для inline кнопок)
		if update.CallbackQuery != nil {
			h.handleCallbackQuery(update.CallbackQuery)
			continue
		}

		if update.Message == nil {
			continue
		}

		h.handleMessage(update.Message)
	}
}

// handleCallbackQuery обрабатывает inline кнопки
func (h *Handler) handleCallbackQuery(callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID
	data := callback.Data

	// Удаляем клавиатуру
	editMsg := tgbotapi.NewEditMessageReplyMarkup(chatID, callback.Message.MessageID, tgbotapi.NewInlineKeyboardMarkup())
	h.client.Bot.Send(editMsg)

	switch {
	case strings.HasPrefix(data, confirmCancelPrefix):
		h.confirmCancel(chatID, strings.TrimPrefix(data, confirmCancelPrefix))
	case data == abortCancelData:
		h.reply(chatID, "❌ Отмена отпуска не выполнена.")
	}

	// Отвечаем на callback (убираем "часики" у кнопки)
	callbackConfig := tgbotapi.NewCallback(callback.ID, "")
	h.client.Bot.Send(callbackConfig)
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	logrus.Infof("[%s] %s", message.From.UserName, message.Text)

	chatID := message.Chat.ID

	// Пользователь в процессе регистрации
	if state, exists := h.userStates[chatID]; exists && !message.IsCommand() {
		h.handleRegisterState(message, state)
		return
	}
	delete(h.userStates, chatID)

	if message.IsCommand() {
		h.handleCommand(message)
		return
	}

	h.reply(chatID, "🤖 Я понимаю только команды. Используйте /help для списка команд.")
}

func (h *Handler) reply(chatID int64, text string) {
	msg := tgbotapi.NewMessage(chatID, text)
	if _, err := h.client.Bot.Send(msg); err != nil {
		logrus.WithError(err).WithField("chat_id", chatID).Error("Failed to send message")
	}
}
