package handler

import (
	"fmt"

	"shift-leave-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

func (h *Handler) handleCommand(message *tgbotapi.Message) {
	command := message.Command()
	args := message.CommandArguments()

	switch command {
	case "start", "help":
		h.sendHelpMessage(message)
	case "helpadmin":
		h.sendAdminHelpMessage(message)

	// Профиль
	case "register":
		h.register(message, args)
	case "myprofile":
		h.showProfile(message)
	case "unregister":
		h.unregister(message)

	// Отпуска (все пользователи)
	case "leave":
		h.requestLeave(message, args)
	case "cancel":
		h.cancelLeave(message, args)
	case "workday", "checkday":
		h.checkWorkday(message, args)
	case "history":
		h.showHistory(message, args)

	// Администрирование
	case "leavefor":
		h.requestLeaveFor(message, args)
	case "addemployee":
		h.addEmployee(message, args)
	case "loadroster":
		h.loadRoster(message)
	case "employees":
		h.showEmployees(message)
	case "promote":
		h.promoteToAdmin(message, args)
	case "demote":
		h.demoteToClient(message, args)

	default:
		h.sendUnknownCommand(message)
	}
}

func (h *Handler) sendUnknownCommand(message *tgbotapi.Message) {
	h.reply(message.Chat.ID, "❌ Неизвестная команда. Используйте /help для списка команд.")
}

func (h *Handler) sendHelpMessage(message *tgbotapi.Message) {
	text := fmt.Sprintf(`📋 Доступные команды:

👤 Профиль:
/register Имя Фамилия - Привязать чат к сотруднику из книги отпусков
/myprofile - Показать мой профиль
/unregister - Отвязать чат от сотрудника

🏖️ Отпуска:
/leave смена дата_начала дата_окончания - Запросить отпуск
    Пример: /leave Red 04.01.%[1]d 11.01.%[1]d
/cancel смена дата_начала дата_окончания - Отменить отпуск
/workday смена дата - Проверить, рабочий ли день у смены
    Пример: /workday Blue 08.01
/history [N] - Мои последние заявки (по умолчанию 10)

💡 Правила:
• Отпуск ставится только на рабочие дни вашей смены
• Не больше %[2]d рабочих дней отпуска подряд
• Не больше %[3]d человек одной смены в отпуске в один день
• Даты только в %[1]d году, формат ДД.ММ.ГГГГ, ДД.ММ или ГГГГ-ММ-ДД`,
		h.config.PlanningYear, service.MaxConsecutiveLeave, service.MaxConcurrentLeave)

	h.reply(message.Chat.ID, text)
}

func (h *Handler) sendAdminHelpMessage(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if !h.requireAdmin(chatID) {
		logrus.WithField("chat_id", chatID).Warn("Unauthorized access to admin help command")
		return
	}

	text := `📋 Команды администратора:

👥 Сотрудники:
/addemployee Имя Фамилия; смена - Добавить сотрудника в книгу
/loadroster - Загрузить сотрудников из файла
/employees - Список сотрудников по сменам

🏖️ Отпуска:
/leavefor Имя Фамилия; смена; дата_начала; дата_окончания - Отпуск за сотрудника

👑 Роли:
/promote [ID] - Назначить администратора
/demote [ID] - Снять администратора`

	if h.config.BaseAdminChatID != 0 {
		text += fmt.Sprintf("\n\n🔧 ID главного администратора: %d", h.config.BaseAdminChatID)
	}

	h.reply(chatID, text)
}
