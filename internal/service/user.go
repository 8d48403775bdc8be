package service

import (
	"fmt"
	"strings"

	"shift-leave-bot/internal/models"
	"shift-leave-bot/internal/repository"
)

type UserService struct {
	repo   *repository.UserRepository
	ledger repository.Ledger
}

func NewUserService(repo *repository.UserRepository, ledger repository.Ledger) *UserService {
	return &UserService{repo: repo, ledger: ledger}
}

// Register привязывает чат к сотруднику из книги отпусков.
// Повторная регистрация меняет привязку.
func (s *UserService) Register(chatID int64, username, employeeName string) (*models.User, error) {
	employeeName = strings.Join(strings.Fields(employeeName), " ")
	if employeeName == "" {
		return nil, fmt.Errorf("имя не может быть пустым")
	}

	_, found, err := s.ledger.ReadEmployeeIndex(employeeName)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска сотрудника: %w", err)
	}
	if !found {
		return nil, fmt.Errorf("%w: %s", models.ErrEmployeeNotFound, employeeName)
	}

	user, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}

	if user == nil {
		user = &models.User{
			ChatID:       chatID,
			Username:     username,
			EmployeeName: employeeName,
			Role:         string(models.RoleClient),
		}
		if err := s.repo.Create(user); err != nil {
			return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
		}
		return user, nil
	}

	user.EmployeeName = employeeName
	if username != "" {
		user.Username = username
	}
	if err := s.repo.Update(user); err != nil {
		return nil, fmt.Errorf("ошибка обновления пользователя: %w", err)
	}
	return user, nil
}

// GetUser возвращает пользователя по chatID
func (s *UserService) GetUser(chatID int64) (*models.User, error) {
	user, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}

	if user == nil {
		return nil, fmt.Errorf("пользователь не найден")
	}

	return user, nil
}

// UpdateRole обновляет роль пользователя (только для админов)
func (s *UserService) UpdateRole(adminChatID, targetChatID int64, role models.Role) error {
	isAdmin, err := s.IsAdmin(adminChatID)
	if err != nil {
		return fmt.Errorf("ошибка проверки админа: %w", err)
	}
	if !isAdmin {
		return fmt.Errorf("доступ запрещен: только администраторы могут менять роли")
	}

	return s.repo.UpdateRole(targetChatID, role)
}

// FormatUserInfo форматирует информацию о пользователе для вывода
func (s *UserService) FormatUserInfo(user *models.User) string {
	var lines []string

	lines = append(lines, "👤 Профиль:")
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("🆔 ID чата: %d", user.ChatID))

	if user.Username != "" {
		lines = append(lines, fmt.Sprintf("📛 Никнейм: @%s", user.Username))
	}

	if user.IsLinked() {
		lines = append(lines, fmt.Sprintf("👨‍💼 Сотрудник: %s", user.EmployeeName))
	} else {
		lines = append(lines, "👨‍💼 Сотрудник не указан, используйте /register Имя Фамилия")
	}

	roleEmoji := "👤"
	if user.IsAdmin() {
		roleEmoji = "👑"
	}
	lines = append(lines, fmt.Sprintf("%s Роль: %s", roleEmoji, user.Role))

	return strings.Join(lines, "\n")
}

// Unregister отвязывает чат от сотрудника. Запись обычного пользователя
// удаляется, у администратора сбрасывается только привязка.
func (s *UserService) Unregister(chatID int64) error {
	user, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return fmt.Errorf("ошибка получения пользователя: %w", err)
	}
	if user == nil || !user.IsLinked() {
		return fmt.Errorf("чат не привязан к сотруднику")
	}

	if user.IsAdmin() {
		user.EmployeeName = ""
		return s.repo.Update(user)
	}
	return s.repo.Delete(chatID)
}

// LinkedChats возвращает чаты, привязанные к сотруднику
func (s *UserService) LinkedChats(employeeName string) ([]int64, error) {
	users, err := s.repo.GetByEmployee(employeeName)
	if err != nil {
		return nil, fmt.Errorf("ошибка поиска чатов сотрудника: %w", err)
	}

	chats := make([]int64, 0, len(users))
	for _, u := range users {
		chats = append(chats, u.ChatID)
	}
	return chats, nil
}

// IsAdmin проверяет, является ли пользователь администратором
func (s *UserService) IsAdmin(chatID int64) (bool, error) {
	user, err := s.repo.GetByChatID(chatID)
	if err != nil {
		return false, err
	}

	return user != nil && user.IsAdmin(), nil
}

// InitializeAdmin инициализирует администратора из конфига
func (s *UserService) InitializeAdmin(adminChatID int64) error {
	if adminChatID == 0 {
		return nil // Админ не задан в конфиге
	}

	existingUser, err := s.repo.GetByChatID(adminChatID)
	if err != nil {
		return err
	}

	if existingUser != nil {
		return s.repo.UpdateRole(adminChatID, models.RoleAdmin)
	}

	return s.repo.Create(&models.User{
		ChatID:   adminChatID,
		Username: "admin",
		Role:     string(models.RoleAdmin),
	})
}
