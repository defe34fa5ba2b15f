package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nanny-payroll-bot/internal/logging"
	"nanny-payroll-bot/internal/models"
	"nanny-payroll-bot/internal/repository"

	"github.com/sirupsen/logrus"
)

type UserService struct {
	repo   repository.UserRepository
	logger *logrus.Logger
}

func NewUserService(repo repository.UserRepository) *UserService {
	return &UserService{
		repo:   repo,
		logger: logging.New(),
	}
}

var roleLabels = map[string]string{
	models.RoleParent: "👪 Родитель",
	models.RoleNanny:  "🧸 Няня",
	models.RoleAdmin:  "👑 Администратор",
}

// RoleLabel возвращает название роли для вывода
func RoleLabel(role string) string {
	if label, ok := roleLabels[role]; ok {
		return label
	}
	return role
}

// CreateUser создает пользователя. Самостоятельно можно выбрать только роль родителя или няни.
func (s *UserService) CreateUser(ctx context.Context, chatID int64, username, firstName, lastName, role string) (*models.User, error) {
	firstName = strings.TrimSpace(firstName)
	if firstName == "" {
		return nil, invalidInput("имя не может быть пустым")
	}

	if role == "" {
		role = models.RoleNanny
	}
	if role != models.RoleParent && role != models.RoleNanny {
		return nil, invalidInput("роль должна быть parent или nanny")
	}

	user := &models.User{
		ChatID:    chatID,
		Username:  username,
		FirstName: firstName,
		LastName:  strings.TrimSpace(lastName),
		Role:      role,
	}

	if err := s.repo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("ошибка создания пользователя: %w", err)
	}

	return user, nil
}

// GetUser возвращает пользователя по chatID
func (s *UserService) GetUser(ctx context.Context, chatID int64) (*models.User, error) {
	user, err := s.repo.GetByChatID(ctx, chatID)
	if err != nil {
		return nil, fmt.Errorf("ошибка получения пользователя: %w", err)
	}

	if user == nil {
		return nil, ErrUserNotFound
	}

	return user, nil
}

// UpdateRole обновляет роль пользователя (только для админов)
func (s *UserService) UpdateRole(ctx context.Context, adminChatID, targetChatID int64, role string) error {
	if !models.IsValidRole(role) {
		return invalidInput("неизвестная роль %q", role)
	}

	admin, err := s.repo.GetByChatID(ctx, adminChatID)
	if err != nil {
		return fmt.Errorf("ошибка проверки админа: %w", err)
	}

	if admin == nil || !admin.IsAdmin() {
		return fmt.Errorf("%w: только администраторы могут менять роли", ErrForbidden)
	}

	if err := s.repo.UpdateRole(ctx, targetChatID, role); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	return nil
}

// CanManagePayroll проверяет, может ли пользователь вести договоры и отмечать выплаты
func (s *UserService) CanManagePayroll(ctx context.Context, chatID int64) (bool, error) {
	user, err := s.repo.GetByChatID(ctx, chatID)
	if err != nil {
		return false, err
	}

	return user != nil && user.CanManagePayroll(), nil
}

// DeleteUser удаляет пользователя
func (s *UserService) DeleteUser(ctx context.Context, chatID int64) error {
	if err := s.repo.Delete(ctx, chatID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return err
	}
	return nil
}

// GetAllUsers возвращает всех пользователей
func (s *UserService) GetAllUsers(ctx context.Context) ([]*models.User, error) {
	return s.repo.GetAll(ctx)
}

// InitializeAdmin инициализирует администратора из конфига
func (s *UserService) InitializeAdmin(ctx context.Context, adminChatID int64) error {
	if adminChatID == 0 {
		return nil // Админ не задан в конфиге
	}

	existingUser, err := s.repo.GetByChatID(ctx, adminChatID)
	if err != nil {
		return err
	}

	if existingUser != nil {
		if existingUser.IsAdmin() {
			return nil
		}
		return s.repo.UpdateRole(ctx, adminChatID, models.RoleAdmin)
	}

	adminUser := &models.User{
		ChatID:    adminChatID,
		Username:  "admin",
		FirstName: "Администратор",
		Role:      models.RoleAdmin,
	}

	s.logger.WithField("chat_id", adminChatID).Info("Bootstrapping admin user")
	return s.repo.Create(ctx, adminUser)
}

// FormatUserInfo форматирует информацию о пользователе для вывода
func FormatUserInfo(user *models.User) string {
	var lines []string

	lines = append(lines, "👤 Профиль пользователя:")
	lines = append(lines, "")
	lines = append(lines, fmt.Sprintf("🆔 ID чата: %d", user.ChatID))

	if user.Username != "" {
		lines = append(lines, fmt.Sprintf("📛 Никнейм: @%s", user.Username))
	}

	lines = append(lines, fmt.Sprintf("👨‍💼 Имя: %s", user.FirstName))

	if user.LastName != "" {
		lines = append(lines, fmt.Sprintf("👨‍💼 Фамилия: %s", user.LastName))
	}

	lines = append(lines, fmt.Sprintf("Роль: %s", RoleLabel(user.Role)))

	return strings.Join(lines, "\n")
}
