package handler

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"nanny-payroll-bot/internal/models"
	"nanny-payroll-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) requireAdmin(chatID int64) bool {
	user, err := h.userService.GetUser(context.Background(), chatID)
	if err != nil || !user.IsAdmin() {
		h.reply(chatID, "❌ Доступ запрещен. Эта команда только для администраторов.")
		return false
	}
	return true
}

// showAllUsers показывает всех пользователей
func (h *Handler) showAllUsers(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if !h.requireAdmin(chatID) {
		return
	}

	users, err := h.userService.GetAllUsers(context.Background())
	if err != nil {
		h.reply(chatID, "❌ Ошибка получения списка пользователей: "+err.Error())
		return
	}

	if len(users) == 0 {
		h.reply(chatID, "📭 Список пользователей пуст.")
		return
	}

	lines := []string{"📋 Все пользователи:", ""}
	for i, user := range users {
		line := fmt.Sprintf("%d. %s %s", i+1, service.RoleLabel(user.Role), user.FirstName)
		if user.LastName != "" {
			line += " " + user.LastName
		}
		if user.Username != "" {
			line += fmt.Sprintf(" (@%s)", user.Username)
		}
		line += fmt.Sprintf(" - ID: %d", user.ChatID)
		lines = append(lines, line)
	}

	h.reply(chatID, strings.Join(lines, "\n"))
}

// setUserRole изменяет роль пользователя
func (h *Handler) setUserRole(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if !h.requireAdmin(chatID) {
		return
	}

	parts := strings.Fields(args)
	if len(parts) != 2 {
		h.reply(chatID, "❌ Неверный формат.\nПример: /setrole 123456789 parent\nДоступные роли: parent, nanny, admin")
		return
	}

	targetChatID, err := strconv.ParseInt(parts[0], 10, 64)
	if err != nil {
		h.reply(chatID, "❌ Неверный формат ID.\nID должен быть числом.")
		return
	}

	role := strings.ToLower(parts[1])

	// Не позволяем понизить главного администратора
	if role != models.RoleAdmin && targetChatID == h.config.BaseAdminChatID && h.config.BaseAdminChatID != 0 {
		h.reply(chatID, "❌ Нельзя изменить роль главного администратора, заданного в конфигурации!")
		return
	}

	if err := h.userService.UpdateRole(context.Background(), chatID, targetChatID, role); err != nil {
		h.reply(chatID, "❌ Ошибка изменения роли: "+err.Error())
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Роль пользователя с ID %d изменена на '%s'!", targetChatID, role))
}
