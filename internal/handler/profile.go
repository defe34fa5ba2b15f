package handler

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"nanny-payroll-bot/internal/models"
	"nanny-payroll-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

const (
	stateAwaitingFirstName = "awaiting_first_name"
	stateAwaitingLastName  = "awaiting_last_name:"
	stateAwaitingRole      = "awaiting_role:"

	rolePrefix = "role_"
)

// startProfileCreation начинает процесс создания профиля
func (h *Handler) startProfileCreation(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	// Проверяем, есть ли уже профиль
	if user, err := h.userService.GetUser(context.Background(), chatID); err == nil && user != nil {
		h.reply(chatID, "❌ У вас уже есть профиль!\nИспользуйте /myprofile чтобы посмотреть его.")
		return
	}

	h.userStates[chatID] = stateAwaitingFirstName

	h.reply(chatID, `👤 Создание профиля

Шаг 1 из 3:
✏️ Пожалуйста, отправьте ваше имя:`)
}

// handleProfileState обрабатывает шаги создания профиля
func (h *Handler) handleProfileState(message *tgbotapi.Message, state string) {
	chatID := message.Chat.ID
	text := strings.TrimSpace(message.Text)

	switch {
	case state == stateAwaitingFirstName:
		if text == "" {
			h.reply(chatID, "✏️ Имя не может быть пустым, отправьте ваше имя:")
			return
		}
		h.userStates[chatID] = stateAwaitingLastName + text

		h.reply(chatID, fmt.Sprintf(`Шаг 2 из 3:
✅ Имя сохранено: %s
✏️ Теперь отправьте вашу фамилию (если нет фамилии, отправьте "-"):`, text))

	case strings.HasPrefix(state, stateAwaitingLastName):
		firstName := strings.TrimPrefix(state, stateAwaitingLastName)
		lastName := text
		if lastName == "-" {
			lastName = ""
		}
		h.userStates[chatID] = stateAwaitingRole + firstName + "\n" + lastName

		keyboard := tgbotapi.NewInlineKeyboardMarkup(
			tgbotapi.NewInlineKeyboardRow(
				tgbotapi.NewInlineKeyboardButtonData("👪 Родитель", rolePrefix+models.RoleParent),
				tgbotapi.NewInlineKeyboardButtonData("🧸 Няня", rolePrefix+models.RoleNanny),
			),
		)
		msg := tgbotapi.NewMessage(chatID, "Шаг 3 из 3:\n👥 Выберите вашу роль:")
		msg.ReplyMarkup = keyboard
		h.send(msg)

	case strings.HasPrefix(state, stateAwaitingRole):
		h.reply(chatID, "👆 Выберите роль кнопкой выше.")
	}
}

// handleRoleCallback завершает создание профиля выбранной ролью
func (h *Handler) handleRoleCallback(callback *tgbotapi.CallbackQuery) {
	chatID := callback.Message.Chat.ID

	state, ok := h.userStates[chatID]
	if !ok || !strings.HasPrefix(state, stateAwaitingRole) {
		h.reply(chatID, "❌ Создание профиля не начато. Используйте /createprofile")
		return
	}
	delete(h.userStates, chatID)

	firstName, lastName, _ := strings.Cut(strings.TrimPrefix(state, stateAwaitingRole), "\n")
	role := strings.TrimPrefix(callback.Data, rolePrefix)

	username := ""
	if callback.From != nil {
		username = callback.From.UserName
	}

	user, err := h.userService.CreateUser(context.Background(), chatID, username, firstName, lastName, role)
	if err != nil {
		h.reply(chatID, "❌ Ошибка создания профиля: "+err.Error())
		return
	}

	h.reply(chatID, fmt.Sprintf(`🎉 Профиль успешно создан!

%s

Команда /payroll покажет расчет зарплаты.`, service.FormatUserInfo(user)))
}

// showProfile показывает профиль пользователя
func (h *Handler) showProfile(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	user, err := h.userService.GetUser(context.Background(), chatID)
	if err != nil {
		h.reply(chatID, "❌ Профиль не найден.\nИспользуйте /createprofile чтобы создать профиль.")
		return
	}

	h.reply(chatID, service.FormatUserInfo(user))
}

// deleteProfile запрашивает подтверждение удаления профиля
func (h *Handler) deleteProfile(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	keyboard := tgbotapi.NewInlineKeyboardMarkup(
		tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData("✅ Да, удалить", "confirm_delete"),
			tgbotapi.NewInlineKeyboardButtonData("❌ Нет, отменить", "cancel_delete"),
		),
	)

	msg := tgbotapi.NewMessage(chatID, "⚠️ Вы уверены, что хотите удалить свой профиль?\nЭто действие нельзя отменить.")
	msg.ReplyMarkup = keyboard
	h.send(msg)
}

// requirePayrollManager проверяет, что пользователь - родитель или админ
func (h *Handler) requirePayrollManager(chatID int64) bool {
	can, err := h.userService.CanManagePayroll(context.Background(), chatID)
	if err != nil {
		h.reply(chatID, "❌ Ошибка проверки прав доступа: "+err.Error())
		return false
	}
	if !can {
		h.reply(chatID, "❌ Доступ запрещен. Команда доступна родителям и администраторам.")
		return false
	}
	return true
}

// requireProfile проверяет, что пользователь зарегистрирован
func (h *Handler) requireProfile(chatID int64) bool {
	_, err := h.userService.GetUser(context.Background(), chatID)
	if errors.Is(err, service.ErrUserNotFound) {
		h.reply(chatID, "❌ Профиль не найден.\nИспользуйте /createprofile чтобы создать профиль.")
		return false
	}
	if err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return false
	}
	return true
}
