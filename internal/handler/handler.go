package handler

import (
	"context"
	"strings"

	"nanny-payroll-bot/internal/config"
	"nanny-payroll-bot/internal/service"
	"nanny-payroll-bot/pkg/telegram"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

type Handler struct {
	client          *telegram.Client
	userService     *service.UserService
	payrollService  *service.PayrollService
	contractService *service.ContractService
	eventService    *service.ScheduleEventService
	userStates      map[int64]string
	config          *config.BotConfig
}

func NewHandler(
	client *telegram.Client,
	userService *service.UserService,
	payrollService *service.PayrollService,
	contractService *service.ContractService,
	eventService *service.ScheduleEventService,
	cfg *config.BotConfig,
) *Handler {
	return &Handler{
		client:          client,
		userService:     userService,
		payrollService:  payrollService,
		contractService: contractService,
		eventService:    eventService,
		userStates:      make(map[int64]string),
		config:          cfg,
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
	if callback.Message == nil {
		return
	}

	chatID := callback.Message.Chat.ID
	data := callback.Data

	// Отвечаем на callback (убираем "часики" у кнопки)
	defer h.client.Bot.Request(tgbotapi.NewCallback(callback.ID, ""))

	// Удаляем клавиатуру
	editMsg := tgbotapi.NewEditMessageReplyMarkup(chatID, callback.Message.MessageID, tgbotapi.NewInlineKeyboardMarkup())
	h.client.Bot.Request(editMsg)

	if id, ok := parseMarkPaidData(data); ok {
		h.markPaid(chatID, id)
		return
	}

	if strings.HasPrefix(data, rolePrefix) {
		h.handleRoleCallback(callback)
		return
	}

	switch data {
	case "confirm_delete":
		if err := h.userService.DeleteUser(context.Background(), chatID); err != nil {
			h.reply(chatID, "❌ Ошибка удаления профиля: "+err.Error())
		} else {
			h.reply(chatID, "✅ Ваш профиль успешно удален!")
		}

	case "cancel_delete":
		h.reply(chatID, "❌ Удаление профиля отменено.")
	}
}

func (h *Handler) handleMessage(message *tgbotapi.Message) {
	if message.From != nil {
		logrus.WithFields(logrus.Fields{
			"user": message.From.UserName,
			"chat": message.Chat.ID,
		}).Info(message.Text)
	}

	chatID := message.Chat.ID

	// Проверяем, находится ли пользователь в процессе создания профиля
	if state, exists := h.userStates[chatID]; exists && !message.IsCommand() {
		h.handleProfileState(message, state)
		return
	}

	if message.IsCommand() {
		delete(h.userStates, chatID)
		h.handleCommand(message)
		return
	}

	h.reply(chatID, "🤖 Я понимаю только команды. Используйте /help для списка команд.")
}

// reply отправляет текстовое сообщение и логирует ошибку отправки
func (h *Handler) reply(chatID int64, text string) {
	if err := h.client.SendText(chatID, text); err != nil {
		logrus.WithError(err).WithField("chat", chatID).Warn("Failed to send telegram message")
	}
}

func (h *Handler) send(msg tgbotapi.Chattable) {
	if _, err := h.client.Bot.Send(msg); err != nil {
		logrus.WithError(err).Warn("Failed to send telegram message")
	}
}
