package handler

import (
	"context"
	"fmt"
	"strings"

	"nanny-payroll-bot/internal/payroll"
	"nanny-payroll-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// addWork добавляет рабочую смену: /addwork 2024-01-15 08:00 18:00 [заметка]
func (h *Handler) addWork(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if !h.requireProfile(chatID) {
		return
	}

	in, err := parseWorkArgs(args)
	if err != nil {
		h.reply(chatID, "❌ Неверный формат.\nПример: /addwork 2024-01-15 08:00 18:00\nСмена через полночь: /addwork 2024-01-15 22:00 06:00")
		return
	}

	h.saveEvent(chatID, in)
}

// addEvent добавляет событие любого типа: /addevent pto 2024-01-15 [2024-01-19] [09:00 17:00] [название]
func (h *Handler) addEvent(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if !h.requireProfile(chatID) {
		return
	}

	in, err := parseEventArgs(args)
	if err != nil {
		h.reply(chatID, "❌ Неверный формат.\nПример: /addevent pto 2024-01-15 2024-01-19 Отпуск\nТипы: work, pto, unavailable, special")
		return
	}

	h.saveEvent(chatID, in)
}

func (h *Handler) saveEvent(chatID int64, in service.ScheduleEventInput) {
	event, err := h.eventService.Add(context.Background(), in)
	if err != nil {
		h.reply(chatID, "❌ Ошибка сохранения события: "+err.Error())
		return
	}

	text := fmt.Sprintf("✅ Событие #%d добавлено на %s.", event.ID, payroll.DisplayDate(event.StartDate))
	if event.IsWork() {
		text += fmt.Sprintf("\n⏱ Длительность: %.1f ч", float64(payroll.EventMinutes(*event))/60)
	}
	h.reply(chatID, text)
}

// showEvents показывает последние события: /events [количество]
func (h *Handler) showEvents(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if !h.requireProfile(chatID) {
		return
	}

	events, err := h.eventService.Recent(context.Background(), parseLimit(args, 10, 50))
	if err != nil {
		h.reply(chatID, "❌ Ошибка получения событий: "+err.Error())
		return
	}

	h.reply(chatID, service.FormatEvents(events))
}

// deleteEvent удаляет событие: /delevent 12
func (h *Handler) deleteEvent(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if !h.requirePayrollManager(chatID) {
		return
	}

	id, err := parseID(args)
	if err != nil {
		h.reply(chatID, "❌ Укажите ID события.\nПример: /delevent 12")
		return
	}

	if err := h.eventService.Delete(context.Background(), id); err != nil {
		h.reply(chatID, "❌ Ошибка удаления события: "+err.Error())
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Событие #%d удалено.", id))
}

// importEvents импортирует события из JSON в тексте команды
func (h *Handler) importEvents(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if !h.requirePayrollManager(chatID) {
		return
	}

	if strings.TrimSpace(args) == "" {
		h.reply(chatID, `❌ Отправьте JSON после команды.
Пример: /importjson {"events": [{"type": "work", "start_date": "2024-01-01", "start_time": "08:00", "end_time": "16:00", "recurring": {"pattern": "weekly", "days": ["monday", "wednesday"], "until": "2024-03-01"}}]}`)
		return
	}

	count, err := h.eventService.ImportJSON(context.Background(), []byte(args))
	if err != nil {
		h.reply(chatID, "❌ Ошибка импорта: "+err.Error())
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Импортировано событий: %d", count))
}
