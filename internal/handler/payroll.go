package handler

import (
	"context"
	"errors"
	"fmt"
	"time"

	"nanny-payroll-bot/internal/payroll"
	"nanny-payroll-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
	"github.com/sirupsen/logrus"
)

// showPayroll сверяет текущий период и показывает сводку.
// Родителям и админам к неоплаченным периодам добавляются кнопки "оплачено".
func (h *Handler) showPayroll(chatID int64) {
	if !h.requireProfile(chatID) {
		return
	}

	overview, err := h.payrollService.Overview(context.Background())
	if err != nil {
		logrus.WithError(err).WithField("chat", chatID).Error("Failed to build payroll overview")
		h.reply(chatID, "❌ Не удалось загрузить данные о зарплате, попробуйте позже.")
		return
	}

	msg := tgbotapi.NewMessage(chatID, service.FormatOverview(overview))

	can, err := h.userService.CanManagePayroll(context.Background(), chatID)
	if err == nil && can {
		if keyboard, ok := markPaidKeyboard(overview.Unpaid()); ok {
			msg.ReplyMarkup = keyboard
		}
	}

	h.send(msg)
}

func markPaidKeyboard(views []payroll.PeriodView) (tgbotapi.InlineKeyboardMarkup, bool) {
	if len(views) == 0 {
		return tgbotapi.InlineKeyboardMarkup{}, false
	}

	rows := make([][]tgbotapi.InlineKeyboardButton, 0, len(views))
	for _, v := range views {
		rows = append(rows, tgbotapi.NewInlineKeyboardRow(
			tgbotapi.NewInlineKeyboardButtonData(service.PeriodButtonLabel(v), markPaidData(v.Record.ID)),
		))
	}
	return tgbotapi.NewInlineKeyboardMarkup(rows...), true
}

// markPaidCommand отмечает оплату: /paid 12 [2024-01-30]
func (h *Handler) markPaidCommand(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	id, paidOn, err := parsePaidArgs(args)
	if err != nil {
		h.reply(chatID, "❌ Неверный формат.\nПример: /paid 12 или /paid 12 2024-01-30\nID периода показан в /payroll")
		return
	}

	h.markPaidOn(chatID, id, paidOn)
}

// markPaid отмечает оплату сегодняшним днем (кнопка в /payroll)
func (h *Handler) markPaid(chatID int64, periodID uint) {
	h.markPaidOn(chatID, periodID, time.Time{})
}

func (h *Handler) markPaidOn(chatID int64, periodID uint, paidOn time.Time) {
	period, err := h.payrollService.MarkPaid(context.Background(), chatID, periodID, paidOn)
	switch {
	case errors.Is(err, service.ErrForbidden):
		h.reply(chatID, "❌ Доступ запрещен. Отмечать выплаты могут родители и администраторы.")
		return
	case errors.Is(err, service.ErrUserNotFound):
		h.reply(chatID, "❌ Профиль не найден.\nИспользуйте /createprofile чтобы создать профиль.")
		return
	case errors.Is(err, payroll.ErrPeriodNotFound):
		h.reply(chatID, fmt.Sprintf("❌ Период #%d не найден.", periodID))
		return
	case err != nil:
		h.reply(chatID, "❌ Ошибка отметки оплаты: "+err.Error())
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Период #%d отмечен оплаченным (%s).", period.ID, payroll.DisplayDate(period.PaidDate)))
	h.showPayroll(chatID)
}
