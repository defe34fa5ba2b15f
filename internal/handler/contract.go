package handler

import (
	"context"
	"fmt"

	"nanny-payroll-bot/internal/models"
	"nanny-payroll-bot/internal/payroll"
	"nanny-payroll-bot/internal/service"

	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

// addContract создает договор: /addcontract 2024-01-01 [2024-12-31|-] 20 [30|-] [название]
func (h *Handler) addContract(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if !h.requirePayrollManager(chatID) {
		return
	}

	in, err := parseContractArgs(args)
	if err != nil {
		h.reply(chatID, "❌ Неверный формат.\nПример: /addcontract 2024-01-01 - 20 30 Основной договор\n"+
			"Дата окончания и ставка сверхурочных необязательны, вместо них можно указать \"-\".")
		return
	}

	contract, err := h.contractService.Create(context.Background(), in)
	if err != nil {
		h.reply(chatID, "❌ Ошибка создания договора: "+err.Error())
		return
	}

	h.reply(chatID, fmt.Sprintf("✅ Договор #%d создан и активен.\n\n%s",
		contract.ID, service.FormatContracts([]models.Contract{*contract}, h.payrollService.Today())))
}

// showContracts показывает договоры и их сроки
func (h *Handler) showContracts(message *tgbotapi.Message) {
	chatID := message.Chat.ID

	if !h.requireProfile(chatID) {
		return
	}

	contracts, err := h.contractService.List(context.Background())
	if err != nil {
		h.reply(chatID, "❌ Ошибка получения договоров: "+err.Error())
		return
	}

	h.reply(chatID, service.FormatContracts(contracts, h.payrollService.Today()))
}

// deactivateContract снимает договор с расчета: /deactivate 3
func (h *Handler) deactivateContract(message *tgbotapi.Message, args string) {
	chatID := message.Chat.ID

	if !h.requirePayrollManager(chatID) {
		return
	}

	id, err := parseID(args)
	if err != nil {
		h.reply(chatID, "❌ Укажите ID договора.\nПример: /deactivate 3")
		return
	}

	if err := h.contractService.Deactivate(context.Background(), id); err != nil {
		h.reply(chatID, "❌ "+err.Error())
		return
	}

	msg := fmt.Sprintf("✅ Договор #%d деактивирован.", id)
	if active, err := h.contractService.Active(context.Background()); err == nil && active != nil {
		msg += fmt.Sprintf("\nРасчет ведется по договору #%d с %s.", active.ID, payroll.DisplayDate(active.StartDate))
	} else {
		msg += "\nАктивных договоров не осталось."
	}
	h.reply(chatID, msg)
}
