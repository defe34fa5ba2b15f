package handler

import (
	tgbotapi "github.com/go-telegram-bot-api/telegram-bot-api/v5"
)

func (h *Handler) handleCommand(message *tgbotapi.Message) {
	command := message.Command()
	args := message.CommandArguments()

	switch command {
	case "start":
		h.sendStartMessage(message)
	case "help":
		h.sendHelpMessage(message)

	// Профиль
	case "createprofile":
		h.startProfileCreation(message)
	case "myprofile":
		h.showProfile(message)
	case "deleteprofile":
		h.deleteProfile(message)

	// Администрирование
	case "allusers":
		h.showAllUsers(message)
	case "setrole":
		h.setUserRole(message, args)

	// Договоры (родители и админы)
	case "addcontract":
		h.addContract(message, args)
	case "contracts":
		h.showContracts(message)
	case "deactivate":
		h.deactivateContract(message, args)

	// Календарь
	case "addwork":
		h.addWork(message, args)
	case "addevent":
		h.addEvent(message, args)
	case "events":
		h.showEvents(message, args)
	case "delevent":
		h.deleteEvent(message, args)
	case "importjson":
		h.importEvents(message, args)

	// Зарплата
	case "payroll":
		h.showPayroll(message.Chat.ID)
	case "paid":
		h.markPaidCommand(message, args)

	default:
		h.sendUnknownCommand(message)
	}
}

func (h *Handler) sendUnknownCommand(message *tgbotapi.Message) {
	h.reply(message.Chat.ID, "❌ Неизвестная команда. Используйте /help для списка команд.")
}

func (h *Handler) sendStartMessage(message *tgbotapi.Message) {
	text := `👋 Привет! Я веду расчет зарплаты няни по двухнедельным периодам.

Часы берутся из рабочих смен календаря, сумма считается по ставке активного договора.
Сверх 80 часов за период начисляются сверхурочные.

Для начала создайте профиль: /createprofile
Список команд: /help`

	h.reply(message.Chat.ID, text)
}

func (h *Handler) sendHelpMessage(message *tgbotapi.Message) {
	text := `📖 Команды:

👤 Профиль
/createprofile - создать профиль
/myprofile - мой профиль
/deleteprofile - удалить профиль

📄 Договоры
/addcontract 2024-01-01 [2024-12-31|-] 20 [30|-] [название] - новый договор
/contracts - список договоров
/deactivate <id> - деактивировать договор

🗓 Календарь
/addwork 2024-01-15 08:00 18:00 [заметка] - рабочая смена
/addevent pto|unavailable|special 2024-01-15 [2024-01-19] [09:00 17:00] [название]
/events [количество] - последние события
/delevent <id> - удалить событие
/importjson {"events": [...]} - импорт событий

💰 Зарплата
/payroll - текущий период, долги и история выплат
/paid <id> [2024-01-30] - отметить период оплаченным

👑 Администратор
/allusers - все пользователи
/setrole <chat_id> parent|nanny|admin - сменить роль`

	h.reply(message.Chat.ID, text)
}
