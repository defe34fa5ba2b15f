package handler

import (
	"errors"
	"strconv"
	"strings"
	"time"

	"nanny-payroll-bot/internal/models"
	"nanny-payroll-bot/internal/payroll"
	"nanny-payroll-bot/internal/service"
)

const markPaidPrefix = "mark_paid_"

var errUsage = errors.New("неверный формат команды")

// parseContractArgs разбирает "/addcontract 2024-01-01 [2024-12-31|-] 20 [30|-] [название]"
func parseContractArgs(args string) (service.ContractInput, error) {
	parts := strings.Fields(args)
	if len(parts) < 2 {
		return service.ContractInput{}, errUsage
	}

	in := service.ContractInput{StartDate: parts[0]}
	rest := parts[1:]

	// Вторая позиция - дата окончания, "-" или сразу ставка
	if rest[0] == "-" || looksLikeDate(rest[0]) {
		if rest[0] != "-" {
			in.EndDate = rest[0]
		}
		rest = rest[1:]
	}

	if len(rest) == 0 {
		return service.ContractInput{}, errUsage
	}
	in.BaseHourlyRate = rest[0]
	rest = rest[1:]

	if len(rest) > 0 && (rest[0] == "-" || isNumber(rest[0])) {
		if rest[0] != "-" {
			in.OvertimeRate = rest[0]
		}
		rest = rest[1:]
	}

	in.Title = strings.Join(rest, " ")
	return in, nil
}

// parseWorkArgs разбирает "/addwork 2024-01-15 08:00 18:00 [заметка]"
func parseWorkArgs(args string) (service.ScheduleEventInput, error) {
	parts := strings.Fields(args)
	if len(parts) < 3 {
		return service.ScheduleEventInput{}, errUsage
	}

	return service.ScheduleEventInput{
		Type:      models.EventTypeWork,
		StartDate: parts[0],
		StartTime: parts[1],
		EndTime:   parts[2],
		Title:     strings.Join(parts[3:], " "),
	}, nil
}

// parseEventArgs разбирает "/addevent pto 2024-01-15 [2024-01-19] [09:00 17:00] [название]"
func parseEventArgs(args string) (service.ScheduleEventInput, error) {
	parts := strings.Fields(args)
	if len(parts) < 2 {
		return service.ScheduleEventInput{}, errUsage
	}

	in := service.ScheduleEventInput{
		Type:      strings.ToLower(parts[0]),
		StartDate: parts[1],
	}
	rest := parts[2:]

	if len(rest) > 0 && looksLikeDate(rest[0]) {
		in.EndDate = rest[0]
		rest = rest[1:]
	}

	if len(rest) >= 2 && strings.Contains(rest[0], ":") && strings.Contains(rest[1], ":") {
		in.StartTime = rest[0]
		in.EndTime = rest[1]
		rest = rest[2:]
	}

	in.Title = strings.Join(rest, " ")
	return in, nil
}

// parsePaidArgs разбирает "/paid 12 [2024-01-30]". Без даты возвращается нулевое время.
func parsePaidArgs(args string) (uint, time.Time, error) {
	parts := strings.Fields(args)
	if len(parts) < 1 || len(parts) > 2 {
		return 0, time.Time{}, errUsage
	}

	id, err := parseID(parts[0])
	if err != nil {
		return 0, time.Time{}, err
	}

	if len(parts) == 1 {
		return id, time.Time{}, nil
	}

	paidOn, ok := payroll.ParseDate(parts[1])
	if !ok {
		return 0, time.Time{}, errUsage
	}
	return id, paidOn, nil
}

// parseLimit разбирает необязательное количество записей
func parseLimit(args string, def, limit int) int {
	n, err := strconv.Atoi(strings.TrimSpace(args))
	if err != nil || n <= 0 {
		return def
	}
	return min(n, limit)
}

func parseID(s string) (uint, error) {
	id, err := strconv.ParseUint(strings.TrimPrefix(strings.TrimSpace(s), "#"), 10, 64)
	if err != nil || id == 0 {
		return 0, errUsage
	}
	return uint(id), nil
}

func markPaidData(id uint) string {
	return markPaidPrefix + strconv.FormatUint(uint64(id), 10)
}

func parseMarkPaidData(data string) (uint, bool) {
	if !strings.HasPrefix(data, markPaidPrefix) {
		return 0, false
	}
	id, err := parseID(strings.TrimPrefix(data, markPaidPrefix))
	if err != nil {
		return 0, false
	}
	return id, true
}

func looksLikeDate(s string) bool {
	_, ok := payroll.ParseDate(s)
	return ok
}

func isNumber(s string) bool {
	_, err := strconv.ParseFloat(s, 64)
	return err == nil
}
