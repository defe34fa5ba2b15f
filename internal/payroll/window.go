package payroll

import (
	"time"

	"nanny-payroll-bot/internal/models"
)

// OpenEnd подставляется вместо даты окончания бессрочного договора
var OpenEnd = time.Date(2100, time.December, 31, 0, 0, 0, 0, time.UTC)

// Window - срок действия договора, обе границы включительно
type Window struct {
	Start time.Time
	End   time.Time
}

func (w Window) Contains(date time.Time) bool {
	return InWindow(date, w.Start, &w.End)
}

// InWindow проверяет start <= date <= end; end == nil означает бессрочный договор
func InWindow(date, start time.Time, end *time.Time) bool {
	effectiveEnd := OpenEnd
	if end != nil {
		effectiveEnd = DateOf(*end)
	}
	d := DateOf(date)
	return !d.Before(DateOf(start)) && !d.After(effectiveEnd)
}

// ContractWindow возвращает срок действия договора.
// false - у договора нет распознаваемой даты начала.
// Нераспознанная дата окончания трактуется как бессрочный договор.
func ContractWindow(contract *models.Contract) (Window, bool) {
	if contract == nil {
		return Window{}, false
	}
	start, ok := ParseDate(contract.StartDate)
	if !ok {
		return Window{}, false
	}
	end := OpenEnd
	if parsed, ok := ParseDate(contract.EndDate); ok {
		end = parsed
	}
	return Window{Start: start, End: end}, true
}
