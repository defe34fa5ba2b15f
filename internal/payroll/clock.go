package payroll

import (
	"fmt"
	"time"
)

// PeriodDays - длина расчетного периода
const PeriodDays = 14

// Period - границы двухнедельного периода, End включительно
type Period struct {
	Start time.Time
	End   time.Time
	Title string
}

// Contains проверяет попадание даты в [Start, End]
func (p Period) Contains(date time.Time) bool {
	d := DateOf(date)
	return !d.Before(p.Start) && !d.After(p.End)
}

// CurrentPeriod возвращает период, в который попадает reference.
// Границы всегда отстоят от contractStart на целое число 14-дневных интервалов.
// Ожидается reference >= contractStart, проверка на стороне вызывающего.
func CurrentPeriod(reference, contractStart time.Time) Period {
	anchor := DateOf(contractStart)
	weeksElapsed := floorDiv(daysBetween(anchor, reference), 7)
	biWeeksElapsed := floorDiv(weeksElapsed, 2)

	start := anchor.AddDate(0, 0, biWeeksElapsed*PeriodDays)
	return periodFrom(start)
}

func periodFrom(start time.Time) Period {
	end := start.AddDate(0, 0, PeriodDays-1)
	return Period{
		Start: start,
		End:   end,
		Title: PeriodTitle(start, end),
	}
}

// PeriodTitle формирует заголовок вида "Jan 15 – Jan 28, 2024"
func PeriodTitle(start, end time.Time) string {
	return fmt.Sprintf("%s – %s", start.Format("Jan 2"), end.Format("Jan 2, 2006"))
}

// PeriodOf восстанавливает границы по сохраненной записи
func PeriodOf(startDate, endDate, title string) (Period, bool) {
	start, ok := ParseDate(startDate)
	if !ok {
		return Period{}, false
	}
	end, ok := ParseDate(endDate)
	if !ok {
		return Period{}, false
	}
	return Period{Start: start, End: end, Title: title}, true
}
