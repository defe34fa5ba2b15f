package payroll

import (
	"fmt"
	"strconv"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

// ParseDate разбирает дату YYYY-MM-DD. Для RFC3339-строк берется дата до 'T'.
// Результат - полночь UTC, чтобы разница дат считалась целыми сутками.
func ParseDate(s string) (time.Time, bool) {
	s = strings.TrimSpace(s)
	if len(s) > len(DateLayout) && s[len(DateLayout)] == 'T' {
		s = s[:len(DateLayout)]
	}
	t, err := time.Parse(DateLayout, s)
	if err != nil {
		return time.Time{}, false
	}
	return t, true
}

// FormatDate форматирует дату в YYYY-MM-DD
func FormatDate(t time.Time) string {
	return t.Format(DateLayout)
}

// DateOf отбрасывает время суток, сохраняя календарную дату в зоне t
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// DisplayDate форматирует строку даты для вывода, "N/A" для нераспознанных
func DisplayDate(s string) string {
	t, ok := ParseDate(s)
	if !ok {
		return "N/A"
	}
	return t.Format("Jan 2, 2006")
}

// ParseClock переводит "HH:MM" (допускается "H:MM" и секунды) в минуты от начала суток
func ParseClock(s string) (int, bool) {
	parts := strings.Split(strings.TrimSpace(s), ":")
	if len(parts) < 2 || len(parts) > 3 {
		return 0, false
	}
	hour, err := strconv.Atoi(parts[0])
	if err != nil || hour < 0 || hour > 23 {
		return 0, false
	}
	minute, err := strconv.Atoi(parts[1])
	if err != nil || minute < 0 || minute > 59 {
		return 0, false
	}
	return hour*60 + minute, true
}

func daysBetween(from, to time.Time) int {
	return int(DateOf(to).Sub(DateOf(from)).Hours() / 24)
}

func floorDiv(a, b int) int {
	q := a / b
	if a%b != 0 && (a < 0) != (b < 0) {
		q--
	}
	return q
}

// NormalizeClock приводит время к виду HH:MM. Нераспознанная строка возвращается как есть.
func NormalizeClock(s string) string {
	minutes, ok := ParseClock(s)
	if !ok {
		return s
	}
	return fmt.Sprintf("%02d:%02d", minutes/60, minutes%60)
}
