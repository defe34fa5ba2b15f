package eventimport

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"
)

const dateLayout = "2006-01-02"

// MaxOccurrences ограничивает разворачивание одного повторяющегося события
const MaxOccurrences = 1000

// Паттерны повторения
const (
	PatternDaily   = "daily"
	PatternWeekly  = "weekly"
	PatternMonthly = "monthly"
)

// FileJSON - структура файла импорта
type FileJSON struct {
	Events []EventJSON `json:"events"`
}

type EventJSON struct {
	Title     string         `json:"title"`
	Type      string         `json:"type"`
	StartDate string         `json:"start_date"`
	EndDate   string         `json:"end_date"`
	StartTime string         `json:"start_time"`
	EndTime   string         `json:"end_time"`
	Notes     string         `json:"notes"`
	Recurring *RecurringJSON `json:"recurring,omitempty"`
}

// RecurringJSON - правило повторения. Days используется только для weekly.
type RecurringJSON struct {
	Pattern string   `json:"pattern"`
	Days    []string `json:"days"`
	Until   string   `json:"until"`
}

// Event - конкретное событие после разворачивания повторений
type Event struct {
	Title     string
	Type      string
	StartDate string
	EndDate   string
	StartTime string
	EndTime   string
	Notes     string
}

// ParseEventsJSON читает файл импорта и разворачивает повторяющиеся события
func ParseEventsJSON(filePath string) ([]Event, error) {
	data, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("failed to read JSON file: %w", err)
	}

	return ParseEvents(data)
}

// ParseEvents разбирает содержимое файла импорта
func ParseEvents(data []byte) ([]Event, error) {
	var file FileJSON
	if err := json.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to unmarshal JSON: %w", err)
	}

	events := []Event{}
	for i, item := range file.Events {
		expanded, err := Expand(item)
		if err != nil {
			return nil, fmt.Errorf("event %d (%q): %w", i, item.Title, err)
		}
		events = append(events, expanded...)
	}

	return events, nil
}

// Expand возвращает события для всех дат правила повторения.
// Без правила или без даты окончания повторения возвращается одно событие.
func Expand(item EventJSON) ([]Event, error) {
	base := Event{
		Title:     item.Title,
		Type:      item.Type,
		StartDate: item.StartDate,
		EndDate:   item.EndDate,
		StartTime: item.StartTime,
		EndTime:   item.EndTime,
		Notes:     item.Notes,
	}

	if item.Recurring == nil || item.Recurring.Until == "" {
		return []Event{base}, nil
	}

	start, err := time.Parse(dateLayout, item.StartDate)
	if err != nil {
		return nil, fmt.Errorf("failed to parse start date '%s': %w", item.StartDate, err)
	}
	until, err := time.Parse(dateLayout, item.Recurring.Until)
	if err != nil {
		return nil, fmt.Errorf("failed to parse until date '%s': %w", item.Recurring.Until, err)
	}

	// Многодневное событие сохраняет длительность в каждом повторении
	span := 0
	if end, err := time.Parse(dateLayout, item.EndDate); err == nil && end.After(start) {
		span = int(end.Sub(start).Hours() / 24)
	}

	dates, err := occurrences(start, until, item.Recurring)
	if err != nil {
		return nil, err
	}

	events := make([]Event, 0, len(dates))
	for _, date := range dates {
		event := base
		event.StartDate = date.Format(dateLayout)
		if item.EndDate != "" {
			event.EndDate = date.AddDate(0, 0, span).Format(dateLayout)
		}
		events = append(events, event)
	}

	return events, nil
}

func occurrences(start, until time.Time, rule *RecurringJSON) ([]time.Time, error) {
	var dates []time.Time

	switch strings.ToLower(rule.Pattern) {
	case PatternDaily:
		for d := start; !d.After(until) && len(dates) < MaxOccurrences; d = d.AddDate(0, 0, 1) {
			dates = append(dates, d)
		}

	case PatternWeekly:
		weekdays, err := parseWeekdays(rule.Days)
		if err != nil {
			return nil, err
		}
		if len(weekdays) == 0 {
			weekdays[start.Weekday()] = true
		}
		for d := start; !d.After(until) && len(dates) < MaxOccurrences; d = d.AddDate(0, 0, 1) {
			if weekdays[d.Weekday()] {
				dates = append(dates, d)
			}
		}

	case PatternMonthly:
		// Месяцы без нужного числа пропускаются
		for i := 0; len(dates) < MaxOccurrences; i++ {
			d := time.Date(start.Year(), start.Month()+time.Month(i), start.Day(), 0, 0, 0, 0, time.UTC)
			if d.After(until) {
				break
			}
			if d.Day() == start.Day() {
				dates = append(dates, d)
			}
		}

	default:
		return nil, fmt.Errorf("unknown recurring pattern '%s'", rule.Pattern)
	}

	return dates, nil
}

var weekdayNames = map[string]time.Weekday{
	"sunday":    time.Sunday,
	"monday":    time.Monday,
	"tuesday":   time.Tuesday,
	"wednesday": time.Wednesday,
	"thursday":  time.Thursday,
	"friday":    time.Friday,
	"saturday":  time.Saturday,
}

func parseWeekdays(days []string) (map[time.Weekday]bool, error) {
	result := make(map[time.Weekday]bool, len(days))
	for _, day := range days {
		name := strings.ToLower(strings.TrimSpace(day))
		weekday, ok := weekdayNames[name]
		if !ok {
			return nil, fmt.Errorf("unknown day of week '%s'", day)
		}
		result[weekday] = true
	}
	return result, nil
}
