package service

import (
	"context"
	"fmt"
	"strings"

	"nanny-payroll-bot/internal/logging"
	"nanny-payroll-bot/internal/models"
	"nanny-payroll-bot/internal/payroll"
	"nanny-payroll-bot/internal/repository"
	"nanny-payroll-bot/pkg/eventimport"

	"github.com/sirupsen/logrus"
)

// ScheduleEventInput - данные события календаря
type ScheduleEventInput struct {
	Type      string `validate:"required,oneof=work pto unavailable special"`
	Title     string `validate:"max=200"`
	StartDate string `validate:"required,datetime=2006-01-02"`
	EndDate   string `validate:"omitempty,datetime=2006-01-02"`
	StartTime string `validate:"omitempty,datetime=15:04"`
	EndTime   string `validate:"omitempty,datetime=15:04"`
	Notes     string
}

type ScheduleEventService struct {
	repo   repository.ScheduleEventRepository
	logger *logrus.Logger
}

func NewScheduleEventService(repo repository.ScheduleEventRepository) *ScheduleEventService {
	return &ScheduleEventService{
		repo:   repo,
		logger: logging.New(),
	}
}

// toModel проверяет ввод и собирает модель. Для рабочих смен время обязательно.
func (in ScheduleEventInput) toModel() (*models.ScheduleEvent, error) {
	in.Type = strings.ToLower(strings.TrimSpace(in.Type))
	if in.StartTime != "" {
		in.StartTime = payroll.NormalizeClock(in.StartTime)
	}
	if in.EndTime != "" {
		in.EndTime = payroll.NormalizeClock(in.EndTime)
	}

	if err := validateStruct(in); err != nil {
		return nil, err
	}
	if in.Type == models.EventTypeWork && (in.StartTime == "" || in.EndTime == "") {
		return nil, invalidInput("для рабочей смены нужно время начала и окончания")
	}
	if in.EndDate != "" && in.EndDate < in.StartDate {
		return nil, invalidInput("дата окончания раньше даты начала")
	}

	return &models.ScheduleEvent{
		Type:      in.Type,
		Title:     strings.TrimSpace(in.Title),
		StartDate: in.StartDate,
		EndDate:   in.EndDate,
		StartTime: in.StartTime,
		EndTime:   in.EndTime,
		Notes:     in.Notes,
	}, nil
}

func (s *ScheduleEventService) Add(ctx context.Context, in ScheduleEventInput) (*models.ScheduleEvent, error) {
	event, err := in.toModel()
	if err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, event); err != nil {
		return nil, fmt.Errorf("ошибка сохранения события: %w", err)
	}

	return event, nil
}

func (s *ScheduleEventService) Recent(ctx context.Context, limit int) ([]models.ScheduleEvent, error) {
	return s.repo.GetRecent(ctx, limit)
}

func (s *ScheduleEventService) Delete(ctx context.Context, id uint) error {
	return s.repo.DeleteByID(ctx, id)
}

// ImportFile загружает события из JSON-файла. Если хоть одно событие некорректно,
// ничего не сохраняется.
func (s *ScheduleEventService) ImportFile(ctx context.Context, path string) (int, error) {
	parsed, err := eventimport.ParseEventsJSON(path)
	if err != nil {
		return 0, err
	}
	return s.importEvents(ctx, parsed)
}

// ImportJSON загружает события из содержимого JSON-файла
func (s *ScheduleEventService) ImportJSON(ctx context.Context, data []byte) (int, error) {
	parsed, err := eventimport.ParseEvents(data)
	if err != nil {
		return 0, err
	}
	return s.importEvents(ctx, parsed)
}

func (s *ScheduleEventService) importEvents(ctx context.Context, parsed []eventimport.Event) (int, error) {
	events := make([]models.ScheduleEvent, 0, len(parsed))
	for i, item := range parsed {
		event, err := ScheduleEventInput{
			Type:      item.Type,
			Title:     item.Title,
			StartDate: item.StartDate,
			EndDate:   item.EndDate,
			StartTime: item.StartTime,
			EndTime:   item.EndTime,
			Notes:     item.Notes,
		}.toModel()
		if err != nil {
			return 0, fmt.Errorf("событие %d (%s): %w", i+1, item.StartDate, err)
		}
		events = append(events, *event)
	}

	if err := s.repo.BulkCreate(ctx, events); err != nil {
		return 0, fmt.Errorf("ошибка импорта событий: %w", err)
	}

	s.logger.WithField("count", len(events)).Info("Schedule imported")
	return len(events), nil
}

var eventTypeLabels = map[string]string{
	models.EventTypeWork:        "💼 Работа",
	models.EventTypePTO:         "🏖 Отпуск",
	models.EventTypeUnavailable: "🚫 Недоступна",
	models.EventTypeSpecial:     "⭐ Событие",
}

// FormatEvents форматирует список событий
func FormatEvents(events []models.ScheduleEvent) string {
	if len(events) == 0 {
		return "📭 В календаре нет событий."
	}

	var lines []string
	lines = append(lines, "🗓 События календаря:")
	lines = append(lines, "")

	for _, e := range events {
		label, ok := eventTypeLabels[e.Type]
		if !ok {
			label = e.Type
		}

		line := fmt.Sprintf("#%d %s %s", e.ID, payroll.DisplayDate(e.StartDate), label)
		if e.StartTime != "" || e.EndTime != "" {
			line += fmt.Sprintf(" %s-%s", e.StartTime, e.EndTime)
		}
		if e.IsWork() {
			line += fmt.Sprintf(" (%.1f ч)", float64(payroll.EventMinutes(e))/60)
		}
		if e.Title != "" {
			line += " " + e.Title
		}
		lines = append(lines, line)
	}

	return strings.Join(lines, "\n")
}
