package payroll

import (
	"context"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"nanny-payroll-bot/internal/logging"
	"nanny-payroll-bot/internal/models"
)

// PeriodView - запись периода из хранилища и показатели, пересчитанные по текущему календарю.
// Computed используется только для отображения и не записывается обратно.
type PeriodView struct {
	Record   models.PayPeriod
	Computed models.PeriodTotals
}

// Amount - сумма к оплате по текущему календарю
func (v PeriodView) Amount() decimal.Decimal {
	return v.Computed.TotalAmount
}

// Result - итог одного цикла сверки
type Result struct {
	// Periods - периоды для отображения, текущий (если есть) первым
	Periods []PeriodView
	// Current указывает на элемент Periods для текущего периода
	Current *PeriodView
	// Created - запись текущего периода создана в этом цикле
	Created bool
	// OutOfWindow - сегодняшняя дата вне срока договора, запись не выполнялась
	OutOfWindow bool
	// UpdateErr - ошибка обновления текущего периода; отображается прежняя запись
	UpdateErr error
}

// Reconciler поддерживает ровно одну актуальную запись для текущего периода
type Reconciler struct {
	writer PeriodWriter
	calc   *Calculator
	logger *logrus.Logger
}

func NewReconciler(writer PeriodWriter, calc *Calculator) *Reconciler {
	return &Reconciler{
		writer: writer,
		calc:   calc,
		logger: logging.New(),
	}
}

// SetLogger заменяет логгер
func (r *Reconciler) SetLogger(logger *logrus.Logger) {
	r.logger = logger
}

// Reconcile создает или обновляет запись текущего периода и возвращает список периодов
// для отображения: в пределах срока договора, без дублей по дате начала,
// с показателями, пересчитанными по events.
//
// Result всегда не nil. Ошибка возвращается только при неудачном создании записи,
// при этом Result содержит ранее сохраненные периоды.
func (r *Reconciler) Reconcile(
	ctx context.Context,
	today time.Time,
	contract *models.Contract,
	events []models.ScheduleEvent,
	persisted []models.PayPeriod,
) (*Result, error) {
	result := &Result{}

	window, ok := ContractWindow(contract)
	if !ok {
		r.logger.Debug("No dated contract, nothing to reconcile")
		return result, nil
	}

	var (
		current   *models.PayPeriod
		createErr error
	)

	if window.Contains(today) {
		current, createErr = r.ensureCurrent(ctx, today, contract, window, events, persisted, result)
	} else {
		result.OutOfWindow = true
		r.logger.WithFields(logrus.Fields{
			"contract_id": contract.ID,
			"today":       FormatDate(today),
		}).Debug("Today is outside contract window, skipping current period")
	}

	merged := mergeCurrent(current, persisted)
	visible := dedupByStart(filterByWindow(merged, window))

	result.Periods = make([]PeriodView, 0, len(visible))
	for _, record := range visible {
		result.Periods = append(result.Periods, PeriodView{
			Record:   record,
			Computed: r.computeForRecord(record, events, contract),
		})
	}
	if current != nil && len(result.Periods) > 0 && result.Periods[0].Record.ID == current.ID {
		result.Current = &result.Periods[0]
	}

	return result, createErr
}

func (r *Reconciler) ensureCurrent(
	ctx context.Context,
	today time.Time,
	contract *models.Contract,
	window Window,
	events []models.ScheduleEvent,
	persisted []models.PayPeriod,
	result *Result,
) (*models.PayPeriod, error) {
	period := CurrentPeriod(today, window.Start)
	totals := r.calc.ComputeForPeriod(period, events, contract)

	fields := logrus.Fields{
		"contract_id":  contract.ID,
		"period_start": FormatDate(period.Start),
		"total_hours":  totals.TotalHours,
		"total_amount": totals.TotalAmount.StringFixed(2),
	}

	if existing := findByStart(persisted, period.Start); existing != nil {
		updated, err := r.writer.UpdatePayPeriod(ctx, existing.ID, models.PayPeriodUpdate{Totals: &totals})
		if err != nil {
			r.logger.WithError(err).WithFields(fields).Warn("Failed to update current pay period, showing stored record")
			result.UpdateErr = fmt.Errorf("%w: %w", ErrUpdatePeriod, err)
			fallback := *existing
			fallback.ApplyTotals(totals)
			return &fallback, nil
		}
		merged := *updated
		merged.ApplyTotals(totals)
		r.logger.WithFields(fields).WithField("id", merged.ID).Debug("Current pay period updated")
		return &merged, nil
	}

	record := &models.PayPeriod{
		Title:        period.Title,
		ContractID:   contract.ID,
		StartDate:    FormatDate(period.Start),
		EndDate:      FormatDate(period.End),
		HourlyRate:   baseRate(contract),
		OvertimeRate: r.calc.EffectiveOvertimeRate(contract),
		IsPaid:       false,
	}
	record.ApplyTotals(totals)

	created, err := r.writer.CreatePayPeriod(ctx, record)
	if err != nil {
		r.logger.WithError(err).WithFields(fields).Error("Failed to create current pay period")
		return nil, fmt.Errorf("%w: %w", ErrCreatePeriod, err)
	}

	result.Created = true
	r.logger.WithFields(fields).WithField("id", created.ID).Info("Current pay period created")
	return created, nil
}

func (r *Reconciler) computeForRecord(record models.PayPeriod, events []models.ScheduleEvent, contract *models.Contract) models.PeriodTotals {
	start, ok := ParseDate(record.StartDate)
	if !ok {
		return models.PeriodTotals{TotalAmount: decimal.Zero}
	}
	end, ok := ParseDate(record.EndDate)
	if !ok {
		end = start.AddDate(0, 0, PeriodDays-1)
	}
	return r.calc.ComputeForPeriod(Period{Start: start, End: end, Title: record.Title}, events, contract)
}

func findByStart(periods []models.PayPeriod, start time.Time) *models.PayPeriod {
	for i := range periods {
		if date, ok := ParseDate(periods[i].StartDate); ok && date.Equal(start) {
			return &periods[i]
		}
	}
	return nil
}

// mergeCurrent ставит текущую запись первой, убирая запись с тем же ID
func mergeCurrent(current *models.PayPeriod, persisted []models.PayPeriod) []models.PayPeriod {
	merged := make([]models.PayPeriod, 0, len(persisted)+1)
	if current != nil {
		merged = append(merged, *current)
	}
	for _, p := range persisted {
		if current != nil && p.ID == current.ID {
			continue
		}
		merged = append(merged, p)
	}
	return merged
}

// filterByWindow оставляет периоды, начинающиеся в пределах срока договора
func filterByWindow(periods []models.PayPeriod, window Window) []models.PayPeriod {
	filtered := make([]models.PayPeriod, 0, len(periods))
	for _, p := range periods {
		start, ok := ParseDate(p.StartDate)
		if !ok || !window.Contains(start) {
			continue
		}
		filtered = append(filtered, p)
	}
	return filtered
}

// dedupByStart оставляет первое вхождение для каждой даты начала
func dedupByStart(periods []models.PayPeriod) []models.PayPeriod {
	seen := make(map[string]struct{}, len(periods))
	unique := make([]models.PayPeriod, 0, len(periods))
	for _, p := range periods {
		start, _ := ParseDate(p.StartDate)
		key := FormatDate(start)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		unique = append(unique, p)
	}
	return unique
}
