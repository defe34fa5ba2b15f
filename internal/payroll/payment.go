package payroll

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"nanny-payroll-bot/internal/logging"
	"nanny-payroll-bot/internal/models"
)

// Status - состояние оплаты периода
type Status string

const (
	StatusCurrent Status = "current" // Не оплачен, еще не закончился
	StatusOverdue Status = "overdue" // Не оплачен, закончился
	StatusPaid    Status = "paid"
)

// Tracker отмечает оплату периодов
type Tracker struct {
	writer PeriodWriter
	logger *logrus.Logger
}

func NewTracker(writer PeriodWriter) *Tracker {
	return &Tracker{
		writer: writer,
		logger: logging.New(),
	}
}

// SetLogger заменяет логгер
func (t *Tracker) SetLogger(logger *logrus.Logger) {
	t.logger = logger
}

// MarkPaid отмечает период оплаченным датой paidOn.
// Повторная отметка допустима и перезаписывает дату оплаты.
func (t *Tracker) MarkPaid(ctx context.Context, periodID uint, paidOn time.Time) (*models.PayPeriod, error) {
	if periodID == 0 {
		return nil, ErrPeriodNotFound
	}
	if paidOn.IsZero() {
		return nil, errors.New("paid date is required")
	}

	paid := true
	paidDate := FormatDate(paidOn)

	t.logger.WithFields(logrus.Fields{
		"id":        periodID,
		"paid_date": paidDate,
	}).Info("Marking pay period as paid")

	period, err := t.writer.UpdatePayPeriod(ctx, periodID, models.PayPeriodUpdate{
		IsPaid:   &paid,
		PaidDate: &paidDate,
	})
	if err != nil {
		t.logger.WithError(err).WithField("id", periodID).Error("Failed to mark pay period as paid")
		return nil, fmt.Errorf("mark period %d paid: %w", periodID, err)
	}

	return period, nil
}

// Classify определяет состояние периода на дату today.
// Неоплаченный период с нераспознанной датой окончания считается просроченным.
func Classify(view PeriodView, today time.Time) Status {
	if view.Record.IsPaid {
		return StatusPaid
	}
	end, ok := ParseDate(view.Record.EndDate)
	if ok && !end.Before(DateOf(today)) {
		return StatusCurrent
	}
	return StatusOverdue
}

// Summary - сводка по выплатам
type Summary struct {
	Current        []PeriodView
	Overdue        []PeriodView
	Paid           []PeriodView
	TotalOwed      decimal.Decimal
	YearToDatePaid decimal.Decimal
}

// Summarize группирует периоды по статусу и считает долг и выплаты за текущий год
func Summarize(views []PeriodView, today time.Time) Summary {
	summary := Summary{
		TotalOwed:      decimal.Zero,
		YearToDatePaid: decimal.Zero,
	}
	year := today.Year()

	for _, view := range views {
		switch Classify(view, today) {
		case StatusCurrent:
			summary.Current = append(summary.Current, view)
		case StatusOverdue:
			summary.Overdue = append(summary.Overdue, view)
			summary.TotalOwed = summary.TotalOwed.Add(view.Amount())
		case StatusPaid:
			summary.Paid = append(summary.Paid, view)
			if paidOn, ok := ParseDate(view.Record.PaidDate); ok && paidOn.Year() == year {
				summary.YearToDatePaid = summary.YearToDatePaid.Add(view.Amount())
			}
		}
	}

	return summary
}
