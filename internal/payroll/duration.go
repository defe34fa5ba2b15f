package payroll

import (
	"math"

	"github.com/shopspring/decimal"

	"nanny-payroll-bot/internal/models"
)

const minutesPerDay = 24 * 60

var sixty = decimal.NewFromInt(60)

// Calculator считает часы и суммы за период по событиям календаря
type Calculator struct {
	policy Policy
}

func NewCalculator(policy Policy) *Calculator {
	return &Calculator{policy: policy.normalized()}
}

// Policy возвращает действующую политику расчета
func (c *Calculator) Policy() Policy {
	return c.policy
}

// EventMinutes возвращает длительность события в минутах.
// Если конец раньше начала, смена переходит через полночь.
// Нераспознанное время дает 0.
func EventMinutes(event models.ScheduleEvent) int {
	start, ok := ParseClock(event.StartTime)
	if !ok {
		return 0
	}
	end, ok := ParseClock(event.EndTime)
	if !ok {
		return 0
	}
	if end < start {
		end += minutesPerDay
	}
	return end - start
}

// WorkedMinutes суммирует минуты рабочих событий, начавшихся внутри периода
func WorkedMinutes(period Period, events []models.ScheduleEvent) int {
	total := 0
	for _, event := range events {
		if !event.IsWork() {
			continue
		}
		date, ok := ParseDate(event.StartDate)
		if !ok || !period.Contains(date) {
			continue
		}
		if minutes := EventMinutes(event); minutes > 0 {
			total += minutes
		}
	}
	return total
}

// EffectiveOvertimeRate - ставка сверхурочных из договора, либо базовая ставка x множитель
func (c *Calculator) EffectiveOvertimeRate(contract *models.Contract) decimal.Decimal {
	if contract == nil {
		return decimal.Zero
	}
	if contract.OvertimeRate.Valid && contract.OvertimeRate.Decimal.IsPositive() {
		return contract.OvertimeRate.Decimal
	}
	return baseRate(contract).Mul(c.policy.OvertimeMultiplier)
}

func baseRate(contract *models.Contract) decimal.Decimal {
	if contract == nil || contract.BaseHourlyRate.IsNegative() {
		return decimal.Zero
	}
	return contract.BaseHourlyRate
}

// ComputeForPeriod вычисляет общие, обычные и сверхурочные часы и сумму к оплате
func (c *Calculator) ComputeForPeriod(period Period, events []models.ScheduleEvent, contract *models.Contract) models.PeriodTotals {
	totalMinutes := WorkedMinutes(period, events)

	capMinutes := int(math.Round(c.policy.RegularHoursCap * 60))
	regularMinutes := min(totalMinutes, capMinutes)
	overtimeMinutes := max(0, totalMinutes-capMinutes)

	regularPay := decimal.NewFromInt(int64(regularMinutes)).Mul(baseRate(contract)).Div(sixty)
	overtimePay := decimal.NewFromInt(int64(overtimeMinutes)).Mul(c.EffectiveOvertimeRate(contract)).Div(sixty)

	return models.PeriodTotals{
		TotalHours:    float64(totalMinutes) / 60,
		RegularHours:  float64(regularMinutes) / 60,
		OvertimeHours: float64(overtimeMinutes) / 60,
		TotalAmount:   regularPay.Add(overtimePay).Round(2),
	}
}
