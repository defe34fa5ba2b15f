package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PayPeriod - двухнедельный расчетный период по договору.
// На пару (ContractID, StartDate) допускается только одна запись.
type PayPeriod struct {
	ID         uint   `gorm:"primarykey" json:"id"`
	Title      string `gorm:"type:varchar(64)" json:"period_title"`
	ContractID uint   `gorm:"not null;uniqueIndex:idx_pay_periods_contract_start" json:"contract_id"`
	StartDate  string `gorm:"type:varchar(10);not null;uniqueIndex:idx_pay_periods_contract_start" json:"start_date"`
	EndDate    string `gorm:"type:varchar(10);not null" json:"end_date"`

	// Ставки на момент создания периода, не пересчитываются
	HourlyRate   decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"hourly_rate"`
	OvertimeRate decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"overtime_rate"`

	// Расчетные показатели
	TotalHours    float64         `gorm:"not null;default:0" json:"total_hours"`
	RegularHours  float64         `gorm:"not null;default:0" json:"regular_hours"`
	OvertimeHours float64         `gorm:"not null;default:0" json:"overtime_hours"`
	TotalAmount   decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total_amount"`

	IsPaid    bool      `gorm:"not null;index" json:"is_paid"`
	PaidDate  string    `gorm:"type:varchar(10)" json:"paid_date"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (PayPeriod) TableName() string {
	return "pay_periods"
}

// PeriodTotals - вычисляемые часы и сумма за период
type PeriodTotals struct {
	TotalHours    float64         `json:"total_hours"`
	RegularHours  float64         `json:"regular_hours"`
	OvertimeHours float64         `json:"overtime_hours"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
}

// Totals возвращает сохраненные в записи показатели
func (p *PayPeriod) Totals() PeriodTotals {
	return PeriodTotals{
		TotalHours:    p.TotalHours,
		RegularHours:  p.RegularHours,
		OvertimeHours: p.OvertimeHours,
		TotalAmount:   p.TotalAmount,
	}
}

// ApplyTotals записывает показатели в запись
func (p *PayPeriod) ApplyTotals(t PeriodTotals) {
	p.TotalHours = t.TotalHours
	p.RegularHours = t.RegularHours
	p.OvertimeHours = t.OvertimeHours
	p.TotalAmount = t.TotalAmount
}

// PayPeriodFilter - фильтр выборки периодов
type PayPeriodFilter struct {
	ContractID uint
}

// PayPeriodUpdate - частичное обновление периода. nil-поля не изменяются.
type PayPeriodUpdate struct {
	Totals   *PeriodTotals
	IsPaid   *bool
	PaidDate *string
}

// Columns возвращает набор колонок для gorm Updates
func (u PayPeriodUpdate) Columns() map[string]interface{} {
	cols := make(map[string]interface{})
	if u.Totals != nil {
		cols["total_hours"] = u.Totals.TotalHours
		cols["regular_hours"] = u.Totals.RegularHours
		cols["overtime_hours"] = u.Totals.OvertimeHours
		cols["total_amount"] = u.Totals.TotalAmount
	}
	if u.IsPaid != nil {
		cols["is_paid"] = *u.IsPaid
	}
	if u.PaidDate != nil {
		cols["paid_date"] = *u.PaidDate
	}
	return cols
}

// IsEmpty проверяет, что обновление ничего не меняет
func (u PayPeriodUpdate) IsEmpty() bool {
	return u.Totals == nil && u.IsPaid == nil && u.PaidDate == nil
}
