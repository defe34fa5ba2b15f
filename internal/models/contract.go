package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Contract - трудовой договор няни с почасовой оплатой.
// Даты хранятся строками YYYY-MM-DD, пустой EndDate означает бессрочный договор.
type Contract struct {
	ID             uint                `gorm:"primarykey" json:"id"`
	Title          string              `gorm:"type:varchar(200)" json:"contract_title"`
	StartDate      string              `gorm:"type:varchar(10)" json:"start_date"`
	EndDate        string              `gorm:"type:varchar(10)" json:"end_date"`
	BaseHourlyRate decimal.Decimal     `gorm:"type:decimal(10,2);not null" json:"base_hourly_rate"`
	OvertimeRate   decimal.NullDecimal `gorm:"type:decimal(10,2)" json:"overtime_rate"`
	VacationDays   int                 `gorm:"not null;default:0" json:"vacation_days"`
	SickDays       int                 `gorm:"not null;default:0" json:"sick_days"`
	Terms          string              `json:"contract_terms"`
	Benefits       string              `json:"additional_benefits"`
	IsActive       bool                `gorm:"not null;index" json:"is_active"`
	CreatedAt      time.Time           `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time           `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Contract) TableName() string {
	return "contracts"
}

// IsOpenEnded проверяет, задана ли дата окончания договора
func (c *Contract) IsOpenEnded() bool {
	return c.EndDate == ""
}
