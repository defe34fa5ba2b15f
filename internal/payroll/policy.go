package payroll

import "github.com/shopspring/decimal"

// Значения политики по умолчанию: 40 часов в неделю за две недели, сверхурочные x1.5
const (
	DefaultRegularHoursCap = 80.0
)

var DefaultOvertimeMultiplier = decimal.NewFromFloat(1.5)

// Policy - параметры расчета, настраиваются через конфиг
type Policy struct {
	RegularHoursCap    float64
	OvertimeMultiplier decimal.Decimal
}

// DefaultPolicy возвращает стандартную политику
func DefaultPolicy() Policy {
	return Policy{
		RegularHoursCap:    DefaultRegularHoursCap,
		OvertimeMultiplier: DefaultOvertimeMultiplier,
	}
}

// normalized подставляет значения по умолчанию вместо некорректных
func (p Policy) normalized() Policy {
	if p.RegularHoursCap <= 0 {
		p.RegularHoursCap = DefaultRegularHoursCap
	}
	if !p.OvertimeMultiplier.IsPositive() {
		p.OvertimeMultiplier = DefaultOvertimeMultiplier
	}
	return p
}
