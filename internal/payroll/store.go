package payroll

import (
	"context"
	"errors"

	"nanny-payroll-bot/internal/models"
)

var (
	// ErrCreatePeriod - не удалось создать запись текущего периода
	ErrCreatePeriod = errors.New("create pay period failed")
	// ErrUpdatePeriod - не удалось обновить запись периода
	ErrUpdatePeriod = errors.New("update pay period failed")
	// ErrDuplicatePeriod - период с такой датой начала по договору уже существует
	ErrDuplicatePeriod = errors.New("pay period already exists for contract and start date")
	// ErrPeriodNotFound - период не найден
	ErrPeriodNotFound = errors.New("pay period not found")
	// ErrNoActiveContract - нет активного договора, расчет не выполняется
	ErrNoActiveContract = errors.New("no active contract")
)

// PeriodWriter - операции записи периодов во внешнее хранилище
type PeriodWriter interface {
	// CreatePayPeriod сохраняет новую запись и возвращает ее с присвоенным ID
	CreatePayPeriod(ctx context.Context, period *models.PayPeriod) (*models.PayPeriod, error)
	// UpdatePayPeriod применяет частичное обновление и возвращает итоговую запись
	UpdatePayPeriod(ctx context.Context, id uint, update models.PayPeriodUpdate) (*models.PayPeriod, error)
}

// Store - хранилище записей, с которым работает расчет зарплаты
type Store interface {
	PeriodWriter
	ListContracts(ctx context.Context) ([]models.Contract, error)
	ListScheduleEvents(ctx context.Context) ([]models.ScheduleEvent, error)
	ListPayPeriods(ctx context.Context, filter models.PayPeriodFilter) ([]models.PayPeriod, error)
	CurrentUser(ctx context.Context, chatID int64) (*models.User, error)
}
