package repository

import (
	"context"
	"nanny-payroll-bot/internal/models"
	"nanny-payroll-bot/internal/payroll"

	"gorm.io/gorm"
)

// Store объединяет репозитории и реализует payroll.Store
type Store struct {
	Contracts  *GormContractRepository
	Events     *GormScheduleEventRepository
	PayPeriods *GormPayPeriodRepository
	Users      *GormUserRepository
}

var _ payroll.Store = (*Store)(nil)

// NewStore создает все репозитории поверх одного соединения, выполняя миграции
func NewStore(db *gorm.DB) (*Store, error) {
	contracts, err := NewGormContractRepository(db)
	if err != nil {
		return nil, err
	}

	events, err := NewGormScheduleEventRepository(db)
	if err != nil {
		return nil, err
	}

	periods, err := NewGormPayPeriodRepository(db)
	if err != nil {
		return nil, err
	}

	users, err := NewGormUserRepository(db)
	if err != nil {
		return nil, err
	}

	return &Store{
		Contracts:  contracts,
		Events:     events,
		PayPeriods: periods,
		Users:      users,
	}, nil
}

func (s *Store) CreatePayPeriod(ctx context.Context, period *models.PayPeriod) (*models.PayPeriod, error) {
	if err := s.PayPeriods.Create(ctx, period); err != nil {
		return nil, err
	}
	return period, nil
}

func (s *Store) UpdatePayPeriod(ctx context.Context, id uint, update models.PayPeriodUpdate) (*models.PayPeriod, error) {
	return s.PayPeriods.UpdateFields(ctx, id, update)
}

func (s *Store) ListContracts(ctx context.Context) ([]models.Contract, error) {
	return s.Contracts.GetAll(ctx)
}

func (s *Store) ListScheduleEvents(ctx context.Context) ([]models.ScheduleEvent, error) {
	return s.Events.GetAll(ctx)
}

func (s *Store) ListPayPeriods(ctx context.Context, filter models.PayPeriodFilter) ([]models.PayPeriod, error) {
	return s.PayPeriods.GetByContractID(ctx, filter.ContractID)
}

func (s *Store) CurrentUser(ctx context.Context, chatID int64) (*models.User, error) {
	return s.Users.GetByChatID(ctx, chatID)
}
