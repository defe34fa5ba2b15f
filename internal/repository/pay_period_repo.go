package repository

import (
	"context"
	"errors"
	"fmt"
	"nanny-payroll-bot/internal/logging"
	"nanny-payroll-bot/internal/models"
	"nanny-payroll-bot/internal/payroll"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type PayPeriodRepository interface {
	Create(ctx context.Context, period *models.PayPeriod) error
	UpdateFields(ctx context.Context, id uint, update models.PayPeriodUpdate) (*models.PayPeriod, error)
	GetByID(ctx context.Context, id uint) (*models.PayPeriod, error)
	GetByContractID(ctx context.Context, contractID uint) ([]models.PayPeriod, error)
	GetByContractAndStart(ctx context.Context, contractID uint, startDate string) (*models.PayPeriod, error)
	Exists(ctx context.Context, contractID uint, startDate string) (bool, error)
}

type GormPayPeriodRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormPayPeriodRepository(db *gorm.DB) (*GormPayPeriodRepository, error) {
	logger := logging.New()

	// Автомиграция, включая уникальный индекс (contract_id, start_date)
	if err := db.AutoMigrate(&models.PayPeriod{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate pay_periods table")
		return nil, err
	}

	logger.Debug("Pay period repository initialized")

	return &GormPayPeriodRepository{
		db:     db,
		logger: logger,
	}, nil
}

// Create сохраняет период. Повтор пары (contract_id, start_date) возвращает payroll.ErrDuplicatePeriod.
func (r *GormPayPeriodRepository) Create(ctx context.Context, period *models.PayPeriod) error {
	fields := logrus.Fields{
		"contract_id": period.ContractID,
		"start_date":  period.StartDate,
	}
	r.logger.WithFields(fields).Info("Creating pay period")

	// Проверяем, существует ли уже период с этой датой начала
	exists, err := r.Exists(ctx, period.ContractID, period.StartDate)
	if err != nil {
		r.logger.WithError(err).Error("Failed to check pay period existence")
		return err
	}

	if exists {
		r.logger.WithFields(fields).Warn("Pay period already exists")
		return payroll.ErrDuplicatePeriod
	}

	result := r.db.WithContext(ctx).Create(period)
	if result.Error != nil {
		// Параллельное создание отсекается уникальным индексом
		if isDuplicateKey(result.Error) {
			r.logger.WithFields(fields).Warn("Pay period created concurrently")
			return fmt.Errorf("%w: %w", payroll.ErrDuplicatePeriod, result.Error)
		}
		r.logger.WithError(result.Error).Error("Failed to create pay period")
		return result.Error
	}

	r.logger.WithFields(fields).WithField("id", period.ID).Info("Pay period created successfully")
	return nil
}

// UpdateFields применяет частичное обновление и возвращает запись после него
func (r *GormPayPeriodRepository) UpdateFields(ctx context.Context, id uint, update models.PayPeriodUpdate) (*models.PayPeriod, error) {
	if update.IsEmpty() {
		period, err := r.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}
		if period == nil {
			return nil, payroll.ErrPeriodNotFound
		}
		return period, nil
	}

	result := r.db.WithContext(ctx).Model(&models.PayPeriod{}).
		Where("id = ?", id).
		Updates(update.Columns())

	if result.Error != nil {
		r.logger.WithError(result.Error).WithField("id", id).Error("Failed to update pay period")
		return nil, result.Error
	}

	if result.RowsAffected == 0 {
		r.logger.WithField("id", id).Warn("Pay period not found for update")
		return nil, payroll.ErrPeriodNotFound
	}

	period, err := r.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if period == nil {
		return nil, payroll.ErrPeriodNotFound
	}

	r.logger.WithFields(logrus.Fields{
		"id":          id,
		"total_hours": period.TotalHours,
		"is_paid":     period.IsPaid,
	}).Debug("Pay period updated")

	return period, nil
}

func (r *GormPayPeriodRepository) GetByID(ctx context.Context, id uint) (*models.PayPeriod, error) {
	var period models.PayPeriod
	result := r.db.WithContext(ctx).First(&period, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Pay period not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get pay period by ID")
		return nil, result.Error
	}

	return &period, nil
}

// GetByContractID возвращает периоды договора, поздние первыми
func (r *GormPayPeriodRepository) GetByContractID(ctx context.Context, contractID uint) ([]models.PayPeriod, error) {
	var periods []models.PayPeriod
	result := r.db.WithContext(ctx).
		Where("contract_id = ?", contractID).
		Order("start_date DESC, id ASC").
		Find(&periods)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get pay periods by contract")
		return nil, result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"contract_id": contractID,
		"count":       len(periods),
	}).Debug("Retrieved pay periods by contract")

	return periods, nil
}

func (r *GormPayPeriodRepository) GetByContractAndStart(ctx context.Context, contractID uint, startDate string) (*models.PayPeriod, error) {
	var period models.PayPeriod
	result := r.db.WithContext(ctx).
		Where("contract_id = ? AND start_date = ?", contractID, startDate).
		First(&period)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get pay period by contract and start")
		return nil, result.Error
	}

	return &period, nil
}

func (r *GormPayPeriodRepository) Exists(ctx context.Context, contractID uint, startDate string) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.PayPeriod{}).
		Where("contract_id = ? AND start_date = ?", contractID, startDate).
		Count(&count)

	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}
