package repository

import (
	"context"
	"errors"
	"nanny-payroll-bot/internal/logging"
	"nanny-payroll-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ContractRepository interface {
	Create(ctx context.Context, contract *models.Contract) error
	Update(ctx context.Context, contract *models.Contract) error
	GetByID(ctx context.Context, id uint) (*models.Contract, error)
	GetAll(ctx context.Context) ([]models.Contract, error)
	GetActive(ctx context.Context) (*models.Contract, error)
	SetActive(ctx context.Context, id uint, active bool) error
}

type GormContractRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormContractRepository(db *gorm.DB) (*GormContractRepository, error) {
	logger := logging.New()

	// Автомиграция
	if err := db.AutoMigrate(&models.Contract{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate contracts table")
		return nil, err
	}

	logger.Debug("Contract repository initialized")

	return &GormContractRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormContractRepository) Create(ctx context.Context, contract *models.Contract) error {
	r.logger.WithFields(logrus.Fields{
		"start_date": contract.StartDate,
		"end_date":   contract.EndDate,
	}).Info("Creating contract")

	result := r.db.WithContext(ctx).Create(contract)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create contract")
		return result.Error
	}

	r.logger.WithField("id", contract.ID).Info("Contract created successfully")
	return nil
}

func (r *GormContractRepository) Update(ctx context.Context, contract *models.Contract) error {
	r.logger.WithField("id", contract.ID).Info("Updating contract")

	existing, err := r.GetByID(ctx, contract.ID)
	if err != nil {
		return err
	}
	if existing == nil {
		r.logger.WithField("id", contract.ID).Warn("Contract not found for update")
		return ErrNotFound
	}

	result := r.db.WithContext(ctx).Save(contract)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to update contract")
		return result.Error
	}

	return nil
}

func (r *GormContractRepository) GetByID(ctx context.Context, id uint) (*models.Contract, error) {
	var contract models.Contract
	result := r.db.WithContext(ctx).First(&contract, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Contract not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get contract by ID")
		return nil, result.Error
	}

	return &contract, nil
}

// GetAll возвращает договоры, новые первыми
func (r *GormContractRepository) GetAll(ctx context.Context) ([]models.Contract, error) {
	var contracts []models.Contract
	result := r.db.WithContext(ctx).Order("created_at DESC, id DESC").Find(&contracts)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get all contracts")
		return nil, result.Error
	}

	r.logger.WithField("count", len(contracts)).Debug("Retrieved all contracts")
	return contracts, nil
}

// GetActive возвращает самый новый активный договор
func (r *GormContractRepository) GetActive(ctx context.Context) (*models.Contract, error) {
	var contract models.Contract
	result := r.db.WithContext(ctx).
		Where("is_active = ?", true).
		Order("created_at DESC, id DESC").
		First(&contract)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get active contract")
		return nil, result.Error
	}

	return &contract, nil
}

func (r *GormContractRepository) SetActive(ctx context.Context, id uint, active bool) error {
	r.logger.WithFields(logrus.Fields{
		"id":     id,
		"active": active,
	}).Info("Changing contract activity")

	result := r.db.WithContext(ctx).Model(&models.Contract{}).
		Where("id = ?", id).
		Update("is_active", active)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to change contract activity")
		return result.Error
	}

	if result.RowsAffected == 0 {
		r.logger.WithField("id", id).Warn("Contract not found")
		return ErrNotFound
	}

	return nil
}
