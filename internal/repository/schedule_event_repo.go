package repository

import (
	"context"
	"errors"
	"nanny-payroll-bot/internal/logging"
	"nanny-payroll-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

type ScheduleEventRepository interface {
	Create(ctx context.Context, event *models.ScheduleEvent) error
	BulkCreate(ctx context.Context, events []models.ScheduleEvent) error
	GetByID(ctx context.Context, id uint) (*models.ScheduleEvent, error)
	GetAll(ctx context.Context) ([]models.ScheduleEvent, error)
	GetRecent(ctx context.Context, limit int) ([]models.ScheduleEvent, error)
	GetByDateRange(ctx context.Context, from, to string) ([]models.ScheduleEvent, error)
	DeleteByID(ctx context.Context, id uint) error
}

type GormScheduleEventRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormScheduleEventRepository(db *gorm.DB) (*GormScheduleEventRepository, error) {
	logger := logging.New()

	// Автомиграция
	if err := db.AutoMigrate(&models.ScheduleEvent{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate schedule_events table")
		return nil, err
	}

	logger.Debug("Schedule event repository initialized")

	return &GormScheduleEventRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormScheduleEventRepository) Create(ctx context.Context, event *models.ScheduleEvent) error {
	r.logger.WithFields(logrus.Fields{
		"type":       event.Type,
		"start_date": event.StartDate,
	}).Info("Creating schedule event")

	result := r.db.WithContext(ctx).Create(event)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to create schedule event")
		return result.Error
	}

	return nil
}

func (r *GormScheduleEventRepository) BulkCreate(ctx context.Context, events []models.ScheduleEvent) error {
	if len(events) == 0 {
		return nil
	}

	result := r.db.WithContext(ctx).CreateInBatches(&events, 100)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to bulk create schedule events")
		return result.Error
	}

	r.logger.WithField("count", len(events)).Info("Schedule events imported")
	return nil
}

func (r *GormScheduleEventRepository) GetByID(ctx context.Context, id uint) (*models.ScheduleEvent, error) {
	var event models.ScheduleEvent
	result := r.db.WithContext(ctx).First(&event, id)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		r.logger.WithField("id", id).Debug("Schedule event not found")
		return nil, nil
	}

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get schedule event by ID")
		return nil, result.Error
	}

	return &event, nil
}

// GetAll возвращает события, поздние первыми
func (r *GormScheduleEventRepository) GetAll(ctx context.Context) ([]models.ScheduleEvent, error) {
	return r.GetRecent(ctx, 0)
}

func (r *GormScheduleEventRepository) GetRecent(ctx context.Context, limit int) ([]models.ScheduleEvent, error) {
	var events []models.ScheduleEvent

	query := r.db.WithContext(ctx).Order("start_date DESC, id DESC")
	if limit > 0 {
		query = query.Limit(limit)
	}

	result := query.Find(&events)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get schedule events")
		return nil, result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"count": len(events),
		"limit": limit,
	}).Debug("Retrieved schedule events")

	return events, nil
}

// GetByDateRange возвращает события с датой начала в [from, to]
func (r *GormScheduleEventRepository) GetByDateRange(ctx context.Context, from, to string) ([]models.ScheduleEvent, error) {
	var events []models.ScheduleEvent

	result := r.db.WithContext(ctx).
		Where("start_date BETWEEN ? AND ?", from, to).
		Order("start_date ASC, start_time ASC").
		Find(&events)

	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to get schedule events by date range")
		return nil, result.Error
	}

	return events, nil
}

func (r *GormScheduleEventRepository) DeleteByID(ctx context.Context, id uint) error {
	r.logger.WithField("id", id).Info("Deleting schedule event")

	result := r.db.WithContext(ctx).Delete(&models.ScheduleEvent{}, id)
	if result.Error != nil {
		r.logger.WithError(result.Error).Error("Failed to delete schedule event")
		return result.Error
	}

	if result.RowsAffected == 0 {
		r.logger.WithField("id", id).Warn("Schedule event not found for deletion")
		return ErrNotFound
	}

	return nil
}
