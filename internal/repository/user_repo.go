package repository

import (
	"context"
	"errors"
	"nanny-payroll-bot/internal/logging"
	"nanny-payroll-bot/internal/models"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// ErrUserExists - пользователь с таким chat_id уже зарегистрирован
var ErrUserExists = errors.New("пользователь уже существует")

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByChatID(ctx context.Context, chatID int64) (*models.User, error)
	Update(ctx context.Context, user *models.User) error
	Delete(ctx context.Context, chatID int64) error
	Exists(ctx context.Context, chatID int64) (bool, error)
	GetAll(ctx context.Context) ([]*models.User, error)
	UpdateRole(ctx context.Context, chatID int64, role string) error
	GetAdmins(ctx context.Context) ([]*models.User, error)
}

type GormUserRepository struct {
	db     *gorm.DB
	logger *logrus.Logger
}

func NewGormUserRepository(db *gorm.DB) (*GormUserRepository, error) {
	logger := logging.New()

	// Автомиграция - создает таблицы если их нет
	if err := db.AutoMigrate(&models.User{}); err != nil {
		logger.WithError(err).Error("Failed to auto-migrate users table")
		return nil, err
	}

	return &GormUserRepository{
		db:     db,
		logger: logger,
	}, nil
}

func (r *GormUserRepository) Create(ctx context.Context, user *models.User) error {
	// Проверяем, существует ли уже пользователь
	exists, err := r.Exists(ctx, user.ChatID)
	if err != nil {
		return err
	}
	if exists {
		return ErrUserExists
	}

	result := r.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		if isDuplicateKey(result.Error) {
			return ErrUserExists
		}
		r.logger.WithError(result.Error).Error("Failed to create user")
		return result.Error
	}

	r.logger.WithFields(logrus.Fields{
		"chat_id": user.ChatID,
		"role":    user.Role,
	}).Info("User created")

	return nil
}

func (r *GormUserRepository) GetByChatID(ctx context.Context, chatID int64) (*models.User, error) {
	var user models.User
	result := r.db.WithContext(ctx).Where("chat_id = ?", chatID).First(&user)

	if errors.Is(result.Error, gorm.ErrRecordNotFound) {
		return nil, nil
	}

	if result.Error != nil {
		return nil, result.Error
	}

	return &user, nil
}

func (r *GormUserRepository) Update(ctx context.Context, user *models.User) error {
	// Проверяем существование пользователя
	exists, err := r.Exists(ctx, user.ChatID)
	if err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}

	result := r.db.WithContext(ctx).Save(user)
	if result.Error != nil {
		return result.Error
	}

	return nil
}

func (r *GormUserRepository) Delete(ctx context.Context, chatID int64) error {
	result := r.db.WithContext(ctx).Where("chat_id = ?", chatID).Delete(&models.User{})

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.logger.WithField("chat_id", chatID).Info("User deleted")
	return nil
}

func (r *GormUserRepository) Exists(ctx context.Context, chatID int64) (bool, error) {
	var count int64
	result := r.db.WithContext(ctx).Model(&models.User{}).Where("chat_id = ?", chatID).Count(&count)

	if result.Error != nil {
		return false, result.Error
	}

	return count > 0, nil
}

func (r *GormUserRepository) GetAll(ctx context.Context) ([]*models.User, error) {
	var users []*models.User
	result := r.db.WithContext(ctx).Order("id ASC").Find(&users)

	if result.Error != nil {
		return nil, result.Error
	}

	return users, nil
}

func (r *GormUserRepository) UpdateRole(ctx context.Context, chatID int64, role string) error {
	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("chat_id = ?", chatID).
		Update("role", role)

	if result.Error != nil {
		return result.Error
	}

	if result.RowsAffected == 0 {
		return ErrNotFound
	}

	r.logger.WithFields(logrus.Fields{
		"chat_id": chatID,
		"role":    role,
	}).Info("User role updated")

	return nil
}

func (r *GormUserRepository) GetAdmins(ctx context.Context) ([]*models.User, error) {
	var admins []*models.User
	result := r.db.WithContext(ctx).Where("role = ?", models.RoleAdmin).Find(&admins)

	if result.Error != nil {
		return nil, result.Error
	}

	return admins, nil
}
