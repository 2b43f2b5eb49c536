package repository

import (
	"context"

	constant "github.com/sopheak-dev/agencyflow/internal/constant"
	"github.com/sopheak-dev/agencyflow/internal/model"
	"gorm.io/gorm"
)

type UserRepository struct {
	*baseRepository
}

func (ur UserRepository) GetById(ctx context.Context, tx *gorm.DB, userId uint) (*model.User, error) {
	ur.logger.Debugf("Get user by id: %d \n", userId)

	db := ur.getDB(tx)
	var user *model.User

	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.User{}).Where("id = ?", userId).First(&user).Error; err != nil {
		return user, err
	}

	return user, nil
}

func (ur UserRepository) GetAdmins(ctx context.Context, tx *gorm.DB) ([]model.User, error) {
	ur.logger.Debug("Get all admin users \n")

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var admins []model.User
	if err := db.WithContext(ctx).Model(&model.User{}).Where("role = ?", constant.UserRoleAdmin).Find(&admins).Error; err != nil {
		return nil, err
	}

	return admins, nil
}

func (ur UserRepository) GetActive(ctx context.Context, tx *gorm.DB) ([]model.User, error) {
	ur.logger.Debug("Get all active users \n")

	db := ur.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var users []model.User
	if err := db.WithContext(ctx).Model(&model.User{}).Where("is_active = ?", true).Find(&users).Error; err != nil {
		return nil, err
	}

	return users, nil
}
