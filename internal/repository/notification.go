package repository

import (
	"context"
	"time"

	constant "github.com/sopheak-dev/agencyflow/internal/constant"
	"github.com/sopheak-dev/agencyflow/internal/model"
	"gorm.io/gorm"
)

type NotificationRepository struct {
	*baseRepository
}

func (nr NotificationRepository) Create(ctx context.Context, tx *gorm.DB, notification *model.Notification) (*model.Notification, error) {
	nr.logger.Debugf("Create notification for user %d: %s \n", notification.UserID, notification.Title)

	db := nr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	if err := db.WithContext(ctx).Model(&model.Notification{}).Create(notification).Error; err != nil {
		return notification, err
	}

	return notification, nil
}

func (nr NotificationRepository) GetById(ctx context.Context, tx *gorm.DB, notificationId uint) (*model.Notification, error) {
	nr.logger.Debugf("Get notification by id: %d \n", notificationId)

	db := nr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var notification model.Notification
	if err := db.WithContext(ctx).Model(&model.Notification{}).Where("id = ?", notificationId).First(&notification).Error; err != nil {
		return nil, err
	}

	return &notification, nil
}

func (nr NotificationRepository) ListByUser(ctx context.Context, tx *gorm.DB, userId uint, page, pageSize uint) ([]model.Notification, int64, error) {
	nr.logger.Debugf("List notifications of user %d (page %d, size %d) \n", userId, page, pageSize)

	db := nr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	query := db.WithContext(ctx).Model(&model.Notification{}).Where("user_id = ?", userId)

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var notifications []model.Notification
	if err := query.Order("created_at DESC").
		Offset(int((page - 1) * pageSize)).Limit(int(pageSize)).
		Find(&notifications).Error; err != nil {
		return nil, 0, err
	}

	return notifications, total, nil
}

func (nr NotificationRepository) UnreadCount(ctx context.Context, tx *gorm.DB, userId uint) (int64, error) {
	nr.logger.Debugf("Count unread notifications of user: %d \n", userId)

	db := nr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	var count int64
	if err := db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userId, false).Count(&count).Error; err != nil {
		return 0, err
	}

	return count, nil
}

func (nr NotificationRepository) MarkAsRead(ctx context.Context, tx *gorm.DB, notificationId uint) (int64, error) {
	nr.logger.Debugf("Mark notification %d as read \n", notificationId)

	db := nr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	res := db.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ?", notificationId).
		Updates(map[string]any{"is_read": true, "updated_at": time.Now()})
	if res.Error != nil {
		return 0, res.Error
	}

	return res.RowsAffected, nil
}

func (nr NotificationRepository) MarkAllAsRead(ctx context.Context, tx *gorm.DB, userId uint) error {
	nr.logger.Debugf("Mark all notifications of user %d as read \n", userId)

	db := nr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Model(&model.Notification{}).
		Where("user_id = ? AND is_read = ?", userId, false).
		Updates(map[string]any{"is_read": true, "updated_at": time.Now()}).Error
}

func (nr NotificationRepository) Delete(ctx context.Context, tx *gorm.DB, notificationId uint) (int64, error) {
	nr.logger.Debugf("Delete notification with id: %d \n", notificationId)

	db := nr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	res := db.WithContext(ctx).Where("id = ?", notificationId).Delete(&model.Notification{})
	if res.Error != nil {
		return 0, res.Error
	}

	return res.RowsAffected, nil
}

func (nr NotificationRepository) DeleteAllForUser(ctx context.Context, tx *gorm.DB, userId uint) error {
	nr.logger.Debugf("Delete all notifications of user: %d \n", userId)

	db := nr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	return db.WithContext(ctx).Where("user_id = ?", userId).Delete(&model.Notification{}).Error
}

// DeleteReadBefore purges read notifications older than the cutoff. Called
// by the nightly retention job.
func (nr NotificationRepository) DeleteReadBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	nr.logger.Debugf("Purge read notifications created before: %v \n", cutoff)

	db := nr.getDB(tx)
	ctx, cancel := context.WithTimeout(ctx, constant.QUERY_TIMEOUT_DURATION)
	defer cancel()

	res := db.WithContext(ctx).Where("is_read = ? AND created_at < ?", true, cutoff).Delete(&model.Notification{})
	if res.Error != nil {
		return 0, res.Error
	}

	return res.RowsAffected, nil
}
