package mysql

import (
	"context"

	"SkillSphere/internal/model"

	"gorm.io/gorm"
)

type NotificationRepository struct {
	DB *gorm.DB
}

func (r *NotificationRepository) UnreadCount(ctx context.Context, recipient uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient = ? AND is_read = ?", recipient, false).
		Count(&n).Error
	return n, err
}

// List read 为 nil 时不过滤已读状态
func (r *NotificationRepository) List(ctx context.Context, recipient uint64, read *bool, offset, limit int) ([]model.Notification, error) {
	q := r.DB.WithContext(ctx).Where("recipient = ?", recipient)
	if read != nil {
		q = q.Where("is_read = ?", *read)
	}
	var list []model.Notification
	err := q.Order("created_at DESC, id DESC").
		Offset(offset).
		Limit(limit).
		Find(&list).Error
	return list, err
}

// MarkRead 只允许收件人本人标记；返回是否命中
func (r *NotificationRepository) MarkRead(ctx context.Context, id, recipient uint64) (int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.Notification{}).
		Where("id = ? AND recipient = ?", id, recipient).
		Update("is_read", true)
	return tx.RowsAffected, tx.Error
}

func (r *NotificationRepository) MarkAllRead(ctx context.Context, recipient uint64) (int64, error) {
	tx := r.DB.WithContext(ctx).Model(&model.Notification{}).
		Where("recipient = ? AND is_read = ?", recipient, false).
		Update("is_read", true)
	return tx.RowsAffected, tx.Error
}

func (r *NotificationRepository) DeleteRead(ctx context.Context, recipient uint64) (int64, error) {
	tx := r.DB.WithContext(ctx).
		Where("recipient = ? AND is_read = ?", recipient, true).
		Delete(&model.Notification{})
	return tx.RowsAffected, tx.Error
}

func (r *NotificationRepository) DeleteAll(ctx context.Context, recipient uint64) (int64, error) {
	tx := r.DB.WithContext(ctx).
		Where("recipient = ?", recipient).
		Delete(&model.Notification{})
	return tx.RowsAffected, tx.Error
}
