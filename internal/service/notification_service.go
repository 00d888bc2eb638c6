package service

import (
	"context"

	"SkillSphere/internal/model"
	"SkillSphere/internal/repository/mysql"

	"gorm.io/gorm"
)

// NotificationService 通知记录的读/改/删。记录只由背书引擎产生，
// 这里不提供任何创建入口。
type NotificationService struct {
	repo *mysql.NotificationRepository
}

func NewNotificationService(db *gorm.DB) *NotificationService {
	return &NotificationService{repo: &mysql.NotificationRepository{DB: db}}
}

func (s *NotificationService) UnreadCount(ctx context.Context, recipient uint64) (int64, error) {
	if recipient == 0 {
		return 0, ErrInvalidID
	}
	return s.repo.UnreadCount(ctx, recipient)
}

func (s *NotificationService) List(ctx context.Context, recipient uint64, read *bool, page, size int) ([]model.Notification, error) {
	if recipient == 0 {
		return nil, ErrInvalidID
	}
	if page <= 0 {
		page = 1
	}
	if size <= 0 || size > 50 {
		size = 10
	}
	return s.repo.List(ctx, recipient, read, (page-1)*size, size)
}

func (s *NotificationService) MarkRead(ctx context.Context, recipient, id uint64) error {
	if recipient == 0 || id == 0 {
		return ErrInvalidID
	}
	affected, err := s.repo.MarkRead(ctx, id, recipient)
	if err != nil {
		return err
	}
	if affected == 0 {
		return ErrNotificationNotFound
	}
	return nil
}

func (s *NotificationService) MarkAllRead(ctx context.Context, recipient uint64) (int64, error) {
	if recipient == 0 {
		return 0, ErrInvalidID
	}
	return s.repo.MarkAllRead(ctx, recipient)
}

func (s *NotificationService) DeleteRead(ctx context.Context, recipient uint64) (int64, error) {
	if recipient == 0 {
		return 0, ErrInvalidID
	}
	return s.repo.DeleteRead(ctx, recipient)
}

func (s *NotificationService) DeleteAll(ctx context.Context, recipient uint64) (int64, error) {
	if recipient == 0 {
		return 0, ErrInvalidID
	}
	return s.repo.DeleteAll(ctx, recipient)
}
