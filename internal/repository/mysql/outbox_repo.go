package mysql

import (
	"context"

	"SkillSphere/internal/model"

	"gorm.io/gorm"
)

type OutboxRepository struct {
	DB *gorm.DB
}

// ListPending 按插入顺序取一批待投递事件
func (r *OutboxRepository) ListPending(ctx context.Context, batchSize int) ([]model.EndorseOutbox, error) {
	var list []model.EndorseOutbox
	if err := r.DB.WithContext(ctx).
		Where("status = 0").
		Order("id ASC").
		Limit(batchSize).
		Find(&list).Error; err != nil {
		return nil, err
	}
	return list, nil
}

func (r *OutboxRepository) MarkFailed(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.EndorseOutbox{}).Where("id = ?", id).
		Updates(map[string]any{"status": 2, "retry": gorm.Expr("retry + 1")}).Error
}

func (r *OutboxRepository) MarkSent(ctx context.Context, id uint64) error {
	return r.DB.WithContext(ctx).Model(&model.EndorseOutbox{}).Where("id = ?", id).
		Update("status", 1).Error
}
