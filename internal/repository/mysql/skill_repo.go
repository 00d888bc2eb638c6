package mysql

import (
	"context"

	"SkillSphere/internal/model"

	"gorm.io/gorm"
)

type SkillRepository struct {
	DB *gorm.DB
}

func (r *SkillRepository) Create(ctx context.Context, skill *model.Skill) error {
	return r.DB.WithContext(ctx).Create(skill).Error
}

func (r *SkillRepository) FindByID(ctx context.Context, id uint64) (*model.Skill, error) {
	var skill model.Skill
	err := r.DB.WithContext(ctx).First(&skill, id).Error
	return &skill, err
}

func (r *SkillRepository) ExistsByNameAndUser(ctx context.Context, name string, userID uint64) (bool, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Skill{}).
		Where("name = ? AND user_id = ?", name, userID).
		Count(&n).Error
	return n > 0, err
}

// Update 仅允许所有者更新；verified 是派生字段，不在可更新集合内
func (r *SkillRepository) Update(ctx context.Context, skillID, userID uint64, updates map[string]any) (int64, error) {
	delete(updates, "verified")
	tx := r.DB.WithContext(ctx).Model(&model.Skill{}).
		Where("id = ? AND user_id = ?", skillID, userID).
		Updates(updates)
	return tx.RowsAffected, tx.Error
}

// DeleteCascade 所有者删除技能，同事务级联清掉全部背书
func (r *SkillRepository) DeleteCascade(ctx context.Context, skillID, userID uint64) (int64, error) {
	var affected int64
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Where("id = ? AND user_id = ?", skillID, userID).Delete(&model.Skill{})
		if res.Error != nil {
			return res.Error
		}
		affected = res.RowsAffected
		if affected == 0 {
			// 不存在或不是所有者，幂等返回
			return nil
		}
		return tx.Where("skill_id = ?", skillID).Delete(&model.Endorsement{}).Error
	})
	return affected, err
}

func (r *SkillRepository) ListByUser(ctx context.Context, userID uint64) ([]model.Skill, error) {
	var list []model.Skill
	err := r.DB.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("category ASC, name ASC").
		Find(&list).Error
	return list, err
}
