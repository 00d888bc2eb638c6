package mysql

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"SkillSphere/internal/model"

	"gorm.io/gorm"
)

// VerifyThreshold 达到该背书数后技能标记为 verified
const VerifyThreshold = 3

type EndorsementRepository struct {
	DB *gorm.DB
}

// ToggleResult 一次 toggle 的落库结果，commit 之后才可用于推送
type ToggleResult struct {
	Removed      bool
	Endorsement  *model.Endorsement
	Notification *model.Notification
	Count        int64
	Verified     bool
}

// Toggle 单事务完成三元组的增/删、计数重算、verified 派生与通知落库。
// verified 永远由权威计数重算，不做原地加减，避免丢失更新造成漂移。
func (r *EndorsementRepository) Toggle(ctx context.Context, skill *model.Skill, endorsedBy, endorsedTo uint64, message, url string) (*ToggleResult, error) {
	res := &ToggleResult{}
	err := r.DB.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var existing model.Endorsement
		err := tx.
			Where("skill_id = ? AND endorsed_by = ? AND endorsed_to = ?", skill.ID, endorsedBy, endorsedTo).
			First(&existing).Error

		if err == nil {
			// 已存在 -> 取消背书
			if err = tx.Delete(&model.Endorsement{}, existing.ID).Error; err != nil {
				return err
			}
			if err = r.recomputeVerified(tx, skill, res); err != nil {
				return err
			}
			res.Removed = true
			res.Endorsement = &existing
			return r.insertOutbox(tx, "unendorse", endorsedBy, endorsedTo, skill.ID)
		}
		if !errors.Is(err, gorm.ErrRecordNotFound) {
			return err
		}

		// 不存在 -> 新增背书
		created := model.Endorsement{
			SkillID:    skill.ID,
			EndorsedBy: endorsedBy,
			EndorsedTo: endorsedTo,
		}
		if err = tx.Create(&created).Error; err != nil {
			return err
		}
		if err = r.recomputeVerified(tx, skill, res); err != nil {
			return err
		}

		// 只有新增才落通知记录；取消走临时事件，不留痕
		notif := model.Notification{
			Recipient: endorsedTo,
			Sender:    endorsedBy,
			Message:   message,
			URL:       url,
			ExpireAt:  time.Now().Add(model.NotificationTTL),
		}
		if err = tx.Create(&notif).Error; err != nil {
			return err
		}

		res.Removed = false
		res.Endorsement = &created
		res.Notification = &notif
		return r.insertOutbox(tx, "endorse", endorsedBy, endorsedTo, skill.ID)
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// recomputeVerified 权威计数 + 仅在变化时更新 verified 列
func (r *EndorsementRepository) recomputeVerified(tx *gorm.DB, skill *model.Skill, res *ToggleResult) error {
	var count int64
	if err := tx.Model(&model.Endorsement{}).
		Where("skill_id = ?", skill.ID).
		Count(&count).Error; err != nil {
		return err
	}
	verified := count >= VerifyThreshold
	if skill.Verified != verified {
		if err := tx.Model(&model.Skill{}).
			Where("id = ?", skill.ID).
			UpdateColumn("verified", verified).Error; err != nil {
			return err
		}
		skill.Verified = verified
	}
	res.Count = count
	res.Verified = verified
	return nil
}

func (r *EndorsementRepository) insertOutbox(tx *gorm.DB, event string, actor, recipient, skillID uint64) error {
	payload, _ := json.Marshal(map[string]any{
		"event_time": time.Now().UTC().Format(time.RFC3339Nano),
		"actor":      actor,
		"recipient":  recipient,
		"skill_id":   skillID,
	})
	ob := &model.EndorseOutbox{
		EventType: event,
		Actor:     actor,
		Recipient: recipient,
		SkillID:   skillID,
		Payload:   string(payload),
		Status:    0,
	}
	return tx.Create(ob).Error
}

// CountBySkill 权威背书计数
func (r *EndorsementRepository) CountBySkill(ctx context.Context, skillID uint64) (int64, error) {
	var n int64
	err := r.DB.WithContext(ctx).Model(&model.Endorsement{}).
		Where("skill_id = ?", skillID).
		Count(&n).Error
	return n, err
}

// RecentByUser 某用户最近收到的背书
func (r *EndorsementRepository) RecentByUser(ctx context.Context, userID uint64, limit int) ([]model.Endorsement, error) {
	if limit <= 0 || limit > 50 {
		limit = 3
	}
	var rows []model.Endorsement
	err := r.DB.WithContext(ctx).
		Where("endorsed_to = ?", userID).
		Order("created_at DESC, id DESC").
		Limit(limit).
		Find(&rows).Error
	return rows, err
}
