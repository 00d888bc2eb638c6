package model

import "time"

// Endorsement 同一 (skill, endorsed_by, endorsed_to) 三元组最多存在一条
type Endorsement struct {
	ID         uint64    `gorm:"primaryKey" json:"id"`
	SkillID    uint64    `gorm:"not null;index;uniqueIndex:uk_skill_by_to" json:"skill_id"`
	EndorsedBy uint64    `gorm:"not null;uniqueIndex:uk_skill_by_to" json:"endorsed_by"`
	EndorsedTo uint64    `gorm:"not null;index;uniqueIndex:uk_skill_by_to" json:"endorsed_to"`
	CreatedAt  time.Time `json:"created_at"`
}

// EndorseOutbox 背书事件监控表
type EndorseOutbox struct {
	ID        uint64 `gorm:"primaryKey"`
	EventType string `gorm:"size:16;not null"` // endorse / unendorse
	Actor     uint64 `gorm:"not null"`
	Recipient uint64 `gorm:"not null"`
	SkillID   uint64 `gorm:"not null"`
	Payload   string `gorm:"type:json;not null"`
	Status    int8   `gorm:"not null;default:0;comment:'0=pending,1=sent,2=failed'"`
	Retry     int    `gorm:"not null;default:0"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

func (EndorseOutbox) TableName() string { return "endorse_outbox" }
