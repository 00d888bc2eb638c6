package model

import "time"

type Skill struct {
	ID               uint64    `gorm:"primaryKey" json:"id"`
	UserID           uint64    `gorm:"not null;index;uniqueIndex:uk_user_skill_name" json:"user_id"`
	Name             string    `gorm:"size:100;not null;uniqueIndex:uk_user_skill_name" json:"name"`
	Category         string    `gorm:"size:32;not null;index" json:"category"`
	ProficiencyLevel int       `gorm:"not null" json:"proficiency_level"` // 1-5
	YearsExperience  int       `gorm:"not null;default:0" json:"years_experience"`
	Description      string    `gorm:"type:text" json:"description"`
	ProjectURL       string    `gorm:"size:255" json:"project_url"`
	// Verified 为派生字段：只在背书变化时由计数重算，不允许外部直接设置
	Verified  bool      `gorm:"not null;default:false" json:"verified"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"-"`
}
