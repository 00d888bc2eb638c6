package model

import "time"

type User struct {
	ID                uint64    `gorm:"primaryKey" json:"id"`
	Username          string    `gorm:"uniqueIndex;size:32;not null" json:"username"`
	Name              string    `gorm:"size:64;not null" json:"name"`
	Password          string    `gorm:"size:255;not null" json:"-"`
	Email             string    `gorm:"uniqueIndex;size:64;not null" json:"email"`
	ProfilePictureURL string    `gorm:"size:255" json:"profile_picture_url"`
	Role              int       `gorm:"default:0" json:"-"`
	CreatedAt         time.Time `json:"created_at"`
	UpdatedAt         time.Time `json:"-"`
}
