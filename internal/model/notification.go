package model

import "time"

// NotificationTTL 通知保留时长，到期由存储侧被动清理
const NotificationTTL = 72 * time.Hour

// Notification 只在背书新增时落库；取消背书不产生记录
type Notification struct {
	ID        uint64    `gorm:"primaryKey" json:"id"`
	Recipient uint64    `gorm:"not null;index:idx_recipient_read" json:"recipient"`
	Sender    uint64    `gorm:"not null" json:"sender"`
	Message   string    `gorm:"size:255;not null" json:"message"`
	URL       string    `gorm:"size:255" json:"url"`
	IsRead    bool      `gorm:"not null;default:false;index:idx_recipient_read" json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	ExpireAt  time.Time `gorm:"index" json:"-"`
}
