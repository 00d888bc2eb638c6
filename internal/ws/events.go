package ws

import "time"

// 事件名与载荷一一对应，载荷是封闭集合，防止发送端与消费端字段漂移
const (
	EventNotification      = "notification"
	EventRemoveEndorsement = "remove_endorsement"
)

// Envelope 线上帧的统一结构
type Envelope struct {
	Event string `json:"event"`
	Data  any    `json:"data"`
}

// NotificationEvent 新增背书：载荷就是已落库的通知记录 + 技能 id
type NotificationEvent struct {
	ID        uint64    `json:"id"`
	Recipient uint64    `json:"recipient"`
	Sender    uint64    `json:"sender"`
	Message   string    `json:"message"`
	URL       string    `json:"url"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
	SkillID   uint64    `json:"skill_id"`
}

// RemoveEndorsementEvent 取消背书：临时提示，不落库，离线即丢
type RemoveEndorsementEvent struct {
	Recipient uint64 `json:"recipient"`
	Sender    uint64 `json:"sender"`
	Message   string `json:"message"`
	SkillID   uint64 `json:"skill_id"`
}
