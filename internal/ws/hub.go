package ws

import (
	"encoding/json"
	"log/slog"
	"sync"
)

// Emitter 背书引擎只依赖这一个口子；测试用内存假实现替换
type Emitter interface {
	EmitTo(userID uint64, event string, data any)
}

// Hub 进程内的在线连接表：身份 -> 当前打开的连接集合。
// 一个用户可以同时持有多条连接（多端），都挂在同一个房间下。
type Hub struct {
	mu    sync.RWMutex
	rooms map[uint64]map[*Client]struct{}
}

func NewHub() *Hub {
	return &Hub{rooms: make(map[uint64]map[*Client]struct{})}
}

func (h *Hub) Join(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[c.UserID]
	if !ok {
		room = make(map[*Client]struct{})
		h.rooms[c.UserID] = room
	}
	room[c] = struct{}{}
}

// Leave 幂等：重复离开同一连接不报错，空房间随手清掉
func (h *Hub) Leave(c *Client) {
	h.mu.Lock()
	defer h.mu.Unlock()
	room, ok := h.rooms[c.UserID]
	if !ok {
		return
	}
	delete(room, c)
	if len(room) == 0 {
		delete(h.rooms, c.UserID)
	}
}

// EmitTo 把事件投给该用户的每一条在线连接。零连接是静默 no-op；
// 发送队列满的慢连接直接丢帧，绝不反压调用方。
func (h *Hub) EmitTo(userID uint64, event string, data any) {
	msg, err := json.Marshal(Envelope{Event: event, Data: data})
	if err != nil {
		slog.Error("ws marshal failed", "event", event, "err", err)
		return
	}

	h.mu.RLock()
	defer h.mu.RUnlock()
	for c := range h.rooms[userID] {
		if !c.enqueue(msg) {
			slog.Warn("ws send buffer full, dropping frame", "user_id", userID, "conn_id", c.ID)
		}
	}
}

// Connections 某用户当前在线连接数
func (h *Hub) Connections(userID uint64) int {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.rooms[userID])
}
