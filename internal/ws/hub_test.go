package ws

import (
	"encoding/json"
	"testing"
)

func TestEmitToNobodyIsNoop(t *testing.T) {
	h := NewHub()
	// 不 panic、不阻塞即可
	h.EmitTo(42, EventNotification, NotificationEvent{ID: 1, Recipient: 42})
	if h.Connections(42) != 0 {
		t.Fatal("no connections expected")
	}
}

func TestEmitToReachesEveryConnection(t *testing.T) {
	h := NewHub()
	c1 := newClient(h, nil, 7)
	c2 := newClient(h, nil, 7)
	other := newClient(h, nil, 8)
	h.Join(c1)
	h.Join(c2)
	h.Join(other)

	if h.Connections(7) != 2 {
		t.Fatalf("connections=%d, want 2", h.Connections(7))
	}

	h.EmitTo(7, EventNotification, NotificationEvent{ID: 5, Recipient: 7, Message: "hi"})

	for i, c := range []*Client{c1, c2} {
		select {
		case raw := <-c.send:
			var env Envelope
			if err := json.Unmarshal(raw, &env); err != nil {
				t.Fatalf("client %d: bad frame: %v", i, err)
			}
			if env.Event != EventNotification {
				t.Fatalf("client %d: event=%q", i, env.Event)
			}
		default:
			t.Fatalf("client %d received nothing", i)
		}
	}

	// 别的用户收不到
	select {
	case <-other.send:
		t.Fatal("event leaked to another user's connection")
	default:
	}
}

func TestLeaveIsIdempotentAndCleansRoom(t *testing.T) {
	h := NewHub()
	c := newClient(h, nil, 7)
	h.Join(c)
	h.Leave(c)
	h.Leave(c)

	if h.Connections(7) != 0 {
		t.Fatalf("connections=%d, want 0", h.Connections(7))
	}
	h.mu.RLock()
	_, ok := h.rooms[7]
	h.mu.RUnlock()
	if ok {
		t.Fatal("empty room should be removed")
	}
}

func TestSlowConsumerDropsFrameWithoutBlocking(t *testing.T) {
	h := NewHub()
	c := newClient(h, nil, 7)
	h.Join(c)

	// 没有 writePump 消费，灌满队列后继续投递必须直接返回
	for i := 0; i < sendBufferSize+5; i++ {
		h.EmitTo(7, EventNotification, NotificationEvent{ID: uint64(i), Recipient: 7})
	}

	if len(c.send) != sendBufferSize {
		t.Fatalf("buffered=%d, want %d", len(c.send), sendBufferSize)
	}
}
