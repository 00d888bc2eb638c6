package ws

import (
	"log/slog"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
)

const (
	writeWait  = 10 * time.Second
	pongWait   = 60 * time.Second
	pingPeriod = (pongWait * 9) / 10

	// 这个通道只下行事件，不收业务消息
	maxMessageSize = 512
	sendBufferSize = 16
)

// Client 一条已鉴权的连接。生命周期：握手通过 -> Join -> 断开 -> Leave，
// 断开后不留任何持久痕迹。
type Client struct {
	ID     string
	UserID uint64

	hub  *Hub
	conn *websocket.Conn
	send chan []byte
	once sync.Once
}

func newClient(hub *Hub, conn *websocket.Conn, userID uint64) *Client {
	return &Client{
		ID:     uuid.NewString(),
		UserID: userID,
		hub:    hub,
		conn:   conn,
		send:   make(chan []byte, sendBufferSize),
	}
}

// enqueue 非阻塞投递；队列满返回 false，由调用方决定丢帧
func (c *Client) enqueue(msg []byte) bool {
	select {
	case c.send <- msg:
		return true
	default:
		return false
	}
}

// close 幂等：从 hub 摘除并关闭底层连接
func (c *Client) close() {
	c.once.Do(func() {
		c.hub.Leave(c)
		close(c.send)
		_ = c.conn.Close()
		slog.Info("ws disconnected", "user_id", c.UserID, "conn_id", c.ID)
	})
}

// readPump 不消费业务数据，只维持 pong 心跳并感知断开
func (c *Client) readPump() {
	defer c.close()
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})
	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			return
		}
	}
}

func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.close()
	}()
	for {
		select {
		case msg, ok := <-c.send:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				_ = c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				return
			}
		case <-ticker.C:
			_ = c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
