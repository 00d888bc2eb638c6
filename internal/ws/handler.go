package ws

import (
	"log/slog"
	"net/http"

	"SkillSphere/internal/auth"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin: func(r *http.Request) bool {
		// 跨域控制交给网关层
		return true
	},
}

// Handler WS 握手入口。鉴权失败在升级协议之前拒绝，
// 这条通道不存在匿名或降级信任的连接。
type Handler struct {
	Hub    *Hub
	Verify auth.VerifyFunc
}

func NewHandler(hub *Hub, verify auth.VerifyFunc) *Handler {
	return &Handler{Hub: hub, Verify: verify}
}

// handshakeToken 支持 Authorization 头、token 查询参数、accessToken cookie
func handshakeToken(c *gin.Context) string {
	if token := auth.BearerToken(c.GetHeader("Authorization")); token != "" {
		return token
	}
	if token := c.Query("token"); token != "" {
		return token
	}
	if cookie, err := c.Cookie("accessToken"); err == nil {
		return cookie
	}
	return ""
}

func (h *Handler) Serve(c *gin.Context) {
	userID, err := h.Verify(handshakeToken(c))
	if err != nil {
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "unauthorized handshake"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		// Upgrade 已经写过响应
		slog.Warn("ws upgrade failed", "user_id", userID, "err", err)
		return
	}

	client := newClient(h.Hub, conn, userID)
	h.Hub.Join(client)
	slog.Info("ws connected", "user_id", userID, "conn_id", client.ID)

	go client.writePump()
	go client.readPump()
}
