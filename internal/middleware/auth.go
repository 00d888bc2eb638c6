package middleware

import (
	"net/http"

	"SkillSphere/internal/auth"

	"github.com/gin-gonic/gin"
)

const ContextUserIDKey = "user_id"

// tokenFromRequest 支持 Authorization 头和 accessToken cookie 两种携带方式
func tokenFromRequest(c *gin.Context) string {
	if token := auth.BearerToken(c.GetHeader("Authorization")); token != "" {
		return token
	}
	if cookie, err := c.Cookie("accessToken"); err == nil {
		return cookie
	}
	return ""
}

func AuthMiddleware(verify auth.VerifyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := tokenFromRequest(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "missing credentials"})
			return
		}

		userID, err := verify(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"msg": "invalid or expired token"})
			return
		}

		c.Set(ContextUserIDKey, userID)
		c.Next()
	}
}

// OptionalAuth 带 token 且有效则注入 user_id，否则匿名放行。
// 只用于读接口；写接口和 WS 通道一律强鉴权。
func OptionalAuth(verify auth.VerifyFunc) gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := tokenFromRequest(c); token != "" {
			if userID, err := verify(token); err == nil {
				c.Set(ContextUserIDKey, userID)
			}
		}
		c.Next()
	}
}
