package router

import (
	"net/http"

	"SkillSphere/internal/auth"
	"SkillSphere/internal/handler"
	"SkillSphere/internal/middleware"
	"SkillSphere/internal/ws"

	"github.com/gin-gonic/gin"
)

type Deps struct {
	User         *handler.UserHandler
	Email        *handler.EmailHandler
	Skill        *handler.SkillHandler
	Endorsement  *handler.EndorsementHandler
	Notification *handler.NotificationHandler
	WS           *ws.Handler
	Verify       auth.VerifyFunc
}

func InitRouter(d Deps) *gin.Engine {
	r := gin.Default()

	r.GET("/api/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	// 邮件验证码
	emailGroup := r.Group("/api/email")
	{
		emailGroup.POST("/:scope/code", d.Email.SendCode)
	}

	// 用户
	userGroup := r.Group("/api/user")
	{
		userGroup.POST("/register", d.User.Register)
		userGroup.POST("/login", d.User.Login)
		userGroup.POST("/reset", d.User.ResetPassword)
	}

	tokenGroup := r.Group("/api/token")
	{
		tokenGroup.POST("/refresh", d.User.TokenRefresh)
	}

	authGroup := r.Group("/api/auth")
	authGroup.Use(middleware.AuthMiddleware(d.Verify))
	{
		authGroup.POST("/logout", d.User.Logout)
		authGroup.POST("/change-password", d.User.ChangePassword)
		authGroup.GET("/profile", d.User.Profile)
	}

	// 技能：写接口强鉴权，读接口可匿名
	skillGroup := r.Group("/api/skill")
	{
		skillGroup.GET("/user/:id", middleware.OptionalAuth(d.Verify), d.Skill.ListByUser)

		authed := skillGroup.Group("")
		authed.Use(middleware.AuthMiddleware(d.Verify))
		{
			authed.POST("/create", d.Skill.Create)
			authed.PUT("/:id", d.Skill.Update)
			authed.DELETE("/:id", d.Skill.Delete)
		}
	}

	// 背书
	endorseGroup := r.Group("/api/endorsement")
	{
		endorseGroup.GET("/recent/:userId", middleware.OptionalAuth(d.Verify), d.Endorsement.Recent)
		endorseGroup.GET("/count/:skillId", middleware.OptionalAuth(d.Verify), d.Endorsement.Count)
		endorseGroup.POST("/toggle", middleware.AuthMiddleware(d.Verify), d.Endorsement.Toggle)
	}

	// 通知
	notifGroup := r.Group("/api/notification")
	notifGroup.Use(middleware.AuthMiddleware(d.Verify))
	{
		notifGroup.GET("/unread-count", d.Notification.UnreadCount)
		notifGroup.GET("/", d.Notification.List)
		notifGroup.PATCH("/read-all", d.Notification.MarkAllRead)
		notifGroup.PATCH("/:id/read", d.Notification.MarkRead)
		notifGroup.DELETE("/read", d.Notification.DeleteRead)
		notifGroup.DELETE("/", d.Notification.DeleteAll)
	}

	// 实时通道：握手时鉴权，升级前拒绝
	r.GET("/api/ws", d.WS.Serve)

	return r
}
