package http

import (
	"github.com/gin-gonic/gin"

	"github.com/supplykingmv/vcard/internal/domain"
	"github.com/supplykingmv/vcard/internal/presence"
	"github.com/supplykingmv/vcard/internal/service"
	"github.com/supplykingmv/vcard/internal/transport/http/handlers"
	"github.com/supplykingmv/vcard/internal/transport/http/middlewares"
)

type Deps struct {
	Auth          *service.AuthSvc
	Users         *service.UserSvc
	Contacts      *service.ContactSvc
	Notifications *service.NotificationSvc
	Presence      *presence.Store
}

// NewRouter wires the full v1 API. Contact reads are open to every
// signed-in role; mutations additionally pass the role checks inside
// the contact service (viewer is read-only).
func NewRouter(d Deps) *gin.Engine {
	r := gin.Default()

	ah := handlers.NewAuthHandler(d.Auth, d.Presence)
	uh := handlers.NewUserHandler(d.Users, d.Auth)
	ch := handlers.NewContactHandler(d.Contacts, d.Notifications)
	nh := handlers.NewNotificationHandler(d.Notifications)
	ph := handlers.NewPresenceHandler(d.Presence)

	authed := middlewares.JWTAuth(d.Users)
	admins := middlewares.RequireRole(domain.RoleAdmin, domain.RoleSuperadmin)

	v1 := r.Group("/v1")
	{
		v1.POST("/auth/register", ah.Register)
		v1.POST("/auth/login", ah.Login)
		v1.POST("/auth/refresh", ah.Refresh)
		v1.POST("/auth/reset-password", ah.ResetPassword)
		v1.POST("/auth/reset-password/confirm", ah.ResetConfirm)

		session := v1.Group("")
		session.Use(authed)
		{
			session.POST("/auth/logout", ah.Logout)
			session.POST("/auth/change-password", ah.ChangePassword)

			session.GET("/users/me", uh.GetMe)
			session.PUT("/users/me", uh.UpdateMe)

			session.GET("/contacts", ch.List)
			session.GET("/contacts/view", ch.View)
			session.GET("/contacts/:id", ch.Get)
			session.POST("/contacts", ch.Create)
			session.POST("/contacts/import", ch.Import)
			session.PUT("/contacts/:id", ch.Update)
			session.DELETE("/contacts/:id", ch.Delete)
			session.GET("/contacts/:id/vcard", ch.VCard)
			session.GET("/contacts/:id/qr.png", ch.QRPNG)
			session.GET("/contacts/:id/qr-url", ch.QRURL)

			session.GET("/notifications", nh.List)
			session.POST("/notifications/:id/clear", nh.Clear)

			session.GET("/presence", ph.Online)

			admin := session.Group("")
			admin.Use(admins)
			{
				admin.GET("/users", uh.List)
				admin.GET("/users/:id", uh.GetByID)
				admin.POST("/users", uh.Create)
				admin.PUT("/users/:id", uh.Update)
				admin.DELETE("/users/:id", uh.Delete)

				admin.POST("/notifications", nh.Create)
			}
		}
	}

	return r
}
