package server

import (
	"fmt"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"

	"github.com/tickify/gateway/config"
	"github.com/tickify/gateway/internal/catalog"
	"github.com/tickify/gateway/internal/handlers"
	"github.com/tickify/gateway/internal/middleware"
	"github.com/tickify/gateway/internal/session"
	"github.com/tickify/gateway/internal/upstream"
)

func Start() error {
	cfg, err := config.LoadConfig()
	if err != nil {
		return fmt.Errorf("failed to load config: %v", err)
	}

	rdb := config.NewRedisClient(cfg)
	if rdb == nil {
		logrus.Warn("redis unreachable, price cache and sessions fall back to process memory")
	}

	up := upstream.New(cfg.UpstreamBaseURL, cfg.UpstreamTimeout)
	catalogStore := catalog.NewStore(up, rdb, cfg.PriceCacheTTL, cfg.RefreshDebounce)
	sessions := session.NewStore(rdb, cfg.SessionTTL)

	// Audit trail for session changes; also a live example of the
	// subscribe contract replacing the old ambient broadcasts.
	sessions.Subscribe(func(sess session.Session) {
		logrus.WithFields(logrus.Fields{
			"session_id": sess.ID,
			"user_id":    sess.User.ID,
			"signed_in":  sess.Token != "",
		}).Info("session changed")
	})

	r := gin.Default()
	setupRoutes(r, catalogStore, sessions, up, []byte(cfg.JWTSecret))

	return r.Run(":" + cfg.Port)
}

func setupRoutes(r *gin.Engine, catalogStore *catalog.Store, sessions *session.Store, up *upstream.Client, secret []byte) {
	r.Use(middleware.CatalogMiddleware(catalogStore))
	r.Use(middleware.SessionMiddleware(sessions))
	r.Use(middleware.UpstreamMiddleware(up))
	r.Use(middleware.JWTSecretMiddleware(secret))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	public := r.Group("/v1")
	{
		public.POST("/auth/register", handlers.Register)
		public.POST("/auth/login", handlers.Login)

		eventPublic := public.Group("/events")
		{
			eventPublic.GET("", handlers.ListEvents)
			eventPublic.GET("/featured", handlers.FeaturedEvents)
			eventPublic.GET("/:id", handlers.GetEvent)
		}
	}

	protected := r.Group("/v1")
	protected.Use(middleware.AuthRequired(sessions, secret))
	{
		protected.POST("/auth/logout", handlers.Logout)

		protected.GET("/users/me", handlers.GetProfile)
		protected.PATCH("/users/profile", handlers.UpdateProfile)
		protected.PATCH("/users/change-password", handlers.ChangePassword)

		orders := protected.Group("/orders")
		{
			orders.POST("", handlers.CreateOrder)
			orders.GET("", handlers.ListMyOrders)
			orders.GET("/:id", handlers.GetOrder)
			orders.POST("/:id/pay", handlers.PayOrder)
			orders.POST("/:id/cancel", handlers.CancelOrder)
		}

		tickets := protected.Group("/tickets")
		{
			tickets.GET("/mine", handlers.ListMyTickets)
			tickets.GET("/:id/qr", handlers.TicketQR)
		}

		admin := protected.Group("/admin")
		admin.Use(middleware.AdminRequired())
		{
			admin.GET("/users", handlers.AdminListUsers)
			admin.POST("/users", handlers.AdminCreateUser)
			admin.PUT("/users/:id", handlers.AdminUpdateUser)
			admin.DELETE("/users/:id", handlers.AdminDeleteUser)

			admin.POST("/events", handlers.AdminCreateEvent)
			admin.PUT("/events/:id", handlers.AdminUpdateEvent)
			admin.DELETE("/events/:id", handlers.AdminDeleteEvent)

			admin.POST("/tickets", handlers.AdminCreateTicket)
			admin.PUT("/tickets/:id", handlers.AdminUpdateTicket)
			admin.DELETE("/tickets/:id", handlers.AdminDeleteTicket)
		}
	}
}
