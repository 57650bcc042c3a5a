package api

import (
	"github.com/gin-gonic/gin"
	"github.com/mautops/remotework-gin/internal/auth"
	"github.com/mautops/remotework-gin/internal/config"
	"github.com/mautops/remotework-gin/internal/model"
	"github.com/mautops/remotework-gin/internal/service"
	"github.com/mautops/remotework-gin/internal/websocket"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"

	_ "github.com/mautops/remotework-gin/docs" // swagger 文档
)

// RouterDeps 路由依赖
type RouterDeps struct {
	Config        *config.Config
	Logger        *logrus.Logger
	DB            *gorm.DB
	Validator     auth.TokenValidator
	Hub           *websocket.Hub
	NATS          NATSStatus
	Applications  service.ApplicationService
	Notifications service.NotificationService
	Users         service.UserService
	Statistics    service.StatisticsService
}

// SetupRoutes 配置路由
func SetupRoutes(deps RouterDeps) *gin.Engine {
	cfg := deps.Config
	logger := deps.Logger
	if logger == nil {
		logger = NewLogger()
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestIDMiddleware())
	router.Use(RequestLogMiddleware(logger))
	if cfg.Tracing.Enabled {
		router.Use(TracingMiddleware())
	}
	router.Use(SecurityHeadersMiddleware(config.IsProduction(cfg)))
	router.Use(CORSMiddleware(cfg.CORS))
	router.Use(I18nMiddleware())
	router.Use(ErrorHandlerMiddleware())

	health := NewHealthController(deps.DB, deps.Hub, deps.NATS)
	router.GET("/health", health.Check)
	router.GET("/metrics", NewMetricsHandler(logger))
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	authMiddleware := auth.Middleware(deps.Validator, deps.Users, logger)
	deciders := auth.RequireRole(model.RoleApprover, model.RoleAdmin)

	if deps.Hub != nil {
		router.GET("/ws/notifications", authMiddleware,
			websocket.Handler(deps.Hub, websocket.NewUpgrader(cfg.CORS.AllowedOrigins), logger))
	}

	v1 := router.Group("/api/v1")
	if cfg.RateLimit.Enabled {
		v1.Use(RateLimitMiddleware(cfg.RateLimit.RPS, cfg.RateLimit.Burst))
	}
	v1.Use(authMiddleware)
	{
		applications := NewApplicationController(deps.Applications)
		apps := v1.Group("/applications")
		{
			apps.POST("", applications.Submit)
			apps.GET("", deciders, applications.ListForApprover)
			apps.GET("/my", applications.ListMine)
			apps.GET("/calendar", applications.Calendar)
			apps.GET("/:id", applications.Get)
			apps.GET("/:id/history", applications.History)
			apps.GET("/:id/audit", applications.AuditTrail)
			apps.PUT("/:id/status", deciders, applications.Decide)
		}

		notifications := NewNotificationController(deps.Notifications)
		notes := v1.Group("/notifications")
		{
			notes.GET("", notifications.List)
			notes.PUT("/:id/read", notifications.MarkRead)
			notes.GET("/:id/application", notifications.Application)
		}

		users := NewUserController(deps.Users)
		v1.GET("/users/me/stats", users.Stats)

		statistics := NewStatisticsController(deps.Statistics)
		v1.GET("/statistics", deciders, statistics.Overview)
	}

	return router
}
