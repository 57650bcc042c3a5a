package container

import (
	"errors"
	"fmt"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mautops/remotework-gin/internal/api"
	"github.com/mautops/remotework-gin/internal/auth"
	"github.com/mautops/remotework-gin/internal/config"
	"github.com/mautops/remotework-gin/internal/database"
	"github.com/mautops/remotework-gin/internal/metrics"
	"github.com/mautops/remotework-gin/internal/notify"
	"github.com/mautops/remotework-gin/internal/repository"
	"github.com/mautops/remotework-gin/internal/service"
	"github.com/mautops/remotework-gin/internal/websocket"
	"github.com/mautops/remotework-gin/internal/workflow"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// metricsInterval 业务指标采集间隔
const metricsInterval = 30 * time.Second

// Container 依赖注入容器
// 管理数据库、审批流程引擎、通知分发和各业务服务
type Container struct {
	cfg    *config.Config
	logger *logrus.Logger

	db        *gorm.DB
	engine    *workflow.Engine
	validator auth.TokenValidator
	hub       *websocket.Hub
	natsConn  *nats.Conn
	publisher *notify.Publisher
	collector *metrics.Collector

	applications  service.ApplicationService
	notifications service.NotificationService
	users         service.UserService
	statistics    service.StatisticsService
}

// NewContainer 创建依赖注入容器
// 连接数据库并执行迁移,NATS 不可用时只记录警告
func NewContainer(cfg *config.Config, logger *logrus.Logger) (*Container, error) {
	// 重试 3 次,初始间隔 1 秒,指数退避
	db, err := database.ConnectWithRetry(cfg.Database, 3, time.Second)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}

	if err := database.Migrate(db); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return NewContainerWithDB(cfg, db, logger)
}

// NewContainerWithDB 使用已有数据库连接创建容器
func NewContainerWithDB(cfg *config.Config, db *gorm.DB, logger *logrus.Logger) (*Container, error) {
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	validator, err := newValidator(cfg)
	if err != nil {
		return nil, err
	}

	c := &Container{
		cfg:       cfg,
		logger:    logger,
		db:        db,
		engine:    workflow.NewEngine(db, workflow.PolicyFromConfig(cfg.Workflow)),
		validator: validator,
		hub:       websocket.NewHub(),
	}
	go c.hub.Run()

	if cfg.NATS.URL != "" {
		conn, err := notify.Connect(cfg.NATS, logger)
		if err != nil {
			logger.WithError(err).Warn("NATS unavailable, notification events will not be published")
		} else {
			c.natsConn = conn
			c.publisher = notify.NewPublisher(conn, cfg.NATS.SubjectPrefix, cfg.NATS.Workers, logger)
		}
	}

	audit := service.NewAuditLogService(repository.NewAuditLogRepository(db))
	dispatcher := notify.NewDispatcher(c.hub, c.publisher, logger)

	c.applications = service.NewApplicationService(c.engine, audit, dispatcher, logger)
	c.notifications = service.NewNotificationService(repository.NewNotificationRepository(db), c.engine, audit, logger)
	c.users = service.NewUserService(repository.NewUserRepository(db), c.engine)
	c.statistics = service.NewStatisticsService(
		repository.NewApplicationRepository(db),
		repository.NewUsageCounterRepository(db),
		c.engine,
	)
	c.collector = metrics.NewCollector(db, c.statistics, metricsInterval, logger)

	return c, nil
}

// newValidator 配置了 Keycloak 时使用 JWKS 验证,否则使用共享密钥
func newValidator(cfg *config.Config) (auth.TokenValidator, error) {
	if cfg.Auth.KeycloakIssuer != "" {
		return auth.NewKeycloakTokenValidator(cfg.Auth.KeycloakIssuer), nil
	}
	if cfg.Auth.JWTSecret == "" {
		return nil, errors.New("either auth.keycloak_issuer or auth.jwt_secret must be configured")
	}
	return auth.NewHMACTokenValidator(cfg.Auth.JWTSecret), nil
}

// Router 创建 HTTP 路由
func (c *Container) Router() *gin.Engine {
	deps := api.RouterDeps{
		Config:        c.cfg,
		Logger:        c.logger,
		DB:            c.db,
		Validator:     c.validator,
		Hub:           c.hub,
		Applications:  c.applications,
		Notifications: c.notifications,
		Users:         c.users,
		Statistics:    c.statistics,
	}
	// 避免把空指针包装成非空接口
	if c.natsConn != nil {
		deps.NATS = c.natsConn
	}
	return api.SetupRoutes(deps)
}

// ApplyWorkflowConfig 热更新审批流程策略
func (c *Container) ApplyWorkflowConfig(cfg config.WorkflowConfig) {
	policy := workflow.PolicyFromConfig(cfg)
	c.engine.SetPolicy(policy)
	c.logger.WithFields(logrus.Fields{
		"timezone":                policy.Location.String(),
		"daily_cap":               policy.DailyCap.String(),
		"self_approval_exclusion": policy.SelfApprovalExclusion,
		"usage_window":            policy.UsageWindow,
	}).Info("Workflow policy updated")
}

// StartCollector 启动业务指标采集
func (c *Container) StartCollector() {
	c.collector.Start()
}

// DB 获取数据库连接
func (c *Container) DB() *gorm.DB {
	return c.db
}

// Engine 获取审批流程引擎
func (c *Container) Engine() *workflow.Engine {
	return c.engine
}

// Hub 获取 WebSocket Hub
func (c *Container) Hub() *websocket.Hub {
	return c.hub
}

// Notifications 获取通知服务
func (c *Container) Notifications() service.NotificationService {
	return c.notifications
}

// Close 关闭容器,先停止推送再关闭数据库
func (c *Container) Close() error {
	if c.collector != nil {
		c.collector.Stop()
	}
	if c.publisher != nil {
		c.publisher.Close()
	}
	if c.natsConn != nil {
		if err := c.natsConn.Drain(); err != nil {
			c.logger.WithError(err).Warn("Failed to drain NATS connection")
		}
	}
	if c.hub != nil {
		c.hub.Stop()
	}
	if c.db != nil {
		sqlDB, err := c.db.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
