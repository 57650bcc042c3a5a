package service_test

import (
	"sync"
	"testing"
	"time"

	"github.com/mautops/remotework-gin/internal/database"
	"github.com/mautops/remotework-gin/internal/model"
	"github.com/mautops/remotework-gin/internal/notify"
	"github.com/mautops/remotework-gin/internal/repository"
	"github.com/mautops/remotework-gin/internal/service"
	"github.com/mautops/remotework-gin/internal/workflow"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	fixedNow = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

	employee = workflow.ActingUser{ID: "emp-1", Username: "emma", Role: model.RoleEmployee}
	approver = workflow.ActingUser{ID: "apr-1", Username: "alan", Role: model.RoleApprover}
)

type recordingConn struct {
	mu       sync.Mutex
	subjects []string
}

func (c *recordingConn) Publish(subject string, data []byte) error {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.subjects = append(c.subjects, subject)
	return nil
}

func (c *recordingConn) Subjects() []string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return append([]string(nil), c.subjects...)
}

type testEnv struct {
	db            *gorm.DB
	engine        *workflow.Engine
	conn          *recordingConn
	publisher     *notify.Publisher
	audit         service.AuditLogService
	applications  service.ApplicationService
	notifications service.NotificationService
	users         service.UserService
	statistics    service.StatisticsService
}

func setupEnv(t *testing.T) *testEnv {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	require.NoError(t, database.Migrate(db))

	policy := workflow.Policy{Location: time.UTC, DailyCap: 8 * time.Hour, UsageWindow: workflow.WindowAll}
	engine := workflow.NewEngine(db, policy, workflow.WithClock(func() time.Time { return fixedNow }))

	conn := &recordingConn{}
	publisher := notify.NewPublisher(conn, "remotework.notifications", 1, nil)
	dispatcher := notify.NewDispatcher(nil, publisher, nil)

	audit := service.NewAuditLogService(repository.NewAuditLogRepository(db))
	return &testEnv{
		db:            db,
		engine:        engine,
		conn:          conn,
		publisher:     publisher,
		audit:         audit,
		applications:  service.NewApplicationService(engine, audit, dispatcher, nil),
		notifications: service.NewNotificationService(repository.NewNotificationRepository(db), engine, audit, nil),
		users:         service.NewUserService(repository.NewUserRepository(db), engine),
		statistics: service.NewStatisticsService(
			repository.NewApplicationRepository(db),
			repository.NewUsageCounterRepository(db),
			engine,
		),
	}
}

func tomorrow() string {
	return fixedNow.AddDate(0, 0, 1).Format(model.DateLayout)
}
