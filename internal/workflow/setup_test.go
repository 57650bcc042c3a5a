package workflow_test

import (
	"testing"
	"time"

	"github.com/mautops/remotework-gin/internal/database"
	"github.com/mautops/remotework-gin/internal/model"
	"github.com/mautops/remotework-gin/internal/workflow"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	// 固定时钟: 2026-10-16 10:00 UTC
	fixedNow = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

	employee = workflow.ActingUser{ID: "emp-1", Username: "emma", Role: model.RoleEmployee}
	other    = workflow.ActingUser{ID: "emp-2", Username: "oscar", Role: model.RoleEmployee}
	approver = workflow.ActingUser{ID: "apr-1", Username: "alan", Role: model.RoleApprover}
	admin    = workflow.ActingUser{ID: "adm-1", Username: "beth", Role: model.RoleAdmin}
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, database.Migrate(db))
	return db
}

func testPolicy() workflow.Policy {
	return workflow.Policy{
		Location:    time.UTC,
		DailyCap:    8 * time.Hour,
		UsageWindow: workflow.WindowAll,
	}
}

func setupEngine(t *testing.T, policy workflow.Policy) (*workflow.Engine, *gorm.DB) {
	t.Helper()
	db := setupTestDB(t)
	engine := workflow.NewEngine(db, policy, workflow.WithClock(func() time.Time { return fixedNow }))
	return engine, db
}

func tomorrow() string {
	return fixedNow.AddDate(0, 0, 1).Format(model.DateLayout)
}

// assertInvariants 检查所有申请满足状态不变量
func assertInvariants(t *testing.T, db *gorm.DB) {
	t.Helper()
	var apps []model.ApplicationModel
	require.NoError(t, db.Find(&apps).Error)
	for _, app := range apps {
		processed := app.ApproverID != nil && app.ProcessedAt != nil
		require.Equal(t, app.Status != model.StatusPending, processed, "application %s", app.ID)
		if app.Status == model.StatusPending {
			require.Nil(t, app.ApproverID)
			require.Nil(t, app.ProcessedAt)
		}
		if app.Status == model.StatusDenied {
			require.NotNil(t, app.DenialReason)
			require.NotEmpty(t, *app.DenialReason)
		}
	}
}

func countNotifications(t *testing.T, db *gorm.DB, applicationID string) int64 {
	t.Helper()
	var count int64
	require.NoError(t, db.Model(&model.NotificationModel{}).Where("application_id = ?", applicationID).Count(&count).Error)
	return count
}
