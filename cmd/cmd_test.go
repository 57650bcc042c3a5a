package cmd_test

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/mautops/remotework-gin/cmd"
	"github.com/mautops/remotework-gin/internal/auth"
	"github.com/mautops/remotework-gin/internal/config"
	"github.com/mautops/remotework-gin/internal/database"
	"github.com/mautops/remotework-gin/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := cmd.GetRootCmd()
	var out bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func sqliteConfig(t *testing.T) (string, string) {
	t.Helper()
	dir := t.TempDir()
	dbPath := filepath.Join(dir, "rw.db")
	path := filepath.Join(dir, "config.yaml")
	content := "database:\n  driver: sqlite\n  path: " + dbPath + "\nlog:\n  level: error\n  format: text\n  output: stdout\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path, dbPath
}

// TestRootCommand_Help 测试根命令列出子命令
func TestRootCommand_Help(t *testing.T) {
	out, err := run(t, "--help")
	require.NoError(t, err)
	for _, name := range []string{"server", "migrate", "notifications", "token", "config"} {
		assert.Contains(t, out, name)
	}
}

// TestMigrateAndMarkDetachedRead 测试迁移后批量标记历史通知
func TestMigrateAndMarkDetachedRead(t *testing.T) {
	path, dbPath := sqliteConfig(t)

	out, err := run(t, "migrate", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "completed successfully")

	db, err := database.Connect(config.DatabaseConfig{Driver: "sqlite", Path: dbPath})
	require.NoError(t, err)
	appID := "app-1"
	require.NoError(t, db.Create(&[]model.NotificationModel{
		{ID: "n-1", UserID: "emp-1", Message: "legacy", Kind: model.NotificationUpdate, CreatedAt: time.Now()},
		{ID: "n-2", UserID: "emp-1", Message: "legacy", Kind: model.NotificationUpdate, CreatedAt: time.Now()},
		{ID: "n-3", UserID: "emp-1", ApplicationID: &appID, Message: "linked", Kind: model.NotificationApproval, CreatedAt: time.Now()},
	}).Error)
	sqlDB, _ := db.DB()
	require.NoError(t, sqlDB.Close())

	out, err = run(t, "notifications", "mark-detached-read", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Marked 2 notification(s) as read")

	out, err = run(t, "notifications", "mark-detached-read", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Marked 0 notification(s) as read")
}

// TestTokenCommand 测试签发的令牌可以通过校验
func TestTokenCommand(t *testing.T) {
	path, _ := sqliteConfig(t)
	t.Setenv("APP_AUTH_JWT_SECRET", "cli-secret")

	out, err := run(t, "token", "--config", path, "--user", "apr-1", "--username", "alan", "--role", "approver", "--ttl", "1h")
	require.NoError(t, err)

	id, err := auth.NewHMACTokenValidator("cli-secret").Validate(strings.TrimSpace(out))
	require.NoError(t, err)
	assert.Equal(t, "apr-1", id.ID)
	assert.Equal(t, "alan", id.Username)
	assert.Equal(t, model.RoleApprover, id.Role)

	_, err = run(t, "token", "--config", path, "--user", "apr-1", "--role", "superuser")
	assert.Error(t, err)
}

// TestConfigPrint 测试输出生效配置且不包含密钥
func TestConfigPrint(t *testing.T) {
	path, _ := sqliteConfig(t)
	t.Setenv("APP_AUTH_JWT_SECRET", "do-not-print")
	t.Setenv("APP_WORKFLOW_USAGE_WINDOW", "week")

	out, err := run(t, "config", "print", "--config", path)
	require.NoError(t, err)
	assert.Contains(t, out, "driver: sqlite")
	assert.Contains(t, out, "usage_window: week")
	assert.NotContains(t, out, "do-not-print")
}
