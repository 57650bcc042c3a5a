package database

import (
	"context"
	"fmt"
	"time"

	"github.com/mautops/remotework-gin/internal/config"
	"github.com/mautops/remotework-gin/internal/model"
	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// PoolConfig 连接池配置
type PoolConfig struct {
	MaxIdleConns    int
	MaxOpenConns    int
	ConnMaxLifetime int // 秒
	ConnMaxIdleTime int // 秒
}

// BuildDSN 根据驱动构建 DSN
func BuildDSN(cfg config.DatabaseConfig) string {
	switch cfg.Driver {
	case "mysql":
		return fmt.Sprintf("%s:%s@tcp(%s:%d)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.User, cfg.Password, cfg.Host, cfg.Port, cfg.DBName)
	case "sqlite":
		return cfg.Path
	default:
		return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
			cfg.Host, cfg.Port, cfg.User, cfg.Password, cfg.DBName, cfg.SSLMode)
	}
}

// dialector 根据驱动选择 GORM dialector
func dialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	dsn := BuildDSN(cfg)
	switch cfg.Driver {
	case "postgres", "":
		return postgres.Open(dsn), nil
	case "mysql":
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(dsn), nil
	}
	return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
}

// GetPoolConfig 获取连接池配置,未设置的值使用默认值
func GetPoolConfig(cfg config.DatabaseConfig) *PoolConfig {
	pool := &PoolConfig{
		MaxIdleConns:    cfg.MaxIdleConns,
		MaxOpenConns:    cfg.MaxOpenConns,
		ConnMaxLifetime: cfg.ConnMaxLifetime,
		ConnMaxIdleTime: cfg.ConnMaxIdleTime,
	}
	if pool.MaxIdleConns == 0 {
		pool.MaxIdleConns = 10
	}
	if pool.MaxOpenConns == 0 {
		pool.MaxOpenConns = 100
	}
	if pool.ConnMaxLifetime == 0 {
		pool.ConnMaxLifetime = 3600
	}
	if pool.ConnMaxIdleTime == 0 {
		pool.ConnMaxIdleTime = 600
	}
	// SQLite 只允许单个写连接
	if cfg.Driver == "sqlite" {
		pool.MaxOpenConns = 1
		pool.MaxIdleConns = 1
	}
	return pool
}

// Connect 连接数据库
func Connect(cfg config.DatabaseConfig) (*gorm.DB, error) {
	d, err := dialector(cfg)
	if err != nil {
		return nil, err
	}

	db, err := gorm.Open(d, &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get sql.DB: %w", err)
	}

	pool := GetPoolConfig(cfg)
	sqlDB.SetMaxIdleConns(pool.MaxIdleConns)
	sqlDB.SetMaxOpenConns(pool.MaxOpenConns)
	sqlDB.SetConnMaxLifetime(time.Duration(pool.ConnMaxLifetime) * time.Second)
	sqlDB.SetConnMaxIdleTime(time.Duration(pool.ConnMaxIdleTime) * time.Second)

	return db, nil
}

// Migrate 执行数据库迁移
func Migrate(db *gorm.DB) error {
	dialect := db.Dialector.Name()

	// SQLite 手动建表,其他数据库使用 AutoMigrate
	if dialect == "sqlite" || dialect == "sqlite3" {
		if err := createSQLiteTables(db); err != nil {
			return fmt.Errorf("failed to create SQLite tables: %w", err)
		}
	} else {
		if err := db.AutoMigrate(
			&model.DepartmentModel{},
			&model.UserModel{},
			&model.ApplicationModel{},
			&model.NotificationModel{},
			&model.UsageCounterModel{},
			&model.StateHistoryModel{},
			&model.AuditLogModel{},
		); err != nil {
			return fmt.Errorf("failed to auto migrate: %w", err)
		}
	}

	if err := CreateIndexes(db); err != nil {
		return fmt.Errorf("failed to create indexes: %w", err)
	}

	// 用户名曾经是唯一索引,同一用户名可以属于不同身份
	if db.Migrator().HasIndex(&model.UserModel{}, "idx_users_username") {
		if err := db.Migrator().DropIndex(&model.UserModel{}, "idx_users_username"); err != nil {
			return fmt.Errorf("failed to drop unique username index: %w", err)
		}
	}

	return nil
}

var sqliteTables = []struct {
	name string
	ddl  string
}{
	{"departments", `
		CREATE TABLE IF NOT EXISTS departments (
			id VARCHAR(64) PRIMARY KEY,
			name VARCHAR(255) NOT NULL
		)`},
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id VARCHAR(64) PRIMARY KEY,
			username VARCHAR(128) NOT NULL,
			display_name VARCHAR(255),
			role VARCHAR(16) NOT NULL,
			department_id VARCHAR(64),
			created_at DATETIME NOT NULL,
			updated_at DATETIME NOT NULL
		)`},
	{"applications", `
		CREATE TABLE IF NOT EXISTS applications (
			id VARCHAR(64) PRIMARY KEY,
			requester_id VARCHAR(64) NOT NULL,
			submitted_at DATETIME NOT NULL,
			requested_date VARCHAR(10) NOT NULL,
			start_time VARCHAR(5),
			end_time VARCHAR(5),
			is_partial_work_from_home BOOLEAN NOT NULL DEFAULT 0,
			is_special_approval BOOLEAN NOT NULL DEFAULT 0,
			overtime_acknowledged BOOLEAN NOT NULL DEFAULT 0,
			reason TEXT NOT NULL,
			status VARCHAR(16) NOT NULL,
			denial_reason TEXT,
			approver_id VARCHAR(64),
			processed_at DATETIME,
			updated_at DATETIME NOT NULL
		)`},
	{"notifications", `
		CREATE TABLE IF NOT EXISTS notifications (
			id VARCHAR(64) PRIMARY KEY,
			user_id VARCHAR(64) NOT NULL,
			application_id VARCHAR(64),
			message TEXT NOT NULL,
			kind VARCHAR(16) NOT NULL,
			is_read BOOLEAN NOT NULL DEFAULT 0,
			created_at DATETIME NOT NULL
		)`},
	{"usage_counters", `
		CREATE TABLE IF NOT EXISTS usage_counters (
			user_id VARCHAR(64) NOT NULL,
			period VARCHAR(16) NOT NULL,
			days NUMERIC(10,1) NOT NULL DEFAULT 0,
			updated_at DATETIME NOT NULL,
			PRIMARY KEY (user_id, period)
		)`},
	{"state_history", `
		CREATE TABLE IF NOT EXISTS state_history (
			id VARCHAR(64) PRIMARY KEY,
			application_id VARCHAR(64) NOT NULL,
			from_state VARCHAR(16),
			to_state VARCHAR(16) NOT NULL,
			reason TEXT,
			operator VARCHAR(64) NOT NULL,
			created_at DATETIME NOT NULL
		)`},
	{"audit_logs", `
		CREATE TABLE IF NOT EXISTS audit_logs (
			id VARCHAR(64) PRIMARY KEY,
			user_id VARCHAR(64) NOT NULL,
			action VARCHAR(64) NOT NULL,
			resource_type VARCHAR(32) NOT NULL,
			resource_id VARCHAR(64) NOT NULL,
			request_id VARCHAR(64),
			ip VARCHAR(45),
			user_agent TEXT,
			details TEXT,
			created_at DATETIME NOT NULL
		)`},
}

// createSQLiteTables 为 SQLite 手动创建表
func createSQLiteTables(db *gorm.DB) error {
	for _, t := range sqliteTables {
		if err := db.Exec(t.ddl).Error; err != nil {
			return fmt.Errorf("failed to create %s table: %w", t.name, err)
		}
	}
	return nil
}

var indexes = []struct {
	name string
	ddl  string
}{
	{"idx_applications_requester_status", "CREATE INDEX IF NOT EXISTS idx_applications_requester_status ON applications(requester_id, status)"},
	{"idx_applications_queue", "CREATE INDEX IF NOT EXISTS idx_applications_queue ON applications(is_special_approval, processed_at, requested_date)"},
	{"idx_applications_status", "CREATE INDEX IF NOT EXISTS idx_applications_status ON applications(status)"},
	{"idx_notifications_user_created", "CREATE INDEX IF NOT EXISTS idx_notifications_user_created ON notifications(user_id, created_at)"},
	{"idx_notifications_application", "CREATE INDEX IF NOT EXISTS idx_notifications_application ON notifications(application_id)"},
	{"idx_users_username_lookup", "CREATE INDEX IF NOT EXISTS idx_users_username_lookup ON users(username)"},
	{"idx_history_application_id", "CREATE INDEX IF NOT EXISTS idx_history_application_id ON state_history(application_id)"},
	{"idx_audit_resource", "CREATE INDEX IF NOT EXISTS idx_audit_resource ON audit_logs(resource_type, resource_id)"},
	{"idx_audit_user_id", "CREATE INDEX IF NOT EXISTS idx_audit_user_id ON audit_logs(user_id)"},
}

// CreateIndexes 创建数据库索引
func CreateIndexes(db *gorm.DB) error {
	// MySQL 不支持 CREATE INDEX IF NOT EXISTS,依赖 AutoMigrate 创建的单列索引
	if db.Dialector.Name() == "mysql" {
		return nil
	}
	for _, idx := range indexes {
		if err := db.Exec(idx.ddl).Error; err != nil {
			return fmt.Errorf("failed to create %s: %w", idx.name, err)
		}
	}
	return nil
}

// ConnectWithRetry 带重试的数据库连接
func ConnectWithRetry(cfg config.DatabaseConfig, maxRetries int, retryInterval time.Duration) (*gorm.DB, error) {
	var db *gorm.DB
	var err error

	for i := 0; i < maxRetries; i++ {
		db, err = Connect(cfg)
		if err == nil {
			return db, nil
		}

		if i < maxRetries-1 {
			time.Sleep(retryInterval)
			retryInterval *= 2 // 指数退避
		}
	}

	return nil, fmt.Errorf("failed to connect database after %d retries: %w", maxRetries, err)
}

// CheckHealth 检查数据库连接健康状态
func CheckHealth(ctx context.Context, db *gorm.DB) bool {
	if db == nil {
		return false
	}

	sqlDB, err := db.DB()
	if err != nil {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	return sqlDB.PingContext(ctx) == nil
}
