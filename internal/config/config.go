package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config 应用配置
type Config struct {
	Env       string          `mapstructure:"env" yaml:"env"` // 环境: development, production
	Server    ServerConfig    `mapstructure:"server" yaml:"server"`
	Database  DatabaseConfig  `mapstructure:"database" yaml:"database"`
	Auth      AuthConfig      `mapstructure:"auth" yaml:"auth"`
	Workflow  WorkflowConfig  `mapstructure:"workflow" yaml:"workflow"`
	CORS      CORSConfig      `mapstructure:"cors" yaml:"cors"`
	RateLimit RateLimitConfig `mapstructure:"rate_limit" yaml:"rate_limit"`
	Log       LogConfig       `mapstructure:"log" yaml:"log"`
	NATS      NATSConfig      `mapstructure:"nats" yaml:"nats"`
	Tracing   TracingConfig   `mapstructure:"tracing" yaml:"tracing"`
}

// ServerConfig 服务器配置
type ServerConfig struct {
	Host string `mapstructure:"host" yaml:"host"`
	Port int    `mapstructure:"port" yaml:"port"`
}

// DatabaseConfig 数据库配置
type DatabaseConfig struct {
	Driver          string `mapstructure:"driver" yaml:"driver"` // postgres, mysql, sqlite
	Host            string `mapstructure:"host" yaml:"host"`
	Port            int    `mapstructure:"port" yaml:"port"`
	User            string `mapstructure:"user" yaml:"user"`
	Password        string `mapstructure:"password" yaml:"-"`
	DBName          string `mapstructure:"dbname" yaml:"dbname"`
	SSLMode         string `mapstructure:"sslmode" yaml:"sslmode"`
	Path            string `mapstructure:"path" yaml:"path"` // sqlite 文件路径
	MaxIdleConns    int    `mapstructure:"max_idle_conns" yaml:"max_idle_conns"`
	MaxOpenConns    int    `mapstructure:"max_open_conns" yaml:"max_open_conns"`
	ConnMaxLifetime int    `mapstructure:"conn_max_lifetime" yaml:"conn_max_lifetime"`   // 秒
	ConnMaxIdleTime int    `mapstructure:"conn_max_idle_time" yaml:"conn_max_idle_time"` // 秒
}

// AuthConfig 认证配置
// 设置 keycloak_issuer 时使用 JWKS 验证 RS256 token,否则使用 jwt_secret 验证 HS256 token
type AuthConfig struct {
	JWTSecret      string `mapstructure:"jwt_secret" yaml:"-"`
	KeycloakIssuer string `mapstructure:"keycloak_issuer" yaml:"keycloak_issuer"`
}

// WorkflowConfig 审批流程策略
type WorkflowConfig struct {
	Timezone              string  `mapstructure:"timezone" yaml:"timezone"`
	DailyCapHours         float64 `mapstructure:"daily_cap_hours" yaml:"daily_cap_hours"`
	SelfApprovalExclusion bool    `mapstructure:"self_approval_exclusion" yaml:"self_approval_exclusion"`
	UsageWindow           string  `mapstructure:"usage_window" yaml:"usage_window"` // all, week
}

// Location 返回流程使用的时区,无法解析时回退到 UTC
func (w WorkflowConfig) Location() *time.Location {
	if w.Timezone == "" {
		return time.Local
	}
	loc, err := time.LoadLocation(w.Timezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

// CORSConfig CORS 配置
type CORSConfig struct {
	AllowedOrigins []string `mapstructure:"allowed_origins" yaml:"allowed_origins"`
	AllowedMethods []string `mapstructure:"allowed_methods" yaml:"allowed_methods"`
	AllowedHeaders []string `mapstructure:"allowed_headers" yaml:"allowed_headers"`
	MaxAge         int      `mapstructure:"max_age" yaml:"max_age"`
}

// RateLimitConfig 限流配置
type RateLimitConfig struct {
	Enabled bool    `mapstructure:"enabled" yaml:"enabled"`
	RPS     float64 `mapstructure:"rps" yaml:"rps"`
	Burst   int     `mapstructure:"burst" yaml:"burst"`
}

// LogConfig 日志配置
type LogConfig struct {
	Level  string `mapstructure:"level" yaml:"level"`   // 日志级别: debug, info, warn, error
	Format string `mapstructure:"format" yaml:"format"` // 日志格式: json, text
	Output string `mapstructure:"output" yaml:"output"` // 输出位置: stdout, file, both
}

// NATSConfig NATS 配置,URL 为空时不发布事件
type NATSConfig struct {
	URL           string `mapstructure:"url" yaml:"url"`
	SubjectPrefix string `mapstructure:"subject_prefix" yaml:"subject_prefix"`
	Workers       int    `mapstructure:"workers" yaml:"workers"`
}

// TracingConfig 链路追踪配置
type TracingConfig struct {
	Enabled        bool   `mapstructure:"enabled" yaml:"enabled"`
	JaegerEndpoint string `mapstructure:"jaeger_endpoint" yaml:"jaeger_endpoint"`
}

// Load 加载配置,支持 .env 文件、配置文件和环境变量
func Load(configPath string) (*Config, error) {
	// .env 不存在时忽略
	_ = godotenv.Load()

	v := viper.New()

	// 设置默认值
	setDefaults(v)

	// 如果提供了配置文件路径,从文件加载
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	} else {
		// 尝试从默认位置加载
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
		v.AddConfigPath("$HOME/.remotework-gin")
		// 忽略配置文件不存在的错误,使用默认值
		_ = v.ReadInConfig()
	}

	// 支持环境变量
	v.SetEnvPrefix("APP")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate 校验配置取值
func (c *Config) Validate() error {
	switch c.Database.Driver {
	case "postgres", "mysql", "sqlite":
	default:
		return fmt.Errorf("unsupported database driver %q", c.Database.Driver)
	}
	switch c.Workflow.UsageWindow {
	case "all", "week":
	default:
		return fmt.Errorf("unsupported usage window %q", c.Workflow.UsageWindow)
	}
	if c.Workflow.DailyCapHours <= 0 {
		return fmt.Errorf("workflow.daily_cap_hours must be positive")
	}
	return nil
}

// IsProduction 判断是否为生产环境
func IsProduction(cfg *Config) bool {
	if cfg == nil {
		return false
	}
	return cfg.Env == "production"
}

// Default 返回默认配置
func Default() *Config {
	v := viper.New()
	setDefaults(v)

	var cfg Config
	_ = v.Unmarshal(&cfg)
	return &cfg
}

// setDefaults 设置配置默认值
func setDefaults(v *viper.Viper) {
	// 环境变量
	env := v.GetString("env")
	if env == "" {
		env = os.Getenv("APP_ENV")
		if env == "" {
			env = "development"
		}
	}
	v.SetDefault("env", env)

	// 服务器默认配置
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)

	// 数据库默认配置
	v.SetDefault("database.driver", "postgres")
	v.SetDefault("database.host", "localhost")
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.user", "postgres")
	v.SetDefault("database.password", "")
	v.SetDefault("database.dbname", "remotework")
	v.SetDefault("database.sslmode", "disable")
	v.SetDefault("database.path", "remotework.db")

	// 数据库连接池配置（根据环境设置默认值）
	if env == "production" {
		v.SetDefault("database.max_idle_conns", 20)
		v.SetDefault("database.max_open_conns", 200)
		v.SetDefault("database.conn_max_lifetime", 3600) // 1 小时
		v.SetDefault("database.conn_max_idle_time", 300) // 5 分钟
	} else {
		v.SetDefault("database.max_idle_conns", 10)
		v.SetDefault("database.max_open_conns", 100)
		v.SetDefault("database.conn_max_lifetime", 3600) // 1 小时
		v.SetDefault("database.conn_max_idle_time", 600) // 10 分钟
	}

	// 认证默认配置
	v.SetDefault("auth.jwt_secret", "")
	v.SetDefault("auth.keycloak_issuer", "")

	// 审批流程默认策略
	v.SetDefault("workflow.timezone", "Local")
	v.SetDefault("workflow.daily_cap_hours", 8)
	v.SetDefault("workflow.self_approval_exclusion", false)
	v.SetDefault("workflow.usage_window", "all")

	// CORS 默认配置
	v.SetDefault("cors.allowed_origins", []string{"*"})
	v.SetDefault("cors.allowed_methods", []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"})
	v.SetDefault("cors.allowed_headers", []string{"Content-Type", "Authorization", "X-Request-ID", "Accept-Language"})
	v.SetDefault("cors.max_age", 86400)

	// 限流默认配置
	v.SetDefault("rate_limit.enabled", true)
	v.SetDefault("rate_limit.rps", 50)
	v.SetDefault("rate_limit.burst", 100)

	// 日志配置（根据环境设置默认值）
	if env == "production" {
		v.SetDefault("log.level", "warn")
		v.SetDefault("log.format", "json")
	} else {
		v.SetDefault("log.level", "debug")
		v.SetDefault("log.format", "text")
	}
	v.SetDefault("log.output", "stdout")

	// NATS 默认配置
	v.SetDefault("nats.url", "")
	v.SetDefault("nats.subject_prefix", "remotework.notifications")
	v.SetDefault("nats.workers", 2)

	// 追踪默认配置
	v.SetDefault("tracing.enabled", false)
	v.SetDefault("tracing.jaeger_endpoint", "http://localhost:14268/api/traces")
}
