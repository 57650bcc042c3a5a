package metrics

import (
	"fmt"
	"net/http"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

var (
	// API 请求计数器
	apiRequestsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "path", "status"},
	)

	// API 请求响应时间
	apiRequestDuration = prometheus.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "path"},
	)

	// 申请提交数
	applicationsSubmittedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "remotework_applications_submitted_total",
			Help: "Total number of remote work applications submitted",
		},
	)

	// 审批结果
	decisionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remotework_decisions_total",
			Help: "Total number of application decisions",
		},
		[]string{"outcome"}, // approved, denied, conflict
	)

	// 批准的远程办公天数
	usageDaysApprovedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "remotework_usage_days_approved_total",
			Help: "Total remote work days approved, half days count as 0.5",
		},
	)

	// 通知推送
	notificationsDeliveredTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "remotework_notifications_delivered_total",
			Help: "Notifications delivered to out-of-band channels",
		},
		[]string{"channel", "result"}, // websocket/nats, ok/error
	)

	// 数据库连接数
	databaseConnectionsActive = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_active",
			Help: "Number of active database connections",
		},
	)

	databaseConnectionsIdle = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_idle",
			Help: "Number of idle database connections",
		},
	)

	databaseConnectionsMax = prometheus.NewGauge(
		prometheus.GaugeOpts{
			Name: "database_connections_max",
			Help: "Maximum number of database connections",
		},
	)

	// 申请状态分布
	applicationsByStatus = prometheus.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "remotework_applications_by_status",
			Help: "Number of applications by status",
		},
		[]string{"status"},
	)
)

var once sync.Once

func init() {
	prometheus.MustRegister(apiRequestsTotal)
	prometheus.MustRegister(apiRequestDuration)
	prometheus.MustRegister(applicationsSubmittedTotal)
	prometheus.MustRegister(decisionsTotal)
	prometheus.MustRegister(usageDaysApprovedTotal)
	prometheus.MustRegister(notificationsDeliveredTotal)
	prometheus.MustRegister(databaseConnectionsActive)
	prometheus.MustRegister(databaseConnectionsIdle)
	prometheus.MustRegister(databaseConnectionsMax)
	prometheus.MustRegister(applicationsByStatus)

	// 默认注册表已包含 Go 运行时指标时忽略错误
	once.Do(func() {
		_ = prometheus.Register(prometheus.NewGoCollector())
		_ = prometheus.Register(prometheus.NewProcessCollector(prometheus.ProcessCollectorOpts{}))
	})
}

// Handler 返回 Prometheus 指标处理器,采集出错时记录日志并输出其余指标
func Handler(logger promhttp.Logger) http.Handler {
	opts := promhttp.HandlerOpts{ErrorHandling: promhttp.ContinueOnError}
	if logger != nil {
		opts.ErrorLog = logger
	}
	return promhttp.InstrumentMetricHandler(
		prometheus.DefaultRegisterer,
		promhttp.HandlerFor(prometheus.DefaultGatherer, opts),
	)
}

// RecordAPIRequest 记录 API 请求
func RecordAPIRequest(method, path string, status int, duration float64) {
	apiRequestsTotal.WithLabelValues(method, path, fmt.Sprintf("%d", status)).Inc()
	apiRequestDuration.WithLabelValues(method, path).Observe(duration)
}

// RecordApplicationSubmitted 记录申请提交
func RecordApplicationSubmitted() {
	applicationsSubmittedTotal.Inc()
}

// RecordDecision 记录审批结果
func RecordDecision(outcome string) {
	decisionsTotal.WithLabelValues(outcome).Inc()
}

// RecordUsageDays 记录批准的天数
func RecordUsageDays(days float64) {
	usageDaysApprovedTotal.Add(days)
}

// RecordNotificationDelivery 记录通知推送结果
func RecordNotificationDelivery(channel string, err error) {
	result := "ok"
	if err != nil {
		result = "error"
	}
	notificationsDeliveredTotal.WithLabelValues(channel, result).Inc()
}

// UpdateDatabaseConnections 更新数据库连接数指标
func UpdateDatabaseConnections(db *gorm.DB) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}

	sqlDB, err := db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB: %w", err)
	}

	stats := sqlDB.Stats()
	databaseConnectionsActive.Set(float64(stats.InUse))
	databaseConnectionsIdle.Set(float64(stats.Idle))
	databaseConnectionsMax.Set(float64(stats.MaxOpenConnections))

	return nil
}

// UpdateApplicationsByStatus 更新申请状态分布指标
func UpdateApplicationsByStatus(status string, count float64) {
	applicationsByStatus.WithLabelValues(status).Set(count)
}
