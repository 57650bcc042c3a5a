package api

import (
	"github.com/gin-gonic/gin"
	"github.com/mautops/remotework-gin/internal/metrics"
	"github.com/sirupsen/logrus"
)

// NewMetricsHandler 暴露 Prometheus 指标,采集错误写入服务日志
func NewMetricsHandler(logger *logrus.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return gin.WrapH(metrics.Handler(logger.WithField("component", "metrics")))
}
