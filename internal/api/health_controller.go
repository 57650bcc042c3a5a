package api

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/mautops/remotework-gin/internal/database"
	"github.com/mautops/remotework-gin/internal/websocket"
	"gorm.io/gorm"
)

// NATSStatus 消息总线连接状态
type NATSStatus interface {
	IsConnected() bool
}

// HealthController 健康检查控制器
type HealthController struct {
	db   *gorm.DB
	hub  *websocket.Hub
	nats NATSStatus
}

// NewHealthController 创建健康检查控制器,hub 和 nats 可以为空
func NewHealthController(db *gorm.DB, hub *websocket.Hub, nats NATSStatus) *HealthController {
	return &HealthController{db: db, hub: hub, nats: nats}
}

// Check 健康检查
// @Summary      健康检查
// @Description  检查数据库连接,并报告消息总线和 WebSocket 状态
// @Tags         系统
// @Produce      json
// @Success      200  {object}  map[string]interface{}
// @Failure      503  {object}  map[string]interface{}
// @Router       /health [get]
func (h *HealthController) Check(c *gin.Context) {
	status := "healthy"
	checks := make(map[string]interface{})

	if h.db == nil {
		checks["database"] = "not configured"
	} else if database.CheckHealth(c.Request.Context(), h.db) {
		checks["database"] = "healthy"
	} else {
		status = "unhealthy"
		checks["database"] = "unhealthy"
	}

	// 消息总线不可用时通知仍然写入数据库,不影响整体健康状态
	switch {
	case h.nats == nil:
		checks["nats"] = "not configured"
	case h.nats.IsConnected():
		checks["nats"] = "healthy"
	default:
		checks["nats"] = "disconnected"
	}

	if h.hub != nil {
		checks["websocket_clients"] = h.hub.GetClientCount()
	}

	httpStatus := http.StatusOK
	if status == "unhealthy" {
		httpStatus = http.StatusServiceUnavailable
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"timestamp": time.Now().Unix(),
		"checks":    checks,
	})
}
