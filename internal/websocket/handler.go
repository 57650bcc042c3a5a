package websocket

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	gorillaWS "github.com/gorilla/websocket"
	"github.com/mautops/remotework-gin/internal/auth"
	"github.com/sirupsen/logrus"
)

// NewUpgrader 创建连接升级器,allowedOrigins 包含 "*" 时不校验 Origin
func NewUpgrader(allowedOrigins []string) gorillaWS.Upgrader {
	allowed := make(map[string]bool, len(allowedOrigins))
	for _, o := range allowedOrigins {
		allowed[o] = true
	}
	return gorillaWS.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || allowed["*"] || allowed[origin]
		},
	}
}

// Handler WebSocket 通知推送处理器,需挂在认证中间件之后
func Handler(hub *Hub, upgrader gorillaWS.Upgrader, logger *logrus.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := auth.GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "missing token",
			})
			return
		}

		// Upgrade 失败时已写入 HTTP 错误响应
		conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
		if err != nil {
			logger.WithError(err).Debug("WebSocket upgrade failed")
			return
		}

		client := NewClient(uuid.NewString(), id.ID, hub, conn, logger)
		hub.Register <- client

		go client.ReadPump()
		go client.WritePump()
	}
}
