package auth

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/mautops/remotework-gin/internal/workflow"
	"github.com/sirupsen/logrus"
)

const identityKey = "identity"

// Middleware JWT 认证中间件
// 支持 Authorization: Bearer 头,WebSocket 握手时也接受 token 查询参数
func Middleware(validator TokenValidator, syncer UserSyncer, logger *logrus.Logger) gin.HandlerFunc {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "missing authorization header",
			})
			return
		}

		id, err := validator.Validate(token)
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "invalid token",
				"detail":  err.Error(),
			})
			return
		}

		if syncer != nil {
			if err := syncer.SyncIdentity(c.Request.Context(), id); err != nil {
				logger.WithError(err).WithField("user_id", id.ID).Warn("Failed to sync user directory")
			}
		}

		c.Set(identityKey, id)
		c.Set("user_id", id.ID)
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimSpace(header[len("Bearer "):])
	}
	return c.Query("token")
}

// GetIdentity 从上下文获取认证身份
func GetIdentity(c *gin.Context) (*Identity, bool) {
	v, ok := c.Get(identityKey)
	if !ok {
		return nil, false
	}
	id, ok := v.(*Identity)
	return id, ok
}

// ActingUser 从上下文获取当前操作人,未认证时返回零值
func ActingUser(c *gin.Context) workflow.ActingUser {
	if id, ok := GetIdentity(c); ok {
		return id.ActingUser
	}
	return workflow.ActingUser{}
}

// RequireRole 要求当前用户具有指定角色之一
func RequireRole(roles ...string) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := GetIdentity(c)
		if !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{
				"code":    http.StatusUnauthorized,
				"message": "authentication required",
			})
			return
		}
		for _, role := range roles {
			if id.Role == role {
				c.Next()
				return
			}
		}
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{
			"code":    http.StatusForbidden,
			"message": "insufficient role",
			"detail":  "required one of: " + strings.Join(roles, ", "),
		})
	}
}
