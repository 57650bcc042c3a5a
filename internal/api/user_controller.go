package api

import (
	"github.com/gin-gonic/gin"
	"github.com/mautops/remotework-gin/internal/auth"
	"github.com/mautops/remotework-gin/internal/service"
)

// UserController 用户控制器
type UserController struct {
	service service.UserService
}

// NewUserController 创建用户控制器
func NewUserController(svc service.UserService) *UserController {
	return &UserController{service: svc}
}

// Stats 查询当前用户统计
// @Summary      查询我的远程办公天数
// @Tags         用户
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=UserStatsResponse}
// @Router       /users/me/stats [get]
func (ctrl *UserController) Stats(c *gin.Context) {
	stats, err := ctrl.service.Stats(c.Request.Context(), auth.ActingUser(c))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, &UserStatsResponse{
		UserID:          stats.UserID,
		Username:        stats.Username,
		RemoteWorkCount: stats.RemoteWorkCount.InexactFloat64(),
		Period:          stats.Period,
	})
}
