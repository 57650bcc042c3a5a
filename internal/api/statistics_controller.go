package api

import (
	"github.com/gin-gonic/gin"
	"github.com/mautops/remotework-gin/internal/service"
)

// StatisticsController 统计控制器
type StatisticsController struct {
	service service.StatisticsService
}

// NewStatisticsController 创建统计控制器
func NewStatisticsController(svc service.StatisticsService) *StatisticsController {
	return &StatisticsController{service: svc}
}

// Overview 审批统计
// @Summary      审批统计
// @Description  按状态统计申请数量和批准率
// @Tags         统计
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=StatisticsResponse}
// @Failure      403  {object}  ErrorResponse
// @Router       /statistics [get]
func (ctrl *StatisticsController) Overview(c *gin.Context) {
	o, err := ctrl.service.Overview(c.Request.Context())
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, &StatisticsResponse{
		Total:        o.Total,
		Pending:      o.Pending,
		Approved:     o.Approved,
		Denied:       o.Denied,
		ApprovalRate: o.ApprovalRate,
		DaysApproved: o.DaysApproved.InexactFloat64(),
		Period:       o.Period,
	})
}
