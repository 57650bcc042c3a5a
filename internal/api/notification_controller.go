package api

import (
	"github.com/gin-gonic/gin"
	"github.com/mautops/remotework-gin/internal/auth"
	"github.com/mautops/remotework-gin/internal/service"
	"github.com/mautops/remotework-gin/internal/workflow"
)

// NotificationController 通知控制器
type NotificationController struct {
	service service.NotificationService
}

// NewNotificationController 创建通知控制器
func NewNotificationController(svc service.NotificationService) *NotificationController {
	return &NotificationController{service: svc}
}

// List 查询通知
// @Summary      查询我的通知
// @Description  最新的在前,同时返回未读数量
// @Tags         通知
// @Produce      json
// @Security     BearerAuth
// @Success      200  {object}  Response{data=NotificationListResponse}
// @Router       /notifications [get]
func (ctrl *NotificationController) List(c *gin.Context) {
	list, err := ctrl.service.List(c.Request.Context(), auth.ActingUser(c).ID)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, toNotificationListResponse(list))
}

// MarkRead 标记已读
// @Summary      标记通知已读
// @Tags         通知
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "通知 ID"
// @Success      200  {object}  Response
// @Failure      404  {object}  ErrorResponse
// @Router       /notifications/{id}/read [put]
func (ctrl *NotificationController) MarkRead(c *gin.Context) {
	id, ok := pathID(c, workflow.ErrNotificationNotFound)
	if !ok {
		return
	}

	if err := ctrl.service.MarkRead(c.Request.Context(), id, auth.ActingUser(c).ID); err != nil {
		RespondError(c, err)
		return
	}
	Success(c, gin.H{"id": id, "is_read": true})
}

// Application 查询通知关联的申请
// @Summary      查询通知关联的申请
// @Description  申请不存在时 application 为 null,使用通用标题
// @Tags         通知
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "通知 ID"
// @Success      200  {object}  Response{data=ResolvedNotificationResponse}
// @Failure      404  {object}  ErrorResponse
// @Router       /notifications/{id}/application [get]
func (ctrl *NotificationController) Application(c *gin.Context) {
	id, ok := pathID(c, workflow.ErrNotificationNotFound)
	if !ok {
		return
	}

	resolved, err := ctrl.service.Resolve(c.Request.Context(), auth.ActingUser(c), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, &ResolvedNotificationResponse{
		Notification: toNotificationResponse(resolved.Notification),
		Application:  toApplicationResponse(resolved.Application),
		Title:        resolved.Title,
	})
}
