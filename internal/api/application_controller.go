package api

import (
	"github.com/gin-gonic/gin"
	"github.com/mautops/remotework-gin/internal/auth"
	"github.com/mautops/remotework-gin/internal/service"
	"github.com/mautops/remotework-gin/internal/utils"
	"github.com/mautops/remotework-gin/internal/workflow"
)

// ApplicationController 申请控制器
type ApplicationController struct {
	service service.ApplicationService
}

// NewApplicationController 创建申请控制器
func NewApplicationController(svc service.ApplicationService) *ApplicationController {
	return &ApplicationController{service: svc}
}

// Submit 提交申请
// @Summary      提交远程办公申请
// @Description  创建待审批的远程办公申请,当天或过去的日期需要特殊审批
// @Tags         申请
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        request  body      service.SubmitApplicationRequest  true  "申请内容"
// @Success      201      {object}  Response{data=ApplicationResponse}
// @Failure      400      {object}  ErrorResponse
// @Failure      401      {object}  ErrorResponse
// @Router       /applications [post]
func (ctrl *ApplicationController) Submit(c *gin.Context) {
	var req service.SubmitApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}
	if err := utils.ValidateTextLength(req.Reason); err != nil {
		textTooLong(c, err)
		return
	}

	app, err := ctrl.service.Submit(c.Request.Context(), auth.ActingUser(c), &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Created(c, toApplicationResponse(app))
}

// ListMine 查询我的申请
// @Summary      查询我的申请
// @Tags         申请
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int     false  "页码"  default(1)
// @Param        page_size  query     int     false  "每页数量"  default(20)
// @Param        status     query     string  false  "状态过滤: pending 或 processed"
// @Success      200        {object}  PaginatedResponse{data=[]ApplicationResponse}
// @Failure      400        {object}  ErrorResponse
// @Router       /applications/my [get]
func (ctrl *ApplicationController) ListMine(c *gin.Context) {
	var query service.ListApplicationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, err)
		return
	}

	items, total, err := ctrl.service.ListMine(c.Request.Context(), auth.ActingUser(c), &query)
	if err != nil {
		RespondError(c, err)
		return
	}
	page, pageSize := workflow.NormalizePage(query.Page, query.PageSize)
	Paginated(c, toApplicationResponses(items), NewPaginationInfo(page, pageSize, total))
}

// ListForApprover 查询审批队列
// @Summary      查询审批队列
// @Description  特殊审批优先,未处理的排在已处理之后
// @Tags         申请
// @Produce      json
// @Security     BearerAuth
// @Param        page       query     int     false  "页码"  default(1)
// @Param        page_size  query     int     false  "每页数量"  default(20)
// @Param        status     query     string  false  "状态过滤: pending 或 processed"
// @Success      200        {object}  PaginatedResponse{data=[]ApplicationResponse}
// @Failure      403        {object}  ErrorResponse
// @Router       /applications [get]
func (ctrl *ApplicationController) ListForApprover(c *gin.Context) {
	var query service.ListApplicationsQuery
	if err := c.ShouldBindQuery(&query); err != nil {
		BadRequest(c, err)
		return
	}

	items, total, err := ctrl.service.ListForApprover(c.Request.Context(), auth.ActingUser(c), &query)
	if err != nil {
		RespondError(c, err)
		return
	}
	page, pageSize := workflow.NormalizePage(query.Page, query.PageSize)
	Paginated(c, toApplicationResponses(items), NewPaginationInfo(page, pageSize, total))
}

// Get 查询申请
// @Summary      查询申请详情
// @Description  员工只能查看自己的申请
// @Tags         申请
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "申请 ID"
// @Success      200  {object}  Response{data=ApplicationResponse}
// @Failure      404  {object}  ErrorResponse
// @Router       /applications/{id} [get]
func (ctrl *ApplicationController) Get(c *gin.Context) {
	id, ok := pathID(c, workflow.ErrApplicationNotFound)
	if !ok {
		return
	}

	app, err := ctrl.service.Get(c.Request.Context(), auth.ActingUser(c), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, toApplicationResponse(app))
}

// History 查询申请状态历史
// @Summary      查询申请状态历史
// @Tags         申请
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "申请 ID"
// @Success      200  {object}  Response{data=[]HistoryEntry}
// @Failure      404  {object}  ErrorResponse
// @Router       /applications/{id}/history [get]
func (ctrl *ApplicationController) History(c *gin.Context) {
	id, ok := pathID(c, workflow.ErrApplicationNotFound)
	if !ok {
		return
	}

	histories, err := ctrl.service.History(c.Request.Context(), auth.ActingUser(c), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, toHistoryEntries(histories))
}

// AuditTrail 查询申请审计日志
// @Summary      查询申请审计日志
// @Description  仅管理员可用,最新的操作在前
// @Tags         申请
// @Produce      json
// @Security     BearerAuth
// @Param        id   path      string  true  "申请 ID"
// @Success      200  {object}  Response{data=[]AuditEntry}
// @Failure      403  {object}  ErrorResponse
// @Failure      404  {object}  ErrorResponse
// @Router       /applications/{id}/audit [get]
func (ctrl *ApplicationController) AuditTrail(c *gin.Context) {
	id, ok := pathID(c, workflow.ErrApplicationNotFound)
	if !ok {
		return
	}

	logs, err := ctrl.service.AuditTrail(c.Request.Context(), auth.ActingUser(c), id)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, toAuditEntries(logs))
}

// Decide 审批申请
// @Summary      审批申请
// @Description  批准或拒绝待审批的申请,拒绝时必须填写原因
// @Tags         申请
// @Accept       json
// @Produce      json
// @Security     BearerAuth
// @Param        id       path      string                            true  "申请 ID"
// @Param        request  body      service.DecideApplicationRequest  true  "审批结果"
// @Success      200      {object}  Response{data=ApplicationResponse}
// @Failure      400      {object}  ErrorResponse
// @Failure      403      {object}  ErrorResponse
// @Failure      404      {object}  ErrorResponse
// @Failure      409      {object}  ErrorResponse
// @Router       /applications/{id}/status [put]
func (ctrl *ApplicationController) Decide(c *gin.Context) {
	id, ok := pathID(c, workflow.ErrApplicationNotFound)
	if !ok {
		return
	}

	var req service.DecideApplicationRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		BadRequest(c, err)
		return
	}
	if err := utils.ValidateTextLength(req.DenialReason); err != nil {
		textTooLong(c, err)
		return
	}

	app, err := ctrl.service.Decide(c.Request.Context(), auth.ActingUser(c), id, &req)
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, toApplicationResponse(app))
}

// Calendar 查询日历
// @Summary      查询远程办公日历
// @Description  返回当前用户在指定月份已批准的远程办公日
// @Tags         申请
// @Produce      json
// @Security     BearerAuth
// @Param        month  query     string  false  "月份 YYYY-MM,默认当月"
// @Success      200    {object}  Response{data=[]CalendarEntry}
// @Failure      400    {object}  ErrorResponse
// @Router       /applications/calendar [get]
func (ctrl *ApplicationController) Calendar(c *gin.Context) {
	apps, err := ctrl.service.Calendar(c.Request.Context(), auth.ActingUser(c), c.Query("month"))
	if err != nil {
		RespondError(c, err)
		return
	}
	Success(c, toCalendarEntries(apps))
}
