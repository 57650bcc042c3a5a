package service

import (
	"context"
	"errors"

	"github.com/mautops/remotework-gin/internal/metrics"
	"github.com/mautops/remotework-gin/internal/model"
	"github.com/mautops/remotework-gin/internal/notify"
	"github.com/mautops/remotework-gin/internal/workflow"
	"github.com/sirupsen/logrus"
)

// 审计动作
const (
	ActionSubmit   = "submit"
	ActionApprove  = "approve"
	ActionDeny     = "deny"
	ActionMarkRead = "mark_read"

	ResourceApplication  = "application"
	ResourceNotification = "notification"
)

// ApplicationService 申请服务接口
type ApplicationService interface {
	Submit(ctx context.Context, actor workflow.ActingUser, req *SubmitApplicationRequest) (*model.ApplicationView, error)
	Decide(ctx context.Context, actor workflow.ActingUser, id string, req *DecideApplicationRequest) (*model.ApplicationView, error)
	Get(ctx context.Context, actor workflow.ActingUser, id string) (*model.ApplicationView, error)
	ListMine(ctx context.Context, actor workflow.ActingUser, query *ListApplicationsQuery) ([]*model.ApplicationView, int64, error)
	ListForApprover(ctx context.Context, actor workflow.ActingUser, query *ListApplicationsQuery) ([]*model.ApplicationView, int64, error)
	Calendar(ctx context.Context, actor workflow.ActingUser, month string) ([]*model.ApplicationModel, error)
	History(ctx context.Context, actor workflow.ActingUser, id string) ([]*model.StateHistoryModel, error)
	AuditTrail(ctx context.Context, actor workflow.ActingUser, id string) ([]*model.AuditLogModel, error)
}

// SubmitApplicationRequest 提交申请请求
// @Description 提交远程办公申请的请求参数
type SubmitApplicationRequest struct {
	RequestedDate         string `json:"requested_date" example:"2026-10-20"`       // 远程办公日期
	StartTime             string `json:"start_time" example:"09:00"`                // 开始时间,与结束时间同时提供
	EndTime               string `json:"end_time" example:"13:00"`                  // 结束时间
	IsPartialWorkFromHome bool   `json:"is_partial_work_from_home" example:"false"` // 半天,计 0.5 天
	IsSpecialApproval     bool   `json:"is_special_approval" example:"false"`       // 特殊审批,允许当天申请
	OvertimeAcknowledged  bool   `json:"overtime_acknowledged" example:"false"`     // 已确认超出每日时长
	Reason                string `json:"reason" example:"dentist appointment"`      // 申请原因
}

// DecideApplicationRequest 审批请求
// @Description 审批远程办公申请的请求参数
type DecideApplicationRequest struct {
	Decision     string `json:"decision" example:"approved"`          // approved 或 denied
	DenialReason string `json:"denial_reason" example:"team offsite"` // 拒绝时必填
}

// ListApplicationsQuery 申请列表查询参数
type ListApplicationsQuery struct {
	Page     int    `form:"page" example:"1"`
	PageSize int    `form:"page_size" example:"20"`
	Status   string `form:"status" example:"pending"` // pending, processed 或为空
}

// applicationService 申请服务实现
type applicationService struct {
	engine     *workflow.Engine
	audit      AuditLogService
	dispatcher *notify.Dispatcher
	logger     *logrus.Logger
}

// NewApplicationService 创建申请服务
func NewApplicationService(engine *workflow.Engine, audit AuditLogService, dispatcher *notify.Dispatcher, logger *logrus.Logger) ApplicationService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &applicationService{
		engine:     engine,
		audit:      audit,
		dispatcher: dispatcher,
		logger:     logger,
	}
}

// Submit 提交申请
func (s *applicationService) Submit(ctx context.Context, actor workflow.ActingUser, req *SubmitApplicationRequest) (*model.ApplicationView, error) {
	app, err := s.engine.Submit(ctx, actor, workflow.SubmitRequest{
		RequestedDate:         req.RequestedDate,
		StartTime:             req.StartTime,
		EndTime:               req.EndTime,
		IsPartialWorkFromHome: req.IsPartialWorkFromHome,
		IsSpecialApproval:     req.IsSpecialApproval,
		OvertimeAcknowledged:  req.OvertimeAcknowledged,
		Reason:                req.Reason,
	})
	if err != nil {
		return nil, err
	}

	metrics.RecordApplicationSubmitted()
	s.recordAudit(ctx, actor.ID, ActionSubmit, ResourceApplication, app.ID, map[string]interface{}{
		"requested_date":      app.RequestedDate,
		"is_special_approval": app.IsSpecialApproval,
		"is_partial":          app.IsPartialWorkFromHome,
	})
	return app, nil
}

// Decide 审批申请,提交成功后推送通知
func (s *applicationService) Decide(ctx context.Context, actor workflow.ActingUser, id string, req *DecideApplicationRequest) (*model.ApplicationView, error) {
	result, err := s.engine.Decide(ctx, actor, id, req.Decision, req.DenialReason)
	if err != nil {
		if errors.Is(err, workflow.ErrInvalidState) {
			metrics.RecordDecision("conflict")
		}
		return nil, err
	}

	app := result.Application
	metrics.RecordDecision(string(app.Status))
	if !result.Days.IsZero() {
		metrics.RecordUsageDays(result.Days.InexactFloat64())
	}

	action := ActionApprove
	if app.Status == model.StatusDenied {
		action = ActionDeny
	}
	s.recordAudit(ctx, actor.ID, action, ResourceApplication, app.ID, map[string]interface{}{
		"status":        app.Status,
		"denial_reason": app.DenialReason,
		"days":          result.Days.String(),
		"period":        result.Period,
	})

	if s.dispatcher != nil {
		s.dispatcher.Dispatch(result.Notification, app, actor.ID, result.Days.String())
	}
	return app, nil
}

// recordAudit 审计日志写入失败只记录日志
func (s *applicationService) recordAudit(ctx context.Context, userID, action, resourceType, resourceID string, details interface{}) {
	if s.audit == nil {
		return
	}
	if err := s.audit.RecordAction(ctx, userID, action, resourceType, resourceID, details); err != nil {
		s.logger.WithError(err).WithFields(logrus.Fields{
			"action":      action,
			"resource_id": resourceID,
		}).Warn("Failed to record audit log")
	}
}

// Get 查询申请
func (s *applicationService) Get(ctx context.Context, actor workflow.ActingUser, id string) (*model.ApplicationView, error) {
	return s.engine.Get(ctx, actor, id)
}

// ListMine 查询自己的申请
func (s *applicationService) ListMine(ctx context.Context, actor workflow.ActingUser, query *ListApplicationsQuery) ([]*model.ApplicationView, int64, error) {
	return s.engine.ListMine(ctx, actor, query.Status, query.Page, query.PageSize)
}

// ListForApprover 查询审批队列
func (s *applicationService) ListForApprover(ctx context.Context, actor workflow.ActingUser, query *ListApplicationsQuery) ([]*model.ApplicationView, int64, error) {
	return s.engine.ListForApprover(ctx, actor, query.Status, query.Page, query.PageSize)
}

// Calendar 查询日历数据
func (s *applicationService) Calendar(ctx context.Context, actor workflow.ActingUser, month string) ([]*model.ApplicationModel, error) {
	return s.engine.Calendar(ctx, actor, month)
}

// History 查询申请状态变更历史
func (s *applicationService) History(ctx context.Context, actor workflow.ActingUser, id string) ([]*model.StateHistoryModel, error) {
	return s.engine.History(ctx, actor, id)
}

// AuditTrail 查询申请的审计日志,仅管理员可用
func (s *applicationService) AuditTrail(ctx context.Context, actor workflow.ActingUser, id string) ([]*model.AuditLogModel, error) {
	if !actor.CanAudit() {
		return nil, workflow.ErrAdminRoleRequired
	}
	if _, err := s.engine.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	return workflow.RetryRead(ctx, func() ([]*model.AuditLogModel, error) {
		return s.audit.ListByResource(ctx, ResourceApplication, id)
	})
}
