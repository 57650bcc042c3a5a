package workflow

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/mautops/remotework-gin/internal/model"
	"github.com/mautops/remotework-gin/internal/repository"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
	maxPage         = math.MaxInt32 / maxPageSize
	timeLayout      = "15:04"
	monthLayout     = "2006-01"
	messageDate     = "Monday, January 2, 2006"
)

// SubmitRequest 提交申请参数
type SubmitRequest struct {
	RequestedDate         string
	StartTime             string
	EndTime               string
	IsPartialWorkFromHome bool
	IsSpecialApproval     bool
	OvertimeAcknowledged  bool
	Reason                string
}

// DecisionResult 审批结果,包含事务内产生的副作用
type DecisionResult struct {
	Application  *model.ApplicationView
	Notification *model.NotificationModel
	Days         decimal.Decimal // 计入使用统计的天数,拒绝时为 0
	Period       string
}

// Engine 远程办公申请审批流程引擎
// 状态、审批人、处理时间、拒绝原因、通知和使用统计只由引擎写入
type Engine struct {
	db            *gorm.DB
	applications  repository.ApplicationRepository
	notifications repository.NotificationRepository
	counters      repository.UsageCounterRepository
	histories     repository.StateHistoryRepository

	mu     sync.RWMutex
	policy Policy
	now    func() time.Time
}

// Option 引擎选项
type Option func(*Engine)

// WithClock 替换时钟,用于测试
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		e.now = now
	}
}

// NewEngine 创建审批流程引擎
func NewEngine(db *gorm.DB, policy Policy, opts ...Option) *Engine {
	e := &Engine{
		db:            db,
		applications:  repository.NewApplicationRepository(db),
		notifications: repository.NewNotificationRepository(db),
		counters:      repository.NewUsageCounterRepository(db),
		histories:     repository.NewStateHistoryRepository(db),
		policy:        policy,
		now:           time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Policy 返回当前策略
func (e *Engine) Policy() Policy {
	e.mu.RLock()
	defer e.mu.RUnlock()
	return e.policy
}

// SetPolicy 替换策略,配置热更新时调用
func (e *Engine) SetPolicy(p Policy) {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.policy = p
}

// Submit 提交远程办公申请
func (e *Engine) Submit(ctx context.Context, actor ActingUser, req SubmitRequest) (*model.ApplicationView, error) {
	if actor.ID == "" {
		return nil, ErrUnauthenticated
	}
	policy := e.Policy()
	now := e.now()

	if strings.TrimSpace(req.Reason) == "" {
		return nil, ErrReasonRequired
	}
	if strings.TrimSpace(req.RequestedDate) == "" {
		return nil, ErrRequestedDateRequired
	}
	date, err := time.ParseInLocation(model.DateLayout, strings.TrimSpace(req.RequestedDate), policy.Location)
	if err != nil {
		return nil, ErrInvalidDate
	}

	local := now.In(policy.Location)
	today := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, policy.Location)
	if !date.After(today) && !req.IsSpecialApproval {
		return nil, ErrSpecialApprovalRequired
	}

	start, end, err := parseTimeRange(req.StartTime, req.EndTime)
	if err != nil {
		return nil, err
	}
	if start != nil && !req.OvertimeAcknowledged {
		if duration(*start, *end) > policy.DailyCap {
			return nil, ErrOvertimeNotAcknowledged
		}
	}

	app := &model.ApplicationModel{
		ID:                    uuid.NewString(),
		RequesterID:           actor.ID,
		SubmittedAt:           now,
		RequestedDate:         date.Format(model.DateLayout),
		StartTime:             start,
		EndTime:               end,
		IsPartialWorkFromHome: req.IsPartialWorkFromHome,
		IsSpecialApproval:     req.IsSpecialApproval,
		OvertimeAcknowledged:  req.OvertimeAcknowledged,
		Reason:                strings.TrimSpace(req.Reason),
		Status:                model.StatusPending,
		UpdatedAt:             now,
	}
	if err := e.applications.Create(ctx, app); err != nil {
		return nil, fmt.Errorf("failed to create application: %w", err)
	}

	return e.view(ctx, app.ID)
}

// parseTimeRange 解析起止时间,两者必须同时提供或同时为空
func parseTimeRange(startStr, endStr string) (*string, *string, error) {
	startStr, endStr = strings.TrimSpace(startStr), strings.TrimSpace(endStr)
	if startStr == "" && endStr == "" {
		return nil, nil, nil
	}
	if startStr == "" || endStr == "" {
		return nil, nil, ErrTimeRangeIncomplete
	}
	start, err := time.Parse(timeLayout, startStr)
	if err != nil {
		return nil, nil, ErrInvalidTime
	}
	end, err := time.Parse(timeLayout, endStr)
	if err != nil {
		return nil, nil, ErrInvalidTime
	}
	if !end.After(start) {
		return nil, nil, ErrTimeRangeInvalid
	}
	s, en := start.Format(timeLayout), end.Format(timeLayout)
	return &s, &en, nil
}

func duration(start, end string) time.Duration {
	s, _ := time.Parse(timeLayout, start)
	e, _ := time.Parse(timeLayout, end)
	return e.Sub(s)
}

// Decide 审批申请
// 状态变更、使用统计、通知和状态历史在同一个事务中提交
func (e *Engine) Decide(ctx context.Context, actor ActingUser, id, decision, denialReason string) (*DecisionResult, error) {
	if !actor.CanDecide() {
		return nil, ErrApproverRoleRequired
	}
	to, err := ParseDecision(decision)
	if err != nil {
		return nil, err
	}
	denialReason = strings.TrimSpace(denialReason)
	if to == model.StatusDenied && denialReason == "" {
		return nil, ErrDenialReasonRequired
	}

	policy := e.Policy()
	now := e.now()
	result := &DecisionResult{Days: decimal.Zero}

	err = e.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		apps := e.applications.WithTx(tx)

		app, err := apps.FindByID(ctx, id)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return ErrApplicationNotFound
			}
			return err
		}
		if policy.SelfApprovalExclusion && app.RequesterID == actor.ID {
			return ErrSelfApproval
		}
		if !CanTransition(app.Status, to) {
			return ErrAlreadyProcessed
		}

		var reason *string
		if to == model.StatusDenied {
			reason = &denialReason
		}
		applied, err := apps.TransitionFromPending(ctx, app.ID, to, actor.ID, now, reason)
		if err != nil {
			return err
		}
		if !applied {
			// 并发审批中落败
			return ErrAlreadyProcessed
		}

		if to == model.StatusApproved {
			requested, err := time.ParseInLocation(model.DateLayout, app.RequestedDate, policy.Location)
			if err != nil {
				return fmt.Errorf("stored requested date %q: %w", app.RequestedDate, err)
			}
			result.Days = decimal.NewFromFloat(app.Days())
			result.Period = policy.UsageWindow.Period(requested)
			if err := e.counters.WithTx(tx).Increment(ctx, app.RequesterID, result.Period, result.Days, now); err != nil {
				return fmt.Errorf("failed to increment usage counter: %w", err)
			}
		}

		appID := app.ID
		notification := &model.NotificationModel{
			ID:            uuid.NewString(),
			UserID:        app.RequesterID,
			ApplicationID: &appID,
			Message:       decisionMessage(app.RequestedDate, to, denialReason),
			Kind:          notificationKind(to),
			CreatedAt:     now,
		}
		if err := e.notifications.WithTx(tx).Create(ctx, notification); err != nil {
			return fmt.Errorf("failed to create notification: %w", err)
		}
		result.Notification = notification

		history := &model.StateHistoryModel{
			ID:            uuid.NewString(),
			ApplicationID: app.ID,
			FromState:     app.Status,
			ToState:       to,
			Reason:        denialReason,
			Operator:      actor.ID,
			CreatedAt:     now,
		}
		if err := e.histories.WithTx(tx).Save(ctx, history); err != nil {
			return fmt.Errorf("failed to save state history: %w", err)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	view, err := e.view(ctx, id)
	if err != nil {
		return nil, err
	}
	result.Application = view
	return result, nil
}

func notificationKind(status model.Status) string {
	if status == model.StatusDenied {
		return model.NotificationDenial
	}
	return model.NotificationApproval
}

// decisionMessage 生成审批通知内容
func decisionMessage(requestedDate string, status model.Status, denialReason string) string {
	label := requestedDate
	if d, err := time.Parse(model.DateLayout, requestedDate); err == nil {
		label = d.Format(messageDate)
	}
	if status == model.StatusDenied {
		return fmt.Sprintf("Your remote work request for %s has been denied. Reason: %s", label, denialReason)
	}
	return fmt.Sprintf("Your remote work request for %s has been approved.", label)
}

// Get 查询申请,员工只能查看自己的申请
func (e *Engine) Get(ctx context.Context, actor ActingUser, id string) (*model.ApplicationView, error) {
	view, err := e.view(ctx, id)
	if err != nil {
		return nil, err
	}
	if !actor.CanReadAll() && view.RequesterID != actor.ID {
		return nil, ErrApplicationNotFound
	}
	return view, nil
}

// History 查询申请的状态变更历史,可见性与 Get 相同
func (e *Engine) History(ctx context.Context, actor ActingUser, id string) ([]*model.StateHistoryModel, error) {
	if _, err := e.Get(ctx, actor, id); err != nil {
		return nil, err
	}
	return RetryRead(ctx, func() ([]*model.StateHistoryModel, error) {
		return e.histories.FindByApplicationID(ctx, id)
	})
}

func (e *Engine) view(ctx context.Context, id string) (*model.ApplicationView, error) {
	view, err := RetryRead(ctx, func() (*model.ApplicationView, error) {
		return e.applications.FindViewByID(ctx, id)
	})
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrApplicationNotFound
	}
	return view, err
}

// ListMine 查询当前用户自己的申请
func (e *Engine) ListMine(ctx context.Context, actor ActingUser, status string, page, pageSize int) ([]*model.ApplicationView, int64, error) {
	if actor.ID == "" {
		return nil, 0, ErrUnauthenticated
	}
	filter, err := ParseStatusFilter(status)
	if err != nil {
		return nil, 0, err
	}
	return e.list(ctx, repository.ApplicationFilter{Status: filter, RequesterID: actor.ID}, page, pageSize)
}

// ListForApprover 查询审批队列,开启自审排除时不包含审批人自己的申请
func (e *Engine) ListForApprover(ctx context.Context, actor ActingUser, status string, page, pageSize int) ([]*model.ApplicationView, int64, error) {
	if !actor.CanReadAll() {
		return nil, 0, ErrApproverRoleRequired
	}
	filter, err := ParseStatusFilter(status)
	if err != nil {
		return nil, 0, err
	}
	f := repository.ApplicationFilter{Status: filter}
	if e.Policy().SelfApprovalExclusion {
		f.ExcludeRequesterID = actor.ID
	}
	return e.list(ctx, f, page, pageSize)
}

func (e *Engine) list(ctx context.Context, filter repository.ApplicationFilter, page, pageSize int) ([]*model.ApplicationView, int64, error) {
	page, pageSize = NormalizePage(page, pageSize)
	type listResult struct {
		items []*model.ApplicationView
		total int64
	}
	res, err := RetryRead(ctx, func() (listResult, error) {
		items, total, err := e.applications.List(ctx, filter, page, pageSize)
		return listResult{items, total}, err
	})
	if err != nil {
		return nil, 0, err
	}
	return res.items, res.total, nil
}

// NormalizePage 规范化分页参数,页码上限保证偏移量不溢出
func NormalizePage(page, pageSize int) (int, int) {
	if page < 1 {
		page = 1
	}
	if page > maxPage {
		page = maxPage
	}
	if pageSize < 1 {
		pageSize = defaultPageSize
	}
	if pageSize > maxPageSize {
		pageSize = maxPageSize
	}
	return page, pageSize
}

// Calendar 查询当前用户某月已批准的申请,month 格式 YYYY-MM,为空时取当月
func (e *Engine) Calendar(ctx context.Context, actor ActingUser, month string) ([]*model.ApplicationModel, error) {
	if actor.ID == "" {
		return nil, ErrUnauthenticated
	}
	policy := e.Policy()
	var first time.Time
	if strings.TrimSpace(month) == "" {
		now := e.now().In(policy.Location)
		first = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, policy.Location)
	} else {
		m, err := time.ParseInLocation(monthLayout, strings.TrimSpace(month), policy.Location)
		if err != nil {
			return nil, ErrInvalidMonth
		}
		first = m
	}
	last := first.AddDate(0, 1, -1)

	return RetryRead(ctx, func() ([]*model.ApplicationModel, error) {
		return e.applications.ListApprovedBetween(ctx, actor.ID, first.Format(model.DateLayout), last.Format(model.DateLayout))
	})
}

// Now 引擎时钟的当前时间
func (e *Engine) Now() time.Time {
	return e.now()
}

// CurrentPeriod 当前统计周期
func (e *Engine) CurrentPeriod() string {
	policy := e.Policy()
	return policy.UsageWindow.Period(e.now().In(policy.Location))
}

// UsageCount 读取员工当前统计周期内已批准的远程办公天数
func (e *Engine) UsageCount(ctx context.Context, employeeID string) (decimal.Decimal, string, error) {
	period := e.CurrentPeriod()
	days, err := RetryRead(ctx, func() (decimal.Decimal, error) {
		return e.counters.Get(ctx, employeeID, period)
	})
	return days, period, err
}
