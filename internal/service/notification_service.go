package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/mautops/remotework-gin/internal/model"
	"github.com/mautops/remotework-gin/internal/repository"
	"github.com/mautops/remotework-gin/internal/workflow"
	"github.com/sirupsen/logrus"
)

// GenericNotificationTitle 无法关联申请时的通用标题
const GenericNotificationTitle = "Remote work notification"

// NotificationList 通知列表
type NotificationList struct {
	Items       []*model.NotificationModel
	UnreadCount int64
}

// ResolvedNotification 通知及其关联的申请,申请不存在时 Application 为空
type ResolvedNotification struct {
	Notification *model.NotificationModel
	Application  *model.ApplicationView
	Title        string
}

// NotificationService 通知服务接口
type NotificationService interface {
	List(ctx context.Context, userID string) (*NotificationList, error)
	MarkRead(ctx context.Context, id, userID string) error
	Resolve(ctx context.Context, actor workflow.ActingUser, id string) (*ResolvedNotification, error)
	MarkDetachedRead(ctx context.Context) (int64, error)
}

// notificationService 通知服务实现
type notificationService struct {
	repo   repository.NotificationRepository
	engine *workflow.Engine
	audit  AuditLogService
	logger *logrus.Logger
}

// NewNotificationService 创建通知服务
func NewNotificationService(repo repository.NotificationRepository, engine *workflow.Engine, audit AuditLogService, logger *logrus.Logger) NotificationService {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &notificationService{repo: repo, engine: engine, audit: audit, logger: logger}
}

// List 查询用户通知,最新的在前
func (s *notificationService) List(ctx context.Context, userID string) (*NotificationList, error) {
	items, err := workflow.RetryRead(ctx, func() ([]*model.NotificationModel, error) {
		return s.repo.ListByUser(ctx, userID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list notifications: %w", err)
	}
	unread, err := workflow.RetryRead(ctx, func() (int64, error) {
		return s.repo.CountUnread(ctx, userID)
	})
	if err != nil {
		return nil, fmt.Errorf("failed to count unread notifications: %w", err)
	}
	return &NotificationList{Items: items, UnreadCount: unread}, nil
}

// MarkRead 标记已读,只能标记自己的通知,重复调用不报错
func (s *notificationService) MarkRead(ctx context.Context, id, userID string) error {
	if err := s.repo.MarkRead(ctx, id, userID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return workflow.ErrNotificationNotFound
		}
		return err
	}
	if s.audit != nil {
		if err := s.audit.RecordAction(ctx, userID, ActionMarkRead, ResourceNotification, id, nil); err != nil {
			s.logger.WithError(err).WithField("notification_id", id).Warn("Failed to record audit log")
		}
	}
	return nil
}

// Resolve 查询通知关联的申请
// 没有关联申请或申请已不可见时返回通用标题,不报错
func (s *notificationService) Resolve(ctx context.Context, actor workflow.ActingUser, id string) (*ResolvedNotification, error) {
	n, err := workflow.RetryRead(ctx, func() (*model.NotificationModel, error) {
		return s.repo.FindForUser(ctx, id, actor.ID)
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, workflow.ErrNotificationNotFound
		}
		return nil, err
	}

	resolved := &ResolvedNotification{Notification: n, Title: GenericNotificationTitle}
	if n.ApplicationID == nil {
		return resolved, nil
	}

	app, err := s.engine.Get(ctx, actor, *n.ApplicationID)
	if err != nil {
		if errors.Is(err, workflow.ErrNotFound) {
			return resolved, nil
		}
		return nil, err
	}
	resolved.Application = app
	resolved.Title = fmt.Sprintf("Remote work request for %s", app.RequestedDate)
	return resolved, nil
}

// MarkDetachedRead 将没有关联申请的历史通知标记为已读
func (s *notificationService) MarkDetachedRead(ctx context.Context) (int64, error) {
	return s.repo.MarkDetachedRead(ctx)
}
