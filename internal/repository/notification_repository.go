package repository

import (
	"context"

	"github.com/mautops/remotework-gin/internal/model"
	"gorm.io/gorm"
)

// NotificationRepository 通知仓储接口
type NotificationRepository interface {
	WithTx(tx *gorm.DB) NotificationRepository
	Create(ctx context.Context, n *model.NotificationModel) error
	ListByUser(ctx context.Context, userID string) ([]*model.NotificationModel, error)
	CountUnread(ctx context.Context, userID string) (int64, error)
	FindForUser(ctx context.Context, id, userID string) (*model.NotificationModel, error)
	MarkRead(ctx context.Context, id, userID string) error
	MarkDetachedRead(ctx context.Context) (int64, error)
}

// notificationRepository 通知仓储实现
type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository 创建通知仓储
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// WithTx 返回绑定到事务的仓储
func (r *notificationRepository) WithTx(tx *gorm.DB) NotificationRepository {
	return &notificationRepository{db: tx}
}

// Create 创建通知
func (r *notificationRepository) Create(ctx context.Context, n *model.NotificationModel) error {
	if err := n.Validate(); err != nil {
		return err
	}
	return r.db.WithContext(ctx).Create(n).Error
}

// ListByUser 查询用户的通知,最新的在前
func (r *notificationRepository) ListByUser(ctx context.Context, userID string) ([]*model.NotificationModel, error) {
	notifications := make([]*model.NotificationModel, 0)
	err := r.db.WithContext(ctx).
		Where("user_id = ?", userID).
		Order("created_at DESC").
		Order("id DESC").
		Find(&notifications).Error
	return notifications, err
}

// CountUnread 统计用户未读通知数量
func (r *notificationRepository) CountUnread(ctx context.Context, userID string) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("user_id = ? AND is_read = ?", userID, false).
		Count(&count).Error
	return count, err
}

// FindForUser 查找属于用户的通知
func (r *notificationRepository) FindForUser(ctx context.Context, id, userID string) (*model.NotificationModel, error) {
	var n model.NotificationModel
	if err := r.db.WithContext(ctx).Where("id = ? AND user_id = ?", id, userID).First(&n).Error; err != nil {
		return nil, translate(err)
	}
	return &n, nil
}

// MarkRead 标记通知为已读,已读通知重复标记不报错
func (r *notificationRepository) MarkRead(ctx context.Context, id, userID string) error {
	if _, err := r.FindForUser(ctx, id, userID); err != nil {
		return err
	}
	return r.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("id = ? AND user_id = ? AND is_read = ?", id, userID, false).
		Update("is_read", true).Error
}

// MarkDetachedRead 将没有关联申请的通知全部标记为已读
func (r *notificationRepository) MarkDetachedRead(ctx context.Context) (int64, error) {
	result := r.db.WithContext(ctx).
		Model(&model.NotificationModel{}).
		Where("application_id IS NULL AND is_read = ?", false).
		Update("is_read", true)
	return result.RowsAffected, result.Error
}
