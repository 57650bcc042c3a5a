package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/mautops/remotework-gin/internal/model"
	"github.com/mautops/remotework-gin/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newNotification(userID string, applicationID *string, createdAt time.Time) *model.NotificationModel {
	return &model.NotificationModel{
		ID:            uuid.NewString(),
		UserID:        userID,
		ApplicationID: applicationID,
		Message:       "Your remote work request has been approved",
		Kind:          model.NotificationApproval,
		CreatedAt:     createdAt,
	}
}

// TestNotificationRepository_ListByUser 测试通知按时间倒序
func TestNotificationRepository_ListByUser(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewNotificationRepository(db)
	ctx := context.Background()

	now := time.Now()
	older := newNotification("u-1", nil, now.Add(-time.Hour))
	newer := newNotification("u-1", nil, now)
	other := newNotification("u-2", nil, now)
	for _, n := range []*model.NotificationModel{older, newer, other} {
		require.NoError(t, repo.Create(ctx, n))
	}

	items, err := repo.ListByUser(ctx, "u-1")
	require.NoError(t, err)
	require.Len(t, items, 2)
	assert.Equal(t, newer.ID, items[0].ID)
	assert.Equal(t, older.ID, items[1].ID)

	unread, err := repo.CountUnread(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(2), unread)
}

// TestNotificationRepository_MarkRead 测试标记已读的幂等性与归属校验
func TestNotificationRepository_MarkRead(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewNotificationRepository(db)
	ctx := context.Background()

	n := newNotification("u-1", nil, time.Now())
	require.NoError(t, repo.Create(ctx, n))

	require.NoError(t, repo.MarkRead(ctx, n.ID, "u-1"))
	require.NoError(t, repo.MarkRead(ctx, n.ID, "u-1"))

	found, err := repo.FindForUser(ctx, n.ID, "u-1")
	require.NoError(t, err)
	assert.True(t, found.IsRead)

	err = repo.MarkRead(ctx, n.ID, "u-2")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

// TestNotificationRepository_MarkDetachedRead 测试批量标记无关联申请的通知
func TestNotificationRepository_MarkDetachedRead(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewNotificationRepository(db)
	ctx := context.Background()

	appID := uuid.NewString()
	detached := newNotification("u-1", nil, time.Now())
	attached := newNotification("u-1", &appID, time.Now())
	require.NoError(t, repo.Create(ctx, detached))
	require.NoError(t, repo.Create(ctx, attached))

	affected, err := repo.MarkDetachedRead(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected)

	unread, err := repo.CountUnread(ctx, "u-1")
	require.NoError(t, err)
	assert.Equal(t, int64(1), unread)
}
