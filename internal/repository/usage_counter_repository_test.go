package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/mautops/remotework-gin/internal/model"
	"github.com/mautops/remotework-gin/internal/repository"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedAt = time.Date(2026, 10, 16, 10, 0, 0, 0, time.UTC)

// TestUsageCounterRepository_Increment 测试累加整天与半天
func TestUsageCounterRepository_Increment(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewUsageCounterRepository(db)
	ctx := context.Background()

	days, err := repo.Get(ctx, "u-1", model.PeriodAll)
	require.NoError(t, err)
	assert.True(t, days.IsZero())

	require.NoError(t, repo.Increment(ctx, "u-1", model.PeriodAll, decimal.NewFromInt(1), fixedAt))
	require.NoError(t, repo.Increment(ctx, "u-1", model.PeriodAll, decimal.NewFromFloat(0.5), fixedAt))
	require.NoError(t, repo.Increment(ctx, "u-2", model.PeriodAll, decimal.NewFromInt(1), fixedAt))

	days, err = repo.Get(ctx, "u-1", model.PeriodAll)
	require.NoError(t, err)
	assert.True(t, days.Equal(decimal.RequireFromString("1.5")), days.String())

	total, err := repo.Sum(ctx, model.PeriodAll)
	require.NoError(t, err)
	assert.True(t, total.Equal(decimal.RequireFromString("2.5")), total.String())
}

// TestUsageCounterRepository_Periods 测试不同周期互不影响
func TestUsageCounterRepository_Periods(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewUsageCounterRepository(db)
	ctx := context.Background()

	require.NoError(t, repo.Increment(ctx, "u-1", "2026-W42", decimal.NewFromInt(1), fixedAt))
	require.NoError(t, repo.Increment(ctx, "u-1", "2026-W43", decimal.NewFromFloat(0.5), fixedAt))

	w42, err := repo.Get(ctx, "u-1", "2026-W42")
	require.NoError(t, err)
	assert.True(t, w42.Equal(decimal.NewFromInt(1)))

	w43, err := repo.Get(ctx, "u-1", "2026-W43")
	require.NoError(t, err)
	assert.True(t, w43.Equal(decimal.NewFromFloat(0.5)))
}

// TestUsageCounterRepository_UpdatedAt 测试更新时间取调用方传入的时间
func TestUsageCounterRepository_UpdatedAt(t *testing.T) {
	db := setupTestDB(t)
	repo := repository.NewUsageCounterRepository(db)
	ctx := context.Background()

	later := fixedAt.Add(2 * time.Hour)
	require.NoError(t, repo.Increment(ctx, "u-1", model.PeriodAll, decimal.NewFromInt(1), fixedAt))
	require.NoError(t, repo.Increment(ctx, "u-1", model.PeriodAll, decimal.NewFromInt(1), later))

	var counter model.UsageCounterModel
	require.NoError(t, db.Where("user_id = ? AND period = ?", "u-1", model.PeriodAll).First(&counter).Error)
	assert.True(t, counter.UpdatedAt.Equal(later), counter.UpdatedAt.String())
}
