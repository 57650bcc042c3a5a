package repository

import (
	"context"
	"time"

	"github.com/mautops/remotework-gin/internal/model"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// UsageCounterRepository 使用天数统计仓储接口
type UsageCounterRepository interface {
	WithTx(tx *gorm.DB) UsageCounterRepository
	Increment(ctx context.Context, userID, period string, days decimal.Decimal, at time.Time) error
	Get(ctx context.Context, userID, period string) (decimal.Decimal, error)
	Sum(ctx context.Context, period string) (decimal.Decimal, error)
}

// usageCounterRepository 使用天数统计仓储实现
type usageCounterRepository struct {
	db *gorm.DB
}

// NewUsageCounterRepository 创建使用天数统计仓储
func NewUsageCounterRepository(db *gorm.DB) UsageCounterRepository {
	return &usageCounterRepository{db: db}
}

// WithTx 返回绑定到事务的仓储
func (r *usageCounterRepository) WithTx(tx *gorm.DB) UsageCounterRepository {
	return &usageCounterRepository{db: tx}
}

// Increment 原子累加天数,记录不存在时创建,at 为更新时间
func (r *usageCounterRepository) Increment(ctx context.Context, userID, period string, days decimal.Decimal, at time.Time) error {
	db := r.db.WithContext(ctx)

	// MySQL 使用 ON DUPLICATE KEY UPDATE,没有 excluded 伪表
	increment := gorm.Expr("usage_counters.days + excluded.days")
	if db.Dialector.Name() == "mysql" {
		increment = gorm.Expr("days + VALUES(days)")
	}

	counter := &model.UsageCounterModel{
		UserID:    userID,
		Period:    period,
		Days:      days,
		UpdatedAt: at,
	}
	return db.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}, {Name: "period"}},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"days":       increment,
			"updated_at": counter.UpdatedAt,
		}),
	}).Create(counter).Error
}

// Get 查询用户在某个周期的天数,没有记录时返回 0
func (r *usageCounterRepository) Get(ctx context.Context, userID, period string) (decimal.Decimal, error) {
	var counters []model.UsageCounterModel
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND period = ?", userID, period).
		Limit(1).
		Find(&counters).Error
	if err != nil {
		return decimal.Zero, err
	}
	if len(counters) == 0 {
		return decimal.Zero, nil
	}
	return counters[0].Days, nil
}

// Sum 统计某个周期所有用户的天数
func (r *usageCounterRepository) Sum(ctx context.Context, period string) (decimal.Decimal, error) {
	var counters []model.UsageCounterModel
	if err := r.db.WithContext(ctx).Where("period = ?", period).Find(&counters).Error; err != nil {
		return decimal.Zero, err
	}
	total := decimal.Zero
	for _, c := range counters {
		total = total.Add(c.Days)
	}
	return total, nil
}
