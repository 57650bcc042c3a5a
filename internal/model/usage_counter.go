package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// PeriodAll 不分周期的累计统计
const PeriodAll = "all"

// UsageCounterModel 远程办公使用天数统计
type UsageCounterModel struct {
	UserID    string          `gorm:"primaryKey;type:varchar(64)"`
	Period    string          `gorm:"primaryKey;type:varchar(16)"` // all 或 ISO 周,如 2026-W42
	Days      decimal.Decimal `gorm:"type:numeric(10,1);not null"`
	UpdatedAt time.Time       `gorm:"not null"`
}

// TableName 指定表名
func (UsageCounterModel) TableName() string {
	return "usage_counters"
}
