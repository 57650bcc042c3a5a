package workflow

import (
	"fmt"
	"time"

	"github.com/mautops/remotework-gin/internal/config"
	"github.com/mautops/remotework-gin/internal/model"
)

// UsageWindow 使用天数统计周期
type UsageWindow string

const (
	WindowAll  UsageWindow = "all"
	WindowWeek UsageWindow = "week"
)

// Period 返回日期所在的统计周期键
func (w UsageWindow) Period(date time.Time) string {
	if w == WindowWeek {
		year, week := date.ISOWeek()
		return fmt.Sprintf("%d-W%02d", year, week)
	}
	return model.PeriodAll
}

// Policy 审批流程策略
type Policy struct {
	Location              *time.Location
	DailyCap              time.Duration
	SelfApprovalExclusion bool
	UsageWindow           UsageWindow
}

// PolicyFromConfig 从配置构建流程策略
func PolicyFromConfig(cfg config.WorkflowConfig) Policy {
	window := UsageWindow(cfg.UsageWindow)
	if window != WindowWeek {
		window = WindowAll
	}
	return Policy{
		Location:              cfg.Location(),
		DailyCap:              time.Duration(cfg.DailyCapHours * float64(time.Hour)),
		SelfApprovalExclusion: cfg.SelfApprovalExclusion,
		UsageWindow:           window,
	}
}

// DefaultPolicy 默认策略
func DefaultPolicy() Policy {
	return PolicyFromConfig(config.Default().Workflow)
}
