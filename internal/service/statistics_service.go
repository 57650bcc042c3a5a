package service

import (
	"context"

	"github.com/mautops/remotework-gin/internal/model"
	"github.com/mautops/remotework-gin/internal/repository"
	"github.com/mautops/remotework-gin/internal/workflow"
	"github.com/shopspring/decimal"
)

// Overview 审批统计概览
type Overview struct {
	Total        int64
	Pending      int64
	Approved     int64
	Denied       int64
	ApprovalRate float64 // 已处理申请中批准的比例
	DaysApproved decimal.Decimal
	Period       string
}

// StatisticsService 统计服务接口
type StatisticsService interface {
	Overview(ctx context.Context) (*Overview, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// statisticsService 统计服务实现
type statisticsService struct {
	applications repository.ApplicationRepository
	counters     repository.UsageCounterRepository
	engine       *workflow.Engine
}

// NewStatisticsService 创建统计服务
func NewStatisticsService(applications repository.ApplicationRepository, counters repository.UsageCounterRepository, engine *workflow.Engine) StatisticsService {
	return &statisticsService{applications: applications, counters: counters, engine: engine}
}

// Overview 按状态统计申请,并汇总当前周期批准的天数
func (s *statisticsService) Overview(ctx context.Context) (*Overview, error) {
	counts, err := workflow.RetryRead(ctx, func() (map[model.Status]int64, error) {
		return s.applications.CountByStatus(ctx)
	})
	if err != nil {
		return nil, err
	}

	o := &Overview{
		Pending:  counts[model.StatusPending],
		Approved: counts[model.StatusApproved],
		Denied:   counts[model.StatusDenied],
	}
	o.Total = o.Pending + o.Approved + o.Denied
	if processed := o.Approved + o.Denied; processed > 0 {
		o.ApprovalRate = float64(o.Approved) / float64(processed)
	}

	o.Period = s.engine.CurrentPeriod()
	o.DaysApproved, err = workflow.RetryRead(ctx, func() (decimal.Decimal, error) {
		return s.counters.Sum(ctx, o.Period)
	})
	if err != nil {
		return nil, err
	}
	return o, nil
}

// CountByStatus 按状态统计申请数量,供指标收集器使用
func (s *statisticsService) CountByStatus(ctx context.Context) (map[string]int64, error) {
	counts, err := s.applications.CountByStatus(ctx)
	if err != nil {
		return nil, err
	}
	result := make(map[string]int64, len(counts))
	for status, count := range counts {
		result[string(status)] = count
	}
	return result, nil
}
