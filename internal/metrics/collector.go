package metrics

import (
	"context"
	"sync"
	"time"

	"github.com/sirupsen/logrus"
	"gorm.io/gorm"
)

// StatusCounter 按状态统计申请数量
type StatusCounter interface {
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// Collector 定期采集数据库连接池和申请状态分布
type Collector struct {
	db       *gorm.DB
	counter  StatusCounter
	interval time.Duration
	logger   *logrus.Logger
	ctx      context.Context
	cancel   context.CancelFunc
	done     chan struct{}
	once     sync.Once
	started  bool
}

// NewCollector 创建指标收集器,counter 可以为空
func NewCollector(db *gorm.DB, counter StatusCounter, interval time.Duration, logger *logrus.Logger) *Collector {
	ctx, cancel := context.WithCancel(context.Background())
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Collector{
		db:       db,
		counter:  counter,
		interval: interval,
		logger:   logger,
		ctx:      ctx,
		cancel:   cancel,
		done:     make(chan struct{}),
	}
}

// Start 启动指标收集器
func (c *Collector) Start() {
	c.once.Do(func() {
		c.started = true
		go c.run()
	})
}

// Stop 停止指标收集器,未启动时只取消上下文
func (c *Collector) Stop() {
	c.cancel()
	c.once.Do(func() {})
	if c.started {
		<-c.done
	}
}

func (c *Collector) run() {
	ticker := time.NewTicker(c.interval)
	defer ticker.Stop()
	defer close(c.done)

	c.Collect()
	for {
		select {
		case <-c.ctx.Done():
			return
		case <-ticker.C:
			c.Collect()
		}
	}
}

// Collect 采集一次指标
func (c *Collector) Collect() {
	if err := UpdateDatabaseConnections(c.db); err != nil {
		c.logger.WithError(err).Debug("Failed to collect database pool metrics")
	}
	if c.counter == nil {
		return
	}

	ctx, cancel := context.WithTimeout(c.ctx, 5*time.Second)
	defer cancel()
	counts, err := c.counter.CountByStatus(ctx)
	if err != nil {
		c.logger.WithError(err).Warn("Failed to collect application status metrics")
		return
	}
	for status, count := range counts {
		UpdateApplicationsByStatus(status, float64(count))
	}
}
