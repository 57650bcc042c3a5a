package notify

import (
	"encoding/json"
	"fmt"
	"sync"
	"time"

	"github.com/mautops/remotework-gin/internal/config"
	"github.com/mautops/remotework-gin/internal/metrics"
	"github.com/nats-io/nats.go"
	"github.com/sirupsen/logrus"
)

// Event 发布到 NATS 的通知事件
type Event struct {
	EventType      string    `json:"event_type"` // approval, denial, update
	NotificationID string    `json:"notification_id"`
	ApplicationID  string    `json:"application_id,omitempty"`
	RecipientID    string    `json:"recipient_id"`
	ActorID        string    `json:"actor_id,omitempty"`
	Status         string    `json:"status,omitempty"`
	RequestedDate  string    `json:"requested_date,omitempty"`
	Days           string    `json:"days,omitempty"`
	Message        string    `json:"message"`
	CreatedAt      time.Time `json:"created_at"`
}

// Conn NATS 连接中发布所需的部分
type Conn interface {
	Publish(subject string, data []byte) error
}

// Publisher 异步发布通知事件
// 发布失败只记录日志,不影响已提交的审批结果
type Publisher struct {
	conn    Conn
	prefix  string
	queue   chan *Event
	logger  *logrus.Logger
	wg      sync.WaitGroup
	closeMu sync.Mutex
	closed  bool
}

// Connect 连接 NATS,断线后自动重连
func Connect(cfg config.NATSConfig, logger *logrus.Logger) (*nats.Conn, error) {
	nc, err := nats.Connect(cfg.URL,
		nats.Name("remotework-gin"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			if err != nil {
				logger.WithError(err).Warn("NATS disconnected")
			}
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.WithField("url", nc.ConnectedUrl()).Info("NATS reconnected")
		}),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to connect NATS: %w", err)
	}
	return nc, nil
}

// NewPublisher 创建发布器并启动 worker
func NewPublisher(conn Conn, prefix string, workers int, logger *logrus.Logger) *Publisher {
	if workers <= 0 {
		workers = 1
	}
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	p := &Publisher{
		conn:   conn,
		prefix: prefix,
		queue:  make(chan *Event, 1000),
		logger: logger,
	}
	for i := 0; i < workers; i++ {
		p.wg.Add(1)
		go p.worker()
	}
	return p
}

// Subject 返回事件类型对应的主题
func (p *Publisher) Subject(eventType string) string {
	return fmt.Sprintf("%s.%s", p.prefix, eventType)
}

// Publish 事件入队,队列满或已关闭时丢弃
func (p *Publisher) Publish(evt *Event) {
	p.closeMu.Lock()
	defer p.closeMu.Unlock()
	if p.closed {
		return
	}

	select {
	case p.queue <- evt:
	default:
		p.logger.WithFields(logrus.Fields{
			"event_type":      evt.EventType,
			"notification_id": evt.NotificationID,
		}).Warn("Notification queue full, dropping event")
	}
}

// Close 停止接收事件,等待队列中的事件发布完成
func (p *Publisher) Close() {
	p.closeMu.Lock()
	if p.closed {
		p.closeMu.Unlock()
		return
	}
	p.closed = true
	close(p.queue)
	p.closeMu.Unlock()

	p.wg.Wait()
}

func (p *Publisher) worker() {
	defer p.wg.Done()
	for evt := range p.queue {
		p.send(evt)
	}
}

func (p *Publisher) send(evt *Event) {
	data, err := json.Marshal(evt)
	if err != nil {
		p.logger.WithError(err).WithField("event_type", evt.EventType).Warn("Failed to marshal notification event")
		return
	}

	subject := p.Subject(evt.EventType)
	err = p.conn.Publish(subject, data)
	metrics.RecordNotificationDelivery("nats", err)
	if err != nil {
		p.logger.WithError(err).WithFields(logrus.Fields{
			"subject":         subject,
			"notification_id": evt.NotificationID,
		}).Warn("Failed to publish notification event")
		return
	}

	p.logger.WithFields(logrus.Fields{
		"subject":        subject,
		"application_id": evt.ApplicationID,
	}).Debug("Notification event published")
}
