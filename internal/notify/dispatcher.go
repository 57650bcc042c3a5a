package notify

import (
	"time"

	"github.com/mautops/remotework-gin/internal/metrics"
	"github.com/mautops/remotework-gin/internal/model"
	"github.com/mautops/remotework-gin/internal/websocket"
	"github.com/sirupsen/logrus"
)

// Dispatcher 将已持久化的通知推送到 WebSocket 和 NATS
type Dispatcher struct {
	hub       *websocket.Hub
	publisher *Publisher
	logger    *logrus.Logger
}

// NewDispatcher 创建通知分发器,hub 和 publisher 都可以为空
func NewDispatcher(hub *websocket.Hub, publisher *Publisher, logger *logrus.Logger) *Dispatcher {
	if logger == nil {
		logger = logrus.StandardLogger()
	}
	return &Dispatcher{hub: hub, publisher: publisher, logger: logger}
}

// NotificationPayload WebSocket 推送的通知内容
type NotificationPayload struct {
	ID            string  `json:"id"`
	ApplicationID *string `json:"application_id"`
	Kind          string  `json:"kind"`
	Message       string  `json:"message"`
	IsRead        bool    `json:"is_read"`
	CreatedAt     string  `json:"created_at"`
}

// Dispatch 分发一条通知
func (d *Dispatcher) Dispatch(n *model.NotificationModel, app *model.ApplicationView, actorID, days string) {
	if n == nil {
		return
	}

	if d.hub != nil {
		_, err := d.hub.SendToUser(n.UserID, websocket.Message{
			Type: "notification",
			Data: NotificationPayload{
				ID:            n.ID,
				ApplicationID: n.ApplicationID,
				Kind:          n.Kind,
				Message:       n.Message,
				IsRead:        n.IsRead,
				CreatedAt:     n.CreatedAt.Format(time.RFC3339),
			},
		})
		metrics.RecordNotificationDelivery("websocket", err)
		if err != nil {
			d.logger.WithError(err).WithField("notification_id", n.ID).Warn("Failed to push notification")
		}
	}

	if d.publisher != nil {
		evt := &Event{
			EventType:      n.Kind,
			NotificationID: n.ID,
			RecipientID:    n.UserID,
			ActorID:        actorID,
			Days:           days,
			Message:        n.Message,
			CreatedAt:      n.CreatedAt,
		}
		if app != nil {
			evt.ApplicationID = app.ID
			evt.Status = string(app.Status)
			evt.RequestedDate = app.RequestedDate
		}
		d.publisher.Publish(evt)
	}
}
