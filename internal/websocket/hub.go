package websocket

import (
	"encoding/json"
	"fmt"
	"sync"
)

// Message 推送给客户端的消息
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub 按用户管理 WebSocket 连接
type Hub struct {
	// 用户 ID -> 该用户的连接
	clients map[string]map[*Client]struct{}

	// 注册新客户端
	Register chan *Client

	// 注销客户端
	Unregister chan *Client

	stop chan struct{}
	done chan struct{}
	mu   sync.RWMutex
}

// NewHub 创建新的 Hub
func NewHub() *Hub {
	return &Hub{
		clients:    make(map[string]map[*Client]struct{}),
		Register:   make(chan *Client),
		Unregister: make(chan *Client),
		stop:       make(chan struct{}),
		done:       make(chan struct{}),
	}
}

// Run 运行 Hub,直到调用 Stop
func (h *Hub) Run() {
	defer close(h.done)
	for {
		select {
		case client := <-h.Register:
			h.mu.Lock()
			if h.clients[client.UserID] == nil {
				h.clients[client.UserID] = make(map[*Client]struct{})
			}
			h.clients[client.UserID][client] = struct{}{}
			h.mu.Unlock()

		case client := <-h.Unregister:
			h.mu.Lock()
			h.remove(client)
			h.mu.Unlock()

		case <-h.stop:
			h.mu.Lock()
			for _, set := range h.clients {
				for client := range set {
					h.remove(client)
				}
			}
			h.mu.Unlock()
			return
		}
	}
}

// Stop 停止 Hub 并关闭所有连接
func (h *Hub) Stop() {
	close(h.stop)
	<-h.done
}

// unregister 注销客户端,Hub 已停止时直接返回
func (h *Hub) unregister(client *Client) {
	select {
	case h.Unregister <- client:
	case <-h.done:
	}
}

// remove 移除客户端,调用方需持有写锁
func (h *Hub) remove(client *Client) {
	set, ok := h.clients[client.UserID]
	if !ok {
		return
	}
	if _, ok := set[client]; !ok {
		return
	}
	delete(set, client)
	close(client.Send)
	if len(set) == 0 {
		delete(h.clients, client.UserID)
	}
}

// SendToUser 向用户的所有连接推送消息,返回送达的连接数
// 发送队列已满的连接会被断开
func (h *Hub) SendToUser(userID string, msg Message) (int, error) {
	payload, err := json.Marshal(msg)
	if err != nil {
		return 0, fmt.Errorf("failed to encode websocket message: %w", err)
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	delivered := 0
	for client := range h.clients[userID] {
		select {
		case client.Send <- payload:
			delivered++
		default:
			h.remove(client)
		}
	}
	return delivered, nil
}

// GetClientCount 获取客户端数量
func (h *Hub) GetClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, set := range h.clients {
		count += len(set)
	}
	return count
}

// IsOnline 判断用户是否有在线连接
func (h *Hub) IsOnline(userID string) bool {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return len(h.clients[userID]) > 0
}
