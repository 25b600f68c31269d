package ws

import (
	"encoding/json"
	"sync"

	"go.uber.org/zap"
)

// MessageType WebSocket 消息类型
const (
	MsgTypeNewClaxon = "new_claxon" // 新消息通知
	MsgTypeError     = "error"      // 错误消息
)

// Message WebSocket 消息结构
type Message struct {
	Type string      `json:"type"`
	Data interface{} `json:"data"`
}

// Hub WebSocket 连接管理中心，按用户 id 分组
type Hub struct {
	logger     *zap.Logger
	clients    map[string]map[*Client]bool
	register   chan *Client
	unregister chan *Client
	mu         sync.RWMutex
}

// NewHub 创建 Hub
func NewHub(logger *zap.Logger) *Hub {
	return &Hub{
		logger:     logger,
		clients:    make(map[string]map[*Client]bool),
		register:   make(chan *Client),
		unregister: make(chan *Client),
	}
}

// Run 运行 Hub
func (h *Hub) Run() {
	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			if h.clients[client.userID] == nil {
				h.clients[client.userID] = make(map[*Client]bool)
			}
			h.clients[client.userID][client] = true
			h.mu.Unlock()
			h.logger.Info("WebSocket client connected",
				zap.String("user_id", client.userID),
				zap.Int("total_clients", h.ClientCount()),
			)

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.userID]; ok {
				if _, ok := clients[client]; ok {
					delete(clients, client)
					close(client.send)
					if len(clients) == 0 {
						delete(h.clients, client.userID)
					}
				}
			}
			h.mu.Unlock()
			h.logger.Info("WebSocket client disconnected",
				zap.String("user_id", client.userID),
				zap.Int("total_clients", h.ClientCount()),
			)
		}
	}
}

// NotifyUser 向指定用户的全部连接推送消息
func (h *Hub) NotifyUser(userID, msgType string, data interface{}) {
	payload, err := json.Marshal(Message{Type: msgType, Data: data})
	if err != nil {
		h.logger.Error("Failed to marshal ws message", zap.Error(err))
		return
	}

	h.mu.Lock()
	defer h.mu.Unlock()

	for client := range h.clients[userID] {
		select {
		case client.send <- payload:
		default:
			// 慢消费者，关闭连接
			close(client.send)
			delete(h.clients[userID], client)
		}
	}
}

// ClientCount 当前连接数
func (h *Hub) ClientCount() int {
	h.mu.RLock()
	defer h.mu.RUnlock()

	count := 0
	for _, clients := range h.clients {
		count += len(clients)
	}
	return count
}
