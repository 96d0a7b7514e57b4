// Package websocket 管理已登入使用者的 WebSocket 連接，並依使用者 ID 投遞消息。
package websocket

import (
	"context"
	"net/http"
	"sync"

	"placement_dashboard/pkg/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// 開發用的後端，允許所有來源
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
}

// Handler 處理客戶端送來的一則消息
type Handler func(c *Client, message []byte)

type delivery struct {
	userID  string
	message []byte
}

// Manager 管理 WebSocket 連接。同一使用者可以有多條連接。
type Manager struct {
	clients map[string]map[*Client]bool

	deliver    chan delivery
	register   chan *Client
	unregister chan *Client
	stopped    chan struct{}

	handler Handler
	log     logger.Logger

	// 互斥鎖，保護 clients
	mutex sync.Mutex
}

// NewManager 創建一個新的管理器
func NewManager(handler Handler, log logger.Logger) *Manager {
	if log == nil {
		log = logger.NewNop()
	}
	return &Manager{
		clients:    make(map[string]map[*Client]bool),
		deliver:    make(chan delivery, 64),
		register:   make(chan *Client),
		unregister: make(chan *Client),
		stopped:    make(chan struct{}),
		handler:    handler,
		log:        log,
	}
}

// Stopped 回報 Start 是否已經結束
func (m *Manager) Stopped() bool {
	select {
	case <-m.stopped:
		return true
	default:
		return false
	}
}

// Start 啟動管理器，直到 ctx 取消
func (m *Manager) Start(ctx context.Context) {
	m.log.Info("websocket manager started")
	defer close(m.stopped)

	for {
		select {
		case <-ctx.Done():
			// 上下文取消，關閉所有連接
			m.mutex.Lock()
			for userID, set := range m.clients {
				for client := range set {
					close(client.send)
				}
				delete(m.clients, userID)
			}
			m.mutex.Unlock()
			m.log.Info("websocket manager stopped")
			return

		case client := <-m.register:
			m.mutex.Lock()
			if m.clients[client.UserID] == nil {
				m.clients[client.UserID] = make(map[*Client]bool)
			}
			m.clients[client.UserID][client] = true
			m.mutex.Unlock()
			m.log.Debug("websocket client connected", zap.String("user", client.UserID))

		case client := <-m.unregister:
			m.mutex.Lock()
			m.remove(client)
			m.mutex.Unlock()
			m.log.Debug("websocket client disconnected", zap.String("user", client.UserID))

		case d := <-m.deliver:
			m.mutex.Lock()
			for client := range m.clients[d.userID] {
				select {
				case client.send <- d.message:
				default:
					m.remove(client)
				}
			}
			m.mutex.Unlock()
		}
	}
}

// remove 需持有 mutex
func (m *Manager) remove(client *Client) {
	set, ok := m.clients[client.UserID]
	if !ok || !set[client] {
		return
	}
	delete(set, client)
	close(client.send)
	if len(set) == 0 {
		delete(m.clients, client.UserID)
	}
}

// Connected 使用者是否有任何連接
func (m *Manager) Connected(userID string) bool {
	m.mutex.Lock()
	defer m.mutex.Unlock()
	return len(m.clients[userID]) > 0
}

// SendTo 投遞消息給使用者的所有連接
func (m *Manager) SendTo(userID string, message []byte) {
	select {
	case m.deliver <- delivery{userID: userID, message: message}:
	case <-m.stopped:
	}
}

// Serve 升級連接並啟動讀寫協程。userID 由呼叫端驗證 token 後提供。
func (m *Manager) Serve(w http.ResponseWriter, r *http.Request, userID string) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		m.log.Warn("websocket upgrade failed", zap.Error(err))
		return
	}

	client := newClient(m, conn, userID)
	select {
	case m.register <- client:
	case <-m.stopped:
		conn.Close()
		return
	}

	// 啟動客戶端的讀寫協程
	go client.writePump()
	go client.readPump()
}
