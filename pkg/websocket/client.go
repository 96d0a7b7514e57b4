package websocket

import (
	"time"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// 向客戶端寫入消息的等待時間
	writeWait = 10 * time.Second

	// 讀取下一個 pong 消息的等待時間
	pongWait = 60 * time.Second

	// 發送 ping 消息的頻率
	pingPeriod = (pongWait * 9) / 10

	// 最大消息大小
	maxMessageSize = 64 * 1024
)

// Client 是一條已登入使用者的 WebSocket 連接
type Client struct {
	// 使用者 ID
	UserID string

	conn *websocket.Conn

	// 發送消息的緩衝通道
	send chan []byte

	manager *Manager
}

func newClient(manager *Manager, conn *websocket.Conn, userID string) *Client {
	return &Client{
		UserID:  userID,
		conn:    conn,
		send:    make(chan []byte, 256),
		manager: manager,
	}
}

// Reply 只回覆給這條連接，緩衝已滿時丟棄
func (c *Client) Reply(message []byte) {
	c.manager.mutex.Lock()
	defer c.manager.mutex.Unlock()
	if _, ok := c.manager.clients[c.UserID][c]; !ok {
		return
	}
	select {
	case c.send <- message:
	default:
		c.manager.log.Warn("websocket send buffer full", zap.String("user", c.UserID))
	}
}

// readPump 從 WebSocket 連接中讀取消息並交給 Manager 的 handler
func (c *Client) readPump() {
	defer func() {
		select {
		case c.manager.unregister <- c:
		case <-c.manager.stopped:
		}
		c.conn.Close()
	}()

	c.conn.SetReadLimit(maxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(pongWait))
		return nil
	})

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				c.manager.log.Warn("websocket read failed", zap.String("user", c.UserID), zap.Error(err))
			}
			break
		}
		if c.manager.handler != nil {
			c.manager.handler(c, message)
		}
	}
}

// writePump 將消息寫入 WebSocket 連接
func (c *Client) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		c.conn.Close()
	}()

	for {
		select {
		case message, ok := <-c.send:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if !ok {
				// 管道關閉
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}

			// 每則消息是一個獨立的 JSON 訊框，不合併
			if err := c.conn.WriteMessage(websocket.TextMessage, message); err != nil {
				return
			}
		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}
		}
	}
}
