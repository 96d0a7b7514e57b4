package chat

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"sync"
	"time"

	"placement_dashboard/pkg/httpClient"
	"placement_dashboard/pkg/logger"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"
)

const (
	// 寫入一個訊息的等待時間
	writeWait = 10 * time.Second

	// 讀取下一個 pong 的等待時間
	pongWait = 60 * time.Second

	// 發送 ping 的頻率，必須小於 pongWait
	pingPeriod = (pongWait * 9) / 10

	// 單一訊息的大小上限
	maxMessageSize = 64 * 1024

	sendBuffer = 64
)

// ErrFeedClosed 表示 Feed 已關閉
var ErrFeedClosed = errors.New("chat feed closed")

// Frame 類型
const (
	FrameMessage = "message"
	FrameError   = "error"
)

// Frame 是 websocket 上傳送的 JSON 訊框
type Frame struct {
	Type    string   `json:"type"`
	Message *Message `json:"message,omitempty"`
	Error   string   `json:"error,omitempty"`
}

// Feed 維持一條 websocket 連線，收到的訊息交給 Book
type Feed struct {
	conn   *websocket.Conn
	book   *Book
	log    logger.Logger
	send   chan Frame
	done   chan struct{}
	once   sync.Once
	wg     sync.WaitGroup
	onRecv func(Message)
}

// FeedOption 設置 Feed
type FeedOption func(*Feed)

// WithFeedLogger 設置日誌記錄器
func WithFeedLogger(l logger.Logger) FeedOption {
	return func(f *Feed) {
		if l != nil {
			f.log = l
		}
	}
}

// OnReceive 在新訊息放入 Book 之後呼叫
func OnReceive(fn func(Message)) FeedOption {
	return func(f *Feed) {
		f.onRecv = fn
	}
}

// Dial 連線到 wsURL。tokens 提供 Bearer token，可為 nil。
func Dial(ctx context.Context, wsURL string, tokens httpClient.TokenSource, book *Book, opts ...FeedOption) (*Feed, error) {
	header := http.Header{}
	if tokens != nil {
		token, err := tokens.Token(ctx)
		if err != nil {
			return nil, fmt.Errorf("load token: %w", err)
		}
		if token != "" {
			header.Set("Authorization", "Bearer "+token)
		}
	}

	conn, resp, err := websocket.DefaultDialer.DialContext(ctx, wsURL, header)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusUnauthorized {
			return nil, fmt.Errorf("dial %s: %w", wsURL, httpClient.ErrUnauthorized)
		}
		return nil, fmt.Errorf("dial %s: %w", wsURL, err)
	}

	f := &Feed{
		conn: conn,
		book: book,
		log:  logger.NewNop(),
		send: make(chan Frame, sendBuffer),
		done: make(chan struct{}),
	}
	for _, opt := range opts {
		opt(f)
	}

	f.wg.Add(2)
	go f.readPump()
	go f.writePump()
	return f, nil
}

// Send 送出訊息，伺服器回傳的副本會經由 readPump 放入 Book
func (f *Feed) Send(ctx context.Context, m Message) error {
	select {
	case <-f.done:
		return ErrFeedClosed
	default:
	}
	select {
	case f.send <- Frame{Type: FrameMessage, Message: &m}:
		return nil
	case <-f.done:
		return ErrFeedClosed
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Done 在連線結束時關閉
func (f *Feed) Done() <-chan struct{} { return f.done }

// Close 關閉連線並等待讀寫協程結束
func (f *Feed) Close() error {
	f.shutdown()
	f.wg.Wait()
	return nil
}

func (f *Feed) shutdown() {
	f.once.Do(func() {
		close(f.done)
		_ = f.conn.WriteControl(websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait))
		_ = f.conn.Close()
	})
}

// readPump 從連線讀取訊框
func (f *Feed) readPump() {
	defer func() {
		f.shutdown()
		f.wg.Done()
	}()

	f.conn.SetReadLimit(maxMessageSize)
	_ = f.conn.SetReadDeadline(time.Now().Add(pongWait))
	f.conn.SetPongHandler(func(string) error {
		return f.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := f.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure, websocket.CloseAbnormalClosure) {
				f.log.Warn("chat feed read failed", zap.Error(err))
			}
			return
		}

		var frame Frame
		if err := json.Unmarshal(data, &frame); err != nil {
			f.log.Warn("invalid chat frame", zap.Error(err))
			continue
		}
		switch frame.Type {
		case FrameMessage:
			if frame.Message == nil {
				continue
			}
			if f.book.Receive(*frame.Message) && f.onRecv != nil {
				f.onRecv(*frame.Message)
			}
		case FrameError:
			f.log.Warn("chat server error", zap.String("error", frame.Error))
		}
	}
}

// writePump 寫入訊框並定時 ping
func (f *Feed) writePump() {
	ticker := time.NewTicker(pingPeriod)
	defer func() {
		ticker.Stop()
		f.wg.Done()
	}()

	for {
		select {
		case frame := <-f.send:
			_ = f.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := f.conn.WriteJSON(frame); err != nil {
				f.log.Warn("chat feed write failed", zap.Error(err))
				f.shutdown()
				return
			}
		case <-ticker.C:
			_ = f.conn.SetWriteDeadline(time.Now().Add(writeWait))
			if err := f.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				f.shutdown()
				return
			}
		case <-f.done:
			return
		}
	}
}
