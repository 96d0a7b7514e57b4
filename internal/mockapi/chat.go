package mockapi

import (
	"encoding/json"
	"sync"
	"time"

	"placement_dashboard/internal/chat"
	"placement_dashboard/pkg/logger"
	"placement_dashboard/pkg/utils"
	"placement_dashboard/pkg/websocket"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// chatHub 保存雙方的對話，並把新訊息投遞給兩端的連線
type chatHub struct {
	accounts *Accounts
	ids      *utils.Snowflake
	manager  *websocket.Manager
	log      logger.Logger
	now      func() time.Time

	mu      sync.RWMutex
	history map[string][]chat.Message
}

func newChatHub(accounts *Accounts, ids *utils.Snowflake, log logger.Logger) *chatHub {
	h := &chatHub{
		accounts: accounts,
		ids:      ids,
		log:      log,
		now:      time.Now,
		history:  make(map[string][]chat.Message),
	}
	h.manager = websocket.NewManager(h.handle, log)
	return h
}

// pair 是兩個使用者共用的對話鍵
func pair(a, b string) string {
	if a > b {
		a, b = b, a
	}
	return a + ":" + b
}

// view 把儲存的訊息轉為一方看到的訊息，ConversationID 是對方
func view(m chat.Message, other string) chat.Message {
	m.ConversationID = other
	return m
}

func (h *chatHub) contacts(c *gin.Context) {
	self := claimsOf(c).Subject

	h.mu.RLock()
	defer h.mu.RUnlock()
	var out []chat.Contact
	for _, u := range h.accounts.All() {
		if u.Subject() == self {
			continue
		}
		contact := chat.Contact{ID: u.Subject(), Name: u.Name, Avatar: u.Avatar, Role: string(u.Role)}
		if msgs := h.history[pair(self, u.Subject())]; len(msgs) > 0 {
			last := msgs[len(msgs)-1]
			contact.LastMessage = last.Preview()
			contact.UpdatedAt = last.SentAt
		}
		out = append(out, contact)
	}
	utils.Success(c, "", out)
}

func (h *chatHub) messages(c *gin.Context) {
	self := claimsOf(c).Subject
	other := c.Param("contact")
	if _, ok := h.accounts.BySubject(other); !ok {
		utils.NotFound(c)
		return
	}

	h.mu.RLock()
	stored := h.history[pair(self, other)]
	out := make([]chat.Message, len(stored))
	for i, m := range stored {
		out[i] = view(m, other)
	}
	h.mu.RUnlock()
	utils.Success(c, "", out)
}

func (h *chatHub) serve(c *gin.Context) {
	if _, ok := h.accounts.BySubject(claimsOf(c).Subject); !ok {
		utils.Unauthorized(c)
		return
	}
	h.manager.Serve(c.Writer, c.Request, claimsOf(c).Subject)
}

// handle 處理客戶端送出的訊框：配發 ID 與時間後投遞給雙方
func (h *chatHub) handle(client *websocket.Client, data []byte) {
	var frame chat.Frame
	if err := json.Unmarshal(data, &frame); err != nil || frame.Type != chat.FrameMessage || frame.Message == nil {
		h.reply(client, chat.Frame{Type: chat.FrameError, Error: "invalid frame"})
		return
	}

	m := *frame.Message
	from, to := client.UserID, m.ConversationID
	if _, ok := h.accounts.BySubject(to); !ok || to == from {
		h.reply(client, chat.Frame{Type: chat.FrameError, Error: "unknown contact " + to})
		return
	}
	if m.Text == "" && m.Attachment == "" {
		h.reply(client, chat.Frame{Type: chat.FrameError, Error: "message is empty"})
		return
	}

	id, err := h.ids.NextID()
	if err != nil {
		h.log.Error("generate message id failed", zap.Error(err))
		h.reply(client, chat.Frame{Type: chat.FrameError, Error: "try again"})
		return
	}
	m.ID = id
	m.SenderID = from
	m.SentAt = h.now().UTC()

	h.mu.Lock()
	key := pair(from, to)
	h.history[key] = append(h.history[key], m)
	h.mu.Unlock()

	h.deliver(from, view(m, to))
	h.deliver(to, view(m, from))
}

func (h *chatHub) deliver(userID string, m chat.Message) {
	raw, err := json.Marshal(chat.Frame{Type: chat.FrameMessage, Message: &m})
	if err != nil {
		h.log.Error("encode chat frame failed", zap.Error(err))
		return
	}
	h.manager.SendTo(userID, raw)
}

func (h *chatHub) reply(client *websocket.Client, frame chat.Frame) {
	raw, err := json.Marshal(frame)
	if err != nil {
		return
	}
	client.Reply(raw)
}
