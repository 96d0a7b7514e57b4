package chat

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// Book 保存聯絡人與各對話的訊息，並記錄目前開啟的對話
type Book struct {
	mu       sync.Mutex
	self     string
	contacts []Contact
	messages map[string][]Message
	active   string
	seen     map[int64]bool
}

// NewBook 創建 Book，self 是目前使用者的 ID
func NewBook(self string, contacts []Contact) *Book {
	b := &Book{
		self:     self,
		messages: map[string][]Message{},
		seen:     map[int64]bool{},
	}
	b.SetContacts(contacts)
	return b
}

// SetContacts 取代聯絡人清單，保留已載入的訊息
func (b *Book) SetContacts(contacts []Contact) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.contacts = append([]Contact(nil), contacts...)
	b.sortContacts()
}

// sortContacts 依最後更新時間由新到舊排列
func (b *Book) sortContacts() {
	sort.SliceStable(b.contacts, func(i, j int) bool {
		return b.contacts[i].UpdatedAt.After(b.contacts[j].UpdatedAt)
	})
}

// Contacts 回傳名稱包含 term 的聯絡人，不分大小寫；空字串回傳全部
func (b *Book) Contacts(term string) []Contact {
	b.mu.Lock()
	defer b.mu.Unlock()

	term = strings.ToLower(strings.TrimSpace(term))
	out := make([]Contact, 0, len(b.contacts))
	for _, c := range b.contacts {
		if term == "" || strings.Contains(strings.ToLower(c.Name), term) {
			out = append(out, c)
		}
	}
	return out
}

func (b *Book) indexOf(id string) int {
	for i, c := range b.contacts {
		if c.ID == id {
			return i
		}
	}
	return -1
}

// Open 切換目前的對話並清除未讀數
func (b *Book) Open(contactID string) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	i := b.indexOf(contactID)
	if i < 0 {
		return ErrUnknownContact
	}
	b.active = contactID
	b.contacts[i].Unread = 0
	return nil
}

// Active 回傳目前的聯絡人
func (b *Book) Active() (Contact, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if i := b.indexOf(b.active); i >= 0 {
		return b.contacts[i], true
	}
	return Contact{}, false
}

// Load 放入歷史訊息，重複的 ID 只保留一份
func (b *Book) Load(contactID string, history []Message) {
	b.mu.Lock()
	defer b.mu.Unlock()
	for _, m := range history {
		if m.ConversationID == "" {
			m.ConversationID = contactID
		}
		b.insert(m)
	}
}

// Receive 放入一則新訊息。不是目前對話且不是自己送出的訊息會增加未讀數。
// 回傳 false 表示訊息已存在。
func (b *Book) Receive(m Message) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if !b.insert(m) {
		return false
	}

	i := b.indexOf(m.ConversationID)
	if i < 0 {
		b.contacts = append(b.contacts, Contact{ID: m.ConversationID, Name: m.ConversationID})
		i = len(b.contacts) - 1
	}
	c := &b.contacts[i]
	c.LastMessage = m.Preview()
	if m.SentAt.After(c.UpdatedAt) {
		c.UpdatedAt = m.SentAt
	}
	if m.SenderID != b.self && m.ConversationID != b.active {
		c.Unread++
	}
	b.sortContacts()
	return true
}

// insert 依 SentAt 排序插入，時間相同時依 ID
func (b *Book) insert(m Message) bool {
	if m.ID != 0 {
		if b.seen[m.ID] {
			return false
		}
		b.seen[m.ID] = true
	}

	list := b.messages[m.ConversationID]
	i := sort.Search(len(list), func(i int) bool {
		return before(m, list[i])
	})
	list = append(list, Message{})
	copy(list[i+1:], list[i:])
	list[i] = m
	b.messages[m.ConversationID] = list
	return true
}

func before(a, b Message) bool {
	if !a.SentAt.Equal(b.SentAt) {
		return a.SentAt.Before(b.SentAt)
	}
	return a.ID < b.ID
}

// Messages 回傳對話的訊息，由舊到新
func (b *Book) Messages(contactID string) []Message {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]Message(nil), b.messages[contactID]...)
}

// Draft 為目前的對話建立一則待送出的訊息
func (b *Book) Draft(text, attachment string, now time.Time) (Message, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.active == "" {
		return Message{}, ErrNoActive
	}
	text = strings.TrimSpace(text)
	attachment = strings.TrimSpace(attachment)
	if text == "" && attachment == "" {
		return Message{}, ErrEmptyMessage
	}
	return Message{
		ConversationID: b.active,
		SenderID:       b.self,
		Text:           text,
		Attachment:     attachment,
		SentAt:         now,
	}, nil
}
