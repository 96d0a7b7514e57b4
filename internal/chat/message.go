// Package chat 是聊天頁面的資料模型：聯絡人、目前的對話、附件判斷，
// 以及透過 websocket 接收新訊息的 Feed。
package chat

import (
	"errors"
	"net/url"
	"path"
	"strings"
	"time"
)

var (
	// ErrUnknownContact 表示聯絡人不在清單中
	ErrUnknownContact = errors.New("unknown contact")
	// ErrNoActive 表示尚未選擇對話
	ErrNoActive = errors.New("no active conversation")
	// ErrEmptyMessage 表示沒有文字也沒有附件
	ErrEmptyMessage = errors.New("message is empty")
)

// Contact 是聯絡人清單中的一項
type Contact struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Avatar      string    `json:"avatar"`
	Role        string    `json:"role"`
	LastMessage string    `json:"last_message"`
	UpdatedAt   time.Time `json:"updated_at"`
	Unread      int       `json:"unread"`
}

// Message 是一則聊天訊息。ID 由伺服器以 snowflake 產生，依時間遞增。
type Message struct {
	ID             int64     `json:"id"`
	ConversationID string    `json:"conversation"`
	SenderID       string    `json:"sender"`
	Text           string    `json:"text"`
	Attachment     string    `json:"attachment,omitempty"`
	SentAt         time.Time `json:"sent_at"`
}

// Kind 回傳附件種類
func (m Message) Kind() AttachmentKind {
	return DetectAttachment(m.Attachment)
}

// Preview 是聯絡人清單中顯示的最後一則訊息
func (m Message) Preview() string {
	if text := strings.TrimSpace(m.Text); text != "" {
		return text
	}
	switch m.Kind() {
	case AttachmentImage:
		return "Image"
	case AttachmentVideo:
		return "Video"
	case AttachmentDocument:
		return "Document"
	}
	return ""
}

// AttachmentKind 是附件的種類
type AttachmentKind string

const (
	AttachmentNone     AttachmentKind = ""
	AttachmentImage    AttachmentKind = "image"
	AttachmentVideo    AttachmentKind = "video"
	AttachmentDocument AttachmentKind = "document"
)

var attachmentExt = map[string]AttachmentKind{
	".jpg":  AttachmentImage,
	".jpeg": AttachmentImage,
	".png":  AttachmentImage,
	".gif":  AttachmentImage,
	".webp": AttachmentImage,
	".svg":  AttachmentImage,
	".mp4":  AttachmentVideo,
	".webm": AttachmentVideo,
	".mov":  AttachmentVideo,
	".mkv":  AttachmentVideo,
}

// DetectAttachment 依網址的副檔名判斷附件種類，忽略查詢字串。
// 無法辨識的副檔名視為文件。
func DetectAttachment(raw string) AttachmentKind {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return AttachmentNone
	}
	p := raw
	if u, err := url.Parse(raw); err == nil && u.Path != "" {
		p = u.Path
	}
	ext := strings.ToLower(path.Ext(p))
	if kind, ok := attachmentExt[ext]; ok {
		return kind
	}
	return AttachmentDocument
}
