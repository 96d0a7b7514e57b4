package chat

import (
	"context"
	"encoding/json"
	"fmt"
	"net/url"

	"placement_dashboard/pkg/httpClient"
)

const (
	// ContactsPath 是聯絡人清單端點
	ContactsPath = "/api/v1/chat/contacts/"
	// FeedPath 是即時訊息的 websocket 端點
	FeedPath = "/ws/chat/"
)

// MessagesPath 回傳對話歷史的端點
func MessagesPath(contactID string) string {
	return "/api/v1/chat/" + url.PathEscape(contactID) + "/messages/"
}

// History 透過 REST 端點讀取聯絡人與歷史訊息
type History struct {
	client httpClient.HTTPClient
}

func NewHistory(client httpClient.HTTPClient) *History {
	return &History{client: client}
}

// Contacts 讀取聯絡人清單
func (h *History) Contacts(ctx context.Context) ([]Contact, error) {
	var out []Contact
	if err := h.get(ctx, ContactsPath, &out); err != nil {
		return nil, fmt.Errorf("list contacts: %w", err)
	}
	return out, nil
}

// Messages 讀取與聯絡人的歷史訊息
func (h *History) Messages(ctx context.Context, contactID string) ([]Message, error) {
	var out []Message
	if err := h.get(ctx, MessagesPath(contactID), &out); err != nil {
		return nil, fmt.Errorf("list messages with %s: %w", contactID, err)
	}
	return out, nil
}

// Open 讀取歷史訊息放入 book，再切換到該對話
func (h *History) Open(ctx context.Context, book *Book, contactID string) error {
	msgs, err := h.Messages(ctx, contactID)
	if err != nil {
		return err
	}
	book.Load(contactID, msgs)
	return book.Open(contactID)
}

func (h *History) get(ctx context.Context, path string, out any) error {
	var env httpClient.Envelope
	if err := h.client.Get(ctx, path, nil, &env); err != nil {
		return err
	}
	if len(env.Data) == 0 {
		return nil
	}
	if err := json.Unmarshal(env.Data, out); err != nil {
		return fmt.Errorf("decode %s: %w", path, err)
	}
	return nil
}
