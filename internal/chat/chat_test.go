package chat

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"placement_dashboard/pkg/httpClient"

	"github.com/gorilla/websocket"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var t0 = time.Date(2026, 3, 1, 9, 0, 0, 0, time.UTC)

func newBook() *Book {
	return NewBook("me", []Contact{
		{ID: "acme", Name: "Acme Corp", UpdatedAt: t0},
		{ID: "uni", Name: "City University", UpdatedAt: t0.Add(time.Minute)},
		{ID: "bob", Name: "Bob", UpdatedAt: t0.Add(-time.Minute)},
	})
}

func TestDetectAttachment(t *testing.T) {
	cases := map[string]AttachmentKind{
		"":                                       AttachmentNone,
		"https://cdn.example.com/a/photo.JPG":    AttachmentImage,
		"https://cdn.example.com/a/p.png?sig=1":  AttachmentImage,
		"/media/clip.mp4":                        AttachmentVideo,
		"https://cdn.example.com/resume.pdf":     AttachmentDocument,
		"https://cdn.example.com/download?id=42": AttachmentDocument,
	}
	for in, want := range cases {
		assert.Equal(t, want, DetectAttachment(in), in)
	}
}

func TestMessagePreview(t *testing.T) {
	assert.Equal(t, "hello", Message{Text: " hello "}.Preview())
	assert.Equal(t, "Image", Message{Attachment: "x.webp"}.Preview())
	assert.Equal(t, "Document", Message{Attachment: "x.docx"}.Preview())
	assert.Equal(t, "", Message{}.Preview())
}

func TestContactsOrderAndSearch(t *testing.T) {
	b := newBook()

	all := b.Contacts("")
	require.Len(t, all, 3)
	assert.Equal(t, []string{"uni", "acme", "bob"}, []string{all[0].ID, all[1].ID, all[2].ID})

	found := b.Contacts("  corp ")
	require.Len(t, found, 1)
	assert.Equal(t, "acme", found[0].ID)
	assert.Empty(t, b.Contacts("nobody"))
}

func TestOpenSwitchesActive(t *testing.T) {
	b := newBook()
	_, ok := b.Active()
	assert.False(t, ok)

	assert.ErrorIs(t, b.Open("ghost"), ErrUnknownContact)

	b.Receive(Message{ID: 1, ConversationID: "bob", SenderID: "bob", Text: "hi", SentAt: t0})
	idx := func() Contact {
		for _, c := range b.Contacts("") {
			if c.ID == "bob" {
				return c
			}
		}
		return Contact{}
	}
	assert.Equal(t, 1, idx().Unread)

	require.NoError(t, b.Open("bob"))
	active, ok := b.Active()
	require.True(t, ok)
	assert.Equal(t, "bob", active.ID)
	assert.Equal(t, 0, idx().Unread)

	b.Receive(Message{ID: 2, ConversationID: "bob", SenderID: "bob", Text: "again", SentAt: t0.Add(time.Second)})
	assert.Equal(t, 0, idx().Unread)
}

func TestMessagesOrderedAndDeduplicated(t *testing.T) {
	b := newBook()
	b.Load("acme", []Message{
		{ID: 30, Text: "third", SentAt: t0.Add(2 * time.Minute)},
		{ID: 10, Text: "first", SentAt: t0},
	})
	assert.True(t, b.Receive(Message{ID: 20, ConversationID: "acme", SenderID: "acme", Text: "second", SentAt: t0.Add(time.Minute)}))
	assert.False(t, b.Receive(Message{ID: 20, ConversationID: "acme", SenderID: "acme", Text: "second", SentAt: t0.Add(time.Minute)}))
	b.Receive(Message{ID: 5, ConversationID: "acme", SenderID: "me", Text: "tie", SentAt: t0})

	msgs := b.Messages("acme")
	var texts []string
	for _, m := range msgs {
		texts = append(texts, m.Text)
	}
	assert.Equal(t, []string{"tie", "first", "second", "third"}, texts)
	assert.Equal(t, "acme", msgs[1].ConversationID)
}

func TestReceiveUpdatesContact(t *testing.T) {
	b := newBook()
	b.Receive(Message{ID: 1, ConversationID: "bob", SenderID: "bob", Attachment: "cv.pdf", SentAt: t0.Add(time.Hour)})
	b.Receive(Message{ID: 2, ConversationID: "new", SenderID: "new", Text: "hello", SentAt: t0})

	contacts := b.Contacts("")
	assert.Equal(t, "bob", contacts[0].ID)
	assert.Equal(t, "Document", contacts[0].LastMessage)

	var added *Contact
	for i := range contacts {
		if contacts[i].ID == "new" {
			added = &contacts[i]
		}
	}
	require.NotNil(t, added)
	assert.Equal(t, 1, added.Unread)
}

func TestDraft(t *testing.T) {
	b := newBook()
	_, err := b.Draft("hi", "", t0)
	assert.ErrorIs(t, err, ErrNoActive)

	require.NoError(t, b.Open("acme"))
	_, err = b.Draft("   ", "", t0)
	assert.ErrorIs(t, err, ErrEmptyMessage)

	m, err := b.Draft(" hi ", "", t0)
	require.NoError(t, err)
	assert.Equal(t, Message{ConversationID: "acme", SenderID: "me", Text: "hi", SentAt: t0}, m)
}

func TestHistoryOpen(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case ContactsPath:
			_, _ = w.Write([]byte(`{"statusCode":200,"data":[{"id":"acme","name":"Acme Corp"}]}`))
		case MessagesPath("acme"):
			_, _ = w.Write([]byte(`{"statusCode":200,"data":[{"id":2,"sender":"acme","text":"b","sent_at":"2026-03-01T09:01:00Z"},{"id":1,"sender":"me","text":"a","sent_at":"2026-03-01T09:00:00Z"}]}`))
		default:
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"statusCode":404,"message":"Not found"}`))
		}
	}))
	defer srv.Close()

	client, err := httpClient.NewClient(srv.URL)
	require.NoError(t, err)
	h := NewHistory(client)
	ctx := context.Background()

	contacts, err := h.Contacts(ctx)
	require.NoError(t, err)
	b := NewBook("me", contacts)

	require.NoError(t, h.Open(ctx, b, "acme"))
	msgs := b.Messages("acme")
	require.Len(t, msgs, 2)
	assert.Equal(t, "a", msgs[0].Text)
	assert.Equal(t, "acme", msgs[0].ConversationID)

	err = h.Open(ctx, b, "ghost")
	assert.ErrorIs(t, err, httpClient.ErrNotFound)
}

func TestFeedRoundTrip(t *testing.T) {
	upgrader := websocket.Upgrader{}
	gotAuth := make(chan string, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth <- r.Header.Get("Authorization")
		conn, err := upgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		defer conn.Close()
		for {
			var frame Frame
			if err := conn.ReadJSON(&frame); err != nil {
				return
			}
			frame.Message.ID = 99
			frame.Message.SentAt = t0
			if err := conn.WriteJSON(frame); err != nil {
				return
			}
		}
	}))
	defer srv.Close()

	b := newBook()
	require.NoError(t, b.Open("acme"))
	received := make(chan Message, 1)

	wsURL := "ws" + strings.TrimPrefix(srv.URL, "http")
	tokens := httpClient.TokenFunc(func(context.Context) (string, error) { return "tok", nil })
	feed, err := Dial(context.Background(), wsURL, tokens, b, OnReceive(func(m Message) { received <- m }))
	require.NoError(t, err)
	defer feed.Close()
	assert.Equal(t, "Bearer tok", <-gotAuth)

	draft, err := b.Draft("hello", "", time.Now())
	require.NoError(t, err)
	require.NoError(t, feed.Send(context.Background(), draft))

	select {
	case m := <-received:
		assert.Equal(t, int64(99), m.ID)
		assert.Equal(t, "hello", m.Text)
	case <-time.After(2 * time.Second):
		t.Fatal("no message received")
	}
	require.Len(t, b.Messages("acme"), 1)

	require.NoError(t, feed.Close())
	assert.ErrorIs(t, feed.Send(context.Background(), draft), ErrFeedClosed)
}

func TestFrameJSON(t *testing.T) {
	raw, err := json.Marshal(Frame{Type: FrameError, Error: "bad"})
	require.NoError(t, err)
	assert.JSONEq(t, `{"type":"error","error":"bad"}`, string(raw))
}
