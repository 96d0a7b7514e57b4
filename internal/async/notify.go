package async

import (
	"errors"
	"strings"
	"sync"
)

// Notifier 顯示給使用者的提示訊息（toast）
type Notifier interface {
	Success(msg string)
	Error(msg string)
}

// userMessager 由帶有伺服器訊息的錯誤實作
type userMessager interface {
	UserMessage() string
}

// Message 取出錯誤中伺服器提供的訊息，沒有時使用 fallback
func Message(err error, fallback string) string {
	var um userMessager
	if errors.As(err, &um) {
		if msg := strings.TrimSpace(um.UserMessage()); msg != "" {
			return msg
		}
	}
	return fallback
}

// Toast 是一則提示
type Toast struct {
	Level   string
	Message string
}

// Recorder 把提示保留在記憶體中，CLI 與測試使用
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *Recorder) Success(msg string) {
	r.push("success", msg)
}

func (r *Recorder) Error(msg string) {
	r.push("error", msg)
}

func (r *Recorder) push(level, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, Toast{Level: level, Message: msg})
}

// Drain 取出並清空所有提示
func (r *Recorder) Drain() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := r.toasts
	r.toasts = nil
	return out
}
