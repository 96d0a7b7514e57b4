package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"placement_dashboard/internal/model"
)

// Provider 是注入給請求層的登入狀態來源，實作 httpClient.TokenSource
type Provider struct {
	store Store
	now   func() time.Time
}

// NewProvider 創建 Provider
func NewProvider(store Store) *Provider {
	return &Provider{store: store, now: time.Now}
}

// Session 讀取並解析目前的 session，沒有或過期時回傳 ErrUnauthenticated
func (p *Provider) Session(ctx context.Context) (Session, error) {
	token, err := p.store.Load(ctx)
	if err != nil {
		if errors.Is(err, ErrNoToken) {
			return Session{}, ErrUnauthenticated
		}
		return Session{}, err
	}

	s, err := ParseSession(token)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %w", ErrUnauthenticated, err)
	}
	if s.Expired(p.now()) {
		return Session{}, fmt.Errorf("%w: token expired at %s", ErrUnauthenticated, s.ExpiresAt.Format(time.RFC3339))
	}
	return s, nil
}

// Token 回傳 Bearer token
func (p *Provider) Token(ctx context.Context) (string, error) {
	s, err := p.Session(ctx)
	if err != nil {
		return "", err
	}
	return s.Token, nil
}

// Role 回傳目前登入者的角色
func (p *Provider) Role(ctx context.Context) (model.Role, error) {
	s, err := p.Session(ctx)
	if err != nil {
		return "", err
	}
	return s.Role, nil
}

// Login 保存登入後取得的 token
func (p *Provider) Login(ctx context.Context, token string) (Session, error) {
	s, err := ParseSession(token)
	if err != nil {
		return Session{}, err
	}
	var ttl time.Duration
	if !s.ExpiresAt.IsZero() {
		ttl = s.ExpiresAt.Sub(p.now())
		if ttl <= 0 {
			return Session{}, fmt.Errorf("%w: token already expired", ErrUnauthenticated)
		}
	}
	if err := p.store.Save(ctx, token, ttl); err != nil {
		return Session{}, err
	}
	return s, nil
}

// Logout 清除 token
func (p *Provider) Logout(ctx context.Context) error {
	return p.store.Clear(ctx)
}
