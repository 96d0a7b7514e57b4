package service

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"placement_dashboard/internal/auth"
	"placement_dashboard/internal/model"
	"placement_dashboard/pkg/httpClient"
)

// LoginPath 是登入端點
const LoginPath = "/api/v1/auth/login/"

// AuthService 處理登入登出
type AuthService struct {
	client   httpClient.HTTPClient
	provider *auth.Provider
}

func NewAuthService(client httpClient.HTTPClient, provider *auth.Provider) *AuthService {
	return &AuthService{client: client, provider: provider}
}

// Login 以帳號密碼登入並保存 token
func (s *AuthService) Login(ctx context.Context, email, password string) (auth.Session, error) {
	var env httpClient.Envelope
	req := &httpClient.Request{
		Method:    http.MethodPost,
		Path:      LoginPath,
		Body:      map[string]any{"email": email, "password": password},
		Anonymous: true,
	}
	if err := s.client.Do(ctx, req, &env); err != nil {
		return auth.Session{}, fmt.Errorf("login: %w", err)
	}

	var data model.LoginResponse
	if err := json.Unmarshal(env.Data, &data); err != nil {
		return auth.Session{}, fmt.Errorf("decode login response: %w", err)
	}
	return s.provider.Login(ctx, data.Token)
}

// Logout 清除本地 token
func (s *AuthService) Logout(ctx context.Context) error {
	return s.provider.Logout(ctx)
}
