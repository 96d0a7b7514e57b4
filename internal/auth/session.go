// Package auth 保存登入 token 並由 token 的 claims 取出角色與到期時間。
package auth

import (
	"errors"
	"fmt"
	"time"

	"placement_dashboard/internal/model"

	"github.com/golang-jwt/jwt/v5"
)

var (
	// ErrUnauthenticated 表示尚未登入、token 已過期或伺服器回應 401
	ErrUnauthenticated = errors.New("auth: not authenticated")
	// ErrInvalidToken 表示 token 無法解析
	ErrInvalidToken = errors.New("auth: invalid token")
	// ErrNoToken 表示儲存區中沒有 token
	ErrNoToken = errors.New("auth: no stored token")
)

// Claims 是 token 的內容，mock 後端簽發時使用同一結構
type Claims struct {
	Role  model.Role `json:"role"`
	Email string     `json:"email,omitempty"`
	jwt.RegisteredClaims
}

// Session 是目前的登入狀態
type Session struct {
	Token     string
	Role      model.Role
	Subject   string
	Email     string
	ExpiresAt time.Time
}

// Expired 判斷 session 在 now 是否已過期，沒有 exp 的 token 不會過期
func (s Session) Expired(now time.Time) bool {
	return !s.ExpiresAt.IsZero() && !now.Before(s.ExpiresAt)
}

// ParseSession 解析 token 的 claims。簽章由後端驗證，這裡不驗證。
func ParseSession(token string) (Session, error) {
	claims := &Claims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	if !claims.Role.Valid() {
		return Session{}, fmt.Errorf("%w: unknown role %q", ErrInvalidToken, claims.Role)
	}

	s := Session{
		Token:   token,
		Role:    claims.Role,
		Subject: claims.Subject,
		Email:   claims.Email,
	}
	if claims.ExpiresAt != nil {
		s.ExpiresAt = claims.ExpiresAt.Time
	}
	return s, nil
}

// Sign 以 HS256 簽發 token
func Sign(secret []byte, claims Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

// Verify 驗證簽章與到期時間並回傳 claims
func Verify(secret []byte, token string) (*Claims, error) {
	claims := &Claims{}
	_, err := jwt.ParseWithClaims(token, claims, func(t *jwt.Token) (interface{}, error) {
		return secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}
