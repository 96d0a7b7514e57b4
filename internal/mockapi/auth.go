package mockapi

import (
	"errors"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	"placement_dashboard/internal/auth"
	"placement_dashboard/internal/model"
	"placement_dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/golang-jwt/jwt/v5"
)

const claimsKey = "claims"

// User 是可以登入的帳號
type User struct {
	ID     int64
	Name   string
	Email  string
	Role   model.Role
	Avatar string
	hash   string
}

// Subject 是 token 的 sub，也是聊天的聯絡人 ID
func (u User) Subject() string { return strconv.FormatInt(u.ID, 10) }

// Accounts 保存帳號與密碼雜湊
type Accounts struct {
	mu     sync.RWMutex
	users  map[string]*User
	nextID int64
}

func NewAccounts() *Accounts {
	return &Accounts{users: make(map[string]*User)}
}

// Add 以明碼密碼新增帳號
func (a *Accounts) Add(name, email, password string, role model.Role) (User, error) {
	hash, err := utils.HashPassword(password)
	if err != nil {
		return User{}, err
	}
	a.mu.Lock()
	defer a.mu.Unlock()
	a.nextID++
	u := &User{ID: a.nextID, Name: name, Email: strings.ToLower(email), Role: role, hash: hash}
	a.users[u.Email] = u
	return *u, nil
}

// Authenticate 檢查帳號密碼
func (a *Accounts) Authenticate(email, password string) (User, bool) {
	a.mu.RLock()
	u, ok := a.users[strings.ToLower(strings.TrimSpace(email))]
	a.mu.RUnlock()
	if !ok || !utils.CheckPassword(password, u.hash) {
		return User{}, false
	}
	return *u, true
}

// BySubject 依 token 的 sub 找帳號
func (a *Accounts) BySubject(sub string) (User, bool) {
	a.mu.RLock()
	defer a.mu.RUnlock()
	for _, u := range a.users {
		if u.Subject() == sub {
			return *u, true
		}
	}
	return User{}, false
}

// All 回傳所有帳號，依 ID 排序
func (a *Accounts) All() []User {
	a.mu.RLock()
	defer a.mu.RUnlock()
	out := make([]User, 0, len(a.users))
	for _, u := range a.users {
		out = append(out, *u)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out
}

type authHandler struct {
	accounts *Accounts
	secret   []byte
	ttl      time.Duration
	now      func() time.Time
}

func (h *authHandler) login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		var verrs validator.ValidationErrors
		if errors.As(err, &verrs) {
			utils.ValidationFailed(c, utils.Messages(utils.GetValidator().Validate(req)))
			return
		}
		utils.Error(c, http.StatusBadRequest, "Invalid JSON: "+err.Error())
		return
	}

	user, ok := h.accounts.Authenticate(req.Email, req.Password)
	if !ok {
		c.JSON(http.StatusBadRequest, utils.ErrorResponse{
			StatusCode: http.StatusBadRequest,
			Message:    "Invalid email or password",
			Errors:     map[string][]string{"non_field_errors": {"Invalid email or password"}},
		})
		return
	}

	now := h.now()
	token, err := auth.Sign(h.secret, auth.Claims{
		Role:  user.Role,
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.Subject(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(h.ttl)),
		},
	})
	if err != nil {
		utils.ServerError(c, err)
		return
	}
	utils.Success(c, "Login successful", model.LoginResponse{Token: token, Role: user.Role})
}

// bearer 驗證 Authorization 標頭。websocket 無法自訂標頭時改用 token 查詢參數。
func bearer(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := ""
		if h := c.GetHeader("Authorization"); h != "" {
			parts := strings.SplitN(h, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				utils.Unauthorized(c)
				return
			}
			token = strings.TrimSpace(parts[1])
		} else {
			token = c.Query("token")
		}
		if token == "" {
			utils.Unauthorized(c)
			return
		}

		claims, err := auth.Verify(secret, token)
		if err != nil {
			utils.Unauthorized(c)
			return
		}
		c.Set(claimsKey, claims)
		c.Next()
	}
}

func claimsOf(c *gin.Context) *auth.Claims {
	v, _ := c.Get(claimsKey)
	claims, _ := v.(*auth.Claims)
	return claims
}

// manage 只允許可以管理該實體的角色變更資料
func manage(kind model.Kind) gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := claimsOf(c)
		if claims == nil || !auth.CanManage(claims.Role, kind) {
			c.AbortWithStatusJSON(http.StatusForbidden, utils.ErrorResponse{
				StatusCode: http.StatusForbidden,
				Message:    "You do not have permission to perform this action",
			})
			return
		}
		c.Next()
	}
}
