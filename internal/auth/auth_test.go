package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"placement_dashboard/internal/model"
	redis "placement_dashboard/pkg/redisManager"

	"github.com/alicebob/miniredis/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
)

var testSecret = []byte("test-secret")

func signToken(t *testing.T, role model.Role, exp time.Time) string {
	t.Helper()
	token, err := Sign(testSecret, Claims{
		Role:  role,
		Email: "admin@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   "1",
			ExpiresAt: jwt.NewNumericDate(exp),
		},
	})
	require.NoError(t, err)
	return token
}

func TestParseSession(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	token := signToken(t, model.RoleSuperadmin, exp)

	s, err := ParseSession(token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleSuperadmin, s.Role)
	assert.Equal(t, "1", s.Subject)
	assert.Equal(t, "admin@example.com", s.Email)
	assert.True(t, exp.Equal(s.ExpiresAt))
	assert.False(t, s.Expired(time.Now()))
	assert.True(t, s.Expired(exp))

	_, err = ParseSession("not-a-token")
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = ParseSession(signToken(t, model.Role("guest"), exp))
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerify(t *testing.T) {
	token := signToken(t, model.RoleCompany, time.Now().Add(time.Hour))

	claims, err := Verify(testSecret, token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleCompany, claims.Role)

	_, err = Verify([]byte("other"), token)
	assert.ErrorIs(t, err, ErrInvalidToken)

	expired := signToken(t, model.RoleCompany, time.Now().Add(-time.Minute))
	_, err = Verify(testSecret, expired)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestCanManage(t *testing.T) {
	assert.True(t, CanManage(model.RoleSuperadmin, model.KindPlanTypes))
	assert.True(t, CanManage(model.RoleUniversity, model.KindUniversityStudents))
	assert.False(t, CanManage(model.RoleUniversity, model.KindCities))
	assert.False(t, CanManage(model.RoleStudent, model.KindSkills))
	assert.Empty(t, Manageable(model.RoleStudent))
}

// StoreSuite 對每種 Store 執行相同的測試
type StoreSuite struct {
	suite.Suite
	newStore func() Store
}

func (s *StoreSuite) TestRoundTrip() {
	ctx := context.Background()
	store := s.newStore()

	_, err := store.Load(ctx)
	s.ErrorIs(err, ErrNoToken)

	s.Require().NoError(store.Save(ctx, "abc", time.Hour))
	got, err := store.Load(ctx)
	s.Require().NoError(err)
	s.Equal("abc", got)

	s.Require().NoError(store.Clear(ctx))
	_, err = store.Load(ctx)
	s.ErrorIs(err, ErrNoToken)

	// 重複清除不是錯誤
	s.NoError(store.Clear(ctx))
}

func TestMemoryStore(t *testing.T) {
	suite.Run(t, &StoreSuite{newStore: func() Store { return NewMemoryStore() }})
}

func TestFileStore(t *testing.T) {
	dir := t.TempDir()
	suite.Run(t, &StoreSuite{newStore: func() Store {
		return NewFileStore(filepath.Join(dir, "nested", "token"))
	}})
}

func TestRedisStore(t *testing.T) {
	mr := miniredis.RunT(t)
	manager := redis.NewRedisManager(&redis.RedisConfig{Addr: mr.Addr()})
	t.Cleanup(func() { _ = manager.Close() })

	suite.Run(t, &StoreSuite{newStore: func() Store { return NewRedisStore(manager, "dashboard:token") }})

	store := NewRedisStore(manager, "ttl:token")
	require.NoError(t, store.Save(context.Background(), "abc", time.Minute))
	assert.Equal(t, time.Minute, mr.TTL("ttl:token"))
}

func TestProvider(t *testing.T) {
	ctx := context.Background()
	p := NewProvider(NewMemoryStore())

	_, err := p.Token(ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	token := signToken(t, model.RoleUniversity, time.Now().Add(time.Hour))
	s, err := p.Login(ctx, token)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUniversity, s.Role)

	got, err := p.Token(ctx)
	require.NoError(t, err)
	assert.Equal(t, token, got)

	role, err := p.Role(ctx)
	require.NoError(t, err)
	assert.Equal(t, model.RoleUniversity, role)

	// 時間過了 exp 之後 token 不再提供
	p.now = func() time.Time { return time.Now().Add(2 * time.Hour) }
	_, err = p.Token(ctx)
	assert.ErrorIs(t, err, ErrUnauthenticated)

	require.NoError(t, p.Logout(ctx))
	p.now = time.Now
	_, err = p.Session(ctx)
	assert.True(t, errors.Is(err, ErrUnauthenticated))
}

func TestProviderRejectsExpiredLogin(t *testing.T) {
	p := NewProvider(NewMemoryStore())
	_, err := p.Login(context.Background(), signToken(t, model.RoleCompany, time.Now().Add(-time.Minute)))
	assert.ErrorIs(t, err, ErrUnauthenticated)
}
