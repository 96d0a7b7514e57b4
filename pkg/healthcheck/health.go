package healthcheck

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"
	"time"

	"placement_dashboard/pkg/logger"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// Checker 定義健康檢查的接口
type Checker interface {
	// Name 返回檢查器的名稱
	Name() string

	// Check 執行健康檢查，健康時返回 nil
	Check(ctx context.Context) error
}

// CheckType 表示檢查類型：活性檢查或就緒檢查
type CheckType int

const (
	// LivenessCheck 確認服務是否運行
	LivenessCheck CheckType = iota

	// ReadinessCheck 確認服務是否可以處理請求
	ReadinessCheck
)

const defaultTimeout = 3 * time.Second

// Result 是單一檢查器的結果
type Result struct {
	Name  string `json:"name"`
	OK    bool   `json:"ok"`
	Error string `json:"error,omitempty"`
}

// Report 是健康檢查端點的回應
type Report struct {
	Status string   `json:"status"`
	Checks []Result `json:"checks"`
}

// Manager 健康檢查管理器
type Manager struct {
	readyState atomic.Bool
	checkers   map[CheckType][]Checker
	timeout    time.Duration
	log        logger.Logger
	mu         sync.RWMutex
}

// New 創建一個新的健康檢查管理器，初始狀態為未就緒
func New(log logger.Logger) *Manager {
	if log == nil {
		log = logger.NewNop()
	}
	m := &Manager{
		checkers: make(map[CheckType][]Checker),
		timeout:  defaultTimeout,
		log:      log.With(zap.String("component", "health_manager")),
	}

	m.AddLivenessCheck(PingChecker{})
	m.AddReadinessCheck(&readinessState{manager: m})
	return m
}

// AddLivenessCheck 添加一個活性檢查
func (m *Manager) AddLivenessCheck(c Checker) { m.add(LivenessCheck, c) }

// AddReadinessCheck 添加一個就緒檢查
func (m *Manager) AddReadinessCheck(c Checker) { m.add(ReadinessCheck, c) }

func (m *Manager) add(t CheckType, c Checker) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.log.Debug("add health check", zap.String("checker", c.Name()), zap.Int("type", int(t)))
	m.checkers[t] = append(m.checkers[t], c)
}

// SetReady 設置服務的就緒狀態
func (m *Manager) SetReady(ready bool) {
	if m.readyState.Swap(ready) != ready {
		m.log.Info("readiness changed", zap.Bool("ready", ready))
	}
}

// IsReady 返回服務的就緒狀態
func (m *Manager) IsReady() bool {
	return m.readyState.Load()
}

// Run 執行指定類型的檢查，全部通過時 ok 為 true
func (m *Manager) Run(ctx context.Context, types ...CheckType) (Report, bool) {
	m.mu.RLock()
	var checkers []Checker
	for _, t := range types {
		checkers = append(checkers, m.checkers[t]...)
	}
	m.mu.RUnlock()

	report := Report{Status: "ok", Checks: make([]Result, 0, len(checkers))}
	ok := true
	for _, c := range checkers {
		cctx, cancel := context.WithTimeout(ctx, m.timeout)
		err := c.Check(cctx)
		cancel()

		res := Result{Name: c.Name(), OK: err == nil}
		if err != nil {
			ok = false
			res.Error = err.Error()
			m.log.Warn("health check failed", zap.String("checker", c.Name()), zap.Error(err))
		}
		report.Checks = append(report.Checks, res)
	}
	if !ok {
		report.Status = "unavailable"
	}
	return report, ok
}

func (m *Manager) handler(types ...CheckType) gin.HandlerFunc {
	return func(c *gin.Context) {
		report, ok := m.Run(c.Request.Context(), types...)
		status := http.StatusOK
		if !ok {
			status = http.StatusServiceUnavailable
		}
		c.JSON(status, report)
	}
}

// Install 註冊 /livez、/readyz 與 /healthz
func (m *Manager) Install(r gin.IRoutes) {
	r.GET("/livez", m.handler(LivenessCheck))
	r.GET("/readyz", m.handler(ReadinessCheck))
	r.GET("/healthz", m.handler(LivenessCheck, ReadinessCheck))
}
