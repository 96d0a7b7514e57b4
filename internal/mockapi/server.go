package mockapi

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"placement_dashboard/internal/chat"
	"placement_dashboard/internal/model"
	"placement_dashboard/pkg/healthcheck"
	"placement_dashboard/pkg/httpClient"
	"placement_dashboard/pkg/logger"
	"placement_dashboard/pkg/middleware"
	"placement_dashboard/pkg/utils"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"
)

var errChatStopped = errors.New("chat manager stopped")

// Options 設置開發後端
type Options struct {
	Port     uint64
	Secret   []byte
	TokenTTL time.Duration
	// Seed 為 true 時放入示範資料；帳號一律建立
	Seed bool
	// Registerer 不為 nil 時記錄請求指標
	Registerer prometheus.Registerer
	// Gatherer 提供 /metrics 的內容，nil 時使用 prometheus.DefaultGatherer
	Gatherer prometheus.Gatherer
}

// Server 是開發後端
type Server struct {
	opts     Options
	engine   *gin.Engine
	accounts *Accounts
	hub      *chatHub
	health   *healthcheck.Manager
	log      logger.Logger
	http     *http.Server
	cancel   context.CancelFunc
}

// New 創建開發後端並註冊所有路由
func New(opts Options, log logger.Logger) (*Server, error) {
	if log == nil {
		log = logger.NewNop()
	}
	if len(opts.Secret) == 0 {
		return nil, errors.New("mockapi: jwt secret is required")
	}
	if opts.TokenTTL <= 0 {
		opts.TokenTTL = 24 * time.Hour
	}

	accounts := NewAccounts()
	for _, u := range SeedUsers {
		if _, err := accounts.Add(u.Name, u.Email, u.Password, u.Role); err != nil {
			return nil, fmt.Errorf("seed user %s: %w", u.Email, err)
		}
	}

	ids, err := utils.NewSnowflake(1)
	if err != nil {
		return nil, err
	}

	s := &Server{
		opts:     opts,
		accounts: accounts,
		hub:      newChatHub(accounts, ids, log.With(zap.String("component", "chat"))),
		health:   healthcheck.New(log),
		log:      log,
	}
	s.health.AddReadinessCheck(healthcheck.Func{Label: "chat", Fn: func(ctx context.Context) error {
		if s.hub.manager.Stopped() {
			return errChatStopped
		}
		return nil
	}})
	s.engine = s.routes(newStores(opts.Seed), NewMedia())
	return s, nil
}

func (s *Server) routes(st *stores, media *Media) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Recovery(s.log), middleware.Logger(s.log), middleware.Cors(), middleware.Metrics(s.opts.Registerer))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "Service is healthy"})
	})
	s.health.Install(r)
	gatherer := s.opts.Gatherer
	if gatherer == nil {
		gatherer = prometheus.DefaultGatherer
	}
	r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))
	r.GET(MediaPrefix+":name", media.serve)

	authed := bearer(s.opts.Secret)
	h := &authHandler{accounts: s.accounts, secret: s.opts.Secret, ttl: s.opts.TokenTTL, now: time.Now}

	r.GET(chat.FeedPath, authed, s.hub.serve)

	api := r.Group("/api/v1")
	api.POST("/auth/login/", h.login)

	private := api.Group("/", authed)
	private.GET("/chat/contacts/", s.hub.contacts)
	private.GET("/chat/:contact/messages/", s.hub.messages)

	register(private, manage(model.KindCompanies), model.KindCompanies, "Company", st.companies, media, s.log)
	register(private, manage(model.KindCities), model.KindCities, "City", st.cities, media, s.log)
	register(private, manage(model.KindSkills), model.KindSkills, "Skill", st.skills, media, s.log)
	register(private, manage(model.KindDesignations), model.KindDesignations, "Designation", st.designations, media, s.log)
	register(private, manage(model.KindJobTypes), model.KindJobTypes, "Job type", st.jobTypes, media, s.log)
	register(private, manage(model.KindCategories), model.KindCategories, "Category", st.categories, media, s.log)
	register(private, manage(model.KindPerks), model.KindPerks, "Perk", st.perks, media, s.log)
	register(private, manage(model.KindUniversities), model.KindUniversities, "University", st.universities, media, s.log)
	register(private, manage(model.KindVideoCourses), model.KindVideoCourses, "Video course", st.videoCourses, media, s.log)
	register(private, manage(model.KindVideoCategories), model.KindVideoCategories, "Video category", st.videoCategories, media, s.log)
	register(private, manage(model.KindVideoSubcategories), model.KindVideoSubcategories, "Video subcategory", st.videoSubcategories, media, s.log)
	register(private, manage(model.KindPlanTypes), model.KindPlanTypes, "Plan type", st.planTypes, media, s.log)
	register(private, manage(model.KindSubscribePlans), model.KindSubscribePlans, "Subscribe plan", st.subscribePlans, media, s.log)
	register(private, manage(model.KindUniversityStudents), model.KindUniversityStudents, "Student", st.universityStudents, media, s.log)

	return r
}

// Handler 回傳包含追蹤 ID 中間件的 http.Handler
func (s *Server) Handler() http.Handler {
	return httpClient.TraceMiddleware(s.engine)
}

// Accounts 回傳帳號資料
func (s *Server) Accounts() *Accounts { return s.accounts }

// Start 啟動聊天連線管理器，ctx 取消時停止
func (s *Server) Start(ctx context.Context) {
	ctx, s.cancel = context.WithCancel(ctx)
	go s.hub.manager.Start(ctx)
	s.health.SetReady(true)
}

// ListenAndServe 在 Options.Port 上提供服務，直到 Shutdown
func (s *Server) ListenAndServe() error {
	s.http = &http.Server{
		Addr:              fmt.Sprintf(":%d", s.opts.Port),
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	s.log.Info("mock api listening", zap.String("addr", s.http.Addr))
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("mock api: %w", err)
	}
	return nil
}

// Shutdown 停止 HTTP 服務與所有 websocket 連線
func (s *Server) Shutdown(ctx context.Context) error {
	s.health.SetReady(false)
	if s.cancel != nil {
		s.cancel()
	}
	if s.http == nil {
		return nil
	}
	return s.http.Shutdown(ctx)
}
