package server

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"net/http"
	"path/filepath"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/jij0517269/gongtan-duishu-tool/internal/api"
	"github.com/jij0517269/gongtan-duishu-tool/internal/config"
	"github.com/jij0517269/gongtan-duishu-tool/internal/importer"
	"github.com/jij0517269/gongtan-duishu-tool/internal/reconcile"
	"github.com/jij0517269/gongtan-duishu-tool/internal/session"
	"github.com/jij0517269/gongtan-duishu-tool/internal/store"
)

//go:embed all:dist
var staticFiles embed.FS

// Server HTTP服务器
type Server struct {
	router  *gin.Engine
	store   *store.Store
	session *session.Session
	api     *api.Handler
	http    *http.Server
}

// NewServer 创建服务器
func NewServer(cfg *config.AppConfig) (*Server, error) {
	devMode := cfg.Server.DevMode
	if !devMode {
		gin.SetMode(gin.ReleaseMode)
	}

	rounding, err := reconcile.ParseRoundingMode(cfg.Reconcile.Rounding)
	if err != nil {
		return nil, err
	}
	im, err := importer.New(importer.OptionsFromConfig(cfg))
	if err != nil {
		return nil, err
	}

	dataDir, err := config.EnsureDataDir(cfg)
	if err != nil {
		return nil, fmt.Errorf("创建数据目录失败: %w", err)
	}

	var st *store.Store
	if cfg.Data.History {
		dbPath := filepath.Join(dataDir, "gongtan.db")
		st, err = store.New(dbPath)
		if err != nil {
			return nil, fmt.Errorf("初始化历史库失败: %w", err)
		}
		slog.Info("历史记录已启用", "database", dbPath)
	}

	sess := session.New(reconcile.Options{
		Rounding:     rounding,
		MatchWorkers: cfg.Reconcile.MatchWorkers,
	})

	s := &Server{
		router:  gin.New(),
		store:   st,
		session: sess,
		api:     api.NewHandler(sess, im, st, filepath.Join(dataDir, "exports")),
	}
	s.router.Use(gin.Recovery(), requestLogger())
	s.setupRoutes(devMode)
	s.http = &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Server.Port),
		Handler: s.router,
	}

	return s, nil
}

// setupRoutes 设置路由
func (s *Server) setupRoutes(devMode bool) {
	// CORS
	s.router.Use(func(c *gin.Context) {
		c.Header("Access-Control-Allow-Origin", "*")
		c.Header("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		c.Header("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if c.Request.Method == "OPTIONS" {
			c.AbortWithStatus(204)
			return
		}
		c.Next()
	})

	group := s.router.Group("/api")
	{
		s.api.RegisterRoutes(group)
	}

	s.router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	if devMode {
		// 开发模式：代理到前端开发服务器
		s.router.NoRoute(func(c *gin.Context) {
			c.Redirect(http.StatusTemporaryRedirect, "http://localhost:5173"+c.Request.URL.Path)
		})
		return
	}

	sub, _ := fs.Sub(staticFiles, "dist")
	index := func(c *gin.Context) {
		data, err := fs.ReadFile(sub, "index.html")
		if err != nil {
			c.Status(http.StatusNotFound)
			return
		}
		c.Data(http.StatusOK, "text/html; charset=utf-8", data)
	}
	s.router.GET("/", index)
	s.router.NoRoute(index)
}

// Handler 返回路由（用于测试）
func (s *Server) Handler() http.Handler {
	return s.router
}

// Session 当前对数会话
func (s *Server) Session() *session.Session {
	return s.session
}

// Addr 监听地址
func (s *Server) Addr() string {
	return s.http.Addr
}

// Run 启动服务器，Shutdown 后返回 nil
func (s *Server) Run() error {
	if err := s.http.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

// Shutdown 停止接收请求并关闭历史库
func (s *Server) Shutdown(ctx context.Context) error {
	err := s.http.Shutdown(ctx)
	if s.store != nil {
		if cerr := s.store.Close(); cerr != nil && err == nil {
			err = cerr
		}
	}
	return err
}
