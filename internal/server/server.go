package server

import (
	"context"
	"net/http"
	"path/filepath"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/hokkori/kifukin/internal/clock"
	"github.com/hokkori/kifukin/internal/config"
	"github.com/hokkori/kifukin/internal/filecache"
	obslogger "github.com/hokkori/kifukin/internal/observability/logger"
	obsmetrics "github.com/hokkori/kifukin/internal/observability/metrics"
	receiptdomain "github.com/hokkori/kifukin/internal/receipt/domain"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(cfg config.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obslogger.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	loadTemplates(r, cfg)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

// loadTemplates registers the confirmation and card entry pages. A
// missing template directory leaves the engine without HTML rendering
// instead of failing startup.
func loadTemplates(r *gin.Engine, cfg config.Config) {
	pattern := filepath.Join(cfg.WebDir, "templates", "*.html")
	if matches, err := filepath.Glob(pattern); err == nil && len(matches) > 0 {
		r.LoadHTMLGlob(pattern)
	}
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config, log *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			_ = ctx
			log.Info("http server listening", zap.String("addr", srv.Addr))
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					panic(err)
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Server struct {
	engine   *gin.Engine
	cfg      config.Config
	db       *gorm.DB
	log      *zap.Logger
	clock    clock.Clock
	receipts receiptdomain.Service
	repo     receiptdomain.Repository
	files    *filecache.Cache
}

type ServerParams struct {
	fx.In

	Gin      *gin.Engine
	Cfg      config.Config
	DB       *gorm.DB
	Log      *zap.Logger
	Clock    clock.Clock
	Receipts receiptdomain.Service
	Repo     receiptdomain.Repository
	Files    *filecache.Cache
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:   p.Gin,
		cfg:      p.Cfg,
		db:       p.DB,
		log:      p.Log.Named("server"),
		clock:    p.Clock,
		receipts: p.Receipts,
		repo:     p.Repo,
		files:    p.Files,
	}

	s.registerRoutes()
	return s
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRoutes() {
	s.engine.GET("/", s.FormPage)
	s.engine.POST("/submit", s.Submit)
	s.engine.POST("/submit/", s.Submit)
	s.engine.GET("/download/:token", s.DownloadReceipt)
	s.engine.GET("/payment/credit-card", s.CreditCardInputPage)
	s.engine.GET("/db-check", s.DBCheck)
	s.engine.GET("/db-check/receipts", s.DBCheckReceipts)
}

func (s *Server) FormPage(c *gin.Context) {
	c.File(filepath.Join(s.cfg.WebDir, "static", "index.html"))
}
