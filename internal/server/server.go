package server

import (
	"context"
	"net/http"
	"time"

	"github.com/freshbowl/freshbowl/internal/config"
	"github.com/freshbowl/freshbowl/internal/generator"
	orderdomain "github.com/freshbowl/freshbowl/internal/order/domain"
	plandomain "github.com/freshbowl/freshbowl/internal/plan/domain"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(NewEngine),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(log *zap.Logger) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(requestLogger(log.Named("http")))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func requestLogger(log *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		log.Info("request",
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

type Server struct {
	engine *gin.Engine
	log    *zap.Logger

	plansvc  plandomain.Service
	ordersvc orderdomain.Service
	gen      *generator.Generator
}

type ServerParams struct {
	fx.In

	Gin *gin.Engine
	Log *zap.Logger

	Plansvc   plandomain.Service
	Ordersvc  orderdomain.Service
	Generator *generator.Generator
}

func NewServer(p ServerParams) *Server {
	s := &Server{
		engine:   p.Gin,
		log:      p.Log.Named("server"),
		plansvc:  p.Plansvc,
		ordersvc: p.Ordersvc,
		gen:      p.Generator,
	}
	s.registerRoutes()
	return s
}

func (s *Server) registerRoutes() {
	api := s.engine.Group("/api")
	{
		api.GET("/plans/:id", s.getPlan)
		api.PUT("/plans/:id/recipes", s.composePlan)
		api.GET("/orders/:id/tracking", s.getOrderTracking)
		api.POST("/orders/:id/tracking", s.addOrderTracking)
	}

	admin := s.engine.Group("/admin")
	{
		admin.POST("/orders/generate", s.generateOrders)
	}
}

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			log.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
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
