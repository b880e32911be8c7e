package server

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/fx"

	"github.com/haulware/carriergate/internal/calllog"
	calllogdomain "github.com/haulware/carriergate/internal/calllog/domain"
	"github.com/haulware/carriergate/internal/clock"
	"github.com/haulware/carriergate/internal/config"
	"github.com/haulware/carriergate/internal/eligibility"
	eligibilitydomain "github.com/haulware/carriergate/internal/eligibility/domain"
	"github.com/haulware/carriergate/internal/loadboard"
	loadboarddomain "github.com/haulware/carriergate/internal/loadboard/domain"
	"github.com/haulware/carriergate/internal/negotiation"
	negotiationdomain "github.com/haulware/carriergate/internal/negotiation/domain"
	"github.com/haulware/carriergate/internal/observability"
	obsmiddleware "github.com/haulware/carriergate/internal/observability/logger"
	obsmetrics "github.com/haulware/carriergate/internal/observability/metrics"
	obstracing "github.com/haulware/carriergate/internal/observability/tracing"
	"github.com/haulware/carriergate/internal/transcript"
)

var Module = fx.Module("http.server",
	config.Module,
	clock.Module,
	transcript.Module,
	fx.Provide(registerGin),
	loadboard.Module,
	eligibility.Module,
	negotiation.Module,
	calllog.Module,
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
	}))
	r.Use(obstracing.GinMiddleware())
	r.Use(obsmetrics.GinMiddleware(httpMetrics))
	r.Use(ErrorHandlingMiddleware())

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	return r
}

func registerGin(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	return NewEngine(obsCfg, httpMetrics)
}

func run(lc fx.Lifecycle, r *gin.Engine, cfg config.Config) {
	srv := &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: r,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
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
	engine         *gin.Engine
	cfg            config.Config
	eligibilitySvc eligibilitydomain.Service
	loadboardSvc   loadboarddomain.Service
	negotiationSvc negotiationdomain.Service
	calllogSvc     calllogdomain.Service
	obsMetrics     *obsmetrics.Metrics
}

type ServerParams struct {
	fx.In

	Gin            *gin.Engine
	Cfg            config.Config
	EligibilitySvc eligibilitydomain.Service
	LoadboardSvc   loadboarddomain.Service
	NegotiationSvc negotiationdomain.Service
	CalllogSvc     calllogdomain.Service
	ObsMetrics     *obsmetrics.Metrics `optional:"true"`
}

func NewServer(p ServerParams) *Server {
	svc := &Server{
		engine:         p.Gin,
		cfg:            p.Cfg,
		eligibilitySvc: p.EligibilitySvc,
		loadboardSvc:   p.LoadboardSvc,
		negotiationSvc: p.NegotiationSvc,
		calllogSvc:     p.CalllogSvc,
		obsMetrics:     p.ObsMetrics,
	}

	svc.registerRootRoutes()
	svc.registerAPIRoutes()
	svc.registerDashboardRoutes()

	return svc
}

func (s *Server) Engine() *gin.Engine {
	return s.engine
}

func (s *Server) registerRootRoutes() {
	s.engine.GET("/", s.Root)
}

func (s *Server) registerAPIRoutes() {
	api := s.engine.Group("/api", s.APIKeyRequired())

	api.POST("/authenticate", s.Authenticate)
	api.GET("/loads", s.ListLoads)
	api.POST("/negotiate", s.Negotiate)
	api.POST("/call/result", s.RecordCallResult)
}

func (s *Server) registerDashboardRoutes() {
	dashboard := s.engine.Group("/dashboard", s.DashboardEnabled())

	dashboard.GET("", s.DashboardPage)
	dashboard.GET("/data", s.DashboardData)
}

func (s *Server) Root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"message": "carriergate inbound carrier api"})
}
