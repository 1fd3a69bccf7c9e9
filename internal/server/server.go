package server

import (
	"context"
	"io/fs"
	"net/http"
	"time"

	"github.com/flosch/pongo2/v6"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/smallbiznis/coopbilling/internal/clock"
	"github.com/smallbiznis/coopbilling/internal/config"
	"github.com/smallbiznis/coopbilling/internal/console"
	"github.com/smallbiznis/coopbilling/internal/forms"
	"github.com/smallbiznis/coopbilling/internal/observability"
	obsmiddleware "github.com/smallbiznis/coopbilling/internal/observability/logger"
	obsmetrics "github.com/smallbiznis/coopbilling/internal/observability/metrics"
	"go.uber.org/fx"
	"go.uber.org/zap"
)

var Module = fx.Module("http.server",
	fx.Provide(registerGin),
	fx.Invoke(NewServer),
	fx.Invoke(run),
)

func NewEngine(obsCfg observability.Config, httpMetrics *obsmetrics.HTTPMetrics) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(obsmiddleware.GinMiddleware(obsmiddleware.MiddlewareConfig{
		Debug:           obsCfg.Debug(),
		ErrorClassifier: classifyErrorForLog,
		QuietRoutes:     []string{"/health", "/metrics"},
	}))
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

func run(lc fx.Lifecycle, cfg config.Config, r *gin.Engine, log *zap.Logger) {
	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	lc.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			go func() {
				if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
					log.Fatal("http server stopped", zap.Error(err))
				}
			}()
			log.Info("http server started", zap.String("addr", cfg.HTTPAddr))
			return nil
		},
		OnStop: func(ctx context.Context) error {
			shutdownCtx, cancel := context.WithTimeout(ctx, 10*time.Second)
			defer cancel()
			return srv.Shutdown(shutdownCtx)
		},
	})
}

type Params struct {
	fx.In

	Engine      *gin.Engine
	Cfg         config.Config
	Log         *zap.Logger
	Site        *console.Site
	Forms       *forms.Registry
	FormsConfig *config.FormsConfigHolder
	Lookup      forms.RecordLookup
	Clock       clock.Clock
	FormMetrics *obsmetrics.FormMetrics `optional:"true"`
}

type Server struct {
	engine      *gin.Engine
	cfg         config.Config
	log         *zap.Logger
	site        *console.Site
	forms       *forms.Registry
	formsCfg    *config.FormsConfigHolder
	lookup      forms.RecordLookup
	clock       clock.Clock
	pages       *pongo2.TemplateSet
	assets      fs.FS
	formMetrics *obsmetrics.FormMetrics
}

func NewServer(p Params) (*Server, error) {
	pages, err := newPageSet()
	if err != nil {
		return nil, err
	}
	assets, err := assetsFS()
	if err != nil {
		return nil, err
	}

	s := &Server{
		engine:      p.Engine,
		cfg:         p.Cfg,
		log:         p.Log.Named("http"),
		site:        p.Site,
		forms:       p.Forms,
		formsCfg:    p.FormsConfig,
		lookup:      p.Lookup,
		clock:       p.Clock,
		pages:       pages,
		assets:      assets,
		formMetrics: p.FormMetrics,
	}
	s.RegisterRoutes()
	return s, nil
}

func (s *Server) RegisterRoutes() {
	admin := s.engine.Group("/admin")
	admin.GET("/", s.ListModels)
	admin.GET("/:model", s.ListRecords)
	admin.POST("/:model", s.CreateRecord)
	admin.GET("/:model/:id", s.GetRecord)
	admin.PATCH("/:model/:id", s.UpdateRecord)
	admin.DELETE("/:model/:id", s.DeleteRecord)

	pages := s.engine.Group("/forms")
	pages.GET("/", s.FormIndex)
	pages.GET("/:form/new", s.NewForm)
	pages.POST("/:form/new", s.NewForm)
	pages.GET("/:form/:id/edit", s.EditForm)
	pages.POST("/:form/:id/edit", s.EditForm)

	s.engine.StaticFS("/assets", http.FS(s.assets))

	api := s.engine.Group("/api")
	api.GET("/autocomplete/:model", s.Autocomplete)
}
