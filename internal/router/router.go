package router

import (
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"golang.org/x/time/rate"

	"github.com/medikids/clinic-api/internal/middleware"
	"github.com/medikids/clinic-api/pkg/metrics"
	"github.com/medikids/clinic-api/pkg/validator"
)

// Handler registers JSON API routes on the /api/v1 group.
type Handler interface {
	RegisterRoutes(*gin.RouterGroup)
}

// PageHandler registers server-rendered HTML routes on the engine root.
type PageHandler interface {
	RegisterPages(*gin.Engine)
}

type Config struct {
	RateLimitEnabled bool
	RateLimit        rate.Limit
	RateBurst        int
	Timeout          middleware.TimeoutConfig
	CORS             middleware.CORSConfig
	TemplatesGlob    string
}

type Router struct {
	engine   *gin.Engine
	handlers []Handler
	pages    []PageHandler
}

func NewRouter(cfg Config, m *metrics.Metrics, handlers []Handler, pages []PageHandler) *Router {
	gin.SetMode(gin.ReleaseMode)
	validator.RegisterCustomValidations()

	engine := gin.New()
	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		middleware.Metrics(m),
		middleware.Timeout(cfg.Timeout),
		middleware.CORS(cfg.CORS),
	)

	if cfg.RateLimitEnabled {
		limiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
			Rate:  cfg.RateLimit,
			Burst: cfg.RateBurst,
		})
		engine.Use(limiter.RateLimit())
	}

	if cfg.TemplatesGlob != "" {
		engine.LoadHTMLGlob(cfg.TemplatesGlob)
	}

	return &Router{engine: engine, handlers: handlers, pages: pages}
}

func (r *Router) Setup() {
	api := r.engine.Group("/api/v1")

	api.Use(func(c *gin.Context) {
		c.Header("X-API-Version", "1.0")
		c.Next()
	})

	for _, h := range r.handlers {
		h.RegisterRoutes(api)
	}

	for _, p := range r.pages {
		p.RegisterPages(r.engine)
	}

	r.engine.GET("/metrics", gin.WrapH(promhttp.Handler()))
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
