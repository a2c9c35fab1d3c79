package api

import (
	"github.com/gin-gonic/gin"
	"github.com/patrickmn/go-cache"
	"golang.org/x/time/rate"

	"schedule-console/config"
	"schedule-console/internal/mw"
)

// NewRouter creates and configures a new Gin router.
func NewRouter(cfg *config.ServerConfig, h *Handler) (*gin.Engine, error) {
	tmpl, err := loadTemplates()
	if err != nil {
		return nil, err
	}

	r := gin.Default()
	r.SetHTMLTemplate(tmpl)

	rateLimiter := mw.RateLimiter(rate.Limit(cfg.RateLimitPerSec), cfg.RateLimitBurst, cfg.RequestIPHeader)

	// Only immutable responses go through the cache.
	ttl := cfg.CacheTTL()
	cacheStore := cache.New(ttl, 2*ttl)
	caching := mw.Cache(cacheStore, ttl)

	r.Group("/static", caching).StaticFS("/", staticFS())

	// Panel
	r.GET("/", h.GetPanel)
	triggers := r.Group("/")
	triggers.Use(rateLimiter)
	{
		triggers.POST("/seed", h.PostSeed)
		triggers.POST("/generate", h.PostGenerate)
		triggers.POST("/refresh", h.PostRefresh)
	}

	// API group
	api := r.Group("/api")
	{
		api.GET("/state", h.GetState)
		api.PUT("/range", h.PutRange)
		api.GET("/runs", h.GetRuns)
		api.GET("/demo", caching, GetDemo)

		api.POST("/seed", rateLimiter, h.SeedSync)
		api.POST("/generate", rateLimiter, h.GenerateSync)
		api.POST("/refresh", rateLimiter, h.RefreshSync)
	}

	return r, nil
}
