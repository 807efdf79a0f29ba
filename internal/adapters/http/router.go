package http

import (
	"context"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/dkeye/aircast/internal/adapters/signal"
	"github.com/dkeye/aircast/internal/app"
	"github.com/dkeye/aircast/internal/config"
)

// Deps bundles the core components the HTTP surface fronts.
type Deps struct {
	Registry *app.Registry
	Relay    *app.Relay
	Sessions *app.SessionStore
}

func SetupRouter(ctx context.Context, cfg *config.Config, deps Deps) *gin.Engine {
	if cfg.Mode == "release" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()
	if cfg.Mode == "debug" {
		r.Use(gin.Logger())
	}
	r.Use(gin.Recovery())

	store := cookie.NewStore([]byte(cfg.Secret))
	r.Use(sessions.Sessions("AircastSessions", store))

	startedAt := time.Now()

	r.Static("/static", cfg.StaticPath)

	// Host control surface, gated. Viewer surface is always public.
	r.GET("/", AccessGate(deps.Sessions, "/listen"), func(c *gin.Context) {
		c.File(cfg.StaticPath + "/host.html")
	})
	r.GET("/listen", func(c *gin.Context) {
		c.File(cfg.StaticPath + "/listen.html")
	})

	r.GET("/health", healthHandler)
	r.GET("/stats", statsHandler(deps.Registry, startedAt))
	r.GET("/network-info", networkInfoHandler(cfg.Port))

	api := r.Group("/api")
	api.GET("/webrtc-config", webrtcConfigHandler(cfg.STUNServers))
	api.GET("/listeners", listenersHandler(deps.Registry))
	api.POST("/host-sessions", hostSessionHandler(deps.Sessions))

	ctl := signal.NewController(deps.Registry, deps.Relay, cfg.ReadLimit, cfg.SendBuffer)
	r.GET("/ws", func(c *gin.Context) {
		ctl.HandleSignal(ctx, c)
	})

	log.Info().Str("module", "adapters.http").Str("static", cfg.StaticPath).Msg("router setup")
	return r
}
