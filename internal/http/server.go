// README: API gateway; registers HTTP routes and delegates to module services.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"guardian/internal/auth"
	"guardian/internal/config"
	"guardian/internal/http/handlers"
	"guardian/internal/http/middleware"
	"guardian/internal/modules/pickup"
	"guardian/internal/modules/rider"
	"guardian/internal/modules/trip"
)

type ServerDeps struct {
	Rider    *rider.Service
	Pickup   *pickup.Service
	Trip     *trip.Service
	Provider *auth.Provider
	Sessions *auth.Sessions
	Cfg      config.Config
	Log      *logrus.Logger
}

type Server struct {
	deps ServerDeps
}

func NewServer(deps ServerDeps) *Server {
	return &Server{deps: deps}
}

func (s *Server) Routes() http.Handler {
	if s.deps.Cfg.Env == config.EnvProduction {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()
	r.Use(middleware.Logging(s.deps.Log), middleware.Recovery(s.deps.Log))

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})

	authHandler := handlers.NewAuthHandler(s.deps.Provider, s.deps.Sessions, s.deps.Rider, s.deps.Log)
	r.GET("/auth/uber", authHandler.Login)
	r.GET("/auth/uber/callback", authHandler.Callback)

	voiceHandler := handlers.NewVoiceHandler(s.deps.Rider, s.deps.Cfg.WebhookSecret)
	r.POST("/twilio/voice", voiceHandler.Handle)

	api := r.Group("/api", middleware.Auth(s.deps.Sessions, s.deps.Rider))
	pickupHandler := handlers.NewPickupHandler(s.deps.Pickup, s.deps.Trip)
	api.POST("/pickup", pickupHandler.Plan)
	contactHandler := handlers.NewContactHandler(s.deps.Rider)
	api.POST("/contact", contactHandler.Register)
	api.GET("/me", authHandler.Me)

	return r
}
