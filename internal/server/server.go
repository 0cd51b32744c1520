package server

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"go.uber.org/fx"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/elskow/gatekeeper/internal/api"
	"github.com/elskow/gatekeeper/internal/auth"
	"github.com/elskow/gatekeeper/internal/config"
	"github.com/elskow/gatekeeper/internal/ratelimit"
)

type Server struct {
	config     *config.AppConfig
	log        *zap.Logger
	httpServer *http.Server
	router     chi.Router
}

type Params struct {
	fx.In

	Config         *config.AppConfig
	Logger         *zap.Logger
	AuthHandler    *auth.Handler
	AuthMiddleware *auth.Middleware
	Limiter        *ratelimit.Limiter
}

func NewServer(p Params) *Server {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger(p.Logger))
	r.Use(chimiddleware.Recoverer)

	// Rate limiting guards the credential endpoints only; profile reads are
	// already gated by token verification.
	r.Group(func(r chi.Router) {
		r.Use(p.Limiter.Middleware)
		r.Post(api.AuthSignup, p.AuthHandler.Signup)
		r.Post(api.AuthLogin, p.AuthHandler.Login)
	})

	r.Group(func(r chi.Router) {
		r.Use(p.AuthMiddleware.Handler)
		r.Get(api.AuthProfile, p.AuthHandler.Profile)
	})

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		api.WriteError(w, http.StatusNotFound, "API route not found")
	})

	addr := fmt.Sprintf("%s:%s", p.Config.Server.Host, p.Config.Server.Port)

	return &Server{
		config: p.Config,
		log:    p.Logger,
		router: r,
		httpServer: &http.Server{
			Addr:         addr,
			Handler:      r,
			ReadTimeout:  p.Config.Server.ReadTimeout,
			WriteTimeout: p.Config.Server.WriteTimeout,
			IdleTimeout:  p.Config.Server.IdleTimeout,
		},
	}
}

// Handler exposes the router for tests that drive the full HTTP surface.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) Start() error {
	s.log.Info("Starting HTTP server",
		zap.String("address", s.httpServer.Addr),
		zap.Object("config", serverConfigToField(s.config)),
	)

	if err := s.httpServer.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return fmt.Errorf("failed to serve: %w", err)
	}

	return nil
}

func (s *Server) Stop(ctx context.Context) error {
	s.log.Info("shutting down HTTP server")
	return s.httpServer.Shutdown(ctx)
}

func serverConfigToField(config *config.AppConfig) zapcore.ObjectMarshaler {
	return zapcore.ObjectMarshalerFunc(func(enc zapcore.ObjectEncoder) error {
		enc.AddString("environment", os.Getenv("APP_ENV"))
		enc.AddDuration("token_expiration", config.Auth.TokenExpiration)
		enc.AddDuration("rate_limit_window", config.RateLimit.Window)
		enc.AddInt("rate_limit_max_attempts", config.RateLimit.MaxAttempts)
		return nil
	})
}

func requestLogger(log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
			start := time.Now()

			next.ServeHTTP(ww, r)

			log.Info("request",
				zap.String("method", r.Method),
				zap.String("path", r.URL.Path),
				zap.Int("status", ww.Status()),
				zap.Duration("duration", time.Since(start)),
				zap.String("request_id", chimiddleware.GetReqID(r.Context())),
			)
		})
	}
}
