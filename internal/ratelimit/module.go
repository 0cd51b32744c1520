package ratelimit

import (
	"go.uber.org/fx"

	"github.com/elskow/gatekeeper/internal/config"
)

// NewModule returns the rate limiter module options
func NewModule() fx.Option {
	return fx.Options(
		fx.Provide(
			NewMemoryStore,
			fx.Annotate(
				func(config *config.AppConfig, store Store) *Limiter {
					return NewLimiter(&config.RateLimit, store)
				},
			),
		),
	)
}
