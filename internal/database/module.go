package database

import (
	"context"

	"go.uber.org/fx"
	"go.uber.org/zap"
	"gorm.io/gorm"

	"github.com/elskow/gatekeeper/internal/config"
)

func Module() fx.Option {
	return fx.Options(
		fx.Provide(
			fx.Annotate(
				func(config *config.AppConfig, logger *zap.Logger) (*Manager, error) {
					return NewManager(&config.Database, logger)
				},
			),
			func(m *Manager) *gorm.DB {
				return m.DB()
			},
		),
		fx.Invoke(registerHooks),
	)
}

func registerHooks(
	lifecycle fx.Lifecycle,
	manager *Manager,
	logger *zap.Logger,
) {
	lifecycle.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			return nil
		},
		OnStop: func(ctx context.Context) error {
			logger.Info("Closing database connections")
			sqlDB, err := manager.db.DB()
			if err != nil {
				return err
			}
			return sqlDB.Close()
		},
	})
}
