package database

import (
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/elskow/gatekeeper/internal/config"
)

type Manager struct {
	db     *gorm.DB
	config *config.DatabaseConfig
	logger *zap.Logger
}

func NewManager(config *config.DatabaseConfig, log *zap.Logger) (*Manager, error) {
	db, err := newDatabase(config, log)
	if err != nil {
		return nil, err
	}

	return &Manager{
		db:     db,
		config: config,
		logger: log,
	}, nil
}

func (m *Manager) DB() *gorm.DB {
	return m.db
}

func newDatabase(config *config.DatabaseConfig, log *zap.Logger) (*gorm.DB, error) {
	gormConfig := &gorm.Config{
		// Unique-index violations surface as gorm.ErrDuplicatedKey, which the
		// auth repository depends on.
		TranslateError: true,
		Logger: logger.New(
			zap.NewStdLog(log),
			logger.Config{
				SlowThreshold:             time.Second,
				LogLevel:                  logger.Warn,
				IgnoreRecordNotFoundError: true,
			},
		),
	}

	return gorm.Open(postgres.Open(config.DSN()), gormConfig)
}
