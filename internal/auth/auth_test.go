package auth

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/elskow/gatekeeper/internal/config"
)

func newTestLogger(t *testing.T) *zap.Logger {
	logger, err := zap.NewDevelopment()
	assert.NoError(t, err)
	return logger
}

func newTestConfig() *config.AuthConfig {
	return &config.AuthConfig{
		JWTSecret:       "test-secret-key",
		TokenExpiration: time.Hour,
		BcryptCost:      bcrypt.MinCost,
	}
}

func newTestService(t *testing.T) *Service {
	return NewService(
		newTestConfig(),
		newTestLogger(t),
		newMockRepository(),
	)
}

func newTestServiceWithRepo(t *testing.T, repo Repository) *Service {
	return NewService(
		newTestConfig(),
		newTestLogger(t),
		repo,
	)
}
