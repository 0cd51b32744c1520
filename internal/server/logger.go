package server

import "go.uber.org/zap"

// NewLogger returns a JSON logger in production and a console logger elsewhere.
func NewLogger(env string) (*zap.Logger, error) {
	if env == EnvProduction {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
