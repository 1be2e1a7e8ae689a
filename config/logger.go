package config

import (
	"log"

	"go.uber.org/zap"
)

// NewLogger builds the process logger. Development mode gets the
// human-readable console encoder, production gets JSON.
func NewLogger(appEnv string) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)

	if appEnv == "production" {
		logger, err = zap.NewProduction()
	} else {
		logger, err = zap.NewDevelopment()
	}
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}

	return logger
}
