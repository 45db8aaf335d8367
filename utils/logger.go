package utils

import (
	"go.uber.org/zap"
)

// NewLogger returns a JSON logger in production and a human-readable
// development logger everywhere else.
func NewLogger(production bool) (*zap.Logger, error) {
	if production {
		return zap.NewProduction()
	}
	return zap.NewDevelopment()
}
