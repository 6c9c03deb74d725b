// Package logger builds the zap logger shared by the api and the quote CLI.
package logger

import (
	"strings"

	"go.uber.org/zap"
)

// New returns a development logger for APP_ENV=development and a JSON production logger otherwise.
func New(env string) (*zap.Logger, error) {
	if strings.EqualFold(strings.TrimSpace(env), "development") {
		return zap.NewDevelopment()
	}
	return zap.NewProduction()
}

// NewOrNop never fails; a logger that cannot be built degrades to a no-op one.
func NewOrNop(env string) *zap.Logger {
	l, err := New(env)
	if err != nil {
		return zap.NewNop()
	}
	return l
}
