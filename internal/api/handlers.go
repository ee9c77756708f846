package api

import (
	"github.com/activelife/activelife/internal/identity"
	"github.com/activelife/activelife/internal/planner"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func NewHandler(database *gorm.DB, secret string, generator planner.Generator, verifier identity.Verifier, cookieSecure bool, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	handler := &Handler{
		db:           database,
		secretKey:    []byte(secret),
		cookieSecure: cookieSecure,
		logger:       logger,
		generator:    generator,
		verifier:     verifier,
		loginLimiter: newAttemptLimiter(),
	}
	handler.ensureDependencies()
	return handler
}
