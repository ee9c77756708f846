package api

import (
	"time"

	"github.com/activelife/activelife/internal/db"
	"github.com/activelife/activelife/internal/identity"
	"github.com/activelife/activelife/internal/planner"
	"github.com/activelife/activelife/internal/services"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type Handler struct {
	db           *gorm.DB
	secretKey    []byte
	cookieSecure bool
	logger       *zap.Logger
	generator    planner.Generator
	verifier     identity.Verifier
	loginLimiter *attemptLimiter

	repositories *db.Repositories
	orchestrator *planner.Orchestrator
	authService  *services.AuthService
	flowService  *services.OnboardingFlowService
	planService  *services.PlanService
	logService   *services.WorkoutLogService
}

const authTokenTTL = 7 * 24 * time.Hour

const (
	loginAttemptLimit  = 10
	loginAttemptWindow = 15 * time.Minute
)

type authClaims struct {
	UserID uint `json:"uid"`
	jwt.RegisteredClaims
}

type credentialsInput struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type googleSignInInput struct {
	IDToken string `json:"idToken"`
}

type goalsInput struct {
	FitnessGoals string `json:"fitnessGoals"`
}

type documentInput struct {
	Document string `json:"document"`
}

type adjustPlanInput struct {
	UserFeedback string `json:"userFeedback"`
}
