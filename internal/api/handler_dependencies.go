package api

import (
	"github.com/activelife/activelife/internal/db"
	"github.com/activelife/activelife/internal/planner"
	"github.com/activelife/activelife/internal/services"
)

func (handler *Handler) ensureDependencies() {
	if handler.repositories == nil {
		if handler.db == nil {
			return
		}
		handler.repositories = db.NewRepositories(handler.db)
	}

	if handler.orchestrator == nil {
		handler.orchestrator = planner.NewOrchestrator(handler.generator, handler.repositories.Highlights, handler.logger)
	}
	if handler.authService == nil {
		handler.authService = services.NewAuthService(handler.repositories.Users, handler.verifier)
	}
	if handler.flowService == nil {
		handler.flowService = services.NewOnboardingFlowService(handler.repositories.Drafts, handler.repositories.Plans, handler.orchestrator, handler.logger)
	}
	if handler.planService == nil {
		handler.planService = services.NewPlanService(handler.repositories.Plans, handler.repositories.WorkoutLogs, handler.orchestrator, handler.logger)
	}
	if handler.logService == nil {
		handler.logService = services.NewWorkoutLogService(handler.repositories.WorkoutLogs, handler.repositories.Plans)
	}
}
