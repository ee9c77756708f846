package db

import "gorm.io/gorm"

type Repositories struct {
	Users       *UserRepository
	Plans       *PlanRepository
	WorkoutLogs *WorkoutLogRepository
	Highlights  *HighlightsCacheRepository
	Drafts      *OnboardingDraftRepository
}

func NewRepositories(database *gorm.DB) *Repositories {
	return &Repositories{
		Users:       NewUserRepository(database),
		Plans:       NewPlanRepository(database),
		WorkoutLogs: NewWorkoutLogRepository(database),
		Highlights:  NewHighlightsCacheRepository(database),
		Drafts:      NewOnboardingDraftRepository(database),
	}
}
