package services

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/activelife/activelife/internal/models"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

var (
	// ErrOnboardingStepRequired means an earlier wizard step has no valid
	// data. The HTTP layer redirects to the start of onboarding.
	ErrOnboardingStepRequired = errors.New("complete earlier onboarding steps first")

	ErrFlowTransition = errors.New("invalid onboarding state transition")
)

type FlowDraftRepository interface {
	Load(userID uint) (models.OnboardingDraft, error)
	Save(draft *models.OnboardingDraft) error
	Clear(userID uint) error
}

type FlowPlanRepository interface {
	Create(userID uint, record *models.PlanRecord) error
}

// PlanRequester is the orchestrator surface the wizard needs.
type PlanRequester interface {
	RequestNewPlan(ctx context.Context, input models.OnboardingData, risk *models.RiskAssessment) (models.PlanDocument, error)
	RequestRiskAssessment(ctx context.Context, input models.OnboardingData) (models.RiskAssessment, error)
	RequestHighlights(ctx context.Context, userID uint, documentDataURI string) (models.ExtractedHighlights, error)
}

// OnboardingFlowService drives the wizard state machine:
//
//	CollectingBasics -> CollectingGoals -> Submitting -> Complete
//
// with AnalyzingDocument entered concurrently while a document extraction
// request is in flight. Extracted values only fill fields the user has not
// touched.
type OnboardingFlowService struct {
	drafts    FlowDraftRepository
	plans     FlowPlanRepository
	requester PlanRequester
	logger    *zap.Logger
}

func NewOnboardingFlowService(drafts FlowDraftRepository, plans FlowPlanRepository, requester PlanRequester, logger *zap.Logger) *OnboardingFlowService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &OnboardingFlowService{drafts: drafts, plans: plans, requester: requester, logger: logger}
}

// Draft returns the current wizard draft, or a fresh one in the initial
// state when the user has not started.
func (service *OnboardingFlowService) Draft(userID uint) (models.OnboardingDraft, error) {
	draft, err := service.drafts.Load(userID)
	if err != nil {
		return models.OnboardingDraft{
			UserID: userID,
			State:  models.FlowStateCollectingBasics,
		}, nil
	}
	return draft, nil
}

// SubmitBasics validates and stores the step-1 fields and advances the
// machine to goal collection.
func (service *OnboardingFlowService) SubmitBasics(userID uint, input models.OnboardingData) (models.OnboardingDraft, error) {
	if err := ValidateOnboardingBasics(input); err != nil {
		return models.OnboardingDraft{}, err
	}

	draft, _ := service.Draft(userID)
	if !canTransition(draft.State, models.FlowStateCollectingGoals) {
		return models.OnboardingDraft{}, fmt.Errorf("%w: %s -> %s", ErrFlowTransition, draft.State, models.FlowStateCollectingGoals)
	}

	draft.Data.PlanName = strings.TrimSpace(input.PlanName)
	draft.Data.Age = input.Age
	draft.Data.Sex = input.Sex
	draft.Data.Height = input.Height
	draft.Data.Weight = input.Weight
	draft.Data.MedicalHistory = strings.TrimSpace(input.MedicalHistory)
	markTouched(&draft, "age", "sex", "height", "weight")
	if draft.Data.MedicalHistory != "" {
		markTouched(&draft, "medicalHistory")
	}

	draft.State = models.FlowStateCollectingGoals
	if err := service.drafts.Save(&draft); err != nil {
		return models.OnboardingDraft{}, err
	}
	return draft, nil
}

// SubmitGoals stores the step-2 free text. A missing or invalid step-1
// draft sends the user back to the start instead of accepting the data.
func (service *OnboardingFlowService) SubmitGoals(userID uint, fitnessGoals string) (models.OnboardingDraft, error) {
	draft, err := service.drafts.Load(userID)
	if err != nil {
		return models.OnboardingDraft{}, ErrOnboardingStepRequired
	}
	if ValidateOnboardingBasics(draft.Data) != nil {
		return models.OnboardingDraft{}, ErrOnboardingStepRequired
	}
	if !IsDetailedText(fitnessGoals) {
		return models.OnboardingDraft{}, newValidationError(map[string]string{
			"fitnessGoals": fmt.Sprintf("describe your goals in at least %d characters", models.MinDetailedTextLength),
		})
	}

	draft.Data.FitnessGoals = strings.TrimSpace(fitnessGoals)
	markTouched(&draft, "fitnessGoals")
	draft.State = models.FlowStateCollectingGoals
	if err := service.drafts.Save(&draft); err != nil {
		return models.OnboardingDraft{}, err
	}
	return draft, nil
}

// AttachDocument validates the upload locally, then runs highlight
// extraction. The machine shows AnalyzingDocument while the request is in
// flight and returns to its previous step afterwards; extraction never
// blocks step transitions and never overwrites fields the user edited.
func (service *OnboardingFlowService) AttachDocument(ctx context.Context, userID uint, documentDataURI string) (models.OnboardingDraft, models.ExtractedHighlights, error) {
	if err := ValidateMedicalDocument(documentDataURI); err != nil {
		return models.OnboardingDraft{}, models.ExtractedHighlights{}, err
	}

	draft, _ := service.Draft(userID)
	previousState := draft.State
	draft.Data.MedicalPDF = documentDataURI
	draft.State = models.FlowStateAnalyzingDocument
	if err := service.drafts.Save(&draft); err != nil {
		return models.OnboardingDraft{}, models.ExtractedHighlights{}, err
	}

	highlights, err := service.requester.RequestHighlights(ctx, userID, documentDataURI)

	// The user may keep editing while extraction runs, so merge into the
	// latest persisted draft, not the snapshot taken before the request.
	current, loadErr := service.drafts.Load(userID)
	if loadErr != nil {
		current = draft
	}
	if current.State == models.FlowStateAnalyzingDocument {
		current.State = previousState
	}
	if err != nil {
		if saveErr := service.drafts.Save(&current); saveErr != nil {
			service.logger.Warn("restore draft state failed", zap.Error(saveErr))
		}
		return models.OnboardingDraft{}, models.ExtractedHighlights{}, err
	}

	applyExtractedHighlights(&current, highlights)
	if err := service.drafts.Save(&current); err != nil {
		return models.OnboardingDraft{}, models.ExtractedHighlights{}, err
	}
	return current, highlights, nil
}

// Submit re-validates the full draft at the trust boundary, requests plan
// generation and persists the result. On provider failure the machine stays
// in CollectingGoals and nothing is stored.
func (service *OnboardingFlowService) Submit(ctx context.Context, userID uint) (models.PlanRecord, error) {
	draft, err := service.drafts.Load(userID)
	if err != nil {
		return models.PlanRecord{}, ErrOnboardingStepRequired
	}
	if ValidateOnboardingBasics(draft.Data) != nil {
		return models.PlanRecord{}, ErrOnboardingStepRequired
	}
	if err := ValidateOnboardingInput(draft.Data); err != nil {
		return models.PlanRecord{}, err
	}
	if !canTransition(draft.State, models.FlowStateSubmitting) {
		return models.PlanRecord{}, fmt.Errorf("%w: %s -> %s", ErrFlowTransition, draft.State, models.FlowStateSubmitting)
	}

	draft.State = models.FlowStateSubmitting
	if err := service.drafts.Save(&draft); err != nil {
		return models.PlanRecord{}, err
	}

	// Risk stratification is advisory context for the plan prompt; its
	// failure must not lose the user's submission.
	var risk *models.RiskAssessment
	if strings.TrimSpace(draft.Data.MedicalHistory) != "" {
		assessment, err := service.requester.RequestRiskAssessment(ctx, draft.Data)
		if err != nil {
			service.logger.Warn("risk assessment failed", zap.Error(err))
		} else {
			risk = &assessment
		}
	}

	document, err := service.requester.RequestNewPlan(ctx, draft.Data, risk)
	if err != nil {
		draft.State = models.FlowStateCollectingGoals
		if saveErr := service.drafts.Save(&draft); saveErr != nil {
			service.logger.Warn("restore draft state failed", zap.Error(saveErr))
		}
		return models.PlanRecord{}, err
	}

	record := models.PlanRecord{
		ID:         uuid.NewString(),
		Name:       resolvePlanName(draft.Data.PlanName, time.Now()),
		CreatedAt:  time.Now(),
		Onboarding: draft.Data,
		Plan:       document,
	}
	if err := service.plans.Create(userID, &record); err != nil {
		return models.PlanRecord{}, err
	}

	if err := service.drafts.Clear(userID); err != nil {
		service.logger.Warn("clear onboarding draft failed", zap.Error(err))
	}
	return record, nil
}

func canTransition(from string, to string) bool {
	switch to {
	case models.FlowStateCollectingGoals:
		return from == models.FlowStateCollectingBasics ||
			from == models.FlowStateCollectingGoals ||
			from == models.FlowStateAnalyzingDocument
	case models.FlowStateSubmitting:
		return from == models.FlowStateCollectingGoals ||
			from == models.FlowStateAnalyzingDocument
	case models.FlowStateAnalyzingDocument:
		return from != models.FlowStateSubmitting && from != models.FlowStateComplete
	case models.FlowStateComplete:
		return from == models.FlowStateSubmitting
	default:
		return false
	}
}

func resolvePlanName(planName string, now time.Time) string {
	name := strings.TrimSpace(planName)
	if name != "" {
		return name
	}
	return "Plan " + now.Format("Jan 2, 2006")
}

func markTouched(draft *models.OnboardingDraft, fields ...string) {
	for _, field := range fields {
		if !slices.Contains(draft.Touched, field) {
			draft.Touched = append(draft.Touched, field)
		}
	}
}

func applyExtractedHighlights(draft *models.OnboardingDraft, highlights models.ExtractedHighlights) {
	if highlights.Age != nil && !slices.Contains(draft.Touched, "age") {
		draft.Data.Age = *highlights.Age
	}
	if highlights.Sex != "" && !slices.Contains(draft.Touched, "sex") {
		draft.Data.Sex = highlights.Sex
	}
	if highlights.Height != nil && !slices.Contains(draft.Touched, "height") {
		draft.Data.Height = *highlights.Height
	}
	if highlights.Weight != nil && !slices.Contains(draft.Touched, "weight") {
		draft.Data.Weight = *highlights.Weight
	}
}
