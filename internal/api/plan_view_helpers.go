package api

import (
	"time"

	"github.com/activelife/activelife/internal/models"
)

// planView is the wire shape of a plan. The client branches on Format:
// legacy plans carry prose, structured plans carry days and a diet object.
type planView struct {
	ID           string                 `json:"id"`
	Name         string                 `json:"name"`
	CreatedAt    time.Time              `json:"createdAt"`
	Format       string                 `json:"format"`
	ExerciseText string                 `json:"exerciseText,omitempty"`
	DietText     string                 `json:"dietText,omitempty"`
	Days         []models.DailyExercise `json:"days,omitempty"`
	Diet         *models.DietPlan       `json:"diet,omitempty"`
	Macros       []macroSegment         `json:"macros,omitempty"`
	SafetyAdvice string                 `json:"safetyAdvice"`
	FocusOptions []string               `json:"focusOptions"`
}

// macroSegment is one slice of the macro breakdown chart. Percentages are
// rendered exactly as generated, never re-normalized to sum to 100.
type macroSegment struct {
	Label   string  `json:"label"`
	Percent float64 `json:"percent"`
}

type planSummaryView struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"createdAt"`
	Format    string    `json:"format"`
}

func buildPlanView(record models.PlanRecord) planView {
	view := planView{
		ID:           record.ID,
		Name:         record.Name,
		CreatedAt:    record.CreatedAt,
		Format:       record.Plan.Format,
		SafetyAdvice: record.Plan.SafetyAdvice,
		FocusOptions: record.Plan.FocusValues(),
	}
	if view.FocusOptions == nil {
		view.FocusOptions = []string{}
	}

	switch record.Plan.Format {
	case models.PlanFormatLegacy:
		view.ExerciseText = record.Plan.ExerciseText
		view.DietText = record.Plan.DietText
	case models.PlanFormatStructured:
		view.Days = record.Plan.Days
		view.Diet = record.Plan.Diet
	}

	view.Macros = buildMacroSegments(record.Plan.Macros)
	return view
}

func buildMacroSegments(macros *models.Macros) []macroSegment {
	if macros == nil {
		return nil
	}
	return []macroSegment{
		{Label: "Carbs", Percent: macros.Carbs},
		{Label: "Protein", Percent: macros.Protein},
		{Label: "Fat", Percent: macros.Fat},
	}
}

func buildPlanSummaries(records []models.PlanRecord) []planSummaryView {
	summaries := make([]planSummaryView, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, planSummaryView{
			ID:        record.ID,
			Name:      record.Name,
			CreatedAt: record.CreatedAt,
			Format:    record.Plan.Format,
		})
	}
	return summaries
}
