package api

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/activelife/activelife/internal/db"
	"github.com/activelife/activelife/internal/models"
	"github.com/activelife/activelife/internal/planner"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type scriptedGenerator struct {
	planResult models.PlanDocument
	planErr    error
	adjust     planner.AdjustmentResult
	adjustErr  error
	highlights models.ExtractedHighlights
	risk       models.RiskAssessment
}

func (generator *scriptedGenerator) GeneratePlan(_ context.Context, _ models.OnboardingData, _ *models.RiskAssessment) (models.PlanDocument, error) {
	return generator.planResult, generator.planErr
}

func (generator *scriptedGenerator) AdjustPlan(_ context.Context, _ planner.AdjustmentRequest) (planner.AdjustmentResult, error) {
	return generator.adjust, generator.adjustErr
}

func (generator *scriptedGenerator) ExtractHighlights(_ context.Context, _ string) (models.ExtractedHighlights, error) {
	return generator.highlights, nil
}

func (generator *scriptedGenerator) AssessRisk(_ context.Context, _ models.OnboardingData) (models.RiskAssessment, error) {
	return generator.risk, nil
}

func structuredTestDocument() models.PlanDocument {
	return models.PlanDocument{
		Format: models.PlanFormatStructured,
		Days: []models.DailyExercise{
			{Day: "Monday", Focus: "Push", Exercises: []models.Exercise{{Name: "Bench Press", Sets: "4", Reps: "8"}}},
		},
		Diet:         &models.DietPlan{Summary: "Protein forward"},
		Macros:       &models.Macros{Carbs: 40, Protein: 35, Fat: 25},
		SafetyAdvice: "Warm up before lifting",
	}
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *scriptedGenerator) {
	t.Helper()

	databasePath := filepath.Join(t.TempDir(), "activelife-api-test.db")
	database, err := db.OpenSQLite(databasePath)
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	sqlDB, err := database.DB()
	if err != nil {
		t.Fatalf("open sql db: %v", err)
	}
	t.Cleanup(func() {
		_ = sqlDB.Close()
	})

	generator := &scriptedGenerator{planResult: structuredTestDocument()}
	handler := NewHandler(database, "test-secret-key", generator, nil, false, nil)

	app := fiber.New()
	RegisterRoutes(app, handler)
	return app, database, generator
}

func jsonRequest(t *testing.T, method string, path string, payload any, authCookie string) *http.Request {
	t.Helper()

	var body io.Reader
	if payload != nil {
		encoded, err := json.Marshal(payload)
		if err != nil {
			t.Fatalf("encode request body: %v", err)
		}
		body = bytes.NewReader(encoded)
	}

	request := httptest.NewRequest(method, path, body)
	if payload != nil {
		request.Header.Set("Content-Type", "application/json")
	}
	if authCookie != "" {
		request.Header.Set("Cookie", authCookie)
	}
	return request
}

func decodeJSONBody(t *testing.T, response *http.Response, target any) {
	t.Helper()

	defer response.Body.Close()
	if err := json.NewDecoder(response.Body).Decode(target); err != nil {
		t.Fatalf("decode response body: %v", err)
	}
}

func registerAndAuthenticate(t *testing.T, app *fiber.App, email string) string {
	t.Helper()

	request := jsonRequest(t, http.MethodPost, "/api/auth/register", map[string]string{
		"email":    email,
		"password": "Str0ngPass",
	}, "")

	response, err := app.Test(request, -1)
	if err != nil {
		t.Fatalf("register request failed: %v", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected register status 201, got %d", response.StatusCode)
	}

	for _, cookie := range response.Cookies() {
		if cookie.Name == authCookieName && cookie.Value != "" {
			return cookie.Name + "=" + cookie.Value
		}
	}

	t.Fatal("auth cookie is missing in register response")
	return ""
}

func completeOnboarding(t *testing.T, app *fiber.App, authCookie string) string {
	t.Helper()

	basics := map[string]any{
		"age":    30,
		"sex":    "female",
		"height": 170,
		"weight": 65,
	}
	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/onboarding/basics", basics, authCookie), -1)
	if err != nil {
		t.Fatalf("basics request failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected basics status 200, got %d", response.StatusCode)
	}

	goals := map[string]string{"fitnessGoals": "build strength and stay injury free"}
	response, err = app.Test(jsonRequest(t, http.MethodPost, "/api/onboarding/goals", goals, authCookie), -1)
	if err != nil {
		t.Fatalf("goals request failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected goals status 200, got %d", response.StatusCode)
	}

	response, err = app.Test(jsonRequest(t, http.MethodPost, "/api/onboarding/submit", nil, authCookie), -1)
	if err != nil {
		t.Fatalf("submit request failed: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected submit status 201, got %d", response.StatusCode)
	}

	payload := struct {
		Plan struct {
			ID string `json:"id"`
		} `json:"plan"`
	}{}
	decodeJSONBody(t, response, &payload)
	if payload.Plan.ID == "" {
		t.Fatal("expected plan id in submit response")
	}
	return payload.Plan.ID
}
