package api

import (
	"net/http"
	"testing"

	"github.com/activelife/activelife/internal/planner"
)

func TestOnboarding_GoalsBeforeBasicsRedirectsToStart(t *testing.T) {
	app, _, _ := newTestApp(t)
	authCookie := registerAndAuthenticate(t, app, "jamie@example.com")

	goals := map[string]string{"fitnessGoals": "build strength and stay injury free"}
	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/onboarding/goals", goals, authCookie), -1)
	if err != nil {
		t.Fatalf("goals request failed: %v", err)
	}
	if response.StatusCode != http.StatusConflict {
		t.Fatalf("expected status 409, got %d", response.StatusCode)
	}

	payload := struct {
		Redirect string `json:"redirect"`
	}{}
	decodeJSONBody(t, response, &payload)
	if payload.Redirect != "/onboarding" {
		t.Fatalf("expected redirect to onboarding, got %q", payload.Redirect)
	}
}

func TestOnboarding_BasicsValidationListsEveryViolation(t *testing.T) {
	app, _, _ := newTestApp(t)
	authCookie := registerAndAuthenticate(t, app, "jamie@example.com")

	basics := map[string]any{"age": 5, "sex": "unknown", "height": 90, "weight": 10}
	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/onboarding/basics", basics, authCookie), -1)
	if err != nil {
		t.Fatalf("basics request failed: %v", err)
	}
	if response.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected status 400, got %d", response.StatusCode)
	}

	payload := struct {
		Fields map[string]string `json:"fields"`
	}{}
	decodeJSONBody(t, response, &payload)
	for _, field := range []string{"age", "sex", "height", "weight"} {
		if _, ok := payload.Fields[field]; !ok {
			t.Fatalf("expected violation for %q, got %v", field, payload.Fields)
		}
	}
}

func TestOnboarding_FullJourneyCreatesRetrievablePlan(t *testing.T) {
	app, _, _ := newTestApp(t)
	authCookie := registerAndAuthenticate(t, app, "jamie@example.com")

	planID := completeOnboarding(t, app, authCookie)

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/api/plans/"+planID, nil, authCookie), -1)
	if err != nil {
		t.Fatalf("get plan failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	payload := struct {
		Plan struct {
			Format       string   `json:"format"`
			SafetyAdvice string   `json:"safetyAdvice"`
			FocusOptions []string `json:"focusOptions"`
		} `json:"plan"`
	}{}
	decodeJSONBody(t, response, &payload)
	if payload.Plan.Format != "structured" {
		t.Fatalf("expected structured plan, got %q", payload.Plan.Format)
	}
	if payload.Plan.SafetyAdvice == "" {
		t.Fatal("expected safety advice on the stored plan")
	}
	if len(payload.Plan.FocusOptions) == 0 {
		t.Fatal("expected focus options derived from plan days")
	}

	// A successful submit consumes the wizard draft.
	response, err = app.Test(jsonRequest(t, http.MethodGet, "/api/onboarding", nil, authCookie), -1)
	if err != nil {
		t.Fatalf("get onboarding failed: %v", err)
	}
	state := struct {
		State string `json:"state"`
	}{}
	decodeJSONBody(t, response, &state)
	if state.State != "collecting_basics" {
		t.Fatalf("expected a fresh wizard after submit, got state %q", state.State)
	}
}

func TestOnboarding_ProviderQuotaSurfacesAsTooManyRequests(t *testing.T) {
	app, _, generator := newTestApp(t)
	authCookie := registerAndAuthenticate(t, app, "jamie@example.com")
	generator.planErr = planner.ErrProviderQuota

	basics := map[string]any{"age": 30, "sex": "female", "height": 170, "weight": 65}
	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/onboarding/basics", basics, authCookie), -1)
	if err != nil {
		t.Fatalf("basics request failed: %v", err)
	}
	response.Body.Close()

	goals := map[string]string{"fitnessGoals": "build strength and stay injury free"}
	response, err = app.Test(jsonRequest(t, http.MethodPost, "/api/onboarding/goals", goals, authCookie), -1)
	if err != nil {
		t.Fatalf("goals request failed: %v", err)
	}
	response.Body.Close()

	response, err = app.Test(jsonRequest(t, http.MethodPost, "/api/onboarding/submit", nil, authCookie), -1)
	if err != nil {
		t.Fatalf("submit request failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusTooManyRequests {
		t.Fatalf("expected status 429, got %d", response.StatusCode)
	}

	// The wizard stays at the goals step so the user can retry.
	response, err = app.Test(jsonRequest(t, http.MethodGet, "/api/onboarding", nil, authCookie), -1)
	if err != nil {
		t.Fatalf("get onboarding failed: %v", err)
	}
	state := struct {
		State string `json:"state"`
	}{}
	decodeJSONBody(t, response, &state)
	if state.State != "collecting_goals" {
		t.Fatalf("expected wizard back at goals, got %q", state.State)
	}
}

func TestOnboarding_DocumentUploadReturnsHighlights(t *testing.T) {
	app, _, generator := newTestApp(t)
	authCookie := registerAndAuthenticate(t, app, "jamie@example.com")

	extractedAge := 52
	generator.highlights.Highlights = "Asthma, controlled with medication"
	generator.highlights.Age = &extractedAge

	document := map[string]string{"document": "data:application/pdf;base64,JVBERi0xLjQ="}
	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/onboarding/document", document, authCookie), -1)
	if err != nil {
		t.Fatalf("document request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected status 200, got %d", response.StatusCode)
	}

	payload := struct {
		Highlights struct {
			Highlights string `json:"highlights"`
			Age        *int   `json:"age"`
		} `json:"highlights"`
		Draft struct {
			Data struct {
				Age int `json:"age"`
			} `json:"data"`
		} `json:"draft"`
	}{}
	decodeJSONBody(t, response, &payload)
	if payload.Highlights.Highlights == "" {
		t.Fatal("expected extraction highlights in response")
	}
	if payload.Draft.Data.Age != 52 {
		t.Fatalf("expected extracted age applied to untouched draft, got %d", payload.Draft.Data.Age)
	}
}
