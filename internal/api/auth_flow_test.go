package api

import (
	"net/http"
	"testing"
)

func TestAuthFlow_RegisterLoginAndMe(t *testing.T) {
	app, _, _ := newTestApp(t)

	authCookie := registerAndAuthenticate(t, app, "jamie@example.com")

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/api/auth/me", nil, authCookie), -1)
	if err != nil {
		t.Fatalf("me request failed: %v", err)
	}
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected me status 200, got %d", response.StatusCode)
	}

	payload := struct {
		User struct {
			Email     string `json:"email"`
			Provider  string `json:"provider"`
			Anonymous bool   `json:"anonymous"`
		} `json:"user"`
	}{}
	decodeJSONBody(t, response, &payload)
	if payload.User.Email != "jamie@example.com" || payload.User.Provider != "password" {
		t.Fatalf("unexpected user payload: %+v", payload.User)
	}

	response, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "jamie@example.com",
		"password": "WrongPass1",
	}, ""), -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected wrong-password status 401, got %d", response.StatusCode)
	}

	response, err = app.Test(jsonRequest(t, http.MethodPost, "/api/auth/login", map[string]string{
		"email":    "jamie@example.com",
		"password": "Str0ngPass",
	}, ""), -1)
	if err != nil {
		t.Fatalf("login request failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusOK {
		t.Fatalf("expected login status 200, got %d", response.StatusCode)
	}
}

func TestAuthFlow_GuestAccountsAreAnonymous(t *testing.T) {
	app, _, _ := newTestApp(t)

	response, err := app.Test(jsonRequest(t, http.MethodPost, "/api/auth/guest", nil, ""), -1)
	if err != nil {
		t.Fatalf("guest request failed: %v", err)
	}
	if response.StatusCode != http.StatusCreated {
		t.Fatalf("expected guest status 201, got %d", response.StatusCode)
	}

	payload := struct {
		User struct {
			Provider  string `json:"provider"`
			Anonymous bool   `json:"anonymous"`
		} `json:"user"`
	}{}
	decodeJSONBody(t, response, &payload)
	if payload.User.Provider != "anonymous" || !payload.User.Anonymous {
		t.Fatalf("expected anonymous guest, got %+v", payload.User)
	}
}

func TestAuthFlow_ProtectedRoutesRequireCookie(t *testing.T) {
	app, _, _ := newTestApp(t)

	response, err := app.Test(jsonRequest(t, http.MethodGet, "/api/plans", nil, ""), -1)
	if err != nil {
		t.Fatalf("plans request failed: %v", err)
	}
	response.Body.Close()
	if response.StatusCode != http.StatusUnauthorized {
		t.Fatalf("expected status 401 without cookie, got %d", response.StatusCode)
	}
}
