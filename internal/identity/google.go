// Package identity verifies third-party sign-in tokens.
package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"
)

var ErrTokenInvalid = errors.New("identity token invalid")

// Identity is the verified subject behind an OAuth credential.
type Identity struct {
	Subject     string
	Email       string
	DisplayName string
	PhotoURL    string
}

// Verifier checks a provider-issued ID token and returns the identity it
// asserts.
type Verifier interface {
	Verify(ctx context.Context, idToken string) (Identity, error)
}

const googleTokenInfoURL = "https://oauth2.googleapis.com/tokeninfo"

// GoogleVerifier validates Google ID tokens against the tokeninfo endpoint
// and checks the audience matches our OAuth client.
type GoogleVerifier struct {
	clientID   string
	httpClient *http.Client
	endpoint   string
}

func NewGoogleVerifier(clientID string) *GoogleVerifier {
	return &GoogleVerifier{
		clientID:   clientID,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		endpoint:   googleTokenInfoURL,
	}
}

type tokenInfoResponse struct {
	Subject string `json:"sub"`
	Email   string `json:"email"`
	Name    string `json:"name"`
	Picture string `json:"picture"`
	Aud     string `json:"aud"`
}

func (verifier *GoogleVerifier) Verify(ctx context.Context, idToken string) (Identity, error) {
	if idToken == "" {
		return Identity{}, ErrTokenInvalid
	}

	query := url.Values{"id_token": {idToken}}
	request, err := http.NewRequestWithContext(ctx, http.MethodGet, verifier.endpoint+"?"+query.Encode(), nil)
	if err != nil {
		return Identity{}, fmt.Errorf("build tokeninfo request: %w", err)
	}

	response, err := verifier.httpClient.Do(request)
	if err != nil {
		return Identity{}, fmt.Errorf("tokeninfo request: %w", err)
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return Identity{}, ErrTokenInvalid
	}

	body, err := io.ReadAll(io.LimitReader(response.Body, 1<<20))
	if err != nil {
		return Identity{}, fmt.Errorf("read tokeninfo response: %w", err)
	}

	var info tokenInfoResponse
	if err := json.Unmarshal(body, &info); err != nil {
		return Identity{}, fmt.Errorf("decode tokeninfo response: %w", err)
	}
	if info.Subject == "" || info.Email == "" {
		return Identity{}, ErrTokenInvalid
	}
	if verifier.clientID != "" && info.Aud != verifier.clientID {
		return Identity{}, ErrTokenInvalid
	}

	return Identity{
		Subject:     info.Subject,
		Email:       info.Email,
		DisplayName: info.Name,
		PhotoURL:    info.Picture,
	}, nil
}
