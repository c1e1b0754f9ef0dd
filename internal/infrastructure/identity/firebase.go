package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/cryptokey/dashboard-api/internal/config"
	"github.com/cryptokey/dashboard-api/internal/domain"
)

// FirebaseProvider talks to the Firebase Auth REST API (Identity Toolkit).
// The Admin SDK is deliberately not used: it has no password sign-up or
// sign-in path and cannot surface the provider's credential error codes.
type FirebaseProvider struct {
	apiKey  string
	baseURL string
	httpc   *http.Client
}

func NewFirebaseProvider(cfg *config.Config) *FirebaseProvider {
	return &FirebaseProvider{
		apiKey:  cfg.IdentityAPIKey,
		baseURL: strings.TrimRight(cfg.IdentityBaseURL, "/"),
		httpc:   http.DefaultClient,
	}
}

type authRequest struct {
	Email             string `json:"email"`
	Password          string `json:"password"`
	ReturnSecureToken bool   `json:"returnSecureToken"`
}

type authResponse struct {
	LocalID string `json:"localId"`
	Email   string `json:"email"`
	Error   *struct {
		Message string `json:"message"`
	} `json:"error"`
}

func (p *FirebaseProvider) SignUp(ctx context.Context, email, password string) (*Account, error) {
	return p.call(ctx, "accounts:signUp", email, password)
}

func (p *FirebaseProvider) SignIn(ctx context.Context, email, password string) (*Account, error) {
	return p.call(ctx, "accounts:signInWithPassword", email, password)
}

func (p *FirebaseProvider) call(ctx context.Context, endpoint, email, password string) (*Account, error) {
	body, err := json.Marshal(authRequest{Email: email, Password: password, ReturnSecureToken: true})
	if err != nil {
		return nil, err
	}
	url := fmt.Sprintf("%s/v1/%s?key=%s", p.baseURL, endpoint, p.apiKey)
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(body))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := p.httpc.Do(req)
	if err != nil {
		return nil, fmt.Errorf("identity provider: %w", err)
	}
	defer resp.Body.Close()

	var out authResponse
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return nil, fmt.Errorf("identity provider: decode response: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		code := ""
		if out.Error != nil {
			code = out.Error.Message
		}
		return nil, mapProviderError(code)
	}
	return &Account{UserID: out.LocalID, Email: out.Email}, nil
}

// mapProviderError collapses Identity Toolkit error codes into the closed
// domain taxonomy. Codes may carry a trailing detail ("WEAK_PASSWORD : ...").
func mapProviderError(code string) error {
	switch {
	case strings.HasPrefix(code, "EMAIL_EXISTS"):
		return domain.ErrEmailInUse
	case strings.HasPrefix(code, "WEAK_PASSWORD"):
		return domain.ErrWeakCredential
	case strings.HasPrefix(code, "EMAIL_NOT_FOUND"),
		strings.HasPrefix(code, "INVALID_PASSWORD"),
		strings.HasPrefix(code, "INVALID_LOGIN_CREDENTIALS"):
		return fmt.Errorf("invalid credentials: %w", domain.ErrUnauthorized)
	case code == "":
		return fmt.Errorf("identity provider: request rejected")
	default:
		return fmt.Errorf("identity provider: %s", code)
	}
}
