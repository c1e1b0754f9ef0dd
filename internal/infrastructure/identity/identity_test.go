package identity

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/cryptokey/dashboard-api/internal/config"
	"github.com/cryptokey/dashboard-api/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMapProviderError(t *testing.T) {
	cases := []struct {
		code string
		want error
	}{
		{"EMAIL_EXISTS", domain.ErrEmailInUse},
		{"WEAK_PASSWORD : Password should be at least 6 characters", domain.ErrWeakCredential},
		{"EMAIL_NOT_FOUND", domain.ErrUnauthorized},
		{"INVALID_PASSWORD", domain.ErrUnauthorized},
		{"INVALID_LOGIN_CREDENTIALS", domain.ErrUnauthorized},
	}
	for _, tc := range cases {
		t.Run(tc.code, func(t *testing.T) {
			assert.True(t, errors.Is(mapProviderError(tc.code), tc.want))
		})
	}
}

func TestMapProviderError_UnknownCodePropagates(t *testing.T) {
	err := mapProviderError("TOO_MANY_ATTEMPTS_TRY_LATER")
	require.Error(t, err)
	assert.False(t, errors.Is(err, domain.ErrEmailInUse))
	assert.False(t, errors.Is(err, domain.ErrUnauthorized))
	assert.Contains(t, err.Error(), "TOO_MANY_ATTEMPTS_TRY_LATER")
}

func newFakeToolkit(t *testing.T, handler http.HandlerFunc) *FirebaseProvider {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewFirebaseProvider(&config.Config{IdentityAPIKey: "test-key", IdentityBaseURL: srv.URL})
}

func TestFirebaseSignUp_HappyPath(t *testing.T) {
	provider := newFakeToolkit(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts:signUp", r.URL.Path)
		assert.Equal(t, "test-key", r.URL.Query().Get("key"))

		var req map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&req))
		assert.Equal(t, "new@x.com", req["email"])
		assert.Equal(t, true, req["returnSecureToken"])

		json.NewEncoder(w).Encode(map[string]any{"localId": "fb-123", "email": "new@x.com"})
	})

	acct, err := provider.SignUp(context.Background(), "new@x.com", "secret1")

	require.NoError(t, err)
	assert.Equal(t, "fb-123", acct.UserID)
	assert.Equal(t, "new@x.com", acct.Email)
}

func TestFirebaseSignUp_EmailExists(t *testing.T) {
	provider := newFakeToolkit(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "EMAIL_EXISTS"}})
	})

	_, err := provider.SignUp(context.Background(), "taken@x.com", "secret1")

	assert.True(t, errors.Is(err, domain.ErrEmailInUse))
}

func TestFirebaseSignIn_BadPassword(t *testing.T) {
	provider := newFakeToolkit(t, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/v1/accounts:signInWithPassword", r.URL.Path)
		w.WriteHeader(http.StatusBadRequest)
		json.NewEncoder(w).Encode(map[string]any{"error": map[string]any{"message": "INVALID_LOGIN_CREDENTIALS"}})
	})

	_, err := provider.SignIn(context.Background(), "me@x.com", "wrong")

	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

// --- LocalProvider ---

type memCredStore struct {
	mu    sync.Mutex
	creds map[string]*domain.Credential
}

func newMemCredStore() *memCredStore {
	return &memCredStore{creds: map[string]*domain.Credential{}}
}

func (s *memCredStore) Put(ctx context.Context, c *domain.Credential) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.creds[c.Email] = c
	return nil
}

func (s *memCredStore) Get(ctx context.Context, email string) (*domain.Credential, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	c, ok := s.creds[email]
	if !ok {
		return nil, domain.ErrNotFound
	}
	return c, nil
}

func TestLocalProvider_SignUpSignInRoundTrip(t *testing.T) {
	provider := NewLocalProvider(newMemCredStore())

	acct, err := provider.SignUp(context.Background(), "me@x.com", "secret1")
	require.NoError(t, err)
	assert.NotEmpty(t, acct.UserID)

	got, err := provider.SignIn(context.Background(), "me@x.com", "secret1")
	require.NoError(t, err)
	assert.Equal(t, acct.UserID, got.UserID)
}

func TestLocalProvider_DuplicateEmail(t *testing.T) {
	provider := NewLocalProvider(newMemCredStore())

	_, err := provider.SignUp(context.Background(), "me@x.com", "secret1")
	require.NoError(t, err)

	_, err = provider.SignUp(context.Background(), "me@x.com", "another1")
	assert.True(t, errors.Is(err, domain.ErrEmailInUse))
}

func TestLocalProvider_ShortPassword(t *testing.T) {
	provider := NewLocalProvider(newMemCredStore())

	_, err := provider.SignUp(context.Background(), "me@x.com", "short")
	assert.True(t, errors.Is(err, domain.ErrWeakCredential))
}

func TestLocalProvider_WrongPassword(t *testing.T) {
	provider := NewLocalProvider(newMemCredStore())
	_, err := provider.SignUp(context.Background(), "me@x.com", "secret1")
	require.NoError(t, err)

	_, err = provider.SignIn(context.Background(), "me@x.com", "nope123")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}

func TestLocalProvider_UnknownEmail(t *testing.T) {
	provider := NewLocalProvider(newMemCredStore())

	_, err := provider.SignIn(context.Background(), "ghost@x.com", "secret1")
	assert.True(t, errors.Is(err, domain.ErrUnauthorized))
}
