package router

import (
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	jose "gopkg.in/go-jose/go-jose.v2"
	"gopkg.in/go-jose/go-jose.v2/jwt"

	"github.com/jbeshir/joke-feed/internal/command"
	"github.com/jbeshir/joke-feed/internal/datasources/mocks"
	"github.com/jbeshir/joke-feed/internal/domain"
)

const (
	testSecret   = "test-secret-at-least-32-bytes-long!!"
	testIssuer   = "https://gateway.example.com/"
	testAudience = "joke-feed"
)

type capturedIdentity struct {
	called bool
	userID int64
	method domain.AuthMethod
}

func capturingHandler(got *capturedIdentity) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		got.called = true
		got.userID = domain.UserIDFromContext(r.Context())
		got.method = domain.AuthMethodFromContext(r.Context())
		w.WriteHeader(http.StatusNoContent)
	})
}

func signTestToken(t *testing.T, secret, subject string, expiry time.Time) string {
	t.Helper()

	signer, err := jose.NewSigner(
		jose.SigningKey{Algorithm: jose.HS256, Key: []byte(secret)},
		(&jose.SignerOptions{}).WithType("JWT"),
	)
	require.NoError(t, err)

	token, err := jwt.Signed(signer).
		Claims(jwt.Claims{
			Issuer:   testIssuer,
			Subject:  subject,
			Audience: jwt.Audience{testAudience},
			IssuedAt: jwt.NewNumericDate(time.Now()),
			Expiry:   jwt.NewNumericDate(expiry),
		}).
		Claims(map[string]interface{}{
			"preferred_username": "jdoe",
			"given_name":         "Jane",
		}).
		CompactSerialize()
	require.NoError(t, err)

	return token
}

func newTestRequest(headers map[string]string) *http.Request {
	req := httptest.NewRequest(http.MethodGet, "/v1/me/profile", nil)
	for k, v := range headers {
		req.Header.Set(k, v)
	}
	return req.WithContext(domain.ContextWithLogger(req.Context(), slog.New(slog.DiscardHandler)))
}

func TestAuthMiddleware_HeaderValidator(t *testing.T) {
	catalog := mocks.NewMockCatalog(t)
	catalog.EXPECT().GetOrCreateUser(mock.Anything, domain.User{
		ExternalID: "12345",
		Username:   "jdoe",
		FirstName:  "Jane",
	}).Return(domain.User{ID: 42, ExternalID: "12345"}, nil).Once()

	middleware := NewAuthMiddleware([]AuthValidator{NewHeaderValidator()}, command.NewRegisterUser(catalog))

	var got capturedIdentity
	rec := httptest.NewRecorder()
	middleware(capturingHandler(&got)).ServeHTTP(rec, newTestRequest(map[string]string{
		HeaderUserID:    " 12345 ",
		HeaderUsername:  "jdoe",
		HeaderFirstName: "Jane",
	}))

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.True(t, got.called)
	assert.Equal(t, int64(42), got.userID)
	assert.Equal(t, domain.AuthMethodHeader, got.method)
}

func TestAuthMiddleware_NoCredentialsPassesThrough(t *testing.T) {
	catalog := mocks.NewMockCatalog(t)
	middleware := NewAuthMiddleware([]AuthValidator{NewHeaderValidator()}, command.NewRegisterUser(catalog))

	var got capturedIdentity
	rec := httptest.NewRecorder()
	middleware(capturingHandler(&got)).ServeHTTP(rec, newTestRequest(nil))

	assert.True(t, got.called)
	assert.Zero(t, got.userID)
}

func TestAuthMiddleware_RegistrationFailure(t *testing.T) {
	catalog := mocks.NewMockCatalog(t)
	catalog.EXPECT().GetOrCreateUser(mock.Anything, mock.Anything).
		Return(domain.User{}, assert.AnError).Once()

	middleware := NewAuthMiddleware([]AuthValidator{NewHeaderValidator()}, command.NewRegisterUser(catalog))

	var got capturedIdentity
	rec := httptest.NewRecorder()
	middleware(capturingHandler(&got)).ServeHTTP(rec, newTestRequest(map[string]string{HeaderUserID: "12345"}))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.False(t, got.called)
}

func TestAuthMiddleware_JWTValidator(t *testing.T) {
	jwtValidator, err := NewJWTValidator(testSecret, testIssuer, testAudience)
	require.NoError(t, err)

	t.Run("valid_token", func(t *testing.T) {
		catalog := mocks.NewMockCatalog(t)
		catalog.EXPECT().GetOrCreateUser(mock.Anything, domain.User{
			ExternalID: "tg:987",
			Username:   "jdoe",
			FirstName:  "Jane",
		}).Return(domain.User{ID: 7, ExternalID: "tg:987"}, nil).Once()

		middleware := NewAuthMiddleware([]AuthValidator{jwtValidator}, command.NewRegisterUser(catalog))
		token := signTestToken(t, testSecret, "tg:987", time.Now().Add(time.Hour))

		var got capturedIdentity
		rec := httptest.NewRecorder()
		middleware(capturingHandler(&got)).ServeHTTP(rec, newTestRequest(map[string]string{
			"Authorization": "Bearer " + token,
		}))

		assert.Equal(t, http.StatusNoContent, rec.Code)
		assert.Equal(t, int64(7), got.userID)
		assert.Equal(t, domain.AuthMethodJWT, got.method)
	})

	cases := []struct {
		name  string
		token func(t *testing.T) string
	}{
		{
			name:  "garbage",
			token: func(*testing.T) string { return "not-a-jwt" },
		},
		{
			name: "wrong_secret",
			token: func(t *testing.T) string {
				return signTestToken(t, "another-secret-at-least-32-bytes!!", "tg:987", time.Now().Add(time.Hour))
			},
		},
		{
			name: "expired",
			token: func(t *testing.T) string {
				return signTestToken(t, testSecret, "tg:987", time.Now().Add(-time.Hour))
			},
		},
		{
			name: "no_subject",
			token: func(t *testing.T) string {
				return signTestToken(t, testSecret, "", time.Now().Add(time.Hour))
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			catalog := mocks.NewMockCatalog(t)
			middleware := NewAuthMiddleware([]AuthValidator{jwtValidator}, command.NewRegisterUser(catalog))

			var got capturedIdentity
			rec := httptest.NewRecorder()
			middleware(capturingHandler(&got)).ServeHTTP(rec, newTestRequest(map[string]string{
				"Authorization": "Bearer " + tc.token(t),
			}))

			assert.Equal(t, http.StatusUnauthorized, rec.Code)
			assert.False(t, got.called)
		})
	}
}

func TestNewJWTValidator_EmptySecret(t *testing.T) {
	_, err := NewJWTValidator("", testIssuer, testAudience)
	assert.Error(t, err)
}

func TestRequireAuthMiddleware(t *testing.T) {
	var got capturedIdentity
	handler := requireAuthMiddleware(capturingHandler(&got))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, newTestRequest(nil))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.False(t, got.called)

	req := newTestRequest(nil)
	req = req.WithContext(domain.ContextWithUserID(req.Context(), 3))
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, int64(3), got.userID)
}
