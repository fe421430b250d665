package router

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/auth0/go-jwt-middleware/v2/validator"

	"github.com/jbeshir/joke-feed/internal/command"
	"github.com/jbeshir/joke-feed/internal/domain"
)

// AuthResult represents the result of a successful authentication.
type AuthResult struct {
	ExternalID string
	Username   string
	FirstName  string
	LastName   string
	Method     domain.AuthMethod
}

// AuthValidator attempts to validate authentication from a request.
// Returns nil, nil if this validator doesn't apply (wrong auth type).
// Returns AuthResult, nil on success.
// Returns nil, error if validation was attempted but failed.
type AuthValidator func(r *http.Request) (*AuthResult, error)

// NewAuthMiddleware creates a middleware that validates requests using multiple
// authentication methods, registering the caller on first sight.
func NewAuthMiddleware(
	validators []AuthValidator,
	registerUser command.Command[command.RegisterUserRequest, domain.User],
) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			for _, validate := range validators {
				result, err := validate(r)
				if result == nil && err == nil {
					continue // This validator doesn't apply
				}

				logger := domain.LoggerFromContext(r.Context())
				if err != nil {
					logger.WarnContext(r.Context(), "authentication failed", "error", err)
					w.Header().Set("Content-Type", "application/json")
					w.WriteHeader(http.StatusUnauthorized)
					_, _ = fmt.Fprintf(w, `{"message":"%s"}`, err.Error())
					return
				}

				user, err := registerUser.Execute(r.Context(), command.RegisterUserRequest{
					ExternalID: result.ExternalID,
					Username:   result.Username,
					FirstName:  result.FirstName,
					LastName:   result.LastName,
				})
				if err != nil {
					logger.ErrorContext(r.Context(), "unable to register user",
						"external_id", result.ExternalID, "error", err)
					w.WriteHeader(http.StatusInternalServerError)
					return
				}

				ctx := domain.ContextWithUserID(r.Context(), user.ID)
				ctx = domain.ContextWithAuthMethod(ctx, result.Method)
				ctx = domain.ContextWithLogger(ctx, logger.With("user_id", user.ID))
				next.ServeHTTP(w, r.WithContext(ctx))
				return
			}

			// No validator matched - continue without auth (for public endpoints)
			next.ServeHTTP(w, r)
		})
	}
}

// UserClaims are the profile claims the chat gateway adds to its tokens.
type UserClaims struct {
	Username  string `json:"preferred_username"`
	FirstName string `json:"given_name"`
	LastName  string `json:"family_name"`
}

func (c *UserClaims) Validate(context.Context) error {
	return nil
}

// NewJWTValidator creates a validator for HS256 tokens signed by the chat gateway.
func NewJWTValidator(secret, issuer, audience string) (AuthValidator, error) {
	if secret == "" {
		return nil, errors.New("JWT secret must not be empty")
	}

	keyFunc := func(context.Context) (interface{}, error) {
		return []byte(secret), nil
	}

	jwtValidator, err := validator.New(
		keyFunc,
		validator.HS256,
		issuer,
		[]string{audience},
		validator.WithCustomClaims(func() validator.CustomClaims { return &UserClaims{} }),
		validator.WithAllowedClockSkew(time.Minute),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create JWT validator: %w", err)
	}

	return func(r *http.Request) (*AuthResult, error) {
		authHeader := r.Header.Get("Authorization")
		if !strings.HasPrefix(authHeader, "Bearer ") {
			return nil, nil
		}

		token, err := jwtValidator.ValidateToken(r.Context(), authHeader[len("Bearer "):])
		if err != nil {
			return nil, fmt.Errorf("invalid JWT token")
		}

		claims := token.(*validator.ValidatedClaims)
		if claims.RegisteredClaims.Subject == "" {
			return nil, fmt.Errorf("JWT token has no subject")
		}

		result := &AuthResult{
			ExternalID: claims.RegisteredClaims.Subject,
			Method:     domain.AuthMethodJWT,
		}
		if profile, ok := claims.CustomClaims.(*UserClaims); ok {
			result.Username = profile.Username
			result.FirstName = profile.FirstName
			result.LastName = profile.LastName
		}
		return result, nil
	}, nil
}

// Headers set by a trusted gateway in front of the service.
const (
	HeaderUserID    = "X-User-Id"
	HeaderUsername  = "X-Username"
	HeaderFirstName = "X-User-First-Name"
	HeaderLastName  = "X-User-Last-Name"
)

// NewHeaderValidator trusts identity headers set by a gateway. Only enable it
// when the service is not reachable except through that gateway.
func NewHeaderValidator() AuthValidator {
	return func(r *http.Request) (*AuthResult, error) {
		externalID := strings.TrimSpace(r.Header.Get(HeaderUserID))
		if externalID == "" {
			return nil, nil
		}

		return &AuthResult{
			ExternalID: externalID,
			Username:   r.Header.Get(HeaderUsername),
			FirstName:  r.Header.Get(HeaderFirstName),
			LastName:   r.Header.Get(HeaderLastName),
			Method:     domain.AuthMethodHeader,
		}, nil
	}
}
