package command

import (
	"context"
	"errors"
	"fmt"

	"github.com/jbeshir/joke-feed/internal/datasources"
	"github.com/jbeshir/joke-feed/internal/domain"
)

type RegisterUserRequest struct {
	ExternalID string
	Username   string
	FirstName  string
	LastName   string
}

// RegisterUser maps an external identity onto a stored user, creating it
// with neutral theme preferences on first sight.
type RegisterUser struct {
	Registrar datasources.UserRegistrar
}

// NewRegisterUser creates a properly initialized RegisterUser command.
func NewRegisterUser(registrar datasources.UserRegistrar) *RegisterUser {
	return &RegisterUser{Registrar: registrar}
}

func (c *RegisterUser) Execute(ctx context.Context, req RegisterUserRequest) (domain.User, error) {
	if req.ExternalID == "" {
		return domain.User{}, errors.New("external ID is required")
	}

	user, err := c.Registrar.GetOrCreateUser(ctx, domain.User{
		ExternalID: req.ExternalID,
		Username:   req.Username,
		FirstName:  req.FirstName,
		LastName:   req.LastName,
	})
	if err != nil {
		return domain.User{}, fmt.Errorf("getting or creating user: %w", err)
	}

	return user, nil
}
