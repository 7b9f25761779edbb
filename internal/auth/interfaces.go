package auth

import (
	"context"

	"github.com/google/uuid"
)

// Authenticator defines the registration and login operations.
type Authenticator interface {
	Register(ctx context.Context, input RegisterInput) (*AuthResult, error)
	Login(ctx context.Context, input LoginInput) (*AuthResult, error)
	Logout(ctx context.Context, identity Identity)
}

// TokenService defines the signed-token operations.
type TokenService interface {
	GenerateToken(userID, orgID uuid.UUID, email string) (string, error)
	ValidateToken(tokenString string) (*Claims, error)
}

// Compile-time interface satisfaction checks
var (
	_ Authenticator = (*Service)(nil)
	_ TokenService  = (*JWTService)(nil)
)
