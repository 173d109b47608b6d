package session

import (
	"context"

	"github.com/golang-jwt/jwt"
	"github.com/pkg/errors"

	"skinsbay/internal/app/model"
)

// ErrInvalidToken covers every way a presented token can be unusable:
// malformed, expired, or pointing at a session we no longer hold.
var ErrInvalidToken = errors.New("invalid token")

type Claims struct {
	jwt.StandardClaims
}

// Creator opens a session for an authenticated user.
type Creator interface {
	Create(ctx context.Context, u *model.User) (string, error)
}

// Reader resolves a bearer token back into the user it was issued for.
type Reader interface {
	Read(ctx context.Context, token string) (*model.User, error)
}

type Manager interface {
	Creator
	Reader
}
