package identity

import (
	"context"
	"errors"
	"fmt"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/hostelmess/polls/internal/core/domain"
	"github.com/hostelmess/polls/internal/core/ports"
)

var ErrInvalidCredential = errors.New("invalid credential")

// jwtProvider resolves HS256-signed access tokens into principals. The
// portal's auth service mints the tokens; this side only verifies and
// reads the subject and role claims.
type jwtProvider struct {
	secret []byte
}

func NewJWTProvider(secret []byte) ports.IdentityProvider {
	return &jwtProvider{secret: secret}
}

func (p *jwtProvider) CurrentUser(_ context.Context, credential string) (*domain.Principal, error) {
	if credential == "" {
		// Anonymous viewer, allowed to read but not vote.
		return nil, nil
	}

	token, err := jwt.Parse(credential, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return p.secret, nil
	})
	if err != nil || !token.Valid {
		return nil, ErrInvalidCredential
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, ErrInvalidCredential
	}

	sub, _ := claims["sub"].(string)
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, ErrInvalidCredential
	}

	role := domain.RoleVisitor
	if r, _ := claims["role"].(string); r == string(domain.RoleAdmin) {
		role = domain.RoleAdmin
	}

	return &domain.Principal{ID: userID, Role: role}, nil
}
