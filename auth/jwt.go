package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"
)

// AuthenticateJWT decodes jwt claims from the provided token string.
// If token is empty, AuthenticateJWT returns ErrNotValid.
//
// Pass claims as a pointer so ParseWithClaims can hydrate it.
func (s *Service) AuthenticateJWT(token string, claims jwt.Claims) (jwt.Claims, error) {
	if token == "" {
		return nil, fmt.Errorf("no jwt set: %w", ErrNotValid)
	}

	parsed, err := s.parser.ParseWithClaims(token, claims, func(t *jwt.Token) (any, error) {
		return s.key, nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnexpected, err)
	}

	return parsed.Claims, nil
}

// IssueJWT signs the claims with the application's key using HS256.
func (s *Service) IssueJWT(claims jwt.Claims) (string, error) {
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.key)
	if err != nil {
		return "", fmt.Errorf("%w: %s", ErrUnexpected, err)
	}

	return signed, nil
}
