package auth

import (
	"fmt"

	"github.com/golang-jwt/jwt/v4"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
	goauth2 "google.golang.org/api/oauth2/v2"
)

// A Verifier checks the credentials presented by a request
// and resolves them into an identity.
type Verifier interface {
	AuthenticateJWT(token string, claims jwt.Claims) (jwt.Claims, error)
	FetchGoogleUser(token *oauth2.Token) (*goauth2.Userinfo, error)
}

var _ Verifier = (*Service)(nil)

// A Service verifies JWTs minted by this application
// and exchanges Google OAuth2 tokens for user info.
type Service struct {
	config *oauth2.Config
	key    []byte
	parser *jwt.Parser
}

// NewService constructs a *Service from the application's JWT signing key
// and its Google OAuth2 client credentials.
func NewService(jwtKey, googleClient, googleSecret string) (*Service, error) {
	if jwtKey == "" || googleClient == "" || googleSecret == "" {
		return nil, fmt.Errorf(`%w: config cannot be ""`, ErrNotValid)
	}

	return &Service{
		config: &oauth2.Config{
			ClientID:     googleClient,
			ClientSecret: googleSecret,
			Scopes:       []string{goauth2.UserinfoEmailScope},
			Endpoint:     google.Endpoint,
		},
		key:    []byte(jwtKey),
		parser: jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()})),
	}, nil
}
