package auth

import (
	"context"
	"fmt"

	"golang.org/x/oauth2"
	goauth2 "google.golang.org/api/oauth2/v2"
	"google.golang.org/api/option"
)

// FetchGoogleUser exchanges the oauth2 token for the Google user it belongs to.
func (s *Service) FetchGoogleUser(token *oauth2.Token) (*goauth2.Userinfo, error) {
	ctx := context.Background()
	service, err := goauth2.NewService(ctx, option.WithTokenSource(s.config.TokenSource(ctx, token)))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnexpected, err)
	}

	user, err := service.Userinfo.Get().Do()
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnexpected, err)
	}

	return user, nil
}
