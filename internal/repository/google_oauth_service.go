package repository

import (
	"context"
	"encoding/json"

	"github.com/lichwu/iapush/internal/config"
	"github.com/lichwu/iapush/internal/pkg/logger"
	"github.com/lichwu/iapush/internal/service"
	"github.com/lichwu/iapush/internal/util/iaperror"
	"github.com/lichwu/iapush/internal/util/logredact"

	"github.com/imroc/req/v3"
	"go.uber.org/zap"
)

type googleOAuthService struct {
	tokenURL      string
	clientFactory func() *req.Client
}

// NewGoogleOAuthClient talks to the OAuth token endpoint. It translates
// credentials into a refresh_token grant and hands back the raw status and
// body; deciding whether the response holds a usable token is the token
// manager's job, not a transport concern.
func NewGoogleOAuthClient(cfg *config.Config) service.GoogleOAuthClient {
	return &googleOAuthService{
		tokenURL:      cfg.Google.TokenURL,
		clientFactory: createReqClient,
	}
}

func createReqClient() *req.Client {
	return req.C().SetTimeout(service.TokenRefreshTimeout)
}

func (s *googleOAuthService) ExchangeRefreshToken(ctx context.Context, creds service.ClientCredentials) (*service.APIResult, error) {
	client := s.clientFactory()

	grant := map[string]any{
		"grant_type":    "refresh_token",
		"client_id":     creds.ClientID,
		"client_secret": creds.ClientSecret,
		"refresh_token": creds.RefreshToken,
	}
	redacted, _ := json.Marshal(logredact.RedactMap(grant))
	logger.FromContext(ctx).Debug("exchanging refresh token",
		zap.String("component", "oauth"),
		zap.String("url", s.tokenURL),
		zap.ByteString("request", redacted),
	)

	resp, err := client.R().
		SetContext(ctx).
		SetBodyJsonMarshal(grant).
		Post(s.tokenURL)
	if err != nil {
		return nil, &iaperror.TransportError{URL: s.tokenURL, Err: err}
	}

	body, err := resp.ToBytes()
	if err != nil {
		return nil, &iaperror.TransportError{URL: s.tokenURL, Err: err}
	}
	return &service.APIResult{
		StatusCode: resp.StatusCode,
		Body:       body,
	}, nil
}
