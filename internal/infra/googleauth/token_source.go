package googleauth

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	FitnessActivityReadScope = "https://www.googleapis.com/auth/fitness.activity.read"
	FitnessSleepReadScope    = "https://www.googleapis.com/auth/fitness.sleep.read"
)

//go:generate mockgen -source=token_source.go -destination=token_source_mock.go -package=googleauth

// TokenStore caches access tokens between checks.
type TokenStore interface {
	GetToken(ctx context.Context) (*oauth2.Token, error)
	SaveToken(ctx context.Context, token *oauth2.Token) error
}

type Config struct {
	ClientID     string
	ClientSecret string
	RefreshToken string
	// TokenURL overrides the Google token endpoint. Used in tests.
	TokenURL string
}

// cachedTokenSource consults the store before asking the upstream source for
// a fresh token and writes every fresh token back to the store.
type cachedTokenSource struct {
	ctx      context.Context
	store    TokenStore
	upstream oauth2.TokenSource
}

func (s *cachedTokenSource) Token() (*oauth2.Token, error) {
	if s.store != nil {
		token, err := s.store.GetToken(s.ctx)
		if err == nil && token.Valid() {
			return token, nil
		}
		if err != nil {
			slog.DebugContext(s.ctx, "cached google token unavailable",
				slog.String("error", err.Error()),
			)
		}
	}

	token, err := s.upstream.Token()
	if err != nil {
		return nil, fmt.Errorf("failed to refresh google token: %w", err)
	}

	if s.store != nil {
		if err := s.store.SaveToken(s.ctx, token); err != nil {
			slog.WarnContext(s.ctx, "failed to cache google token",
				slog.String("error", err.Error()),
			)
		}
	}

	slog.InfoContext(s.ctx, "google access token refreshed",
		slog.String("event", "google.token.refresh"),
		slog.Time("expiry", token.Expiry),
	)

	return token, nil
}

// NewTokenSource builds a refresh-token based source for the Fitness read
// scopes. store may be nil.
func NewTokenSource(ctx context.Context, cfg Config, store TokenStore) (oauth2.TokenSource, error) {
	if cfg.RefreshToken == "" {
		return nil, errors.New("google refresh token is required")
	}

	endpoint := google.Endpoint
	if cfg.TokenURL != "" {
		endpoint.TokenURL = cfg.TokenURL
	}

	oauthCfg := &oauth2.Config{
		ClientID:     cfg.ClientID,
		ClientSecret: cfg.ClientSecret,
		Endpoint:     endpoint,
		Scopes:       []string{FitnessActivityReadScope, FitnessSleepReadScope},
	}

	// The token endpoint is called with this client.
	ctx = context.WithValue(ctx, oauth2.HTTPClient, &http.Client{
		Transport: otelhttp.NewTransport(http.DefaultTransport),
	})

	upstream := oauthCfg.TokenSource(ctx, &oauth2.Token{RefreshToken: cfg.RefreshToken})

	return oauth2.ReuseTokenSource(nil, &cachedTokenSource{
		ctx:      ctx,
		store:    store,
		upstream: upstream,
	}), nil
}

// NewHTTPClient returns a client that authorizes requests with ts and traces
// them.
func NewHTTPClient(ts oauth2.TokenSource) *http.Client {
	return &http.Client{
		Transport: &oauth2.Transport{
			Source: ts,
			Base:   otelhttp.NewTransport(http.DefaultTransport),
		},
	}
}
