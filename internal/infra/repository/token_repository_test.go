package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"golang.org/x/oauth2"

	"github.com/KasumiMercury/wake-walk-alert/internal/testutil"
)

const testPrefix = "wake_alert_test:"

func TestTokenRepository_SaveAndGet(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewTokenRepository(client, testPrefix)

	expiry := time.Now().Add(time.Hour).UTC().Truncate(time.Second)
	err := repo.SaveToken(ctx, &oauth2.Token{
		AccessToken:  "access-1",
		TokenType:    "Bearer",
		RefreshToken: "refresh-should-not-be-stored",
		Expiry:       expiry,
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	got, err := repo.GetToken(ctx)
	if err != nil {
		t.Fatalf("failed to get token: %v", err)
	}
	if got.AccessToken != "access-1" {
		t.Errorf("AccessToken: got %q, want %q", got.AccessToken, "access-1")
	}
	if got.RefreshToken != "" {
		t.Errorf("RefreshToken should not be cached, got %q", got.RefreshToken)
	}
	if !got.Expiry.Equal(expiry) {
		t.Errorf("Expiry: got %v, want %v", got.Expiry, expiry)
	}

	ttl, err := client.TTL(ctx, testPrefix+accessTokenKey).Result()
	if err != nil {
		t.Fatalf("failed to get TTL: %v", err)
	}
	if ttl <= 0 || ttl > time.Hour-tokenExpiryMargin {
		t.Errorf("expected TTL below token lifetime, got %v", ttl)
	}
}

func TestTokenRepository_GetMissing(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewTokenRepository(client, testPrefix)

	if _, err := repo.GetToken(ctx); !errors.Is(err, ErrTokenNotFound) {
		t.Errorf("got %v, want %v", err, ErrTokenNotFound)
	}
}

func TestTokenRepository_SaveSkipsExpiringTokens(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	repo := NewTokenRepository(client, testPrefix)

	tests := []struct {
		name  string
		token *oauth2.Token
	}{
		{
			name:  "expires within margin",
			token: &oauth2.Token{AccessToken: "a", Expiry: time.Now().Add(30 * time.Second)},
		},
		{
			name:  "no expiry",
			token: &oauth2.Token{AccessToken: "b"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := repo.SaveToken(ctx, tt.token); err != nil {
				t.Fatalf("unexpected error: %v", err)
			}

			if _, err := repo.GetToken(ctx); !errors.Is(err, ErrTokenNotFound) {
				t.Errorf("got %v, want %v", err, ErrTokenNotFound)
			}
		})
	}
}

func TestTokenRepository_SaveInvalid(t *testing.T) {
	repo := NewTokenRepository(nil, testPrefix)

	if err := repo.SaveToken(context.Background(), nil); !errors.Is(err, ErrInvalidTokenData) {
		t.Errorf("got %v, want %v", err, ErrInvalidTokenData)
	}
	if err := repo.SaveToken(context.Background(), &oauth2.Token{}); !errors.Is(err, ErrInvalidTokenData) {
		t.Errorf("got %v, want %v", err, ErrInvalidTokenData)
	}
}

func TestTokenRepository_GetCorrupted(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}

	ctx := context.Background()
	client, cleanup := testutil.SetupRedisContainer(ctx, t)
	defer cleanup()

	if err := client.Set(ctx, testPrefix+accessTokenKey, "not-json", time.Minute).Err(); err != nil {
		t.Fatalf("failed to set up test data: %v", err)
	}

	repo := NewTokenRepository(client, testPrefix)
	if _, err := repo.GetToken(ctx); !errors.Is(err, ErrInvalidTokenData) {
		t.Errorf("got %v, want %v", err, ErrInvalidTokenData)
	}
}
