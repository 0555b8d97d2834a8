package repository

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"
	"golang.org/x/oauth2"
)

const (
	accessTokenKey = "google:access_token"

	// Tokens are dropped this long before they expire so a cached token is
	// never handed out right at its expiry.
	tokenExpiryMargin = time.Minute
)

type tokenRecord struct {
	AccessToken string    `json:"access_token"`
	TokenType   string    `json:"token_type"`
	Expiry      time.Time `json:"expiry"`
}

type TokenRepository struct {
	client *redis.Client
	prefix string
}

func NewTokenRepository(client *redis.Client, prefix string) *TokenRepository {
	return &TokenRepository{
		client: client,
		prefix: prefix,
	}
}

// GetToken returns ErrTokenNotFound when no usable token is cached.
func (r *TokenRepository) GetToken(ctx context.Context) (*oauth2.Token, error) {
	data, err := r.client.Get(ctx, r.prefix+accessTokenKey).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrTokenNotFound
		}
		return nil, err
	}

	var record tokenRecord
	if err := json.Unmarshal(data, &record); err != nil {
		return nil, ErrInvalidTokenData
	}

	return &oauth2.Token{
		AccessToken: record.AccessToken,
		TokenType:   record.TokenType,
		Expiry:      record.Expiry,
	}, nil
}

// SaveToken caches the access token until shortly before it expires. The
// refresh token is never written to Redis.
func (r *TokenRepository) SaveToken(ctx context.Context, token *oauth2.Token) error {
	if token == nil || token.AccessToken == "" {
		return ErrInvalidTokenData
	}

	ttl := time.Until(token.Expiry) - tokenExpiryMargin
	if token.Expiry.IsZero() || ttl <= 0 {
		return nil
	}

	data, err := json.Marshal(tokenRecord{
		AccessToken: token.AccessToken,
		TokenType:   token.TokenType,
		Expiry:      token.Expiry,
	})
	if err != nil {
		return ErrInvalidTokenData
	}

	return r.client.Set(ctx, r.prefix+accessTokenKey, data, ttl).Err()
}
