package repository

import "errors"

var (
	ErrRedisConnection  = errors.New("redis connection error")
	ErrInvalidTokenData = errors.New("invalid token data")
	ErrTokenNotFound    = errors.New("token not found")
)
