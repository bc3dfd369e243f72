// Package cache holds short-lived session state: booking wizards and
// password reset tokens.
package cache

import (
	"context"
	"errors"
	"time"
)

var ErrMiss = errors.New("cache: key not found")

type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	// SetNX stores value only when key is absent and reports whether it did.
	SetNX(ctx context.Context, key string, value []byte, ttl time.Duration) (bool, error)
}
