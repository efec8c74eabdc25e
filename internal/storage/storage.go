// Package storage keeps the small per-visitor key/value state a browser
// would otherwise hold in local and session storage.
package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
)

// Keys used by the storefront.
const (
	GuestCartKey         = "guestCart"
	OrderConfirmationKey = "orderConfirmationData"
	UserEmailKey         = "user_email"
	CredentialsKey       = "authCredentials"
	SessionUserKey       = "sessionUser"
)

// ErrNotFound is returned by the JSON helpers when a key is absent.
var ErrNotFound = errors.New("storage: key not found")

// Store is a key/value store partitioned by visitor id.
type Store interface {
	Get(ctx context.Context, visitorID, key string) (string, bool, error)
	Set(ctx context.Context, visitorID, key, value string) error
	Delete(ctx context.Context, visitorID, key string) error
}

// Bucket is a Store bound to a single visitor.
type Bucket struct {
	store     Store
	visitorID string
}

func NewBucket(store Store, visitorID string) *Bucket {
	return &Bucket{store: store, visitorID: visitorID}
}

func (b *Bucket) VisitorID() string { return b.visitorID }

func (b *Bucket) Get(ctx context.Context, key string) (string, bool, error) {
	return b.store.Get(ctx, b.visitorID, key)
}

func (b *Bucket) Set(ctx context.Context, key, value string) error {
	return b.store.Set(ctx, b.visitorID, key, value)
}

func (b *Bucket) Remove(ctx context.Context, key string) error {
	return b.store.Delete(ctx, b.visitorID, key)
}

// GetJSON decodes the value stored under key into dst.
// It returns ErrNotFound when the key is absent.
func (b *Bucket) GetJSON(ctx context.Context, key string, dst any) error {
	raw, ok, err := b.Get(ctx, key)
	if err != nil {
		return err
	}
	if !ok {
		return ErrNotFound
	}
	if err := json.Unmarshal([]byte(raw), dst); err != nil {
		return fmt.Errorf("decode %s: %w", key, err)
	}
	return nil
}

// SetJSON encodes v and stores it under key.
func (b *Bucket) SetJSON(ctx context.Context, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	return b.Set(ctx, key, string(raw))
}
