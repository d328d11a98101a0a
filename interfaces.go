// Package vaultprefs defines interfaces for storage, caching, encryption and the
// environment collaborators used by the preferences facade.
package vaultprefs

import (
	"context"
	"time"
)

// Storage defines the methods required for a backing store.
// Every Set and Delete must be atomic for its key. Get and Delete return
// ErrNotFound for a missing key.
type Storage interface {
	Get(ctx context.Context, profileID, key string) (*Entry, error)
	Set(ctx context.Context, entry *Entry) error
	Delete(ctx context.Context, profileID, key string) error
	GetAll(ctx context.Context, profileID string) (map[string]*Entry, error)
	Close() error
}

// Cache defines the methods required for a caching backend.
type Cache interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Close() error
}

// EncryptionManager encrypts and decrypts sensitive string values.
type EncryptionManager interface {
	Encrypt(plaintext string) (string, error)
	Decrypt(ciphertext string) (string, error)
}

// Clock reports the current wall time.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to the Clock interface.
type ClockFunc func() time.Time

// Now calls f.
func (f ClockFunc) Now() time.Time { return f() }

type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

// LocaleSource reports the operating environment's current locale.
type LocaleSource func() Locale
