// preferences.go
package vaultprefs

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"
)

const defaultCacheTTL = 24 * time.Hour

// Preferences is the typed facade over a vault's preference store.
//
// It holds no state of its own besides its configuration; every value lives
// in the Storage. Each setter persists independently. Read-modify-write
// operations (usage counts and the idempotent boolean setters) are not atomic:
// a concurrent writer may interleave between the read and the write.
type Preferences struct {
	config *Config
}

// New builds a Preferences on top of the configured Storage.
// A stored password reminder timestamp of zero is replaced with the current
// time, so PasswordReminderTimestamp never reports the epoch.
func New(opts ...Option) (*Preferences, error) {
	cfg, err := newConfig(opts...)
	if err != nil {
		return nil, err
	}

	p := &Preferences{config: cfg}
	if passwordReminderTimestamp.get(p) == 0 {
		p.ResetPasswordReminderTimestamp()
	}
	return p, nil
}

func newConfig(opts ...Option) (*Config, error) {
	cfg := &Config{
		profileID:    DefaultProfile,
		cacheTTL:     defaultCacheTTL,
		clock:        systemClock{},
		localeSource: EnvironmentLocale,
	}

	for _, opt := range opts {
		opt(cfg)
	}

	if cfg.storage == nil {
		return nil, fmt.Errorf("%w: no storage configured", ErrStorageUnavailable)
	}
	if cfg.profileID == "" {
		return nil, fmt.Errorf("%w: empty profile id", ErrInvalidInput)
	}
	if cfg.logger == nil {
		cfg.logger = NewDefaultLogger()
	}
	return cfg, nil
}

// ProfileID returns the namespace this facade reads and writes.
func (p *Preferences) ProfileID() string {
	return p.config.profileID
}

// load reads an entry through the cache. A miss is reported as ErrNotFound.
func (p *Preferences) load(key string) (*Entry, error) {
	ctx := context.Background()

	if p.config.cache != nil {
		if e, err := p.getFromCache(ctx, key); err == nil {
			return e, nil
		}
	}

	e, err := p.config.storage.Get(ctx, p.config.profileID, key)
	if err != nil {
		return nil, err
	}

	if p.config.cache != nil {
		p.setToCache(ctx, e)
	}
	return e, nil
}

// contains reports whether key is stored, regardless of its type.
func (p *Preferences) contains(key string) bool {
	_, err := p.load(key)
	if err != nil && !errors.Is(err, ErrNotFound) {
		p.config.logger.Warn("Failed to check preference presence", "key", key, "error", err)
	}
	return err == nil
}

// save writes an entry. Failures are logged, never returned.
func (p *Preferences) save(e *Entry) {
	ctx := context.Background()
	e.ProfileID = p.config.profileID
	e.UpdatedAt = p.config.clock.Now()

	if err := p.config.storage.Set(ctx, e); err != nil {
		p.config.logger.Error("Failed to persist preference", "key", e.Key, "error", err)
		if p.config.cache != nil {
			p.deleteFromCache(ctx, e.Key)
		}
		return
	}

	if p.config.cache != nil {
		p.setToCache(ctx, e)
	}
}

// remove deletes key so that readers fall back to the default.
func (p *Preferences) remove(key string) {
	ctx := context.Background()

	if err := p.config.storage.Delete(ctx, p.config.profileID, key); err != nil && !errors.Is(err, ErrNotFound) {
		p.config.logger.Error("Failed to remove preference", "key", key, "error", err)
	}

	if p.config.cache != nil {
		p.deleteFromCache(ctx, key)
	}
}

func (p *Preferences) cacheKey(key string) string {
	return fmt.Sprintf("pref:%s:%s", p.config.profileID, key)
}

func (p *Preferences) getFromCache(ctx context.Context, key string) (*Entry, error) {
	data, err := p.config.cache.Get(ctx, p.cacheKey(key))
	if err != nil {
		return nil, err
	}

	var e Entry
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&e); err != nil {
		return nil, fmt.Errorf("%w: cached entry %s: %v", ErrSerialization, key, err)
	}
	return &e, nil
}

func (p *Preferences) setToCache(ctx context.Context, e *Entry) {
	data, err := json.Marshal(e)
	if err != nil {
		p.config.logger.Error("Failed to marshal preference for cache", "key", e.Key, "error", err)
		return
	}

	if err := p.config.cache.Set(ctx, p.cacheKey(e.Key), data, p.config.cacheTTL); err != nil {
		p.config.logger.Error("Failed to cache preference", "key", e.Key, "error", err)
	}
}

func (p *Preferences) deleteFromCache(ctx context.Context, key string) {
	if err := p.config.cache.Delete(ctx, p.cacheKey(key)); err != nil && !errors.Is(err, ErrNotFound) {
		p.config.logger.Error("Failed to delete preference from cache", "key", key, "error", err)
	}
}
