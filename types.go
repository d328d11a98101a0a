// Package vaultprefs defines the core types used by the preferences facade.
package vaultprefs

import (
	"time"
)

// DefaultProfile is the profile used when WithProfile is not given.
const DefaultProfile = "default"

// Entry is a single raw value as held by a Storage backend.
// JSON tags are included for serialization, typically used by storage and cache implementations.
type Entry struct {
	// ProfileID scopes the entry; one vault installation uses one profile.
	ProfileID string `json:"profile_id"`
	// Key is the persisted preference key, e.g. "pref_tap_to_reveal".
	Key string `json:"key"`
	// Type is one of BoolType, IntType, LongType, StringType or StringSetType.
	Type string `json:"type"`
	// Value holds the raw value. Backends that round-trip through JSON return
	// float64 for numbers and []interface{} for string sets; readers coerce.
	Value interface{} `json:"value"`
	// UpdatedAt records the time the entry was last written.
	UpdatedAt time.Time `json:"updated_at"`
}

// Definition describes one setting: its key, backing type, effective default
// and, for enums, the codes it accepts.
// Definitions are derived from the setting descriptors and are read-only.
type Definition struct {
	Key          string        `json:"key"`
	Type         string        `json:"type"`
	DefaultValue interface{}   `json:"default_value,omitempty"`
	Category     string        `json:"category,omitempty"`
	// AllowedValues, if non-empty, restricts SetValue to these values.
	AllowedValues []interface{} `json:"allowed_values,omitempty"`
	// Minimum, if set, is the smallest integer SetValue accepts.
	Minimum *int64 `json:"minimum,omitempty"`
	// Bitmask marks integer settings whose value is a union of AllowedValues.
	Bitmask bool `json:"bitmask,omitempty"`
	// Sensitive settings are encrypted at rest when an EncryptionManager is configured.
	Sensitive bool `json:"sensitive,omitempty"`
}

// Config holds the internal configuration for a Preferences instance.
// It is populated by applying functional Options when New is called.
type Config struct {
	storage      Storage
	cache        Cache
	cacheTTL     time.Duration
	logger       Logger
	encryption   EncryptionManager
	profileID    string
	clock        Clock
	localeSource LocaleSource
	debugBuild   bool
}

// Option defines the signature for a functional option that configures Preferences.
type Option func(*Config)

// WithStorage sets the backing store. This option is mandatory.
func WithStorage(s Storage) Option {
	return func(c *Config) {
		c.storage = s
	}
}

// WithCache sets an optional read-through cache in front of the Storage.
func WithCache(cache Cache) Option {
	return func(c *Config) {
		c.cache = cache
	}
}

// WithCacheTTL overrides how long cached entries live. The default is 24 hours.
func WithCacheTTL(ttl time.Duration) Option {
	return func(c *Config) {
		c.cacheTTL = ttl
	}
}

// WithLogger sets the Logger. If not set, a JSON slog logger writing to os.Stderr is used.
func WithLogger(l Logger) Option {
	return func(c *Config) {
		c.logger = l
	}
}

// WithEncryption enables at-rest encryption of sensitive string settings.
func WithEncryption(e EncryptionManager) Option {
	return func(c *Config) {
		c.encryption = e
	}
}

// WithProfile selects the namespace used inside a shared Storage.
func WithProfile(profileID string) Option {
	return func(c *Config) {
		c.profileID = profileID
	}
}

// WithClock replaces the wall clock used for the password reminder.
func WithClock(clock Clock) Option {
	return func(c *Config) {
		c.clock = clock
	}
}

// WithLocaleSource replaces the source of the environment locale.
func WithLocaleSource(src LocaleSource) Option {
	return func(c *Config) {
		c.localeSource = src
	}
}

// WithDebugBuild marks the running build as a debug build.
// Secure screen is off by default for debug builds.
func WithDebugBuild(debug bool) Option {
	return func(c *Config) {
		c.debugBuild = debug
	}
}
