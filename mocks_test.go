package vaultprefs

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"
)

// MockStorage implements the Storage interface for testing. It counts writes
// so tests can observe skipped commits.
type MockStorage struct {
	mu       sync.RWMutex
	data     map[string]map[string]*Entry
	closed   bool
	sets     int
	deletes  int
	forceErr error // returned by every operation when set
}

func NewMockStorage() *MockStorage {
	return &MockStorage{
		data: make(map[string]map[string]*Entry),
	}
}

// Put stores a raw entry for the default profile without counting it as a write.
func (m *MockStorage) Put(key, typ string, value interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.data[DefaultProfile]; !ok {
		m.data[DefaultProfile] = make(map[string]*Entry)
	}
	m.data[DefaultProfile][key] = &Entry{ProfileID: DefaultProfile, Key: key, Type: typ, Value: value}
}

// Raw returns the stored entry for the default profile, or nil.
func (m *MockStorage) Raw(key string) *Entry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	e, ok := m.data[DefaultProfile][key]
	if !ok {
		return nil
	}
	cp := *e
	return &cp
}

// Writes returns the number of successful Set calls.
func (m *MockStorage) Writes() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.sets
}

// SetError makes every subsequent operation fail with err.
func (m *MockStorage) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.forceErr = err
}

func (m *MockStorage) Get(ctx context.Context, profileID, key string) (*Entry, error) {
	_, _ = ctx.Deadline()
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStorageUnavailable
	}
	if m.forceErr != nil {
		return nil, m.forceErr
	}

	if entries, exists := m.data[profileID]; exists {
		if e, exists := entries[key]; exists {
			cp := *e
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (m *MockStorage) Set(ctx context.Context, entry *Entry) error {
	_, _ = ctx.Deadline()
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStorageUnavailable
	}
	if m.forceErr != nil {
		return m.forceErr
	}

	if _, exists := m.data[entry.ProfileID]; !exists {
		m.data[entry.ProfileID] = make(map[string]*Entry)
	}
	cp := *entry
	m.data[entry.ProfileID][entry.Key] = &cp
	m.sets++
	return nil
}

func (m *MockStorage) Delete(ctx context.Context, profileID, key string) error {
	_, _ = ctx.Deadline()
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrStorageUnavailable
	}
	if m.forceErr != nil {
		return m.forceErr
	}

	if entries, exists := m.data[profileID]; exists {
		if _, exists := entries[key]; exists {
			delete(entries, key)
			m.deletes++
			return nil
		}
	}
	return ErrNotFound
}

func (m *MockStorage) GetAll(ctx context.Context, profileID string) (map[string]*Entry, error) {
	_, _ = ctx.Deadline()
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.closed {
		return nil, ErrStorageUnavailable
	}

	out := make(map[string]*Entry)
	for key, e := range m.data[profileID] {
		cp := *e
		out[key] = &cp
	}
	return out, nil
}

func (m *MockStorage) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// MockCache implements the Cache interface for testing.
type MockCache struct {
	mu     sync.RWMutex
	data   map[string][]byte
	hits   int
	closed bool
}

// NewMockCache creates a new MockCache for testing.
func NewMockCache() *MockCache {
	return &MockCache{
		data: make(map[string][]byte),
	}
}

func (m *MockCache) Get(ctx context.Context, key string) ([]byte, error) {
	_, _ = ctx.Deadline()
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, ErrCacheUnavailable
	}

	value, exists := m.data[key]
	if !exists {
		return nil, ErrNotFound
	}
	m.hits++
	return value, nil
}

func (m *MockCache) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	_, _ = ctx.Deadline()
	_ = ttl

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrCacheUnavailable
	}
	m.data[key] = value
	return nil
}

func (m *MockCache) Delete(ctx context.Context, key string) error {
	_, _ = ctx.Deadline()
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return ErrCacheUnavailable
	}

	if _, exists := m.data[key]; exists {
		delete(m.data, key)
		return nil
	}
	return ErrNotFound
}

func (m *MockCache) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.closed = true
	return nil
}

// Hits returns how many Get calls were served from the cache.
func (m *MockCache) Hits() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.hits
}

// MockLogger implements the Logger interface for testing
type MockLogger struct {
	mu       sync.Mutex
	Messages []string
}

func (m *MockLogger) Debug(msg string, args ...interface{}) {
	m.record("DEBUG", msg, args...)
}

func (m *MockLogger) Info(msg string, args ...interface{}) {
	m.record("INFO", msg, args...)
}

func (m *MockLogger) Warn(msg string, args ...interface{}) {
	m.record("WARN", msg, args...)
}

func (m *MockLogger) Error(msg string, args ...any) {
	m.record("ERROR", msg, args...)
}

// SetLevel records the attempt to set the log level for test verification.
func (m *MockLogger) SetLevel(level LogLevel) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, fmt.Sprintf("SET_LEVEL: %v", level))
}

func (m *MockLogger) record(level, msg string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Messages = append(m.Messages, formatMessage(level, msg, args...))
}

// Contains reports whether any recorded message contains substr.
func (m *MockLogger) Contains(substr string) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, msg := range m.Messages {
		if strings.Contains(msg, substr) {
			return true
		}
	}
	return false
}

func formatMessage(level, msg string, args ...interface{}) string {
	if len(args) > 0 {
		return fmt.Sprintf("%s: %s %v", level, msg, args)
	}
	return fmt.Sprintf("%s: %s", level, msg)
}

// fakeClock is a settable Clock.
type fakeClock struct {
	mu  sync.Mutex
	now time.Time
}

func newFakeClock(ms int64) *fakeClock {
	return &fakeClock{now: time.UnixMilli(ms)}
}

func (c *fakeClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.now
}

func (c *fakeClock) SetMillis(ms int64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.now = time.UnixMilli(ms)
}
