package storage

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/CreativeUnicorns/vaultprefs"
)

const redisKeyPrefix = "vaultprefs:"

// hashClient is the subset of *redis.Client used by RedisStorage.
type hashClient interface {
	HGet(ctx context.Context, key, field string) *redis.StringCmd
	HSet(ctx context.Context, key string, values ...interface{}) *redis.IntCmd
	HDel(ctx context.Context, key string, fields ...string) *redis.IntCmd
	HGetAll(ctx context.Context, key string) *redis.MapStringStringCmd
	Close() error
}

// redisRecord is the JSON held in each hash field.
type redisRecord struct {
	Type      string          `json:"type"`
	Value     json.RawMessage `json:"value"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// RedisStorage implements the Storage interface with one Redis hash per
// profile ("vaultprefs:<profile>"), one field per preference key.
// HSET and HDEL are atomic per field.
type RedisStorage struct {
	client hashClient
}

// NewRedisStorage connects to Redis and verifies the connection.
func NewRedisStorage(addr, password string, db int) (*RedisStorage, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("redis: failed to connect: %w", err)
	}

	return &RedisStorage{client: client}, nil
}

func redisKey(profileID string) string {
	return redisKeyPrefix + profileID
}

// Get retrieves an entry by profile and key.
// It returns ErrNotFound if the field does not exist.
func (s *RedisStorage) Get(ctx context.Context, profileID, key string) (*vaultprefs.Entry, error) {
	data, err := s.client.HGet(ctx, redisKey(profileID), key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, vaultprefs.ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redis: failed to get preference: %w", err)
	}
	return decodeRecord(profileID, key, data)
}

// Set writes an entry into the profile hash.
func (s *RedisStorage) Set(ctx context.Context, e *vaultprefs.Entry) error {
	value, err := encodeValue(e.Key, e.Value)
	if err != nil {
		return err
	}

	data, err := json.Marshal(redisRecord{Type: e.Type, Value: value, UpdatedAt: e.UpdatedAt})
	if err != nil {
		return fmt.Errorf("%w: failed to marshal record for key '%s': %v", vaultprefs.ErrSerialization, e.Key, err)
	}

	if err := s.client.HSet(ctx, redisKey(e.ProfileID), e.Key, data).Err(); err != nil {
		return fmt.Errorf("redis: failed to set preference: %w", err)
	}
	return nil
}

// GetAll retrieves every entry of a profile.
func (s *RedisStorage) GetAll(ctx context.Context, profileID string) (map[string]*vaultprefs.Entry, error) {
	fields, err := s.client.HGetAll(ctx, redisKey(profileID)).Result()
	if err != nil {
		return nil, fmt.Errorf("redis: failed to get preferences: %w", err)
	}

	entries := make(map[string]*vaultprefs.Entry, len(fields))
	for key, data := range fields {
		e, err := decodeRecord(profileID, key, []byte(data))
		if err != nil {
			return nil, err
		}
		entries[key] = e
	}
	return entries, nil
}

// Delete removes a field from the profile hash.
// It returns ErrNotFound if the field did not exist.
func (s *RedisStorage) Delete(ctx context.Context, profileID, key string) error {
	n, err := s.client.HDel(ctx, redisKey(profileID), key).Result()
	if err != nil {
		return fmt.Errorf("redis: failed to delete preference: %w", err)
	}
	if n == 0 {
		return vaultprefs.ErrNotFound
	}
	return nil
}

// Close closes the Redis client.
func (s *RedisStorage) Close() error {
	return s.client.Close()
}

func decodeRecord(profileID, key string, data []byte) (*vaultprefs.Entry, error) {
	var rec redisRecord
	if err := json.Unmarshal(data, &rec); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal record for key '%s': %v", vaultprefs.ErrSerialization, key, err)
	}

	value, err := decodeValue(key, rec.Value)
	if err != nil {
		return nil, err
	}

	return &vaultprefs.Entry{
		ProfileID: profileID,
		Key:       key,
		Type:      rec.Type,
		Value:     value,
		UpdatedAt: rec.UpdatedAt,
	}, nil
}
