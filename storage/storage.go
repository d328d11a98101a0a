// Package storage provides backing stores for vault preferences: an in-memory
// map, SQLite, PostgreSQL and Redis.
package storage

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/CreativeUnicorns/vaultprefs"
)

var (
	_ vaultprefs.Storage = (*MemoryStorage)(nil)
	_ vaultprefs.Storage = (*SQLiteStorage)(nil)
	_ vaultprefs.Storage = (*PostgresStorage)(nil)
	_ vaultprefs.Storage = (*RedisStorage)(nil)
)

// encodeValue marshals an entry value for a JSON column or hash field.
func encodeValue(key string, value interface{}) ([]byte, error) {
	data, err := json.Marshal(value)
	if err != nil {
		return nil, fmt.Errorf("%w: failed to marshal value for key '%s': %v", vaultprefs.ErrSerialization, key, err)
	}
	return data, nil
}

// decodeValue unmarshals a stored value. Numbers come back as json.Number so
// 64-bit timestamps keep their precision.
func decodeValue(key string, data []byte) (interface{}, error) {
	var value interface{}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&value); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal value for key '%s': %v", vaultprefs.ErrSerialization, key, err)
	}
	return value, nil
}
