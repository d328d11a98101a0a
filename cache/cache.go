// Package cache provides read-through caches for vault preference entries.
// Values are opaque byte slices; the caller owns the encoding.
package cache

import (
	"github.com/CreativeUnicorns/vaultprefs"
)

var (
	_ vaultprefs.Cache = (*MemoryCache)(nil)
	_ vaultprefs.Cache = (*RedisCache)(nil)
)
