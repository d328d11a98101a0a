package main

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/CreativeUnicorns/vaultprefs"
	"github.com/CreativeUnicorns/vaultprefs/cache"
	"github.com/CreativeUnicorns/vaultprefs/encryption"
	"github.com/CreativeUnicorns/vaultprefs/storage"
)

func addBackendFlags(cmd *cobra.Command) {
	f := cmd.PersistentFlags()
	f.String("storage", "memory", "storage backend: memory, sqlite, postgres or redis")
	f.String("dsn", "", "sqlite path or postgres connection string")
	f.String("redis-addr", "localhost:6379", "redis address for the redis storage or cache")
	f.String("redis-password", "", "redis password")
	f.Int("redis-db", 0, "redis database number")
	f.String("cache", "none", "cache backend: none, memory or redis")
	f.Duration("cache-ttl", 24*time.Hour, "cache entry lifetime")
	f.String("log-level", "info", "log level: debug, info, warn or error")
	f.Bool("encrypt", false, "encrypt sensitive settings with the key in VAULTPREFS_ENCRYPTION_KEY")
	f.Bool("debug-build", false, "treat the vault as a debug build (secure screen off by default)")
}

// envPrefix names the environment fallback for every flag, e.g. VAULTPREFS_REDIS_PASSWORD.
const envPrefix = "VAULTPREFS_"

func envName(flag string) string {
	return envPrefix + strings.ToUpper(strings.ReplaceAll(flag, "-", "_"))
}

// applyEnv fills flags left unset on the command line from the environment.
func applyEnv(f *pflag.FlagSet) error {
	var firstErr error
	f.VisitAll(func(fl *pflag.Flag) {
		if fl.Changed || firstErr != nil {
			return
		}
		if v, ok := os.LookupEnv(envName(fl.Name)); ok {
			if err := f.Set(fl.Name, v); err != nil {
				firstErr = fmt.Errorf("%s: %w", envName(fl.Name), err)
			}
		}
	})
	return firstErr
}

// backends holds everything opened from the command-line flags.
type backends struct {
	logger  vaultprefs.Logger
	storage vaultprefs.Storage
	cache   vaultprefs.Cache
	options []vaultprefs.Option
}

// Close releases the cache and storage.
func (b *backends) Close() {
	if b.cache != nil {
		if err := b.cache.Close(); err != nil {
			b.logger.Error("Failed to close cache", "error", err)
		}
	}
	if err := b.storage.Close(); err != nil {
		b.logger.Error("Failed to close storage", "error", err)
	}
}

func openBackends(cmd *cobra.Command) (*backends, error) {
	f := cmd.Flags()
	if err := applyEnv(f); err != nil {
		return nil, err
	}
	levelName, _ := f.GetString("log-level")
	storageKind, _ := f.GetString("storage")
	dsn, _ := f.GetString("dsn")
	redisAddr, _ := f.GetString("redis-addr")
	redisPassword, _ := f.GetString("redis-password")
	redisDB, _ := f.GetInt("redis-db")
	cacheKind, _ := f.GetString("cache")
	cacheTTL, _ := f.GetDuration("cache-ttl")
	encrypt, _ := f.GetBool("encrypt")
	debugBuild, _ := f.GetBool("debug-build")

	logger := vaultprefs.NewDefaultLogger()
	logger.SetLevel(vaultprefs.ParseLogLevel(levelName))

	if encrypt {
		if err := encryption.ValidateKey(); err != nil {
			return nil, fmt.Errorf("encryption: %w", err)
		}
	}

	store, err := openStorage(storageKind, dsn, redisAddr, redisPassword, redisDB)
	if err != nil {
		return nil, err
	}
	b := &backends{logger: logger, storage: store}

	c, err := openCache(cacheKind, redisAddr, redisPassword, redisDB)
	if err != nil {
		b.Close()
		return nil, err
	}
	b.cache = c

	b.options = []vaultprefs.Option{
		vaultprefs.WithStorage(store),
		vaultprefs.WithLogger(logger),
		vaultprefs.WithDebugBuild(debugBuild),
	}
	if b.cache != nil {
		b.options = append(b.options, vaultprefs.WithCache(b.cache), vaultprefs.WithCacheTTL(cacheTTL))
	}
	if encrypt {
		adapter, err := vaultprefs.NewEncryptionAdapter()
		if err != nil {
			b.Close()
			return nil, fmt.Errorf("encryption: %w", err)
		}
		b.options = append(b.options, vaultprefs.WithEncryption(adapter))
	}

	logger.Info("Backends ready", "storage", storageKind, "cache", cacheKind, "encrypt", encrypt)
	return b, nil
}

func openStorage(kind, dsn, redisAddr, redisPassword string, redisDB int) (vaultprefs.Storage, error) {
	switch kind {
	case "memory":
		return storage.NewMemoryStorage(), nil
	case "sqlite":
		if dsn == "" {
			return nil, fmt.Errorf("--dsn is required for sqlite storage")
		}
		return storage.NewSQLiteStorage(dsn)
	case "postgres":
		if dsn == "" {
			return nil, fmt.Errorf("--dsn is required for postgres storage")
		}
		return storage.NewPostgresStorage(dsn)
	case "redis":
		return storage.NewRedisStorage(redisAddr, redisPassword, redisDB)
	default:
		return nil, fmt.Errorf("unknown storage backend %q", kind)
	}
}

// openCache returns a nil Cache for "none".
func openCache(kind, redisAddr, redisPassword string, redisDB int) (vaultprefs.Cache, error) {
	switch kind {
	case "none", "":
		return nil, nil
	case "memory":
		return cache.NewMemoryCache(), nil
	case "redis":
		c, err := cache.NewRedisCache(redisAddr, redisPassword, redisDB)
		if err != nil {
			return nil, err
		}
		return c, nil
	default:
		return nil, fmt.Errorf("unknown cache backend %q", kind)
	}
}
