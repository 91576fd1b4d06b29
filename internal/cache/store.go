// Package cache provides the key-value store that fronts every analysis
// check. Entries are written once per successful miss and expire passively;
// nothing here evicts or invalidates on its own schedule other than TTL.
package cache

import (
	"context"
	"fmt"
	"strings"
	"time"

	sharederrors "github.com/khanhnv2901/siteprobe/internal/shared/errors"
	"go.uber.org/zap"
)

// Store is the get/put contract the analysis handler relies on.
// A missing key is reported as ok=false with a nil error.
type Store interface {
	Get(ctx context.Context, key string) (string, bool, error)
	Put(ctx context.Context, key, value string, ttl time.Duration) error
	Ping(ctx context.Context) error
	Close() error
}

// Backend names accepted by Open.
const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
)

// Options selects and configures a Store.
type Options struct {
	Backend  string
	RedisURL string
	Logger   *zap.Logger
}

// Open builds the Store named by opts.Backend.
func Open(ctx context.Context, opts Options) (Store, error) {
	switch strings.ToLower(strings.TrimSpace(opts.Backend)) {
	case "", BackendMemory:
		return NewMemoryStore(), nil
	case BackendRedis:
		client, err := Connect(ctx, opts.RedisURL)
		if err != nil {
			return nil, err
		}
		store := NewRedisStore(client, opts.Logger)
		if err := store.Ping(ctx); err != nil {
			_ = store.Close()
			return nil, fmt.Errorf("%w: %v", sharederrors.ErrCacheUnavailable, err)
		}
		return store, nil
	default:
		return nil, fmt.Errorf("%w: %q", sharederrors.ErrUnknownBackend, opts.Backend)
	}
}

// Key builds "{check}:{part}[:{part}...]" from raw, unnormalized values.
func Key(check string, parts ...string) string {
	return strings.Join(append([]string{check}, parts...), ":")
}
