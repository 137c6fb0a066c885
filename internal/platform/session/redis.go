package session

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/hanko-field/frontend-metadata/internal/platform/observability"
)

const defaultKeyPrefix = "sess:"

// Getter is the subset of the redis client used for session lookups.
type Getter interface {
	Get(ctx context.Context, key string) *redis.StringCmd
}

// Options configures the Redis client backing the store.
type Options struct {
	Addr        string
	Password    string
	DB          int
	DialTimeout time.Duration
}

// NewClient dials a Redis client for session lookups.
func NewClient(opts Options) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:         strings.TrimSpace(opts.Addr),
		Password:     opts.Password,
		DB:           opts.DB,
		DialTimeout:  opts.DialTimeout,
		ReadTimeout:  opts.DialTimeout,
		WriteTimeout: opts.DialTimeout,
	})
}

// Store resolves storefront session ids to the quote id saved by the storefront under "<prefix><session id>".
type Store struct {
	client Getter
	prefix string
}

// NewStore constructs a session store. An empty prefix falls back to "sess:".
func NewStore(client Getter, prefix string) (*Store, error) {
	if client == nil {
		return nil, errors.New("session store requires redis client")
	}
	if strings.TrimSpace(prefix) == "" {
		prefix = defaultKeyPrefix
	}
	return &Store{client: client, prefix: prefix}, nil
}

// QuoteID returns the quote bound to the session, or "" when the session is unknown.
func (s *Store) QuoteID(ctx context.Context, sessionID string) (string, error) {
	if s == nil || s.client == nil {
		return "", errors.New("session store not initialised")
	}
	sessionID = strings.TrimSpace(sessionID)
	if sessionID == "" {
		return "", nil
	}
	value, err := s.client.Get(ctx, s.prefix+sessionID).Result()
	if errors.Is(err, redis.Nil) {
		observability.FromContext(ctx).Debug("session has no quote",
			observability.SessionField(sessionID))
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session: lookup quote: %w", err)
	}
	return strings.TrimSpace(value), nil
}
