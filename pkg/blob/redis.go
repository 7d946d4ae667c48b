package blob

import (
	"context"
	stderrors "errors"
	"io"
	"net"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/redis/go-redis/v9"

	"github.com/matzehuels/radialtext/pkg/errors"
	"github.com/matzehuels/radialtext/pkg/observability"
)

// Defaults for RedisStore.
const (
	DefaultTTL       = 10 * time.Minute
	DefaultKeyPrefix = "radialtext:blob:"
)

// RedisStore implements Store on Redis. Each blob is a hash holding the
// data, MIME type and creation time, expiring after the store's TTL.
type RedisStore struct {
	client   redis.UniversalClient
	ttl      time.Duration
	prefix   string
	attempts int
	delay    time.Duration
	logger   *log.Logger
}

// RedisOption configures a RedisStore.
type RedisOption func(*RedisStore)

// WithTTL sets how long a URL stays resolvable if nobody revokes it.
func WithTTL(ttl time.Duration) RedisOption {
	return func(s *RedisStore) {
		if ttl > 0 {
			s.ttl = ttl
		}
	}
}

// WithKeyPrefix sets the Redis key prefix.
func WithKeyPrefix(prefix string) RedisOption {
	return func(s *RedisStore) { s.prefix = prefix }
}

// WithRetry sets the retry policy for network failures.
func WithRetry(attempts int, delay time.Duration) RedisOption {
	return func(s *RedisStore) {
		s.attempts = attempts
		s.delay = delay
	}
}

// WithLogger sets the logger for store diagnostics.
func WithLogger(l *log.Logger) RedisOption {
	return func(s *RedisStore) { s.logger = l }
}

// NewRedisStore connects to the Redis server at addr and verifies the
// connection with PING.
func NewRedisStore(ctx context.Context, addr string, opts ...RedisOption) (*RedisStore, error) {
	client := redis.NewClient(&redis.Options{Addr: addr})
	s := NewRedisStoreFromClient(client, opts...)
	if err := s.do(ctx, func() error { return client.Ping(ctx).Err() }); err != nil {
		_ = client.Close()
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "connect to redis at %s", addr)
	}
	return s, nil
}

// NewRedisStoreFromClient wraps an existing client.
func NewRedisStoreFromClient(client redis.UniversalClient, opts ...RedisOption) *RedisStore {
	s := &RedisStore{
		client:   client,
		ttl:      DefaultTTL,
		prefix:   DefaultKeyPrefix,
		attempts: 3,
		delay:    100 * time.Millisecond,
		logger:   log.New(io.Discard),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create stores data under a new URL with the store's TTL.
func (s *RedisStore) Create(ctx context.Context, data []byte, mimeType string) (string, error) {
	url, id := NewURL()
	key := s.prefix + id

	err := s.do(ctx, func() error {
		_, err := s.client.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.HSet(ctx, key,
				"data", data,
				"mime", mimeType,
				"created", time.Now().UnixMilli(),
			)
			pipe.Expire(ctx, key, s.ttl)
			return nil
		})
		return err
	})
	if err != nil {
		return "", errors.Wrap(errors.ErrCodeNetwork, err, "store blob")
	}

	s.logger.Debug("blob created", "url", url, "bytes", len(data), "ttl", s.ttl)
	observability.Blob().OnBlobCreate(ctx, "redis", len(data))
	return url, nil
}

// Open returns the blob stored under url.
func (s *RedisStore) Open(ctx context.Context, url string) (*Blob, error) {
	id, ok := ParseURL(url)
	if !ok {
		observability.Blob().OnBlobOpen(ctx, "redis", false)
		return nil, notFound(url)
	}

	var fields map[string]string
	err := s.do(ctx, func() error {
		var err error
		fields, err = s.client.HGetAll(ctx, s.prefix+id).Result()
		return err
	})
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeNetwork, err, "load blob")
	}
	if len(fields) == 0 {
		observability.Blob().OnBlobOpen(ctx, "redis", false)
		return nil, notFound(url)
	}

	b := &Blob{Data: []byte(fields["data"]), MIMEType: fields["mime"]}
	if ms, err := strconv.ParseInt(fields["created"], 10, 64); err == nil {
		b.Created = time.UnixMilli(ms)
	}
	observability.Blob().OnBlobOpen(ctx, "redis", true)
	return b, nil
}

// Revoke deletes url.
func (s *RedisStore) Revoke(ctx context.Context, url string) error {
	id, ok := ParseURL(url)
	if !ok {
		return nil
	}
	err := s.do(ctx, func() error { return s.client.Del(ctx, s.prefix+id).Err() })
	if err != nil {
		return errors.Wrap(errors.ErrCodeNetwork, err, "revoke blob")
	}
	s.logger.Debug("blob revoked", "url", url)
	observability.Blob().OnBlobRevoke(ctx, "redis")
	return nil
}

// Count returns the number of live blobs under the store's prefix.
func (s *RedisStore) Count(ctx context.Context) (int, error) {
	n := 0
	iter := s.client.Scan(ctx, 0, s.prefix+"*", 100).Iterator()
	for iter.Next(ctx) {
		n++
	}
	return n, iter.Err()
}

// Close closes the Redis client.
func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) do(ctx context.Context, fn func() error) error {
	return Retry(ctx, s.attempts, s.delay, func() error {
		err := fn()
		if isNetworkError(err) {
			s.logger.Debug("redis call failed, retrying", "err", err)
			return Retryable(err)
		}
		return err
	})
}

func isNetworkError(err error) bool {
	if err == nil || stderrors.Is(err, redis.Nil) {
		return false
	}
	if stderrors.Is(err, io.EOF) || stderrors.Is(err, io.ErrUnexpectedEOF) {
		return true
	}
	var ne net.Error
	return stderrors.As(err, &ne)
}

// Ensure RedisStore implements Store.
var _ Store = (*RedisStore)(nil)
