package distributed

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/vnykmshr/gopromise/pkg/async/future"
	gperrors "github.com/vnykmshr/gopromise/pkg/common/errors"
	"github.com/vnykmshr/gopromise/pkg/common/validation"
)

// Config holds configuration for distributed promises.
type Config struct {
	// Redis client for coordination
	Redis redis.UniversalClient

	// Key is the Redis key prefix for this promise
	Key string

	// InstanceID uniquely identifies this application instance
	InstanceID string

	// RedisTimeout is the timeout for individual Redis operations
	RedisTimeout time.Duration

	// KeyTTL is how long the delivered value lives in Redis
	KeyTTL time.Duration
}

// DefaultConfig returns a default distributed promise configuration.
func DefaultConfig() Config {
	return Config{
		InstanceID:   generateInstanceID(),
		RedisTimeout: 500 * time.Millisecond,
		KeyTTL:       time.Hour,
	}
}

// Promise is the distributed counterpart of future.Promise: the value is
// stored in Redis under the configured key, so a promise in one process
// and futures in any number of other processes observe the same single
// delivery. Create one with NewPromise.
type Promise[T any] struct {
	config Config
	keys   map[string]string

	mu       sync.Mutex
	watchers map[*watcher]struct{}
	closed   bool
}

// watcher tracks one goroutine started by Future so Close can stop it
// and wait for it to finish.
type watcher struct {
	cancel context.CancelFunc
	done   chan struct{}
}

// NewPromise creates a distributed promise for the given key. Promises
// in different processes configured with the same key share one
// delivery slot.
func NewPromise[T any](config Config) (*Promise[T], error) {
	if err := validateConfig(config); err != nil {
		return nil, err
	}
	config = applyConfigDefaults(config)

	p := &Promise[T]{
		config:   config,
		keys:     redisKeys(config.Key),
		watchers: make(map[*watcher]struct{}),
	}

	if err := p.initialize(context.Background()); err != nil {
		return nil, fmt.Errorf("failed to initialize distributed promise: %w", err)
	}

	return p, nil
}

// validateConfig validates the promise configuration.
func validateConfig(config Config) error {
	if err := validation.ValidateNotNil("distributed", "redis", config.Redis); err != nil {
		return err
	}
	if err := validation.ValidateNotEmpty("distributed", "key", config.Key); err != nil {
		return err
	}
	if config.RedisTimeout < 0 {
		return &ConfigError{"redis timeout cannot be negative"}
	}
	if config.KeyTTL < 0 {
		return &ConfigError{"key ttl cannot be negative"}
	}
	return nil
}

// applyConfigDefaults sets default values for unspecified config fields.
func applyConfigDefaults(config Config) Config {
	if config.InstanceID == "" {
		config.InstanceID = generateInstanceID()
	}
	if config.RedisTimeout == 0 {
		config.RedisTimeout = 500 * time.Millisecond
	}
	if config.KeyTTL == 0 {
		config.KeyTTL = time.Hour
	}
	return config
}

// initialize registers this instance in Redis.
func (p *Promise[T]) initialize(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.config.RedisTimeout)
	defer cancel()

	pipe := p.config.Redis.Pipeline()
	pipe.SAdd(ctx, p.keys["instances"], p.config.InstanceID)
	pipe.Expire(ctx, p.keys["instances"], p.config.KeyTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return &RedisError{"initialize", err}
	}
	return nil
}

// Deliver stores v under the payload key and notifies every watching
// future. Delivery happens exactly once per key across all processes:
// the first caller wins and later calls return ErrAlreadyDelivered.
func (p *Promise[T]) Deliver(ctx context.Context, v T) error {
	payload, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode value: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, p.config.RedisTimeout)
	defer cancel()

	set, err := p.config.Redis.SetNX(ctx, p.keys["payload"], payload, p.config.KeyTTL).Result()
	if err != nil {
		return &RedisError{"deliver", err}
	}
	if !set {
		return gperrors.ErrAlreadyDelivered
	}

	pipe := p.config.Redis.Pipeline()
	pipe.Publish(ctx, p.keys["notify"], payload)
	pipe.Expire(ctx, p.keys["instances"], p.config.KeyTTL)

	if _, err := pipe.Exec(ctx); err != nil {
		return &RedisError{"publish", err}
	}
	return nil
}

// Future returns a local future that resolves when a value is delivered
// for this key, by any process. If the value is already in Redis the
// future is ready immediately; otherwise a watcher goroutine resolves it
// on the delivery notification. The watcher stops when ctx is canceled
// or the promise is closed, leaving the future deferred, so observers
// should wait with GetContext or WaitFor rather than Get.
func (p *Promise[T]) Future(ctx context.Context) (*future.Future[T], error) {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil, gperrors.ErrClosed
	}
	p.mu.Unlock()

	sub := p.config.Redis.Subscribe(ctx, p.keys["notify"])

	// Wait for the subscription to be confirmed before the back-fill
	// read. Once the channel is watched, a delivery is either visible to
	// GET or will arrive as a notification; there is no gap between them.
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, &RedisError{"subscribe", err}
	}

	getCtx, getCancel := context.WithTimeout(ctx, p.config.RedisTimeout)
	payload, err := p.config.Redis.Get(getCtx, p.keys["payload"]).Bytes()
	getCancel()

	switch {
	case err == nil:
		_ = sub.Close()
		v, derr := decode[T](payload)
		if derr != nil {
			return nil, derr
		}
		pr := future.NewPromise[T]()
		pr.Set(v)
		return pr.Future(), nil
	case errors.Is(err, redis.Nil):
		// Not delivered yet; watch for the notification.
	default:
		_ = sub.Close()
		return nil, &RedisError{"get", err}
	}

	wctx, cancel := context.WithCancel(ctx)
	w := &watcher{cancel: cancel, done: make(chan struct{})}

	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		cancel()
		_ = sub.Close()
		return nil, gperrors.ErrClosed
	}
	p.watchers[w] = struct{}{}
	p.mu.Unlock()

	pr := future.NewPromise[T]()
	go p.watch(wctx, w, sub, pr)

	return pr.Future(), nil
}

// watch consumes the notification channel until a value arrives or the
// watcher is stopped.
func (p *Promise[T]) watch(ctx context.Context, w *watcher, sub *redis.PubSub, pr *future.Promise[T]) {
	defer close(w.done)
	defer p.forget(w)
	defer func() { _ = sub.Close() }()
	defer w.cancel()

	ch := sub.Channel()
	for {
		select {
		case msg, ok := <-ch:
			if !ok {
				return
			}
			v, err := decode[T]([]byte(msg.Payload))
			if err != nil {
				// Undecodable publication; keep watching.
				continue
			}
			pr.Set(v)
			return
		case <-ctx.Done():
			return
		}
	}
}

func (p *Promise[T]) forget(w *watcher) {
	p.mu.Lock()
	delete(p.watchers, w)
	p.mu.Unlock()
}

// Delivered reports whether a value has been delivered for this key.
func (p *Promise[T]) Delivered(ctx context.Context) (bool, error) {
	ctx, cancel := context.WithTimeout(ctx, p.config.RedisTimeout)
	defer cancel()

	n, err := p.config.Redis.Exists(ctx, p.keys["payload"]).Result()
	if err != nil {
		return false, &RedisError{"exists", err}
	}
	return n > 0, nil
}

// Reset clears the delivered value so the key can deliver again.
// Useful for testing.
func (p *Promise[T]) Reset(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, p.config.RedisTimeout)
	defer cancel()

	err := p.config.Redis.Del(ctx, p.keys["payload"], p.keys["instances"]).Err()
	if err != nil {
		return &RedisError{"reset", err}
	}

	return p.initialize(ctx)
}

// Close stops every watcher started by Future, waits for them to
// finish, and deregisters this instance. Futures that were not resolved
// before Close stay deferred. Close is idempotent.
func (p *Promise[T]) Close() error {
	p.mu.Lock()
	if p.closed {
		p.mu.Unlock()
		return nil
	}
	p.closed = true
	watchers := make([]*watcher, 0, len(p.watchers))
	for w := range p.watchers {
		watchers = append(watchers, w)
	}
	p.mu.Unlock()

	for _, w := range watchers {
		w.cancel()
	}
	for _, w := range watchers {
		<-w.done
	}

	ctx, cancel := context.WithTimeout(context.Background(), p.config.RedisTimeout)
	defer cancel()

	return p.config.Redis.SRem(ctx, p.keys["instances"], p.config.InstanceID).Err()
}

// decode unmarshals a stored payload into the promise's value type.
func decode[T any](payload []byte) (T, error) {
	var v T
	if err := json.Unmarshal(payload, &v); err != nil {
		return v, fmt.Errorf("decode delivered value: %w", err)
	}
	return v, nil
}

// ConfigError represents a configuration error.
type ConfigError struct {
	Message string
}

func (e *ConfigError) Error() string {
	return "distributed promise config error: " + e.Message
}

// RedisError represents a Redis operation error.
type RedisError struct {
	Operation string
	Err       error
}

func (e *RedisError) Error() string {
	return "redis error in " + e.Operation + ": " + e.Err.Error()
}

func (e *RedisError) Unwrap() error {
	return e.Err
}
