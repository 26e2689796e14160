package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/aretw0/flowserve/pkg/domain"
	backend "github.com/redis/go-redis/v9"
)

const (
	// DefaultKey is where the definition is stored unless WithKey is given.
	DefaultKey = "flowserve:graph"
	// DefaultChannel receives a notification every time a definition is published.
	DefaultChannel = "flowserve:graph:updates"
)

// Loader implements ports.GraphLoader, ports.GraphPublisher and ports.Watchable
// over a definition stored as JSON under a single Redis key.
type Loader struct {
	client  *backend.Client
	key     string
	channel string
}

type Option func(*Loader)

// WithKey sets the key holding the definition.
func WithKey(key string) Option {
	return func(l *Loader) {
		if key != "" {
			l.key = key
		}
	}
}

// WithChannel sets the pub/sub channel used for change notifications.
func WithChannel(channel string) Option {
	return func(l *Loader) {
		if channel != "" {
			l.channel = channel
		}
	}
}

// New creates a new Redis loader with options.
func New(address, password string, db int, opts ...Option) *Loader {
	rdb := backend.NewClient(&backend.Options{
		Addr:     address,
		Password: password,
		DB:       db,
	})
	return NewFromClient(rdb, opts...)
}

// NewFromClient creates a new Redis loader from an existing client.
func NewFromClient(client *backend.Client, opts ...Option) *Loader {
	l := &Loader{
		client:  client,
		key:     DefaultKey,
		channel: DefaultChannel,
	}
	for _, opt := range opts {
		opt(l)
	}
	return l
}

// Key returns the key holding the definition.
func (l *Loader) Key() string {
	return l.key
}

// Load fetches and decodes the definition.
func (l *Loader) Load(ctx context.Context) (*domain.Definition, error) {
	data, err := l.client.Get(ctx, l.key).Bytes()
	if err != nil {
		if errors.Is(err, backend.Nil) {
			return nil, fmt.Errorf("%w: redis key %s", domain.ErrDefinitionNotFound, l.key)
		}
		return nil, fmt.Errorf("failed to load workflow from redis: %w", err)
	}
	return domain.ParseDefinition(data)
}

// Publish stores def and notifies watchers.
func (l *Loader) Publish(ctx context.Context, def *domain.Definition) error {
	if def == nil {
		return fmt.Errorf("%w: nil definition", domain.ErrInvalidDefinition)
	}
	data, err := json.Marshal(def)
	if err != nil {
		return fmt.Errorf("failed to marshal workflow: %w", err)
	}

	pipe := l.client.Pipeline()
	pipe.Set(ctx, l.key, data, 0)
	pipe.Publish(ctx, l.channel, l.key)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to publish workflow to redis: %w", err)
	}
	return nil
}

// Watch signals on the returned channel every time a definition is published.
// Notifications are coalesced; the channel is closed when ctx is done.
func (l *Loader) Watch(ctx context.Context) (<-chan struct{}, error) {
	sub := l.client.Subscribe(ctx, l.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, fmt.Errorf("failed to subscribe to %s: %w", l.channel, err)
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer sub.Close()

		msgs := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-msgs:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out, nil
}

// Close releases the underlying client.
func (l *Loader) Close() error {
	return l.client.Close()
}
