// Package pulse adapts schedule.Sink to goa.design/pulse streams, so solver
// events (variable pending/ready/failed) can be published to Redis-backed
// streams for remote observers. It mirrors the layering the teacher uses for
// its own runtime event sink: a thin Client/Stream wrapper around
// goa.design/pulse/streaming decouples the sink from the concrete SDK.
package pulse

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"goa.design/pulse/streaming"
	streamopts "goa.design/pulse/streaming/options"
)

// ClientOptions configures the Pulse client.
type ClientOptions struct {
	// Redis is the Redis connection backing Pulse streams. Required.
	Redis *redis.Client
	// StreamMaxLen bounds the number of entries kept per stream. Zero uses
	// Pulse defaults.
	StreamMaxLen int
	// OperationTimeout bounds individual Add calls. Zero means no timeout.
	OperationTimeout time.Duration
}

// Client exposes the subset of Pulse stream operations the sink needs.
type Client interface {
	Stream(name string) (Stream, error)
	Close(ctx context.Context) error
}

// Stream publishes events to a single named Pulse stream.
type Stream interface {
	Add(ctx context.Context, event string, payload []byte) (string, error)
	Destroy(ctx context.Context) error
}

type client struct {
	redis   *redis.Client
	maxLen  int
	timeout time.Duration
}

// NewClient constructs a Pulse client backed by the given Redis connection.
func NewClient(opts ClientOptions) (Client, error) {
	if opts.Redis == nil {
		return nil, errors.New("redis client is required")
	}
	return &client{redis: opts.Redis, maxLen: opts.StreamMaxLen, timeout: opts.OperationTimeout}, nil
}

func (c *client) Stream(name string) (Stream, error) {
	if name == "" {
		return nil, errors.New("stream name is required")
	}
	var streamOpts []streamopts.Stream
	if c.maxLen > 0 {
		streamOpts = append(streamOpts, streamopts.WithStreamMaxLen(c.maxLen))
	}
	str, err := streaming.NewStream(name, c.redis, streamOpts...)
	if err != nil {
		return nil, fmt.Errorf("create pulse stream: %w", err)
	}
	return &handle{stream: str, timeout: c.timeout}, nil
}

// Close is a no-op: callers own the Redis connection's lifecycle.
func (c *client) Close(ctx context.Context) error { return nil }

type handle struct {
	stream  *streaming.Stream
	timeout time.Duration
}

func (h *handle) Add(ctx context.Context, event string, payload []byte) (string, error) {
	if h.timeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.timeout)
		defer cancel()
	}
	id, err := h.stream.Add(ctx, event, payload)
	if err != nil {
		return "", fmt.Errorf("pulse add: %w", err)
	}
	return id, nil
}

func (h *handle) Destroy(ctx context.Context) error {
	return h.stream.Destroy(ctx)
}
