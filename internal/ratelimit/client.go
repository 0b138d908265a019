// Package ratelimit wraps a chatapi.Client with a process-wide token bucket
// and a bounded worker pool. Grounded on the teacher's per-connection
// *rate.Limiter (chat-service/internal/handlers/chat_handler.go),
// generalized here to one limiter shared by every outbound call.
package ratelimit

import (
	"context"
	"time"

	"golang.org/x/sync/semaphore"
	"golang.org/x/time/rate"

	"github.com/zeebeeCoder/slack-tool/internal/chatapi"
)

const (
	DefaultRate    = 20 // tokens/second refill
	DefaultBurst   = 50
	DefaultWorkers = 10
)

// Client wraps a chatapi.Client, acquiring one rate-limit token and one
// worker-pool slot before every outbound call.
type Client struct {
	inner     chatapi.Client
	limiter   *rate.Limiter
	pool      *semaphore.Weighted
	tokenKind chatapi.TokenKind
}

// New builds a rate-limited client around inner, using ratePerSecond/burst
// for the token bucket and maxConcurrent for the worker pool.
func New(inner chatapi.Client, tokenKind chatapi.TokenKind, ratePerSecond float64, burst, maxConcurrent int) *Client {
	return &Client{
		inner:     inner,
		limiter:   rate.NewLimiter(rate.Limit(ratePerSecond), burst),
		pool:      semaphore.NewWeighted(int64(maxConcurrent)),
		tokenKind: tokenKind,
	}
}

// NewDefault builds a Client using the default rate/burst/pool size (20/s,
// burst 50, 10 concurrent).
func NewDefault(inner chatapi.Client, tokenKind chatapi.TokenKind) *Client {
	return New(inner, tokenKind, DefaultRate, DefaultBurst, DefaultWorkers)
}

// TokenKind reports which credential this client was constructed with, for
// logging only — behavior never differs by kind.
func (c *Client) TokenKind() chatapi.TokenKind { return c.tokenKind }

// throttle blocks until both a rate-limit token and a worker-pool slot are
// available, honoring ctx cancellation on both waits.
func (c *Client) throttle(ctx context.Context) (release func(), err error) {
	if err := c.pool.Acquire(ctx, 1); err != nil {
		return nil, err
	}
	if err := c.limiter.Wait(ctx); err != nil {
		c.pool.Release(1)
		return nil, err
	}
	return func() { c.pool.Release(1) }, nil
}

func (c *Client) History(ctx context.Context, channel string, oldest, latest time.Time, cursor string) ([]chatapi.RawMessage, string, error) {
	release, err := c.throttle(ctx)
	if err != nil {
		return nil, "", err
	}
	defer release()
	return c.inner.History(ctx, channel, oldest, latest, cursor)
}

func (c *Client) Replies(ctx context.Context, channel, threadTS, cursor string) ([]chatapi.RawMessage, string, error) {
	release, err := c.throttle(ctx)
	if err != nil {
		return nil, "", err
	}
	defer release()
	return c.inner.Replies(ctx, channel, threadTS, cursor)
}

func (c *Client) User(ctx context.Context, userID string) (chatapi.RawUser, error) {
	release, err := c.throttle(ctx)
	if err != nil {
		return chatapi.RawUser{}, err
	}
	defer release()
	return c.inner.User(ctx, userID)
}

var _ chatapi.Client = (*Client)(nil)
