package fetcher

import (
	"sync"

	"github.com/zeebeeCoder/slack-tool/internal/model"
)

// chatMu is a minimal concurrency-safe accumulator for messages produced by
// parallel thread-expansion tasks in fanout.Gather.
type chatMu struct {
	mu   sync.Mutex
	msgs []model.ChatMessage
}

func (c *chatMu) append(msgs []model.ChatMessage) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.msgs = append(c.msgs, msgs...)
}

func (c *chatMu) drain() []model.ChatMessage {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.msgs
}
