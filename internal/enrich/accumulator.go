package enrich

import (
	"sync"

	"github.com/zeebeeCoder/slack-tool/internal/model"
)

type ticketMu struct {
	mu      sync.Mutex
	tickets []model.IssueTicket
}

func (t *ticketMu) append(ticket model.IssueTicket) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.tickets = append(t.tickets, ticket)
}

func (t *ticketMu) drain() []model.IssueTicket {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.tickets
}
