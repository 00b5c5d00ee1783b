package operations

import (
	"context"
	"sync"
)

// Ticket identifies one in-flight request generation.
type Ticket uint64

// Generations keeps only the newest request alive. Beginning a new
// generation cancels the previous one, and results carrying an older
// ticket are to be dropped by whoever receives them.
type Generations struct {
	mu      sync.Mutex
	current Ticket
	cancel  context.CancelFunc
}

func (it *Generations) Begin(parent context.Context) (context.Context, Ticket) {
	it.mu.Lock()
	defer it.mu.Unlock()

	if it.cancel != nil {
		it.cancel()
	}
	ctx, cancel := context.WithCancel(parent)
	it.current += 1
	it.cancel = cancel
	return ctx, it.current
}

func (it *Generations) IsCurrent(ticket Ticket) bool {
	it.mu.Lock()
	defer it.mu.Unlock()

	return ticket != 0 && ticket == it.current
}

// Done releases the context of the ticket when it is still the current one.
func (it *Generations) Done(ticket Ticket) {
	it.mu.Lock()
	defer it.mu.Unlock()

	if ticket == it.current && it.cancel != nil {
		it.cancel()
		it.cancel = nil
	}
}

// Abandon cancels whatever is in flight and invalidates its ticket.
func (it *Generations) Abandon() {
	it.mu.Lock()
	defer it.mu.Unlock()

	if it.cancel != nil {
		it.cancel()
		it.cancel = nil
	}
	it.current += 1
}
