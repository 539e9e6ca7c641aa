package eventbus

import (
	"context"
	"errors"
	"sync"
)

// MemoryBus is an in-process bus used by tests and local runs. It mimics the
// broker contract: publishes are recorded durably (in memory), delivery is
// at-least-once, and a transient handler failure puts the message back on
// the queue.
type MemoryBus struct {
	mu        sync.Mutex
	queue     [][]byte
	Published [][]byte // every payload ever accepted, in publish order

	// MaxAttempts bounds redelivery per message so tests terminate.
	MaxAttempts int

	failing bool
}

func NewMemoryBus() *MemoryBus {
	return &MemoryBus{MaxAttempts: 3}
}

var errBusDown = errors.New("bus unavailable")

// Fail makes subsequent publishes return an error, simulating a broker
// outage on the producer side.
func (b *MemoryBus) Fail(down bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	b.failing = down
}

func (b *MemoryBus) Publish(_ context.Context, _ string, payload []byte) error {
	b.mu.Lock()
	defer b.mu.Unlock()
	if b.failing {
		return errBusDown
	}
	cp := append([]byte(nil), payload...)
	b.queue = append(b.queue, cp)
	b.Published = append(b.Published, cp)
	return nil
}

func (b *MemoryBus) Close() error { return nil }

// Deliver drains the queue into the handler, redelivering on transient
// errors up to MaxAttempts and dropping malformed messages, exactly as the
// real subscribers do. It returns when the queue is empty.
func (b *MemoryBus) Deliver(ctx context.Context, handler Handler) {
	for {
		b.mu.Lock()
		if len(b.queue) == 0 {
			b.mu.Unlock()
			return
		}
		msg := b.queue[0]
		b.queue = b.queue[1:]
		b.mu.Unlock()

		for attempt := 1; ; attempt++ {
			err := handler(ctx, msg)
			if err == nil || errors.Is(err, ErrMalformed) {
				break
			}
			if attempt >= b.MaxAttempts {
				break
			}
		}
	}
}
