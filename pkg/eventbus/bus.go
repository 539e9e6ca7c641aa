// Package eventbus is the asynchronous transport between the cart side and
// the order side of the checkout handoff. All implementations are
// at-least-once: a message may be delivered again after a broker or consumer
// restart, and nothing here guarantees ordering across publishes. Consumers
// are expected to cope with duplicates.
package eventbus

import (
	"context"
	"errors"
)

// Publisher durably enqueues a payload for all subscribers of the topic the
// publisher was built for. Publish returns only after the broker has
// acknowledged persistence of the message, not after delivery.
type Publisher interface {
	Publish(ctx context.Context, key string, payload []byte) error
	Close() error
}

// Handler processes one delivered message. Returning nil acknowledges the
// message. Returning an error wrapping ErrMalformed drops the message
// (poison messages are the broker's dead-letter concern, not ours). Any
// other error leaves the message unacknowledged so the broker redelivers it.
type Handler func(ctx context.Context, payload []byte) error

// Subscriber delivers messages to a handler until the context is cancelled.
type Subscriber interface {
	Run(ctx context.Context, handler Handler) error
}

// ErrMalformed marks a message that can never be processed. Handlers wrap it
// with %w so subscribers can tell "drop this" from "try again".
var ErrMalformed = errors.New("malformed message")
