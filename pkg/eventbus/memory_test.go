package eventbus

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryBusDeliversInOrder(t *testing.T) {
	bus := NewMemoryBus()
	require.NoError(t, bus.Publish(context.Background(), "k", []byte("one")))
	require.NoError(t, bus.Publish(context.Background(), "k", []byte("two")))

	var got []string
	bus.Deliver(context.Background(), func(_ context.Context, payload []byte) error {
		got = append(got, string(payload))
		return nil
	})

	assert.Equal(t, []string{"one", "two"}, got)
}

func TestMemoryBusRedeliversOnTransientError(t *testing.T) {
	bus := NewMemoryBus()
	require.NoError(t, bus.Publish(context.Background(), "k", []byte("msg")))

	attempts := 0
	bus.Deliver(context.Background(), func(_ context.Context, _ []byte) error {
		attempts++
		if attempts < 2 {
			return errors.New("db unavailable")
		}
		return nil
	})

	assert.Equal(t, 2, attempts, "transient failure should trigger redelivery")
}

func TestMemoryBusDropsMalformedWithoutRetry(t *testing.T) {
	bus := NewMemoryBus()
	require.NoError(t, bus.Publish(context.Background(), "k", []byte("junk")))

	attempts := 0
	bus.Deliver(context.Background(), func(_ context.Context, _ []byte) error {
		attempts++
		return fmt.Errorf("%w: not json", ErrMalformed)
	})

	assert.Equal(t, 1, attempts, "malformed message must be dropped, not retried")
}

func TestMemoryBusPublishFailsWhenDown(t *testing.T) {
	bus := NewMemoryBus()
	bus.Fail(true)

	err := bus.Publish(context.Background(), "k", []byte("msg"))

	require.Error(t, err)
	assert.Empty(t, bus.Published)

	bus.Fail(false)
	require.NoError(t, bus.Publish(context.Background(), "k", []byte("msg")))
	assert.Len(t, bus.Published, 1)
}

func TestMemoryBusGivesUpAfterMaxAttempts(t *testing.T) {
	bus := NewMemoryBus()
	bus.MaxAttempts = 3
	require.NoError(t, bus.Publish(context.Background(), "k", []byte("msg")))

	attempts := 0
	bus.Deliver(context.Background(), func(_ context.Context, _ []byte) error {
		attempts++
		return errors.New("always failing")
	})

	assert.Equal(t, 3, attempts)
}
