package cqrs

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type pingCommand struct{ Msg string }

func (pingCommand) CommandName() string { return "test.ping" }

func TestDispatchRoutesToRegisteredHandler(t *testing.T) {
	d := NewDispatcher()
	require.NoError(t, d.Register("test.ping", HandlerFunc(func(_ context.Context, cmd Command) (any, error) {
		return "pong:" + cmd.(pingCommand).Msg, nil
	})))

	res, err := d.Dispatch(context.Background(), pingCommand{Msg: "hi"})

	require.NoError(t, err)
	assert.Equal(t, "pong:hi", res)
}

func TestDispatchUnknownCommandFails(t *testing.T) {
	d := NewDispatcher()

	_, err := d.Dispatch(context.Background(), pingCommand{})

	var noHandler *ErrNoHandlerRegistered
	require.ErrorAs(t, err, &noHandler)
	assert.Equal(t, "test.ping", noHandler.Name)
}

func TestRegisterRejectsDuplicateName(t *testing.T) {
	d := NewDispatcher()
	h := HandlerFunc(func(context.Context, Command) (any, error) { return nil, nil })

	require.NoError(t, d.Register("test.ping", h))
	assert.Error(t, d.Register("test.ping", h))
}

func TestDispatchPropagatesHandlerError(t *testing.T) {
	d := NewDispatcher()
	want := errors.New("boom")
	require.NoError(t, d.Register("test.ping", HandlerFunc(func(context.Context, Command) (any, error) {
		return nil, want
	})))

	_, err := d.Dispatch(context.Background(), pingCommand{})

	assert.ErrorIs(t, err, want)
}
