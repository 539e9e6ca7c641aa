// Package cqrs routes command values to their single registered handler.
// Each service builds its registry explicitly at startup and passes the
// dispatcher to whatever consumes commands; there is no ambient or global
// lookup.
package cqrs

import (
	"context"
	"fmt"
)

// Command is a value in the service's internal command vocabulary. Routing
// is by CommandName, which must be unique per command type.
type Command interface {
	CommandName() string
}

// Handler executes one command and returns its result.
type Handler interface {
	Handle(ctx context.Context, cmd Command) (any, error)
}

// HandlerFunc adapts a function to the Handler interface.
type HandlerFunc func(ctx context.Context, cmd Command) (any, error)

func (f HandlerFunc) Handle(ctx context.Context, cmd Command) (any, error) {
	return f(ctx, cmd)
}

// ErrNoHandlerRegistered is a configuration fault: the registry was built
// without a handler for a command the service consumes. It surfaces at
// startup verification or on the first dispatch, never as a data error.
type ErrNoHandlerRegistered struct {
	Name string
}

func (e *ErrNoHandlerRegistered) Error() string {
	return fmt.Sprintf("no handler registered for command %q", e.Name)
}

type Dispatcher struct {
	handlers map[string]Handler
}

func NewDispatcher() *Dispatcher {
	return &Dispatcher{handlers: make(map[string]Handler)}
}

// Register binds a command name to its one handler. Registering the same
// name twice is a wiring bug and fails loudly.
func (d *Dispatcher) Register(name string, h Handler) error {
	if _, exists := d.handlers[name]; exists {
		return fmt.Errorf("handler already registered for command %q", name)
	}
	d.handlers[name] = h
	return nil
}

// MustRegister is Register for startup wiring, where a duplicate is fatal.
func (d *Dispatcher) MustRegister(name string, h Handler) {
	if err := d.Register(name, h); err != nil {
		panic(err)
	}
}

// Dispatch routes the command to its handler and returns the handler's
// result.
func (d *Dispatcher) Dispatch(ctx context.Context, cmd Command) (any, error) {
	h, ok := d.handlers[cmd.CommandName()]
	if !ok {
		return nil, &ErrNoHandlerRegistered{Name: cmd.CommandName()}
	}
	return h.Handle(ctx, cmd)
}
