package drag

import (
	"context"
	"sync"
)

// Payload is the value registered with drop targets at drag start.
// It is either Immediate or Pending.
type Payload interface {
	isPayload()
}

// Immediate is a payload that is available at drag start.
type Immediate struct {
	Value any
}

func (Immediate) isPayload() {}

// Pending is a payload that resolves later through its Deferred.
type Pending struct {
	Deferred *Deferred
}

func (Pending) isPayload() {}

// Deferred is a value that resolves exactly once, either to a value or to
// nothing. It is safe for concurrent use.
type Deferred struct {
	once  sync.Once
	done  chan struct{}
	value any
	ok    bool
}

// NewDeferred returns an unresolved Deferred.
func NewDeferred() *Deferred {
	return &Deferred{done: make(chan struct{})}
}

// Resolve settles the Deferred with v. It reports whether this call won;
// later resolutions are ignored.
func (d *Deferred) Resolve(v any) bool {
	return d.settle(v, true)
}

// ResolveNone settles the Deferred without a value.
func (d *Deferred) ResolveNone() bool {
	return d.settle(nil, false)
}

func (d *Deferred) settle(v any, ok bool) bool {
	won := false
	d.once.Do(func() {
		d.value, d.ok = v, ok
		close(d.done)
		won = true
	})
	return won
}

// Done is closed once the Deferred is settled.
func (d *Deferred) Done() <-chan struct{} {
	return d.done
}

// Result returns the settled value. ok is false when the Deferred is still
// pending or resolved to nothing.
func (d *Deferred) Result() (v any, ok bool) {
	select {
	case <-d.done:
		return d.value, d.ok
	default:
		return nil, false
	}
}

// Await blocks until the Deferred settles or ctx ends.
func (d *Deferred) Await(ctx context.Context) (any, bool, error) {
	select {
	case <-d.done:
		return d.value, d.ok, nil
	case <-ctx.Done():
		return nil, false, ctx.Err()
	}
}

// Value returns the payload's value if it is available without waiting.
func Value(p Payload) (any, bool) {
	switch v := p.(type) {
	case Immediate:
		return v.Value, true
	case Pending:
		if v.Deferred == nil {
			return nil, false
		}
		return v.Deferred.Result()
	default:
		return nil, false
	}
}
