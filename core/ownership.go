package core

import (
	"context"
	"errors"
	"io"
	"sync"
	"sync/atomic"
)

// The adapters below let callers choose how a provider is held without
// re-implementing the contract. Every one of them forwards arguments,
// responses, streams and errors unchanged.

// Borrow returns a view of p for a callee that may use the provider but must
// not release it. The view does not expose Close even when p does.
func Borrow(p Provider) Provider {
	return borrowed{p: p}
}

type borrowed struct {
	p Provider
}

func (b borrowed) SendRequest(ctx context.Context, model Model, req Request) (*Response, error) {
	return b.p.SendRequest(ctx, model, req)
}

func (b borrowed) SendStreaming(ctx context.Context, model Model, req Request) *Stream {
	return b.p.SendStreaming(ctx, model, req)
}

func (b borrowed) Unwrap() Provider { return b.p }

// Owned holds a provider exclusively. Close releases the provider exactly once.
type Owned struct {
	p    Provider
	once sync.Once
	err  error
}

// Own takes exclusive ownership of p.
func Own(p Provider) *Owned {
	return &Owned{p: p}
}

// SendRequest forwards to the owned provider.
func (o *Owned) SendRequest(ctx context.Context, model Model, req Request) (*Response, error) {
	return o.p.SendRequest(ctx, model, req)
}

// SendStreaming forwards to the owned provider.
func (o *Owned) SendStreaming(ctx context.Context, model Model, req Request) *Stream {
	return o.p.SendStreaming(ctx, model, req)
}

// Unwrap returns the owned provider.
func (o *Owned) Unwrap() Provider { return o.p }

// Close releases the provider if it implements io.Closer.
// Subsequent calls return the result of the first one.
func (o *Owned) Close() error {
	o.once.Do(func() {
		o.err = closeProvider(o.p)
	})
	return o.err
}

// Shared is one handle to a reference-counted provider. Handles created with
// Clone share the provider; it is released when the last handle is closed.
type Shared struct {
	p      Provider
	refs   *atomic.Int64
	closed atomic.Bool
}

// Share wraps p in a reference-counted handle with a count of one.
func Share(p Provider) *Shared {
	refs := new(atomic.Int64)
	refs.Store(1)
	return &Shared{p: p, refs: refs}
}

// ErrReleased is returned by Clone on a closed handle or a released provider.
var ErrReleased = errors.New("shared provider handle is closed")

// Clone returns a new handle to the same provider. A closed handle cannot be
// cloned, and the count never goes back up from zero.
func (s *Shared) Clone() (*Shared, error) {
	if s.closed.Load() {
		return nil, ErrReleased
	}
	for {
		n := s.refs.Load()
		if n <= 0 {
			return nil, ErrReleased
		}
		if s.refs.CompareAndSwap(n, n+1) {
			return &Shared{p: s.p, refs: s.refs}, nil
		}
	}
}

// Refs returns the number of open handles.
func (s *Shared) Refs() int64 {
	return s.refs.Load()
}

// SendRequest forwards to the shared provider.
func (s *Shared) SendRequest(ctx context.Context, model Model, req Request) (*Response, error) {
	return s.p.SendRequest(ctx, model, req)
}

// SendStreaming forwards to the shared provider.
func (s *Shared) SendStreaming(ctx context.Context, model Model, req Request) *Stream {
	return s.p.SendStreaming(ctx, model, req)
}

// Unwrap returns the shared provider.
func (s *Shared) Unwrap() Provider { return s.p }

// Close drops this handle. Closing the last handle releases the provider if
// it implements io.Closer. Closing the same handle twice is a no-op.
func (s *Shared) Close() error {
	if s.closed.Swap(true) {
		return nil
	}
	if s.refs.Add(-1) == 0 {
		return closeProvider(s.p)
	}
	return nil
}

func closeProvider(p Provider) error {
	if c, ok := p.(io.Closer); ok {
		return c.Close()
	}
	return nil
}

// Compile-time checks.
var (
	_ Provider  = borrowed{}
	_ Provider  = (*Owned)(nil)
	_ Provider  = (*Shared)(nil)
	_ io.Closer = (*Owned)(nil)
	_ io.Closer = (*Shared)(nil)
)
