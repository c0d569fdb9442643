package core

import "context"

// Provider is the contract every LLM backend adapter implements.
//
// Both methods MUST be safe for concurrent use on the same value; a Provider
// is shared read-only between callers and synchronizes any internal state
// itself. Recoverable failures (network, API, decoding, unknown model) are
// reported as *Error values, never as panics.
//
// The model is passed as an interface so one call site can route to any
// provider and model chosen at runtime.
type Provider interface {
	// SendRequest sends the request to the given model and waits for the
	// complete response. The call blocks only the calling goroutine and
	// returns early with a transport error when ctx is done.
	SendRequest(ctx context.Context, model Model, req Request) (*Response, error)

	// SendStreaming sends the request and returns a lazily evaluated stream of
	// response fragments. No I/O happens until the stream is iterated.
	// Setup failures are delivered as the first element of the stream.
	SendStreaming(ctx context.Context, model Model, req Request) *Stream
}

// Named is implemented by providers that report a stable identifier such as
// "gemini" or "openai".
type Named interface {
	Name() string
}

// Wrapper is implemented by adapters and decorators that forward to another
// Provider.
type Wrapper interface {
	Unwrap() Provider
}

// ProviderName returns the name reported by p, looking through wrappers.
// It returns "unknown" when no layer reports a name.
func ProviderName(p Provider) string {
	for p != nil {
		if n, ok := p.(Named); ok {
			return n.Name()
		}
		w, ok := p.(Wrapper)
		if !ok {
			break
		}
		p = w.Unwrap()
	}
	return "unknown"
}

// Future is a pending SendRequest call running on its own goroutine.
// It is the type-erased handle returned by Go.
type Future struct {
	done chan struct{}
	resp *Response
	err  error
}

// Go starts p.SendRequest on a new goroutine and returns immediately.
// Cancelling ctx abandons the call; the provider releases its resources and
// the Future resolves with the resulting error.
func Go(ctx context.Context, p Provider, model Model, req Request) *Future {
	f := &Future{done: make(chan struct{})}
	go func() {
		defer close(f.done)
		f.resp, f.err = p.SendRequest(ctx, model, req)
	}()
	return f
}

// Done is closed once the call has finished.
func (f *Future) Done() <-chan struct{} {
	return f.done
}

// Await blocks until the call finishes or ctx is done.
// Returning early on ctx does not cancel the call itself; cancel the context
// passed to Go for that.
func (f *Future) Await(ctx context.Context) (*Response, error) {
	select {
	case <-f.done:
		return f.resp, f.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
