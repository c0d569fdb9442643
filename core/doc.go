// Package core defines the LatchLM provider contract.
//
// A [Provider] turns a [Request] addressed to a [Model] into a [Response],
// either all at once with SendRequest or incrementally with SendStreaming.
// Application code depends only on these types, so the backend can be
// selected at runtime:
//
//	p, err := gemini.New(key)
//	if err != nil {
//	    return err
//	}
//	resp, err := p.SendRequest(ctx, gemini.Flash25, core.NewRequest("hello"))
//
// # Streaming
//
// SendStreaming returns a one-shot [Stream]. Range over [Stream.Iter] to
// receive fragments; breaking out of the loop abandons the call and releases
// the connection:
//
//	for frag, err := range p.SendStreaming(ctx, model, req).Iter() {
//	    if err != nil {
//	        return err
//	    }
//	    fmt.Print(frag.Text)
//	}
//
// # Errors
//
// Every failure is an [*Error]. Match a class with errors.Is against the
// kind sentinels ([ErrTransport], [ErrAPI], [ErrParse], [ErrInvalidModel],
// [ErrProviderConfig]) or, for API errors, the status sentinels such as
// [ErrRateLimited]. The original cause stays reachable through errors.Unwrap.
//
// # Holding a provider
//
// [Borrow], [Own] and [Share] adapt a provider for different ownership needs
// without changing what it returns.
package core
