package core

import (
	"errors"
	"iter"
	"strings"
	"sync/atomic"
)

// ErrStreamConsumed is yielded when a Stream is iterated a second time.
var ErrStreamConsumed = errors.New("stream already consumed: issue a new call to replay")

// Stream is a one-shot sequence of response fragments.
//
// Rules:
//   - Each element is either a *Response (err == nil) or an error.
//   - An error element does not by itself end the stream; adapters document
//     whether they stop after a failure.
//   - Breaking out of the range loop abandons the stream: the provider
//     releases its connection and yields nothing further.
//   - A Stream cannot be restarted. A second iteration yields a single
//     ErrStreamConsumed.
type Stream struct {
	seq  iter.Seq2[*Response, error]
	used atomic.Bool
}

// NewStream wraps a provider iterator. The iterator MUST stop as soon as
// yield returns false and MUST release every resource it holds before
// returning.
func NewStream(seq iter.Seq2[*Response, error]) *Stream {
	return &Stream{seq: seq}
}

// ErrorStream returns a stream whose only element is err.
func ErrorStream(err error) *Stream {
	return NewStream(func(yield func(*Response, error) bool) {
		yield(nil, err)
	})
}

// SliceStream returns a stream that yields the given fragments in order.
func SliceStream(fragments ...*Response) *Stream {
	return NewStream(func(yield func(*Response, error) bool) {
		for _, f := range fragments {
			if !yield(f, nil) {
				return
			}
		}
	})
}

// Iter returns the elements for use with range-over-func loops.
//
//	for resp, err := range stream.Iter() {
//	    if err != nil { ... }
//	    fmt.Print(resp.Text)
//	}
func (s *Stream) Iter() iter.Seq2[*Response, error] {
	return func(yield func(*Response, error) bool) {
		if s == nil || s.seq == nil {
			return
		}
		if s.used.Swap(true) {
			yield(nil, ErrStreamConsumed)
			return
		}
		s.seq(yield)
	}
}

// Collect drains the stream into a single Response.
// Text fragments are concatenated and the last reported usage is kept.
// The first error stops collection and is returned with the partial response.
func (s *Stream) Collect() (*Response, error) {
	var text strings.Builder
	out := &Response{}

	for resp, err := range s.Iter() {
		if err != nil {
			out.Text = text.String()
			return out, err
		}
		if resp == nil {
			continue
		}
		text.WriteString(resp.Text)
		if resp.Model != "" {
			out.Model = resp.Model
		}
		if !resp.Usage.IsZero() {
			out.Usage = resp.Usage
		}
	}

	out.Text = text.String()
	return out, nil
}
