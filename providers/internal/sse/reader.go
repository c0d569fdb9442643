// Package sse reads server-sent event streams returned by HTTP adapters.
package sse

import (
	"bufio"
	"io"
	"iter"
	"strings"
)

// maxLine is the longest line accepted. Model chunks are small, but usage
// trailers and tool payloads can be large.
const maxLine = 1 << 20

// Event is one dispatched server-sent event.
type Event struct {
	Name string
	Data string
}

// Events yields the events of an SSE stream in order.
//
// Lines starting with ':' are comments and are skipped. Consecutive data
// lines are joined with '\n'. An event without data is not dispatched. A
// read error is yielded once and ends the sequence; a stream that ends
// without a trailing blank line still dispatches its last event.
func Events(r io.Reader) iter.Seq2[Event, error] {
	return func(yield func(Event, error) bool) {
		sc := bufio.NewScanner(r)
		sc.Buffer(make([]byte, 0, 64<<10), maxLine)

		var (
			name string
			data []string
		)
		dispatch := func() bool {
			if len(data) == 0 {
				name = ""
				return true
			}
			ev := Event{Name: name, Data: strings.Join(data, "\n")}
			name, data = "", data[:0]
			return yield(ev, nil)
		}

		for sc.Scan() {
			line := strings.TrimSuffix(sc.Text(), "\r")
			if line == "" {
				if !dispatch() {
					return
				}
				continue
			}
			if strings.HasPrefix(line, ":") {
				continue
			}

			field, value, _ := strings.Cut(line, ":")
			value = strings.TrimPrefix(value, " ")
			switch field {
			case "data":
				data = append(data, value)
			case "event":
				name = value
			}
		}

		if err := sc.Err(); err != nil {
			yield(Event{}, err)
			return
		}
		dispatch()
	}
}
