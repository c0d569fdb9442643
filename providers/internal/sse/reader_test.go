package sse

import (
	"errors"
	"io"
	"strings"
	"testing"
	"testing/iotest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func collect(t *testing.T, r io.Reader) ([]Event, error) {
	t.Helper()
	var events []Event
	for ev, err := range Events(r) {
		if err != nil {
			return events, err
		}
		events = append(events, ev)
	}
	return events, nil
}

func TestEvents(t *testing.T) {
	body := ": OPENROUTER PROCESSING\n\n" +
		"data: {\"a\":1}\n\n" +
		"event: update\r\ndata: line one\r\ndata: line two\r\n\r\n" +
		"data: [DONE]\n\n"

	events, err := collect(t, strings.NewReader(body))
	require.NoError(t, err)
	require.Len(t, events, 3)

	assert.Equal(t, `{"a":1}`, events[0].Data)
	assert.Equal(t, Event{Name: "update", Data: "line one\nline two"}, events[1])
	assert.Equal(t, "[DONE]", events[2].Data)
}

func TestEventsWithoutTrailingBlankLine(t *testing.T) {
	events, err := collect(t, strings.NewReader("data: tail"))
	require.NoError(t, err)
	require.Len(t, events, 1)
	assert.Equal(t, "tail", events[0].Data)
}

func TestEventsReadError(t *testing.T) {
	boom := errors.New("connection reset")
	r := io.MultiReader(strings.NewReader("data: first\n\n"), iotest.ErrReader(boom))

	events, err := collect(t, r)
	assert.ErrorIs(t, err, boom)
	assert.Len(t, events, 1)
}

func TestEventsStopsWhenConsumerBreaks(t *testing.T) {
	body := "data: 1\n\ndata: 2\n\ndata: 3\n\n"
	var seen []string
	for ev := range Events(strings.NewReader(body)) {
		seen = append(seen, ev.Data)
		break
	}
	assert.Equal(t, []string{"1"}, seen)
}
