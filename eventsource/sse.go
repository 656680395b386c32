package eventsource

import (
	"bufio"
	"bytes"
	"context"
	"io"
)

// SSESource decodes Server-Sent Events from a reader (typically an HTTP
// response body with Accept: text/event-stream) into Events.
//
// The first call to Next returns an open event; subsequent calls return one
// message event per SSE event, concatenating multiple `data:` lines with
// `\n` per the SSE spec. Comment lines (starting with ':') and fields other
// than `data:` are skipped.
type SSESource struct {
	r      *bufio.Reader
	body   io.Closer
	opened bool
}

// NewSSESource creates an SSESource reading from r.
func NewSSESource(r io.Reader) *SSESource {
	src := &SSESource{r: bufio.NewReaderSize(r, 64*1024)}
	if c, ok := r.(io.Closer); ok {
		src.body = c
	}
	return src
}

// Next returns the next event from the stream.
// Returns io.EOF once the underlying reader is exhausted.
func (s *SSESource) Next(ctx context.Context) (Event, error) {
	if err := ctx.Err(); err != nil {
		return Event{}, err
	}

	if !s.opened {
		s.opened = true
		return Event{Type: EventOpen}, nil
	}

	var dataLines [][]byte
	for {
		line, err := s.r.ReadBytes('\n')
		if err != nil {
			// Flush whatever was accumulated before EOF.
			line = bytes.TrimRight(line, "\r\n")
			if len(line) > 0 {
				dataLines = appendDataLine(dataLines, line)
			}
			if len(dataLines) > 0 {
				return Event{Type: EventMessage, Data: string(bytes.Join(dataLines, []byte("\n")))}, nil
			}
			if err == io.EOF {
				return Event{}, io.EOF
			}
			return Event{}, err
		}

		line = bytes.TrimRight(line, "\r\n")

		// Blank line terminates an event.
		if len(line) == 0 {
			if len(dataLines) == 0 {
				continue
			}
			return Event{Type: EventMessage, Data: string(bytes.Join(dataLines, []byte("\n")))}, nil
		}

		// Comment line
		if line[0] == ':' {
			continue
		}

		dataLines = appendDataLine(dataLines, line)
	}
}

// Close releases the underlying reader if it is closable.
// Abandoning a stream mid-flight is always safe.
func (s *SSESource) Close() error {
	if s.body != nil {
		return s.body.Close()
	}
	return nil
}

// appendDataLine extracts the value of a `data:` field line, dropping the
// optional single leading space. Non-data fields are ignored.
func appendDataLine(dst [][]byte, line []byte) [][]byte {
	if !bytes.HasPrefix(line, []byte("data:")) {
		return dst
	}
	val := line[len("data:"):]
	if len(val) > 0 && val[0] == ' ' {
		val = val[1:]
	}
	return append(dst, append([]byte(nil), val...))
}
