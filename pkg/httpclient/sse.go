package httpclient

import (
	"bufio"
	"io"
	"strings"
	"sync"
)

// sseReader decodes a text/event-stream body into dispatched events.
type sseReader struct {
	body      io.ReadCloser
	reader    *bufio.Reader
	closeOnce sync.Once
	closeErr  error
}

func newSSEReader(body io.ReadCloser) *sseReader {
	return &sseReader{
		body:   body,
		reader: bufio.NewReader(body),
	}
}

// Next reads lines until a blank line dispatches an event. Blocks without
// data lines are discarded, and an unterminated trailing block is dropped at EOF.
func (s *sseReader) Next() (ServerEvent, error) {
	var (
		evt     ServerEvent
		data    []string
		hasData bool
	)

	for {
		line, err := s.reader.ReadString('\n')
		if err != nil {
			return ServerEvent{}, err
		}
		line = strings.TrimRight(line, "\r\n")

		if line == "" {
			if !hasData {
				evt = ServerEvent{}
				continue
			}
			evt.Data = strings.Join(data, "\n")
			return evt, nil
		}

		// comment / keep-alive
		if strings.HasPrefix(line, ":") {
			continue
		}

		field, value, _ := strings.Cut(line, ":")
		value = strings.TrimPrefix(value, " ")

		switch field {
		case "event":
			evt.Type = value
		case "data":
			data = append(data, value)
			hasData = true
		case "id":
			evt.ID = value
		}
	}
}

func (s *sseReader) Close() error {
	s.closeOnce.Do(func() {
		s.closeErr = s.body.Close()
	})
	return s.closeErr
}
