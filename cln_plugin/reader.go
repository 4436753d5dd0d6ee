package cln_plugin

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"
)

const (
	maxIntakeBuffer = 500 * 1024 * 1023
)

// ErrInvalidMessage is returned by the reader for a message that could not be
// parsed. The reader can still be used after this error.
var ErrInvalidMessage = errors.New("invalid message")

type reader struct {
	in       io.ReadCloser
	mtx      sync.Mutex
	scanner  *bufio.Scanner
	buffered []*Request
}

func newReader(in io.ReadCloser) *reader {
	scanner := bufio.NewScanner(in)
	buf := make([]byte, 1024)
	scanner.Buffer(buf, maxIntakeBuffer)

	// cln messages are split by a double newline.
	scanner.Split(scanDoubleNewline)
	return &reader{
		in:      in,
		scanner: scanner,
	}
}

func (r *reader) Close() error {
	return r.in.Close()
}

// Next returns the next request from cln. Request batches are unrolled and
// returned one by one.
func (r *reader) Next() (*Request, error) {
	r.mtx.Lock()
	defer r.mtx.Unlock()

	if req := r.takeFromBuffer(); req != nil {
		return req, nil
	}

	if !r.scanner.Scan() {
		if r.scanner.Err() != nil {
			return nil, r.scanner.Err()
		}

		return nil, io.EOF
	}

	msg := r.scanner.Bytes()
	if len(msg) == 0 {
		return nil, fmt.Errorf("%w: got zero length message", ErrInvalidMessage)
	}

	if msg[0] == '[' {
		var batch []*Request
		if err := json.Unmarshal(msg, &batch); err != nil {
			return nil, fmt.Errorf("%w: failed to unmarshal request batch: %v", ErrInvalidMessage, err)
		}

		r.buffered = batch
		if req := r.takeFromBuffer(); req != nil {
			return req, nil
		}

		return nil, fmt.Errorf("%w: got empty request batch", ErrInvalidMessage)
	}

	var request Request
	if err := json.Unmarshal(msg, &request); err != nil {
		return nil, fmt.Errorf("%w: failed to unmarshal request: %v", ErrInvalidMessage, err)
	}

	return &request, nil
}

func (r *reader) takeFromBuffer() *Request {
	for len(r.buffered) > 0 {
		req := r.buffered[0]
		r.buffered = r.buffered[1:]
		if req != nil {
			return req
		}
	}

	return nil
}

// Helper method for the bufio scanner to split messages on double newlines.
// Whitespace between messages is skipped.
func scanDoubleNewline(
	data []byte,
	atEOF bool,
) (advance int, token []byte, err error) {
	start := 0
	for start < len(data) && isSpace(data[start]) {
		start++
	}

	for i := start; i < len(data); i++ {
		if data[i] == '\n' && (i+1) < len(data) && data[i+1] == '\n' {
			return i + 2, data[start:i], nil
		}
	}

	// Anything left over at EOF without a trailing double newline is dropped.
	if atEOF {
		return len(data), nil, nil
	}

	return start, nil, nil
}

func isSpace(b byte) bool {
	return b == ' ' || b == '\n' || b == '\r' || b == '\t'
}
