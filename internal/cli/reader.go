package cli

import (
	"bufio"
	"context"
	"errors"
	"io"
	"strings"
	"sync"
)

// ErrInputCancelled is returned when input is canceled by context.
var ErrInputCancelled = errors.New("input canceled")

// maxPayloadLine bounds a single payload line. QR codes top out near 7 KB,
// so this leaves generous headroom for data: URIs.
const maxPayloadLine = 1 << 20

// PayloadReader reads newline-separated payloads and gives up as soon as
// the context is canceled, even while blocked on a terminal.
type PayloadReader struct {
	scanner *bufio.Scanner
	mu      sync.Mutex
}

// NewPayloadReader creates a reader over r.
func NewPayloadReader(r io.Reader) *PayloadReader {
	if r == nil {
		panic("reader cannot be nil")
	}

	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxPayloadLine)
	return &PayloadReader{scanner: scanner}
}

// Next returns the next line with its line ending removed. It returns
// io.EOF once the input is exhausted.
func (r *PayloadReader) Next(ctx context.Context) (string, error) {
	type result struct {
		err  error
		line string
	}
	resultCh := make(chan result, 1)

	go func() {
		r.mu.Lock()
		defer r.mu.Unlock()

		if r.scanner.Scan() {
			resultCh <- result{line: strings.TrimRight(r.scanner.Text(), "\r")}
			return
		}
		err := r.scanner.Err()
		if err == nil {
			err = io.EOF
		}
		resultCh <- result{err: err}
	}()

	select {
	case <-ctx.Done():
		return "", ErrInputCancelled
	case res := <-resultCh:
		return res.line, res.err
	}
}

// ReadAll collects every non-blank line until EOF.
func (r *PayloadReader) ReadAll(ctx context.Context) ([]string, error) {
	var payloads []string
	for {
		line, err := r.Next(ctx)
		if errors.Is(err, io.EOF) {
			return payloads, nil
		}
		if err != nil {
			return payloads, err
		}
		if strings.TrimSpace(line) == "" {
			continue
		}
		payloads = append(payloads, line)
	}
}
