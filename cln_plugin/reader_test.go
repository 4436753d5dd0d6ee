package cln_plugin

import (
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func newStringReader(s string) *reader {
	return newReader(io.NopCloser(strings.NewReader(s)))
}

func TestReaderSplitsOnDoubleNewline(t *testing.T) {
	r := newStringReader(
		`{"jsonrpc":"2.0","id":1,"method":"getmanifest"}` + "\n\n" +
			"\n" + `{"jsonrpc":"2.0","id":2,` + "\n" + `"method":"init"}` + "\n\n",
	)

	req, err := r.Next()
	assert.NoError(t, err)
	assert.Equal(t, "getmanifest", req.Method)
	assert.Equal(t, "1", string(req.Id))

	req, err = r.Next()
	assert.NoError(t, err)
	assert.Equal(t, "init", req.Method)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}

func TestReaderBatch(t *testing.T) {
	r := newStringReader(`[
		{"jsonrpc":"2.0","id":1,"method":"a"},
		{"jsonrpc":"2.0","id":2,"method":"b"}
	]` + "\n\n" + `{"jsonrpc":"2.0","id":3,"method":"c"}` + "\n\n")

	var methods []string
	for {
		req, err := r.Next()
		if errors.Is(err, io.EOF) {
			break
		}
		assert.NoError(t, err)
		methods = append(methods, req.Method)
	}

	assert.Equal(t, []string{"a", "b", "c"}, methods)
}

func TestReaderInvalidMessages(t *testing.T) {
	r := newStringReader("{nope\n\n[]\n\n[{nope]\n\n" + `{"jsonrpc":"2.0","method":"shutdown"}` + "\n\n")

	for i := 0; i < 3; i++ {
		_, err := r.Next()
		assert.ErrorIs(t, err, ErrInvalidMessage)
	}

	req, err := r.Next()
	assert.NoError(t, err)
	assert.True(t, req.IsNotification())
}

func TestReaderDropsTrailingPartialMessage(t *testing.T) {
	r := newStringReader(`{"jsonrpc":"2.0","id":1,"method":"a"}` + "\n\n" + `{"jsonrpc":"2.0"`)

	req, err := r.Next()
	assert.NoError(t, err)
	assert.Equal(t, "a", req.Method)

	_, err = r.Next()
	assert.ErrorIs(t, err, io.EOF)
}
