package cln_plugin

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"sync"
)

var (
	TwoNewLines = []byte("\n\n")
)

// stdout belongs to cln, last resort errors go here.
var errorOutput io.Writer = os.Stderr

// writer serializes messages to cln. It is safe for concurrent use.
type writer struct {
	mtx sync.Mutex
	out io.Writer
}

func newWriter(out io.Writer) *writer {
	return &writer{
		out: out,
	}
}

func (w *writer) Write(msg interface{}) error {
	data, err := json.Marshal(msg)
	if err != nil {
		return fmt.Errorf("failed to marshal to json: %w", err)
	}

	data = append(data, TwoNewLines...)

	w.mtx.Lock()
	defer w.mtx.Unlock()
	_, err = w.out.Write(data)
	if err != nil {
		return fmt.Errorf("failed to write to cln: %w", err)
	}

	return nil
}
