package cln

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// Msat is a millisatoshi amount. CLN reports amounts either as a plain
// integer or, since v0.8, as a string with an `msat` suffix.
type Msat uint64

func (m Msat) MSat() uint64 {
	return uint64(m)
}

func (m *Msat) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if bytes.Equal(data, []byte("null")) {
		return nil
	}

	s := string(data)
	if len(data) > 0 && data[0] == '"' {
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		s = strings.TrimSuffix(s, "msat")
	}

	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid msat amount %s: %w", data, err)
	}

	*m = Msat(v)
	return nil
}
