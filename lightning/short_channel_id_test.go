package lightning

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestShortChannelIDRoundTrip(t *testing.T) {
	for _, s := range []string{"700000x1x0", "1x2x3", "16777215x16777215x65535"} {
		scid, err := NewShortChannelIDFromString(s)
		assert.NoError(t, err)
		assert.Equal(t, s, scid.ToString())
	}
}

func TestShortChannelIDOutputIndex(t *testing.T) {
	scid, err := NewShortChannelIDFromString("700000x1x7")
	assert.NoError(t, err)
	assert.Equal(t, uint32(7), scid.OutputIndex())
}

func TestShortChannelIDInvalid(t *testing.T) {
	tests := []string{
		"",
		"700000x1",
		"700000x1x0x1",
		"ax1x0",
		"1xbx0",
		"1x1xc",
		"16777216x1x0",
		"1x1x65536",
		"-1x1x0",
	}
	for _, tst := range tests {
		t.Run(tst, func(t *testing.T) {
			_, err := NewShortChannelIDFromString(tst)
			assert.Error(t, err)
		})
	}
}
