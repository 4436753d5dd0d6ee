package lightning

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/lightningnetwork/lnd/lnwire"
)

type ShortChannelID uint64

// NewShortChannelIDFromString parses a short channel id in the
// `<blockheight>x<txindex>x<output>` notation used by CLN.
func NewShortChannelIDFromString(channelID string) (*ShortChannelID, error) {
	fields := strings.Split(channelID, "x")
	if len(fields) != 3 {
		return nil, fmt.Errorf("invalid short channel id '%v'", channelID)
	}
	var blockHeight, txIndex, txPos uint64
	var err error
	if blockHeight, err = strconv.ParseUint(fields[0], 10, 24); err != nil {
		return nil, fmt.Errorf("failed to parse block height %v", fields[0])
	}
	if txIndex, err = strconv.ParseUint(fields[1], 10, 24); err != nil {
		return nil, fmt.Errorf("failed to parse tx index %v", fields[1])
	}
	if txPos, err = strconv.ParseUint(fields[2], 10, 16); err != nil {
		return nil, fmt.Errorf("failed to parse output index %v", fields[2])
	}

	result := ShortChannelID(
		lnwire.ShortChannelID{
			BlockHeight: uint32(blockHeight),
			TxIndex:     uint32(txIndex),
			TxPosition:  uint16(txPos),
		}.ToUint64(),
	)
	return &result, nil
}

// OutputIndex is the funding output index encoded in the short channel id.
func (c *ShortChannelID) OutputIndex() uint32 {
	return uint32(lnwire.NewShortChanIDFromInt(uint64(*c)).TxPosition)
}

func (c *ShortChannelID) ToString() string {
	s := lnwire.NewShortChanIDFromInt(uint64(*c))
	return fmt.Sprintf("%dx%dx%d", s.BlockHeight, s.TxIndex, s.TxPosition)
}
