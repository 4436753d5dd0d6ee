package lightning

import (
	"fmt"
)

// FormatChannelPoint renders a funding outpoint as `<txid>:<index>`.
func FormatChannelPoint(fundingTxID string, index uint32) string {
	return fmt.Sprintf("%s:%d", fundingTxID, index)
}

// ChannelPoint returns the funding outpoint of a channel. The explicit
// funding output is preferred. Nodes that don't report it (CLN before
// v0.7.2) still encode it as the last component of the short channel id.
func (c *Channel) ChannelPoint() (string, error) {
	if c.FundingOutput != nil {
		return FormatChannelPoint(c.FundingTxID, *c.FundingOutput), nil
	}

	scid, err := NewShortChannelIDFromString(c.ShortChannelID)
	if err != nil {
		return "", err
	}

	return FormatChannelPoint(c.FundingTxID, scid.OutputIndex()), nil
}
