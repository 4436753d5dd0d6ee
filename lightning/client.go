package lightning

import (
	"time"
)

const ForwardStatusSettled = "settled"

type NodeInfo struct {
	Pubkey  string
	Alias   string
	Version string
}

// Channel is a channel funded by our node, as listed in the node's wallet.
type Channel struct {
	PeerId         string
	ShortChannelID string
	FundingTxID    string
	// FundingOutput is nil if the node doesn't report it.
	FundingOutput *uint32
}

// ChannelPolicy is one direction of a channel in the gossip view of the node.
type ChannelPolicy struct {
	Source          string
	Destination     string
	BaseFeeMsat     uint64
	FeePerMillionth uint64
}

type Forward struct {
	InChannel  string
	OutChannel string
	FeeMsat    uint64
	Status     string
	// ResolvedTime is nil for unresolved forwards, or nodes that don't report
	// resolution times.
	ResolvedTime *time.Time
}

func (f *Forward) IsSettled() bool {
	return f.Status == ForwardStatusSettled && f.ResolvedTime != nil
}

type Client interface {
	GetInfo() (*NodeInfo, error)
	ListFunds() ([]*Channel, error)
	ListChannels(shortChannelID string) ([]*ChannelPolicy, error)
	ListForwards() ([]*Forward, error)
}
