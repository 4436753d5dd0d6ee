package cln

import (
	"math"
	"time"

	"github.com/breez/feereport/lightning"
)

type getInfoRequest struct{}

func (r getInfoRequest) Name() string {
	return "getinfo"
}

type getInfoResponse struct {
	Id      string `json:"id"`
	Alias   string `json:"alias"`
	Version string `json:"version"`
}

type listFundsRequest struct{}

func (r listFundsRequest) Name() string {
	return "listfunds"
}

type listFundsResponse struct {
	Channels []*fundingChannel `json:"channels"`
}

type fundingChannel struct {
	PeerId         string  `json:"peer_id"`
	ShortChannelId string  `json:"short_channel_id"`
	FundingTxId    string  `json:"funding_txid"`
	FundingOutput  *uint32 `json:"funding_output"`
	State          string  `json:"state"`
}

type listChannelsRequest struct {
	ShortChannelId string `json:"short_channel_id"`
}

func (r listChannelsRequest) Name() string {
	return "listchannels"
}

type listChannelsResponse struct {
	Channels []*channelPolicy `json:"channels"`
}

type channelPolicy struct {
	Source              string `json:"source"`
	Destination         string `json:"destination"`
	ShortChannelId      string `json:"short_channel_id"`
	BaseFeeMillisatoshi uint64 `json:"base_fee_millisatoshi"`
	FeePerMillionth     uint64 `json:"fee_per_millionth"`
}

type listForwardsRequest struct{}

func (r listForwardsRequest) Name() string {
	return "listforwards"
}

type listForwardsResponse struct {
	Forwards []*forward `json:"forwards"`
}

type forward struct {
	InChannel    string   `json:"in_channel"`
	OutChannel   string   `json:"out_channel"`
	Fee          *Msat    `json:"fee"`
	FeeMsat      *Msat    `json:"fee_msat"`
	Status       string   `json:"status"`
	ReceivedTime float64  `json:"received_time"`
	ResolvedTime *float64 `json:"resolved_time"`
}

func (f *forward) toForward() *lightning.Forward {
	// fee was deprecated in favour of fee_msat and removed in v23.
	var fee uint64
	if f.FeeMsat != nil {
		fee = f.FeeMsat.MSat()
	} else if f.Fee != nil {
		fee = f.Fee.MSat()
	}

	var resolved *time.Time
	if f.ResolvedTime != nil {
		sec, dec := math.Modf(*f.ResolvedTime)
		t := time.Unix(int64(sec), int64(dec*(1e9)))
		resolved = &t
	}

	return &lightning.Forward{
		InChannel:    f.InChannel,
		OutChannel:   f.OutChannel,
		FeeMsat:      fee,
		Status:       f.Status,
		ResolvedTime: resolved,
	}
}
