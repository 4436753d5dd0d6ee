package feereport

import (
	"fmt"
	"strconv"
	"time"

	"github.com/breez/feereport/lightning"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/exp/slices"
)

// ChannelFee is the fee policy our node enforces when forwarding over a
// channel.
type ChannelFee struct {
	ChanPoint   string `json:"chan_point"`
	BaseFeeMsat string `json:"base_fee_msat"`
	FeePerMil   string `json:"fee_per_mil"`
	FeeRate     string `json:"fee_rate"`
}

// Report mirrors the output of `lncli feereport`. Fee sums are in satoshi.
type Report struct {
	ChannelFees []*ChannelFee `json:"channel_fees"`
	DayFeeSum   string        `json:"day_fee_sum"`
	WeekFeeSum  string        `json:"week_fee_sum"`
	MonthFeeSum string        `json:"month_fee_sum"`
}

type ReportGenerator interface {
	GenerateReport() (*Report, error)
}

type Generator struct {
	client lightning.Client
	nodeID string
	now    func() time.Time
	log    *zap.Logger
}

type Option func(*Generator)

// WithClock replaces the wall clock the fee windows are computed against.
func WithClock(now func() time.Time) Option {
	return func(g *Generator) {
		g.now = now
	}
}

func WithLogger(log *zap.Logger) Option {
	return func(g *Generator) {
		g.log = log
	}
}

// NewGenerator creates a report generator for the node identified by nodeID,
// reading channels, policies and forwards through client.
func NewGenerator(client lightning.Client, nodeID string, opts ...Option) *Generator {
	g := &Generator{
		client: client,
		nodeID: nodeID,
		now:    time.Now,
		log:    zap.NewNop(),
	}
	for _, opt := range opts {
		opt(g)
	}

	return g
}

func (g *Generator) GenerateReport() (*Report, error) {
	now := g.now()
	channelFees, err := g.channelFees()
	if err != nil {
		return nil, err
	}

	forwards, err := g.client.ListForwards()
	if err != nil {
		return nil, fmt.Errorf("listforwards: %w", err)
	}

	sums := sumFees(forwards, now)
	g.log.Debug("generated fee report",
		zap.Int("channels", len(channelFees)),
		zap.Int("forwards", len(forwards)),
		zap.Uint64("month_fee_msat", sums.month),
	)

	return &Report{
		ChannelFees: channelFees,
		DayFeeSum:   msatToSatString(sums.day),
		WeekFeeSum:  msatToSatString(sums.week),
		MonthFeeSum: msatToSatString(sums.month),
	}, nil
}

func (g *Generator) channelFees() ([]*ChannelFee, error) {
	channels, err := g.client.ListFunds()
	if err != nil {
		return nil, fmt.Errorf("listfunds: %w", err)
	}

	result := []*ChannelFee{}
	for _, channel := range channels {
		// Channels that are not confirmed yet are not in the gossip view.
		if channel.ShortChannelID == "" {
			g.log.Debug("skipping channel without short channel id",
				zap.String("funding_txid", channel.FundingTxID))
			continue
		}

		policies, err := g.client.ListChannels(channel.ShortChannelID)
		if err != nil {
			return nil, fmt.Errorf("listchannels %s: %w", channel.ShortChannelID, err)
		}

		i := slices.IndexFunc(policies, func(p *lightning.ChannelPolicy) bool {
			return p.Source == g.nodeID
		})
		if i < 0 {
			continue
		}

		chanPoint, err := channel.ChannelPoint()
		if err != nil {
			return nil, fmt.Errorf("channel point of %s: %w", channel.ShortChannelID, err)
		}

		policy := policies[i]
		result = append(result, &ChannelFee{
			ChanPoint:   chanPoint,
			BaseFeeMsat: strconv.FormatUint(policy.BaseFeeMsat, 10),
			FeePerMil:   strconv.FormatUint(policy.FeePerMillionth, 10),
			FeeRate:     feeRate(policy.FeePerMillionth),
		})
	}

	return result, nil
}

// feeRate is the proportional fee as a fraction with 8 decimals.
func feeRate(feePerMillionth uint64) string {
	return decimal.NewFromInt(int64(feePerMillionth)).Shift(-6).StringFixed(8)
}

func msatToSatString(msat uint64) string {
	return strconv.FormatUint(msat/1000, 10)
}
