package cln

import (
	"fmt"
	"math"
	"path/filepath"
	"sync"
	"time"

	"github.com/breez/feereport/lightning"
	"github.com/niftynei/glightning/glightning"
	"github.com/niftynei/glightning/jrpc2"
	"go.uber.org/zap"
)

var DefaultRpcTimeout = 60 * time.Second

// ClnClient reads channels, policies and forwards from lightningd over its
// unix socket.
type ClnClient struct {
	socketPath string
	timeout    time.Duration
	client     *glightning.Lightning
	log        *zap.Logger
	mtx        sync.Mutex
}

func NewClnClient(socketPath string, timeout time.Duration, log *zap.Logger) (*ClnClient, error) {
	if timeout <= 0 {
		timeout = DefaultRpcTimeout
	}
	if log == nil {
		log = zap.NewNop()
	}

	client, err := newGlightningClient(socketPath, timeout)
	if err != nil {
		return nil, err
	}
	return &ClnClient{
		socketPath: socketPath,
		timeout:    timeout,
		client:     client,
		log:        log,
	}, nil
}

func newGlightningClient(socketPath string, timeout time.Duration) (*glightning.Lightning, error) {
	rpcFile := filepath.Base(socketPath)
	if rpcFile == "" || rpcFile == "." || rpcFile == string(filepath.Separator) {
		return nil, fmt.Errorf("invalid socketPath '%s'", socketPath)
	}
	lightningDir := filepath.Dir(socketPath)
	if lightningDir == "" || lightningDir == "." {
		return nil, fmt.Errorf("invalid socketPath '%s'", socketPath)
	}

	client := glightning.NewLightning()
	client.SetTimeout(uint(math.Ceil(timeout.Seconds())))
	client.StartUp(rpcFile, lightningDir)
	if !client.IsUp() {
		return nil, fmt.Errorf("failed to connect to '%s'", socketPath)
	}

	return client, nil
}

func (c *ClnClient) getClient() (*glightning.Lightning, error) {
	c.mtx.Lock()
	defer c.mtx.Unlock()
	if c.client.IsUp() {
		return c.client, nil
	}

	client, err := newGlightningClient(c.socketPath, c.timeout)
	if err != nil {
		return nil, fmt.Errorf("cln is not accessible: %w", err)
	}

	c.client = client
	return c.client, nil
}

func (c *ClnClient) request(m jrpc2.Method, resp interface{}) error {
	client, err := c.getClient()
	if err != nil {
		return err
	}

	err = client.Request(m, resp)
	if err != nil {
		c.log.Warn("CLN request failed", zap.String("method", m.Name()), zap.Error(err))
		return err
	}

	return nil
}

func (c *ClnClient) GetInfo() (*lightning.NodeInfo, error) {
	var info getInfoResponse
	if err := c.request(&getInfoRequest{}, &info); err != nil {
		return nil, err
	}

	return &lightning.NodeInfo{
		Pubkey:  info.Id,
		Alias:   info.Alias,
		Version: info.Version,
	}, nil
}

func (c *ClnClient) ListFunds() ([]*lightning.Channel, error) {
	var funds listFundsResponse
	if err := c.request(&listFundsRequest{}, &funds); err != nil {
		return nil, err
	}

	result := make([]*lightning.Channel, 0, len(funds.Channels))
	for _, ch := range funds.Channels {
		result = append(result, &lightning.Channel{
			PeerId:         ch.PeerId,
			ShortChannelID: ch.ShortChannelId,
			FundingTxID:    ch.FundingTxId,
			FundingOutput:  ch.FundingOutput,
		})
	}

	return result, nil
}

func (c *ClnClient) ListChannels(shortChannelID string) ([]*lightning.ChannelPolicy, error) {
	var channels listChannelsResponse
	err := c.request(&listChannelsRequest{ShortChannelId: shortChannelID}, &channels)
	if err != nil {
		return nil, err
	}

	result := make([]*lightning.ChannelPolicy, 0, len(channels.Channels))
	for _, ch := range channels.Channels {
		result = append(result, &lightning.ChannelPolicy{
			Source:          ch.Source,
			Destination:     ch.Destination,
			BaseFeeMsat:     ch.BaseFeeMillisatoshi,
			FeePerMillionth: ch.FeePerMillionth,
		})
	}

	return result, nil
}

func (c *ClnClient) ListForwards() ([]*lightning.Forward, error) {
	var forwards listForwardsResponse
	if err := c.request(&listForwardsRequest{}, &forwards); err != nil {
		return nil, err
	}

	result := make([]*lightning.Forward, 0, len(forwards.Forwards))
	for _, fwd := range forwards.Forwards {
		result = append(result, fwd.toForward())
	}

	return result, nil
}
