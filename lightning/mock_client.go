package lightning

import (
	"errors"
)

var ErrNotImplemented = errors.New("not implemented")

// MockClient is an in-memory Client. Policies are keyed by short channel id.
type MockClient struct {
	Info     *NodeInfo
	Channels []*Channel
	Policies map[string][]*ChannelPolicy
	Forwards []*Forward

	GetInfoErr      error
	ListFundsErr    error
	ListChannelsErr error
	ListForwardsErr error

	ListChannelsCalls []string
}

func (m *MockClient) GetInfo() (*NodeInfo, error) {
	if m.GetInfoErr != nil {
		return nil, m.GetInfoErr
	}
	if m.Info == nil {
		return nil, ErrNotImplemented
	}

	return m.Info, nil
}

func (m *MockClient) ListFunds() ([]*Channel, error) {
	return m.Channels, m.ListFundsErr
}

func (m *MockClient) ListChannels(shortChannelID string) ([]*ChannelPolicy, error) {
	m.ListChannelsCalls = append(m.ListChannelsCalls, shortChannelID)
	if m.ListChannelsErr != nil {
		return nil, m.ListChannelsErr
	}

	return m.Policies[shortChannelID], nil
}

func (m *MockClient) ListForwards() ([]*Forward, error) {
	return m.Forwards, m.ListForwardsErr
}
