package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSocketPath(t *testing.T) {
	c := &PluginConfig{
		LightningDir: "/home/user/.lightning/bitcoin",
		RpcFile:      "lightning-rpc",
		RpcTimeout:   time.Minute,
	}
	assert.NoError(t, c.Validate())
	assert.Equal(t, "/home/user/.lightning/bitcoin/lightning-rpc", c.SocketPath())
}

func TestSocketPathAbsoluteRpcFile(t *testing.T) {
	c := &PluginConfig{
		LightningDir: "/home/user/.lightning/bitcoin",
		RpcFile:      "/tmp/lightning-rpc",
		RpcTimeout:   time.Minute,
	}
	assert.NoError(t, c.Validate())
	assert.Equal(t, "/tmp/lightning-rpc", c.SocketPath())
}

func TestValidate(t *testing.T) {
	assert.Error(t, (&PluginConfig{LightningDir: "/a", RpcTimeout: time.Second}).Validate())
	assert.Error(t, (&PluginConfig{RpcFile: "lightning-rpc", RpcTimeout: time.Second}).Validate())
	assert.Error(t, (&PluginConfig{LightningDir: "/a", RpcFile: "lightning-rpc"}).Validate())
}

func TestFromSocketPath(t *testing.T) {
	c := FromSocketPath("/home/user/.lightning/bitcoin/lightning-rpc", time.Second)
	assert.Equal(t, "/home/user/.lightning/bitcoin", c.LightningDir)
	assert.Equal(t, "lightning-rpc", c.RpcFile)
	assert.Equal(t, "/home/user/.lightning/bitcoin/lightning-rpc", c.SocketPath())
}

func TestParseRpcTimeout(t *testing.T) {
	timeout, err := ParseRpcTimeout(DefaultRpcTimeout)
	assert.NoError(t, err)
	assert.Equal(t, time.Minute, timeout)

	for _, v := range []interface{}{"", "abc", "-1s", "0s", 60, nil} {
		_, err := ParseRpcTimeout(v)
		assert.Error(t, err)
	}
}
