package config

import (
	"fmt"
	"path/filepath"
	"time"
)

const (
	RpcTimeoutOption = "feereport-rpc-timeout"
)

var (
	DefaultRpcTimeout = "60s"
)

type PluginConfig struct {
	// The lightning directory of the node, as passed by lightningd in the init
	// message.
	LightningDir string `json:"lightning-dir"`

	// The name of the rpc socket file inside the lightning directory.
	RpcFile string `json:"rpc-file"`

	// Maximum time a single rpc call to the node may take.
	RpcTimeout time.Duration `json:"-"`
}

// SocketPath is the path to the control socket of the node.
func (c *PluginConfig) SocketPath() string {
	if filepath.IsAbs(c.RpcFile) {
		return c.RpcFile
	}

	return filepath.Join(c.LightningDir, c.RpcFile)
}

func (c *PluginConfig) Validate() error {
	if c.RpcFile == "" {
		return fmt.Errorf("missing rpc-file")
	}
	if c.LightningDir == "" && !filepath.IsAbs(c.RpcFile) {
		return fmt.Errorf("missing lightning-dir")
	}
	if c.RpcTimeout <= 0 {
		return fmt.Errorf("invalid rpc timeout '%v'", c.RpcTimeout)
	}

	return nil
}

// ParseRpcTimeout parses the value of the rpc timeout option, a golang
// duration string.
func ParseRpcTimeout(value interface{}) (time.Duration, error) {
	s, ok := value.(string)
	if !ok || s == "" {
		return 0, fmt.Errorf("invalid value '%v' for option '%s'", value, RpcTimeoutOption)
	}

	timeout, err := time.ParseDuration(s)
	if err != nil || timeout <= 0 {
		return 0, fmt.Errorf("invalid value '%v' for option '%s'", s, RpcTimeoutOption)
	}

	return timeout, nil
}

// FromSocketPath builds a config for a node control socket path, e.g.
// `~/.lightning/bitcoin/lightning-rpc`.
func FromSocketPath(socketPath string, timeout time.Duration) *PluginConfig {
	return &PluginConfig{
		LightningDir: filepath.Dir(socketPath),
		RpcFile:      filepath.Base(socketPath),
		RpcTimeout:   timeout,
	}
}
