package cln_plugin

import (
	"encoding/json"
)

type Request struct {
	Id      json.RawMessage `json:"id,omitempty"`
	Method  string          `json:"method"`
	JsonRpc string          `json:"jsonrpc"`
	Params  json.RawMessage `json:"params,omitempty"`
}

// Notifications from cln don't carry an id and expect no response.
func (r *Request) IsNotification() bool {
	return len(r.Id) == 0
}

type Response struct {
	Id      json.RawMessage `json:"id"`
	JsonRpc string          `json:"jsonrpc"`
	Result  Result          `json:"result,omitempty"`
	Error   *RpcError       `json:"error,omitempty"`
}

type Result interface{}

type RpcError struct {
	Code    int             `json:"code"`
	Message string          `json:"message"`
	Data    json.RawMessage `json:"data,omitempty"`
}

type Manifest struct {
	Options       []Option     `json:"options"`
	RpcMethods    []*RpcMethod `json:"rpcmethods"`
	Dynamic       bool         `json:"dynamic"`
	Subscriptions []string     `json:"subscriptions,omitempty"`
	Hooks         []Hook       `json:"hooks,omitempty"`
	NonNumericIds bool         `json:"nonnumericids"`
}

type Option struct {
	Name        string  `json:"name"`
	Type        string  `json:"type"`
	Description string  `json:"description"`
	Default     *string `json:"default,omitempty"`
}

type RpcMethod struct {
	Name            string  `json:"name"`
	Usage           string  `json:"usage"`
	Description     string  `json:"description"`
	LongDescription *string `json:"long_description,omitempty"`
}

type Hook struct {
	Name string `json:"name"`
}

type InitMessage struct {
	Options       map[string]interface{} `json:"options,omitempty"`
	Configuration *InitConfiguration     `json:"configuration,omitempty"`
}

type InitConfiguration struct {
	LightningDir string `json:"lightning-dir"`
	RpcFile      string `json:"rpc-file"`
	Startup      bool   `json:"startup"`
	Network      string `json:"network"`
}

type LogNotification struct {
	Level   string `json:"level"`
	Message string `json:"message"`
}
