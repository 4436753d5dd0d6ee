// The code in this plugin is highly inspired by and sometimes copied from
// github.com/niftynei/glightning. Therefore pieces of this code are subject
// to Copyright Lisa Neigut (Blockstream) 2019.

package cln_plugin

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"sync"

	"github.com/breez/feereport/cln"
	"github.com/breez/feereport/config"
	"github.com/breez/feereport/feereport"
	"github.com/breez/feereport/lightning"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	FeeReportMethod = "feereport"
)

const (
	SpecVersion    = "2.0"
	ParseError     = -32700
	InvalidRequest = -32600
	MethodNotFound = -32601
	InvalidParams  = -32602
	InternalErr    = -32603
)

var feeReportLongDescription = "Returns the fee policy this node enforces " +
	"on each of its channels, and the routing fees earned in the last day, " +
	"week and month in satoshi. Emulates `lncli feereport` of LND."

// ClientFactory opens the rpc connection to the node once the plugin is
// initialized.
type ClientFactory func(cfg *config.PluginConfig, log *zap.Logger) (lightning.Client, error)

func NewClnClientFactory() ClientFactory {
	return func(cfg *config.PluginConfig, log *zap.Logger) (lightning.Client, error) {
		return cln.NewClnClient(cfg.SocketPath(), cfg.RpcTimeout, log)
	}
}

type ClnPlugin struct {
	done      chan struct{}
	stopOnce  sync.Once
	reader    *reader
	writer    *writer
	log       *zap.Logger
	newClient ClientFactory
	inflight  sync.WaitGroup
	mtx       sync.RWMutex
	generator feereport.ReportGenerator
}

func NewClnPlugin(in io.ReadCloser, out io.Writer, newClient ClientFactory) *ClnPlugin {
	w := newWriter(out)
	return &ClnPlugin{
		done:      make(chan struct{}),
		reader:    newReader(in),
		writer:    w,
		log:       newNotificationLogger(w, zapcore.DebugLevel),
		newClient: newClient,
	}
}

// Starts the cln plugin. Blocks until cln closes the connection or sends the
// shutdown notification.
func (c *ClnPlugin) Start() error {
	defer c.inflight.Wait()
	for {
		req, err := c.reader.Next()
		select {
		case <-c.done:
			return nil
		default:
		}

		if err != nil {
			if errors.Is(err, io.EOF) {
				c.log.Info("cln closed the connection, stopping plugin")
				return nil
			}
			if errors.Is(err, ErrInvalidMessage) {
				c.sendError(nil, ParseError, err.Error())
				continue
			}

			return fmt.Errorf("failed to read from cln: %w", err)
		}

		c.processRequest(req)
	}
}

// Stops the cln plugin. Calls that are in flight are allowed to finish.
func (c *ClnPlugin) Stop() {
	c.stopOnce.Do(func() {
		c.log.Info("Stop called. Stopping plugin.")
		close(c.done)
		c.reader.Close()
	})
}

func (c *ClnPlugin) processRequest(request *Request) {
	// Make sure the jsonrpc version is expected.
	if request.JsonRpc != SpecVersion {
		c.sendError(request.Id, InvalidRequest, fmt.Sprintf(
			`Invalid jsonrpc, expected '%s' got '%s'`,
			SpecVersion,
			request.JsonRpc,
		))
		return
	}

	switch request.Method {
	case "getmanifest":
		c.handleGetManifest(request)
	case "init":
		c.handleInit(request)
	case "shutdown":
		c.handleShutdown(request)
	case FeeReportMethod:
		c.handleFeeReport(request)
	default:
		if request.IsNotification() {
			c.log.Debug("ignoring notification", zap.String("method", request.Method))
			return
		}

		c.sendError(
			request.Id,
			MethodNotFound,
			fmt.Sprintf("Method '%s' not found", request.Method),
		)
	}
}

// Returns this plugin's manifest to cln.
func (c *ClnPlugin) handleGetManifest(request *Request) {
	c.sendToCln(&Response{
		Id:      request.Id,
		JsonRpc: SpecVersion,
		Result: &Manifest{
			Options: []Option{
				{
					Name: config.RpcTimeoutOption,
					Type: "string",
					Description: "the maximum duration of a single rpc call " +
						"to lightningd. golang duration string.",
					Default: &config.DefaultRpcTimeout,
				},
			},
			RpcMethods: []*RpcMethod{
				{
					Name:            FeeReportMethod,
					Usage:           "",
					Description:     "Returns the current fee policies of all active channels.",
					LongDescription: &feeReportLongDescription,
				},
			},
			Dynamic:       true,
			NonNumericIds: true,
			Subscriptions: []string{
				"shutdown",
			},
		},
	})
}

// Handles plugin initialization. Connects to the node rpc socket and looks up
// our node id.
func (c *ClnPlugin) handleInit(request *Request) {
	var initMsg InitMessage
	err := json.Unmarshal(request.Params, &initMsg)
	if err != nil {
		c.sendError(
			request.Id,
			ParseError,
			fmt.Sprintf("Failed to unmarshal init params: %v", err),
		)
		return
	}

	if initMsg.Configuration == nil {
		c.sendError(request.Id, InvalidParams, "Missing configuration")
		return
	}

	timeoutOption, ok := initMsg.Options[config.RpcTimeoutOption]
	if !ok {
		timeoutOption = config.DefaultRpcTimeout
	}
	timeout, err := config.ParseRpcTimeout(timeoutOption)
	if err != nil {
		c.sendError(request.Id, InvalidParams, err.Error())
		return
	}

	cfg := &config.PluginConfig{
		LightningDir: initMsg.Configuration.LightningDir,
		RpcFile:      initMsg.Configuration.RpcFile,
		RpcTimeout:   timeout,
	}
	if err = cfg.Validate(); err != nil {
		c.sendError(
			request.Id,
			InvalidParams,
			fmt.Sprintf("Invalid configuration: %v", err),
		)
		return
	}

	c.log.Info("feereport init", zap.String("socket", cfg.SocketPath()))
	client, err := c.newClient(cfg, c.log.Named("cln"))
	if err != nil {
		c.sendError(
			request.Id,
			InternalErr,
			fmt.Sprintf("Failed to connect to %s: %v", cfg.SocketPath(), err),
		)
		return
	}

	info, err := client.GetInfo()
	if err != nil {
		c.sendError(
			request.Id,
			InternalErr,
			fmt.Sprintf("getinfo failed: %v", err),
		)
		return
	}

	cln.CheckVersion(c.log, info.Version)

	c.mtx.Lock()
	c.generator = feereport.NewGenerator(
		client,
		info.Pubkey,
		feereport.WithLogger(c.log.Named("feereport")),
	)
	c.mtx.Unlock()

	c.sendToCln(&Response{
		Id:      request.Id,
		JsonRpc: SpecVersion,
		Result:  map[string]interface{}{},
	})
}

// Handles the shutdown notification.
func (c *ClnPlugin) handleShutdown(request *Request) {
	c.Stop()
}

// Generates the fee report. The node rpc calls may take a while, so the
// report is generated outside of the read loop.
func (c *ClnPlugin) handleFeeReport(request *Request) {
	c.mtx.RLock()
	generator := c.generator
	c.mtx.RUnlock()

	if generator == nil {
		c.sendError(request.Id, InternalErr, "Plugin is not initialized")
		return
	}

	c.inflight.Add(1)
	go func() {
		defer c.inflight.Done()
		report, err := generator.GenerateReport()
		if err != nil {
			c.sendError(
				request.Id,
				InternalErr,
				fmt.Sprintf("Failed to generate fee report: %v", err),
			)
			return
		}

		c.sendToCln(&Response{
			Id:      request.Id,
			JsonRpc: SpecVersion,
			Result:  report,
		})
	}()
}

// Sends an error to cln.
func (c *ClnPlugin) sendError(id json.RawMessage, code int, message string) {
	// Log the error to cln first.
	c.log.Error(message, zap.Int("code", code))

	resp := &Response{
		JsonRpc: SpecVersion,
		Error: &RpcError{
			Code:    code,
			Message: message,
		},
	}

	if len(id) > 0 {
		resp.Id = id
	}

	c.sendToCln(resp)
}

func (c *ClnPlugin) sendToCln(msg interface{}) {
	if err := c.writer.Write(msg); err != nil {
		// Can't log through cln if writing to cln fails.
		fmt.Fprintf(errorOutput, "feereport: failed to write message to cln: %v\n", err)
	}
}
