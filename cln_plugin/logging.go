package cln_plugin

import (
	"encoding/json"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// notificationCore is a zap core that forwards log entries to cln as log
// notifications, so they show up in the node's log.
type notificationCore struct {
	zapcore.LevelEnabler
	enc    zapcore.Encoder
	writer *writer
}

func newNotificationLogger(w *writer, level zapcore.LevelEnabler) *zap.Logger {
	enc := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:     "msg",
		NameKey:        "logger",
		CallerKey:      "caller",
		EncodeCaller:   zapcore.ShortCallerEncoder,
		EncodeDuration: zapcore.StringDurationEncoder,
		EncodeName:     zapcore.FullNameEncoder,
	})

	core := &notificationCore{
		LevelEnabler: level,
		enc:          enc,
		writer:       w,
	}
	return zap.New(core, zap.AddCaller())
}

func (c *notificationCore) With(fields []zapcore.Field) zapcore.Core {
	clone := &notificationCore{
		LevelEnabler: c.LevelEnabler,
		enc:          c.enc.Clone(),
		writer:       c.writer,
	}
	for _, f := range fields {
		f.AddTo(clone.enc)
	}

	return clone
}

func (c *notificationCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	if c.Enabled(ent.Level) {
		return ce.AddCore(ent, c)
	}

	return ce
}

func (c *notificationCore) Write(ent zapcore.Entry, fields []zapcore.Field) error {
	buf, err := c.enc.EncodeEntry(ent, fields)
	if err != nil {
		return err
	}
	message := strings.TrimRight(buf.String(), "\n")
	buf.Free()

	params, err := json.Marshal(&LogNotification{
		Level:   clnLogLevel(ent.Level),
		Message: message,
	})
	if err != nil {
		return err
	}

	return c.writer.Write(&Request{
		Method:  "log",
		JsonRpc: SpecVersion,
		Params:  params,
	})
}

func (c *notificationCore) Sync() error {
	return nil
}

// cln maps warn to unusual and error to broken.
func clnLogLevel(level zapcore.Level) string {
	switch {
	case level <= zapcore.DebugLevel:
		return "debug"
	case level == zapcore.InfoLevel:
		return "info"
	case level == zapcore.WarnLevel:
		return "warn"
	default:
		return "error"
	}
}
