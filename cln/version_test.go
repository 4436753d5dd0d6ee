package cln

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		version  string
		expected string
	}{
		{version: "v0.7.1", expected: "v0.7.1"},
		{version: "0.7.1", expected: "v0.7.1"},
		{version: "v23.05.2", expected: "v23.5.2"},
		{version: "v23.05", expected: "v23.5.0"},
		{version: "v24.02-modded", expected: "v24.2.0-modded"},
		{version: "v0.10.2-12-gabcdef", expected: "v0.10.2-12-gabcdef"},
		{version: "0.7.1rc1", expected: "v0.7.1-rc1"},
		{version: "v24.11rc2-modded", expected: "v24.11.0-rc2-modded"},
		{version: " v0.12.1 ", expected: "v0.12.1"},
	}

	for _, tst := range tests {
		t.Run(tst.version, func(t *testing.T) {
			v, err := ParseVersion(tst.version)
			assert.NoError(t, err)
			assert.Equal(t, tst.expected, v)
		})
	}
}

func TestParseVersionInvalid(t *testing.T) {
	for _, version := range []string{"", "v", "abc", "v1.2.3.4", "v1..2", "v1.2.3-", "vx.1"} {
		t.Run(version, func(t *testing.T) {
			_, err := ParseVersion(version)
			assert.Error(t, err)
		})
	}
}

func TestSupportsResolvedTime(t *testing.T) {
	tests := map[string]bool{
		"v0.6.3":            false,
		"v0.7.0":            false,
		"v0.7.0-1-g0631490": false,
		"v0.7.1rc1":         true,
		"v0.7.1":            true,
		"v0.7.1-12-gabcdef": true,
		"v0.8.0":            true,
		"v0.10.2":           true,
		"v23.05.2":          true,
	}

	for version, expected := range tests {
		t.Run(version, func(t *testing.T) {
			ok, err := SupportsResolvedTime(version)
			assert.NoError(t, err)
			assert.Equal(t, expected, ok)
		})
	}
}

func TestCheckVersion(t *testing.T) {
	core, logs := observer.New(zapcore.WarnLevel)
	log := zap.New(core)

	CheckVersion(log, "v23.05.2")
	assert.Equal(t, 0, logs.Len())

	CheckVersion(log, "v0.7.0")
	assert.Equal(t, 1, logs.FilterMessageSnippet("v0.7.1 or later is required").Len())

	CheckVersion(log, "garbage")
	assert.Equal(t, 1, logs.FilterMessageSnippet("could not parse node version").Len())
}
