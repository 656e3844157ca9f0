package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &out))
	return out
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.ErrorLevel, ParseLevel("error"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("bogus"))
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("DEBUG"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel(" Warn "))
}

func TestLogIdentify(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Level: "debug", Output: &buf}).CatalogLogger("identify")

	l.LogIdentify("media", "file:///f16.iso", "fedora16", time.Millisecond, true)

	entry := decode(t, &buf)
	assert.Equal(t, "fedora16", entry["os"])
	assert.Equal(t, "catalog", entry["component"])
	assert.Equal(t, true, entry["matched"])
	assert.Equal(t, "osinfodb", entry["service"])
}

func TestLogProbeErrorIsWarn(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Level: "info", Output: &buf})

	l.LogProbe("media", "/dev/sr0", time.Second, nil)
	assert.Zero(t, buf.Len(), "successful probes log at debug")

	l.LogProbe("media", "/dev/sr0", time.Second, errors.New("not bootable"))
	entry := decode(t, &buf)
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "not bootable", entry["error"])
}

func TestComponentLoggers(t *testing.T) {
	var buf bytes.Buffer
	l := NewLogger(Config{Level: "debug", Output: &buf}).CatalogLogger("identify")
	l.Info("hello").Send()

	entry := decode(t, &buf)
	assert.Equal(t, "catalog", entry["component"])
	assert.Equal(t, "identify", entry["operation"])
}

func TestNop(t *testing.T) {
	assert.NotPanics(t, func() {
		OrNop(nil).Warn("dropped").Send()
	})
}
