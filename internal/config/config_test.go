package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTemp(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadClientYAML(t *testing.T) {
	path := writeTemp(t, "client.yaml", `
address: "127.0.0.1:9000"
transport: quic
staleness_threshold: 100ms
controller:
  enable_orientation: true
  enable_touch: false
log_level: debug
`)
	c, err := LoadClient(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9000", c.Address)
	assert.Equal(t, TransportQUIC, c.Transport)
	assert.Equal(t, 100*time.Millisecond, c.StalenessThreshold.Std())
	assert.True(t, c.Controller.EnableOrientation)
	assert.False(t, c.Controller.EnableTouch)
	assert.Equal(t, "debug", c.LogLevel)
	// Untouched fields keep defaults.
	assert.Equal(t, DefaultClient().ClientName, c.ClientName)
}

func TestLoadDaemonJSON(t *testing.T) {
	path := writeTemp(t, "daemon.json", `{"address":"127.0.0.1:9001","frame_rate":120}`)
	d, err := LoadDaemon(path)
	require.NoError(t, err)
	assert.Equal(t, "127.0.0.1:9001", d.Address)
	assert.Equal(t, 120, d.FrameRate)
	assert.Equal(t, TransportWebSocket, d.Transport)
}

func TestLoadInvalid(t *testing.T) {
	_, err := LoadClient(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	path := writeTemp(t, "bad.yaml", "transport: carrier-pigeon\naddress: x\n")
	_, err = LoadClient(path)
	assert.ErrorContains(t, err, "unknown transport")

	path = writeTemp(t, "rate.yaml", "address: x\nframe_rate: 0\n")
	_, err = LoadDaemon(path)
	assert.ErrorContains(t, err, "frame rate")
}

func TestDefaultsValidate(t *testing.T) {
	assert.NoError(t, DefaultClient().Validate())
	assert.NoError(t, DefaultDaemon().Validate())
}
