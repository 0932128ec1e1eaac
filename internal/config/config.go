// Package config loads client and daemon settings from YAML or JSON.
package config

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/vrtrack/vrtrack/internal/core/tracking"
)

// Transport names accepted in configuration.
const (
	TransportWebSocket = "websocket"
	TransportQUIC      = "quic"
)

// Client configures a tracking client.
type Client struct {
	// Address of the runtime's stream endpoint, host:port.
	Address string `json:"address" yaml:"address"`
	// Transport is "websocket" (default) or "quic".
	Transport string `json:"transport" yaml:"transport"`
	// ClientName identifies this client in the hello exchange.
	ClientName string `json:"client_name" yaml:"client_name"`
	// StalenessThreshold is the signal age past which snapshots are
	// considered stale.
	StalenessThreshold Duration `json:"staleness_threshold" yaml:"staleness_threshold"`
	// Controller selects which signal categories the runtime reports.
	Controller tracking.Options `json:"controller" yaml:"controller"`
	// LogLevel is debug, info, warn, error or fatal.
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// Daemon configures the simulated runtime daemon.
type Daemon struct {
	// Address to listen on, host:port.
	Address string `json:"address" yaml:"address"`
	// Transport is "websocket" (default) or "quic".
	Transport string `json:"transport" yaml:"transport"`
	// FrameRate is the snapshot production rate in Hz.
	FrameRate int `json:"frame_rate" yaml:"frame_rate"`
	// LogLevel is debug, info, warn, error or fatal.
	LogLevel string `json:"log_level" yaml:"log_level"`
}

// DefaultClient returns a client config pointed at the default local
// runtime endpoint.
func DefaultClient() Client {
	return Client{
		Address:            "127.0.0.1:7368",
		Transport:          TransportWebSocket,
		ClientName:         "vrtrack-client",
		StalenessThreshold: Duration(250 * time.Millisecond),
		Controller:         tracking.DefaultOptions(),
		LogLevel:           "info",
	}
}

// DefaultDaemon returns the daemon config matching DefaultClient.
func DefaultDaemon() Daemon {
	return Daemon{
		Address:   "127.0.0.1:7368",
		Transport: TransportWebSocket,
		FrameRate: 60,
		LogLevel:  "info",
	}
}

// Validate checks the transport name and address.
func (c Client) Validate() error {
	if c.Address == "" {
		return fmt.Errorf("client config: address is required")
	}
	return validTransport(c.Transport)
}

// Validate checks the transport name, address and frame rate.
func (d Daemon) Validate() error {
	if d.Address == "" {
		return fmt.Errorf("daemon config: address is required")
	}
	if d.FrameRate <= 0 || d.FrameRate > 1000 {
		return fmt.Errorf("daemon config: frame rate %d out of range", d.FrameRate)
	}
	return validTransport(d.Transport)
}

func validTransport(name string) error {
	switch name {
	case TransportWebSocket, TransportQUIC:
		return nil
	default:
		return fmt.Errorf("unknown transport %q", name)
	}
}

// LoadClient reads a client config file. YAML and JSON are accepted,
// chosen by extension. Missing fields keep their defaults.
func LoadClient(path string) (Client, error) {
	c := DefaultClient()
	if err := loadFile(path, &c); err != nil {
		return Client{}, err
	}
	if err := c.Validate(); err != nil {
		return Client{}, err
	}
	return c, nil
}

// LoadDaemon reads a daemon config file, as LoadClient does.
func LoadDaemon(path string) (Daemon, error) {
	d := DefaultDaemon()
	if err := loadFile(path, &d); err != nil {
		return Daemon{}, err
	}
	if err := d.Validate(); err != nil {
		return Daemon{}, err
	}
	return d, nil
}

func loadFile(path string, out any) error {
	f, err := os.Open(path)
	if err != nil {
		return fmt.Errorf("open config: %w", err)
	}
	defer func() { _ = f.Close() }()

	switch filepath.Ext(path) {
	case ".json":
		return decodeJSON(f, out)
	default:
		return decodeYAML(f, out)
	}
}

func decodeJSON(r io.Reader, out any) error {
	dec := json.NewDecoder(r)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode json config: %w", err)
	}
	return nil
}

func decodeYAML(r io.Reader, out any) error {
	dec := yaml.NewDecoder(r)
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("decode yaml config: %w", err)
	}
	return nil
}
