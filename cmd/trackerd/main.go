// Command trackerd runs the simulated tracking runtime: it streams
// controller and head-pose snapshots to clients over WebSocket or
// QUIC. It exists so clients can be developed and tested without VR
// hardware.
package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/vrtrack/vrtrack/internal/config"
	"github.com/vrtrack/vrtrack/internal/core/observability/log"
	"github.com/vrtrack/vrtrack/internal/core/protocol"
	"github.com/vrtrack/vrtrack/internal/core/tracking"
	"github.com/vrtrack/vrtrack/internal/sim"
)

func main() {
	configPath := flag.String("config", "", "path to daemon config (yaml or json)")
	flag.Parse()

	cfg := config.DefaultDaemon()
	if *configPath != "" {
		loaded, err := config.LoadDaemon(*configPath)
		if err != nil {
			fmt.Fprintln(os.Stderr, "config:", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	logger := log.New(log.ParseLevel(cfg.LogLevel))

	var transport protocol.Transport
	switch cfg.Transport {
	case config.TransportQUIC:
		transport = protocol.NewQUICTransport()
	default:
		transport = protocol.NewWebSocketTransport()
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	stopCh := make(chan os.Signal, 1)
	signal.Notify(stopCh, syscall.SIGTERM, syscall.SIGINT)
	go func() {
		<-stopCh
		logger.Info("shutting down")
		cancel()
	}()

	srv := sim.NewServer(transport, logger, cfg.FrameRate, tracking.DefaultOptions())
	if err := srv.Run(ctx, cfg.Address); err != nil && ctx.Err() == nil {
		logger.Error("runtime stopped", log.Error(err))
		os.Exit(1)
	}
}
