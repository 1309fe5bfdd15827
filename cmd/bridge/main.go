package main

import (
	"flag"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/triomni/go-nucleo/internal/config"
	"github.com/triomni/go-nucleo/internal/log"
	"github.com/triomni/go-nucleo/pkg/link"
	"github.com/triomni/go-nucleo/pkg/motion"
	"github.com/triomni/go-nucleo/pkg/session"
	"github.com/triomni/go-nucleo/pkg/telemetry"
	"github.com/triomni/go-nucleo/pkg/web"
)

func main() {
	addr := flag.String("addr", config.ListenAddr(config.DefaultListenAddr), "listen address")
	device := flag.String("device", config.SerialDevice(), "serial device path (empty = auto-discover)")
	baud := flag.Int("baud", config.DefaultBaudRate, "serial baud rate")
	logLevel := flag.String("log-level", config.LogLevel("info"), "log level (debug, info, warn, error)")
	telemetryOn := flag.Bool("telemetry", true, "enable the telemetry observer stream")
	telemetryInterval := flag.Duration("telemetry-interval", 500*time.Millisecond, "board poll interval")
	flag.Parse()

	log.Init(*logLevel)

	find := link.Finder(link.DiscoverNucleo)
	if *device != "" {
		find = link.FixedDevice(*device)
	}

	board, err := link.Open(find, link.PortConfig{
		BaudRate:    *baud,
		ReadTimeout: config.DefaultReadTimeout,
	})
	if err != nil {
		log.Fatal("failed to open controller board", "error", err)
	}
	defer board.Close()

	slot := session.NewSlot()
	cals := motion.DefaultCalibrations()

	var hub *telemetry.Hub
	var poller *telemetry.Poller
	if *telemetryOn {
		hub = telemetry.NewHub()
		go hub.Run()
		poller = telemetry.NewPoller(board, slot, hub, *telemetryInterval)
		go poller.Run()
	}

	server := web.NewServer(*addr, board, slot, cals, hub)

	// Graceful shutdown: stop accepting clients, then stop the motors
	// via the deferred board.Close.
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, syscall.SIGINT, syscall.SIGTERM)
	go func() {
		<-sigChan
		log.Info("shutting down")
		if poller != nil {
			poller.Stop()
		}
		if err := server.Shutdown(); err != nil {
			log.Error("server shutdown failed", "error", err)
		}
	}()

	log.Info("bridge listening", "addr", *addr, "device", board.Device())
	if err := server.Listen(); err != nil {
		log.Error("server stopped", "error", err)
	}
}
