// Package main replays a recorded well log dataset onto the MQTT telemetry
// bus, one row per interval, publishing whichever standard channels the
// dataset resolves.
package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/google/uuid"
	"github.com/joho/godotenv"

	"github.com/ares-data/wellbore.report/internal/fsutil"
	"github.com/ares-data/wellbore.report/internal/health"
	"github.com/ares-data/wellbore.report/internal/source"
	"github.com/ares-data/wellbore.report/internal/telemetry"
	"github.com/ares-data/wellbore.report/internal/timeutil"
)

func envString(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func main() {
	_ = godotenv.Load()

	var (
		brokerHost = flag.String("broker-host", envString("MQTT_BROKER_HOST", "localhost"), "MQTT broker host")
		brokerPort = flag.String("broker-port", envString("MQTT_BROKER_PORT", "1883"), "MQTT broker port")
		dataset    = flag.String("dataset", "", "Dataset file to replay (required)")
		interval   = flag.Duration("interval", time.Second, "Delay between replayed rows")
	)
	flag.Parse()

	if *dataset == "" {
		flag.Usage()
		os.Exit(2)
	}

	fsys := fsutil.OSFileSystem{}
	src, err := source.Open(fsys, *dataset)
	if err != nil {
		log.Fatalf("Failed to open dataset: %v", err)
	}
	defer src.Close()

	brokerURL := fmt.Sprintf("tcp://%s:%s", *brokerHost, *brokerPort)
	clientID := fmt.Sprintf("ares1-replay-%s", uuid.NewString()[:8])

	log.Printf("Connecting to MQTT at %s", brokerURL)
	client, err := telemetry.Connect(brokerURL, clientID)
	if err != nil {
		log.Fatalf("Failed to connect: %v", err)
	}
	defer client.Disconnect(250)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	sig := make(chan os.Signal, 1)
	signal.Notify(sig, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sig
		log.Printf("Stopping replay")
		cancel()
	}()

	replayer := telemetry.NewReplayer(client, timeutil.RealClock{}, *interval)

	log.Printf("Replaying %s every %s", *dataset, *interval)
	rows, err := replayer.Run(ctx, src, health.DefaultConfig())
	if err != nil && err != context.Canceled {
		log.Fatalf("Replay failed after %d rows: %v", rows, err)
	}
	log.Printf("Replay finished: %d rows published", rows)
}
